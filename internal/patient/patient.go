// Package patient defines the Patient record: six validated, write-once fields
// assigned through a single field-set operation that reports every outcome to an
// audit sink.
//
// Invariants:
//   - Every stored value is the canonical output of its field rule
//   - A field, once set, changes only through ReplaceDocument (document fields)
//   - document_id is validated against the document_type already stored
//   - Construction either yields a complete record or nothing
package patient

import (
	"context"
	"fmt"
	"strings"

	"patients/internal/audit"
	"patients/internal/patient/fields"
	dErrors "patients/pkg/domain-errors"
)

// Field names, in persisted order.
const (
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldBirthDate    = "birth_date"
	FieldPhone        = "phone"
	FieldDocumentType = "document_type"
	FieldDocumentID   = "document_id"
)

// Delimiter joins field values in the persisted line.
const Delimiter = ","

type fieldSpec struct {
	name      string
	rule      fields.Rule
	writeOnce bool
}

// fieldTable lists every field in persisted order. Assignment order within
// Create follows the same order, which puts document_type before document_id.
var fieldTable = []fieldSpec{
	{name: FieldFirstName, rule: fields.Name, writeOnce: true},
	{name: FieldLastName, rule: fields.Name, writeOnce: true},
	{name: FieldBirthDate, rule: fields.Date, writeOnce: true},
	{name: FieldPhone, rule: fields.Phone, writeOnce: true},
	{name: FieldDocumentType, rule: fields.DocumentType, writeOnce: true},
	{name: FieldDocumentID, rule: fields.DocumentID, writeOnce: true},
}

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(fieldTable))
	for i, spec := range fieldTable {
		m[spec.name] = i
	}
	return m
}()

// FieldNames returns the field names in persisted order.
func FieldNames() []string {
	names := make([]string, len(fieldTable))
	for i, spec := range fieldTable {
		names[i] = spec.name
	}
	return names
}

// Assignment pairs a field name with raw input.
type Assignment struct {
	Field string
	Value any
}

// Patient is a record whose fields are validated on assignment and cannot be
// silently overwritten.
type Patient struct {
	sink   audit.Sink
	values [6]string
	set    [6]bool
	kind   fields.DocumentKind
}

// LineAppender persists one canonical record line.
type LineAppender interface {
	AppendLine(ctx context.Context, line string) error
}

// Create builds a Patient from the six raw values, validating them in dependency
// order. No record is returned unless every field is accepted.
func Create(sink audit.Sink, firstName, lastName, birthDate, phone, documentType, documentID any) (*Patient, error) {
	return Build(sink,
		Assignment{Field: FieldFirstName, Value: firstName},
		Assignment{Field: FieldLastName, Value: lastName},
		Assignment{Field: FieldBirthDate, Value: birthDate},
		Assignment{Field: FieldPhone, Value: phone},
		Assignment{Field: FieldDocumentType, Value: documentType},
		Assignment{Field: FieldDocumentID, Value: documentID},
	)
}

// Build applies the assignments in the order given. An assignment that needs a
// field not yet set fails with a missing dependency error; a record left with
// unset fields fails with an invalid input error.
func Build(sink audit.Sink, assignments ...Assignment) (*Patient, error) {
	if sink == nil {
		sink = audit.Discard
	}
	p := &Patient{sink: sink}
	for _, a := range assignments {
		if err := p.Set(a.Field, a.Value); err != nil {
			return nil, err
		}
	}
	if missing := p.missingFields(); len(missing) > 0 {
		err := dErrors.New(dErrors.CodeInvalidInput,
			"patient is missing fields: "+strings.Join(missing, ", "))
		p.reject(audit.SubjectCreate, err, "")
		return nil, err
	}
	sink.Success(audit.Event{
		Subject: audit.SubjectCreate,
		Message: fmt.Sprintf("Patient %s successfully created", p.FullName()),
	})
	return p, nil
}

// Set is the single field-set operation. It rejects unknown fields and writes to
// already-initialized write-once fields, then validates raw through the field's
// rule and stores the canonical value.
func (p *Patient) Set(field string, raw any) error {
	i, ok := fieldIndex[field]
	if !ok {
		err := dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown field %q", field))
		p.reject(audit.SubjectUnknownField, err, field)
		return err
	}
	spec := fieldTable[i]
	if p.set[i] && spec.writeOnce {
		err := dErrors.New(dErrors.CodeModifyForbidden,
			fmt.Sprintf("tried modifying %s of an initialized patient", field))
		p.reject(field, err, raw)
		return err
	}

	value, err := spec.rule(field, raw, fields.Context{DocumentKind: p.kind})
	if err != nil {
		p.reject(field, err, raw)
		return err
	}
	p.store(i, value)
	return nil
}

func (p *Patient) store(i int, value string) {
	p.values[i] = value
	p.set[i] = true
	if fieldTable[i].name == FieldDocumentType {
		p.kind, _ = fields.ParseDocumentKind(value)
	}
	p.events().Success(audit.Event{
		Subject: fieldTable[i].name,
		Message: fmt.Sprintf("%s assigned as %s", fieldTable[i].name, value),
		Value:   value,
	})
}

func (p *Patient) reject(subject string, err error, raw any) {
	event := audit.Event{
		Subject: subject,
		Message: err.Error(),
		Reason:  string(dErrors.CodeOf(err)),
	}
	if raw != nil {
		event.Value = fmt.Sprint(raw)
	}
	p.events().Error(event)
}

// events returns the record's sink; a zero Patient reports nowhere.
func (p *Patient) events() audit.Sink {
	if p.sink == nil {
		return audit.Discard
	}
	return p.sink
}

func (p *Patient) missingFields() []string {
	var missing []string
	for i, ok := range p.set {
		if !ok {
			missing = append(missing, fieldTable[i].name)
		}
	}
	return missing
}

// ReplaceDocument swaps document type and id together. Both values are validated
// before either is stored, so a failure leaves the record unchanged.
func (p *Patient) ReplaceDocument(documentType, documentID any) error {
	typeValue, err := fields.DocumentType(FieldDocumentType, documentType, fields.Context{})
	if err != nil {
		p.reject(FieldDocumentType, err, documentType)
		return err
	}
	kind, _ := fields.ParseDocumentKind(typeValue)
	idValue, err := fields.DocumentID(FieldDocumentID, documentID, fields.Context{DocumentKind: kind})
	if err != nil {
		p.reject(FieldDocumentID, err, documentID)
		return err
	}

	p.store(fieldIndex[FieldDocumentType], typeValue)
	p.store(fieldIndex[FieldDocumentID], idValue)
	p.events().Success(audit.Event{
		Subject: audit.SubjectReplaceDocument,
		Message: fmt.Sprintf("Patient %s document replaced", p.FullName()),
	})
	return nil
}

// Save appends the record's canonical line through w. Persistence failures are
// reported on the error channel and returned with their cause chained.
func (p *Patient) Save(ctx context.Context, w LineAppender) error {
	if err := w.AppendLine(ctx, p.Line()); err != nil {
		msg := saveFailureMessage(err)
		p.events().Error(audit.Event{
			Subject: audit.SubjectSave,
			Message: msg,
			Reason:  err.Error(),
		})
		return dErrors.Wrap(err, dErrors.CodeIO, msg)
	}
	p.events().Success(audit.Event{
		Subject: audit.SubjectSave,
		Message: fmt.Sprintf("Patient %s successfully saved", p.FullName()),
	})
	return nil
}

func saveFailureMessage(err error) string {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeEncoding:
		return "problem with encoding while saving patient"
	case dErrors.CodePermission:
		return "permission required to write to file"
	default:
		return "error while saving patient"
	}
}

func (p *Patient) get(field string) string {
	return p.values[fieldIndex[field]]
}

func (p *Patient) FirstName() string    { return p.get(FieldFirstName) }
func (p *Patient) LastName() string     { return p.get(FieldLastName) }
func (p *Patient) BirthDate() string    { return p.get(FieldBirthDate) }
func (p *Patient) Phone() string        { return p.get(FieldPhone) }
func (p *Patient) DocumentType() string { return p.get(FieldDocumentType) }
func (p *Patient) DocumentID() string   { return p.get(FieldDocumentID) }

// DocumentKind returns the kind resolved from the stored document type.
func (p *Patient) DocumentKind() fields.DocumentKind { return p.kind }

// FullName returns "First Last".
func (p *Patient) FullName() string {
	return p.FirstName() + " " + p.LastName()
}

// Values returns the canonical values in persisted order.
func (p *Patient) Values() []string {
	return append([]string(nil), p.values[:]...)
}

// Line returns the persisted form: canonical values joined by Delimiter.
// Field rules never accept a comma, so no escaping is needed.
func (p *Patient) Line() string {
	return strings.Join(p.values[:], Delimiter)
}

// String returns the canonical values joined by ", ".
func (p *Patient) String() string {
	return strings.Join(p.values[:], ", ")
}
