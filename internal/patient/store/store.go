// Package store persists patients as one comma-joined line per record in an
// append-only UTF-8 file and reads them back through a forward-only cursor.
//
// The file is never held open between calls: every append and every read step
// opens, does its work and closes. Readers therefore tolerate writers appending
// between steps. Concurrent writers may interleave lines; nothing here prevents it.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"patients/internal/audit"
	"patients/internal/patient"
	"patients/internal/platform/metrics"
	"patients/internal/platform/tracer"
	dErrors "patients/pkg/domain-errors"
	"patients/pkg/platform/validation"
)

const filePerm = 0o644

// Store appends patient lines to a file and hands out iterators over it.
type Store struct {
	path    string
	sink    audit.Sink
	metrics *metrics.Metrics
	tracer  tracer.Tracer
}

// Option configures a Store.
type Option func(*Store)

// WithMetrics counts saved and loaded records and store failures.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithTracer wraps appends and read steps in spans.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Store) {
		if t != nil {
			s.tracer = t
		}
	}
}

// New creates a store over path. sink receives the events of records rehydrated
// by iterators; a nil sink discards them.
func New(path string, sink audit.Sink, opts ...Option) *Store {
	if sink == nil {
		sink = audit.Discard
	}
	s := &Store{
		path:   path,
		sink:   sink,
		tracer: tracer.Noop,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Save appends p's canonical line. Reporting is done by the patient.
func (s *Store) Save(ctx context.Context, p *patient.Patient) error {
	return p.Save(ctx, s)
}

// AppendLine opens the file for appending, writes line plus a newline and
// closes it. The file is created if missing.
func (s *Store) AppendLine(ctx context.Context, line string) (err error) {
	_, span := s.tracer.Start(ctx, tracer.SpanStoreAppend,
		tracer.String(tracer.AttrPath, s.path),
		tracer.Int64(tracer.AttrBytes, int64(len(line)+1)),
	)
	defer func() {
		if err != nil {
			s.metrics.IncStoreFailure(string(dErrors.CodeOf(err)))
		} else {
			s.metrics.IncRecordsSaved()
		}
		span.End(err)
	}()

	if err := validateLine(line); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return classifyIO(err, "open patient file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = classifyIO(cerr, "close patient file")
		}
	}()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return classifyIO(err, "write patient line")
	}
	return nil
}

func validateLine(line string) error {
	if !utf8.ValidString(line) {
		return dErrors.New(dErrors.CodeEncoding, "line is not valid UTF-8")
	}
	if strings.ContainsAny(line, "\r\n") {
		return dErrors.New(dErrors.CodeIO, "line contains a line break")
	}
	if len(line) >= validation.MaxLineLength {
		return dErrors.New(dErrors.CodeIO,
			fmt.Sprintf("line exceeds %d bytes", validation.MaxLineLength-1))
	}
	return nil
}

// classifyIO maps a filesystem error onto the persistence error codes.
func classifyIO(err error, op string) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return dErrors.Wrap(err, dErrors.CodePermission, op)
	default:
		return dErrors.Wrap(err, dErrors.CodeIO, op)
	}
}

// Open returns an unbounded iterator positioned at the start of the file.
func (s *Store) Open() *Iterator {
	return &Iterator{store: s, remaining: unbounded}
}

// Limit returns an iterator positioned at the start of the file that yields at
// most n records.
func (s *Store) Limit(n int) (*Iterator, error) {
	return s.Open().Limit(n)
}
