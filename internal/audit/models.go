package audit

import (
	"time"

	"github.com/google/uuid"
)

// Channel separates successful outcomes from failures.
type Channel string

const (
	ChannelSuccess Channel = "success"
	ChannelError   Channel = "error"
)

// Event is emitted from record and store logic to capture each assignment and
// persistence outcome. Keep it transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID
	Timestamp time.Time
	Channel   Channel
	// Subject is the field name or operation the event is about.
	Subject string
	Message string
	// Value is the canonical value on success or the raw input on failure.
	Value  string
	Reason string
}

// Subjects for record-level operations. Field events use the field name.
const (
	SubjectCreate          = "create"
	SubjectSave            = "save"
	SubjectLoad            = "load"
	SubjectReplaceDocument = "replace_document"
	// SubjectUnknownField reports a set on a name outside the field table; the
	// name itself travels in Value.
	SubjectUnknownField = "unknown_field"
)
