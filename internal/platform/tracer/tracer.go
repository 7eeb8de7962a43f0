// Package tracer provides a lightweight tracing abstraction for the patient store.
//
// The store emits spans through this interface so it stays decoupled from
// OpenTelemetry APIs. Implementations:
//   - NoopTracer: for tests and when tracing is disabled
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording any error that occurred.
	// End must be called exactly once, typically via defer.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans.
type Tracer interface {
	// Start creates a new span with the given name and attributes.
	// The returned context carries the new span.
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// HashDocumentID returns a truncated SHA-256 hash of a document id so traces
// can be correlated without carrying the id itself.
func HashDocumentID(documentID string) string {
	if documentID == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(documentID))
	return hex.EncodeToString(hash[:8])
}

// Span names used by the patient store.
const (
	SpanStoreAppend = "patients.store.append"
	SpanStoreNext   = "patients.store.next"
)

// Attribute keys used by the patient store.
const (
	AttrPath       = "store.path"
	AttrOffset     = "store.offset"
	AttrBytes      = "store.bytes"
	AttrRemaining  = "store.remaining"
	AttrExhausted  = "store.exhausted"
	AttrDocumentID = "patient.document_id_hash"
)
