package sentinel

import "errors"

// Sentinel control-flow errors. Callers compare with errors.Is; they are never
// reported as failures.
var (
	// ErrExhausted signals that a record iterator has no more records to yield,
	// either because the file has no more lines or because its limit reached zero.
	ErrExhausted = errors.New("exhausted")
)
