package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
)

// New returns a structured JSON logger using slog at the given level.
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter returns a structured JSON logger writing to w.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// AuditFiles owns the two append-mode files behind the audit channels.
// The application closes them once, on shutdown.
type AuditFiles struct {
	Success *slog.Logger
	Error   *slog.Logger
	files   []*os.File
}

// OpenAudit opens (creating if needed) the success and error audit files for
// appending and returns a JSON logger on each.
func OpenAudit(successPath, errorPath string) (*AuditFiles, error) {
	success, err := openAppend(successPath)
	if err != nil {
		return nil, err
	}
	failure, err := openAppend(errorPath)
	if err != nil {
		_ = success.Close()
		return nil, err
	}
	return &AuditFiles{
		Success: NewWithWriter(success, slog.LevelInfo),
		Error:   NewWithWriter(failure, slog.LevelError),
		files:   []*os.File{success, failure},
	}, nil
}

func openAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// Close closes both files. It is safe to call more than once.
func (a *AuditFiles) Close() error {
	var errs []error
	for _, f := range a.files {
		errs = append(errs, f.Close())
	}
	a.files = nil
	return errors.Join(errs...)
}
