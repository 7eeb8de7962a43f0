package audit

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"patients/internal/platform/metrics"
)

// Emitter persists audit events. Satisfied by Publisher.
type Emitter interface {
	Emit(event Event) error
}

// Logger is the Sink used by the application: success events go to the success
// logger at info level, error events to the error logger at error level, and both
// are optionally forwarded to an Emitter.
type Logger struct {
	success *slog.Logger
	errors  *slog.Logger
	emitter Emitter
	metrics *metrics.Metrics
	now     func() time.Time
}

// LoggerOption configures the Logger.
type LoggerOption func(*Logger)

// WithEmitter forwards every event to e after it has been logged.
func WithEmitter(e Emitter) LoggerOption {
	return func(l *Logger) {
		l.emitter = e
	}
}

// WithMetrics counts events per channel and subject.
func WithMetrics(m *metrics.Metrics) LoggerOption {
	return func(l *Logger) {
		l.metrics = m
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) LoggerOption {
	return func(l *Logger) {
		l.now = now
	}
}

// NewLogger creates an audit logger. Either slog logger may be nil to skip text output
// on that channel.
func NewLogger(success, errors *slog.Logger, opts ...LoggerOption) *Logger {
	l := &Logger{
		success: success,
		errors:  errors,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Success records an event on the success channel.
func (l *Logger) Success(event Event) {
	l.record(l.stamp(event, ChannelSuccess))
}

// Error records an event on the error channel.
func (l *Logger) Error(event Event) {
	l.record(l.stamp(event, ChannelError))
}

func (l *Logger) stamp(event Event, channel Channel) Event {
	event.Channel = channel
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now()
	}
	return event
}

func (l *Logger) record(event Event) {
	l.logToText(event)
	l.emitToAudit(event)
	l.metrics.IncAuditEvent(string(event.Channel), event.Subject)
}

func (l *Logger) logToText(event Event) {
	args := []any{
		"event_id", event.ID.String(),
		"subject", event.Subject,
		"log_type", "audit",
	}
	if event.Value != "" {
		args = append(args, "value", event.Value)
	}
	if event.Reason != "" {
		args = append(args, "reason", event.Reason)
	}

	switch event.Channel {
	case ChannelError:
		if l.errors != nil {
			l.errors.Error(event.Message, args...)
		}
	default:
		if l.success != nil {
			l.success.Info(event.Message, args...)
		}
	}
}

func (l *Logger) emitToAudit(event Event) {
	if l.emitter == nil {
		return
	}
	if err := l.emitter.Emit(event); err != nil && l.errors != nil {
		l.errors.Error("failed to emit audit event",
			"error", err,
			"event_id", event.ID.String(),
			"subject", event.Subject,
		)
	}
}

var _ Sink = (*Logger)(nil)
