package audit

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"patients/internal/platform/metrics"
)

type failingEmitter struct {
	err error
}

func (e failingEmitter) Emit(Event) error { return e.err }

// LoggerSuite tests the two-channel audit logger.
//
// Justification: The success and error channels are separate audit trails.
// An event landing on the wrong channel, or losing its subject, breaks the trail.
type LoggerSuite struct {
	suite.Suite
	successBuf *bytes.Buffer
	errorBuf   *bytes.Buffer
	store      *InMemoryStore
	logger     *Logger
	fixedNow   time.Time
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerSuite))
}

func (s *LoggerSuite) SetupTest() {
	s.successBuf = &bytes.Buffer{}
	s.errorBuf = &bytes.Buffer{}
	s.store = NewInMemoryStore()
	s.fixedNow = time.Date(2024, 5, 14, 12, 0, 0, 0, time.UTC)
	s.logger = NewLogger(
		slog.New(slog.NewJSONHandler(s.successBuf, nil)),
		slog.New(slog.NewJSONHandler(s.errorBuf, nil)),
		WithEmitter(NewPublisher(s.store)),
		WithClock(func() time.Time { return s.fixedNow }),
	)
}

func (s *LoggerSuite) decode(buf *bytes.Buffer) map[string]any {
	var line map[string]any
	s.Require().NoError(json.Unmarshal(buf.Bytes(), &line))
	return line
}

func (s *LoggerSuite) TestSuccessChannel() {
	s.logger.Success(Event{Subject: "first_name", Message: "first_name assigned as Ivan", Value: "Ivan"})

	s.Empty(s.errorBuf.String())
	line := s.decode(s.successBuf)
	s.Equal("INFO", line["level"])
	s.Equal("first_name assigned as Ivan", line["msg"])
	s.Equal("first_name", line["subject"])
	s.Equal("Ivan", line["value"])
	s.Equal("audit", line["log_type"])

	events := s.store.ListByChannel(ChannelSuccess)
	s.Require().Len(events, 1)
	s.NotEqual(uuid.Nil, events[0].ID)
	s.Equal(s.fixedNow, events[0].Timestamp)
}

func (s *LoggerSuite) TestErrorChannel() {
	s.logger.Error(Event{Subject: "phone", Message: "phone rejected", Value: "123", Reason: "too short"})

	s.Empty(s.successBuf.String())
	line := s.decode(s.errorBuf)
	s.Equal("ERROR", line["level"])
	s.Equal("too short", line["reason"])

	s.Len(s.store.ListByChannel(ChannelError), 1)
	s.Empty(s.store.ListByChannel(ChannelSuccess))
}

func (s *LoggerSuite) TestPreservesProvidedIdentity() {
	id := uuid.New()
	ts := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s.logger.Success(Event{ID: id, Timestamp: ts, Subject: "save"})

	events, err := s.store.ListAll()
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(id, events[0].ID)
	s.Equal(ts, events[0].Timestamp)
}

func (s *LoggerSuite) TestEmitterFailureIsReported() {
	errorBuf := &bytes.Buffer{}
	logger := NewLogger(nil, slog.New(slog.NewJSONHandler(errorBuf, nil)),
		WithEmitter(failingEmitter{err: errors.New("disk full")}))

	logger.Success(Event{Subject: "save", Message: "saved"})

	s.Contains(errorBuf.String(), "failed to emit audit event")
	s.Contains(errorBuf.String(), "disk full")
}

func (s *LoggerSuite) TestNilLoggersAreSkipped() {
	logger := NewLogger(nil, nil)
	s.NotPanics(func() {
		logger.Success(Event{Subject: "create"})
		logger.Error(Event{Subject: "create"})
	})
}

func (s *LoggerSuite) TestCountsEvents() {
	m := metrics.New(prometheus.NewRegistry())
	logger := NewLogger(nil, nil, WithMetrics(m))

	logger.Success(Event{Subject: "phone"})
	logger.Error(Event{Subject: "phone"})
	logger.Error(Event{Subject: "phone"})

	s.Equal(1.0, testutil.ToFloat64(m.AuditEvents.WithLabelValues("success", "phone")))
	s.Equal(2.0, testutil.ToFloat64(m.AuditEvents.WithLabelValues("error", "phone")))
}

func (s *LoggerSuite) TestDiscard() {
	s.NotPanics(func() {
		Discard.Success(Event{})
		Discard.Error(Event{})
	})
}
