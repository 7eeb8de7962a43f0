package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	AuditEvents   *prometheus.CounterVec
	RecordsSaved  prometheus.Counter
	RecordsLoaded prometheus.Counter
	StoreFailures *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AuditEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "patients_audit_events_total",
			Help: "Total number of audit events by channel and subject",
		}, []string{"channel", "subject"}),
		RecordsSaved: factory.NewCounter(prometheus.CounterOpts{
			Name: "patients_records_saved_total",
			Help: "Total number of patient records appended to the store",
		}),
		RecordsLoaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "patients_records_loaded_total",
			Help: "Total number of patient records read back and re-validated",
		}),
		StoreFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "patients_store_failures_total",
			Help: "Total number of store operations that failed, by error code",
		}, []string{"code"}),
	}
}

func (m *Metrics) IncAuditEvent(channel, subject string) {
	if m == nil {
		return
	}
	m.AuditEvents.WithLabelValues(channel, subject).Inc()
}

func (m *Metrics) IncRecordsSaved() {
	if m == nil {
		return
	}
	m.RecordsSaved.Inc()
}

func (m *Metrics) IncRecordsLoaded() {
	if m == nil {
		return
	}
	m.RecordsLoaded.Inc()
}

func (m *Metrics) IncStoreFailure(code string) {
	if m == nil {
		return
	}
	m.StoreFailures.WithLabelValues(code).Inc()
}
