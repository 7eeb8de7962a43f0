package main

import (
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"patients/internal/audit"
	"patients/internal/patient/store"
	"patients/internal/platform/config"
	"patients/internal/platform/logger"
	"patients/internal/platform/metrics"
	"patients/internal/platform/tracer"
)

// app holds the dependencies of one command invocation.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	files    *logger.AuditFiles
	sink     *audit.Logger
	trail    *audit.Publisher
	registry *prometheus.Registry
	store    *store.Store
}

func newApp(cfg config.Config, log *slog.Logger) (*app, error) {
	files, err := logger.OpenAudit(cfg.SuccessLog, cfg.ErrorLog)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	trail := audit.NewPublisher(audit.NewInMemoryStore())
	sink := audit.NewLogger(files.Success, files.Error,
		audit.WithEmitter(trail),
		audit.WithMetrics(m),
	)

	return &app{
		cfg:      cfg,
		log:      log,
		files:    files,
		sink:     sink,
		trail:    trail,
		registry: registry,
		store: store.New(cfg.File, sink,
			store.WithMetrics(m),
			store.WithTracer(tracer.NewOTel(nil)),
		),
	}, nil
}

func (a *app) Close() error {
	if a == nil {
		return nil
	}
	if err := a.files.Close(); err != nil {
		return errors.Join(errors.New("failed to close audit logs"), err)
	}
	return nil
}
