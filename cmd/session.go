package cmd

import (
	"errors"
	"fmt"

	"s3util/core/config"
	"s3util/core/logger"
	"s3util/core/metrics"
	"s3util/core/objectstore"
	"s3util/core/storage"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// session bundles the dependencies shared by every command.
type session struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *objectstore.Store
	metrics *metrics.StorageMetrics
}

// openSession builds a session from the environment. Tests replace it.
var openSession = newSession

func newSession() (*session, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Storage.Bucket == "" {
		return nil, errors.New("storage bucket is not configured (set STORAGE_BUCKET)")
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := storage.NewBackend(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage backend: %w", err)
	}

	var backend storage.Backend = client
	var m *metrics.StorageMetrics
	if cfg.Metrics.Enabled {
		m = metrics.NewStorageMetrics(prometheus.NewRegistry())
		backend = storage.Instrument(backend, m)
	}

	store := objectstore.New(backend, cfg.Storage.Bucket, logg,
		objectstore.WithWaitTimeout(cfg.Storage.WaitTimeout()))

	return &session{cfg: cfg, logger: logg, store: store, metrics: m}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}
