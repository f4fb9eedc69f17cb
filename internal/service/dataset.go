package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"footfall/internal/engine"
	"footfall/internal/metrics"
)

// DatasetService runs dataset loads into a store.
type DatasetService struct {
	store   *engine.Store
	source  engine.Source
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewDatasetService wires a store to its source. A zero timeout means the
// fetch runs until it completes or ctx is cancelled.
func NewDatasetService(store *engine.Store, src engine.Source, timeout time.Duration, m *metrics.Metrics, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{store: store, source: src, timeout: timeout, metrics: m, logger: logger}
}

func (s *DatasetService) Store() *engine.Store { return s.store }

// Load fetches the dataset and publishes it, returning the load error.
func (s *DatasetService) Load(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	loadID := uuid.NewString()
	log := s.logger.With(slog.String("load_id", loadID), slog.String("source", s.source.String()))
	log.InfoContext(ctx, "dataset load started")

	start := time.Now()
	rows, err := s.store.Reload(ctx, s.source)
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.ObserveLoad(elapsed, rows, err)
	}

	if err != nil {
		log.ErrorContext(ctx, "dataset load failed", slog.String("error", err.Error()), slog.Duration("elapsed", elapsed))
		return err
	}
	log.InfoContext(ctx, "dataset load complete", slog.Int("rows", rows), slog.Duration("elapsed", elapsed))
	return nil
}

// Start runs Load in the background. It does nothing once ctx is done or
// Wait has been called, and reports whether a load was started.
func (s *DatasetService) Start(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || ctx.Err() != nil {
		return false
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = s.Load(ctx)
	}()
	return true
}

// Wait stops new background loads and blocks until the running ones return.
func (s *DatasetService) Wait() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.wg.Wait()
}
