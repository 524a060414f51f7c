// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	repository "github.com/quaylabs/frisk/internal/adapters/repository"
	"github.com/quaylabs/frisk/internal/classifier"
	"github.com/quaylabs/frisk/internal/config"
	"github.com/quaylabs/frisk/internal/domain/features"
	"github.com/quaylabs/frisk/internal/domain/observation"
	"github.com/quaylabs/frisk/pkg/logger"
	"github.com/quaylabs/frisk/pkg/metrics"
)

// Service coordinates the prediction lifecycle: validate an observation,
// derive features, obtain a decision from the classifier gateway, record
// it, and later attach the reported outcome.
type Service struct {
	mu sync.RWMutex

	store    repository.Store
	gateway  classifier.Gateway
	manifest *classifier.Manifest

	// Configuration
	storeBackend string
	dbPath       string
	storeTimeout time.Duration
	modelDir     string

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects a prediction store, bypassing Start's own construction.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithGateway injects a classifier gateway, bypassing artifact loading.
func WithGateway(gw classifier.Gateway) Option {
	return func(s *Service) {
		if gw != nil {
			s.gateway = gw
		}
	}
}

// WithManifest injects a column/dtype manifest, bypassing artifact loading.
func WithManifest(m *classifier.Manifest) Option {
	return func(s *Service) {
		if m != nil {
			s.manifest = m
		}
	}
}

// WithStoreBackend selects the store built by Start: sqlite or memory.
func WithStoreBackend(backend string) Option {
	return func(s *Service) {
		if backend != "" {
			s.storeBackend = backend
		}
	}
}

// WithDBPath sets the SQLite database file.
func WithDBPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dbPath = path
		}
	}
}

// WithStoreTimeout bounds each store operation.
func WithStoreTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.storeTimeout = timeout
		}
	}
}

// WithModelDir sets the directory holding the classifier artifacts.
func WithModelDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.modelDir = dir
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storeBackend: config.StoreSQLite,
		dbPath:       "predictions.db",
		storeTimeout: 2 * time.Second,
		modelDir:     "artifacts",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds whatever components were not injected: the prediction store
// from the configured backend, and the manifest plus scorecard gateway from
// the model directory.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		switch s.storeBackend {
		case config.StoreMemory:
			s.store = repository.NewMemoryStore()
			s.logger.Info(ctx, "using in-memory prediction store")
		default:
			store, err := repository.NewSQLiteStore(s.dbPath, repository.WithOpTimeout(s.storeTimeout))
			if err != nil {
				return fmt.Errorf("open prediction store: %w", err)
			}
			s.store = store
			s.logger.Info(ctx, "using sqlite prediction store", logger.String("path", s.dbPath))
		}
	}

	if s.manifest == nil {
		m, err := classifier.LoadManifest(
			filepath.Join(s.modelDir, "columns.json"),
			filepath.Join(s.modelDir, "dtypes.json"),
		)
		if err != nil {
			return fmt.Errorf("load manifest: %w", err)
		}
		s.manifest = m
	}
	if s.gateway == nil {
		sc, err := classifier.LoadScorecard(filepath.Join(s.modelDir, "scorecard.json"))
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}
		s.gateway = sc
		s.logger.Info(ctx, "loaded scorecard model", logger.String("dir", s.modelDir))
	}

	s.started = true
	s.logger.Info(ctx, "decision service started",
		logger.String("store", s.storeBackend),
		logger.Int("columns", len(s.manifest.Columns())),
	)
	return nil
}

// Stop releases the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing prediction store", logger.Error(err))
		}
	}
	s.started = false
	s.logger.Info(context.Background(), "decision service stopped")
}

// Decide runs the record-and-decide operation on a raw observation payload.
// Nothing is persisted unless the classifier produced a decision and the
// observation id was unused; on a duplicate id the freshly computed
// decision is discarded so the stored decision always belongs to the first
// successful write.
func (s *Service) Decide(ctx context.Context, raw []byte) (bool, error) {
	var obs map[string]any
	if err := json.Unmarshal(raw, &obs); err != nil {
		return false, fmt.Errorf("decode observation: %w", err)
	}

	if err := observation.Validate(obs); err != nil {
		metrics.RecordValidationFailure(observation.CheckName(err))
		return false, err
	}

	derived, err := features.Derive(obs)
	if err != nil {
		metrics.RecordValidationFailure(observation.CheckTimestamp)
		return false, err
	}

	row, err := s.manifest.Encode(derived)
	if err != nil {
		metrics.RecordEncodingError()
		s.logger.Error(ctx, "feature encoding failed", logger.Error(err))
		return false, err
	}

	start := time.Now()
	decision, err := s.gateway.Predict(ctx, row)
	metrics.RecordClassifierLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordClassifierError()
		s.logger.Error(ctx, "classification failed", logger.Error(err))
		return false, err
	}

	id := obs[observation.ColumnID].(string) // validated above
	rec := repository.Record{
		ObservationID:  id,
		RawObservation: string(raw),
		Decision:       decision,
		CreatedAt:      time.Now().UTC(),
	}

	start = time.Now()
	err = s.store.Insert(ctx, rec)
	metrics.RecordStoreLatency("insert", float64(time.Since(start).Milliseconds()))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			metrics.RecordDuplicateID()
			s.logger.Debug(ctx, "duplicate observation id", logger.String("id", id))
		} else {
			metrics.RecordStoreError("insert")
			s.logger.Error(ctx, "recording prediction failed", logger.String("id", id), logger.Error(err))
		}
		return false, err
	}

	metrics.RecordPrediction()
	s.logger.Debug(ctx, "prediction recorded",
		logger.String("id", id),
		logger.Bool("decision", decision),
	)
	return decision, nil
}

// Resolve runs the attach-outcome operation, overwriting any previously
// attached outcome and returning the updated record with its original
// decision.
func (s *Service) Resolve(ctx context.Context, id string, outcome bool) (repository.Record, error) {
	start := time.Now()
	rec, err := s.store.SetOutcome(ctx, id, outcome)
	metrics.RecordStoreLatency("set_outcome", float64(time.Since(start).Milliseconds()))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.RecordOutcomeUnknownID()
		} else {
			metrics.RecordStoreError("set_outcome")
			s.logger.Error(ctx, "attaching outcome failed", logger.String("id", id), logger.Error(err))
		}
		return repository.Record{}, err
	}

	metrics.RecordOutcomeAttached()
	s.logger.Debug(ctx, "outcome attached",
		logger.String("id", id),
		logger.Bool("outcome", outcome),
		logger.Bool("decision", rec.Decision),
	)
	return rec, nil
}

// Lookup returns the stored record for id.
func (s *Service) Lookup(ctx context.Context, id string) (repository.Record, error) {
	return s.store.Get(ctx, id)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"store":   s.storeBackend,
	}
	if s.started {
		count, err := s.store.Count(context.Background())
		if err != nil {
			s.logger.Warn(context.Background(), "counting predictions failed", logger.Error(err))
			stats["records_error"] = err.Error()
		} else {
			stats["records"] = count
			metrics.UpdateRecordsTotal(count)
		}
	}
	return stats
}
