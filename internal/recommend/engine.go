package recommend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/catalog"
	"github.com/abhisek/learnpath/internal/logging"
	"github.com/abhisek/learnpath/internal/mastery"
	"github.com/abhisek/learnpath/internal/metrics"
)

// MasterySource lists a student's mastery records ordered by concept ID.
// A student with no records yields an empty slice, not an error.
type MasterySource interface {
	ListForStudent(ctx context.Context, studentID int64) ([]mastery.Record, error)
}

// Engine turns a student's mastery records into a learning path and an
// assignment suggestion. It keeps no state between calls.
type Engine struct {
	catalog catalog.Loader
	mastery MasterySource
	cfg     Config
	logger  *zap.Logger
	metrics *metrics.Collector
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = logging.OrNop(l) }
}

// WithMetrics sets the metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Engine) { e.metrics = c }
}

// NewEngine validates cfg and creates an engine.
func NewEngine(concepts catalog.Loader, records MasterySource, cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("recommend config: %w", err)
	}
	e := &Engine{
		catalog: concepts,
		mastery: records,
		cfg:     cfg,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// studentState is the catalog together with the student's records that
// refer to concepts in it.
type studentState struct {
	catalog *catalog.Catalog
	records []mastery.Record
	scores  map[int64]float64

	// observed is true if the student has any record, including records
	// for concepts missing from the catalog.
	observed bool
}

func (e *Engine) load(ctx context.Context, studentID int64) (*studentState, error) {
	cat, err := e.catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	records, err := e.mastery.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("load mastery: %w", err)
	}

	st := &studentState{
		catalog: cat,
		records: make([]mastery.Record, 0, len(records)),
		scores:  make(map[int64]float64, len(records)),

		observed: len(records) > 0,
	}
	for _, r := range records {
		if !cat.Has(r.ConceptID) {
			e.logger.Debug("skipping record for unknown concept",
				zap.Int64("student_id", studentID),
				zap.Int64("concept_id", r.ConceptID),
			)
			continue
		}
		st.records = append(st.records, r)
		st.scores[r.ConceptID] = r.Score
	}
	return st, nil
}
