package mastery

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/logging"
	"github.com/abhisek/learnpath/internal/metrics"
	"github.com/abhisek/learnpath/internal/store"
)

// Service applies observations to persisted mastery records.
//
// The read-modify-write of a record runs inside store.MasteryRepo.Update,
// which serializes writers for the same key; the service itself holds no
// locks and no per-student state.
type Service struct {
	repo          store.MasteryRepo
	tracker       *Tracker
	seedIncorrect float64
	logger        *zap.Logger
	metrics       *metrics.Collector
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = logging.OrNop(l) }
}

// WithMetrics sets the metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Service) { s.metrics = c }
}

// NewService validates cfg and creates a mastery service.
func NewService(repo store.MasteryRepo, cfg Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("mastery config: %w", err)
	}
	tracker, err := NewTracker(cfg.Tracker)
	if err != nil {
		return nil, err
	}

	s := &Service{
		repo:          repo,
		tracker:       tracker,
		seedIncorrect: cfg.SeedPriorIncorrect,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SeedPrior returns the prior for a student's first observation on a
// concept.
func (s *Service) SeedPrior(correct bool) float64 {
	if correct {
		return s.tracker.Params().InitPrior
	}
	return s.seedIncorrect
}

// UpdateMasteryScore records a graded submission and returns the new
// mastery score (0-100). The record is created on the first observation.
//
// A raw score outside [0, 100] fails with ErrInvalidInput before anything
// is read or written. An unknown concept fails with store.ErrNotFound.
func (s *Service) UpdateMasteryScore(ctx context.Context, studentID, conceptID int64, rawScore float64) (float64, error) {
	obs := Observation{StudentID: studentID, ConceptID: conceptID, RawScore: rawScore}
	if err := obs.Validate(); err != nil {
		s.metrics.ObserveUpdateError("invalid_input")
		return 0, fmt.Errorf("score: %w", err)
	}
	correct := obs.Correct()

	var (
		previous float64
		created  bool
	)
	rec, err := s.repo.Update(ctx, studentID, conceptID, func(current *store.MasteryData) (float64, error) {
		prior := s.SeedPrior(correct)
		created = current == nil
		if current != nil {
			previous = current.Score
			prior = ScoreToProbability(current.Score)
		}
		return ProbabilityToScore(s.tracker.Update(prior, correct)), nil
	})

	logger := s.logger.With(
		zap.String("observation_id", uuid.NewString()),
		zap.Int64("student_id", studentID),
		zap.Int64("concept_id", conceptID),
		zap.Float64("raw_score", rawScore),
		zap.Bool("correct", correct),
	)

	if err != nil {
		reason := "store"
		if errors.Is(err, store.ErrNotFound) {
			reason = "not_found"
		}
		s.metrics.ObserveUpdateError(reason)
		logger.Warn("mastery update failed", zap.Error(err))
		return 0, fmt.Errorf("update mastery: %w", err)
	}

	s.metrics.ObserveUpdate(correct, rec.Score)
	logger.Info("updated mastery",
		zap.Bool("created", created),
		zap.Float64("previous", previous),
		zap.Float64("mastery", rec.Score),
	)
	return rec.Score, nil
}

// Record returns the student's record for a concept, or nil if the student
// has not been observed on it.
func (s *Service) Record(ctx context.Context, studentID, conceptID int64) (*Record, error) {
	d, err := s.repo.Get(ctx, studentID, conceptID)
	if err != nil {
		return nil, fmt.Errorf("get mastery: %w", err)
	}
	if d == nil {
		return nil, nil
	}
	r := recordFromData(*d)
	return &r, nil
}

// ListForStudent returns all of a student's records ordered by concept ID.
// An unknown student has no records; that is not an error.
func (s *Service) ListForStudent(ctx context.Context, studentID int64) ([]Record, error) {
	rows, err := s.repo.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list mastery: %w", err)
	}
	records := make([]Record, 0, len(rows))
	for _, d := range rows {
		records = append(records, recordFromData(d))
	}
	return records, nil
}
