package recommend

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/mastery"
)

const (
	beginnerAssignmentID  = 1
	challengeAssignmentID = 2

	difficultyStep = 20
	maxDifficulty  = 5
	challengeLevel = 3
)

// AdaptiveAssignments suggests what a student should work on right now.
// The result always holds exactly one suggestion:
//
//   - no records: a beginner assignment;
//   - weakest concept below the mastered threshold: reinforcement on it;
//   - otherwise: an intermediate challenge.
//
// The weakest concept is the record with the lowest score; ties go to the
// lowest concept ID.
func (e *Engine) AdaptiveAssignments(ctx context.Context, studentID int64) ([]AssignmentSuggestion, error) {
	st, err := e.load(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var s AssignmentSuggestion
	weakest, ok := weakestRecord(st.records)
	switch {
	case !ok:
		s = e.beginner()
	case weakest.Score < e.cfg.MasteredThreshold:
		concept, err := st.catalog.Get(weakest.ConceptID)
		if err != nil {
			return nil, err
		}
		s = AssignmentSuggestion{
			AssignmentID:    weakest.ConceptID*10 + 1,
			ConceptID:       weakest.ConceptID,
			Kind:            KindReinforcement,
			Title:           "Reinforcement: " + concept.Name,
			Description:     "Additional practice for " + concept.Name,
			DifficultyLevel: Difficulty(weakest.Score),
			EstimatedTime:   e.cfg.Times.Reinforcement,
		}
	default:
		s = AssignmentSuggestion{
			AssignmentID:    challengeAssignmentID,
			Kind:            KindChallenge,
			Title:           "Intermediate Challenge",
			Description:     "Apply your knowledge in new contexts",
			DifficultyLevel: challengeLevel,
			EstimatedTime:   e.cfg.Times.Challenge,
		}
	}

	e.metrics.ObserveAssignment(string(s.Kind))
	e.logger.Debug("chose assignment",
		zap.Int64("student_id", studentID),
		zap.String("kind", string(s.Kind)),
		zap.Int64("concept_id", s.ConceptID),
		zap.Int("difficulty", s.DifficultyLevel),
	)
	return []AssignmentSuggestion{s}, nil
}

// NextAssignment returns the single assignment to serve next.
func (e *Engine) NextAssignment(ctx context.Context, studentID int64) (AssignmentSuggestion, error) {
	suggestions, err := e.AdaptiveAssignments(ctx, studentID)
	if err != nil {
		return AssignmentSuggestion{}, err
	}
	if len(suggestions) == 0 {
		return AssignmentSuggestion{}, fmt.Errorf("no assignment for student %d", studentID)
	}
	return suggestions[0], nil
}

func (e *Engine) beginner() AssignmentSuggestion {
	return AssignmentSuggestion{
		AssignmentID:    beginnerAssignmentID,
		Kind:            KindBeginner,
		Title:           "Python Basics Starter",
		Description:     "Introduction to variables and data types",
		DifficultyLevel: 1,
		EstimatedTime:   e.cfg.Times.Beginner,
	}
}

// Difficulty maps a mastery score to an assignment level:
// max(1, floor(score/20)), capped at 5.
func Difficulty(score float64) int {
	level := int(math.Floor(score / difficultyStep))
	return max(1, min(level, maxDifficulty))
}

func weakestRecord(records []mastery.Record) (mastery.Record, bool) {
	if len(records) == 0 {
		return mastery.Record{}, false
	}
	weakest := records[0]
	for _, r := range records[1:] {
		if r.Score < weakest.Score || (r.Score == weakest.Score && r.ConceptID < weakest.ConceptID) {
			weakest = r
		}
	}
	return weakest, true
}
