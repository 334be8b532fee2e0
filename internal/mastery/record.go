package mastery

import (
	"time"

	"github.com/abhisek/learnpath/internal/store"
)

// PassScore is the raw score at or above which an observation counts as
// a correct response.
const PassScore = 70

// Record is a student's mastery of one concept. Score is on the 0-100
// scale used at the storage boundary.
type Record struct {
	StudentID int64
	ConceptID int64
	Score     float64
	UpdatedAt time.Time
}

// Probability returns the mastery estimate in [0, 1].
func (r Record) Probability() float64 {
	return ScoreToProbability(r.Score)
}

// Observation is one graded submission.
type Observation struct {
	StudentID int64
	ConceptID int64
	RawScore  float64 `validate:"gte=0,lte=100"`
}

// Validate returns ErrInvalidInput if the raw score is outside [0, 100].
func (o Observation) Validate() error {
	return validateStruct(o)
}

// Correct reports whether the observation counts as a correct response.
func (o Observation) Correct() bool {
	return o.RawScore >= PassScore
}

// ScoreToProbability converts a 0-100 score to a probability in [0, 1].
func ScoreToProbability(score float64) float64 {
	return clamp(score/100, 0, 1)
}

// ProbabilityToScore converts a probability to a 0-100 score.
func ProbabilityToScore(p float64) float64 {
	return clamp(p*100, 0, 100)
}

func recordFromData(d store.MasteryData) Record {
	return Record{
		StudentID: d.StudentID,
		ConceptID: d.ConceptID,
		Score:     d.Score,
		UpdatedAt: d.UpdatedAt,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
