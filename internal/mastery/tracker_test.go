package mastery

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 0.001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func defaultTracker(t *testing.T) *Tracker {
	t.Helper()
	tr, err := NewTracker(DefaultParams())
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	return tr
}

func TestUpdate_CorrectFromHalf(t *testing.T) {
	tr := defaultTracker(t)
	// posterior = 0.45 / 0.5 = 0.9; nudge = 0.9 + 0.3*0.1 = 0.93
	if got := tr.Update(0.5, true); !almostEqual(got, 0.93) {
		t.Errorf("Update(0.5, true) = %f, want 0.93", got)
	}
}

func TestUpdate_IncorrectFromHalf(t *testing.T) {
	tr := defaultTracker(t)
	// posterior = 0.05 / 0.5 = 0.1; nudge = 0.1 + 0.3*0.9 = 0.37
	if got := tr.Update(0.5, false); !almostEqual(got, 0.37) {
		t.Errorf("Update(0.5, false) = %f, want 0.37", got)
	}
}

func TestPosterior_FromHalf(t *testing.T) {
	tr := defaultTracker(t)
	if got := tr.Posterior(0.5, true); !almostEqual(got, 0.9) {
		t.Errorf("Posterior(0.5, true) = %f, want 0.9", got)
	}
	if got := tr.Posterior(0.5, false); !almostEqual(got, 0.1) {
		t.Errorf("Posterior(0.5, false) = %f, want 0.1", got)
	}
}

func TestUpdate_IncorrectFromLowSeed(t *testing.T) {
	tr := defaultTracker(t)
	// posterior = 0.02 / (0.02 + 0.8*0.9) = 0.027027; nudge = 0.027027 + 0.3*0.972973 = 0.318919
	if got := tr.Update(0.2, false); !almostEqual(got, 0.318919) {
		t.Errorf("Update(0.2, false) = %f, want 0.318919", got)
	}
}

func TestUpdate_NeverBelowPosterior(t *testing.T) {
	tr := defaultTracker(t)
	for i := 0; i <= 100; i++ {
		prior := float64(i) / 100
		for _, correct := range []bool{true, false} {
			post := tr.Posterior(prior, correct)
			got := tr.Update(prior, correct)
			if got < post {
				t.Errorf("Update(%.2f, %v) = %f below posterior %f", prior, correct, got, post)
			}
		}
	}
}

func TestUpdate_StaysInUnitInterval(t *testing.T) {
	params := []Params{
		DefaultParams(),
		{InitPrior: 0, LearnRate: 1, GuessRate: 0, SlipRate: 0},
		{InitPrior: 1, LearnRate: 0, GuessRate: 1, SlipRate: 1},
		{InitPrior: 0.3, LearnRate: 0.9, GuessRate: 0.5, SlipRate: 0.01},
	}
	for _, p := range params {
		tr, err := NewTracker(p)
		if err != nil {
			t.Fatalf("NewTracker(%+v): %v", p, err)
		}
		for i := 0; i <= 20; i++ {
			prior := float64(i) / 20
			for _, correct := range []bool{true, false} {
				got := tr.Update(prior, correct)
				if got < 0 || got > 1 || math.IsNaN(got) {
					t.Errorf("params %+v: Update(%.2f, %v) = %f outside [0,1]", p, prior, correct, got)
				}
			}
		}
	}
}

func TestUpdate_Deterministic(t *testing.T) {
	tr := defaultTracker(t)
	a := tr.Update(0.42, true)
	b := tr.Update(0.42, true)
	if a != b {
		t.Errorf("Update not reproducible: %v != %v", a, b)
	}
}

func TestUpdate_DegenerateReturnsPrior(t *testing.T) {
	tr, err := NewTracker(Params{InitPrior: 0.5, LearnRate: 0.3, GuessRate: 0, SlipRate: 0})
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}

	// prior 0, correct: 0*1 + 1*0 = 0
	if got := tr.Update(0, true); got != 0 {
		t.Errorf("Update(0, true) = %f, want 0 (prior unchanged)", got)
	}
	// prior 1, incorrect: 1*0 + 0*1 = 0
	if got := tr.Update(1, false); got != 1 {
		t.Errorf("Update(1, false) = %f, want 1 (prior unchanged)", got)
	}
}

func TestUpdate_RepeatedCorrectConverges(t *testing.T) {
	tr := defaultTracker(t)
	p := 0.2
	for i := 0; i < 10; i++ {
		next := tr.Update(p, true)
		if next < p {
			t.Fatalf("step %d: mastery decreased from %f to %f", i, p, next)
		}
		p = next
	}
	if p < 0.99 {
		t.Errorf("after 10 correct answers mastery = %f, want >= 0.99", p)
	}
}

func TestNewTracker_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"negative prior", Params{InitPrior: -0.1, LearnRate: 0.3, GuessRate: 0.1, SlipRate: 0.1}},
		{"learn rate above one", Params{InitPrior: 0.5, LearnRate: 1.5, GuessRate: 0.1, SlipRate: 0.1}},
		{"guess rate NaN", Params{InitPrior: 0.5, LearnRate: 0.3, GuessRate: math.NaN(), SlipRate: 0.1}},
		{"slip rate above one", Params{InitPrior: 0.5, LearnRate: 0.3, GuessRate: 0.1, SlipRate: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTracker(tt.params)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestScoreConversions(t *testing.T) {
	if got := ScoreToProbability(93); !almostEqual(got, 0.93) {
		t.Errorf("ScoreToProbability(93) = %f", got)
	}
	if got := ScoreToProbability(140); got != 1 {
		t.Errorf("ScoreToProbability(140) = %f, want 1", got)
	}
	if got := ProbabilityToScore(0.37); !almostEqual(got, 37) {
		t.Errorf("ProbabilityToScore(0.37) = %f", got)
	}
	if got := ProbabilityToScore(-0.2); got != 0 {
		t.Errorf("ProbabilityToScore(-0.2) = %f, want 0", got)
	}
}

func TestObservation(t *testing.T) {
	tests := []struct {
		score       float64
		wantCorrect bool
		wantErr     bool
	}{
		{0, false, false},
		{69.99, false, false},
		{70, true, false},
		{100, true, false},
		{-1, false, true},
		{100.5, true, true},
		{math.NaN(), false, true},
	}
	for _, tt := range tests {
		o := Observation{StudentID: 1, ConceptID: 1, RawScore: tt.score}
		err := o.Validate()
		if tt.wantErr != (err != nil) {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.score, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Validate(%v) = %v, want ErrInvalidInput", tt.score, err)
		}
		if !tt.wantErr && o.Correct() != tt.wantCorrect {
			t.Errorf("Correct(%v) = %v, want %v", tt.score, o.Correct(), tt.wantCorrect)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cfg := DefaultConfig()
	cfg.SeedPriorIncorrect = 1.2
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
	cfg = DefaultConfig()
	cfg.Tracker.LearnRate = -1
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nested tracker params not validated: %v", err)
	}
}
