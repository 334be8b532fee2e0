package mastery

import "fmt"

// Tracker updates a mastery probability from one correct/incorrect
// observation. It holds no state besides its parameters and is safe for
// concurrent use.
type Tracker struct {
	params Params
}

// NewTracker validates p and returns a Tracker using it.
func NewTracker(p Params) (*Tracker, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("tracker params: %w", err)
	}
	return &Tracker{params: p}, nil
}

// Params returns the tracker's model parameters.
func (t *Tracker) Params() Params {
	return t.params
}

// Posterior applies Bayes' rule to prior given the observation. When both
// terms of the denominator vanish the prior is returned unchanged.
func (t *Tracker) Posterior(prior float64, correct bool) float64 {
	p, _ := t.posterior(prior, correct)
	return p
}

// posterior reports false when the observation carries no information
// (zero denominator), in which case the clamped prior is returned.
func (t *Tracker) posterior(prior float64, correct bool) (float64, bool) {
	prior = clamp(prior, 0, 1)
	pCorrectKnown := 1 - t.params.SlipRate
	pCorrectUnknown := t.params.GuessRate

	var numerator, denominator float64
	if correct {
		numerator = prior * pCorrectKnown
		denominator = numerator + (1-prior)*pCorrectUnknown
	} else {
		numerator = prior * (1 - pCorrectKnown)
		denominator = numerator + (1-prior)*(1-pCorrectUnknown)
	}

	if denominator == 0 {
		return prior, false
	}
	return clamp(numerator/denominator, 0, 1), true
}

// Update returns the new mastery probability after one observation.
//
// On top of the Bayesian posterior every observation moves the estimate
// LearnRate of the way toward 1, whether or not it was correct. This is
// not the textbook BKT transition step.
//
// A degenerate observation (zero denominator) returns the prior as is.
func (t *Tracker) Update(prior float64, correct bool) float64 {
	posterior, ok := t.posterior(prior, correct)
	if !ok {
		return posterior
	}
	return clamp(posterior+t.params.LearnRate*(1-posterior), 0, 1)
}
