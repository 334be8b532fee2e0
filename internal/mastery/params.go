package mastery

const (
	DefaultInitPrior = 0.5
	DefaultLearnRate = 0.3
	DefaultGuessRate = 0.1
	DefaultSlipRate  = 0.1

	// DefaultSeedPriorIncorrect is the prior used for a student's first
	// observation on a concept when that observation is incorrect.
	DefaultSeedPriorIncorrect = 0.2
)

// Params are the knowledge tracing model parameters. All values are
// probabilities in [0, 1].
type Params struct {
	// InitPrior is the mastery probability assumed for an unseen concept.
	InitPrior float64 `yaml:"init_prior" validate:"gte=0,lte=1"`
	// LearnRate is the fraction of the remaining gap to certainty added
	// after every observation.
	LearnRate float64 `yaml:"learn_rate" validate:"gte=0,lte=1"`
	// GuessRate is P(correct | not mastered).
	GuessRate float64 `yaml:"guess_rate" validate:"gte=0,lte=1"`
	// SlipRate is P(incorrect | mastered).
	SlipRate float64 `yaml:"slip_rate" validate:"gte=0,lte=1"`
}

// DefaultParams returns the standard model parameters.
func DefaultParams() Params {
	return Params{
		InitPrior: DefaultInitPrior,
		LearnRate: DefaultLearnRate,
		GuessRate: DefaultGuessRate,
		SlipRate:  DefaultSlipRate,
	}
}

// Validate returns ErrInvalidInput if any parameter is outside [0, 1].
func (p Params) Validate() error {
	return validateStruct(p)
}

// Config controls the mastery service.
type Config struct {
	Tracker Params `yaml:"tracker"`

	// SeedPriorIncorrect replaces Tracker.InitPrior as the prior for a
	// first observation that is incorrect.
	SeedPriorIncorrect float64 `yaml:"seed_prior_incorrect" validate:"gte=0,lte=1"`
}

// DefaultConfig returns a Config with the standard parameters.
func DefaultConfig() Config {
	return Config{
		Tracker:            DefaultParams(),
		SeedPriorIncorrect: DefaultSeedPriorIncorrect,
	}
}

// Validate returns ErrInvalidInput if any value is out of range.
func (c Config) Validate() error {
	return validateStruct(c)
}
