package recommend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/learnpath/internal/mastery"
)

// Default thresholds on the 0-100 mastery scale.
const (
	DefaultMasteredThreshold  = mastery.PassScore
	DefaultExtensionThreshold = 90
)

// EstimatedTimes are the minutes attached to each kind of output.
type EstimatedTimes struct {
	Foundational  int `yaml:"foundational" validate:"gt=0"`
	WeakArea      int `yaml:"weak_area" validate:"gt=0"`
	NextConcept   int `yaml:"next_concept" validate:"gt=0"`
	Extension     int `yaml:"extension" validate:"gt=0"`
	Beginner      int `yaml:"beginner" validate:"gt=0"`
	Reinforcement int `yaml:"reinforcement" validate:"gt=0"`
	Challenge     int `yaml:"challenge" validate:"gt=0"`
}

// Config controls the recommendation engine.
type Config struct {
	// MasteredThreshold is the score at or above which a concept counts as
	// mastered.
	MasteredThreshold float64 `yaml:"mastered_threshold" validate:"gte=0,lte=100"`
	// ExtensionThreshold is the score at or above which a concept triggers
	// advanced extensions.
	ExtensionThreshold float64 `yaml:"extension_threshold" validate:"gte=0,lte=100,gtefield=MasteredThreshold"`

	// FoundationalMarkers are matched case-insensitively against concept
	// names for students with no records.
	FoundationalMarkers []string `yaml:"foundational_markers" validate:"dive,required"`
	// FoundationalFallback is how many catalog concepts to recommend when
	// no name carries a marker.
	FoundationalFallback int `yaml:"foundational_fallback" validate:"gte=0"`

	// ExtensionPrefixLen is how many leading characters of a mastered
	// concept's name identify related concepts.
	ExtensionPrefixLen int `yaml:"extension_prefix_len" validate:"gte=1"`
	// MaxExtensions caps the extensions added per mastered concept.
	MaxExtensions int `yaml:"max_extensions" validate:"gte=0"`

	Times EstimatedTimes `yaml:"estimated_times"`
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		MasteredThreshold:    DefaultMasteredThreshold,
		ExtensionThreshold:   DefaultExtensionThreshold,
		FoundationalMarkers:  []string{"basic", "intro"},
		FoundationalFallback: 3,
		ExtensionPrefixLen:   4,
		MaxExtensions:        2,
		Times: EstimatedTimes{
			Foundational:  60,
			WeakArea:      90,
			NextConcept:   120,
			Extension:     150,
			Beginner:      20,
			Reinforcement: 30,
			Challenge:     45,
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate returns mastery.ErrInvalidInput describing every out-of-range
// value.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", mastery.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s %s", fe.Namespace(), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("%w: %s", mastery.ErrInvalidInput, strings.Join(msgs, "; "))
}
