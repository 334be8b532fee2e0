package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/learnpath/internal/mastery"
	"github.com/abhisek/learnpath/internal/recommend"
)

// Config holds all learnpath configuration.
type Config struct {
	// DBPath is the SQLite database file. Empty means the default XDG path.
	DBPath string `yaml:"db_path"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`

	// MetricsFile, if set, receives the metrics in textfile-collector
	// format after every command.
	MetricsFile string `yaml:"metrics_file"`

	Mastery   mastery.Config   `yaml:"mastery"`
	Recommend recommend.Config `yaml:"recommend"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "warn",
		Mastery:   mastery.DefaultConfig(),
		Recommend: recommend.DefaultConfig(),
	}
}

// Load builds a Config from defaults, then the YAML file at path (if
// non-empty), then envFile (if it exists) and the environment.
// Variables already set in the environment win over envFile.
func Load(path, envFile string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides cfg with LEARNPATH_* environment variables.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("LEARNPATH_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LEARNPATH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LEARNPATH_METRICS_FILE"); v != "" {
		cfg.MetricsFile = v
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"LEARNPATH_INIT_PRIOR", &cfg.Mastery.Tracker.InitPrior},
		{"LEARNPATH_LEARN_RATE", &cfg.Mastery.Tracker.LearnRate},
		{"LEARNPATH_GUESS_RATE", &cfg.Mastery.Tracker.GuessRate},
		{"LEARNPATH_SLIP_RATE", &cfg.Mastery.Tracker.SlipRate},
		{"LEARNPATH_SEED_PRIOR_INCORRECT", &cfg.Mastery.SeedPriorIncorrect},
		{"LEARNPATH_MASTERED_THRESHOLD", &cfg.Recommend.MasteredThreshold},
		{"LEARNPATH_EXTENSION_THRESHOLD", &cfg.Recommend.ExtensionThreshold},
	}
	for _, f := range floats {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", f.key, v, mastery.ErrInvalidInput)
		}
		*f.dst = n
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every section. Out-of-range model values fail with
// mastery.ErrInvalidInput.
func (c Config) Validate() error {
	if err := validate.Var(c.LogLevel, "oneof=debug info warn error"); err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, mastery.ErrInvalidInput)
	}
	if err := c.Mastery.Validate(); err != nil {
		return fmt.Errorf("mastery: %w", err)
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}
