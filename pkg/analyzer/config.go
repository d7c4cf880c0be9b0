package analyzer

import (
	"fmt"
	"runtime"

	"github.com/fyrsmithlabs/circuitfold/internal/logging"
)

// Config controls one analysis pipeline.
type Config struct {
	// MinRepetitions is the minimum occurrence count for a pattern to become
	// a macro candidate. Must be at least 2.
	MinRepetitions int `koanf:"min_repetitions"`

	// MaxWindowSize is the largest window (in operations) the matcher
	// considers. Matcher cost grows with sequence length × window size, so
	// callers with very large circuits should keep this bounded.
	MaxWindowSize int `koanf:"max_window_size"`

	// Workers bounds the concurrent per-window-size matcher passes.
	Workers int `koanf:"workers"`

	// Logging configures the logger built by Load; ignored when the caller
	// supplies a logger directly.
	Logging logging.Config `koanf:"logging"`
}

// DefaultConfig returns the default analysis configuration.
func DefaultConfig() Config {
	return Config{
		MinRepetitions: 2,
		MaxWindowSize:  8,
		Workers:        runtime.GOMAXPROCS(0),
		Logging:        *logging.NewDefaultConfig(),
	}
}

// Validate rejects configurations the pipeline cannot honor.
func (c Config) Validate() error {
	if c.MinRepetitions < 2 {
		return fmt.Errorf("%w (got %d)", ErrMinRepetitionsTooSmall, c.MinRepetitions)
	}
	if c.MaxWindowSize < 1 {
		return fmt.Errorf("%w (got %d)", ErrMaxWindowSizeTooSmall, c.MaxWindowSize)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w (got %d)", ErrWorkersTooSmall, c.Workers)
	}
	return nil
}
