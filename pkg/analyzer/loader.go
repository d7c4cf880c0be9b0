package analyzer

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// envPrefix namespaces the engine's environment variables.
	envPrefix = "CIRCUITFOLD_"

	maxConfigFileSize = 1 << 20
)

// envKeys maps environment variable suffixes to config paths. Field names
// contain underscores themselves, so a generic underscore-to-dot transform
// would mangle them; the table keeps the mapping explicit.
var envKeys = map[string]string{
	"MIN_REPETITIONS": "min_repetitions",
	"MAX_WINDOW_SIZE": "max_window_size",
	"WORKERS":         "workers",
	"LOGGING_LEVEL":   "logging.level",
	"LOGGING_FORMAT":  "logging.format",
}

// Load reads configuration with defaults-then-override precedence: hardcoded
// defaults, then the YAML file at configPath (if non-empty), then
// CIRCUITFOLD_* environment variables. The engine itself never loads
// configuration during analysis; Load exists for embedding applications.
//
//	min_repetitions: 2
//	max_window_size: 8
//	workers: 4
//	logging:
//	  level: info
//	  format: json
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	k := koanf.New(".")

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if len(content) > maxConfigFileSize {
			return nil, fmt.Errorf("config file %s exceeds %d bytes", configPath, maxConfigFileSize)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return envKeys[strings.TrimPrefix(s, envPrefix)]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
