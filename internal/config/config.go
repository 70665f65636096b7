// Package config loads host-level REPL/CLI configuration: the verbose
// default, OSTIA progress-report cadence, and the dataset reader's
// subprocess timeout. None of this is consumed by the core compiler or
// evaluator (spec: "no environment variables are consumed by the core").
// cmd/solomonoff reads only the verbose setting, through Level, to pick its
// internal/obs log level. ProgressInterval and DatasetTimeout are decoded
// but no other package reads them: internal/ostia reports progress on its
// own fixed interval, and internal/registry runs dataset subprocesses
// without a timeout.
package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Config is the decoded TOML document (spec §5, §9).
type Config struct {
	Verbose            bool          `toml:"verbose"`
	ProgressInterval    time.Duration `toml:"-"`
	ProgressIntervalRaw string        `toml:"progress_interval"`
	DatasetTimeout      time.Duration `toml:"-"`
	DatasetTimeoutRaw   string        `toml:"dataset_timeout"`
}

// Default returns the zero-value-safe configuration used when no file is
// given: verbose off, an 8-second progress cadence matching spec §5, and a
// generous dataset subprocess timeout.
func Default() Config {
	return Config{
		Verbose:          false,
		ProgressInterval: 8 * time.Second,
		DatasetTimeout:   30 * time.Second,
	}
}

// Load decodes a TOML file at path over Default(), so a partial file only
// overrides the fields it sets.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.ProgressIntervalRaw != "" {
		d, err := time.ParseDuration(cfg.ProgressIntervalRaw)
		if err != nil {
			return Config{}, err
		}
		cfg.ProgressInterval = d
	}
	if cfg.DatasetTimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.DatasetTimeoutRaw)
		if err != nil {
			return Config{}, err
		}
		cfg.DatasetTimeout = d
	}
	return cfg, nil
}

// Level resolves the configured verbosity to a zerolog level (spec §9's
// "`verbose true` unambiguously means emit debug output" decision).
func (c Config) Level() zerolog.Level {
	if c.Verbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
