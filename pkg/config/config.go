package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/opbench/opbench/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// ConfigFileName is looked up in the working directory on every load.
const ConfigFileName = ".opbench.toml"

// EnvPrefix namespaces environment overrides, e.g. OPBENCH_MAX_ITERS=500000.
const EnvPrefix = "OPBENCH_"

// BenchConfig holds the tunables of the adaptive timing loop.
type BenchConfig struct {
	// Iterations, when non-zero, is an explicit per-attempt iteration
	// count requested by the caller.
	Iterations       int `koanf:"iterations"`
	WarmupIterations int `koanf:"warmup_iterations"`
	// MinTimePerTest is the cumulative wall-time floor (seconds) a test
	// must exceed before its measurement is reported.
	MinTimePerTest        float64 `koanf:"min_time_per_test"`
	Multiplier            int     `koanf:"multiplier"`
	PredefinedMinimumSecs float64 `koanf:"predefined_minimum_secs"`
	MaxIters              int     `koanf:"max_iters"`
}

// OutputConfig holds report formatting settings.
type OutputConfig struct {
	// Observer switches the per-test report to the single-line
	// machine-readable record.
	Observer bool `koanf:"observer"`
}

// Config is the full runner configuration snapshot.
type Config struct {
	Bench  BenchConfig  `koanf:"bench"`
	Output OutputConfig `koanf:"output"`
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load builds the configuration by layering, lowest priority first:
// embedded defaults, an optional .opbench.toml in the working directory,
// and OPBENCH_* environment variables (which map onto bench.* keys).
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	if _, err := os.Stat(ConfigFileName); err == nil {
		if err := k.Load(file.Provider(ConfigFileName), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load %s", ConfigFileName)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps OPBENCH_MAX_ITERS to bench.max_iters. Only bench tunables
// are overridable from the environment.
func envKey(s string) string {
	return "bench." + strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// Validate rejects values that would stall or break the adaptive loop.
func (c *Config) Validate() error {
	if c.Bench.Multiplier < 2 {
		return errors.Newf(errors.ErrConfigValid,
			"bench.multiplier must be at least 2, got %d", c.Bench.Multiplier)
	}
	if c.Bench.Iterations < 0 {
		return errors.Newf(errors.ErrConfigValid,
			"bench.iterations cannot be negative, got %d", c.Bench.Iterations)
	}
	if c.Bench.WarmupIterations < 0 {
		return errors.Newf(errors.ErrConfigValid,
			"bench.warmup_iterations cannot be negative, got %d", c.Bench.WarmupIterations)
	}
	if c.Bench.MaxIters < 1 {
		return errors.Newf(errors.ErrConfigValid,
			"bench.max_iters must be positive, got %d", c.Bench.MaxIters)
	}
	return nil
}
