package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Optimizer  OptimizerConfig  `mapstructure:"optimizer"`
	Cards      CardsConfig      `mapstructure:"cards"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level     string `mapstructure:"level"`     // debug, info, warn, error
	Format    string `mapstructure:"format"`    // json or console
	Verbosity string `mapstructure:"verbosity"` // normal or verbose
}

// Verbose reports whether verbose output was requested.
func (c LoggingConfig) Verbose() bool {
	return c.Verbosity == VerbosityVerbose
}

// SimulationConfig controls the batch runner and the games it plays.
type SimulationConfig struct {
	BatchSize    int    `mapstructure:"batch_size"`
	MaxTurns     int    `mapstructure:"max_turns"`
	StartingLife int    `mapstructure:"starting_life"`
	OpeningHand  int    `mapstructure:"opening_hand"`
	Seed         int64  `mapstructure:"seed"`
	Workers      int    `mapstructure:"workers"`
	ReplayDir    string `mapstructure:"replay_dir"`
}

// OptimizerConfig controls the land ratio search.
type OptimizerConfig struct {
	StartLands    int     `mapstructure:"start_lands"`
	StartNonlands int     `mapstructure:"start_nonlands"`
	MinSamples    int     `mapstructure:"min_samples"`
	Tolerance     float64 `mapstructure:"tolerance"`
	MaxIterations int     `mapstructure:"max_iterations"`
}

// CardsConfig points at an optional card catalog file.
type CardsConfig struct {
	Path string `mapstructure:"path"`
}

const (
	VerbosityNormal  = "normal"
	VerbosityVerbose = "verbose"

	envPrefix = "DECKOPT"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"lands":      "optimizer.start_lands",
	"nonlands":   "optimizer.start_nonlands",
	"batch-size": "simulation.batch_size",
	"seed":       "simulation.seed",
	"cards":      "cards.path",
	"replay-dir": "simulation.replay_dir",
	"verbose":    "logging.verbosity",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.verbosity", VerbosityNormal)

	v.SetDefault("simulation.batch_size", 100)
	v.SetDefault("simulation.max_turns", 50)
	v.SetDefault("simulation.starting_life", 20)
	v.SetDefault("simulation.opening_hand", 7)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.workers", 0)
	v.SetDefault("simulation.replay_dir", "")

	v.SetDefault("optimizer.start_lands", 29)
	v.SetDefault("optimizer.start_nonlands", 31)
	v.SetDefault("optimizer.min_samples", 3)
	v.SetDefault("optimizer.tolerance", 0.01)
	v.SetDefault("optimizer.max_iterations", 100)

	v.SetDefault("cards.path", "")
}

// Load reads configuration from defaults, an optional YAML file, DECKOPT_*
// environment variables and the given flags, in increasing precedence.
// Only flags that were set on the command line override other sources.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if name == "verbose" {
				if f.Value.String() == "true" {
					v.Set(key, VerbosityVerbose)
				}
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the simulator cannot run.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Logging.Format)
	}
	switch c.Logging.Verbosity {
	case VerbosityNormal, VerbosityVerbose:
	default:
		return fmt.Errorf("%w: unknown verbosity %q", ErrInvalid, c.Logging.Verbosity)
	}

	sim := c.Simulation
	switch {
	case sim.BatchSize <= 0:
		return fmt.Errorf("%w: simulation.batch_size must be positive", ErrInvalid)
	case sim.MaxTurns <= 0:
		return fmt.Errorf("%w: simulation.max_turns must be positive", ErrInvalid)
	case sim.StartingLife <= 0:
		return fmt.Errorf("%w: simulation.starting_life must be positive", ErrInvalid)
	case sim.OpeningHand <= 0:
		return fmt.Errorf("%w: simulation.opening_hand must be positive", ErrInvalid)
	case sim.Workers < 0:
		return fmt.Errorf("%w: simulation.workers must not be negative", ErrInvalid)
	}

	opt := c.Optimizer
	switch {
	case opt.StartLands < 0 || opt.StartNonlands < 0:
		return fmt.Errorf("%w: start counts must not be negative", ErrInvalid)
	case opt.StartLands+opt.StartNonlands < sim.OpeningHand:
		return fmt.Errorf("%w: deck of %d cards is smaller than the opening hand of %d",
			ErrInvalid, opt.StartLands+opt.StartNonlands, sim.OpeningHand)
	case opt.MinSamples <= 0:
		return fmt.Errorf("%w: optimizer.min_samples must be positive", ErrInvalid)
	case opt.Tolerance <= 0:
		return fmt.Errorf("%w: optimizer.tolerance must be positive", ErrInvalid)
	case opt.MaxIterations <= 0:
		return fmt.Errorf("%w: optimizer.max_iterations must be positive", ErrInvalid)
	}
	return nil
}
