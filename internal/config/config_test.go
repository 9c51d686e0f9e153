package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("lands", 29, "")
	fs.Int("nonlands", 31, "")
	fs.Int("batch-size", 100, "")
	fs.Int64("seed", 0, "")
	fs.String("cards", "", "")
	fs.Bool("verbose", false, "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.False(t, cfg.Logging.Verbose())
	assert.Equal(t, 100, cfg.Simulation.BatchSize)
	assert.Equal(t, 50, cfg.Simulation.MaxTurns)
	assert.Equal(t, 20, cfg.Simulation.StartingLife)
	assert.Equal(t, 7, cfg.Simulation.OpeningHand)
	assert.Equal(t, 29, cfg.Optimizer.StartLands)
	assert.Equal(t, 31, cfg.Optimizer.StartNonlands)
	assert.Equal(t, 3, cfg.Optimizer.MinSamples)
	assert.Equal(t, 0.01, cfg.Optimizer.Tolerance)
	assert.Equal(t, 100, cfg.Optimizer.MaxIterations)
	assert.Empty(t, cfg.Cards.Path)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deckopt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
simulation:
  batch_size: 10
  max_turns: 30
optimizer:
  start_lands: 24
  start_nonlands: 36
`), 0o600))
	t.Setenv("DECKOPT_SIMULATION_MAX_TURNS", "25")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--batch-size=4", "--verbose", "--seed=9"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Verbose())
	assert.Equal(t, 4, cfg.Simulation.BatchSize)
	assert.Equal(t, 25, cfg.Simulation.MaxTurns)
	assert.Equal(t, int64(9), cfg.Simulation.Seed)
	assert.Equal(t, 24, cfg.Optimizer.StartLands, "unset flags must not override the file")
	assert.Equal(t, 36, cfg.Optimizer.StartNonlands)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base, err := Load("", nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero batch", func(c *Config) { c.Simulation.BatchSize = 0 }},
		{"zero max turns", func(c *Config) { c.Simulation.MaxTurns = 0 }},
		{"negative lands", func(c *Config) { c.Optimizer.StartLands = -1 }},
		{"deck below opening hand", func(c *Config) {
			c.Optimizer.StartLands, c.Optimizer.StartNonlands = 3, 3
		}},
		{"zero tolerance", func(c *Config) { c.Optimizer.Tolerance = 0 }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad verbosity", func(c *Config) { c.Logging.Verbosity = "chatty" }},
		{"negative workers", func(c *Config) { c.Simulation.Workers = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
