package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/magefree/deckopt-go/internal/config"
	"github.com/magefree/deckopt-go/internal/game/card"
	"github.com/magefree/deckopt-go/internal/optimizer"
	"github.com/magefree/deckopt-go/internal/sim"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev" // set via ldflags during build

func main() {
	flags := pflag.NewFlagSet("deckopt", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to a YAML configuration file")
	flags.Int("lands", 29, "starting land count")
	flags.Int("nonlands", 31, "starting non-land count")
	flags.Int("batch-size", 100, "games per deck configuration")
	flags.Int64("seed", 0, "base RNG seed (0 picks a random seed per game)")
	flags.String("cards", "", "path to a YAML card catalog")
	flags.String("replay-dir", "", "directory to save a replay of every game")
	flags.Bool("verbose", false, "log every game step")
	mode := flags.String("mode", "", "initial command (s, t, g, d, r, q); read from the console when empty")
	replayPath := flags.String("replay", "", "view a saved replay file instead of optimizing")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *replayPath != "" {
		viewer, err := NewReplayViewer(*replayPath, os.Stdin, os.Stdout)
		if err != nil {
			logger.Fatal("failed to open replay", zap.Error(err))
		}
		if err := viewer.Run(); err != nil {
			logger.Fatal("replay viewer failed", zap.Error(err))
		}
		return
	}

	logger.Info("starting deck optimizer",
		zap.String("version", version),
		zap.Int("lands", cfg.Optimizer.StartLands),
		zap.Int("nonlands", cfg.Optimizer.StartNonlands),
		zap.Int("batch_size", cfg.Simulation.BatchSize),
		zap.Int64("seed", cfg.Simulation.Seed),
	)

	catalog := card.DefaultCatalog()
	if cfg.Cards.Path != "" {
		catalog, err = card.LoadCatalog(cfg.Cards.Path)
		if err != nil {
			logger.Fatal("failed to load card catalog", zap.String("path", cfg.Cards.Path), zap.Error(err))
		}
	}

	// Create context that is cancelled on termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state := sim.NewProgramState(sim.StepPhase)
	console := NewConsolePrompter(os.Stdin, os.Stdout, state)
	if *mode != "" {
		state.Command = sim.ParseCommand(*mode)
	} else if state.Command, err = console.Prompt(ctx); err != nil {
		logger.Fatal("failed to read command", zap.Error(err))
	}

	driver := sim.NewDriver(sim.Config{
		BatchSize:    cfg.Simulation.BatchSize,
		MaxTurns:     cfg.Simulation.MaxTurns,
		StartingLife: cfg.Simulation.StartingLife,
		OpeningHand:  cfg.Simulation.OpeningHand,
		Seed:         cfg.Simulation.Seed,
		Workers:      cfg.Simulation.Workers,
		ReplayDir:    cfg.Simulation.ReplayDir,
	}, catalog, logger)

	opt := optimizer.New(optimizer.Config{
		StartLands:    cfg.Optimizer.StartLands,
		StartNonlands: cfg.Optimizer.StartNonlands,
		MinSamples:    cfg.Optimizer.MinSamples,
		Tolerance:     cfg.Optimizer.Tolerance,
		MaxIterations: cfg.Optimizer.MaxIterations,
	}, driver, console, logger)

	outcome, err := opt.Run(ctx, state)
	if errors.Is(err, sim.ErrAborted) {
		logger.Info("optimization aborted")
		return
	}
	if err != nil {
		logger.Fatal("optimization failed", zap.Error(err))
	}

	fmt.Fprintf(os.Stdout, "Final suggestion: %d lands, %d nonlands is optimal\n",
		outcome.Scenario.Lands, outcome.Scenario.Nonlands)
	fmt.Fprintf(os.Stdout, "Average turns to death: %.2f (%s after %d iterations)\n",
		outcome.Average, outcome.Reason, outcome.Iterations)
}

// initLogger initializes the zap logger based on configuration. Verbose
// output forces the debug level.
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}
	if cfg.Verbose() {
		level = zapcore.DebugLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
