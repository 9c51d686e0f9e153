package integration

import (
	"context"
	"strings"
	"testing"

	"github.com/magefree/deckopt-go/internal/config"
	"github.com/magefree/deckopt-go/internal/game/card"
	"github.com/magefree/deckopt-go/internal/optimizer"
	"github.com/magefree/deckopt-go/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type optimizerEnv struct {
	cfg    *config.Config
	driver *sim.Driver
	logger *zap.Logger
}

func newOptimizerEnv(t testing.TB, catalog *card.Catalog) *optimizerEnv {
	logger := zaptest.NewLogger(t)

	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	cfg.Simulation.BatchSize = 6
	cfg.Simulation.MaxTurns = 30
	cfg.Simulation.Seed = 2024
	cfg.Simulation.Workers = 3
	cfg.Optimizer.MaxIterations = 25
	require.NoError(t, cfg.Validate())

	driver := sim.NewDriver(sim.Config{
		BatchSize:    cfg.Simulation.BatchSize,
		MaxTurns:     cfg.Simulation.MaxTurns,
		StartingLife: cfg.Simulation.StartingLife,
		OpeningHand:  cfg.Simulation.OpeningHand,
		Seed:         cfg.Simulation.Seed,
		Workers:      cfg.Simulation.Workers,
	}, catalog, logger)

	return &optimizerEnv{cfg: cfg, driver: driver, logger: logger}
}

func (env *optimizerEnv) newOptimizer(prompter optimizer.Prompter) *optimizer.Optimizer {
	return optimizer.New(optimizer.Config{
		StartLands:    env.cfg.Optimizer.StartLands,
		StartNonlands: env.cfg.Optimizer.StartNonlands,
		MinSamples:    env.cfg.Optimizer.MinSamples,
		Tolerance:     env.cfg.Optimizer.Tolerance,
		MaxIterations: env.cfg.Optimizer.MaxIterations,
	}, env.driver, prompter, env.logger)
}

// scriptedPrompter answers with a fixed command sequence, then RunAll.
type scriptedPrompter struct {
	commands []sim.StepCommand
	prompts  int
}

func (p *scriptedPrompter) Prompt(context.Context) (sim.StepCommand, error) {
	p.prompts++
	if len(p.commands) == 0 {
		return sim.RunAll, nil
	}
	cmd := p.commands[0]
	p.commands = p.commands[1:]
	return cmd, nil
}

func TestOptimizerRunAllFindsSuggestion(t *testing.T) {
	env := newOptimizerEnv(t, nil)
	opt := env.newOptimizer(&scriptedPrompter{})

	outcome, err := opt.Run(context.Background(), sim.NewProgramState(sim.RunAll))
	require.NoError(t, err)

	assert.Equal(t, 60, outcome.Scenario.Size())
	assert.Positive(t, outcome.Average)
	assert.LessOrEqual(t, outcome.Average, float64(env.cfg.Simulation.MaxTurns))
	assert.LessOrEqual(t, outcome.Iterations, env.cfg.Optimizer.MaxIterations)

	for _, sc := range opt.History().Scenarios() {
		assert.Equal(t, 60, sc.Size(), "deck size must stay constant")
	}
}

func TestOptimizerIsDeterministicForFixedSeed(t *testing.T) {
	run := func() *optimizer.Outcome {
		env := newOptimizerEnv(t, nil)
		outcome, err := env.newOptimizer(&scriptedPrompter{}).Run(context.Background(), sim.NewProgramState(sim.RunAll))
		require.NoError(t, err)
		return outcome
	}
	assert.Equal(t, run(), run())
}

func TestInteractiveSessionMatchesBatchRun(t *testing.T) {
	batch, err := newOptimizerEnv(t, nil).newOptimizer(&scriptedPrompter{}).
		Run(context.Background(), sim.NewProgramState(sim.RunAll))
	require.NoError(t, err)

	// a few single steps, a turn, a whole game, then let it run
	prompter := &scriptedPrompter{commands: []sim.StepCommand{
		sim.StepPhase, sim.StepPhase, sim.StepTurn, sim.RunGame, sim.RunDeck, sim.RunAll,
	}}
	interactive, err := newOptimizerEnv(t, nil).newOptimizer(prompter).
		Run(context.Background(), sim.NewProgramState(sim.StepPhase))
	require.NoError(t, err)

	assert.Equal(t, batch, interactive)
	assert.Equal(t, 6, prompter.prompts)
}

func TestQuitDuringSessionAborts(t *testing.T) {
	env := newOptimizerEnv(t, nil)
	state := sim.NewProgramState(sim.StepPhase)
	prompter := &scriptedPrompter{commands: []sim.StepCommand{sim.StepTurn, sim.Quit}}

	outcome, err := env.newOptimizer(prompter).Run(context.Background(), state)
	require.ErrorIs(t, err, sim.ErrAborted)
	assert.Nil(t, outcome)
	assert.False(t, state.Suspended())
}

func TestCustomCatalogFromYAML(t *testing.T) {
	catalog, err := card.ParseCatalog([]byte(strings.TrimSpace(`
cards:
  - name: Mountain
    types: [Land]
    produces: R
  - name: Goblin Piker
    types: [Creature]
    cost: "{1}{R}"
    power: 2
    toughness: 1
  - name: Lava Spike
    types: [Spell]
    cost: "{R}"
    damage: 3
`)))
	require.NoError(t, err)

	env := newOptimizerEnv(t, catalog)
	avg, err := env.driver.TryScenario(context.Background(), sim.Scenario{Lands: 20, Nonlands: 40}, sim.NewProgramState(sim.RunAll))
	require.NoError(t, err)
	assert.Positive(t, avg)
	assert.Less(t, avg, float64(env.cfg.Simulation.MaxTurns))
}
