package sim

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/magefree/deckopt-go/internal/game"
	"github.com/magefree/deckopt-go/internal/game/card"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrSuspended is returned when an interactive command yields before the
	// batch is complete. The batch is kept in the ProgramState.
	ErrSuspended = errors.New("simulation suspended")
	// ErrAborted is returned when the user quits or the context is cancelled.
	ErrAborted = errors.New("simulation aborted")
	// ErrDeckSize is returned when a built deck does not hold lands+nonlands cards.
	ErrDeckSize = errors.New("deck size mismatch")
)

// Scenario is a deck configuration.
type Scenario struct {
	Lands    int
	Nonlands int
}

// Size returns the total deck size.
func (s Scenario) Size() int {
	return s.Lands + s.Nonlands
}

func (s Scenario) String() string {
	return fmt.Sprintf("%d/%d", s.Lands, s.Nonlands)
}

// Config holds the simulation parameters.
type Config struct {
	BatchSize    int
	MaxTurns     int
	StartingLife int
	OpeningHand  int
	Seed         int64  // 0 gives every game an unpredictable seed
	Workers      int    // 0 uses one worker per CPU
	ReplayDir    string // when set, every finished game is saved there
}

// batch is the in-progress evaluation of one scenario.
type batch struct {
	scenario  Scenario
	results   []int // terminal turn count per game index
	finished  []bool
	next      int        // index of the next game to start
	current   *game.Game // game being advanced interactively
	index     int        // index of current
	completed int
}

func newBatch(sc Scenario, size int) *batch {
	return &batch{
		scenario: sc,
		results:  make([]int, size),
		finished: make([]bool, size),
	}
}

func (b *batch) record(idx int, res game.Result) {
	if b.finished[idx] {
		return
	}
	b.results[idx] = res.Turns
	b.finished[idx] = true
	b.completed++
}

func (b *batch) done() bool {
	return b.completed == len(b.results)
}

func (b *batch) mean() float64 {
	sum := 0
	for _, turns := range b.results {
		sum += turns
	}
	return float64(sum) / float64(len(b.results))
}

// Driver evaluates scenarios by playing batches of games.
type Driver struct {
	cfg     Config
	catalog *card.Catalog
	logger  *zap.Logger
}

// NewDriver creates a driver. A nil catalog uses the built-in card pool.
func NewDriver(cfg Config, catalog *card.Catalog, logger *zap.Logger) *Driver {
	if catalog == nil {
		catalog = card.DefaultCatalog()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Driver{cfg: cfg, catalog: catalog, logger: logger}
}

// TryScenario plays BatchSize games of the scenario and returns the mean
// terminal turn count. Interactive commands yield with ErrSuspended; calling
// again with the same scenario resumes the batch where it stopped.
func (d *Driver) TryScenario(ctx context.Context, sc Scenario, state *ProgramState) (float64, error) {
	if sc.Lands < 0 || sc.Nonlands < 0 {
		return 0, fmt.Errorf("invalid scenario %s", sc)
	}

	if state.batch != nil && state.batch.scenario != sc {
		if d.logger != nil {
			d.logger.Warn("discarding suspended batch",
				zap.String("suspended", state.batch.scenario.String()),
				zap.String("requested", sc.String()),
			)
		}
		state.drop()
	}
	if state.batch == nil {
		state.batch = newBatch(sc, d.cfg.BatchSize)
	}
	b := state.batch

	if ctx.Err() != nil || state.Command == Quit {
		state.drop()
		return 0, ErrAborted
	}

	if state.Command.Interactive() {
		if err := d.advance(b, state.Command); err != nil {
			state.drop()
			return 0, err
		}
		if !b.done() {
			return 0, ErrSuspended
		}
	} else if err := d.runRemaining(ctx, b); err != nil {
		state.drop()
		return 0, err
	}

	avg := b.mean()
	state.drop()
	if d.logger != nil {
		d.logger.Info("scenario evaluated",
			zap.Int("lands", sc.Lands),
			zap.Int("nonlands", sc.Nonlands),
			zap.Int("games", d.cfg.BatchSize),
			zap.Float64("average", avg),
		)
	}
	return avg, nil
}

// advance moves the batch forward by one unit of the interactive command.
func (d *Driver) advance(b *batch, cmd StepCommand) error {
	if b.current == nil || b.current.Done() {
		if b.next >= len(b.results) {
			return nil
		}
		g, err := d.newGame(b.scenario, b.next)
		if err != nil {
			return err
		}
		b.current, b.index = g, b.next
		b.next++
	}

	g := b.current
	switch cmd {
	case StepPhase:
		g.Step()
	case StepTurn:
		g.PlayTurn()
	default:
		g.Run()
	}
	if g.Done() {
		b.record(b.index, g.Result())
		d.saveReplay(g)
		if d.logger != nil {
			d.logger.Debug("game finished",
				zap.String("scenario", b.scenario.String()),
				zap.Int("game", b.index),
				zap.Int("turns", g.Result().Turns),
				zap.String("reason", g.Result().Reason.String()),
			)
		}
	}
	return nil
}

// runRemaining finishes the batch: the interactively started game inline,
// the games not yet started on the worker pool.
func (d *Driver) runRemaining(ctx context.Context, b *batch) error {
	if g := b.current; g != nil && !g.Done() {
		b.record(b.index, g.Run())
		d.saveReplay(g)
	}
	b.current = nil

	start := b.next
	b.next = len(b.results)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(d.cfg.Workers)
	for idx := start; idx < len(b.results); idx++ {
		eg.Go(func() error {
			if egCtx.Err() != nil {
				return ErrAborted
			}
			g, err := d.newGame(b.scenario, idx)
			if err != nil {
				return err
			}
			b.results[idx] = g.Run().Turns
			d.saveReplay(g)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		if ctx.Err() != nil {
			return ErrAborted
		}
		return err
	}
	for idx := start; idx < len(b.results); idx++ {
		b.finished[idx] = true
	}
	b.completed = len(b.results)
	return nil
}

func (d *Driver) newGame(sc Scenario, idx int) (*game.Game, error) {
	first, err := d.BuildDeck(sc)
	if err != nil {
		return nil, err
	}
	second, err := d.BuildDeck(sc)
	if err != nil {
		return nil, err
	}
	return game.New(first, second, game.Options{
		GameID:       fmt.Sprintf("%d-%d-%d", sc.Lands, sc.Nonlands, idx),
		StartingLife: d.cfg.StartingLife,
		OpeningHand:  d.cfg.OpeningHand,
		MaxTurns:     d.cfg.MaxTurns,
		Seed:         gameSeed(d.cfg.Seed, sc, idx),
		RecordReplay: d.cfg.ReplayDir != "",
		Logger:       d.logger,
	})
}

// saveReplay writes the game's replay when a replay directory is configured.
// Failures are logged and do not affect the batch.
func (d *Driver) saveReplay(g *game.Game) {
	replay := g.Replay()
	if replay == nil {
		return
	}
	path, err := replay.SaveToFile(d.cfg.ReplayDir)
	if d.logger == nil {
		return
	}
	if err != nil {
		d.logger.Warn("failed to save replay", zap.String("game_id", g.ID()), zap.Error(err))
		return
	}
	d.logger.Debug("saved replay", zap.String("game_id", g.ID()), zap.String("path", path))
}

// BuildDeck builds a fresh deck for the scenario and checks its size.
func (d *Driver) BuildDeck(sc Scenario) ([]*card.Card, error) {
	deck, err := d.catalog.BuildDeck(sc.Lands, sc.Nonlands)
	if err != nil {
		return nil, fmt.Errorf("build deck %s: %w", sc, err)
	}
	if len(deck) != sc.Size() {
		return nil, fmt.Errorf("%w: built %d cards for %s", ErrDeckSize, len(deck), sc)
	}
	return deck, nil
}

// gameSeed mixes the base seed with the scenario and game index into a
// distinct, deterministic seed. A zero base seed stays zero so every game
// draws its own entropy.
func gameSeed(base int64, sc Scenario, idx int) int64 {
	if base == 0 {
		return 0
	}
	x := uint64(base) + uint64(sc.Lands)<<40 + uint64(sc.Nonlands)<<20 + uint64(idx) + 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	if x == 0 {
		x = 1
	}
	return int64(x)
}
