package optimizer

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/magefree/deckopt-go/internal/sim"
	"go.uber.org/zap"
)

// Runner evaluates a scenario. *sim.Driver implements it.
type Runner interface {
	TryScenario(ctx context.Context, sc sim.Scenario, state *sim.ProgramState) (float64, error)
}

// Prompter asks the user for the next step command.
type Prompter interface {
	Prompt(ctx context.Context) (sim.StepCommand, error)
}

// Reason explains how the search terminated.
type Reason int

const (
	ReasonConsensus Reason = iota
	ReasonTieBreak
	ReasonIterationLimit
)

func (r Reason) String() string {
	switch r {
	case ReasonConsensus:
		return "CONSENSUS"
	case ReasonTieBreak:
		return "TIE_BREAK"
	case ReasonIterationLimit:
		return "ITERATION_LIMIT"
	default:
		return fmt.Sprintf("REASON_%d", int(r))
	}
}

// Config controls the search.
type Config struct {
	StartLands    int
	StartNonlands int
	MinSamples    int
	Tolerance     float64
	MaxIterations int
}

// DefaultConfig returns the standard search parameters.
func DefaultConfig() Config {
	return Config{
		StartLands:    29,
		StartNonlands: 31,
		MinSamples:    3,
		Tolerance:     0.01,
		MaxIterations: 100,
	}
}

// TieResult is the extra evaluation run for a tied scenario.
type TieResult struct {
	Scenario sim.Scenario
	Mean     float64 // mean over history
	Extra    float64 // result of the tie-break run
}

// Outcome is the suggested deck configuration.
type Outcome struct {
	Scenario   sim.Scenario
	Average    float64
	Iterations int
	Reason     Reason
	TieBreak   []TieResult
}

// Optimizer hill-climbs over land/nonland splits of a fixed deck size,
// looking for the split that kills the opponent in the fewest turns.
type Optimizer struct {
	cfg      Config
	runner   Runner
	prompter Prompter
	logger   *zap.Logger
	history  *History
}

// New creates an optimizer. Zero values in cfg take the defaults.
func New(cfg Config, runner Runner, prompter Prompter, logger *zap.Logger) *Optimizer {
	def := DefaultConfig()
	if cfg.MinSamples <= 0 {
		cfg.MinSamples = def.MinSamples
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = def.Tolerance
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = def.MaxIterations
	}
	return &Optimizer{
		cfg:      cfg,
		runner:   runner,
		prompter: prompter,
		logger:   logger,
		history:  NewHistory(),
	}
}

// History returns the results recorded so far.
func (o *Optimizer) History() *History {
	return o.history
}

// neighbours returns the current split and the splits one card either way,
// skipping any with a negative count.
func neighbours(sc sim.Scenario) []sim.Scenario {
	all := []sim.Scenario{
		sc,
		{Lands: sc.Lands + 1, Nonlands: sc.Nonlands - 1},
		{Lands: sc.Lands - 1, Nonlands: sc.Nonlands + 1},
	}
	out := all[:0]
	for _, c := range all {
		if c.Lands >= 0 && c.Nonlands >= 0 {
			out = append(out, c)
		}
	}
	return out
}

// Run searches until a consensus emerges. It returns sim.ErrAborted, wrapped,
// when the user quits.
func (o *Optimizer) Run(ctx context.Context, state *sim.ProgramState) (*Outcome, error) {
	current := sim.Scenario{Lands: o.cfg.StartLands, Nonlands: o.cfg.StartNonlands}
	if current.Lands < 0 || current.Nonlands < 0 {
		return nil, fmt.Errorf("invalid start configuration %s", current)
	}

	for iteration := 1; iteration <= o.cfg.MaxIterations; iteration++ {
		if o.logger != nil {
			o.logger.Info("iteration started",
				zap.Int("iteration", iteration),
				zap.Int("lands", current.Lands),
				zap.Int("nonlands", current.Nonlands),
			)
		}

		// An iteration is recorded only once all of its neighbours have run.
		candidates := neighbours(current)
		values := make([]float64, len(candidates))
		for i, sc := range candidates {
			value, err := o.evaluate(ctx, sc, state)
			if err != nil {
				return nil, err
			}
			values[i] = value
		}

		best, bestValue := current, math.Inf(1)
		for i, sc := range candidates {
			o.history.Append(sc, values[i])
			if values[i] < bestValue {
				best, bestValue = sc, values[i]
			}
		}

		tied := o.consensusCandidates()
		switch {
		case len(tied) == 0:
			if o.logger != nil {
				o.logger.Info("not enough samples yet, moving to best of iteration",
					zap.String("scenario", best.String()),
					zap.Float64("average", bestValue),
				)
			}
			current = best
		case len(tied) == 1:
			mean, _ := o.history.Mean(tied[0])
			return o.finish(&Outcome{
				Scenario:   tied[0],
				Average:    mean,
				Iterations: iteration,
				Reason:     ReasonConsensus,
			}), nil
		default:
			return o.tieBreak(ctx, state, tied, iteration)
		}
	}

	return o.finish(o.bestOverall()), nil
}

// consensusCandidates returns the scenarios with enough samples whose mean is
// within tolerance of the lowest such mean.
func (o *Optimizer) consensusCandidates() []sim.Scenario {
	type candidate struct {
		sc   sim.Scenario
		mean float64
	}
	var candidates []candidate
	minMean := math.Inf(1)
	for _, sc := range o.history.Scenarios() {
		if o.history.Samples(sc) < o.cfg.MinSamples {
			continue
		}
		mean, _ := o.history.Mean(sc)
		candidates = append(candidates, candidate{sc, mean})
		minMean = math.Min(minMean, mean)
	}

	var tied []sim.Scenario
	for _, c := range candidates {
		if math.Abs(c.mean-minMean) < o.cfg.Tolerance {
			tied = append(tied, c.sc)
		}
	}
	return tied
}

// tieBreak runs each tied scenario once more. The lowest extra result wins;
// the extra runs are not added to the history.
func (o *Optimizer) tieBreak(ctx context.Context, state *sim.ProgramState, tied []sim.Scenario, iteration int) (*Outcome, error) {
	if o.logger != nil {
		o.logger.Info("tie-break needed", zap.Int("candidates", len(tied)))
	}

	results := make([]TieResult, 0, len(tied))
	for _, sc := range tied {
		value, err := o.evaluate(ctx, sc, state)
		if err != nil {
			return nil, err
		}
		mean, _ := o.history.Mean(sc)
		results = append(results, TieResult{Scenario: sc, Mean: mean, Extra: value})
	}

	winner := results[0]
	for _, r := range results[1:] {
		if r.Extra < winner.Extra {
			winner = r
		}
	}
	return o.finish(&Outcome{
		Scenario:   winner.Scenario,
		Average:    winner.Extra,
		Iterations: iteration,
		Reason:     ReasonTieBreak,
		TieBreak:   results,
	}), nil
}

// bestOverall picks the lowest mean across the whole history.
func (o *Optimizer) bestOverall() *Outcome {
	out := &Outcome{Iterations: o.cfg.MaxIterations, Reason: ReasonIterationLimit, Average: math.Inf(1)}
	for _, sc := range o.history.Scenarios() {
		if mean, _ := o.history.Mean(sc); mean < out.Average {
			out.Scenario, out.Average = sc, mean
		}
	}
	return out
}

// evaluate runs a scenario to completion, prompting for a new command each
// time the runner yields and after a scenario finishes in RunDeck mode. A
// quit after a yield is handed back to the runner so it drops the batch.
func (o *Optimizer) evaluate(ctx context.Context, sc sim.Scenario, state *sim.ProgramState) (float64, error) {
	for {
		value, err := o.runner.TryScenario(ctx, sc, state)
		switch {
		case err == nil:
			if state.Command == sim.RunDeck {
				if err := o.prompt(ctx, state); err != nil {
					return 0, err
				}
				if state.Command == sim.Quit {
					return 0, sim.ErrAborted
				}
			}
			return value, nil
		case errors.Is(err, sim.ErrSuspended):
			if err := o.prompt(ctx, state); err != nil {
				return 0, err
			}
		default:
			return 0, fmt.Errorf("evaluate %s: %w", sc, err)
		}
	}
}

func (o *Optimizer) prompt(ctx context.Context, state *sim.ProgramState) error {
	cmd, err := o.prompter.Prompt(ctx)
	if err != nil {
		return fmt.Errorf("read command: %w", err)
	}
	if o.logger != nil {
		o.logger.Debug("command received", zap.String("command", cmd.String()))
	}
	state.Command = cmd
	return nil
}

func (o *Optimizer) finish(out *Outcome) *Outcome {
	if o.logger != nil {
		o.logger.Info("optimization complete",
			zap.Int("lands", out.Scenario.Lands),
			zap.Int("nonlands", out.Scenario.Nonlands),
			zap.Float64("average", out.Average),
			zap.Int("iterations", out.Iterations),
			zap.String("reason", out.Reason.String()),
		)
	}
	return out
}
