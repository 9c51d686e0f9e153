package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/magefree/deckopt-go/internal/sim"
)

// ConsolePrompter reads step commands from a line-oriented reader. Before
// each prompt it prints the board of a suspended game.
type ConsolePrompter struct {
	in        *bufio.Reader
	out       io.Writer
	state     *sim.ProgramState
	helpShown bool
}

// NewConsolePrompter creates a prompter reading from in and writing to out.
func NewConsolePrompter(in io.Reader, out io.Writer, state *sim.ProgramState) *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewReader(in), out: out, state: state}
}

// Prompt reads the next command. End of input and a cancelled context both
// answer Quit.
func (p *ConsolePrompter) Prompt(ctx context.Context) (sim.StepCommand, error) {
	if ctx.Err() != nil {
		return sim.Quit, nil
	}
	if !p.helpShown {
		fmt.Fprintln(p.out, sim.CommandHelp)
		p.helpShown = true
	}
	if g := p.state.CurrentGame(); g != nil {
		sc, _ := p.state.SuspendedScenario()
		fmt.Fprintf(p.out, "\n[%s game %d done=%d]\n%s", sc, p.state.GamesCompleted()+1, p.state.GamesCompleted(), g.Snapshot())
	}

	fmt.Fprint(p.out, "> ")
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return sim.Quit, nil
			}
			return sim.ParseCommand(line), nil
		}
		return sim.Quit, fmt.Errorf("read console: %w", err)
	}
	return sim.ParseCommand(line), nil
}
