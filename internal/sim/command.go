package sim

import (
	"fmt"
	"strings"
)

// StepCommand controls how far TryScenario advances before yielding back to
// the caller.
type StepCommand int

const (
	StepPhase StepCommand = iota // yield after every step
	StepTurn                     // yield after every turn
	RunGame                      // yield after every game
	RunDeck                      // run the current scenario, then ask again
	RunAll                       // run everything without asking
	Quit
)

var commandNames = map[StepCommand]string{
	StepPhase: "step-phase",
	StepTurn:  "step-turn",
	RunGame:   "run-game",
	RunDeck:   "run-deck",
	RunAll:    "run-all",
	Quit:      "quit",
}

func (c StepCommand) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("COMMAND_%d", int(c))
}

// Interactive reports whether the command suspends a batch before it completes.
func (c StepCommand) Interactive() bool {
	return c == StepPhase || c == StepTurn || c == RunGame
}

// CommandHelp lists the console commands.
const CommandHelp = `commands:
  s  step to the next phase
  t  step to the next turn
  g  finish the current game
  d  finish the current deck configuration
  r  run everything without stopping
  q  quit`

// ParseCommand maps console input to a command. Unrecognized or empty input
// continues with StepPhase.
func ParseCommand(input string) StepCommand {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "t":
		return StepTurn
	case "g":
		return RunGame
	case "d":
		return RunDeck
	case "r":
		return RunAll
	case "q":
		return Quit
	default:
		return StepPhase
	}
}
