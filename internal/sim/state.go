package sim

import "github.com/magefree/deckopt-go/internal/game"

// ProgramState carries the current command and the batch that a yielding
// TryScenario left behind. It is owned by the caller of the driver.
type ProgramState struct {
	Command StepCommand
	batch   *batch
}

// NewProgramState creates a state starting with the given command.
func NewProgramState(cmd StepCommand) *ProgramState {
	return &ProgramState{Command: cmd}
}

// Suspended reports whether a batch is waiting to be resumed.
func (s *ProgramState) Suspended() bool {
	return s.batch != nil
}

// SuspendedScenario returns the scenario of the waiting batch.
func (s *ProgramState) SuspendedScenario() (Scenario, bool) {
	if s.batch == nil {
		return Scenario{}, false
	}
	return s.batch.scenario, true
}

// CurrentGame returns the game most recently advanced by an interactive
// command, or nil.
func (s *ProgramState) CurrentGame() *game.Game {
	if s.batch == nil {
		return nil
	}
	return s.batch.current
}

// GamesCompleted returns how many games of the waiting batch have finished.
func (s *ProgramState) GamesCompleted() int {
	if s.batch == nil {
		return 0
	}
	return s.batch.completed
}

func (s *ProgramState) drop() {
	s.batch = nil
}
