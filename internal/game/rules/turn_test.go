package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnManagerSequence(t *testing.T) {
	tm := NewTurnManager("Alice")

	expected := []struct {
		phase Phase
		step  Step
	}{
		{PhaseBeginning, StepUntap},
		{PhaseBeginning, StepUpkeep},
		{PhaseBeginning, StepDraw},
		{PhasePrecombatMain, StepMain1},
		{PhaseCombat, StepDeclareAttackers},
		{PhaseCombat, StepDeclareBlockers},
		{PhaseCombat, StepCombatDamage},
		{PhasePostcombatMain, StepMain2},
		{PhaseEnding, StepEnd},
		{PhaseEnding, StepCleanup},
	}
	require.Equal(t, len(expected), StepsPerTurn)

	for i, exp := range expected {
		require.Equal(t, exp.phase, tm.CurrentPhase(), "step %d", i)
		require.Equal(t, exp.step, tm.CurrentStep(), "step %d", i)
		if i < len(expected)-1 {
			tm.AdvanceStep("")
		}
	}
}

func TestTurnManagerAdvanceWrapsTurn(t *testing.T) {
	tm := NewTurnManager("Alice")
	assert.True(t, tm.AtTurnStart())

	// Advance through all but the last step to remain on turn 1.
	for i := 0; i < StepsPerTurn-1; i++ {
		tm.AdvanceStep("Bob")
		require.Equal(t, 1, tm.TurnNumber(), "step %d", i)
		require.Equal(t, "Alice", tm.ActivePlayer(), "step %d", i)
		require.False(t, tm.AtTurnStart())
	}

	phase, step := tm.AdvanceStep("Bob")
	assert.Equal(t, 2, tm.TurnNumber())
	assert.Equal(t, "Bob", tm.ActivePlayer())
	assert.True(t, tm.AtTurnStart())
	assert.Equal(t, PhaseBeginning, phase)
	assert.Equal(t, StepUntap, step)
}

func TestStepAndPhaseNames(t *testing.T) {
	assert.Equal(t, "DECLARE_BLOCKERS", StepDeclareBlockers.String())
	assert.Equal(t, "STEP_42", Step(42).String())
	assert.Equal(t, "COMBAT", PhaseCombat.String())
	assert.Equal(t, "PHASE_9", Phase(9).String())
}
