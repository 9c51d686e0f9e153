package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testWatcherImpl is a simple test watcher implementation
type testWatcherImpl struct {
	*BaseWatcher
	seen int
}

func (w *testWatcherImpl) Watch(event Event) {
	if event.Type == EventSpellCast {
		w.seen++
		w.SetCondition(true)
	}
}

func (w *testWatcherImpl) Reset() {
	w.BaseWatcher.Reset()
	w.seen = 0
}

func TestWatcherRegistry(t *testing.T) {
	registry := NewWatcherRegistry()

	gameWatcher := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopeGame, "GameWatcher")}
	registry.AddWatcher(gameWatcher)
	registry.AddWatcher(nil)

	require.Len(t, registry.GetWatchersByScope(WatcherScopeGame), 1)
	assert.Empty(t, registry.GetWatchersByScope(WatcherScopeTurn))

	registry.NotifyWatchers(NewEvent(EventSpellCast, "spell1", "spell1", "player1"))
	assert.True(t, gameWatcher.ConditionMet())

	registry.ResetWatchersByScope(WatcherScopeGame)
	assert.False(t, gameWatcher.ConditionMet())
}

func TestWatcherRegistryReplacesSameKey(t *testing.T) {
	registry := NewWatcherRegistry()
	first := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopeGame, "GameWatcher")}
	second := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopeGame, "GameWatcher")}
	registry.AddWatcher(first)
	registry.AddWatcher(second)

	registry.NotifyWatchers(NewEvent(EventSpellCast, "spell1", "spell1", "player1"))
	assert.Zero(t, first.seen)
	assert.Equal(t, 1, second.seen)
	assert.Len(t, registry.GetWatchersByScope(WatcherScopeGame), 1)
}

func TestWatcherRegistryResetsTurnScopeOnNewTurn(t *testing.T) {
	registry := NewWatcherRegistry()
	turnWatcher := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopeTurn, "TurnWatcher")}
	gameWatcher := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopeGame, "GameWatcher")}
	registry.AddWatcher(turnWatcher)
	registry.AddWatcher(gameWatcher)

	registry.NotifyWatchers(NewEvent(EventSpellCast, "spell1", "spell1", "player1"))
	registry.NotifyWatchers(NewEvent(EventSpellCast, "spell2", "spell2", "player1"))
	require.Equal(t, 2, turnWatcher.seen)

	registry.NotifyWatchers(NewEvent(EventBeginTurn, "", "", "player2"))
	assert.Equal(t, 0, turnWatcher.seen)
	assert.Equal(t, 2, gameWatcher.seen)
}

func TestWatcherScopeString(t *testing.T) {
	assert.Equal(t, "GAME", WatcherScopeGame.String())
	assert.Equal(t, "TURN", WatcherScopeTurn.String())
	assert.Equal(t, "UNKNOWN", WatcherScope(5).String())
}
