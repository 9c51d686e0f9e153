package watchers

import (
	"github.com/magefree/deckopt-go/internal/game/rules"
)

// countingWatcher counts events of a single type per player.
type countingWatcher struct {
	*rules.BaseWatcher
	eventType rules.EventType
	useAmount bool
	counts    map[string]int
}

func newCountingWatcher(scope rules.WatcherScope, key string, eventType rules.EventType, useAmount bool) *countingWatcher {
	return &countingWatcher{
		BaseWatcher: rules.NewBaseWatcher(scope, key),
		eventType:   eventType,
		useAmount:   useAmount,
		counts:      make(map[string]int),
	}
}

// Watch implements the Watcher interface.
func (w *countingWatcher) Watch(event rules.Event) {
	if event.Type != w.eventType || event.PlayerID == "" {
		return
	}
	n := 1
	if w.useAmount {
		n = event.Amount
		if n <= 0 {
			return
		}
	}
	w.counts[event.PlayerID] += n
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *countingWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.counts = make(map[string]int)
}

// GetCount returns the tally for a player.
func (w *countingWatcher) GetCount(playerID string) int {
	return w.counts[playerID]
}

// Total returns the tally across all players.
func (w *countingWatcher) Total() int {
	total := 0
	for _, n := range w.counts {
		total += n
	}
	return total
}

// CardsDrawnWatcher tracks cards drawn per player.
type CardsDrawnWatcher struct{ *countingWatcher }

// NewCardsDrawnWatcher creates a new cards drawn watcher.
func NewCardsDrawnWatcher() *CardsDrawnWatcher {
	return &CardsDrawnWatcher{newCountingWatcher(rules.WatcherScopeGame, "CardsDrawnWatcher", rules.EventDrewCard, false)}
}

// SpellsCastWatcher tracks nonland cards cast per player.
type SpellsCastWatcher struct{ *countingWatcher }

// NewSpellsCastWatcher creates a new spells cast watcher.
func NewSpellsCastWatcher() *SpellsCastWatcher {
	return &SpellsCastWatcher{newCountingWatcher(rules.WatcherScopeGame, "SpellsCastWatcher", rules.EventSpellCast, false)}
}

// LandsPlayedWatcher tracks lands played per player.
type LandsPlayedWatcher struct{ *countingWatcher }

// NewLandsPlayedWatcher creates a new lands played watcher.
func NewLandsPlayedWatcher() *LandsPlayedWatcher {
	return &LandsPlayedWatcher{newCountingWatcher(rules.WatcherScopeGame, "LandsPlayedWatcher", rules.EventLandPlayed, false)}
}

// CreaturesDiedWatcher tracks creatures that died, keyed by controller.
type CreaturesDiedWatcher struct{ *countingWatcher }

// NewCreaturesDiedWatcher creates a new creatures died watcher.
func NewCreaturesDiedWatcher() *CreaturesDiedWatcher {
	return &CreaturesDiedWatcher{newCountingWatcher(rules.WatcherScopeGame, "CreaturesDiedWatcher", rules.EventCreatureDied, false)}
}

// DamageToPlayersWatcher tracks combat and spell damage dealt to each player.
// The player ID on the event is the damaged player.
type DamageToPlayersWatcher struct{ *countingWatcher }

// NewDamageToPlayersWatcher creates a new damage watcher.
func NewDamageToPlayersWatcher() *DamageToPlayersWatcher {
	return &DamageToPlayersWatcher{newCountingWatcher(rules.WatcherScopeGame, "DamageToPlayersWatcher", rules.EventDamagedPlayer, true)}
}

// LandPlayedThisTurnWatcher reports whether a land was played during the
// current turn. Only the active player plays lands, so the condition belongs
// to that player.
type LandPlayedThisTurnWatcher struct{ *countingWatcher }

// NewLandPlayedThisTurnWatcher creates a turn-scoped land watcher.
func NewLandPlayedThisTurnWatcher() *LandPlayedThisTurnWatcher {
	return &LandPlayedThisTurnWatcher{newCountingWatcher(rules.WatcherScopeTurn, "LandPlayedThisTurnWatcher", rules.EventLandPlayed, false)}
}

// Set bundles the standard game statistics watchers.
type Set struct {
	CardsDrawn         *CardsDrawnWatcher
	SpellsCast         *SpellsCastWatcher
	LandsPlayed        *LandsPlayedWatcher
	CreaturesDied      *CreaturesDiedWatcher
	DamageToPlayers    *DamageToPlayersWatcher
	LandPlayedThisTurn *LandPlayedThisTurnWatcher
}

// NewSet creates the standard watchers and registers them.
func NewSet(registry *rules.WatcherRegistry) *Set {
	s := &Set{
		CardsDrawn:         NewCardsDrawnWatcher(),
		SpellsCast:         NewSpellsCastWatcher(),
		LandsPlayed:        NewLandsPlayedWatcher(),
		CreaturesDied:      NewCreaturesDiedWatcher(),
		DamageToPlayers:    NewDamageToPlayersWatcher(),
		LandPlayedThisTurn: NewLandPlayedThisTurnWatcher(),
	}
	registry.AddWatcher(s.CardsDrawn)
	registry.AddWatcher(s.SpellsCast)
	registry.AddWatcher(s.LandsPlayed)
	registry.AddWatcher(s.CreaturesDied)
	registry.AddWatcher(s.DamageToPlayers)
	registry.AddWatcher(s.LandPlayedThisTurn)
	return s
}
