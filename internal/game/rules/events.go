package rules

import (
	"sync"
)

// EventType indicates the category of a rules event.
type EventType string

const (
	// Turn structure events
	EventBeginTurn   EventType = "BEGIN_TURN"
	EventStepChanged EventType = "STEP_CHANGED"

	// Zone events
	EventDrewCard             EventType = "DREW_CARD"
	EventEntersTheBattlefield EventType = "ENTERS_THE_BATTLEFIELD"
	EventCreatureDied         EventType = "CREATURE_DIED"

	// Land/Spell events
	EventLandPlayed EventType = "LAND_PLAYED"
	EventSpellCast  EventType = "SPELL_CAST"

	// Combat events
	EventDeclaredAttacker EventType = "DECLARED_ATTACKER"
	EventDeclaredBlocker  EventType = "DECLARED_BLOCKER"

	// Life/Damage events
	EventDamagedPlayer    EventType = "DAMAGED_PLAYER"
	EventDamagedPermanent EventType = "DAMAGED_PERMANENT"

	// Game end
	EventGameOver EventType = "GAME_OVER"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type        EventType
	TargetID    string // ID of the target (card or player)
	SourceID    string // ID of the source card
	PlayerID    string // Player the event is attributed to
	Amount      int    // Numeric value (damage, cards, ...)
	Turn        int
	Description string
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// EventBus provides a synchronous publish/subscribe implementation.
type EventBus struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers a listener for all events. Nil listeners are ignored.
func (bus *EventBus) Subscribe(listener Listener) {
	if listener == nil {
		return
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.listeners = append(bus.listeners, listener)
}

// Publish delivers the event to all registered listeners synchronously,
// in subscription order.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, targetID, sourceID, playerID string) Event {
	return Event{
		Type:     eventType,
		TargetID: targetID,
		SourceID: sourceID,
		PlayerID: playerID,
	}
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, targetID, sourceID, playerID string, amount int) Event {
	evt := NewEvent(eventType, targetID, sourceID, playerID)
	evt.Amount = amount
	return evt
}
