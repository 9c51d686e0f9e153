package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBusSubscribeAllInOrder(t *testing.T) {
	bus := NewEventBus()

	var seen []string
	bus.Subscribe(func(e Event) { seen = append(seen, "first:"+string(e.Type)) })
	bus.Subscribe(func(e Event) { seen = append(seen, "second:"+string(e.Type)) })

	bus.Publish(NewEvent(EventDrewCard, "card1", "", "player1"))
	bus.Publish(NewEvent(EventLandPlayed, "card2", "card2", "player1"))

	assert.Equal(t, []string{
		"first:DREW_CARD",
		"second:DREW_CARD",
		"first:LAND_PLAYED",
		"second:LAND_PLAYED",
	}, seen)
}

func TestEventBusCarriesAmount(t *testing.T) {
	bus := NewEventBus()

	damage := 0
	bus.Subscribe(func(e Event) {
		if e.Type == EventDamagedPlayer {
			damage += e.Amount
		}
	})

	bus.Publish(NewEvent(EventSpellCast, "card1", "card1", "player1"))
	bus.Publish(NewEventWithAmount(EventDamagedPlayer, "player2", "card1", "player2", 5))
	bus.Publish(NewEventWithAmount(EventDamagedPlayer, "player2", "card2", "player2", 3))
	assert.Equal(t, 8, damage)
}

func TestEventBusIgnoresNilListener(t *testing.T) {
	bus := NewEventBus()
	bus.Subscribe(nil)
	assert.NotPanics(t, func() { bus.Publish(NewEvent(EventSpellCast, "", "", "")) })
}
