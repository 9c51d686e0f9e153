package game

import (
	"testing"

	"github.com/magefree/deckopt-go/internal/game/card"
	"github.com/magefree/deckopt-go/internal/game/mana"
	"github.com/magefree/deckopt-go/internal/game/rules"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// testHarness wraps a game whose zones can be arranged directly.
type testHarness struct {
	t    *testing.T
	game *Game
}

// newTestHarness starts a seeded game where both decks are all lands and
// both hands are emptied.
func newTestHarness(t *testing.T, opts Options) *testHarness {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 7
	}
	opts.Logger = zaptest.NewLogger(t)

	catalog := card.DefaultCatalog()
	first, err := catalog.BuildDeck(30, 0)
	require.NoError(t, err)
	second, err := catalog.BuildDeck(30, 0)
	require.NoError(t, err)

	g, err := New(first, second, opts)
	require.NoError(t, err)

	h := &testHarness{t: t, game: g}
	h.setHand(PlayerOne)
	h.setHand(PlayerTwo)
	return h
}

func (h *testHarness) player(id string) *player {
	p := h.game.player(id)
	require.NotNil(h.t, p, "unknown player %s", id)
	return p
}

func (h *testHarness) setHand(id string, cards ...*card.Card) {
	h.player(id).hand = cards
}

func (h *testHarness) setLibrary(id string, cards ...*card.Card) {
	h.player(id).library = cards
}

func (h *testHarness) setLife(id string, life int) {
	h.player(id).life = life
}

// addCreature puts a creature onto the battlefield. A creature that entered
// before turn 1 has no summoning sickness.
func (h *testHarness) addCreature(id, name string, power, toughness, enteredTurn int) *permanent {
	c := card.NewCreature(name, mana.ManaCost{Generic: 1}, power, toughness)
	card.SetSummoningSickness(c, enteredTurn >= 1)
	perm := &permanent{card: c, enteredTurn: enteredTurn}
	p := h.player(id)
	p.battlefield = append(p.battlefield, perm)
	return perm
}

func (h *testHarness) addLands(id string, n int) {
	p := h.player(id)
	for i := 0; i < n; i++ {
		p.battlefield = append(p.battlefield, &permanent{card: card.NewLand("Forest", mana.ManaGreen)})
	}
}

// stepUntil steps until the game is about to execute step on turn.
func (h *testHarness) stepUntil(turn int, step rules.Step) {
	h.t.Helper()
	for !h.game.Done() && (h.game.Turn() != turn || h.game.CurrentStep() != step) {
		h.game.Step()
	}
	require.False(h.t, h.game.Done(), "game ended before turn %d %s", turn, step)
}

func (h *testHarness) onBattlefield(id string, perm *permanent) bool {
	for _, p := range h.player(id).battlefield {
		if p == perm {
			return true
		}
	}
	return false
}
