package card

import (
	"strings"

	"github.com/google/uuid"
	"github.com/magefree/deckopt-go/internal/game/mana"
)

// Type is a coarse card category.
type Type string

const (
	TypeLand     Type = "Land"
	TypeCreature Type = "Creature"
	TypeSpell    Type = "Spell"
)

// typeOrder keeps type lists stable for display.
var typeOrder = []Type{TypeLand, TypeCreature, TypeSpell}

// Card is a single card instance. Every instance has its own ID and its own
// fragments; decks never share card pointers between games.
type Card struct {
	ID       string
	Name     string
	Cost     mana.ManaCost
	Produces mana.ManaType // mana a land taps for
	Damage   int           // damage a non-creature spell deals to the opponent

	types     map[Type]bool
	fragments map[FragmentKind]Fragment
}

func newCard(name string, cost mana.ManaCost, types ...Type) *Card {
	c := &Card{
		ID:        uuid.NewString(),
		Name:      name,
		Cost:      cost,
		types:     make(map[Type]bool, len(types)),
		fragments: make(map[FragmentKind]Fragment),
	}
	for _, t := range types {
		c.addType(t)
	}
	return c
}

// NewLand creates a land that taps for one mana of the given type.
func NewLand(name string, produces mana.ManaType) *Card {
	c := newCard(name, mana.ManaCost{}, TypeLand)
	c.Produces = produces
	return c
}

// NewCreature creates a creature card with its creature fragment installed.
func NewCreature(name string, cost mana.ManaCost, power, toughness int) *Card {
	c := newCard(name, cost)
	AddCreatureFragment(c, power, toughness)
	return c
}

// NewSpell creates a non-creature spell that deals damage to the opponent.
func NewSpell(name string, cost mana.ManaCost, damage int) *Card {
	c := newCard(name, cost, TypeSpell)
	if damage > 0 {
		c.Damage = damage
	}
	return c
}

// HasType reports whether the card has the category tag.
func (c *Card) HasType(t Type) bool {
	return c != nil && c.types[t]
}

// IsLand reports whether the card is a land.
func (c *Card) IsLand() bool {
	return c.HasType(TypeLand)
}

// Types returns the card's category tags in display order.
func (c *Card) Types() []Type {
	out := make([]Type, 0, len(c.types))
	for _, t := range typeOrder {
		if c.types[t] {
			out = append(out, t)
		}
	}
	return out
}

// ManaValue is the total mana needed to cast the card.
func (c *Card) ManaValue() int {
	return c.Cost.ManaValue()
}

// Fragment returns the fragment of the given kind, if present.
func (c *Card) Fragment(kind FragmentKind) (Fragment, bool) {
	if c == nil {
		return nil, false
	}
	f, ok := c.fragments[kind]
	return f, ok
}

// Clone returns a deep copy of the card with a new ID.
func (c *Card) Clone() *Card {
	cp := &Card{
		ID:        uuid.NewString(),
		Name:      c.Name,
		Cost:      c.Cost,
		Produces:  c.Produces,
		Damage:    c.Damage,
		types:     make(map[Type]bool, len(c.types)),
		fragments: make(map[FragmentKind]Fragment, len(c.fragments)),
	}
	for t := range c.types {
		cp.types[t] = true
	}
	for kind, f := range c.fragments {
		cp.fragments[kind] = f.clone()
	}
	return cp
}

func (c *Card) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	if stats, ok := CreatureStats(c); ok {
		b.WriteString(" ")
		b.WriteString(stats.String())
	}
	return b.String()
}

func (c *Card) addType(t Type) {
	if c.types == nil {
		c.types = make(map[Type]bool)
	}
	c.types[t] = true
}

func (c *Card) removeType(t Type) {
	delete(c.types, t)
}
