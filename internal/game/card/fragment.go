package card

import "fmt"

// FragmentKind identifies a capability that can be attached to a card.
type FragmentKind int

const (
	FragmentCreature FragmentKind = iota
)

var fragmentNames = map[FragmentKind]string{
	FragmentCreature: "CREATURE",
}

func (k FragmentKind) String() string {
	if name, ok := fragmentNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FRAGMENT_%d", int(k))
}

// Fragment is an optional, typed capability held by a card.
// The set of fragments is closed: only types declared in this package
// satisfy the interface, so a type switch over fragments is exhaustive.
type Fragment interface {
	Kind() FragmentKind
	clone() Fragment
}

// Stats are the combat stats of a creature.
type Stats struct {
	Power     int
	Toughness int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d/%d", s.Power, s.Toughness)
}

// CreatureFragment marks a card as a creature. Stats are fixed when the
// fragment is installed; only the summoning sickness bit changes afterwards.
type CreatureFragment struct {
	stats             Stats
	summoningSickness bool
}

func newCreatureFragment(power, toughness int) *CreatureFragment {
	if power < 0 {
		power = 0
	}
	if toughness < 0 {
		toughness = 0
	}
	return &CreatureFragment{stats: Stats{Power: power, Toughness: toughness}}
}

// Kind implements Fragment.
func (f *CreatureFragment) Kind() FragmentKind { return FragmentCreature }

// Stats returns the creature's combat stats.
func (f *CreatureFragment) Stats() Stats { return f.stats }

// SummoningSickness reports whether the creature entered this turn.
func (f *CreatureFragment) SummoningSickness() bool { return f.summoningSickness }

func (f *CreatureFragment) clone() Fragment {
	cp := *f
	return &cp
}

func (c *Card) creatureFragment() *CreatureFragment {
	if c == nil {
		return nil
	}
	switch f := c.fragments[FragmentCreature].(type) {
	case *CreatureFragment:
		return f
	default:
		return nil
	}
}

// IsCreature reports whether the card carries the Creature type or a
// creature fragment.
func IsCreature(c *Card) bool {
	if c == nil {
		return false
	}
	return c.HasType(TypeCreature) || c.creatureFragment() != nil
}

// CreatureStats returns the creature stats if the card has a creature fragment.
func CreatureStats(c *Card) (Stats, bool) {
	f := c.creatureFragment()
	if f == nil {
		return Stats{}, false
	}
	return f.stats, true
}

// AddCreatureFragment installs a creature fragment (replacing any previous
// one) without summoning sickness and adds the Creature type.
func AddCreatureFragment(c *Card, power, toughness int) {
	if c == nil {
		return
	}
	if c.fragments == nil {
		c.fragments = make(map[FragmentKind]Fragment)
	}
	c.fragments[FragmentCreature] = newCreatureFragment(power, toughness)
	c.addType(TypeCreature)
}

// RemoveCreatureFragment removes the creature fragment and the Creature type.
func RemoveCreatureFragment(c *Card) {
	if c == nil {
		return
	}
	delete(c.fragments, FragmentCreature)
	c.removeType(TypeCreature)
}

// SetSummoningSickness sets the sickness bit. No-op on non-creatures.
func SetSummoningSickness(c *Card, value bool) {
	if f := c.creatureFragment(); f != nil {
		f.summoningSickness = value
	}
}

// HasSummoningSickness returns false for cards without a creature fragment.
func HasSummoningSickness(c *Card) bool {
	if f := c.creatureFragment(); f != nil {
		return f.summoningSickness
	}
	return false
}
