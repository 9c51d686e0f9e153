package game

import (
	"sort"

	"github.com/magefree/deckopt-go/internal/game/card"
	"github.com/magefree/deckopt-go/internal/game/mana"
	"github.com/magefree/deckopt-go/internal/game/rules"
	"go.uber.org/zap"
)

// runMainPhase repeats the greedy policy until it passes or the game ends.
func (g *Game) runMainPhase(p *player) {
	for !g.finished && g.takeMainAction(p) {
	}
}

// takeMainAction plays a land if one is available, otherwise casts the
// cheapest affordable card. It reports whether an action was taken.
func (g *Game) takeMainAction(p *player) bool {
	if !g.stats.LandPlayedThisTurn.ConditionMet() {
		for i, c := range p.hand {
			if c.IsLand() {
				g.playLand(p, i)
				return true
			}
		}
	}

	idx := g.cheapestAffordable(p)
	if idx < 0 {
		return false
	}
	return g.cast(p, idx)
}

// cheapestAffordable returns the hand index of the affordable non-land with
// the lowest mana value, earlier hand positions winning ties, or -1.
func (g *Game) cheapestAffordable(p *player) int {
	candidates := make([]int, 0, len(p.hand))
	for i, c := range p.hand {
		if !c.IsLand() {
			candidates = append(candidates, i)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return p.hand[candidates[a]].ManaValue() < p.hand[candidates[b]].ManaValue()
	})

	available := p.availableMana()
	for _, i := range candidates {
		if p.hand[i].Cost.CanPay(available) {
			return i
		}
	}
	return -1
}

func (g *Game) playLand(p *player, handIdx int) {
	c := p.removeFromHand(handIdx)
	p.battlefield = append(p.battlefield, &permanent{card: c, enteredTurn: g.turns.TurnNumber()})
	g.publish(rules.NewEvent(rules.EventLandPlayed, c.ID, c.ID, p.id))

	if g.logger != nil {
		g.logger.Debug("land played",
			zap.String("game_id", g.id),
			zap.String("player", p.id),
			zap.String("card", c.Name),
		)
	}
}

func (g *Game) cast(p *player, handIdx int) bool {
	c := p.hand[handIdx]
	if !p.tapFor(c.Cost) {
		return false
	}
	if err := mana.Pay(c.Cost, p.pool); err != nil {
		// tapFor only returns true when the pool covers the cost
		if g.logger != nil {
			g.logger.Warn("payment failed after tapping", zap.String("card", c.Name), zap.Error(err))
		}
		return false
	}
	p.removeFromHand(handIdx)
	g.publish(rules.NewEvent(rules.EventSpellCast, c.ID, c.ID, p.id))

	if g.logger != nil {
		g.logger.Debug("spell cast",
			zap.String("game_id", g.id),
			zap.String("player", p.id),
			zap.String("card", c.Name),
			zap.String("cost", c.Cost.String()),
		)
	}

	if card.IsCreature(c) {
		turn := g.turns.TurnNumber()
		card.SetSummoningSickness(c, true)
		p.battlefield = append(p.battlefield, &permanent{card: c, enteredTurn: turn})
		g.publish(rules.NewEvent(rules.EventEntersTheBattlefield, c.ID, c.ID, p.id))
		return true
	}

	p.graveyard = append(p.graveyard, c)
	if c.Damage > 0 {
		opp := g.opponent(p)
		opp.life -= c.Damage
		g.publish(rules.NewEventWithAmount(rules.EventDamagedPlayer, opp.id, c.ID, opp.id, c.Damage))
		g.checkLife()
	}
	return true
}

func (p *player) removeFromHand(i int) *card.Card {
	c := p.hand[i]
	p.hand = append(p.hand[:i], p.hand[i+1:]...)
	return c
}

// availableMana is the floating pool plus one mana from every untapped land.
func (p *player) availableMana() *mana.ManaPool {
	pool := p.pool.Copy()
	for _, perm := range p.battlefield {
		if perm.card.IsLand() && !perm.tapped {
			pool.Add(perm.card.Produces, 1)
		}
	}
	return pool
}

// tapFor taps lands until the floating pool covers cost. Lands producing a
// color the cost still needs are tapped first.
func (p *player) tapFor(cost mana.ManaCost) bool {
	if !cost.CanPay(p.availableMana()) {
		return false
	}
	for _, t := range mana.AllTypes {
		for _, perm := range p.battlefield {
			if p.pool.Get(t) >= cost.Colored(t) {
				break
			}
			if perm.card.IsLand() && !perm.tapped && perm.card.Produces == t {
				p.tap(perm)
			}
		}
	}
	for _, perm := range p.battlefield {
		if cost.CanPay(p.pool) {
			break
		}
		if perm.card.IsLand() && !perm.tapped {
			p.tap(perm)
		}
	}
	return cost.CanPay(p.pool)
}

func (p *player) tap(perm *permanent) {
	perm.tapped = true
	p.pool.Add(perm.card.Produces, 1)
}
