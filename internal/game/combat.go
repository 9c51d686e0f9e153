package game

import (
	"github.com/magefree/deckopt-go/internal/game/card"
	"github.com/magefree/deckopt-go/internal/game/rules"
	"go.uber.org/zap"
)

// canAttack reports whether a permanent may be declared as an attacker.
func canAttack(perm *permanent) bool {
	return card.IsCreature(perm.card) && !perm.tapped && !card.HasSummoningSickness(perm.card)
}

func power(perm *permanent) int {
	stats, _ := card.CreatureStats(perm.card)
	return stats.Power
}

func toughness(perm *permanent) int {
	stats, _ := card.CreatureStats(perm.card)
	return stats.Toughness
}

// declareAttackers attacks with every eligible creature. Attacking taps.
func (g *Game) declareAttackers(attacker *player) {
	for _, perm := range attacker.battlefield {
		if !canAttack(perm) {
			continue
		}
		perm.tapped = true
		g.combat.attackers = append(g.combat.attackers, perm)
		g.publish(rules.NewEventWithAmount(rules.EventDeclaredAttacker, g.opponent(attacker).id, perm.card.ID, attacker.id, power(perm)))
	}

	if g.logger != nil && len(g.combat.attackers) > 0 {
		g.logger.Debug("attackers declared",
			zap.String("game_id", g.id),
			zap.String("player", attacker.id),
			zap.Int("attackers", len(g.combat.attackers)),
		)
	}
}

// declareBlockers assigns each untapped creature of the defender to the
// highest-power unblocked attacker it survives. Earlier attackers win ties.
func (g *Game) declareBlockers(defender *player) {
	for _, blocker := range defender.battlefield {
		if !card.IsCreature(blocker.card) || blocker.tapped {
			continue
		}
		var target *permanent
		for _, att := range g.combat.attackers {
			if _, blocked := g.combat.blockers[att]; blocked {
				continue
			}
			if power(att) >= toughness(blocker) {
				continue
			}
			if target == nil || power(att) > power(target) {
				target = att
			}
		}
		if target == nil {
			continue
		}
		g.combat.blockers[target] = blocker
		g.publish(rules.NewEvent(rules.EventDeclaredBlocker, target.card.ID, blocker.card.ID, defender.id))
	}
}

// assignCombatDamage resolves blocked pairs and applies unblocked damage to
// the defending player.
func (g *Game) assignCombatDamage(attacker, defender *player) {
	unblocked := 0
	for _, att := range g.combat.attackers {
		blocker, blocked := g.combat.blockers[att]
		if !blocked {
			unblocked += power(att)
			continue
		}
		att.damage += power(blocker)
		blocker.damage += power(att)
		g.publish(rules.NewEventWithAmount(rules.EventDamagedPermanent, blocker.card.ID, att.card.ID, defender.id, power(att)))
		g.publish(rules.NewEventWithAmount(rules.EventDamagedPermanent, att.card.ID, blocker.card.ID, attacker.id, power(blocker)))
	}

	g.destroyLethallyDamaged(attacker)
	g.destroyLethallyDamaged(defender)

	if unblocked > 0 {
		defender.life -= unblocked
		g.publish(rules.NewEventWithAmount(rules.EventDamagedPlayer, defender.id, "", defender.id, unblocked))
		if g.logger != nil {
			g.logger.Debug("combat damage to player",
				zap.String("game_id", g.id),
				zap.String("player", defender.id),
				zap.Int("damage", unblocked),
				zap.Int("life", defender.life),
			)
		}
	}
	g.checkLife()
}

// destroyLethallyDamaged moves creatures with damage at least equal to their
// toughness to the graveyard. Surviving creatures have their damage cleared.
func (g *Game) destroyLethallyDamaged(p *player) {
	survivors := p.battlefield[:0]
	for _, perm := range p.battlefield {
		if card.IsCreature(perm.card) && perm.damage > 0 && perm.damage >= toughness(perm) {
			card.SetSummoningSickness(perm.card, false)
			p.graveyard = append(p.graveyard, perm.card)
			g.publish(rules.NewEvent(rules.EventCreatureDied, perm.card.ID, perm.card.ID, p.id))
			continue
		}
		perm.damage = 0
		survivors = append(survivors, perm)
	}
	p.battlefield = survivors
}
