package game

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/magefree/deckopt-go/internal/game/card"
)

// Snapshot returns a deterministic text summary of the game: step, turn,
// life totals, zone sizes, per-player stats, hands and boards. Card IDs are
// left out so that two games built from the same seed render identically.
func (g *Game) Snapshot() string {
	var b strings.Builder
	fmt.Fprintf(&b, "TURN %d %s active=%s", g.turns.TurnNumber(), g.turns.CurrentStep(), g.turns.ActivePlayer())
	if g.finished {
		fmt.Fprintf(&b, " finished=%s", g.result.Reason)
		if g.result.Loser != "" {
			fmt.Fprintf(&b, " loser=%s", g.result.Loser)
		}
	}
	b.WriteString("\n")

	for _, p := range g.players {
		fmt.Fprintf(&b, "PLAYER %s life=%d library=%d hand=%d graveyard=%d pool=%d\n",
			p.id, p.life, len(p.library), len(p.hand), len(p.graveyard), p.pool.GetTotalMana())
		counts := g.PlayerStats(p.id)
		fmt.Fprintf(&b, "  stats: drawn=%d lands=%d spells=%d died=%d damage_taken=%d\n",
			counts.CardsDrawn, counts.LandsPlayed, counts.SpellsCast, counts.CreaturesDied, counts.DamageToPlayers)

		names := make([]string, len(p.hand))
		for i, c := range p.hand {
			names[i] = c.Name
		}
		fmt.Fprintf(&b, "  hand: %s\n", strings.Join(names, ", "))

		for _, perm := range p.battlefield {
			b.WriteString("  board: ")
			b.WriteString(perm.card.Name)
			if stats, ok := card.CreatureStats(perm.card); ok {
				fmt.Fprintf(&b, " %s", stats)
				if card.HasSummoningSickness(perm.card) {
					b.WriteString(" sick")
				}
			}
			if perm.tapped {
				b.WriteString(" tapped")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Checksum is the hex SHA-256 of Snapshot.
func (g *Game) Checksum() string {
	sum := sha256.Sum256([]byte(g.Snapshot()))
	return hex.EncodeToString(sum[:])
}
