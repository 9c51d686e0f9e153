package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/magefree/deckopt-go/internal/game/card"
	"github.com/magefree/deckopt-go/internal/game/mana"
	"github.com/magefree/deckopt-go/internal/game/rules"
	"github.com/magefree/deckopt-go/internal/game/watchers"
	"go.uber.org/zap"
)

const (
	DefaultStartingLife = 20
	DefaultOpeningHand  = 7
)

// Player IDs are fixed so that seeded games produce identical snapshots.
const (
	PlayerOne = "player1"
	PlayerTwo = "player2"
)

// EndReason explains why a game finished.
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonLifeDepleted
	ReasonTurnLimit
	ReasonLibraryExhausted
)

var endReasonNames = map[EndReason]string{
	ReasonNone:             "NONE",
	ReasonLifeDepleted:     "LIFE_DEPLETED",
	ReasonTurnLimit:        "TURN_LIMIT",
	ReasonLibraryExhausted: "LIBRARY_EXHAUSTED",
}

func (r EndReason) String() string {
	if name, ok := endReasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("REASON_%d", int(r))
}

// Options configures a single game.
type Options struct {
	GameID       string // generated when empty
	StartingLife int
	OpeningHand  int
	MaxTurns     int   // 0 disables the turn ceiling
	Seed         int64 // 0 draws a seed from the runtime source
	RecordReplay bool
	Logger       *zap.Logger
}

func (o *Options) applyDefaults() {
	if o.GameID == "" {
		o.GameID = uuid.NewString()
	}
	if o.StartingLife <= 0 {
		o.StartingLife = DefaultStartingLife
	}
	if o.OpeningHand <= 0 {
		o.OpeningHand = DefaultOpeningHand
	}
}

// Stats aggregates event counts observed during a game.
type Stats struct {
	CardsDrawn      int
	LandsPlayed     int
	SpellsCast      int
	CreaturesDied   int
	DamageToPlayers int
}

// Result is the terminal outcome of a game. Turns is the metric the
// simulation averages.
type Result struct {
	Turns  int
	Reason EndReason
	Loser  string // empty when the turn ceiling ended the game
	Stats  Stats
}

// permanent is a card on the battlefield.
type permanent struct {
	card        *card.Card
	tapped      bool
	enteredTurn int
	damage      int
}

type player struct {
	id          string
	life        int
	library     []*card.Card
	hand        []*card.Card
	graveyard   []*card.Card
	battlefield []*permanent
	pool        *mana.ManaPool
}

// combatState tracks the attackers of the current turn and who blocks them.
type combatState struct {
	attackers []*permanent
	blockers  map[*permanent]*permanent // attacker -> blocker
}

// Game plays a two-player game between copies of the same deck template.
// A Game is owned by a single goroutine.
type Game struct {
	id       string
	opts     Options
	logger   *zap.Logger
	rng      *rand.Rand
	players  []*player
	turns    *rules.TurnManager
	bus      *rules.EventBus
	watchers *rules.WatcherRegistry
	stats    *watchers.Set
	combat   combatState
	replay   *Replay
	finished bool
	result   Result
}

// New creates a game. Each deck is shuffled independently with the game's
// seeded source and both players draw their opening hands.
func New(first, second []*card.Card, opts Options) (*Game, error) {
	opts.applyDefaults()
	for i, deck := range [][]*card.Card{first, second} {
		if len(deck) < opts.OpeningHand {
			return nil, fmt.Errorf("deck %d has %d cards, fewer than the opening hand of %d", i+1, len(deck), opts.OpeningHand)
		}
	}

	seed := uint64(opts.Seed)
	if opts.Seed == 0 {
		seed = rand.Uint64()
	}

	g := &Game{
		id:       opts.GameID,
		opts:     opts,
		logger:   opts.Logger,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		turns:    rules.NewTurnManager(PlayerOne),
		bus:      rules.NewEventBus(),
		watchers: rules.NewWatcherRegistry(),
		combat:   combatState{blockers: make(map[*permanent]*permanent)},
	}
	g.stats = watchers.NewSet(g.watchers)
	g.bus.Subscribe(g.watchers.NotifyWatchers)

	for _, spec := range []struct {
		id   string
		deck []*card.Card
	}{{PlayerOne, first}, {PlayerTwo, second}} {
		library := append([]*card.Card(nil), spec.deck...)
		g.rng.Shuffle(len(library), func(i, j int) {
			library[i], library[j] = library[j], library[i]
		})
		g.players = append(g.players, &player{
			id:      spec.id,
			life:    opts.StartingLife,
			library: library,
			pool:    mana.NewManaPool(),
		})
	}

	for _, p := range g.players {
		for i := 0; i < opts.OpeningHand; i++ {
			g.draw(p)
		}
	}

	if opts.RecordReplay {
		g.replay = NewReplay(g.id)
		g.recordFrame()
	}

	if g.logger != nil {
		g.logger.Debug("game created",
			zap.String("game_id", g.id),
			zap.Int("deck_size", len(first)),
			zap.Uint64("seed", seed),
		)
	}
	return g, nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Done reports whether the game has reached a terminal condition.
func (g *Game) Done() bool {
	return g.finished
}

// Result returns the outcome. It is only meaningful once Done is true.
func (g *Game) Result() Result {
	return g.result
}

// Replay returns the recorded frames, or nil when recording is off.
func (g *Game) Replay() *Replay {
	return g.replay
}

func (g *Game) recordFrame() {
	if g.replay == nil {
		return
	}
	g.replay.Record(ReplayFrame{
		Turn:     g.turns.TurnNumber(),
		Step:     g.turns.CurrentStep().String(),
		Snapshot: g.Snapshot(),
	})
}

// Turn returns the current turn number.
func (g *Game) Turn() int {
	return g.turns.TurnNumber()
}

// CurrentStep returns the step that the next call to Step will execute.
func (g *Game) CurrentStep() rules.Step {
	return g.turns.CurrentStep()
}

// Step executes the current step and advances to the next one. It reports
// whether the game is finished. Calling Step on a finished game does nothing.
func (g *Game) Step() bool {
	if g.finished {
		return true
	}

	step := g.turns.CurrentStep()
	active := g.activePlayer()
	if g.logger != nil {
		g.logger.Debug("executing step",
			zap.String("game_id", g.id),
			zap.Int("turn", g.turns.TurnNumber()),
			zap.String("player", active.id),
			zap.String("step", step.String()),
		)
	}

	switch step {
	case rules.StepUntap:
		g.untap(active)
	case rules.StepDraw:
		if !g.draw(active) {
			g.finish(ReasonLibraryExhausted, active.id)
		}
	case rules.StepMain1, rules.StepMain2:
		g.runMainPhase(active)
	case rules.StepDeclareAttackers:
		g.declareAttackers(active)
	case rules.StepDeclareBlockers:
		g.declareBlockers(g.opponent(active))
	case rules.StepCombatDamage:
		g.assignCombatDamage(active, g.opponent(active))
	case rules.StepCleanup:
		g.combat = combatState{blockers: make(map[*permanent]*permanent)}
	}

	if !g.finished {
		g.advance()
	}
	g.recordFrame()
	return g.finished
}

// PlayTurn steps until the next turn boundary or the end of the game.
func (g *Game) PlayTurn() bool {
	turn := g.turns.TurnNumber()
	for !g.finished && g.turns.TurnNumber() == turn {
		g.Step()
	}
	return g.finished
}

// Run plays the game to completion and returns its result.
func (g *Game) Run() Result {
	for !g.finished {
		g.Step()
	}
	return g.result
}

func (g *Game) advance() {
	if g.turns.CurrentStep() == rules.StepCleanup && g.opts.MaxTurns > 0 && g.turns.TurnNumber() >= g.opts.MaxTurns {
		g.finish(ReasonTurnLimit, "")
		return
	}

	next := g.opponent(g.activePlayer()).id
	_, step := g.turns.AdvanceStep(next)
	if g.turns.AtTurnStart() {
		g.publish(rules.Event{
			Type:     rules.EventBeginTurn,
			PlayerID: next,
			Turn:     g.turns.TurnNumber(),
		})
	}
	g.publish(rules.Event{
		Type:        rules.EventStepChanged,
		PlayerID:    g.turns.ActivePlayer(),
		Turn:        g.turns.TurnNumber(),
		Description: step.String(),
	})
}

func (g *Game) finish(reason EndReason, loser string) {
	if g.finished {
		return
	}
	g.finished = true
	g.result = Result{
		Turns:  g.turns.TurnNumber(),
		Reason: reason,
		Loser:  loser,
		Stats: Stats{
			CardsDrawn:      g.stats.CardsDrawn.Total(),
			LandsPlayed:     g.stats.LandsPlayed.Total(),
			SpellsCast:      g.stats.SpellsCast.Total(),
			CreaturesDied:   g.stats.CreaturesDied.Total(),
			DamageToPlayers: g.stats.DamageToPlayers.Total(),
		},
	}
	g.publish(rules.Event{
		Type:        rules.EventGameOver,
		PlayerID:    loser,
		Turn:        g.result.Turns,
		Description: reason.String(),
	})

	if g.logger != nil {
		g.logger.Debug("game ended",
			zap.String("game_id", g.id),
			zap.Int("turns", g.result.Turns),
			zap.String("reason", reason.String()),
			zap.String("loser", loser),
		)
	}
}

// PlayerStats returns the event counts attributed to one player. Damage is
// the damage that player received.
func (g *Game) PlayerStats(playerID string) Stats {
	return Stats{
		CardsDrawn:      g.stats.CardsDrawn.GetCount(playerID),
		LandsPlayed:     g.stats.LandsPlayed.GetCount(playerID),
		SpellsCast:      g.stats.SpellsCast.GetCount(playerID),
		CreaturesDied:   g.stats.CreaturesDied.GetCount(playerID),
		DamageToPlayers: g.stats.DamageToPlayers.GetCount(playerID),
	}
}

func (g *Game) publish(event rules.Event) {
	if event.Turn == 0 {
		event.Turn = g.turns.TurnNumber()
	}
	g.bus.Publish(event)
}

func (g *Game) activePlayer() *player {
	return g.player(g.turns.ActivePlayer())
}

func (g *Game) player(id string) *player {
	for _, p := range g.players {
		if p.id == id {
			return p
		}
	}
	return nil
}

func (g *Game) opponent(p *player) *player {
	if p == g.players[0] {
		return g.players[1]
	}
	return g.players[0]
}

// untap readies the active player's permanents. Creatures that entered
// before this turn lose summoning sickness.
func (g *Game) untap(p *player) {
	turn := g.turns.TurnNumber()
	p.pool.Empty()
	for _, perm := range p.battlefield {
		perm.tapped = false
		if perm.enteredTurn < turn {
			card.SetSummoningSickness(perm.card, false)
		}
	}
}

// draw moves the top card of the library to the hand. It returns false when
// the library is empty.
func (g *Game) draw(p *player) bool {
	if len(p.library) == 0 {
		return false
	}
	c := p.library[0]
	p.library = p.library[1:]
	p.hand = append(p.hand, c)
	g.publish(rules.NewEvent(rules.EventDrewCard, c.ID, c.ID, p.id))
	return true
}

func (g *Game) checkLife() {
	for _, p := range g.players {
		if p.life <= 0 {
			g.finish(ReasonLifeDepleted, p.id)
			return
		}
	}
}
