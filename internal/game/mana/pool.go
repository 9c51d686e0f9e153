package mana

// ManaType represents a type of mana.
type ManaType string

const (
	ManaWhite     ManaType = "WHITE"
	ManaBlue      ManaType = "BLUE"
	ManaBlack     ManaType = "BLACK"
	ManaRed       ManaType = "RED"
	ManaGreen     ManaType = "GREEN"
	ManaColorless ManaType = "COLORLESS"
)

// AllTypes lists the concrete mana types in payment preference order for
// generic costs: colorless is spent before any color.
var AllTypes = []ManaType{ManaColorless, ManaWhite, ManaBlue, ManaBlack, ManaRed, ManaGreen}

// ParseType maps a single mana symbol (W, U, B, R, G, C) or a full type name
// to a ManaType.
func ParseType(symbol string) (ManaType, bool) {
	switch symbol {
	case "W", "w", string(ManaWhite):
		return ManaWhite, true
	case "U", "u", string(ManaBlue):
		return ManaBlue, true
	case "B", "b", string(ManaBlack):
		return ManaBlack, true
	case "R", "r", string(ManaRed):
		return ManaRed, true
	case "G", "g", string(ManaGreen):
		return ManaGreen, true
	case "C", "c", string(ManaColorless):
		return ManaColorless, true
	default:
		return "", false
	}
}

// ManaPool represents a player's mana pool.
// A pool belongs to a single game and is never shared between goroutines.
type ManaPool struct {
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
}

// NewManaPool creates a new empty mana pool.
func NewManaPool() *ManaPool {
	return &ManaPool{}
}

func (mp *ManaPool) slot(manaType ManaType) *int {
	switch manaType {
	case ManaWhite:
		return &mp.White
	case ManaBlue:
		return &mp.Blue
	case ManaBlack:
		return &mp.Black
	case ManaRed:
		return &mp.Red
	case ManaGreen:
		return &mp.Green
	case ManaColorless:
		return &mp.Colorless
	default:
		return nil
	}
}

// Add adds mana to the pool.
func (mp *ManaPool) Add(manaType ManaType, amount int) {
	if amount <= 0 {
		return
	}
	if s := mp.slot(manaType); s != nil {
		*s += amount
	}
}

// Get returns the amount of a specific mana type.
func (mp *ManaPool) Get(manaType ManaType) int {
	if s := mp.slot(manaType); s != nil {
		return *s
	}
	return 0
}

// Spend attempts to spend mana from the pool.
// Returns true if successful, false if insufficient mana.
func (mp *ManaPool) Spend(manaType ManaType, amount int) bool {
	if amount <= 0 {
		return true
	}
	s := mp.slot(manaType)
	if s == nil || *s < amount {
		return false
	}
	*s -= amount
	return true
}

// Empty empties the mana pool.
func (mp *ManaPool) Empty() {
	*mp = ManaPool{}
}

// GetTotalMana returns the total mana count across all types.
func (mp *ManaPool) GetTotalMana() int {
	return mp.White + mp.Blue + mp.Black + mp.Red + mp.Green + mp.Colorless
}

// Copy creates a copy of the mana pool.
func (mp *ManaPool) Copy() *ManaPool {
	cp := *mp
	return &cp
}
