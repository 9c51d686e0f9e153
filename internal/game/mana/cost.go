package mana

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var symbolPattern = regexp.MustCompile(`\{([^}]+)\}`)

// ManaCost represents a parsed mana cost.
type ManaCost struct {
	Generic   int
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
}

// ParseCost parses a mana cost string (e.g., "{1}{G}", "{2}{R}{R}").
// Supports generic symbols ({1}, {2}, ...) and the colored symbols
// {W}, {U}, {B}, {R}, {G}, {C}.
func ParseCost(costStr string) (ManaCost, error) {
	var cost ManaCost
	costStr = strings.TrimSpace(costStr)
	if costStr == "" {
		return cost, nil
	}

	matches := symbolPattern.FindAllStringSubmatchIndex(costStr, -1)
	if len(matches) == 0 {
		return cost, fmt.Errorf("invalid mana cost %q", costStr)
	}

	end := 0
	for _, match := range matches {
		if match[0] != end {
			return ManaCost{}, fmt.Errorf("invalid mana cost %q: unexpected text at offset %d", costStr, end)
		}
		end = match[1]
		symbol := strings.ToUpper(strings.TrimSpace(costStr[match[2]:match[3]]))
		if manaType, ok := ParseType(symbol); ok {
			cost.add(manaType, 1)
			continue
		}
		num, err := strconv.Atoi(symbol)
		if err != nil || num < 0 {
			return ManaCost{}, fmt.Errorf("unknown mana symbol: {%s}", symbol)
		}
		cost.Generic += num
	}
	if end != len(costStr) {
		return ManaCost{}, fmt.Errorf("invalid mana cost %q: unexpected text at offset %d", costStr, end)
	}

	return cost, nil
}

func (mc *ManaCost) add(manaType ManaType, amount int) {
	switch manaType {
	case ManaWhite:
		mc.White += amount
	case ManaBlue:
		mc.Blue += amount
	case ManaBlack:
		mc.Black += amount
	case ManaRed:
		mc.Red += amount
	case ManaGreen:
		mc.Green += amount
	case ManaColorless:
		mc.Colorless += amount
	}
}

// Colored returns the amount of a specific (non-generic) mana type required.
func (mc ManaCost) Colored(manaType ManaType) int {
	switch manaType {
	case ManaWhite:
		return mc.White
	case ManaBlue:
		return mc.Blue
	case ManaBlack:
		return mc.Black
	case ManaRed:
		return mc.Red
	case ManaGreen:
		return mc.Green
	case ManaColorless:
		return mc.Colorless
	default:
		return 0
	}
}

// ManaValue returns the total amount of mana the cost requires.
func (mc ManaCost) ManaValue() int {
	return mc.Generic + mc.White + mc.Blue + mc.Black + mc.Red + mc.Green + mc.Colorless
}

// String returns a string representation of the mana cost.
func (mc ManaCost) String() string {
	var b strings.Builder
	if mc.Generic > 0 {
		fmt.Fprintf(&b, "{%d}", mc.Generic)
	}
	for _, part := range []struct {
		n      int
		symbol string
	}{
		{mc.White, "{W}"},
		{mc.Blue, "{U}"},
		{mc.Black, "{B}"},
		{mc.Red, "{R}"},
		{mc.Green, "{G}"},
		{mc.Colorless, "{C}"},
	} {
		b.WriteString(strings.Repeat(part.symbol, part.n))
	}
	if b.Len() == 0 {
		return "{0}"
	}
	return b.String()
}

// CanPay checks if a mana pool can pay for this cost.
func (mc ManaCost) CanPay(pool *ManaPool) bool {
	for _, manaType := range AllTypes {
		if pool.Get(manaType) < mc.Colored(manaType) {
			return false
		}
	}
	return pool.GetTotalMana() >= mc.ManaValue()
}
