package mana

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManaPool_Add(t *testing.T) {
	pool := NewManaPool()

	pool.Add(ManaWhite, 2)
	assert.Equal(t, 2, pool.Get(ManaWhite))

	pool.Add(ManaBlue, 1)
	assert.Equal(t, 1, pool.Get(ManaBlue))

	pool.Add(ManaBlue, -3)
	assert.Equal(t, 1, pool.Get(ManaBlue))
}

func TestManaPool_Spend(t *testing.T) {
	pool := NewManaPool()
	pool.Add(ManaWhite, 3)
	pool.Add(ManaBlue, 2)

	assert.True(t, pool.Spend(ManaWhite, 2))
	assert.Equal(t, 1, pool.Get(ManaWhite))

	assert.True(t, pool.Spend(ManaBlue, 1))
	assert.Equal(t, 1, pool.Get(ManaBlue))

	assert.False(t, pool.Spend(ManaWhite, 5), "cannot spend more than available")
	assert.Equal(t, 1, pool.Get(ManaWhite))
}

func TestManaPool_EmptyAndCopy(t *testing.T) {
	pool := NewManaPool()
	pool.Add(ManaGreen, 2)
	pool.Add(ManaColorless, 1)

	cp := pool.Copy()
	pool.Empty()

	assert.Equal(t, 0, pool.GetTotalMana())
	assert.Equal(t, 3, cp.GetTotalMana())
}

func TestParseType(t *testing.T) {
	for symbol, want := range map[string]ManaType{
		"G": ManaGreen, "u": ManaBlue, "RED": ManaRed, "C": ManaColorless,
	} {
		got, ok := ParseType(symbol)
		assert.True(t, ok, symbol)
		assert.Equal(t, want, got, symbol)
	}
	_, ok := ParseType("X")
	assert.False(t, ok)
}
