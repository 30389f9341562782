package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerBet(t *testing.T) {
	player := NewPlayer("1", "Test Player", 100, 0)

	moved := player.Bet(40)

	assert.Equal(t, 40, moved)
	assert.Equal(t, 60, player.Chips)
	assert.Equal(t, 40, player.CurrentBet)
	assert.False(t, player.IsAllIn)
}

func TestPlayerBetClampsToStack(t *testing.T) {
	player := NewPlayer("1", "Test Player", 100, 0)

	moved := player.Bet(250)

	assert.Equal(t, 100, moved)
	assert.Equal(t, 0, player.Chips)
	assert.Equal(t, 100, player.CurrentBet)
	assert.True(t, player.IsAllIn)
	assert.Equal(t, 100, player.TotalChips())
}

func TestPlayerNeedsAction(t *testing.T) {
	player := NewPlayer("1", "Test Player", 100, 0)
	assert.True(t, player.NeedsAction(0))

	player.HasActed = true
	assert.False(t, player.NeedsAction(0))
	assert.True(t, player.NeedsAction(20))

	player.Folded = true
	assert.False(t, player.NeedsAction(20))
	assert.False(t, player.CanAct())
}

func TestPlayerResetForNewHand(t *testing.T) {
	player := NewPlayer("1", "Test Player", 100, 3)
	player.Bet(100)
	player.HasActed = true
	player.Folded = true

	player.ResetForNewHand()

	assert.Equal(t, 0, player.CurrentBet)
	assert.False(t, player.HasActed)
	assert.False(t, player.IsAllIn)
	assert.False(t, player.Folded)
	assert.Empty(t, player.HoleCards)
	assert.Equal(t, 3, player.Position)
}
