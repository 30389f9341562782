package domain

import "github.com/lazharichir/holdem/cards"

// Player represents a seated poker player
type Player struct {
	ID         string
	Name       string
	Chips      int
	CurrentBet int
	HasActed   bool
	IsAllIn    bool
	Folded     bool
	HoleCards  cards.Stack
	Position   int
}

// NewPlayer creates a new player with the given ID and name
func NewPlayer(id string, name string, startingChips int, position int) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		Chips:     startingChips,
		HoleCards: make(cards.Stack, 0, 2),
		Position:  position,
	}
}

// ResetForNewHand resets the player's per-hand state
func (p *Player) ResetForNewHand() {
	p.HoleCards = p.HoleCards[:0]
	p.CurrentBet = 0
	p.HasActed = false
	p.IsAllIn = false
	p.Folded = false
}

// Bet moves up to amount chips from the stack into the current bet and
// returns what was actually moved. An emptied stack makes the player all-in.
func (p *Player) Bet(amount int) int {
	if amount < 0 {
		amount = 0
	}
	if amount > p.Chips {
		amount = p.Chips
	}
	p.Chips -= amount
	p.CurrentBet += amount
	if p.Chips == 0 {
		p.IsAllIn = true
	}
	return amount
}

// NeedsAction reports whether the player still owes an action against tableBet.
func (p *Player) NeedsAction(tableBet int) bool {
	return !p.Folded && !p.IsAllIn && (!p.HasActed || p.CurrentBet < tableBet)
}

// CanAct reports whether the player can still put chips in this hand.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.IsAllIn
}

// TotalChips is the stack plus the live bet.
func (p *Player) TotalChips() int {
	return p.Chips + p.CurrentBet
}
