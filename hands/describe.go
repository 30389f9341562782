package hands

import (
	"fmt"

	"github.com/lazharichir/holdem/cards"
	"github.com/paulhankin/poker"
)

// Describe names the best hand in set. Seven-card sets get the detailed
// wording from paulhankin/poker; anything else falls back to the category name.
func Describe(set cards.Stack) string {
	if len(set) != 7 {
		return Evaluate(set).Category.String()
	}

	hand, err := toPokerCards7(set)
	if err != nil {
		return Evaluate(set).Category.String()
	}

	desc, err := poker.Describe(hand[:])
	if err != nil {
		return Evaluate(set).Category.String()
	}
	return desc
}

// Score7 returns paulhankin/poker's score for exactly seven cards; higher is better.
func Score7(set cards.Stack) (int16, error) {
	hand, err := toPokerCards7(set)
	if err != nil {
		return 0, err
	}
	return poker.Eval7(&hand), nil
}

func toPokerCards7(set cards.Stack) ([7]poker.Card, error) {
	var out [7]poker.Card
	if len(set) != 7 {
		return out, fmt.Errorf("need 7 cards, got %d", len(set))
	}
	for i, c := range set[:7] {
		pc, err := poker.MakeCard(poker.Suit(suitIndex(c.Suit)), poker.Rank(pokerRank(c.Value)))
		if err != nil {
			return [7]poker.Card{}, err
		}
		out[i] = pc
	}
	return out, nil
}

func suitIndex(s cards.Suit) int {
	switch s {
	case cards.Clubs:
		return 0
	case cards.Diamonds:
		return 1
	case cards.Hearts:
		return 2
	default:
		return 3
	}
}

// pokerRank maps to paulhankin's ranks, where the ace is 1
func pokerRank(v cards.Value) int {
	if v == cards.Ace {
		return 1
	}
	return v.Rank()
}
