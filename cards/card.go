package cards

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// CardFromString creates a card from a string representation
// e.g., "10♠" or "10s" or "10S" -> Card{Suit: Spades, Value: Ten}
func CardFromString(s string) (Card, error) {
	if utf8.RuneCountInString(s) < 2 {
		return Card{}, fmt.Errorf("invalid card shorthand: %q", s)
	}

	suitRune, size := utf8.DecodeLastRuneInString(s)
	var suit Suit
	switch suitRune {
	case '♠', 's', 'S':
		suit = Spades
	case '♥', 'h', 'H':
		suit = Hearts
	case '♦', 'd', 'D':
		suit = Diamonds
	case '♣', 'c', 'C':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid card suit: %q", string(suitRune))
	}

	value := Value(strings.ToUpper(s[:len(s)-size]))
	if value.Rank() == 0 {
		return Card{}, fmt.Errorf("invalid card value: %q", s[:len(s)-size])
	}

	return Card{Suit: suit, Value: value}, nil
}

// MustParse parses space-separated card shorthands and panics on bad input.
// Meant for fixtures.
func MustParse(s string) Stack {
	fields := strings.Fields(s)
	stack := make(Stack, 0, len(fields))
	for _, f := range fields {
		c, err := CardFromString(f)
		if err != nil {
			panic(err)
		}
		stack = append(stack, c)
	}
	return stack
}

// Suit represents a card suit
type Suit string

const (
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
	Spades   Suit = "♠"
)

// Suits lists the four suits in canonical deck order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Value represents a card value
type Value string

const (
	Two   Value = "2"
	Three Value = "3"
	Four  Value = "4"
	Five  Value = "5"
	Six   Value = "6"
	Seven Value = "7"
	Eight Value = "8"
	Nine  Value = "9"
	Ten   Value = "10"
	Jack  Value = "J"
	Queen Value = "Q"
	King  Value = "K"
	Ace   Value = "A"
)

// Values lists the thirteen values from deuce to ace.
var Values = []Value{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Rank returns the numeric rank of the value (2..14, ace high), or 0 for an unknown value.
func (v Value) Rank() int {
	switch v {
	case Two:
		return 2
	case Three:
		return 3
	case Four:
		return 4
	case Five:
		return 5
	case Six:
		return 6
	case Seven:
		return 7
	case Eight:
		return 8
	case Nine:
		return 9
	case Ten:
		return 10
	case Jack:
		return 11
	case Queen:
		return 12
	case King:
		return 13
	case Ace:
		return 14
	}
	return 0
}

// Card represents a playing card
type Card struct {
	Suit  Suit  `json:"suit"`
	Value Value `json:"rank"`
}

// String returns the string representation of a card
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Value, c.Suit)
}

// Rank is a shorthand for c.Value.Rank().
func (c Card) Rank() int {
	return c.Value.Rank()
}

// Equals checks if two cards are equal
func (c Card) Equals(other Card) bool {
	return c.Suit == other.Suit && c.Value == other.Value
}
