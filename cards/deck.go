package cards

import (
	"errors"
	"math/rand"
	"time"
)

// ErrDeckExhausted is returned when drawing from an empty deck.
var ErrDeckExhausted = errors.New("deck is exhausted")

// NewDeck52 creates a standard, unshuffled deck of 52 cards
func NewDeck52() Stack {
	deck := make(Stack, 0, len(Suits)*len(Values))
	for _, suit := range Suits {
		for _, value := range Values {
			deck = append(deck, Card{Suit: suit, Value: value})
		}
	}
	return deck
}

// Deck is an owned, shuffled sequence of the 52 cards. Draw takes from the end.
type Deck struct {
	cards Stack
}

// NewDeck returns a freshly shuffled deck.
func NewDeck() *Deck {
	return NewDeckWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewDeckWithRand shuffles with the given source, so tests can get a fixed order.
func NewDeckWithRand(r *rand.Rand) *Deck {
	cards := NewDeck52()
	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards}
}

// NewDeckFromStack builds a deck that will deal the given cards from last to first.
func NewDeckFromStack(stack Stack) *Deck {
	return &Deck{cards: stack.Clone()}
}

// Draw removes and returns the last card of the deck.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// Burn discards the next card.
func (d *Deck) Burn() error {
	_, err := d.Draw()
	return err
}

// Len returns the number of cards left.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Remaining returns a copy of the undealt cards.
func (d *Deck) Remaining() Stack {
	return d.cards.Clone()
}
