package domain

import (
	"fmt"
	"strings"
)

// Action is a betting decision. The set of implementations is closed:
// Fold, Check, Call, Bet, Raise and AllIn.
type Action interface {
	Name() string
	isAction()
}

type Fold struct{}

func (Fold) Name() string { return "fold" }
func (Fold) isAction()    {}

type Check struct{}

func (Check) Name() string { return "check" }
func (Check) isAction()    {}

type Call struct{}

func (Call) Name() string { return "call" }
func (Call) isAction()    {}

// Bet opens the betting. Amount is the player's total contribution for the round.
type Bet struct {
	Amount int
}

func (Bet) Name() string { return "bet" }
func (Bet) isAction()    {}

// Raise lifts the table bet. Amount is the player's total contribution for the round.
type Raise struct {
	Amount int
}

func (Raise) Name() string { return "raise" }
func (Raise) isAction()    {}

type AllIn struct{}

func (AllIn) Name() string { return "all_in" }
func (AllIn) isAction()    {}

// ParseAction turns a wire action name into an Action. Amount is only read
// for bet and raise.
func ParseAction(name string, amount int) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fold":
		return Fold{}, nil
	case "check":
		return Check{}, nil
	case "call":
		return Call{}, nil
	case "bet":
		return Bet{Amount: amount}, nil
	case "raise":
		return Raise{Amount: amount}, nil
	case "all_in", "allin", "all-in":
		return AllIn{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// actionAmount returns the amount carried by bet and raise, 0 otherwise.
func actionAmount(a Action) int {
	switch a := a.(type) {
	case Bet:
		return a.Amount
	case Raise:
		return a.Amount
	}
	return 0
}
