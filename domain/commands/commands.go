package commands

import "github.com/lazharichir/holdem/domain"

// Command is a request routed to a single room's loop.
type Command interface {
	Name() string
}

type SeatPlayer struct {
	PlayerID   string
	PlayerName string
}

func (c SeatPlayer) Name() string { return "SEAT_PLAYER" }

type UnseatPlayer struct {
	PlayerID string
}

func (c UnseatPlayer) Name() string { return "UNSEAT_PLAYER" }

type StartHand struct{}

func (c StartHand) Name() string { return "START_HAND" }

type ApplyAction struct {
	PlayerID string
	Action   domain.Action
}

func (c ApplyAction) Name() string { return "APPLY_ACTION" }

// GetState asks for the snapshot ViewerID is allowed to see. It does not mutate the room.
type GetState struct {
	ViewerID string
}

func (c GetState) Name() string { return "GET_STATE" }

// DescribeRoom asks for the public room metadata.
type DescribeRoom struct{}

func (c DescribeRoom) Name() string { return "DESCRIBE_ROOM" }

// Mutates reports whether cmd can change the room.
func Mutates(cmd Command) bool {
	switch cmd.(type) {
	case GetState, DescribeRoom:
		return false
	}
	return true
}
