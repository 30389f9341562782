package domain

import "errors"

// Rejections returned by Room. None of them leave the room modified.
var (
	ErrRoomFull          = errors.New("room is full")
	ErrAlreadySeated     = errors.New("player is already seated")
	ErrNotEnoughPlayers  = errors.New("need at least 2 players with chips to start")
	ErrHandInProgress    = errors.New("a hand is already in progress")
	ErrNoActiveHand      = errors.New("no hand in progress")
	ErrNotPlayerTurn     = errors.New("not your turn")
	ErrAlreadyActed      = errors.New("you've already acted this round")
	ErrMustCallOrFold    = errors.New("cannot check, must call or fold")
	ErrRaiseTooSmall     = errors.New("raise too small")
	ErrInsufficientChips = errors.New("not enough chips")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrUnknownAction     = errors.New("unknown action")
)
