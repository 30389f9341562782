package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lazharichir/holdem/server/handlers"
)

var errUsage = errors.New("usage: start | check | call | fold | bet N | raise N | allin | state | q")

// parseInput turns one line typed by the player into a message for the server.
// A blank line yields no message.
func parseInput(line string) (msg *handlers.Message, quit bool, err error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil, false, nil
	}

	switch fields[0] {
	case "q", "quit", "exit":
		return nil, true, nil
	case "start":
		return &handlers.Message{Type: handlers.TypeStartHand}, false, nil
	case "state":
		return &handlers.Message{Type: handlers.TypeGetState}, false, nil
	case "check", "call", "fold":
		return &handlers.Message{Type: handlers.TypeAction, Action: fields[0]}, false, nil
	case "allin", "all-in", "all_in", "shove":
		return &handlers.Message{Type: handlers.TypeAction, Action: "all_in"}, false, nil
	case "bet", "raise":
		if len(fields) != 2 {
			return nil, false, fmt.Errorf("%s needs an amount", fields[0])
		}
		amount, err := strconv.Atoi(fields[1])
		if err != nil || amount <= 0 {
			return nil, false, fmt.Errorf("invalid amount %q", fields[1])
		}
		return &handlers.Message{Type: handlers.TypeAction, Action: fields[0], Amount: amount}, false, nil
	}

	return nil, false, errUsage
}
