package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lazharichir/holdem/domain"
	"github.com/pterm/pterm"
)

// renderState draws the table as seen by playerID
func renderState(s domain.Snapshot, playerID string) string {
	players := make([]domain.PlayerSnapshot, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Position < players[j].Position })

	rows := [][]string{{"Seat", "Player", "Chips", "Bet", "Cards", "Status"}}
	for _, p := range players {
		name := p.Name
		if p.ID == playerID {
			name = pterm.LightCyan(name + " (you)")
		}
		seat := fmt.Sprint(p.Position)
		if p.Position == s.DealerPosition {
			seat += " D"
		}
		if p.Position == s.ActionPlayerIndex {
			seat += " *"
		}
		rows = append(rows, []string{
			seat,
			name,
			fmt.Sprint(p.Chips),
			fmt.Sprint(p.CurrentBet),
			holeCards(p),
			status(p),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		table = err.Error()
	}

	board := strings.Join(s.CommunityCards, " ")
	if board == "" {
		board = "-"
	}
	info := pterm.Sprintfln("Stage: %s   Pot: %d   To call: %d   Min raise: %d   Blinds: %d/%d",
		s.Stage, s.Pot, s.CurrentBet, s.LastRaiseAmount, s.SmallBlind, s.BigBlind)
	info += pterm.Sprintf("Board: %s", board)

	out := pterm.DefaultBox.WithTitle("Room " + s.RoomID).Sprint(info)
	out += "\n" + table

	for _, r := range s.Results {
		line := fmt.Sprintf("%s wins %d", r.Name, r.Amount)
		if r.HandName != "" {
			line += " with " + r.HandName
			if r.Description != "" && r.Description != r.HandName {
				line += " (" + r.Description + ")"
			}
		}
		out += "\n" + pterm.LightGreen(line)
	}

	return out
}

func holeCards(p domain.PlayerSnapshot) string {
	if len(p.HoleCards) == 0 {
		if p.Folded {
			return ""
		}
		return "?? ??"
	}
	return strings.Join(p.HoleCards, " ")
}

func status(p domain.PlayerSnapshot) string {
	switch {
	case p.Folded:
		return "folded"
	case p.IsAllIn:
		return "all-in"
	case p.HasActed:
		return "acted"
	}
	return ""
}
