package domain

// Snapshot is the state of a room as one viewer is allowed to see it
type Snapshot struct {
	RoomID            string                    `json:"room_id"`
	Players           map[string]PlayerSnapshot `json:"players"`
	DealerPosition    int                       `json:"dealer_position"`
	CurrentBet        int                       `json:"current_bet"`
	Pot               int                       `json:"pot"`
	CommunityCards    []string                  `json:"community_cards"`
	Stage             Stage                     `json:"stage"`
	SmallBlind        int                       `json:"small_blind"`
	BigBlind          int                       `json:"big_blind"`
	ActionPlayerIndex int                       `json:"action_player_index"`
	LastRaiseAmount   int                       `json:"last_raise_amount"`
	Results           []Result                  `json:"results,omitempty"`
}

type PlayerSnapshot struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Chips      int      `json:"chips"`
	CurrentBet int      `json:"current_bet"`
	HasActed   bool     `json:"has_acted"`
	IsAllIn    bool     `json:"is_all_in"`
	Folded     bool     `json:"folded"`
	HoleCards  []string `json:"hole_cards"`
	Position   int      `json:"position"`
	TotalChips int      `json:"total_chips"`
}

// Redact builds the snapshot for viewerID. Hole cards are only shown to
// their owner, and to everyone once the hand is finished; folded cards are
// never shown. An empty viewerID is a spectator.
func Redact(r *Room, viewerID string) Snapshot {
	snap := Snapshot{
		RoomID:            r.ID,
		Players:           make(map[string]PlayerSnapshot, len(r.players)),
		DealerPosition:    r.DealerPosition,
		CurrentBet:        r.CurrentBet,
		Pot:               r.Pot(),
		CommunityCards:    r.CommunityCards.Strings(),
		Stage:             r.Stage,
		SmallBlind:        r.Rules.SmallBlind,
		BigBlind:          r.Rules.BigBlind,
		ActionPlayerIndex: r.ActionIndex(),
		LastRaiseAmount:   r.MinRaise,
	}
	if len(r.Results) > 0 {
		snap.Results = append([]Result(nil), r.Results...)
	}

	for _, p := range r.players {
		hole := []string{}
		if canSee(r, p, viewerID) {
			hole = p.HoleCards.Strings()
		}
		snap.Players[p.ID] = PlayerSnapshot{
			ID:         p.ID,
			Name:       p.Name,
			Chips:      p.Chips,
			CurrentBet: p.CurrentBet,
			HasActed:   p.HasActed,
			IsAllIn:    p.IsAllIn,
			Folded:     p.Folded,
			HoleCards:  hole,
			Position:   p.Position,
			TotalChips: p.TotalChips(),
		}
	}

	return snap
}

func canSee(r *Room, p *Player, viewerID string) bool {
	if p.Folded {
		return false
	}
	if r.Stage == StageFinished {
		return true
	}
	return viewerID != "" && p.ID == viewerID
}
