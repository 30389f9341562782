package events

import "time"

type PlayerSeated struct {
	RoomID     string    `json:"room_id"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"name"`
	Position   int       `json:"position"`
	Chips      int       `json:"chips"`
	At         time.Time `json:"at"`
}

func (PlayerSeated) Name() string { return "PLAYER_SEATED" }

type PlayerUnseated struct {
	RoomID   string    `json:"room_id"`
	PlayerID string    `json:"player_id"`
	Chips    int       `json:"chips"`
	At       time.Time `json:"at"`
}

func (PlayerUnseated) Name() string { return "PLAYER_UNSEATED" }

type HandStarted struct {
	RoomID         string    `json:"room_id"`
	DealerPosition int       `json:"dealer_position"`
	Players        []string  `json:"players"`
	At             time.Time `json:"at"`
}

func (HandStarted) Name() string { return "HAND_STARTED" }

type HoleCardsDealt struct {
	RoomID  string    `json:"room_id"`
	Players []string  `json:"players"`
	At      time.Time `json:"at"`
}

func (HoleCardsDealt) Name() string { return "HOLE_CARDS_DEALT" }

type BlindPosted struct {
	RoomID   string    `json:"room_id"`
	PlayerID string    `json:"player_id"`
	Blind    string    `json:"blind"` // "small" or "big"
	Amount   int       `json:"amount"`
	At       time.Time `json:"at"`
}

func (BlindPosted) Name() string { return "BLIND_POSTED" }

type PlayerActed struct {
	RoomID     string    `json:"room_id"`
	PlayerID   string    `json:"player_id"`
	Action     string    `json:"action"`
	Amount     int       `json:"amount,omitempty"`
	CurrentBet int       `json:"current_bet"`
	Chips      int       `json:"chips"`
	At         time.Time `json:"at"`
}

func (PlayerActed) Name() string { return "PLAYER_ACTED" }

type StageChanged struct {
	RoomID         string    `json:"room_id"`
	PreviousStage  string    `json:"previous_stage"`
	NewStage       string    `json:"new_stage"`
	CommunityCards []string  `json:"community_cards"`
	Pot            int       `json:"pot"`
	At             time.Time `json:"at"`
}

func (StageChanged) Name() string { return "STAGE_CHANGED" }

type ShowdownRevealed struct {
	RoomID string              `json:"room_id"`
	Hands  map[string][]string `json:"hands"`
	At     time.Time           `json:"at"`
}

func (ShowdownRevealed) Name() string { return "SHOWDOWN_REVEALED" }

type PotAwarded struct {
	RoomID   string    `json:"room_id"`
	PlayerID string    `json:"player_id"`
	Amount   int       `json:"amount"`
	HandName string    `json:"hand_name,omitempty"`
	At       time.Time `json:"at"`
}

func (PotAwarded) Name() string { return "POT_AWARDED" }

type HandFinished struct {
	RoomID             string    `json:"room_id"`
	Pot                int       `json:"pot"`
	Winners            []string  `json:"winners"`
	NextDealerPosition int       `json:"next_dealer_position"`
	At                 time.Time `json:"at"`
}

func (HandFinished) Name() string { return "HAND_FINISHED" }

type HandAbandoned struct {
	RoomID string    `json:"room_id"`
	Pot    int       `json:"pot"`
	At     time.Time `json:"at"`
}

func (HandAbandoned) Name() string { return "HAND_ABANDONED" }
