package domain

import (
	"fmt"
	"time"

	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/domain/events"
)

// Stage is the position of the room in the hand lifecycle
type Stage string

const (
	StageWaiting  Stage = "waiting"
	StagePreFlop  Stage = "pre_flop"
	StageFlop     Stage = "flop"
	StageTurn     Stage = "turn"
	StageRiver    Stage = "river"
	StageShowdown Stage = "showdown"
	StageFinished Stage = "finished"
)

// IsBetting reports whether players are acting in this stage.
func (s Stage) IsBetting() bool {
	switch s {
	case StagePreFlop, StageFlop, StageTurn, StageRiver:
		return true
	}
	return false
}

// Rules defines the per-room table settings
type Rules struct {
	SmallBlind    int
	BigBlind      int
	StartingStack int
	MaxPlayers    int
}

// MaxSeats is the capacity of a full table
const MaxSeats = 9

// DefaultRules returns 10/20 blinds, 1000-chip stacks and nine seats.
func DefaultRules() Rules {
	return Rules{
		SmallBlind:    10,
		BigBlind:      20,
		StartingStack: 1000,
		MaxPlayers:    MaxSeats,
	}
}

// Room is one Texas Hold'em table. It is not safe for concurrent use;
// callers serialize every method call.
type Room struct {
	ID    string
	Name  string
	Rules Rules

	DealerPosition int
	CurrentBet     int
	MinRaise       int
	CommunityCards cards.Stack
	Stage          Stage
	Results        []Result

	players    []*Player // seating order
	settled    int       // chips swept in from completed betting rounds
	deck       *cards.Deck
	actionSeat string // player id on action, "" when nobody is
	newDeck    func() *cards.Deck

	// events
	eventHandlers []events.EventHandler
}

// NewRoom creates an empty room waiting for players
func NewRoom(id string, name string, rules Rules) *Room {
	if rules.MaxPlayers <= 0 || rules.MaxPlayers > MaxSeats {
		rules.MaxPlayers = MaxSeats
	}
	return &Room{
		ID:             id,
		Name:           name,
		Rules:          rules,
		Stage:          StageWaiting,
		MinRaise:       rules.BigBlind,
		CommunityCards: cards.Stack{},
		players:        []*Player{},
		newDeck:        cards.NewDeck,
	}
}

// UseDeckFactory replaces the shuffled deck source used by StartHand.
func (r *Room) UseDeckFactory(f func() *cards.Deck) {
	r.newDeck = f
}

// RegisterEventHandler registers a callback function that will be called when events occur
func (r *Room) RegisterEventHandler(handler events.EventHandler) {
	r.eventHandlers = append(r.eventHandlers, handler)
}

func (r *Room) emitEvent(event events.Event) {
	for _, handler := range r.eventHandlers {
		handler(event)
	}
}

// Players returns the seated players in seat order.
func (r *Room) Players() []*Player {
	out := make([]*Player, len(r.players))
	copy(out, r.players)
	return out
}

// Player looks a seated player up by id.
func (r *Room) Player(playerID string) (*Player, bool) {
	idx := r.indexOf(playerID)
	if idx < 0 {
		return nil, false
	}
	return r.players[idx], true
}

// Pot is every chip committed this hand: settled rounds plus live bets.
func (r *Room) Pot() int {
	pot := r.settled
	for _, p := range r.players {
		pot += p.CurrentBet
	}
	return pot
}

// ActionPlayerID returns the id of the player on action, or "".
func (r *Room) ActionPlayerID() string {
	return r.actionSeat
}

// ActionIndex returns the seat position of the player on action, or -1.
func (r *Room) ActionIndex() int {
	if r.actionSeat == "" {
		return -1
	}
	return r.indexOf(r.actionSeat)
}

// IsHandActive reports whether a hand is being played.
func (r *Room) IsHandActive() bool {
	return r.Stage.IsBetting() || r.Stage == StageShowdown
}

// Seat adds a player with the configured starting stack at the next free position
func (r *Room) Seat(playerID string, name string) error {
	if r.indexOf(playerID) >= 0 {
		return ErrAlreadySeated
	}
	if len(r.players) >= r.Rules.MaxPlayers {
		return fmt.Errorf("%w (%d seats)", ErrRoomFull, r.Rules.MaxPlayers)
	}

	player := NewPlayer(playerID, name, r.Rules.StartingStack, len(r.players))
	if r.IsHandActive() {
		// joins mid-hand sit out until the next deal
		player.Folded = true
	}
	r.players = append(r.players, player)

	r.emitEvent(events.PlayerSeated{
		RoomID:     r.ID,
		PlayerID:   playerID,
		PlayerName: name,
		Position:   player.Position,
		Chips:      player.Chips,
		At:         time.Now(),
	})

	return nil
}

// Unseat removes a player and compacts the remaining positions. During a hand
// the player's live bet stays in the pot and play continues without them.
func (r *Room) Unseat(playerID string) error {
	idx := r.indexOf(playerID)
	if idx < 0 {
		return ErrPlayerNotFound
	}
	player := r.players[idx]
	active := r.IsHandActive()

	if active {
		r.settled += player.CurrentBet
		player.CurrentBet = 0
	}

	r.players = append(r.players[:idx], r.players[idx+1:]...)
	for i, p := range r.players {
		p.Position = i
	}

	if idx < r.DealerPosition {
		r.DealerPosition--
	}
	if len(r.players) > 0 {
		r.DealerPosition %= len(r.players)
	} else {
		r.DealerPosition = 0
	}

	r.emitEvent(events.PlayerUnseated{
		RoomID:   r.ID,
		PlayerID: playerID,
		Chips:    player.Chips,
		At:       time.Now(),
	})

	if !active {
		return nil
	}

	if len(r.contenders()) == 0 {
		r.abandonHand()
		return nil
	}

	if r.actionSeat == playerID {
		// idx now holds the seat that followed the leaver
		r.actionSeat = r.nextToAct(idx)
	}
	r.progress()

	return nil
}

// StartHand deals a new hand: fresh deck, hole cards, blinds and first action
func (r *Room) StartHand() error {
	if r.IsHandActive() {
		return ErrHandInProgress
	}

	funded := 0
	for _, p := range r.players {
		if p.Chips > 0 {
			funded++
		}
	}
	if funded < 2 {
		return ErrNotEnoughPlayers
	}

	r.Stage = StagePreFlop
	r.deck = r.newDeck()
	r.CommunityCards = cards.Stack{}
	r.settled = 0
	r.CurrentBet = 0
	r.MinRaise = r.Rules.BigBlind
	r.Results = nil
	r.DealerPosition %= len(r.players)

	ids := make([]string, 0, len(r.players))
	for _, p := range r.players {
		p.ResetForNewHand()
		if p.Chips == 0 {
			p.Folded = true
			continue
		}
		ids = append(ids, p.ID)
	}

	r.emitEvent(events.HandStarted{
		RoomID:         r.ID,
		DealerPosition: r.DealerPosition,
		Players:        ids,
		At:             time.Now(),
	})

	// one card per pass, two passes
	for pass := 0; pass < 2; pass++ {
		for _, p := range r.players {
			if p.Folded {
				continue
			}
			p.HoleCards = append(p.HoleCards, r.draw())
		}
	}
	r.emitEvent(events.HoleCardsDealt{RoomID: r.ID, Players: ids, At: time.Now()})

	sbIdx := r.nextFunded(r.DealerPosition)
	bbIdx := r.nextFunded(sbIdx + 1)
	sb, bb := r.players[sbIdx], r.players[bbIdx]

	sbAmount := sb.Bet(r.Rules.SmallBlind)
	r.emitEvent(events.BlindPosted{RoomID: r.ID, PlayerID: sb.ID, Blind: "small", Amount: sbAmount, At: time.Now()})

	bbAmount := bb.Bet(r.Rules.BigBlind)
	// heads-up, a call from the small blind closes the round
	bb.HasActed = len(ids) == 2
	r.emitEvent(events.BlindPosted{RoomID: r.ID, PlayerID: bb.ID, Blind: "big", Amount: bbAmount, At: time.Now()})

	r.CurrentBet = max(bbAmount, sbAmount)
	if bbAmount > 0 {
		r.MinRaise = bbAmount
	}

	r.actionSeat = r.nextToAct(r.DealerPosition + 2)
	r.progress()

	return nil
}

// ApplyAction validates and applies one betting decision for the player on action
func (r *Room) ApplyAction(playerID string, action Action) error {
	player, ok := r.Player(playerID)
	if !ok {
		return ErrPlayerNotFound
	}
	if !r.Stage.IsBetting() {
		return ErrNoActiveHand
	}
	if r.actionSeat != playerID {
		return ErrNotPlayerTurn
	}
	if player.HasActed && !player.NeedsAction(r.CurrentBet) {
		return ErrAlreadyActed
	}

	switch a := action.(type) {
	case Fold:
		player.Folded = true
		player.HasActed = true

	case Check:
		if player.CurrentBet < r.CurrentBet {
			return ErrMustCallOrFold
		}
		player.HasActed = true

	case Call:
		player.Bet(r.CurrentBet - player.CurrentBet)
		player.HasActed = true

	case Bet:
		if err := r.raiseTo(player, a.Amount); err != nil {
			return err
		}

	case Raise:
		if err := r.raiseTo(player, a.Amount); err != nil {
			return err
		}

	case AllIn:
		player.Bet(player.Chips)
		player.HasActed = true
		if player.CurrentBet > r.CurrentBet {
			raise := player.CurrentBet - r.CurrentBet
			r.CurrentBet = player.CurrentBet
			r.MinRaise = raise
			r.reopenAction(player)
		}

	default:
		return fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}

	r.emitEvent(events.PlayerActed{
		RoomID:     r.ID,
		PlayerID:   player.ID,
		Action:     action.Name(),
		Amount:     actionAmount(action),
		CurrentBet: player.CurrentBet,
		Chips:      player.Chips,
		At:         time.Now(),
	})

	r.actionSeat = r.nextToAct(r.indexOf(playerID) + 1)
	r.progress()

	return nil
}

// raiseTo takes the player's total round contribution to amount
func (r *Room) raiseTo(player *Player, amount int) error {
	if amount < r.CurrentBet {
		return fmt.Errorf("%w: bet must be at least the current bet of %d", ErrRaiseTooSmall, r.CurrentBet)
	}
	raise := amount - r.CurrentBet
	if raise < r.MinRaise {
		return fmt.Errorf("%w: raise must be at least %d", ErrRaiseTooSmall, r.MinRaise)
	}
	needed := amount - player.CurrentBet
	if needed > player.Chips {
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientChips, needed, player.Chips)
	}

	player.Bet(needed)
	player.HasActed = true
	r.CurrentBet = amount
	r.MinRaise = raise
	r.reopenAction(player)

	return nil
}

// reopenAction makes every other player who can still act respond to a new bet
func (r *Room) reopenAction(raiser *Player) {
	for _, p := range r.players {
		if p != raiser && p.CanAct() {
			p.HasActed = false
		}
	}
}

// roundComplete is true when at most one contender is left, or when nobody
// still owes an action. A lone player who can act and has matched the table
// bet has nobody left to bet against.
func (r *Room) roundComplete() bool {
	if len(r.contenders()) <= 1 {
		return true
	}

	var canAct []*Player
	for _, p := range r.players {
		if p.CanAct() {
			canAct = append(canAct, p)
		}
	}
	if len(canAct) == 0 {
		return true
	}
	if len(canAct) == 1 && canAct[0].CurrentBet >= r.CurrentBet {
		return true
	}

	return r.nextToAct(0) == ""
}

// progress closes every complete betting round, dealing streets until
// someone has to act or the hand is over
func (r *Room) progress() {
	for r.Stage.IsBetting() && r.roundComplete() {
		r.collectBets()

		contenders := r.contenders()
		if len(contenders) <= 1 {
			r.awardUncontested(contenders)
			return
		}

		previous := r.Stage
		switch r.Stage {
		case StagePreFlop:
			r.burn()
			r.CommunityCards = append(r.CommunityCards, r.draw(), r.draw(), r.draw())
			r.Stage = StageFlop
		case StageFlop:
			r.burn()
			r.CommunityCards = append(r.CommunityCards, r.draw())
			r.Stage = StageTurn
		case StageTurn:
			r.burn()
			r.CommunityCards = append(r.CommunityCards, r.draw())
			r.Stage = StageRiver
		case StageRiver:
			r.Stage = StageShowdown
		}

		r.emitEvent(events.StageChanged{
			RoomID:         r.ID,
			PreviousStage:  string(previous),
			NewStage:       string(r.Stage),
			CommunityCards: r.CommunityCards.Strings(),
			Pot:            r.Pot(),
			At:             time.Now(),
		})

		if r.Stage == StageShowdown {
			r.actionSeat = ""
			r.showdown()
			return
		}

		r.CurrentBet = 0
		r.MinRaise = r.Rules.BigBlind
		r.actionSeat = r.nextToAct(r.DealerPosition + 1)
	}
}

// collectBets sweeps live bets into the pot and opens a new round
func (r *Room) collectBets() {
	for _, p := range r.players {
		r.settled += p.CurrentBet
		p.CurrentBet = 0
		if p.CanAct() {
			p.HasActed = false
		}
	}
}

// nextToAct walks the seats from start (inclusive, wrapping) and returns the
// first player who still owes an action, or "".
func (r *Room) nextToAct(start int) string {
	n := len(r.players)
	for i := 0; i < n; i++ {
		p := r.players[((start+i)%n+n)%n]
		if p.NeedsAction(r.CurrentBet) {
			return p.ID
		}
	}
	return ""
}

// nextFunded returns the first seat from start (inclusive, wrapping) dealt into the hand
func (r *Room) nextFunded(start int) int {
	n := len(r.players)
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if !r.players[idx].Folded {
			return idx
		}
	}
	return start % n
}

func (r *Room) contenders() []*Player {
	var out []*Player
	for _, p := range r.players {
		if !p.Folded {
			out = append(out, p)
		}
	}
	return out
}

func (r *Room) indexOf(playerID string) int {
	for i, p := range r.players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// draw deals the next card. At most 9 seats use 2*9+5+3 cards, so the deck cannot run dry.
func (r *Room) draw() cards.Card {
	card, err := r.deck.Draw()
	if err != nil {
		panic(err)
	}
	return card
}

func (r *Room) burn() {
	if err := r.deck.Burn(); err != nil {
		panic(err)
	}
}
