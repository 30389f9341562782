package domain

import (
	"sort"
	"time"

	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/domain/events"
	"github.com/lazharichir/holdem/hands"
)

// Result is one player's share of a finished hand
type Result struct {
	PlayerID    string   `json:"player_id"`
	Name        string   `json:"name"`
	Amount      int      `json:"amount"`
	HandName    string   `json:"hand_name,omitempty"`
	Description string   `json:"description,omitempty"`
	Cards       []string `json:"cards,omitempty"`
}

type contender struct {
	player *Player
	eval   hands.Evaluation
}

// showdown evaluates every remaining hand and splits the pot between the best
// ones. The odd chips go to the first winner in ranking order.
func (r *Room) showdown() {
	remaining := r.contenders()

	ranked := make([]contender, 0, len(remaining))
	revealed := make(map[string][]string, len(remaining))
	for _, p := range remaining {
		set := append(p.HoleCards.Clone(), r.CommunityCards...)
		ranked = append(ranked, contender{player: p, eval: hands.Evaluate(set)})
		revealed[p.ID] = p.HoleCards.Strings()
	}

	r.emitEvent(events.ShowdownRevealed{RoomID: r.ID, Hands: revealed, At: time.Now()})

	sort.SliceStable(ranked, func(i, j int) bool {
		return hands.Compare(ranked[i].eval, ranked[j].eval) > 0
	})

	winners := []contender{ranked[0]}
	for _, c := range ranked[1:] {
		if hands.Compare(c.eval, ranked[0].eval) != 0 {
			break
		}
		winners = append(winners, c)
	}

	pot := r.Pot()
	share := pot / len(winners)
	remainder := pot % len(winners)

	results := make([]Result, 0, len(winners))
	for i, w := range winners {
		amount := share
		if i == 0 {
			amount += remainder
		}
		w.player.Chips += amount

		set := append(w.player.HoleCards.Clone(), r.CommunityCards...)
		results = append(results, Result{
			PlayerID:    w.player.ID,
			Name:        w.player.Name,
			Amount:      amount,
			HandName:    w.eval.Category.String(),
			Description: hands.Describe(set),
			Cards:       w.eval.HandCards.Strings(),
		})

		r.emitEvent(events.PotAwarded{
			RoomID:   r.ID,
			PlayerID: w.player.ID,
			Amount:   amount,
			HandName: w.eval.Category.String(),
			At:       time.Now(),
		})
	}

	r.finishHand(pot, results)
}

// awardUncontested hands the whole pot to the last player standing
func (r *Room) awardUncontested(remaining []*Player) {
	pot := r.Pot()
	if len(remaining) == 0 {
		r.abandonHand()
		return
	}

	winner := remaining[0]
	winner.Chips += pot

	r.emitEvent(events.PotAwarded{
		RoomID:   r.ID,
		PlayerID: winner.ID,
		Amount:   pot,
		At:       time.Now(),
	})

	r.finishHand(pot, []Result{{PlayerID: winner.ID, Name: winner.Name, Amount: pot}})
}

func (r *Room) finishHand(pot int, results []Result) {
	r.settled = 0
	for _, p := range r.players {
		p.CurrentBet = 0
	}
	r.CurrentBet = 0
	r.actionSeat = ""
	r.deck = nil
	r.Results = results
	r.Stage = StageFinished
	if len(r.players) > 0 {
		r.DealerPosition = (r.DealerPosition + 1) % len(r.players)
	}

	winners := make([]string, 0, len(results))
	for _, res := range results {
		winners = append(winners, res.PlayerID)
	}

	r.emitEvent(events.HandFinished{
		RoomID:             r.ID,
		Pot:                pot,
		Winners:            winners,
		NextDealerPosition: r.DealerPosition,
		At:                 time.Now(),
	})
}

// abandonHand ends a hand nobody is left to win. Chips still in the pot are lost.
func (r *Room) abandonHand() {
	pot := r.Pot()
	r.settled = 0
	for _, p := range r.players {
		p.CurrentBet = 0
		p.HasActed = false
	}
	r.CurrentBet = 0
	r.MinRaise = r.Rules.BigBlind
	r.actionSeat = ""
	r.deck = nil
	r.CommunityCards = cards.Stack{}
	r.Results = nil
	r.Stage = StageWaiting

	r.emitEvent(events.HandAbandoned{RoomID: r.ID, Pot: pot, At: time.Now()})
}
