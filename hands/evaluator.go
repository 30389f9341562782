package hands

import (
	"sort"

	"github.com/lazharichir/holdem/cards"
)

// Category represents the strength class of a poker hand
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var categoryNames = map[Category]string{
	HighCard:      "High Card",
	OnePair:       "One Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Evaluation is the value of the best 5-card hand found in a card set.
type Evaluation struct {
	Category  Category    // The hand category (pair, flush, etc.)
	Tiebreak  []int       // Rank values for breaking ties, most significant first
	HandCards cards.Stack // The 5 cards that make up the hand
}

// Evaluate returns the best 5-card hand that can be made from cards.
// Every 5-card subset is scored. It panics on fewer than 5 cards.
func Evaluate(set cards.Stack) Evaluation {
	if len(set) < 5 {
		panic("hands: at least 5 cards are required")
	}

	var best Evaluation
	for i, combo := range combinations(len(set), 5) {
		hand := make(cards.Stack, 5)
		for j, idx := range combo {
			hand[j] = set[idx]
		}

		evaluation := evaluateFive(hand)
		if i == 0 || Compare(evaluation, best) > 0 {
			best = evaluation
		}
	}
	return best
}

// Compare returns -1, 0 or 1 as a is worse than, equal to or better than b.
func Compare(a, b Evaluation) int {
	if c := compareInt(int(a.Category), int(b.Category)); c != 0 {
		return c
	}
	for i := 0; i < len(a.Tiebreak) && i < len(b.Tiebreak); i++ {
		if c := compareInt(a.Tiebreak[i], b.Tiebreak[i]); c != 0 {
			return c
		}
	}
	return compareInt(len(a.Tiebreak), len(b.Tiebreak))
}

// evaluateFive scores exactly five cards
func evaluateFive(hand cards.Stack) Evaluation {
	sorted := sortCardsByRank(hand)

	ranks := make([]int, len(sorted))
	for i, c := range sorted {
		ranks[i] = c.Rank()
	}

	flush := isFlush(sorted)
	straightHigh := straightHighCard(ranks)
	groups := groupRanks(ranks)

	switch {
	case flush && straightHigh == 14:
		return Evaluation{Category: RoyalFlush, Tiebreak: straightTiebreak(straightHigh), HandCards: sorted}
	case flush && straightHigh > 0:
		return Evaluation{Category: StraightFlush, Tiebreak: straightTiebreak(straightHigh), HandCards: sorted}
	case groups[0].count == 4:
		return Evaluation{Category: FourOfAKind, Tiebreak: groupTiebreak(groups), HandCards: sorted}
	case groups[0].count == 3 && groups[1].count == 2:
		return Evaluation{Category: FullHouse, Tiebreak: groupTiebreak(groups), HandCards: sorted}
	case flush:
		return Evaluation{Category: Flush, Tiebreak: ranks, HandCards: sorted}
	case straightHigh > 0:
		return Evaluation{Category: Straight, Tiebreak: straightTiebreak(straightHigh), HandCards: sorted}
	case groups[0].count == 3:
		return Evaluation{Category: ThreeOfAKind, Tiebreak: groupTiebreak(groups), HandCards: sorted}
	case groups[0].count == 2 && groups[1].count == 2:
		return Evaluation{Category: TwoPair, Tiebreak: groupTiebreak(groups), HandCards: sorted}
	case groups[0].count == 2:
		return Evaluation{Category: OnePair, Tiebreak: groupTiebreak(groups), HandCards: sorted}
	}

	return Evaluation{Category: HighCard, Tiebreak: ranks, HandCards: sorted}
}

// sortCardsByRank sorts cards by rank in descending order
func sortCardsByRank(hand cards.Stack) cards.Stack {
	result := hand.Clone()
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Rank() > result[j].Rank()
	})
	return result
}

// isFlush checks if all cards are of the same suit
func isFlush(hand cards.Stack) bool {
	if len(hand) == 0 {
		return false
	}

	suit := hand[0].Suit
	for _, card := range hand[1:] {
		if card.Suit != suit {
			return false
		}
	}

	return true
}

// straightHighCard returns the top rank of a straight made by the
// descending ranks, 5 for the wheel, or 0 if there is none.
func straightHighCard(desc []int) int {
	for i := 1; i < len(desc); i++ {
		if desc[i] == desc[i-1] {
			return 0
		}
	}

	if desc[0]-desc[len(desc)-1] == len(desc)-1 {
		return desc[0]
	}

	// A-5-4-3-2, the ace plays low
	if desc[0] == 14 && desc[1] == 5 && desc[len(desc)-1] == 2 && desc[1]-desc[len(desc)-1] == len(desc)-2 {
		return 5
	}

	return 0
}

func straightTiebreak(high int) []int {
	tb := make([]int, 5)
	for i := range tb {
		tb[i] = high - i
	}
	return tb
}

type rankGroup struct {
	rank  int
	count int
}

// groupRanks counts equal ranks, biggest group first and higher rank first among equal sizes.
// Five cards always make at least two groups.
func groupRanks(ranks []int) []rankGroup {
	counts := make(map[int]int)
	for _, r := range ranks {
		counts[r]++
	}

	groups := make([]rankGroup, 0, len(counts))
	for r, n := range counts {
		groups = append(groups, rankGroup{rank: r, count: n})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	return groups
}

func groupTiebreak(groups []rankGroup) []int {
	tb := make([]int, 0, len(groups))
	for _, g := range groups {
		tb = append(tb, g.rank)
	}
	return tb
}

// compareInt is a helper function to compare two integers
func compareInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// combinations generates all possible combinations of k indices out of n
func combinations(n, k int) [][]int {
	if k > n {
		return nil
	}

	var result [][]int
	var combine func(int, []int)

	combine = func(start int, current []int) {
		if len(current) == k {
			combo := make([]int, k)
			copy(combo, current)
			result = append(result, combo)
			return
		}

		for i := start; i < n; i++ {
			current = append(current, i)
			combine(i+1, current)
			current = current[:len(current)-1]
		}
	}

	combine(0, []int{})
	return result
}
