package hands

import (
	"math/rand"
	"testing"

	"github.com/lazharichir/holdem/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_Categories(t *testing.T) {
	tests := []struct {
		name     string
		hand     string
		category Category
		tiebreak []int
	}{
		{"royal flush", "As Ks Qs Js 10s", RoyalFlush, []int{14, 13, 12, 11, 10}},
		{"straight flush", "9h 8h 7h 6h 5h", StraightFlush, []int{9, 8, 7, 6, 5}},
		{"steel wheel", "Ad 2d 3d 4d 5d", StraightFlush, []int{5, 4, 3, 2, 1}},
		{"four of a kind", "7h 7d 7c 7s Kh", FourOfAKind, []int{7, 13}},
		{"full house", "3h 3d 3c 9s 9h", FullHouse, []int{3, 9}},
		{"flush", "Ah Jh 8h 4h 2h", Flush, []int{14, 11, 8, 4, 2}},
		{"broadway straight", "Ah Kd Qc Js 10h", Straight, []int{14, 13, 12, 11, 10}},
		{"wheel", "Ah 2d 3c 4s 5h", Straight, []int{5, 4, 3, 2, 1}},
		{"three of a kind", "Qh Qd Qc 5s 2h", ThreeOfAKind, []int{12, 5, 2}},
		{"two pair", "Jh Jd 4c 4s Ah", TwoPair, []int{11, 4, 14}},
		{"one pair", "10h 10d Kc 7s 3h", OnePair, []int{10, 13, 7, 3}},
		{"high card", "Kh Jd 9c 6s 3h", HighCard, []int{13, 11, 9, 6, 3}},
		{"no wrap-around straight", "Qh Kd Ac 2s 3h", HighCard, []int{14, 13, 12, 3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(cards.MustParse(tt.hand))
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.tiebreak, got.Tiebreak)
			assert.Len(t, got.HandCards, 5)
		})
	}
}

func TestEvaluate_BestOfSeven(t *testing.T) {
	// board pairs the hole cards into a full house; the flush draw misses
	got := Evaluate(cards.MustParse("Kh Kd Ks 4c 4d 9h 2h"))
	assert.Equal(t, FullHouse, got.Category)
	assert.Equal(t, []int{13, 4}, got.Tiebreak)

	got = Evaluate(cards.MustParse("Ah 2c 3d 4s 5h 6h 7h"))
	assert.Equal(t, Straight, got.Category)
	assert.Equal(t, []int{7, 6, 5, 4, 3}, got.Tiebreak, "the 7-high straight beats the wheel")

	got = Evaluate(cards.MustParse("As Ks Qs Js 10s 9s 8s"))
	assert.Equal(t, RoyalFlush, got.Category)

	got = Evaluate(cards.MustParse("2h 2d 5c 5s 9h 9d Ac"))
	assert.Equal(t, TwoPair, got.Category)
	assert.Equal(t, []int{9, 5, 14}, got.Tiebreak, "best two pairs with the ace kicker")
}

func TestEvaluate_SixCards(t *testing.T) {
	got := Evaluate(cards.MustParse("8c 8d 8h Jc Js 2d"))
	assert.Equal(t, FullHouse, got.Category)
	assert.Equal(t, []int{8, 11}, got.Tiebreak)
}

func TestEvaluate_PanicsOnTooFewCards(t *testing.T) {
	assert.Panics(t, func() { Evaluate(cards.MustParse("Ah Kh Qh Jh")) })
}

func TestEvaluate_OrderInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		n := 5 + r.Intn(3)
		set := cards.NewDeckWithRand(r).Remaining()[:n]

		want := Evaluate(set)
		shuffled := set.Clone()
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := Evaluate(shuffled)

		require.Equal(t, want.Category, got.Category, "hand %s", set)
		require.Equal(t, want.Tiebreak, got.Tiebreak, "hand %s", set)
	}
}

func TestCompare_CategoryOrdering(t *testing.T) {
	ladder := []string{
		"Kh Jd 9c 6s 3h",   // high card
		"10h 10d Kc 7s 3h", // pair
		"Jh Jd 4c 4s Ah",   // two pair
		"Qh Qd Qc 5s 2h",   // trips
		"Ah 2d 3c 4s 5h",   // straight
		"Ah Jh 8h 4h 2h",   // flush
		"3h 3d 3c 9s 9h",   // full house
		"7h 7d 7c 7s Kh",   // quads
		"9h 8h 7h 6h 5h",   // straight flush
		"As Ks Qs Js 10s",  // royal flush
	}

	for i := 1; i < len(ladder); i++ {
		lower := Evaluate(cards.MustParse(ladder[i-1]))
		higher := Evaluate(cards.MustParse(ladder[i]))
		assert.Equal(t, 1, Compare(higher, lower), "%s should beat %s", ladder[i], ladder[i-1])
		assert.Equal(t, -1, Compare(lower, higher))
		assert.Greater(t, int(higher.Category), int(lower.Category))
	}
}

func TestCompare_Kickers(t *testing.T) {
	tests := []struct {
		name   string
		better string
		worse  string
	}{
		{"pair kicker", "Ah Ad Kc 7s 3h", "As Ac Qc 7d 3d"},
		{"two pair second pair", "Kh Kd 9c 9s 2h", "Ks Kc 8c 8s Ah"},
		{"flush last card", "Ah Kh Qh Jh 9h", "As Ks Qs Js 8s"},
		{"six-high straight beats the wheel", "2h 3d 4c 5s 6h", "Ah 2d 3c 4s 5h"},
		{"higher quads", "8h 8d 8c 8s 2h", "7h 7d 7c 7s Ah"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			better := Evaluate(cards.MustParse(tt.better))
			worse := Evaluate(cards.MustParse(tt.worse))
			assert.Equal(t, 1, Compare(better, worse))
		})
	}

	same := Evaluate(cards.MustParse("Ah Kh Qh Jh 9h"))
	other := Evaluate(cards.MustParse("As Ks Qs Js 9s"))
	assert.Equal(t, 0, Compare(same, other), "identical ranks in different suits tie")
}

func TestEvaluate_AgreesWithReferenceEvaluator(t *testing.T) {
	r := rand.New(rand.NewSource(2024))
	for i := 0; i < 300; i++ {
		deck := cards.NewDeckWithRand(r).Remaining()
		a, b := deck[:7], deck[7:14]

		scoreA, err := Score7(a)
		require.NoError(t, err)
		scoreB, err := Score7(b)
		require.NoError(t, err)

		want := compareInt(int(scoreA), int(scoreB))
		got := Compare(Evaluate(a), Evaluate(b))
		require.Equal(t, want, got, "%s vs %s", a, b)
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "Royal Flush", RoyalFlush.String())
	assert.Equal(t, "High Card", HighCard.String())
	assert.Equal(t, "Unknown", Category(42).String())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Straight", Describe(cards.MustParse("Ah 2d 3c 4s 5h")))
	assert.NotEmpty(t, Describe(cards.MustParse("Ah Ad 3c 4s 9h Kd 2c")))

	_, err := Score7(cards.MustParse("Ah Ad 3c"))
	assert.Error(t, err)
}
