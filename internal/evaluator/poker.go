// Package evaluator ranks poker hands and scores blackjack hands.
//
// Poker hands are ordered by (Rank, Value): Rank is the hand category and
// Value packs the tiebreak kickers positionally, so any two 5-card hands
// compare with two integer comparisons.
package evaluator

import (
	"errors"
	"sort"

	"github.com/cardroomhq/cardroom/internal/deck"
)

// Hand categories, low to high. Royal flush is reported as its own
// category above straight flush.
const (
	HighCard      = 1
	Pair          = 2
	TwoPair       = 3
	ThreeOfAKind  = 4
	Straight      = 5
	Flush         = 6
	FullHouse     = 7
	FourOfAKind   = 8
	StraightFlush = 9
	RoyalFlush    = 10
)

// ErrHandSize is returned when a hand has the wrong number of cards.
var ErrHandSize = errors.New("evaluator: wrong number of cards")

// Eval is the total ordering of a 5-card hand.
type Eval struct {
	Rank  int    `json:"rank"`
	Value int    `json:"value"`
	Name  string `json:"name"`
}

// Beats returns true if e outranks other.
func (e Eval) Beats(other Eval) bool {
	if e.Rank != other.Rank {
		return e.Rank > other.Rank
	}
	return e.Value > other.Value
}

// Ties returns true if e and other are exactly equal in strength.
func (e Eval) Ties(other Eval) bool {
	return e.Rank == other.Rank && e.Value == other.Value
}

// Evaluate5 ranks exactly 5 cards.
func Evaluate5(cards []deck.Card) (Eval, error) {
	if len(cards) != 5 {
		return Eval{}, ErrHandSize
	}

	values := make([]int, 5)
	for i, c := range cards {
		values[i] = c.PokerValue()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	flush := isFlush(cards)
	straight := isStraight(values)
	wheel := isWheel(values)

	counts := make(map[int]int, 5)
	for _, v := range values {
		counts[v]++
	}

	if flush && values[0] == 14 && straight {
		return Eval{Rank: RoyalFlush, Value: 10, Name: "Royal Flush"}, nil
	}

	if flush && (straight || wheel) {
		high := values[0]
		if wheel {
			high = 5
		}
		return Eval{Rank: StraightFlush, Value: high, Name: "Straight Flush"}, nil
	}

	if quad := rankWithCount(counts, 4); quad > 0 {
		kicker := rankWithCount(counts, 1)
		return Eval{Rank: FourOfAKind, Value: quad*100 + kicker, Name: "Four of a Kind"}, nil
	}

	trips := rankWithCount(counts, 3)
	if trips > 0 {
		if pair := rankWithCount(counts, 2); pair > 0 {
			return Eval{Rank: FullHouse, Value: trips*100 + pair, Name: "Full House"}, nil
		}
	}

	if flush {
		return Eval{Rank: Flush, Value: positional(values), Name: "Flush"}, nil
	}

	if straight || wheel {
		high := values[0]
		if wheel {
			high = 5
		}
		return Eval{Rank: Straight, Value: high, Name: "Straight"}, nil
	}

	if trips > 0 {
		kickers := singles(counts)
		return Eval{Rank: ThreeOfAKind, Value: trips*10000 + kickers[0]*100 + kickers[1], Name: "Three of a Kind"}, nil
	}

	pairs := ranksWithCount(counts, 2)
	if len(pairs) == 2 {
		kicker := rankWithCount(counts, 1)
		return Eval{Rank: TwoPair, Value: pairs[0]*10000 + pairs[1]*100 + kicker, Name: "Two Pair"}, nil
	}

	if len(pairs) == 1 {
		kickers := singles(counts)
		value := pairs[0]*1000000 + kickers[0]*10000 + kickers[1]*100 + kickers[2]
		return Eval{Rank: Pair, Value: value, Name: "One Pair"}, nil
	}

	return Eval{Rank: HighCard, Value: positional(values), Name: "High Card"}, nil
}

// BestOfSeven selects the strongest 5-card hand from 7 cards by evaluating
// all 21 subsets and keeping the lexicographic max by (rank, value).
func BestOfSeven(cards []deck.Card) ([]deck.Card, Eval, error) {
	if len(cards) != 7 {
		return nil, Eval{}, ErrHandSize
	}

	var bestHand []deck.Card
	var best Eval
	have := false

	// Drop every unordered pair of cards to enumerate C(7,5).
	for i := 0; i < 7; i++ {
		for j := i + 1; j < 7; j++ {
			hand := make([]deck.Card, 0, 5)
			for k := 0; k < 7; k++ {
				if k != i && k != j {
					hand = append(hand, cards[k])
				}
			}
			eval, err := Evaluate5(hand)
			if err != nil {
				return nil, Eval{}, err
			}
			if !have || eval.Beats(best) {
				bestHand = hand
				best = eval
				have = true
			}
		}
	}

	return bestHand, best, nil
}

// Compare returns 1 if a beats b, -1 if b beats a, 0 on an exact tie.
func Compare(a, b Eval) int {
	if a.Beats(b) {
		return 1
	}
	if b.Beats(a) {
		return -1
	}
	return 0
}

func isFlush(cards []deck.Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// isStraight expects values sorted descending.
func isStraight(values []int) bool {
	for i := 0; i < len(values)-1; i++ {
		if values[i]-values[i+1] != 1 {
			return false
		}
	}
	return true
}

// isWheel recognises A-2-3-4-5, the lowest straight. Values are sorted
// descending so the ace leads.
func isWheel(values []int) bool {
	return values[0] == 14 && values[1] == 5 && values[2] == 4 && values[3] == 3 && values[4] == 2
}

// rankWithCount returns the highest value appearing exactly n times, or 0.
func rankWithCount(counts map[int]int, n int) int {
	best := 0
	for v, c := range counts {
		if c == n && v > best {
			best = v
		}
	}
	return best
}

// ranksWithCount returns all values appearing exactly n times, descending.
func ranksWithCount(counts map[int]int, n int) []int {
	var out []int
	for v, c := range counts {
		if c == n {
			out = append(out, v)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// singles returns the values appearing exactly once, descending.
func singles(counts map[int]int) []int {
	return ranksWithCount(counts, 1)
}

// positional packs all five card values base-100, most significant first.
func positional(values []int) int {
	v := 0
	for _, rank := range values {
		v = v*100 + rank
	}
	return v
}
