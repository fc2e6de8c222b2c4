package evaluator

import "github.com/cardroomhq/cardroom/internal/deck"

// BlackjackValue sums a hand with aces counted as 11, demoting aces to 1
// one at a time while the total exceeds 21.
func BlackjackValue(cards []deck.Card) int {
	value, _ := blackjackValueAndSoftAces(cards)
	return value
}

// IsSoft reports whether the hand contains an ace still counted as 11
// without busting.
func IsSoft(cards []deck.Card) bool {
	value, softAces := blackjackValueAndSoftAces(cards)
	return softAces > 0 && value <= 21
}

// IsBlackjack reports whether the hand is exactly two cards totaling 21.
func IsBlackjack(cards []deck.Card) bool {
	return len(cards) == 2 && BlackjackValue(cards) == 21
}

// IsBust reports whether the hand exceeds 21 after all ace demotions.
func IsBust(cards []deck.Card) bool {
	return BlackjackValue(cards) > 21
}

// CanSplit reports whether the hand is a splittable pair.
func CanSplit(cards []deck.Card) bool {
	return len(cards) == 2 && cards[0].Rank == cards[1].Rank
}

func blackjackValueAndSoftAces(cards []deck.Card) (value, softAces int) {
	for _, c := range cards {
		value += c.BlackjackValue()
		if c.IsAce() {
			softAces++
		}
	}
	for value > 21 && softAces > 0 {
		value -= 10
		softAces--
	}
	return value, softAces
}
