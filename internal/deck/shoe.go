package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrExhausted is returned when a deal is requested from an empty shoe.
var ErrExhausted = errors.New("deck: shoe exhausted")

// Shoe is an ordered, mutable stack of cards. Long matches combine several
// standard 52-card decks shuffled together; dealing pops from the tail.
type Shoe struct {
	cards []Card
}

// standardDeck returns the 52 cards of a single deck in fixed order.
func standardDeck() []Card {
	cards := make([]Card, 0, 52)
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// NewShoe builds a shoe of numDecks standard decks shuffled together with
// the provided RNG. numDecks below 1 is treated as 1.
func NewShoe(numDecks int, rng *rand.Rand) *Shoe {
	if numDecks < 1 {
		numDecks = 1
	}
	cards := make([]Card, 0, numDecks*52)
	for i := 0; i < numDecks; i++ {
		cards = append(cards, standardDeck()...)
	}
	s := &Shoe{cards: cards}
	s.shuffle(rng)
	return s
}

// NewScriptedShoe builds a shoe containing exactly the given cards, in the
// given deal order. Used by tests that need deterministic deals.
func NewScriptedShoe(inDealOrder ...Card) *Shoe {
	cards := make([]Card, len(inDealOrder))
	// Dealing pops from the tail, so store the script reversed.
	for i, c := range inDealOrder {
		cards[len(inDealOrder)-1-i] = c
	}
	return &Shoe{cards: cards}
}

// shuffle is an in-place Fisher-Yates shuffle.
func (s *Shoe) shuffle(rng *rand.Rand) {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Deal removes and returns the next card.
func (s *Shoe) Deal() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrExhausted
	}
	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return card, nil
}

// DealN deals n cards. It fails atomically if fewer than n remain.
func (s *Shoe) DealN(n int) ([]Card, error) {
	if n > len(s.cards) {
		return nil, ErrExhausted
	}
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		c, err := s.Deal()
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// Remaining returns the number of cards left in the shoe.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// DecksFor returns the number of standard decks needed to cover the given
// worst-case card count.
func DecksFor(cardsNeeded int) int {
	decks := (cardsNeeded + 51) / 52
	if decks < 1 {
		decks = 1
	}
	return decks
}
