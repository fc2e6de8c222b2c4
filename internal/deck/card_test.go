package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", NewCard(Spades, Ace).String())
	assert.Equal(t, "10♥", NewCard(Hearts, Ten).String())
	assert.Equal(t, "K♦", NewCard(Diamonds, King).String())
	assert.Equal(t, "2♣", NewCard(Clubs, Two).String())
}

func TestGuessValueAceLow(t *testing.T) {
	assert.Equal(t, 1, NewCard(Spades, Ace).GuessValue())
	assert.Equal(t, 11, NewCard(Spades, Jack).GuessValue())
	assert.Equal(t, 13, NewCard(Spades, King).GuessValue())
}

func TestBlackjackValue(t *testing.T) {
	assert.Equal(t, 11, NewCard(Hearts, Ace).BlackjackValue())
	assert.Equal(t, 10, NewCard(Hearts, King).BlackjackValue())
	assert.Equal(t, 10, NewCard(Hearts, Queen).BlackjackValue())
	assert.Equal(t, 10, NewCard(Hearts, Jack).BlackjackValue())
	assert.Equal(t, 10, NewCard(Hearts, Ten).BlackjackValue())
	assert.Equal(t, 9, NewCard(Hearts, Nine).BlackjackValue())
}

func TestParseRoundTrip(t *testing.T) {
	for _, c := range standardDeck() {
		got, err := Parse(c.String())
		assert.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "A", "♠", "1♠", "11♦", "Ax", "AA♠"} {
		_, err := Parse(s)
		assert.Error(t, err, s)
	}
}

func TestPokerValueAceHigh(t *testing.T) {
	assert.Equal(t, 14, NewCard(Clubs, Ace).PokerValue())
	assert.Equal(t, 2, NewCard(Clubs, Two).PokerValue())
	assert.Equal(t, 13, NewCard(Clubs, King).PokerValue())
}
