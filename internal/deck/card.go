package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Name returns the lowercase suit name used in serialized records
func (s Suit) Name() string {
	switch s {
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	default:
		return "unknown"
	}
}

// Rank represents a card rank. The zero-based ordering follows the
// physical deck (Ace first); numeric game values are variant-specific
// and live on Card.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r >= Two && r <= Nine {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Card represents a playing card. Cards are immutable value objects;
// two cards are the same card iff suit and rank match.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// GuessValue returns the card's value in the guessing games: Ace low,
// ranks map straight onto 1..13.
func (c Card) GuessValue() int {
	return int(c.Rank)
}

// BlackjackValue returns the card's blackjack value: Ace counts 11 here,
// demotion to 1 is handled at the hand level, face cards count 10.
func (c Card) BlackjackValue() int {
	switch {
	case c.Rank == Ace:
		return 11
	case c.Rank >= Ten:
		return 10
	default:
		return int(c.Rank)
	}
}

// PokerValue returns the card's poker value: Ace high, 2..14.
func (c Card) PokerValue() int {
	if c.Rank == Ace {
		return 14
	}
	return int(c.Rank)
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// Parse reconstructs a card from its String form ("A♠", "10♦"). Bots see
// cards as strings in their views and use this to get values back.
func Parse(s string) (Card, error) {
	runes := []rune(s)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("deck: malformed card %q", s)
	}

	var suit Suit
	switch runes[len(runes)-1] {
	case '♥':
		suit = Hearts
	case '♦':
		suit = Diamonds
	case '♣':
		suit = Clubs
	case '♠':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("deck: unknown suit in %q", s)
	}

	var rank Rank
	switch label := string(runes[:len(runes)-1]); label {
	case "A":
		rank = Ace
	case "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		if len(label) != 1 || label[0] < '2' || label[0] > '9' {
			return Card{}, fmt.Errorf("deck: unknown rank in %q", s)
		}
		rank = Rank(label[0] - '0')
	}
	return Card{Suit: suit, Rank: rank}, nil
}
