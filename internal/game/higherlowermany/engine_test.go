package higherlowermany

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroomhq/cardroom/internal/deck"
	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/randutil"
)

type guessBot struct {
	name string
	kind string
}

func (b *guessBot) Name() string                         { return b.name }
func (b *guessBot) Act(engine.View) (engine.Move, error) { return engine.Move{Kind: b.kind}, nil }
func (b *guessBot) MatchStarted(engine.MatchInfo)        {}
func (b *guessBot) MatchEnded(engine.MatchResult)        {}

type panicBot struct{ name string }

func (b *panicBot) Name() string                         { return b.name }
func (b *panicBot) Act(engine.View) (engine.Move, error) { panic("unstable bot") }
func (b *panicBot) MatchStarted(engine.MatchInfo)        {}
func (b *panicBot) MatchEnded(engine.MatchResult)        {}

func testParams(bots ...engine.Bot) engine.Params {
	p := engine.Params{
		RNG:      randutil.New(1),
		Logger:   log.New(io.Discard),
		Settings: engine.DefaultSettings(),
	}
	for _, b := range bots {
		p.Seats = append(p.Seats, engine.Seat{Name: b.Name(), Bot: b})
	}
	return p
}

func c(suit deck.Suit, rank deck.Rank) deck.Card {
	return deck.NewCard(suit, rank)
}

func TestNewRequiresTwoSeats(t *testing.T) {
	_, err := New(testParams(&guessBot{name: "solo", kind: engine.GuessHigher}))
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrTooFewSeats)
}

func TestSoleRoundWinnerTakesStake(t *testing.T) {
	a := &guessBot{name: "a", kind: engine.GuessHigher}
	b := &guessBot{name: "b", kind: engine.GuessHigher}
	d := &guessBot{name: "d", kind: engine.GuessLower}

	// a: 7 -> 9 correct, b: 9 -> 5 incorrect, d: 5 -> 6 incorrect.
	shoe := deck.NewScriptedShoe(
		c(deck.Spades, deck.Seven),
		c(deck.Hearts, deck.Nine),
		c(deck.Diamonds, deck.Five),
		c(deck.Clubs, deck.Six),
	)
	g, err := newGame(testParams(a, b, d), shoe)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, g.playTurn())
	}

	assert.Equal(t, 1100, g.players[0].credits)
	assert.Equal(t, 1, g.players[0].roundWins)
	assert.Equal(t, 900, g.players[1].credits)
	assert.Equal(t, 1, g.players[1].roundLosses)
	assert.Equal(t, 900, g.players[2].credits)
	assert.Equal(t, 1, g.players[2].roundLosses)
}

func TestJointBestMovesNoCredits(t *testing.T) {
	a := &guessBot{name: "a", kind: engine.GuessHigher}
	b := &guessBot{name: "b", kind: engine.GuessHigher}

	// a: 7 -> 9 correct, b: 9 -> 10 correct.
	shoe := deck.NewScriptedShoe(
		c(deck.Spades, deck.Seven),
		c(deck.Hearts, deck.Nine),
		c(deck.Diamonds, deck.Ten),
	)
	g, err := newGame(testParams(a, b), shoe)
	require.NoError(t, err)

	require.NoError(t, g.playTurn())
	require.NoError(t, g.playTurn())

	assert.Equal(t, 1000, g.players[0].credits)
	assert.Equal(t, 1000, g.players[1].credits)
	assert.Equal(t, 1, g.players[0].roundTies)
	assert.Equal(t, 1, g.players[1].roundTies)
}

func TestDisqualifiedSeatLosesRound(t *testing.T) {
	crasher := &panicBot{name: "crasher"}
	b := &guessBot{name: "b", kind: engine.GuessLower}

	// crasher: disqualified (-2), b: 9 -> 5 correct (+1).
	shoe := deck.NewScriptedShoe(
		c(deck.Spades, deck.Seven),
		c(deck.Hearts, deck.Nine),
		c(deck.Diamonds, deck.Five),
	)
	g, err := newGame(testParams(crasher, b), shoe)
	require.NoError(t, err)

	require.NoError(t, g.playTurn())
	require.NoError(t, g.playTurn())

	assert.Equal(t, 900, g.players[0].credits)
	assert.Equal(t, 1, g.players[0].dqs)
	assert.Equal(t, 1, g.players[0].roundLosses)
	assert.Equal(t, 1100, g.players[1].credits)
	assert.Equal(t, 1, g.players[1].roundWins)
}

func TestPlayFullMatch(t *testing.T) {
	eng, err := New(testParams(
		&guessBot{name: "a", kind: engine.GuessHigher},
		&guessBot{name: "b", kind: engine.GuessLower},
		&guessBot{name: "d", kind: engine.GuessHigher},
	))
	require.NoError(t, err)

	result, err := eng.PlayFullMatch()
	require.NoError(t, err)

	assert.Equal(t, GameType, result.GameType)
	assert.Equal(t, 100, result.TotalRounds)
	assert.Len(t, result.History, 300)
	assert.NotEmpty(t, result.Winner)

	for _, pr := range result.Players {
		rounds := pr.RoundWins + pr.RoundLosses + pr.RoundTies
		assert.Equal(t, 100, rounds, "player %s", pr.Name)
	}
}

func TestShoeSizedForWorstCase(t *testing.T) {
	// 5 seats x 100 rounds + 1 opening card needs 10 decks.
	assert.Equal(t, 10, deck.DecksFor(5*100+1))
}
