package holdem

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

// checkCallBot checks when it can, calls when it must.
type checkCallBot struct{ name string }

func (b *checkCallBot) Name() string { return b.name }

func (b *checkCallBot) Act(view engine.View) (engine.Move, error) {
	v := view.(View)
	if v.CurrentBet > v.Player.CurrentBet {
		return engine.Move{Kind: engine.Call}, nil
	}
	return engine.Move{Kind: engine.Check}, nil
}

func (b *checkCallBot) MatchStarted(engine.MatchInfo)  {}
func (b *checkCallBot) MatchEnded(engine.MatchResult)  {}

// attackBot returns a decision outside any legal grammar, every time.
type attackBot struct{ name string }

func (b *attackBot) Name() string                         { return b.name }
func (b *attackBot) Act(engine.View) (engine.Move, error) { return engine.Move{Kind: "attack"}, nil }
func (b *attackBot) MatchStarted(engine.MatchInfo)        {}
func (b *attackBot) MatchEnded(engine.MatchResult)        {}

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

func pad(cards ...deck.Card) []deck.Card {
	for i := 0; i < shoeReserve; i++ {
		cards = append(cards, c(deck.Clubs, deck.Six))
	}
	return cards
}

func TestNewRequiresTwoSeats(t *testing.T) {
	_, err := New(testParams(&checkCallBot{name: "solo"}))
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrTooFewSeats)
}

func TestBlindsAndOpeningActor(t *testing.T) {
	g, err := newGame(testParams(&checkCallBot{name: "a"}, &checkCallBot{name: "b"}, &checkCallBot{name: "d"}), deck.NewShoe(shoeDecks, randutil.New(1)))
	require.NoError(t, err)

	g.postBlinds()

	// Button on seat 0: seat 1 posts small, seat 2 posts big, seat 0 opens.
	assert.Equal(t, 950, g.players[1].chips)
	assert.Equal(t, 50, g.players[1].roundBet)
	assert.Equal(t, 900, g.players[2].chips)
	assert.Equal(t, 100, g.players[2].roundBet)
	assert.Equal(t, 150, g.pot)
	assert.Equal(t, 100, g.currentBet)
	assert.Equal(t, 0, g.acting)
}

func TestShortStackBlindIsAllIn(t *testing.T) {
	g, err := newGame(testParams(&checkCallBot{name: "a"}, &checkCallBot{name: "b"}), deck.NewShoe(shoeDecks, randutil.New(1)))
	require.NoError(t, err)
	g.players[1].chips = 30

	g.postBlinds()

	assert.Equal(t, 0, g.players[1].chips)
	assert.Equal(t, 30, g.players[1].roundBet)
	assert.True(t, g.players[1].allIn)
}

func TestFlushBeatsTwoPairAtShowdown(t *testing.T) {
	flush := &checkCallBot{name: "flush"}
	twoPair := &checkCallBot{name: "twopair"}

	// Heads-up, button on seat 0: seat 0 is the big blind, seat 1 posts
	// small and acts first. Hole deal alternates seats.
	shoe := deck.NewScriptedShoe(pad(
		c(deck.Hearts, deck.Ace),  // flush hole 1
		c(deck.Clubs, deck.King),  // twopair hole 1
		c(deck.Hearts, deck.Seven), // flush hole 2
		c(deck.Diamonds, deck.Nine), // twopair hole 2
		c(deck.Clubs, deck.Five), // burn
		c(deck.Hearts, deck.King),
		c(deck.Hearts, deck.Queen),
		c(deck.Hearts, deck.Two),
		c(deck.Diamonds, deck.Five), // burn
		c(deck.Spades, deck.Nine),
		c(deck.Spades, deck.Five), // burn
		c(deck.Diamonds, deck.Four),
	)...)
	g, err := newGame(testParams(flush, twoPair), shoe)
	require.NoError(t, err)

	require.NoError(t, g.playHand())

	// Both bets settle at the big blind, so the pot was 200 and the flush
	// takes all of it.
	assert.Equal(t, 1100, g.players[0].chips)
	assert.Equal(t, 900, g.players[1].chips)
	assert.Equal(t, 1, g.players[0].handsWon)
	assert.Equal(t, 1, g.players[1].handsLost)

	last := g.history[len(g.history)-1]
	assert.Equal(t, "showdown", last.Result)
	assert.Equal(t, []string{"flush"}, last.Winners)
	assert.Equal(t, map[string]int{"flush": 200}, last.Winnings)

	var names []string
	for _, rec := range g.history {
		if rec.Round == 1 && rec.Player == "flush" && rec.Result == "Flush" {
			names = append(names, rec.Player)
		}
	}
	assert.Len(t, names, 1)
}

func TestTiedPotSplitsWithFloorAndDropsRemainder(t *testing.T) {
	g, err := newGame(testParams(&checkCallBot{name: "a"}, &checkCallBot{name: "b"}, &checkCallBot{name: "d"}), deck.NewShoe(shoeDecks, randutil.New(1)))
	require.NoError(t, err)

	// Board plays for everyone: broadway straight on the table.
	g.community = []deck.Card{
		c(deck.Spades, deck.Ace),
		c(deck.Hearts, deck.King),
		c(deck.Diamonds, deck.Queen),
		c(deck.Clubs, deck.Jack),
		c(deck.Spades, deck.Ten),
	}
	g.players[0].hole = []deck.Card{c(deck.Hearts, deck.Two), c(deck.Clubs, deck.Three)}
	g.players[1].hole = []deck.Card{c(deck.Diamonds, deck.Two), c(deck.Spades, deck.Three)}
	g.players[2].hole = []deck.Card{c(deck.Clubs, deck.Two), c(deck.Hearts, deck.Three)}
	g.pot = 200

	g.showdown()

	for _, pl := range g.players {
		assert.Equal(t, 1000+66, pl.chips)
		assert.Equal(t, 1, pl.handsTied)
	}
	assert.Equal(t, 2, g.dropped)
	assert.Equal(t, 0, g.pot)
}

func TestCheckIntoLiveBetFolds(t *testing.T) {
	g, err := newGame(testParams(&checkCallBot{name: "a"}, &checkCallBot{name: "b"}), deck.NewShoe(shoeDecks, randutil.New(1)))
	require.NoError(t, err)

	g.currentBet = 100
	pl := g.players[0]
	g.applyAction(pl, engine.Move{Kind: engine.Check})

	assert.True(t, pl.folded)
}

func TestRaiseGrammar(t *testing.T) {
	g, err := newGame(testParams(&checkCallBot{name: "a"}, &checkCallBot{name: "b"}), deck.NewShoe(shoeDecks, randutil.New(1)))
	require.NoError(t, err)

	g.phase = phaseFlop
	assert.NoError(t, g.validateAction(engine.Move{Kind: engine.Raise, Amount: 100}))
	assert.Error(t, g.validateAction(engine.Move{Kind: engine.Raise, Amount: 150}))

	g.phase = phaseTurn
	assert.NoError(t, g.validateAction(engine.Move{Kind: engine.Raise, Amount: 200}))
	assert.Error(t, g.validateAction(engine.Move{Kind: engine.Raise, Amount: 100}))

	g.raises = g.maxRaises
	assert.Error(t, g.validateAction(engine.Move{Kind: engine.Raise, Amount: 200}))

	assert.Error(t, g.validateAction(engine.Move{Kind: "attack"}))
}

func TestRaiseMovesChipsAndBumpsBet(t *testing.T) {
	g, err := newGame(testParams(&checkCallBot{name: "a"}, &checkCallBot{name: "b"}), deck.NewShoe(shoeDecks, randutil.New(1)))
	require.NoError(t, err)

	g.phase = phaseFlop
	pl := g.players[0]
	g.applyAction(pl, engine.Move{Kind: engine.Raise, Amount: 100})

	assert.Equal(t, 900, pl.chips)
	assert.Equal(t, 100, pl.roundBet)
	assert.Equal(t, 100, g.pot)
	assert.Equal(t, 100, g.currentBet)
	assert.Equal(t, 1, g.raises)
}

func TestChipConservationOverFullMatch(t *testing.T) {
	g, err := newGame(
		testParams(&checkCallBot{name: "a"}, &checkCallBot{name: "b"}, &checkCallBot{name: "d"}, &checkCallBot{name: "e"}),
		deck.NewShoe(shoeDecks, randutil.New(7)),
	)
	require.NoError(t, err)

	result, err := g.PlayFullMatch()
	require.NoError(t, err)

	total := g.dropped
	for _, pl := range append(g.players, g.busted...) {
		total += pl.chips
	}
	assert.Equal(t, 4*1000, total)

	assert.Equal(t, GameType, result.GameType)
	assert.Len(t, result.Players, 4)
	assert.NotEmpty(t, result.Winner)
}

func TestIllegalDecisionBotIsDisqualifiedEveryTime(t *testing.T) {
	g, err := newGame(
		testParams(&attackBot{name: "attacker"}, &checkCallBot{name: "b"}, &checkCallBot{name: "d"}),
		deck.NewShoe(shoeDecks, randutil.New(3)),
	)
	require.NoError(t, err)

	result, err := g.PlayFullMatch()
	require.NoError(t, err)

	attacker := result.PlayerNamed("attacker")
	require.NotNil(t, attacker)
	assert.Greater(t, attacker.Disqualifications, 0)

	// Every decision the attacker made was disqualified and overridden
	// with the fold fallback; the match still ran to completion.
	decisions := 0
	for _, rec := range result.History {
		if rec.Player == "attacker" && rec.Action != "" {
			decisions++
			assert.True(t, rec.Disqualified)
			assert.Equal(t, engine.Fold, rec.Action)
		}
	}
	assert.Equal(t, attacker.Disqualifications, decisions)
	assert.Greater(t, result.TotalRounds, 0)
}

func TestBustedSeatsAreRemovedButStayInResult(t *testing.T) {
	g, err := newGame(testParams(&checkCallBot{name: "a"}, &checkCallBot{name: "b"}, &checkCallBot{name: "d"}), deck.NewShoe(shoeDecks, randutil.New(1)))
	require.NoError(t, err)

	g.players[2].chips = 0
	g.resetForHand()

	assert.Len(t, g.players, 2)
	require.Len(t, g.busted, 1)
	assert.Equal(t, "d", g.busted[0].seat.Name)
	assert.False(t, g.over)

	g.finish()
	result, err := g.Result()
	require.NoError(t, err)
	require.Len(t, result.Players, 3)
	assert.Equal(t, "d", result.Players[2].Name)
	assert.Equal(t, 0.0, result.Players[2].Score)
}

func TestMatchEndsWhenOneFundedSeatRemains(t *testing.T) {
	g, err := newGame(testParams(&checkCallBot{name: "a"}, &checkCallBot{name: "b"}), deck.NewShoe(shoeDecks, randutil.New(1)))
	require.NoError(t, err)

	g.players[1].chips = 0
	g.resetForHand()

	assert.True(t, g.over)
}
