package bots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/game/blackjack"
	"github.com/cardroomhq/cardroom/internal/game/higherlower"
	"github.com/cardroomhq/cardroom/internal/game/higherlowermany"
	"github.com/cardroomhq/cardroom/internal/game/holdem"
	"github.com/cardroomhq/cardroom/internal/randutil"
)

func newTestResolver() *Resolver {
	return NewResolver(randutil.New(42))
}

func TestDiscoverListsRosterSorted(t *testing.T) {
	r := newTestResolver()

	assert.Equal(t, []string{"counting-bot", "random-bot"}, r.Discover(higherlower.GameType))
	assert.Equal(t, []string{"counting-bot", "random-bot"}, r.Discover(higherlowermany.GameType))
	assert.Equal(t,
		[]string{"aggressive-bot", "bank-bot", "basic-strategy-bot", "conservative-bot"},
		r.Discover(blackjack.GameType))
	assert.Equal(t,
		[]string{"basic-strategy-bot", "loose-bot", "random-bot", "tight-bot"},
		r.Discover(holdem.GameType))
	assert.Empty(t, r.Discover("canasta"))
}

func TestResolveUnknown(t *testing.T) {
	r := newTestResolver()

	_, err := r.Resolve("canasta", "random-bot")
	assert.ErrorIs(t, err, ErrUnknownBot)

	_, err = r.Resolve(higherlower.GameType, "tight-bot")
	assert.ErrorIs(t, err, ErrUnknownBot)
}

func TestResolveReturnsFreshInstances(t *testing.T) {
	r := newTestResolver()

	a, err := r.Resolve(higherlower.GameType, "counting-bot")
	require.NoError(t, err)
	b, err := r.Resolve(higherlower.GameType, "counting-bot")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func guessViewWith(value int) higherlower.View {
	return higherlower.View{CurrentValue: value}
}

func TestRandomGuesserAnswersTheQuestionAsked(t *testing.T) {
	r := newTestResolver()
	bot, err := r.Resolve(higherlower.GameType, "random-bot")
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		mv, err := bot.Act(guessViewWith(7))
		require.NoError(t, err)
		assert.Contains(t, []string{engine.GuessHigher, engine.GuessLower}, mv.Kind)
	}
}

func TestCountingBotFollowsTheCount(t *testing.T) {
	bot := newCountingBot(randutil.New(1))

	// Nothing beats an ace from below.
	mv, err := bot.Act(guessViewWith(1))
	require.NoError(t, err)
	assert.Equal(t, engine.GuessHigher, mv.Kind)

	mv, err = bot.Act(guessViewWith(13))
	require.NoError(t, err)
	assert.Equal(t, engine.GuessLower, mv.Kind)
}

func TestCountingBotExhaustsAValue(t *testing.T) {
	bot := newCountingBot(randutil.New(1))

	// Burn all four kings, then a queen: nothing higher remains.
	for i := 0; i < 4; i++ {
		_, err := bot.Act(guessViewWith(13))
		require.NoError(t, err)
	}
	mv, err := bot.Act(guessViewWith(12))
	require.NoError(t, err)
	assert.Equal(t, engine.GuessLower, mv.Kind)
}

func TestCountingBotResetsBetweenMatches(t *testing.T) {
	bot := newCountingBot(randutil.New(1))
	for i := 0; i < 4; i++ {
		_, err := bot.Act(guessViewWith(13))
		require.NoError(t, err)
	}
	bot.MatchStarted(engine.MatchInfo{})

	// After the reset kings are live again, so a queen counts 4 higher
	// vs 40 lower (the queen discounts itself).
	mv, err := bot.Act(guessViewWith(12))
	require.NoError(t, err)
	assert.Equal(t, engine.GuessLower, mv.Kind)

	mv, err = bot.Act(guessViewWith(2))
	require.NoError(t, err)
	assert.Equal(t, engine.GuessHigher, mv.Kind)
}

func TestCountingBotWorksOnBothGuessingVariants(t *testing.T) {
	bot := newCountingBot(randutil.New(1))

	mv, err := bot.Act(higherlowermany.View{CurrentValue: 1})
	require.NoError(t, err)
	assert.Equal(t, engine.GuessHigher, mv.Kind)
}

func handView(value int, soft bool, handSize int, upCard string) blackjack.View {
	hand := make([]string, handSize)
	for i := range hand {
		hand[i] = "2♣" // only the count matters to the bots
	}
	return blackjack.View{
		PlayerHand:   hand,
		PlayerValue:  value,
		PlayerIsSoft: soft,
		BankUpCard:   upCard,
	}
}

func TestBasicStrategyHardTotals(t *testing.T) {
	bot := newBasicStrategyBot(nil)

	cases := []struct {
		value  int
		cards  int
		upCard string
		want   string
	}{
		{17, 3, "5♦", engine.Stand},
		{16, 3, "10♠", engine.Hit},
		{13, 2, "6♦", engine.Stand},
		{12, 2, "4♥", engine.Stand},
		{12, 2, "2♣", engine.Hit},
		{11, 2, "A♠", engine.Double},
		{10, 2, "9♦", engine.Double},
		{10, 2, "10♦", engine.Hit},
		{9, 2, "4♣", engine.Double},
		{9, 2, "2♣", engine.Hit},
		{8, 2, "6♦", engine.Hit},
	}
	for _, tc := range cases {
		mv, err := bot.Act(handView(tc.value, false, tc.cards, tc.upCard))
		require.NoError(t, err)
		assert.Equal(t, tc.want, mv.Kind, "hard %d vs %s", tc.value, tc.upCard)
	}
}

func TestBasicStrategySoftTotals(t *testing.T) {
	bot := newBasicStrategyBot(nil)

	cases := []struct {
		value  int
		cards  int
		upCard string
		want   string
	}{
		{19, 2, "6♦", engine.Stand},
		{18, 2, "6♦", engine.Double},
		{18, 3, "6♦", engine.Stand},
		{18, 2, "8♦", engine.Stand},
		{18, 2, "9♦", engine.Hit},
		{17, 2, "4♦", engine.Double},
		{17, 2, "2♦", engine.Hit},
		{13, 2, "5♦", engine.Double},
		{13, 2, "4♦", engine.Hit},
	}
	for _, tc := range cases {
		mv, err := bot.Act(handView(tc.value, true, tc.cards, tc.upCard))
		require.NoError(t, err)
		assert.Equal(t, tc.want, mv.Kind, "soft %d vs %s", tc.value, tc.upCard)
	}
}

func TestBasicStrategyAssumesTenWithoutUpCard(t *testing.T) {
	bot := newBasicStrategyBot(nil)

	// Hard 13 stands against a weak card but hits into an assumed ten.
	mv, err := bot.Act(handView(13, false, 2, ""))
	require.NoError(t, err)
	assert.Equal(t, engine.Hit, mv.Kind)
}

func TestAggressiveBotDoublesNineThroughEleven(t *testing.T) {
	bot := newAggressiveBot(nil)

	for _, value := range []int{9, 10, 11} {
		mv, err := bot.Act(handView(value, false, 2, "10♦"))
		require.NoError(t, err)
		assert.Equal(t, engine.Double, mv.Kind, "value %d", value)
	}

	mv, err := bot.Act(handView(16, false, 3, "10♦"))
	require.NoError(t, err)
	assert.Equal(t, engine.Hit, mv.Kind)

	mv, err = bot.Act(handView(17, false, 3, "10♦"))
	require.NoError(t, err)
	assert.Equal(t, engine.Stand, mv.Kind)
}

func TestConservativeBotNeverDoubles(t *testing.T) {
	bot := newConservativeBot(nil)

	mv, err := bot.Act(handView(11, false, 2, "6♦"))
	require.NoError(t, err)
	assert.Equal(t, engine.Hit, mv.Kind)

	mv, err = bot.Act(handView(17, false, 2, "A♦"))
	require.NoError(t, err)
	assert.Equal(t, engine.Stand, mv.Kind)
}

func TestBankBotPlaysTheHouseRule(t *testing.T) {
	bot := newBankBot(nil)

	mv, err := bot.Act(handView(16, false, 2, ""))
	require.NoError(t, err)
	assert.Equal(t, engine.Hit, mv.Kind)

	mv, err = bot.Act(handView(17, false, 2, ""))
	require.NoError(t, err)
	assert.Equal(t, engine.Stand, mv.Kind)
}

func tableView(phase string, hole, community []string, currentBet, playerBet, pot int, actions ...string) holdem.View {
	return holdem.View{
		Phase:          phase,
		CommunityCards: community,
		Pot:            pot,
		CurrentBet:     currentBet,
		RaiseAmount:    100,
		Player: holdem.SeatState{
			Chips:      1000,
			HoleCards:  hole,
			CurrentBet: playerBet,
		},
		PossibleActions: actions,
	}
}

func TestTightBotFoldsJunkFacingABet(t *testing.T) {
	bot := newTightBot(randutil.New(1))

	view := tableView("preflop", []string{"7♠", "2♦"}, nil, 100, 0, 150,
		engine.Fold, engine.Call, engine.Raise)
	mv, err := bot.Act(view)
	require.NoError(t, err)
	assert.Equal(t, engine.Fold, mv.Kind)
}

func TestTightBotNeverFoldsPremiums(t *testing.T) {
	bot := newTightBot(randutil.New(1))

	view := tableView("preflop", []string{"A♠", "A♦"}, nil, 100, 0, 150,
		engine.Fold, engine.Call, engine.Raise)
	for i := 0; i < 20; i++ {
		mv, err := bot.Act(view)
		require.NoError(t, err)
		assert.Contains(t, []string{engine.Call, engine.Raise}, mv.Kind)
		if mv.Kind == engine.Raise {
			assert.Equal(t, 100, mv.Amount)
		}
	}
}

func TestTightBotCallsMediumPairAtGoodOdds(t *testing.T) {
	bot := newTightBot(randutil.New(1))

	// Owes 100 into 300: 25% pot odds clears the 30% ceiling.
	view := tableView("preflop", []string{"8♠", "8♦"}, nil, 100, 0, 300,
		engine.Fold, engine.Call)
	mv, err := bot.Act(view)
	require.NoError(t, err)
	assert.Equal(t, engine.Call, mv.Kind)
}

func TestTightBotRaisesAMadeHandPostflop(t *testing.T) {
	bot := newTightBot(randutil.New(1))

	view := tableView("flop", []string{"9♠", "9♦"}, []string{"9♥", "K♣", "2♦"}, 0, 0, 200,
		engine.Fold, engine.Check, engine.Raise)
	mv, err := bot.Act(view)
	require.NoError(t, err)
	assert.Equal(t, engine.Raise, mv.Kind)
	assert.Equal(t, 100, mv.Amount)
}

func TestTightBotChecksBehindWithNothing(t *testing.T) {
	bot := newTightBot(randutil.New(1))

	view := tableView("flop", []string{"7♠", "2♦"}, []string{"9♥", "K♣", "4♦"}, 0, 0, 200,
		engine.Fold, engine.Check, engine.Raise)
	mv, err := bot.Act(view)
	require.NoError(t, err)
	assert.Equal(t, engine.Check, mv.Kind)
}

func TestLooseBotFoldsOnlyTheWorst(t *testing.T) {
	bot := newLooseBot(randutil.New(1))

	// 72o facing a full bet with no check available.
	view := tableView("preflop", []string{"7♠", "2♦"}, nil, 100, 0, 150,
		engine.Fold, engine.Call, engine.Raise)
	mv, err := bot.Act(view)
	require.NoError(t, err)
	assert.Equal(t, engine.Fold, mv.Kind)

	// Any suited hand is playable for it.
	view = tableView("preflop", []string{"7♠", "2♠"}, nil, 100, 0, 150,
		engine.Fold, engine.Call, engine.Raise)
	mv, err = bot.Act(view)
	require.NoError(t, err)
	assert.Contains(t, []string{engine.Call, engine.Raise}, mv.Kind)
}

func TestLooseBotPressuresWithAFlush(t *testing.T) {
	bot := newLooseBot(randutil.New(1))

	view := tableView("river", []string{"A♥", "7♥"}, []string{"K♥", "Q♥", "2♥", "9♠", "4♦"},
		0, 0, 400, engine.Fold, engine.Check, engine.Raise)
	for i := 0; i < 20; i++ {
		mv, err := bot.Act(view)
		require.NoError(t, err)
		assert.Contains(t, []string{engine.Call, engine.Raise}, mv.Kind)
	}
}

func TestSolidBotRaisesPremiumsFromEarlyPosition(t *testing.T) {
	bot := newSolidBot(randutil.New(1))

	view := tableView("preflop", []string{"A♠", "A♦"}, nil, 100, 0, 150,
		engine.Fold, engine.Call, engine.Raise)
	view.Player.Position = 0
	view.Opponents = []holdem.Opponent{{}, {}, {}, {}, {}} // six-handed
	mv, err := bot.Act(view)
	require.NoError(t, err)
	assert.Equal(t, engine.Raise, mv.Kind)
	assert.Equal(t, 100, mv.Amount)
}

func TestRandomPlayerStaysWithinLegalActions(t *testing.T) {
	bot := newRandomPlayer(randutil.New(7))

	view := tableView("flop", []string{"7♠", "2♦"}, []string{"9♥", "K♣", "4♦"}, 0, 0, 200,
		engine.Fold, engine.Check, engine.Raise)
	for i := 0; i < 50; i++ {
		mv, err := bot.Act(view)
		require.NoError(t, err)
		assert.Contains(t, []string{engine.Fold, engine.Check, engine.Raise}, mv.Kind)
		if mv.Kind == engine.Raise {
			assert.Equal(t, 100, mv.Amount)
		}
	}
}
