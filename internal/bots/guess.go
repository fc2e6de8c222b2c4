package bots

import (
	rand "math/rand/v2"

	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/game/higherlower"
	"github.com/cardroomhq/cardroom/internal/game/higherlowermany"
)

// currentGuessValue extracts the face-up card value from either guessing
// variant's view.
func currentGuessValue(v engine.View) (int, bool) {
	switch view := v.(type) {
	case higherlower.View:
		return view.CurrentValue, true
	case higherlowermany.View:
		return view.CurrentValue, true
	}
	return 0, false
}

// randomGuesser flips a coin every turn.
type randomGuesser struct {
	rng *rand.Rand
}

func newRandomGuesser(rng *rand.Rand) engine.Bot {
	return &randomGuesser{rng: rng}
}

func (b *randomGuesser) Name() string { return "random-bot" }

func (b *randomGuesser) Act(engine.View) (engine.Move, error) {
	if b.rng.IntN(2) == 0 {
		return engine.Move{Kind: engine.GuessHigher}, nil
	}
	return engine.Move{Kind: engine.GuessLower}, nil
}

func (b *randomGuesser) MatchStarted(engine.MatchInfo) {}
func (b *randomGuesser) MatchEnded(engine.MatchResult) {}

// countingBot tracks every value it has seen and guesses toward whichever
// side of the current card has more cards left in a single deck. With more
// decks in the shoe the count drifts, but the relative weights still point
// the right way.
type countingBot struct {
	rng       *rand.Rand
	remaining [14]int // index 1..13, count of unseen cards per value
}

func newCountingBot(rng *rand.Rand) engine.Bot {
	b := &countingBot{rng: rng}
	b.reset()
	return b
}

func (b *countingBot) Name() string { return "counting-bot" }

func (b *countingBot) reset() {
	for v := 1; v <= 13; v++ {
		b.remaining[v] = 4
	}
}

func (b *countingBot) Act(v engine.View) (engine.Move, error) {
	cur, ok := currentGuessValue(v)
	if !ok {
		return engine.Move{Kind: engine.GuessHigher}, nil
	}
	if b.remaining[cur] > 0 {
		b.remaining[cur]--
	}

	higher, lower := 0, 0
	for value := 1; value <= 13; value++ {
		switch {
		case value > cur:
			higher += b.remaining[value]
		case value < cur:
			lower += b.remaining[value]
		}
	}

	switch {
	case higher > lower:
		return engine.Move{Kind: engine.GuessHigher}, nil
	case lower > higher:
		return engine.Move{Kind: engine.GuessLower}, nil
	case b.rng.IntN(2) == 0:
		return engine.Move{Kind: engine.GuessHigher}, nil
	default:
		return engine.Move{Kind: engine.GuessLower}, nil
	}
}

func (b *countingBot) MatchStarted(engine.MatchInfo) { b.reset() }
func (b *countingBot) MatchEnded(engine.MatchResult) {}
