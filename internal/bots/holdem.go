package bots

import (
	rand "math/rand/v2"
	"sort"

	"github.com/cardroomhq/cardroom/internal/deck"
	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/evaluator"
	"github.com/cardroomhq/cardroom/internal/game/holdem"
)

func parseCards(strs []string) ([]deck.Card, bool) {
	cards := make([]deck.Card, 0, len(strs))
	for _, s := range strs {
		c, err := deck.Parse(s)
		if err != nil {
			return nil, false
		}
		cards = append(cards, c)
	}
	return cards, true
}

// bestEval finds the strongest 5-card hand in 5, 6, or 7 cards.
func bestEval(cards []deck.Card) (evaluator.Eval, bool) {
	switch len(cards) {
	case 5:
		e, err := evaluator.Evaluate5(cards)
		return e, err == nil
	case 6:
		var best evaluator.Eval
		have := false
		hand := make([]deck.Card, 0, 5)
		for drop := 0; drop < 6; drop++ {
			hand = hand[:0]
			for i, c := range cards {
				if i != drop {
					hand = append(hand, c)
				}
			}
			e, err := evaluator.Evaluate5(hand)
			if err != nil {
				return evaluator.Eval{}, false
			}
			if !have || e.Beats(best) {
				best = e
				have = true
			}
		}
		return best, true
	case 7:
		_, e, err := evaluator.BestOfSeven(cards)
		return e, err == nil
	}
	return evaluator.Eval{}, false
}

// postflopStrength buckets made-hand categories onto a 0..1 scale.
func postflopStrength(cards []deck.Card) float64 {
	eval, ok := bestEval(cards)
	if !ok {
		return 0.3
	}
	switch eval.Rank {
	case evaluator.RoyalFlush, evaluator.StraightFlush, evaluator.FourOfAKind:
		return 0.95
	case evaluator.FullHouse:
		return 0.9
	case evaluator.Flush:
		return 0.8
	case evaluator.Straight:
		return 0.75
	case evaluator.ThreeOfAKind:
		return 0.7
	case evaluator.TwoPair:
		return 0.6
	case evaluator.Pair:
		return 0.4
	}
	high := 0
	for _, c := range cards {
		if v := c.PokerValue(); v > high {
			high = v
		}
	}
	switch {
	case high >= 14:
		return 0.25
	case high >= 11:
		return 0.2
	default:
		return 0.1
	}
}

// hasDraw reports four to a flush or four ranks inside a five-card span.
func hasDraw(cards []deck.Card) bool {
	if len(cards) < 4 {
		return false
	}

	suitCounts := make(map[deck.Suit]int, 4)
	for _, c := range cards {
		suitCounts[c.Suit]++
		if suitCounts[c.Suit] >= 4 {
			return true
		}
	}

	seen := make(map[int]bool, len(cards))
	var ranks []int
	for _, c := range cards {
		if v := c.PokerValue(); !seen[v] {
			seen[v] = true
			ranks = append(ranks, v)
		}
	}
	sort.Ints(ranks)
	for i := 0; i+3 < len(ranks); i++ {
		if ranks[i+3]-ranks[i] <= 4 {
			return true
		}
	}
	return false
}

func holePair(hole []deck.Card) (high, low int, pair, suited bool) {
	a, b := hole[0].PokerValue(), hole[1].PokerValue()
	if a < b {
		a, b = b, a
	}
	return a, b, a == b, hole[0].Suit == hole[1].Suit
}

func tightPreflop(hole []deck.Card) float64 {
	if len(hole) != 2 {
		return 0
	}
	high, low, pair, suited := holePair(hole)

	if pair {
		switch {
		case high >= 13:
			return 0.9
		case high >= 10:
			return 0.8
		case high >= 7:
			return 0.6
		default:
			return 0.4
		}
	}
	gap := high - low
	if suited {
		switch {
		case high >= 13 && low >= 10:
			return 0.8
		case high >= 12 && low >= 9:
			return 0.6
		case gap <= 1 && high >= 8:
			return 0.5
		default:
			return 0.3
		}
	}
	switch {
	case high >= 13 && low >= 12:
		return 0.7
	case high >= 12 && low >= 10:
		return 0.5
	default:
		return 0.2
	}
}

func loosePreflop(hole []deck.Card) float64 {
	if len(hole) != 2 {
		return 0
	}
	high, low, pair, suited := holePair(hole)

	if pair {
		switch {
		case high >= 13:
			return 0.9
		case high >= 8:
			return 0.8
		default:
			return 0.6
		}
	}
	gap := high - low
	if suited {
		switch {
		case high >= 10:
			return 0.7
		case gap <= 2:
			return 0.6
		case high >= 8:
			return 0.5
		default:
			return 0.4
		}
	}
	switch {
	case high >= 13 && low >= 10:
		return 0.7
	case high >= 11:
		return 0.5
	case gap <= 1 && high >= 8:
		return 0.4
	default:
		return 0.2
	}
}

func solidPreflop(hole []deck.Card) float64 {
	if len(hole) != 2 {
		return 0
	}
	high, low, pair, suited := holePair(hole)

	if pair {
		switch {
		case high >= 13:
			return 0.9
		case high >= 10:
			return 0.8
		case high >= 7:
			return 0.6
		default:
			return 0.5
		}
	}
	gap := high - low
	if suited {
		switch {
		case high >= 13 && low >= 10:
			return 0.8
		case high >= 12 && low >= 9:
			return 0.7
		case gap <= 1 && high >= 8:
			return 0.6
		case high >= 11:
			return 0.5
		default:
			return 0.3
		}
	}
	switch {
	case high >= 13 && low >= 12:
		return 0.7
	case high >= 12 && low >= 10:
		return 0.5
	case gap <= 1 && high >= 9:
		return 0.4
	default:
		return 0.2
	}
}

func callAmount(v holdem.View) int {
	return v.CurrentBet - v.Player.CurrentBet
}

func potOdds(v holdem.View) float64 {
	owed := callAmount(v)
	if owed <= 0 || v.Pot+owed == 0 {
		return 0
	}
	return float64(owed) / float64(v.Pot+owed)
}

func move(kind string) engine.Move { return engine.Move{Kind: kind} }

func raiseMove(v holdem.View) engine.Move {
	return engine.Move{Kind: engine.Raise, Amount: v.RaiseAmount}
}

// randomPlayer picks uniformly among the legal actions, with a nudge away
// from folding so its matches stay contested.
type randomPlayer struct {
	rng *rand.Rand
}

func newRandomPlayer(rng *rand.Rand) engine.Bot { return &randomPlayer{rng: rng} }

func (b *randomPlayer) Name() string { return "random-bot" }

func (b *randomPlayer) Act(v engine.View) (engine.Move, error) {
	view, ok := v.(holdem.View)
	if !ok || len(view.PossibleActions) == 0 {
		return move(engine.Fold), nil
	}

	actions := view.PossibleActions
	if len(actions) > 1 && b.rng.Float64() < 0.3 {
		trimmed := make([]string, 0, len(actions))
		for _, a := range actions {
			if a != engine.Fold {
				trimmed = append(trimmed, a)
			}
		}
		actions = trimmed
	}

	switch actions[b.rng.IntN(len(actions))] {
	case engine.Raise:
		return raiseMove(view), nil
	case engine.Check:
		return move(engine.Check), nil
	case engine.Call:
		return move(engine.Call), nil
	default:
		return move(engine.Fold), nil
	}
}

func (b *randomPlayer) MatchStarted(engine.MatchInfo) {}
func (b *randomPlayer) MatchEnded(engine.MatchResult) {}

// tightBot plays only premium hands preflop and needs a made hand to
// continue past the flop.
type tightBot struct {
	rng *rand.Rand
}

func newTightBot(rng *rand.Rand) engine.Bot { return &tightBot{rng: rng} }

func (b *tightBot) Name() string { return "tight-bot" }

func (b *tightBot) Act(v engine.View) (engine.Move, error) {
	view, ok := v.(holdem.View)
	if !ok {
		return move(engine.Fold), nil
	}
	hole, ok := parseCards(view.Player.HoleCards)
	if !ok {
		return move(engine.Fold), nil
	}

	if view.Phase == "preflop" {
		strength := tightPreflop(hole)
		if strength >= 0.8 {
			if contains(view.PossibleActions, engine.Raise) && b.rng.Float64() < 0.7 {
				return raiseMove(view), nil
			}
			return move(engine.Call), nil
		}
		if strength >= 0.6 && potOdds(view) < 0.3 {
			return move(engine.Call), nil
		}
		if contains(view.PossibleActions, engine.Check) {
			return move(engine.Check), nil
		}
		return move(engine.Fold), nil
	}

	community, ok := parseCards(view.CommunityCards)
	if !ok {
		return move(engine.Fold), nil
	}
	cards := append(hole, community...)
	if len(cards) >= 5 {
		strength := postflopStrength(cards)
		if strength >= 0.7 {
			if contains(view.PossibleActions, engine.Raise) {
				return raiseMove(view), nil
			}
			return move(engine.Call), nil
		}
		if strength >= 0.4 {
			if contains(view.PossibleActions, engine.Check) {
				return move(engine.Check), nil
			}
			if callAmount(view) < view.Player.Chips/10 {
				return move(engine.Call), nil
			}
		}
	}

	if contains(view.PossibleActions, engine.Check) {
		return move(engine.Check), nil
	}
	return move(engine.Fold), nil
}

func (b *tightBot) MatchStarted(engine.MatchInfo) {}
func (b *tightBot) MatchEnded(engine.MatchResult) {}

// looseBot plays most hands and applies pressure with anything decent.
type looseBot struct {
	rng *rand.Rand
}

func newLooseBot(rng *rand.Rand) engine.Bot { return &looseBot{rng: rng} }

func (b *looseBot) Name() string { return "loose-bot" }

func (b *looseBot) Act(v engine.View) (engine.Move, error) {
	view, ok := v.(holdem.View)
	if !ok {
		return move(engine.Fold), nil
	}
	hole, ok := parseCards(view.Player.HoleCards)
	if !ok {
		return move(engine.Fold), nil
	}

	if view.Phase == "preflop" {
		strength := loosePreflop(hole)
		if strength >= 0.3 {
			if contains(view.PossibleActions, engine.Raise) && b.rng.Float64() < 0.6 {
				return raiseMove(view), nil
			}
			return move(engine.Call), nil
		}
		if strength >= 0.1 && callAmount(view) < view.Player.Chips/20 {
			return move(engine.Call), nil
		}
		if contains(view.PossibleActions, engine.Check) {
			return move(engine.Check), nil
		}
		return move(engine.Fold), nil
	}

	community, ok := parseCards(view.CommunityCards)
	if !ok {
		return move(engine.Fold), nil
	}
	cards := append(hole, community...)
	if len(cards) >= 5 {
		strength := postflopStrength(cards)
		if strength >= 0.4 {
			if contains(view.PossibleActions, engine.Raise) && b.rng.Float64() < 0.7 {
				return raiseMove(view), nil
			}
			return move(engine.Call), nil
		}
		if strength >= 0.2 {
			if contains(view.PossibleActions, engine.Raise) && b.rng.Float64() < 0.3 {
				return raiseMove(view), nil
			}
			if contains(view.PossibleActions, engine.Check) {
				return move(engine.Check), nil
			}
			if callAmount(view) < view.Player.Chips*3/20 {
				return move(engine.Call), nil
			}
		}
	}

	if hasDraw(cards) {
		if contains(view.PossibleActions, engine.Check) {
			return move(engine.Check), nil
		}
		if callAmount(view) < view.Player.Chips/5 {
			return move(engine.Call), nil
		}
	}

	if contains(view.PossibleActions, engine.Check) {
		return move(engine.Check), nil
	}
	return move(engine.Fold), nil
}

func (b *looseBot) MatchStarted(engine.MatchInfo) {}
func (b *looseBot) MatchEnded(engine.MatchResult) {}

// solidBot plays sound fundamentals: position-aware preflop ranges and
// pot-odds driven calls after the flop.
type solidBot struct {
	rng *rand.Rand
}

func newSolidBot(rng *rand.Rand) engine.Bot { return &solidBot{rng: rng} }

func (b *solidBot) Name() string { return "basic-strategy-bot" }

func (b *solidBot) Act(v engine.View) (engine.Move, error) {
	view, ok := v.(holdem.View)
	if !ok {
		return move(engine.Fold), nil
	}
	hole, ok := parseCards(view.Player.HoleCards)
	if !ok {
		return move(engine.Fold), nil
	}

	if view.Phase == "preflop" {
		strength := solidPreflop(hole)
		threshold := 0.5
		total := len(view.Opponents) + 1
		switch {
		case view.Player.Position < total/3:
			threshold = 0.7
		case view.Player.Position >= total*2/3:
			threshold = 0.4
		}

		if strength >= threshold+0.2 {
			if contains(view.PossibleActions, engine.Raise) {
				return raiseMove(view), nil
			}
			return move(engine.Call), nil
		}
		if strength >= threshold && callAmount(view) < view.Player.Chips/10 {
			return move(engine.Call), nil
		}
		if contains(view.PossibleActions, engine.Check) {
			return move(engine.Check), nil
		}
		return move(engine.Fold), nil
	}

	community, ok := parseCards(view.CommunityCards)
	if !ok {
		return move(engine.Fold), nil
	}
	cards := append(hole, community...)
	if len(cards) >= 5 {
		strength := postflopStrength(cards)
		odds := potOdds(view)

		if strength >= 0.7 {
			if contains(view.PossibleActions, engine.Raise) {
				return raiseMove(view), nil
			}
			return move(engine.Call), nil
		}
		if strength >= 0.4 {
			if odds > 0.3 {
				return move(engine.Call), nil
			}
			if contains(view.PossibleActions, engine.Check) {
				return move(engine.Check), nil
			}
		}
		if strength >= 0.2 {
			if contains(view.PossibleActions, engine.Check) {
				return move(engine.Check), nil
			}
			if odds > 0.5 {
				return move(engine.Call), nil
			}
		}
	}

	if hasDraw(cards) {
		if potOdds(view) > 0.25 {
			return move(engine.Call), nil
		}
		if contains(view.PossibleActions, engine.Check) {
			return move(engine.Check), nil
		}
	}

	if contains(view.PossibleActions, engine.Check) {
		return move(engine.Check), nil
	}
	return move(engine.Fold), nil
}

func (b *solidBot) MatchStarted(engine.MatchInfo) {}
func (b *solidBot) MatchEnded(engine.MatchResult) {}
