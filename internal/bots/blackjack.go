package bots

import (
	rand "math/rand/v2"

	"github.com/cardroomhq/cardroom/internal/deck"
	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/game/blackjack"
)

// upCardValue scores the bank's up card, assuming a ten when the card is
// missing or unreadable.
func upCardValue(s string) int {
	c, err := deck.Parse(s)
	if err != nil {
		return 10
	}
	return c.BlackjackValue()
}

func among(value int, candidates ...int) bool {
	for _, c := range candidates {
		if c == value {
			return true
		}
	}
	return false
}

// basicStrategyBot follows the standard soft/hard strategy charts against
// the bank's up card.
type basicStrategyBot struct{}

func newBasicStrategyBot(*rand.Rand) engine.Bot { return basicStrategyBot{} }

func (basicStrategyBot) Name() string { return "basic-strategy-bot" }

func (basicStrategyBot) Act(v engine.View) (engine.Move, error) {
	view, ok := v.(blackjack.View)
	if !ok {
		return engine.Move{Kind: engine.Stand}, nil
	}

	value := view.PlayerValue
	up := upCardValue(view.BankUpCard)
	canDouble := len(view.PlayerHand) == 2

	if view.PlayerIsSoft {
		return softAction(value, up, canDouble), nil
	}
	return hardAction(value, up, canDouble), nil
}

func (basicStrategyBot) MatchStarted(engine.MatchInfo) {}
func (basicStrategyBot) MatchEnded(engine.MatchResult) {}

func softAction(value, up int, canDouble bool) engine.Move {
	switch {
	case value >= 19:
		return engine.Move{Kind: engine.Stand}
	case value == 18:
		if among(up, 2, 3, 4, 5, 6) {
			if canDouble {
				return engine.Move{Kind: engine.Double}
			}
			return engine.Move{Kind: engine.Stand}
		}
		if among(up, 7, 8) {
			return engine.Move{Kind: engine.Stand}
		}
		return engine.Move{Kind: engine.Hit}
	case value == 17 && canDouble && among(up, 3, 4, 5, 6):
		return engine.Move{Kind: engine.Double}
	case value >= 15 && canDouble && among(up, 4, 5, 6):
		return engine.Move{Kind: engine.Double}
	case value >= 13 && canDouble && among(up, 5, 6):
		return engine.Move{Kind: engine.Double}
	default:
		return engine.Move{Kind: engine.Hit}
	}
}

func hardAction(value, up int, canDouble bool) engine.Move {
	switch {
	case value >= 17:
		return engine.Move{Kind: engine.Stand}
	case value >= 13:
		if among(up, 2, 3, 4, 5, 6) {
			return engine.Move{Kind: engine.Stand}
		}
		return engine.Move{Kind: engine.Hit}
	case value == 12:
		if among(up, 4, 5, 6) {
			return engine.Move{Kind: engine.Stand}
		}
		return engine.Move{Kind: engine.Hit}
	case value == 11 && canDouble:
		return engine.Move{Kind: engine.Double}
	case value == 10 && canDouble && up != 10 && up != 11:
		return engine.Move{Kind: engine.Double}
	case value == 9 && canDouble && among(up, 3, 4, 5, 6):
		return engine.Move{Kind: engine.Double}
	default:
		return engine.Move{Kind: engine.Hit}
	}
}

// aggressiveBot doubles every 9 through 11 and keeps hitting through 18.
type aggressiveBot struct{}

func newAggressiveBot(*rand.Rand) engine.Bot { return aggressiveBot{} }

func (aggressiveBot) Name() string { return "aggressive-bot" }

func (aggressiveBot) Act(v engine.View) (engine.Move, error) {
	view, ok := v.(blackjack.View)
	if !ok {
		return engine.Move{Kind: engine.Stand}, nil
	}

	value := view.PlayerValue
	switch {
	case value >= 19:
		return engine.Move{Kind: engine.Stand}, nil
	case len(view.PlayerHand) == 2 && value >= 9 && value <= 11:
		return engine.Move{Kind: engine.Double}, nil
	case value <= 16:
		return engine.Move{Kind: engine.Hit}, nil
	default:
		return engine.Move{Kind: engine.Stand}, nil
	}
}

func (aggressiveBot) MatchStarted(engine.MatchInfo) {}
func (aggressiveBot) MatchEnded(engine.MatchResult) {}

// conservativeBot plays the bank's own rule and never doubles.
type conservativeBot struct{}

func newConservativeBot(*rand.Rand) engine.Bot { return conservativeBot{} }

func (conservativeBot) Name() string { return "conservative-bot" }

func (conservativeBot) Act(v engine.View) (engine.Move, error) {
	view, ok := v.(blackjack.View)
	if !ok {
		return engine.Move{Kind: engine.Stand}, nil
	}
	if view.PlayerValue >= 17 {
		return engine.Move{Kind: engine.Stand}, nil
	}
	return engine.Move{Kind: engine.Hit}, nil
}

func (conservativeBot) MatchStarted(engine.MatchInfo) {}
func (conservativeBot) MatchEnded(engine.MatchResult) {}

// bankBot holds the bank seat. The engine plays the bank's fixed drawing
// rule itself, so this bot is never asked to act; if it ever is, it
// answers with the same rule.
type bankBot struct{}

func newBankBot(*rand.Rand) engine.Bot { return bankBot{} }

func (bankBot) Name() string { return blackjack.BankName }

func (bankBot) Act(v engine.View) (engine.Move, error) {
	if view, ok := v.(blackjack.View); ok && view.PlayerValue < 17 {
		return engine.Move{Kind: engine.Hit}, nil
	}
	return engine.Move{Kind: engine.Stand}, nil
}

func (bankBot) MatchStarted(engine.MatchInfo) {}
func (bankBot) MatchEnded(engine.MatchResult) {}
