// Package bots ships the built-in roster: the decision functions a
// tournament can seat without any external bot being registered. Each
// game type has its own roster; Resolve hands out a fresh instance per
// seat so stateful bots never share memory across matches.
package bots

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/game/blackjack"
	"github.com/cardroomhq/cardroom/internal/game/higherlower"
	"github.com/cardroomhq/cardroom/internal/game/higherlowermany"
	"github.com/cardroomhq/cardroom/internal/game/holdem"
)

// ErrUnknownBot is returned when no built-in matches the requested name.
var ErrUnknownBot = errors.New("bots: unknown bot")

type factory func(rng *rand.Rand) engine.Bot

var roster = map[string]map[string]factory{
	higherlower.GameType: {
		"random-bot":   newRandomGuesser,
		"counting-bot": newCountingBot,
	},
	higherlowermany.GameType: {
		"random-bot":   newRandomGuesser,
		"counting-bot": newCountingBot,
	},
	blackjack.GameType: {
		"basic-strategy-bot": newBasicStrategyBot,
		"aggressive-bot":     newAggressiveBot,
		"conservative-bot":   newConservativeBot,
		blackjack.BankName:   newBankBot,
	},
	holdem.GameType: {
		"random-bot":         newRandomPlayer,
		"tight-bot":          newTightBot,
		"loose-bot":          newLooseBot,
		"basic-strategy-bot": newSolidBot,
	},
}

// Resolver implements tournament.BotResolver over the built-in roster.
type Resolver struct {
	rng *rand.Rand
}

// NewResolver returns a resolver whose bots draw from the shared rng.
func NewResolver(rng *rand.Rand) *Resolver {
	return &Resolver{rng: rng}
}

// Resolve returns a fresh instance of the named bot for a game type.
func (r *Resolver) Resolve(gameType, botName string) (engine.Bot, error) {
	byName, ok := roster[gameType]
	if !ok {
		return nil, fmt.Errorf("%w: no roster for game type %q", ErrUnknownBot, gameType)
	}
	f, ok := byName[botName]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBot, botName, r.Discover(gameType))
	}
	return f(r.rng), nil
}

// Discover lists the built-in bot names for a game type, sorted.
func (r *Resolver) Discover(gameType string) []string {
	byName := roster[gameType]
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func contains(actions []string, want string) bool {
	for _, a := range actions {
		if a == want {
			return true
		}
	}
	return false
}
