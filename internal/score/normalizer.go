// Package score maps heterogeneous raw match results onto standings
// scores. Two policies exist side by side: bounded normalization onto
// [-1, +1] with a per-variant linear scale, and raw passthrough in the
// variant's native unit. Every shipped variant currently uses raw
// passthrough; the bounded formulas remain the contract for variants
// that opt back in.
package score

import (
	"fmt"

	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/game/blackjack"
	"github.com/cardroomhq/cardroom/internal/game/higherlower"
	"github.com/cardroomhq/cardroom/internal/game/higherlowermany"
	"github.com/cardroomhq/cardroom/internal/game/holdem"
)

// Strategy maps one participant's match result onto a bounded score.
type Strategy func(r engine.PlayerResult) float64

// Normalizer resolves per-variant scoring strategies.
type Normalizer struct {
	strategies map[string]Strategy
	raw        map[string]bool
}

// NewNormalizer returns a normalizer covering every shipped variant.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		strategies: map[string]Strategy{
			higherlower.GameType:     normalizeHigherLower,
			higherlowermany.GameType: normalizeHigherLowerMany,
			blackjack.GameType:       normalizeBlackjack,
			holdem.GameType:          normalizeHoldem,
		},
		raw: map[string]bool{
			higherlower.GameType:     true,
			higherlowermany.GameType: true,
			blackjack.GameType:       true,
			holdem.GameType:          true,
		},
	}
}

// Score maps a participant's result for the given game type onto its
// standings score. Unknown game types are a configuration error, never a
// silent default.
func (n *Normalizer) Score(gameType string, r engine.PlayerResult) (float64, error) {
	strategy, ok := n.strategies[gameType]
	if !ok {
		return 0, fmt.Errorf("%w: no scoring strategy for %q", engine.ErrUnknownGameType, gameType)
	}
	if n.raw[gameType] {
		return r.Score, nil
	}
	return clamp(strategy(r)), nil
}

// Normalized applies the bounded [-1, +1] policy regardless of the raw
// passthrough flag. Disqualification always forces the floor.
func (n *Normalizer) Normalized(gameType string, r engine.PlayerResult) (float64, error) {
	strategy, ok := n.strategies[gameType]
	if !ok {
		return 0, fmt.Errorf("%w: no scoring strategy for %q", engine.ErrUnknownGameType, gameType)
	}
	return clamp(strategy(r)), nil
}

// Supports reports whether a game type has a scoring strategy.
func (n *Normalizer) Supports(gameType string) bool {
	_, ok := n.strategies[gameType]
	return ok
}

// normalizeHigherLower scales the raw point total: 10 rounds of +1 is the
// ceiling, 10 rounds of -2 the floor.
func normalizeHigherLower(r engine.PlayerResult) float64 {
	if r.Disqualifications > 0 {
		return -1.0
	}
	const maxScore = 10.0  // all correct
	const minScore = -20.0 // all disqualified
	if r.Score >= 0 {
		return r.Score / maxScore
	}
	return r.Score / -minScore
}

// normalizeHigherLowerMany scores by round record; the win/loss ratio is
// already on [-1, +1].
func normalizeHigherLowerMany(r engine.PlayerResult) float64 {
	if r.Disqualifications > 0 {
		return -1.0
	}
	total := r.RoundWins + r.RoundLosses + r.RoundTies
	if total == 0 {
		return 0.0
	}
	return float64(r.RoundWins-r.RoundLosses) / float64(total)
}

// normalizeBlackjack scales average winnings per hand between the natural
// payout (+15) and a lost base bet (-10).
func normalizeBlackjack(r engine.PlayerResult) float64 {
	if r.Disqualifications > 0 {
		return -1.0
	}
	hands := r.Counters["handsPlayed"]
	if hands == 0 {
		return 0.0
	}
	perHand := r.Score / float64(hands)
	if perHand >= 0 {
		return perHand / 15.0
	}
	return perHand / 10.0
}

// normalizeHoldem scales chip change from the 1000-chip start: tripling
// up is the ceiling, busting out the floor.
func normalizeHoldem(r engine.PlayerResult) float64 {
	if r.Disqualifications > 0 {
		return -1.0
	}
	change := r.Score - 1000
	if change >= 0 {
		return change / 2000.0
	}
	return change / 1000.0
}

func clamp(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < -1.0 {
		return -1.0
	}
	return v
}
