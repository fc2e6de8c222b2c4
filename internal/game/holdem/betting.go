package holdem

import (
	"fmt"

	"github.com/cardroomhq/cardroom/internal/engine"
)

// bettingRound replays the turn-order loop for one phase. The round is
// complete when one seat remains, every non-all-in seat has matched the
// current bet, or all remaining seats are all-in. A hard action bound
// guards against non-termination; tripping it means an engine bug, not a
// game rule, so it is logged loudly.
func (g *Game) bettingRound(phase string) {
	g.phase = phase
	g.raises = 0

	if phase != phasePreflop {
		g.currentBet = 0
		for _, pl := range g.players {
			pl.roundBet = 0
		}
		g.acting = (g.dealer + 1) % len(g.players)
	}

	if g.allActiveAllIn() {
		return
	}

	maxActions := len(g.players) * 10
	actions := 0
	skipped := 0

	for actions < maxActions {
		pl := g.players[g.acting]

		if pl.folded || pl.allIn {
			g.acting = (g.acting + 1) % len(g.players)
			skipped++
			if skipped >= len(g.players) {
				return
			}
			continue
		}
		skipped = 0

		out := engine.SafeMove(g.p.Logger, pl.seat.Bot, g.PlayerView(g.indexOf(pl)), g.validateAction, engine.Move{Kind: engine.Fold})
		if out.Faulted {
			pl.dqs++
		}
		g.applyAction(pl, out.Move)
		actions++

		g.history = append(g.history, engine.RoundRecord{
			Round:        g.hand,
			Player:       pl.seat.Name,
			Action:       actionLabel(out.Move),
			Result:       phase,
			Disqualified: out.Faulted,
			Reason:       out.Reason,
		})

		if g.activeCount() <= 1 {
			return
		}
		if g.allActiveAllIn() {
			return
		}
		if g.roundComplete() {
			return
		}

		g.acting = (g.acting + 1) % len(g.players)
	}

	g.p.Logger.Warn("betting round exceeded its action safety bound, forcing it closed",
		"hand", g.hand, "phase", phase, "bound", maxActions)
}

func actionLabel(m engine.Move) string {
	if m.Kind == engine.Raise && m.Amount > 0 {
		return fmt.Sprintf("%s %d", m.Kind, m.Amount)
	}
	return m.Kind
}

func (g *Game) indexOf(target *player) int {
	for i, pl := range g.players {
		if pl == target {
			return i
		}
	}
	return -1
}

// betSize returns the fixed-limit increment for the current phase: the
// small bet preflop and on the flop, the big bet on the turn and river.
func (g *Game) betSize() int {
	if g.phase == phasePreflop || g.phase == phaseFlop {
		return g.smallBet
	}
	return g.bigBet
}

// validateAction is the legal-action grammar for one decision. Raises
// must be exactly one increment and under the per-round cap; anything
// else disqualifies the decision.
func (g *Game) validateAction(m engine.Move) error {
	switch m.Kind {
	case engine.Fold, engine.Check, engine.Call:
		return nil
	case engine.Raise:
		if g.raises >= g.maxRaises {
			return fmt.Errorf("raise cap of %d reached this round", g.maxRaises)
		}
		if m.Amount != g.betSize() {
			return fmt.Errorf("raise must be exactly %d, got %d", g.betSize(), m.Amount)
		}
		return nil
	}
	return fmt.Errorf("action must be fold, check, call, or raise")
}

// applyAction mutates the pot and the acting seat. Checking into a live
// bet folds the seat; calls and raises clamp to the seat's stack and mark
// it all-in when the stack empties.
func (g *Game) applyAction(pl *player, m engine.Move) {
	callAmount := g.currentBet - pl.roundBet

	switch m.Kind {
	case engine.Fold:
		pl.folded = true

	case engine.Check:
		if callAmount > 0 {
			pl.folded = true
		}

	case engine.Call:
		amount := min(callAmount, pl.chips)
		pl.chips -= amount
		pl.roundBet += amount
		g.pot += amount
		if pl.chips == 0 {
			pl.allIn = true
		}

	case engine.Raise:
		target := g.currentBet + g.betSize()
		contribution := min(target-pl.roundBet, pl.chips)
		pl.chips -= contribution
		pl.roundBet += contribution
		g.pot += contribution
		g.currentBet = pl.roundBet
		g.raises++
		if pl.chips == 0 {
			pl.allIn = true
		}
	}
}

func (g *Game) allActiveAllIn() bool {
	active := g.active()
	if len(active) == 0 {
		return true
	}
	for _, pl := range active {
		if !pl.allIn {
			return false
		}
	}
	return true
}

func (g *Game) roundComplete() bool {
	active := g.active()
	if len(active) == 0 {
		return true
	}
	if g.allActiveAllIn() {
		return true
	}

	nonAllIn := 0
	for _, pl := range active {
		if !pl.allIn {
			nonAllIn++
		}
	}
	if nonAllIn == 1 && g.currentBet == 0 {
		return true
	}

	maxBet := 0
	for _, pl := range active {
		if pl.roundBet > maxBet {
			maxBet = pl.roundBet
		}
	}
	for _, pl := range active {
		if pl.roundBet != maxBet && !pl.allIn {
			return false
		}
	}
	return true
}
