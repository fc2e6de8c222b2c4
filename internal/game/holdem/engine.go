// Package holdem implements fixed-limit Texas hold'em for N seats. It is
// the heaviest variant: a multi-phase betting state machine with blinds,
// capped raises, all-in handling, and 7-card showdown evaluation.
package holdem

import (
	"fmt"
	"sort"

	"github.com/cardroomhq/cardroom/internal/deck"
	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/evaluator"
)

// GameType is the registry name for this variant.
const GameType = "texas-holdem-many"

const (
	phasePreflop = "preflop"
	phaseFlop    = "flop"
	phaseTurn    = "turn"
	phaseRiver   = "river"

	// shoeDecks covers the worst case of a full 10-hand match.
	shoeDecks = 3
	// shoeReserve ends the match before a hand could run the shoe dry.
	shoeReserve = 10
)

func init() {
	engine.Register(GameType, New)
}

type player struct {
	seat     engine.Seat
	position int

	chips    int
	hole     []deck.Card
	roundBet int
	folded   bool
	allIn    bool

	handsWon      int
	handsLost     int
	handsTied     int
	totalWinnings int
	dqs           int
}

// Game is one hold'em match.
type Game struct {
	p    engine.Params
	shoe *deck.Shoe

	players []*player // seats still holding chips
	busted  []*player // eliminated seats, kept for the final result

	community  []deck.Card
	pot        int
	currentBet int
	raises     int
	phase      string
	dealer     int
	acting     int

	hand     int
	maxHands int

	smallBlind int
	bigBlind   int
	smallBet   int
	bigBet     int
	maxRaises  int

	// dropped accumulates remainder chips left unallocated by tied pot
	// splits. They are tracked so chip conservation stays checkable.
	dropped int

	over    bool
	history []engine.RoundRecord
}

// New constructs a hold'em match for two or more seats.
func New(p engine.Params) (engine.Engine, error) {
	if len(p.Seats) < 2 {
		return nil, fmt.Errorf("%w: texas-holdem-many seats at least 2, got %d", engine.ErrTooFewSeats, len(p.Seats))
	}
	return newGame(p, deck.NewShoe(shoeDecks, p.RNG))
}

func newGame(p engine.Params, shoe *deck.Shoe) (*Game, error) {
	def := engine.DefaultSettings()
	pick := func(v, fallback int) int {
		if v > 0 {
			return v
		}
		return fallback
	}
	g := &Game{
		p:          p,
		shoe:       shoe,
		phase:      phasePreflop,
		hand:       1,
		maxHands:   pick(p.Settings.HoldemHands, def.HoldemHands),
		smallBlind: pick(p.Settings.SmallBlind, def.SmallBlind),
		bigBlind:   pick(p.Settings.BigBlind, def.BigBlind),
		smallBet:   pick(p.Settings.SmallBet, def.SmallBet),
		bigBet:     pick(p.Settings.BigBet, def.BigBet),
		maxRaises:  pick(p.Settings.MaxRaises, def.MaxRaises),
	}
	chips := pick(p.Settings.StartingChips, def.StartingChips)
	for i, seat := range p.Seats {
		g.players = append(g.players, &player{seat: seat, position: i, chips: chips})
	}
	return g, nil
}

// playHand runs one complete hand: blinds, hole cards, the four betting
// phases, and showdown settlement.
func (g *Game) playHand() error {
	if g.over {
		return engine.ErrMatchOver
	}
	if g.shoe.Remaining() < shoeReserve {
		g.finish()
		return nil
	}

	g.resetForHand()
	if g.over {
		return nil
	}

	g.postBlinds()
	if err := g.dealHole(); err != nil {
		g.finish()
		return nil
	}

	g.bettingRound(phasePreflop)
	phases := []struct {
		name  string
		cards int
	}{
		{phaseFlop, 3},
		{phaseTurn, 1},
		{phaseRiver, 1},
	}
	for _, ph := range phases {
		if g.activeCount() <= 1 {
			break
		}
		if err := g.dealCommunity(ph.cards); err != nil {
			g.finish()
			return nil
		}
		g.bettingRound(ph.name)
	}

	g.showdown()

	g.dealer = (g.dealer + 1) % len(g.players)
	g.hand++
	if g.hand > g.maxHands {
		g.finish()
	}
	return nil
}

// resetForHand removes busted seats and clears per-hand state. The match
// ends immediately when fewer than two funded seats remain.
func (g *Game) resetForHand() {
	var alive []*player
	for _, pl := range g.players {
		if pl.chips > 0 {
			alive = append(alive, pl)
		} else {
			g.busted = append(g.busted, pl)
		}
	}
	g.players = alive

	if len(g.players) < 2 {
		g.finish()
		return
	}
	if g.dealer >= len(g.players) {
		g.dealer %= len(g.players)
	}

	for _, pl := range g.players {
		pl.hole = nil
		pl.roundBet = 0
		pl.folded = false
		pl.allIn = false
	}
	g.community = nil
	g.pot = 0
	g.currentBet = 0
	g.raises = 0
	g.phase = phasePreflop
}

// postBlinds takes the forced bets from the two seats after the button. A
// short stack posts what it has and is all-in.
func (g *Game) postBlinds() {
	n := len(g.players)
	sb := g.players[(g.dealer+1)%n]
	bb := g.players[(g.dealer+2)%n]

	sbAmount := min(g.smallBlind, sb.chips)
	sb.chips -= sbAmount
	sb.roundBet = sbAmount
	g.pot += sbAmount
	if sb.chips == 0 {
		sb.allIn = true
	}

	bbAmount := min(g.bigBlind, bb.chips)
	bb.chips -= bbAmount
	bb.roundBet = bbAmount
	g.pot += bbAmount
	if bb.chips == 0 {
		bb.allIn = true
	}
	g.currentBet = bbAmount

	g.acting = ((g.dealer + 2) % n + 1) % n
}

func (g *Game) dealHole() error {
	for i := 0; i < 2; i++ {
		for _, pl := range g.players {
			card, err := g.shoe.Deal()
			if err != nil {
				return err
			}
			pl.hole = append(pl.hole, card)
		}
	}
	return nil
}

// dealCommunity burns one card and reveals n.
func (g *Game) dealCommunity(n int) error {
	if _, err := g.shoe.Deal(); err != nil {
		return err
	}
	cards, err := g.shoe.DealN(n)
	if err != nil {
		return err
	}
	g.community = append(g.community, cards...)
	return nil
}

func (g *Game) activeCount() int {
	n := 0
	for _, pl := range g.players {
		if !pl.folded {
			n++
		}
	}
	return n
}

func (g *Game) active() []*player {
	var out []*player
	for _, pl := range g.players {
		if !pl.folded {
			out = append(out, pl)
		}
	}
	return out
}

// showdown settles the pot. One remaining seat takes it uncontested;
// otherwise the best 5-of-7 hands split it evenly, floor division, with
// any remainder chip left unallocated.
func (g *Game) showdown() {
	active := g.active()

	if len(active) == 1 {
		winner := active[0]
		winner.chips += g.pot
		winner.totalWinnings += g.pot
		winner.handsWon++
		for _, pl := range g.players {
			if pl != winner {
				pl.handsLost++
			}
		}
		g.history = append(g.history, engine.RoundRecord{
			Round:    g.hand,
			Cards:    cardStrings(g.community),
			Result:   "uncontested",
			Winners:  []string{winner.seat.Name},
			Winnings: map[string]int{winner.seat.Name: g.pot},
		})
		g.pot = 0
		return
	}

	evals := make(map[*player]evaluator.Eval, len(active))
	for _, pl := range active {
		cards := append(append([]deck.Card{}, pl.hole...), g.community...)
		_, eval, err := evaluator.BestOfSeven(cards)
		if err != nil {
			// Short community cards only happen after shoe exhaustion;
			// score the hand as the weakest possible.
			eval = evaluator.Eval{}
		}
		evals[pl] = eval
		g.history = append(g.history, engine.RoundRecord{
			Round:  g.hand,
			Player: pl.seat.Name,
			Cards:  cardStrings(pl.hole),
			Result: eval.Name,
		})
	}

	best := evals[active[0]]
	for _, pl := range active[1:] {
		if evals[pl].Beats(best) {
			best = evals[pl]
		}
	}
	var winners []*player
	for _, pl := range active {
		if evals[pl].Ties(best) {
			winners = append(winners, pl)
		}
	}

	share := g.pot / len(winners)
	remainder := g.pot - share*len(winners)
	winnings := make(map[string]int, len(winners))
	var names []string
	for _, w := range winners {
		w.chips += share
		w.totalWinnings += share
		winnings[w.seat.Name] = share
		names = append(names, w.seat.Name)
	}
	if remainder > 0 {
		g.dropped += remainder
		g.p.Logger.Debug("odd chips left unallocated by pot split", "hand", g.hand, "chips", remainder)
	}

	if len(winners) == 1 {
		winners[0].handsWon++
	} else {
		for _, w := range winners {
			w.handsTied++
		}
	}
	for _, pl := range g.players {
		if !contains(winners, pl) {
			pl.handsLost++
		}
	}

	g.history = append(g.history, engine.RoundRecord{
		Round:    g.hand,
		Cards:    cardStrings(g.community),
		Result:   "showdown",
		Winners:  names,
		Winnings: winnings,
	})
	g.pot = 0
}

func contains(players []*player, target *player) bool {
	for _, pl := range players {
		if pl == target {
			return true
		}
	}
	return false
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func (g *Game) finish() {
	g.over = true
}

// IsOver implements engine.Engine.
func (g *Game) IsOver() bool { return g.over }

// Result implements engine.Engine. Seats rank by final chip count; busted
// seats are included at the bottom so every participant has a record.
func (g *Game) Result() (*engine.MatchResult, error) {
	if !g.over {
		return nil, fmt.Errorf("texas-holdem-many: match still in progress")
	}

	all := append(append([]*player{}, g.players...), g.busted...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].chips > all[j].chips })

	result := &engine.MatchResult{
		GameType:    GameType,
		TotalRounds: g.hand - 1,
		History:     g.history,
	}
	if len(all) > 0 {
		result.Winner = all[0].seat.Name
	}
	for rank, pl := range all {
		result.Players = append(result.Players, engine.PlayerResult{
			Name:              pl.seat.Name,
			Score:             float64(pl.chips),
			RoundWins:         pl.handsWon,
			RoundLosses:       pl.handsLost,
			RoundTies:         pl.handsTied,
			Disqualifications: pl.dqs,
			Counters: map[string]int{
				"finalChips":    pl.chips,
				"totalWinnings": pl.totalWinnings,
				"position":      rank + 1,
			},
		})
	}
	return result, nil
}

// PlayFullMatch implements engine.Engine.
func (g *Game) PlayFullMatch() (*engine.MatchResult, error) {
	for !g.over {
		if err := g.playHand(); err != nil {
			return nil, err
		}
	}
	return g.Result()
}
