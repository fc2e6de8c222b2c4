// Package blackjack implements the free-for-all blackjack table. Every
// non-bank seat plays its own hand against a shared bank seat; the bank
// never makes bot decisions, it follows the fixed house rule of hitting
// below 17.
package blackjack

import (
	"errors"
	"fmt"

	"github.com/cardroomhq/cardroom/internal/deck"
	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/evaluator"
)

// GameType is the registry name for this variant.
const GameType = "blackjack"

// BankName is the reserved participant name that seats the bank. A
// blackjack match cannot run without it.
const BankName = "bank-bot"

// ErrMissingBank is returned when no seat is named BankName.
var ErrMissingBank = errors.New("blackjack: no bank seat (add a participant named \"bank-bot\")")

const (
	resultWin       = "win"
	resultLoss      = "loss"
	resultTie       = "tie"
	resultBlackjack = "blackjack"

	// shoeReserve stops the match before a hand could run the shoe dry.
	shoeReserve = 10
)

func init() {
	engine.Register(GameType, New)
}

type player struct {
	seat   engine.Seat
	isBank bool

	hand       []deck.Card
	bet        int
	lastAction string
	standing   bool
	bust       bool
	natural    bool
	dqThisHand bool
	dqReason   string

	score       float64
	handsPlayed int
	handsWon    int
	handsLost   int
	handsTied   int
	blackjacks  int
	busts       int
	dqs         int
}

// Game is one blackjack match.
type Game struct {
	p        engine.Params
	shoe     *deck.Shoe
	players  []*player
	bank     *player
	hand     int
	maxHands int
	bet      int
	phase    string
	acting   int
	over     bool
	winner   string
	history  []engine.RoundRecord
}

// New constructs a blackjack match. One seat must be named BankName; the
// shoe is sized for three cards per seat per hand.
func New(p engine.Params) (engine.Engine, error) {
	if len(p.Seats) < 2 {
		return nil, fmt.Errorf("%w: blackjack seats at least 2, got %d", engine.ErrTooFewSeats, len(p.Seats))
	}
	maxHands := p.Settings.BlackjackHands
	if maxHands <= 0 {
		maxHands = engine.DefaultSettings().BlackjackHands
	}
	decks := deck.DecksFor(len(p.Seats) * 3 * maxHands)
	return newGame(p, deck.NewShoe(decks, p.RNG))
}

func newGame(p engine.Params, shoe *deck.Shoe) (*Game, error) {
	maxHands := p.Settings.BlackjackHands
	if maxHands <= 0 {
		maxHands = engine.DefaultSettings().BlackjackHands
	}
	bet := p.Settings.BlackjackBet
	if bet <= 0 {
		bet = engine.DefaultSettings().BlackjackBet
	}
	g := &Game{
		p:        p,
		shoe:     shoe,
		hand:     1,
		maxHands: maxHands,
		bet:      bet,
		phase:    "dealing",
	}
	for _, seat := range p.Seats {
		pl := &player{seat: seat, isBank: seat.Name == BankName}
		g.players = append(g.players, pl)
		if pl.isBank {
			g.bank = pl
		}
	}
	if g.bank == nil {
		return nil, ErrMissingBank
	}
	return g, nil
}

// PlayerPublic is the per-seat scoreboard visible to every bot.
type PlayerPublic struct {
	Name              string  `json:"name"`
	Score             float64 `json:"score"`
	HandsPlayed       int     `json:"handsPlayed"`
	HandsWon          int     `json:"handsWon"`
	HandsLost         int     `json:"handsLost"`
	HandsTied         int     `json:"handsTied"`
	Blackjacks        int     `json:"blackjacks"`
	Busts             int     `json:"busts"`
	Disqualifications int     `json:"disqualifications"`
	IsBank            bool    `json:"isBank"`
}

// View is the redacted state handed to the acting bot: its own hand, the
// bank's up card, and the public scoreboard. The bank's hole card and the
// shoe stay hidden.
type View struct {
	Hand            int            `json:"hand"`
	MaxHands        int            `json:"maxHands"`
	Phase           string         `json:"phase"`
	CardsLeft       int            `json:"cardsLeft"`
	PlayerHand      []string       `json:"playerHand"`
	PlayerValue     int            `json:"playerValue"`
	PlayerIsSoft    bool           `json:"playerIsSoft"`
	BankUpCard      string         `json:"bankUpCard,omitempty"`
	PossibleActions []string       `json:"possibleActions"`
	Players         []PlayerPublic `json:"players"`
}

// GameType implements engine.View.
func (View) GameType() string { return GameType }

// PlayerView implements engine.Engine.
func (g *Game) PlayerView(seat int) engine.View {
	pl := g.players[seat]
	v := View{
		Hand:            g.hand,
		MaxHands:        g.maxHands,
		Phase:           g.phase,
		CardsLeft:       g.shoe.Remaining(),
		PlayerValue:     evaluator.BlackjackValue(pl.hand),
		PlayerIsSoft:    evaluator.IsSoft(pl.hand),
		PossibleActions: possibleActions(pl.hand),
	}
	for _, card := range pl.hand {
		v.PlayerHand = append(v.PlayerHand, card.String())
	}
	// The bank's second card is the up card.
	if len(g.bank.hand) > 1 {
		v.BankUpCard = g.bank.hand[1].String()
	}
	for _, other := range g.players {
		v.Players = append(v.Players, PlayerPublic{
			Name:              other.seat.Name,
			Score:             other.score,
			HandsPlayed:       other.handsPlayed,
			HandsWon:          other.handsWon,
			HandsLost:         other.handsLost,
			HandsTied:         other.handsTied,
			Blackjacks:        other.blackjacks,
			Busts:             other.busts,
			Disqualifications: other.dqs,
			IsBank:            other.isBank,
		})
	}
	return v
}

func possibleActions(hand []deck.Card) []string {
	actions := []string{engine.Hit, engine.Stand}
	if len(hand) == 2 {
		actions = append(actions, engine.Double)
		if evaluator.CanSplit(hand) {
			actions = append(actions, engine.Split)
		}
	}
	return actions
}

func validateAction(m engine.Move) error {
	switch m.Kind {
	case engine.Hit, engine.Stand, engine.Double, engine.Split:
		return nil
	}
	return fmt.Errorf("action must be hit, stand, double, or split")
}

// playHand runs one complete hand: deal, player decisions, bank draw,
// settlement.
func (g *Game) playHand() error {
	if g.over {
		return engine.ErrMatchOver
	}
	if g.shoe.Remaining() < shoeReserve {
		g.finish()
		return nil
	}

	for _, pl := range g.players {
		pl.hand = nil
		pl.bet = g.bet
		pl.lastAction = ""
		pl.standing = false
		pl.bust = false
		pl.natural = false
		pl.dqThisHand = false
		pl.dqReason = ""
	}

	g.phase = "dealing"
	if err := g.dealOpening(); err != nil {
		g.finish()
		return nil
	}

	g.phase = "playing"
	for i, pl := range g.players {
		if pl.isBank {
			continue
		}
		g.acting = i
		g.playSeat(pl, i)
	}

	g.phase = "bank-turn"
	g.bankDraw()

	g.settleHand()

	g.hand++
	if g.hand > g.maxHands {
		g.finish()
	}
	return nil
}

func (g *Game) dealOpening() error {
	for i := 0; i < 2; i++ {
		for _, pl := range g.players {
			card, err := g.shoe.Deal()
			if err != nil {
				return err
			}
			pl.hand = append(pl.hand, card)
		}
	}
	for _, pl := range g.players {
		pl.natural = evaluator.IsBlackjack(pl.hand)
	}
	return nil
}

// playSeat runs one seat's decisions to completion. A decision fault
// stands the seat and scores the hand as a bust; the seat plays the next
// hand normally.
func (g *Game) playSeat(pl *player, seat int) {
	if pl.natural {
		pl.standing = true
		return
	}

	for !pl.standing && !pl.bust {
		out := engine.SafeMove(g.p.Logger, pl.seat.Bot, g.PlayerView(seat), validateAction, engine.Move{Kind: engine.Stand})
		if out.Faulted {
			pl.dqs++
			pl.dqThisHand = true
			pl.dqReason = out.Reason
			pl.standing = true
			pl.bust = true
			return
		}
		g.applyAction(pl, out.Move.Kind)
	}
}

func (g *Game) applyAction(pl *player, action string) {
	pl.lastAction = action

	switch action {
	case engine.Hit:
		g.drawTo(pl)
		if evaluator.IsBust(pl.hand) {
			pl.bust = true
			pl.standing = true
		}

	case engine.Stand:
		pl.standing = true

	case engine.Double:
		if len(pl.hand) != 2 {
			// Late double is just a stand.
			pl.standing = true
			return
		}
		pl.bet *= 2
		g.drawTo(pl)
		if evaluator.IsBust(pl.hand) {
			pl.bust = true
		}
		pl.standing = true

	case engine.Split:
		// Split plays as a hit at this table; full multi-hand splits
		// are not offered.
		g.drawTo(pl)
		if evaluator.IsBust(pl.hand) {
			pl.bust = true
			pl.standing = true
		}
	}
}

func (g *Game) drawTo(pl *player) {
	card, err := g.shoe.Deal()
	if err != nil {
		// Reserve check keeps this from happening mid-hand; stand the
		// seat if it does.
		pl.standing = true
		return
	}
	pl.hand = append(pl.hand, card)
}

// bankDraw plays the bank's fixed rule: hit below 17, stand on 17 or
// more, soft or hard.
func (g *Game) bankDraw() {
	for evaluator.BlackjackValue(g.bank.hand) < 17 {
		card, err := g.shoe.Deal()
		if err != nil {
			break
		}
		g.bank.hand = append(g.bank.hand, card)
	}
	g.bank.bust = evaluator.IsBust(g.bank.hand)
}

func (g *Game) settleHand() {
	bankValue := evaluator.BlackjackValue(g.bank.hand)
	bankCards := cardStrings(g.bank.hand)

	g.history = append(g.history, engine.RoundRecord{
		Round:  g.hand,
		Player: g.bank.seat.Name,
		Cards:  bankCards,
		Result: bankResult(g.bank),
	})

	for _, pl := range g.players {
		if pl.isBank {
			continue
		}

		playerValue := evaluator.BlackjackValue(pl.hand)
		var result string
		var winnings float64

		pl.handsPlayed++
		switch {
		case pl.bust || pl.dqThisHand:
			result = resultLoss
			winnings = -float64(pl.bet)
			pl.handsLost++
			pl.busts++
		case pl.natural && !evaluator.IsBlackjack(g.bank.hand):
			result = resultBlackjack
			winnings = 1.5 * float64(pl.bet)
			pl.handsWon++
			pl.blackjacks++
		case g.bank.bust:
			result = resultWin
			winnings = float64(pl.bet)
			pl.handsWon++
		case playerValue > bankValue:
			result = resultWin
			winnings = float64(pl.bet)
			pl.handsWon++
		case playerValue == bankValue:
			result = resultTie
			pl.handsTied++
		default:
			result = resultLoss
			winnings = -float64(pl.bet)
			pl.handsLost++
		}
		pl.score += winnings

		g.history = append(g.history, engine.RoundRecord{
			Round:        g.hand,
			Player:       pl.seat.Name,
			Cards:        cardStrings(pl.hand),
			Action:       pl.lastAction,
			Result:       result,
			ScoreDelta:   winnings,
			Disqualified: pl.dqThisHand,
			Reason:       pl.dqReason,
		})
	}
}

func bankResult(bank *player) string {
	if bank.bust {
		return "bust"
	}
	return "stand"
}

func cardStrings(hand []deck.Card) []string {
	out := make([]string, len(hand))
	for i, c := range hand {
		out[i] = c.String()
	}
	return out
}

// finish closes the match. The bank never wins; among the other seats:
// highest score, then most hands won, then most blackjacks, then fewest
// busts, then seat order.
func (g *Game) finish() {
	g.over = true

	var best *player
	for _, pl := range g.players {
		if pl.isBank {
			continue
		}
		if best == nil {
			best = pl
			continue
		}
		switch {
		case pl.score > best.score:
			best = pl
		case pl.score == best.score && pl.handsWon > best.handsWon:
			best = pl
		case pl.score == best.score && pl.handsWon == best.handsWon && pl.blackjacks > best.blackjacks:
			best = pl
		case pl.score == best.score && pl.handsWon == best.handsWon && pl.blackjacks == best.blackjacks && pl.busts < best.busts:
			best = pl
		}
	}
	if best != nil {
		g.winner = best.seat.Name
	}
}

// IsOver implements engine.Engine.
func (g *Game) IsOver() bool { return g.over }

// Result implements engine.Engine. The bank seat is excluded; it is the
// house, not a contestant.
func (g *Game) Result() (*engine.MatchResult, error) {
	if !g.over {
		return nil, fmt.Errorf("blackjack: match still in progress")
	}
	result := &engine.MatchResult{
		GameType:    GameType,
		Winner:      g.winner,
		TotalRounds: g.hand - 1,
		History:     g.history,
	}
	for _, pl := range g.players {
		if pl.isBank {
			continue
		}
		result.Players = append(result.Players, engine.PlayerResult{
			Name:              pl.seat.Name,
			Score:             pl.score,
			RoundWins:         pl.handsWon,
			RoundLosses:       pl.handsLost,
			RoundTies:         pl.handsTied,
			Disqualifications: pl.dqs,
			Counters: map[string]int{
				"handsPlayed": pl.handsPlayed,
				"blackjacks":  pl.blackjacks,
				"busts":       pl.busts,
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
