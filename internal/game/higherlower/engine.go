// Package higherlower implements the two-seat guessing duel. Both seats
// share a single card stream: each turn the acting seat predicts whether
// the next card outranks the current one, and the dealt card becomes the
// new current card for whoever acts next.
package higherlower

import (
	"fmt"

	"github.com/cardroomhq/cardroom/internal/deck"
	"github.com/cardroomhq/cardroom/internal/engine"
)

// GameType is the registry name for this variant.
const GameType = "higher-lower"

const (
	resultCorrect      = "correct"
	resultIncorrect    = "incorrect"
	resultTie          = "tie"
	resultDisqualified = "disqualified"
)

func init() {
	engine.Register(GameType, New)
}

type player struct {
	seat      engine.Seat
	score     int
	correct   int
	incorrect int
	ties      int
	dqs       int
}

// Game is one higher-lower match.
type Game struct {
	p         engine.Params
	shoe      *deck.Shoe
	current   deck.Card
	players   []*player
	turn      int
	round     int
	maxRounds int
	over      bool
	winner    string
	history   []engine.RoundRecord
}

// New constructs a higher-lower match for exactly two seats.
func New(p engine.Params) (engine.Engine, error) {
	if len(p.Seats) != 2 {
		return nil, fmt.Errorf("%w: higher-lower seats exactly 2, got %d", engine.ErrTooFewSeats, len(p.Seats))
	}
	return newGame(p, deck.NewShoe(1, p.RNG))
}

func newGame(p engine.Params, shoe *deck.Shoe) (*Game, error) {
	first, err := shoe.Deal()
	if err != nil {
		return nil, err
	}
	maxRounds := p.Settings.GuessRounds
	if maxRounds <= 0 {
		maxRounds = engine.DefaultSettings().GuessRounds
	}
	g := &Game{
		p:         p,
		shoe:      shoe,
		current:   first,
		round:     1,
		maxRounds: maxRounds,
	}
	for _, seat := range p.Seats {
		g.players = append(g.players, &player{seat: seat})
	}
	return g, nil
}

// PlayerPublic is the per-seat scoreboard visible to every bot.
type PlayerPublic struct {
	Name              string `json:"name"`
	Score             int    `json:"score"`
	CorrectGuesses    int    `json:"correctGuesses"`
	IncorrectGuesses  int    `json:"incorrectGuesses"`
	Ties              int    `json:"ties"`
	Disqualifications int    `json:"disqualifications"`
}

// View is the redacted state handed to the acting bot. The undealt shoe
// is never exposed, only its size.
type View struct {
	CurrentCard  string         `json:"currentCard"`
	CurrentValue int            `json:"currentValue"`
	Round        int            `json:"round"`
	MaxRounds    int            `json:"maxRounds"`
	CardsLeft    int            `json:"cardsLeft"`
	Players      []PlayerPublic `json:"players"`
}

// GameType implements engine.View.
func (View) GameType() string { return GameType }

// PlayerView implements engine.Engine. Both seats see the same state.
func (g *Game) PlayerView(seat int) engine.View {
	v := View{
		CurrentCard:  g.current.String(),
		CurrentValue: g.current.GuessValue(),
		Round:        g.round,
		MaxRounds:    g.maxRounds,
		CardsLeft:    g.shoe.Remaining(),
	}
	for _, pl := range g.players {
		v.Players = append(v.Players, PlayerPublic{
			Name:              pl.seat.Name,
			Score:             pl.score,
			CorrectGuesses:    pl.correct,
			IncorrectGuesses:  pl.incorrect,
			Ties:              pl.ties,
			Disqualifications: pl.dqs,
		})
	}
	return v
}

func validateGuess(m engine.Move) error {
	if m.Kind != engine.GuessHigher && m.Kind != engine.GuessLower {
		return fmt.Errorf("guess must be %q or %q", engine.GuessHigher, engine.GuessLower)
	}
	return nil
}

// checkGuess scores a guess against the revealed card. Equal values are a
// tie regardless of the guess.
func checkGuess(current, next deck.Card, guess string) string {
	switch {
	case next.GuessValue() == current.GuessValue():
		return resultTie
	case next.GuessValue() > current.GuessValue():
		if guess == engine.GuessHigher {
			return resultCorrect
		}
		return resultIncorrect
	default:
		if guess == engine.GuessLower {
			return resultCorrect
		}
		return resultIncorrect
	}
}

func scoreFor(result string) int {
	switch result {
	case resultCorrect:
		return 1
	case resultIncorrect:
		return -1
	case resultDisqualified:
		return -2
	default:
		return 0
	}
}

// playTurn resolves one seat's guess. A card is dealt even on a
// disqualified turn so the stream stays aligned for the other seat.
func (g *Game) playTurn() error {
	if g.over {
		return engine.ErrMatchOver
	}
	if g.shoe.Remaining() == 0 {
		g.finish()
		return nil
	}

	pl := g.players[g.turn]
	out := engine.SafeMove(g.p.Logger, pl.seat.Bot, g.PlayerView(g.turn), validateGuess, engine.Move{Kind: engine.GuessHigher})

	next, err := g.shoe.Deal()
	if err != nil {
		g.finish()
		return nil
	}

	var result string
	if out.Faulted {
		result = resultDisqualified
	} else {
		result = checkGuess(g.current, next, out.Move.Kind)
	}
	delta := scoreFor(result)

	pl.score += delta
	switch result {
	case resultCorrect:
		pl.correct++
	case resultIncorrect:
		pl.incorrect++
	case resultTie:
		pl.ties++
	case resultDisqualified:
		pl.dqs++
	}

	g.history = append(g.history, engine.RoundRecord{
		Round:        g.round,
		Player:       pl.seat.Name,
		Cards:        []string{g.current.String(), next.String()},
		Action:       out.Move.Kind,
		Result:       result,
		ScoreDelta:   float64(delta),
		Disqualified: out.Faulted,
		Reason:       out.Reason,
	})

	g.current = next
	g.turn = (g.turn + 1) % len(g.players)
	if g.turn == 0 {
		g.round++
	}
	if g.round > g.maxRounds {
		g.finish()
	}
	return nil
}

// finish closes the match and resolves the winner: highest score, then
// most correct guesses, then fewest incorrect guesses, then seat order.
func (g *Game) finish() {
	g.over = true

	best := g.players[0]
	for _, pl := range g.players[1:] {
		switch {
		case pl.score > best.score:
			best = pl
		case pl.score == best.score && pl.correct > best.correct:
			best = pl
		case pl.score == best.score && pl.correct == best.correct && pl.incorrect < best.incorrect:
			best = pl
		}
	}
	g.winner = best.seat.Name
}

// IsOver implements engine.Engine.
func (g *Game) IsOver() bool { return g.over }

// Result implements engine.Engine.
func (g *Game) Result() (*engine.MatchResult, error) {
	if !g.over {
		return nil, fmt.Errorf("higher-lower: match still in progress")
	}
	result := &engine.MatchResult{
		GameType:    GameType,
		Winner:      g.winner,
		TotalRounds: g.round - 1,
		History:     g.history,
	}
	for _, pl := range g.players {
		result.Players = append(result.Players, engine.PlayerResult{
			Name:              pl.seat.Name,
			Score:             float64(pl.score),
			Disqualifications: pl.dqs,
			Counters: map[string]int{
				"correctGuesses":   pl.correct,
				"incorrectGuesses": pl.incorrect,
				"ties":             pl.ties,
			},
		})
	}
	return result, nil
}

// PlayFullMatch implements engine.Engine.
func (g *Game) PlayFullMatch() (*engine.MatchResult, error) {
	for !g.over {
		if err := g.playTurn(); err != nil {
			return nil, err
		}
	}
	return g.Result()
}
