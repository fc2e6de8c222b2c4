// Package higherlowermany implements the multi-seat guessing game played
// as a single free-for-all table. Seats take turns against one shared
// card stream; at the end of every round the best guess outcome wins
// credits from everyone who did worse.
package higherlowermany

import (
	"fmt"

	"github.com/cardroomhq/cardroom/internal/deck"
	"github.com/cardroomhq/cardroom/internal/engine"
)

// GameType is the registry name for this variant.
const GameType = "higher-lower-many"

const (
	resultCorrect      = "correct"
	resultIncorrect    = "incorrect"
	resultTie          = "tie"
	resultDisqualified = "disqualified"

	roundStake = 100
)

func init() {
	engine.Register(GameType, New)
}

type player struct {
	seat        engine.Seat
	credits     int
	correct     int
	incorrect   int
	ties        int
	dqs         int
	roundWins   int
	roundLosses int
	roundTies   int
}

// turnOutcome is one seat's contribution to a round, kept until the whole
// round settles.
type turnOutcome struct {
	player *player
	score  int // +1 correct, 0 tie, -1 incorrect, -2 disqualified
}

// Game is one higher-lower-many match.
type Game struct {
	p         engine.Params
	shoe      *deck.Shoe
	current   deck.Card
	players   []*player
	turn      int
	round     int
	maxRounds int
	pending   []turnOutcome
	over      bool
	winner    string
	history   []engine.RoundRecord
}

// New constructs a free-for-all guessing match. The shoe is sized for the
// worst case of one card per seat per round plus the opening card.
func New(p engine.Params) (engine.Engine, error) {
	if len(p.Seats) < 2 {
		return nil, fmt.Errorf("%w: higher-lower-many seats at least 2, got %d", engine.ErrTooFewSeats, len(p.Seats))
	}
	maxRounds := p.Settings.GuessManyRounds
	if maxRounds <= 0 {
		maxRounds = engine.DefaultSettings().GuessManyRounds
	}
	decks := deck.DecksFor(len(p.Seats)*maxRounds + 1)
	return newGame(p, deck.NewShoe(decks, p.RNG))
}

func newGame(p engine.Params, shoe *deck.Shoe) (*Game, error) {
	first, err := shoe.Deal()
	if err != nil {
		return nil, err
	}
	maxRounds := p.Settings.GuessManyRounds
	if maxRounds <= 0 {
		maxRounds = engine.DefaultSettings().GuessManyRounds
	}
	credits := p.Settings.StartingCredits
	if credits <= 0 {
		credits = engine.DefaultSettings().StartingCredits
	}
	g := &Game{
		p:         p,
		shoe:      shoe,
		current:   first,
		round:     1,
		maxRounds: maxRounds,
	}
	for _, seat := range p.Seats {
		g.players = append(g.players, &player{seat: seat, credits: credits})
	}
	return g, nil
}

// PlayerPublic is the per-seat scoreboard visible to every bot.
type PlayerPublic struct {
	Name              string `json:"name"`
	Credits           int    `json:"credits"`
	CorrectGuesses    int    `json:"correctGuesses"`
	IncorrectGuesses  int    `json:"incorrectGuesses"`
	Ties              int    `json:"ties"`
	Disqualifications int    `json:"disqualifications"`
	RoundWins         int    `json:"roundWins"`
	RoundLosses       int    `json:"roundLosses"`
	RoundTies         int    `json:"roundTies"`
}

// View is the redacted state handed to the acting bot.
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

// PlayerView implements engine.Engine. All seats see the same state.
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
			Credits:           pl.credits,
			CorrectGuesses:    pl.correct,
			IncorrectGuesses:  pl.incorrect,
			Ties:              pl.ties,
			Disqualifications: pl.dqs,
			RoundWins:         pl.roundWins,
			RoundLosses:       pl.roundLosses,
			RoundTies:         pl.roundTies,
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

func guessScore(result string) int {
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

// playTurn resolves one seat's guess and, when the round is complete,
// settles credits for the whole round.
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
	score := guessScore(result)

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
	g.pending = append(g.pending, turnOutcome{player: pl, score: score})

	g.history = append(g.history, engine.RoundRecord{
		Round:        g.round,
		Player:       pl.seat.Name,
		Cards:        []string{g.current.String(), next.String()},
		Action:       out.Move.Kind,
		Result:       result,
		ScoreDelta:   float64(score),
		Disqualified: out.Faulted,
		Reason:       out.Reason,
	})

	g.current = next
	g.turn = (g.turn + 1) % len(g.players)
	if g.turn == 0 {
		g.settleRound()
		g.round++
	}
	if g.round > g.maxRounds {
		g.finish()
	}
	return nil
}

// settleRound compares guess outcomes across the table. A sole best
// outcome wins the round stake; everyone below the best loses it; joint
// best is a round tie and moves no credits.
func (g *Game) settleRound() {
	if len(g.pending) == 0 {
		return
	}

	best := g.pending[0].score
	for _, o := range g.pending[1:] {
		if o.score > best {
			best = o.score
		}
	}

	winners := 0
	for _, o := range g.pending {
		if o.score == best {
			winners++
		}
	}

	for _, o := range g.pending {
		switch {
		case o.score < best:
			o.player.credits -= roundStake
			o.player.roundLosses++
		case winners == 1:
			o.player.credits += roundStake
			o.player.roundWins++
		default:
			o.player.roundTies++
		}
	}
	g.pending = g.pending[:0]
}

// finish closes the match: most credits, then most round wins, then
// fewest round losses, then seat order.
func (g *Game) finish() {
	g.over = true

	best := g.players[0]
	for _, pl := range g.players[1:] {
		switch {
		case pl.credits > best.credits:
			best = pl
		case pl.credits == best.credits && pl.roundWins > best.roundWins:
			best = pl
		case pl.credits == best.credits && pl.roundWins == best.roundWins && pl.roundLosses < best.roundLosses:
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
		return nil, fmt.Errorf("higher-lower-many: match still in progress")
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
			Score:             float64(pl.credits),
			RoundWins:         pl.roundWins,
			RoundLosses:       pl.roundLosses,
			RoundTies:         pl.roundTies,
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
