// Package engine defines the contract every game variant implements and
// the bot-invocation discipline shared by all of them. Engines own their
// match state exclusively; bots only ever see redacted copies through the
// View types each variant defines.
package engine

import (
	"errors"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
)

// Typed failures surfaced to callers. Bot faults never appear here; they
// are absorbed by the invocation wrapper as disqualifications.
var (
	ErrUnknownGameType = errors.New("engine: unknown game type")
	ErrTooFewSeats     = errors.New("engine: not enough participants")
	ErrMatchOver       = errors.New("engine: match is already over")
)

// Move kinds across the variant action grammars.
const (
	GuessHigher = "higher"
	GuessLower  = "lower"

	Hit    = "hit"
	Stand  = "stand"
	Double = "double"
	Split  = "split"

	Fold  = "fold"
	Check = "check"
	Call  = "call"
	Raise = "raise"
)

// Move is a single bot decision. Amount is only meaningful for raises.
type Move struct {
	Kind   string `json:"kind"`
	Amount int    `json:"amount,omitempty"`
}

// View is a redacted, serializable projection of game state. Each variant
// defines its own concrete view type; bots switch on GameType.
type View interface {
	GameType() string
}

// MatchInfo is passed to bots when a match starts.
type MatchInfo struct {
	Tournament string   `json:"tournament"`
	GameType   string   `json:"gameType"`
	Opponents  []string `json:"opponents"`
}

// Bot is the decision function behind a seat. Implementations are
// untrusted: Act may panic, hang, or return garbage, and the engines must
// keep playing regardless (see SafeMove). The lifecycle notifications are
// best-effort; faults from them are logged and dropped.
type Bot interface {
	Name() string
	Act(view View) (Move, error)
	MatchStarted(info MatchInfo)
	MatchEnded(result MatchResult)
}

// Seat binds a participant name to its bot for one match.
type Seat struct {
	Name string
	Bot  Bot
}

// Settings carries the per-variant knobs. Variants read only the fields
// that apply to them; zero values fall back to the defaults below.
type Settings struct {
	GuessRounds     int // higher-lower rounds per match
	GuessManyRounds int // higher-lower-many rounds per match
	StartingCredits int // higher-lower-many opening balance

	BlackjackHands int // blackjack hands per match
	BlackjackBet   int // blackjack flat bet per hand

	HoldemHands   int // hold'em hands per match
	SmallBlind    int
	BigBlind      int
	SmallBet      int // fixed-limit increment preflop/flop
	BigBet        int // fixed-limit increment turn/river
	MaxRaises     int // raise cap per betting round
	StartingChips int // hold'em starting stack
}

// DefaultSettings returns the shipped tournament configuration.
func DefaultSettings() Settings {
	return Settings{
		GuessRounds:     10,
		GuessManyRounds: 100,
		StartingCredits: 1000,
		BlackjackHands:  100,
		BlackjackBet:    10,
		HoldemHands:     10,
		SmallBlind:      50,
		BigBlind:        100,
		SmallBet:        100,
		BigBet:          200,
		MaxRaises:       3,
		StartingChips:   1000,
	}
}

// Params is everything a variant factory needs to construct an engine.
type Params struct {
	RNG      *rand.Rand
	Logger   *log.Logger
	Seats    []Seat
	Settings Settings
}

// Engine drives one match to completion. A constructed engine is bound to
// its seats and shoe; it is used for exactly one match and then discarded.
type Engine interface {
	// PlayFullMatch runs the match to completion and returns the result.
	PlayFullMatch() (*MatchResult, error)

	// IsOver reports whether the match has finished.
	IsOver() bool

	// Result returns the final result, or ErrMatchOver-complementary
	// failure if the match is still in progress.
	Result() (*MatchResult, error)

	// PlayerView returns the redacted projection for the given seat.
	PlayerView(seat int) View
}
