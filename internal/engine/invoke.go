package engine

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Outcome is the result of resolving one bot decision. Faulted means the
// seat is disqualified for this decision and Move holds the variant's safe
// fallback; play always continues.
type Outcome struct {
	Move    Move
	Faulted bool
	Reason  string
}

// SafeMove invokes a bot's decision function with full fault isolation.
// A panic, an error return, or a move outside the variant's action grammar
// (validate) all become a disqualification outcome carrying the fallback
// move. A single bad decision never aborts the match, and disqualification
// is decision-scoped: the seat keeps playing.
func SafeMove(logger *log.Logger, bot Bot, view View, validate func(Move) error, fallback Move) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{
				Move:    fallback,
				Faulted: true,
				Reason:  fmt.Sprintf("bot panicked during Act: %v", r),
			}
			logger.Warn("bot disqualified for this decision", "bot", bot.Name(), "reason", out.Reason)
		}
	}()

	move, err := bot.Act(view)
	if err != nil {
		out = Outcome{
			Move:    fallback,
			Faulted: true,
			Reason:  fmt.Sprintf("bot failed during Act: %v", err),
		}
		logger.Warn("bot disqualified for this decision", "bot", bot.Name(), "reason", out.Reason)
		return out
	}

	if err := validate(move); err != nil {
		out = Outcome{
			Move:    fallback,
			Faulted: true,
			Reason:  fmt.Sprintf("invalid move %q: %v", move.Kind, err),
		}
		logger.Warn("bot disqualified for this decision", "bot", bot.Name(), "reason", out.Reason)
		return out
	}

	return Outcome{Move: move}
}

// NotifyMatchStarted delivers the start-of-match hook to every seat.
// Notification faults never reach the engine; they are logged and dropped.
func NotifyMatchStarted(logger *log.Logger, seats []Seat, info MatchInfo) {
	for _, seat := range seats {
		notify(logger, seat.Name, "MatchStarted", func() { seat.Bot.MatchStarted(info) })
	}
}

// NotifyMatchEnded delivers the end-of-match hook to every seat.
func NotifyMatchEnded(logger *log.Logger, seats []Seat, result MatchResult) {
	for _, seat := range seats {
		notify(logger, seat.Name, "MatchEnded", func() { seat.Bot.MatchEnded(result) })
	}
}

func notify(logger *log.Logger, name, hook string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("bot notification hook panicked", "bot", name, "hook", hook, "panic", r)
		}
	}()
	fn()
}
