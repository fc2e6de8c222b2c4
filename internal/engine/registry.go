package engine

import (
	"fmt"
	"sort"
)

// Factory constructs an engine for one match.
type Factory func(p Params) (Engine, error)

var factories = map[string]Factory{}

// Register makes a game type constructible by name. Variants call this
// from init; registering the same type twice is a programming error.
func Register(gameType string, f Factory) {
	if _, dup := factories[gameType]; dup {
		panic(fmt.Sprintf("engine: duplicate registration for %q", gameType))
	}
	factories[gameType] = f
}

// New constructs an engine for the given game type.
func New(gameType string, p Params) (Engine, error) {
	f, ok := factories[gameType]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownGameType, gameType, GameTypes())
	}
	return f(p)
}

// GameTypes returns the registered game types, sorted.
func GameTypes() []string {
	types := make([]string, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// IsRegistered reports whether a game type is known.
func IsRegistered(gameType string) bool {
	_, ok := factories[gameType]
	return ok
}
