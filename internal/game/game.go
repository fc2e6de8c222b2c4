// Package game pulls in every built-in variant so a single blank import
// registers them all with the engine registry.
package game

import (
	_ "github.com/cardroomhq/cardroom/internal/game/blackjack"
	_ "github.com/cardroomhq/cardroom/internal/game/higherlower"
	_ "github.com/cardroomhq/cardroom/internal/game/higherlowermany"
	_ "github.com/cardroomhq/cardroom/internal/game/holdem"
)
