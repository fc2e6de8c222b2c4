package holdem

import "github.com/cardroomhq/cardroom/internal/engine"

// SeatState is the acting seat's private slice of the table.
type SeatState struct {
	Chips      int      `json:"chips"`
	HoleCards  []string `json:"holeCards"`
	CurrentBet int      `json:"currentBet"`
	Position   int      `json:"position"`
}

// Opponent is what a seat may know about another seat: stack, bet, and
// status, never hole cards.
type Opponent struct {
	Name       string `json:"name"`
	Chips      int    `json:"chips"`
	CurrentBet int    `json:"currentBet"`
	Folded     bool   `json:"folded"`
	AllIn      bool   `json:"allIn"`
	Position   int    `json:"position"`
}

// View is the redacted state handed to the acting bot.
type View struct {
	Phase           string     `json:"phase"`
	CommunityCards  []string   `json:"communityCards"`
	Pot             int        `json:"pot"`
	CurrentBet      int        `json:"currentBet"`
	SmallBlind      int        `json:"smallBlind"`
	BigBlind        int        `json:"bigBlind"`
	Hand            int        `json:"hand"`
	MaxHands        int        `json:"maxHands"`
	Player          SeatState  `json:"player"`
	Opponents       []Opponent `json:"opponents"`
	PossibleActions []string   `json:"possibleActions"`
	RaiseAmount     int        `json:"raiseAmount"` // the only legal raise size this round
}

// GameType implements engine.View.
func (View) GameType() string { return GameType }

// PlayerView implements engine.Engine.
func (g *Game) PlayerView(seat int) engine.View {
	pl := g.players[seat]
	v := View{
		Phase:          g.phase,
		CommunityCards: cardStrings(g.community),
		Pot:            g.pot,
		CurrentBet:     g.currentBet,
		SmallBlind:     g.smallBlind,
		BigBlind:       g.bigBlind,
		Hand:           g.hand,
		MaxHands:       g.maxHands,
		Player: SeatState{
			Chips:      pl.chips,
			HoleCards:  cardStrings(pl.hole),
			CurrentBet: pl.roundBet,
			Position:   pl.position,
		},
		PossibleActions: g.possibleActions(pl),
		RaiseAmount:     g.betSize(),
	}
	for _, other := range g.players {
		if other == pl {
			continue
		}
		v.Opponents = append(v.Opponents, Opponent{
			Name:       other.seat.Name,
			Chips:      other.chips,
			CurrentBet: other.roundBet,
			Folded:     other.folded,
			AllIn:      other.allIn,
			Position:   other.position,
		})
	}
	return v
}

func (g *Game) possibleActions(pl *player) []string {
	actions := []string{engine.Fold}
	if g.currentBet == pl.roundBet {
		actions = append(actions, engine.Check)
	} else {
		actions = append(actions, engine.Call)
	}
	if g.raises < g.maxRaises && pl.chips > 0 {
		actions = append(actions, engine.Raise)
	}
	return actions
}
