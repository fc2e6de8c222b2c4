package engine

// PlayerResult is one seat's final record in a match. Counters carries
// variant-specific tallies (correctGuesses, blackjacks, busts, finalChips,
// ...) so external consumers can reconstruct standings without knowing
// every variant's shape.
type PlayerResult struct {
	Name              string         `json:"name"`
	Score             float64        `json:"score"`
	RoundWins         int            `json:"roundWins"`
	RoundLosses       int            `json:"roundLosses"`
	RoundTies         int            `json:"roundTies"`
	Disqualifications int            `json:"disqualifications"`
	Counters          map[string]int `json:"counters,omitempty"`
}

// RoundRecord is one entry of a match's append-only history. Fields not
// meaningful to a variant are left zero and omitted from serialization.
type RoundRecord struct {
	Round        int            `json:"round"`
	Player       string         `json:"player,omitempty"`
	Cards        []string       `json:"cards,omitempty"`
	Action       string         `json:"action,omitempty"`
	Result       string         `json:"result,omitempty"`
	ScoreDelta   float64        `json:"scoreDelta,omitempty"`
	Disqualified bool           `json:"disqualified,omitempty"`
	Reason       string         `json:"reason,omitempty"`
	Winners      []string       `json:"winners,omitempty"`
	Winnings     map[string]int `json:"winnings,omitempty"`
}

// MatchResult is the terminal summary of one match. It is plain data:
// serializing and re-parsing it preserves every field standings depend on.
type MatchResult struct {
	GameType    string         `json:"gameType"`
	Winner      string         `json:"winner,omitempty"`
	Players     []PlayerResult `json:"players"`
	TotalRounds int            `json:"totalRounds"`
	History     []RoundRecord  `json:"history"`
}

// PlayerNamed returns the result entry for the given participant, or nil.
func (r *MatchResult) PlayerNamed(name string) *PlayerResult {
	for i := range r.Players {
		if r.Players[i].Name == name {
			return &r.Players[i]
		}
	}
	return nil
}
