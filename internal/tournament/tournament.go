// Package tournament schedules matches over a participant set, folds
// results into cumulative statistics, and derives standings. Matches run
// strictly one at a time; participant stats are only touched between
// matches.
package tournament

import (
	"strings"
	"time"

	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/game/blackjack"
)

// Match topologies.
const (
	RoundRobin = "round-robin"
	FreeForAll = "free-for-all"
)

// Stats is a participant's cumulative record across matches.
type Stats struct {
	GamesPlayed       int     `json:"gamesPlayed"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	Draws             int     `json:"draws"`
	Disqualifications int     `json:"disqualifications"`
	TotalScore        float64 `json:"totalScore"`
}

// Participant binds a stable name to a bot identity and its record.
type Participant struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	BotName string    `json:"botName"`
	AddedAt time.Time `json:"addedAt"`
	Stats   Stats     `json:"stats"`
}

// Match is the immutable record of one complete engine run.
type Match struct {
	ID           string             `json:"id"`
	Tournament   string             `json:"tournament"`
	Participants []string           `json:"participants"`
	StartTime    time.Time          `json:"startTime"`
	EndTime      time.Time          `json:"endTime"`
	FreeForAll   bool               `json:"freeForAll,omitempty"`
	Result       engine.MatchResult `json:"result"`
}

// Tournament is the root record: identity, game type, participants, and
// the append-only match log. Standings are always derived, never stored.
type Tournament struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CreatedAt    time.Time       `json:"createdAt"`
	GameType     string          `json:"gameType"`
	MatchType    string          `json:"matchType"`
	Settings     engine.Settings `json:"settings"`
	Participants []*Participant  `json:"participants"`
	Matches      []*Match        `json:"matches"`
}

// Standing is one row of the derived standings view.
type Standing struct {
	Name              string  `json:"name"`
	GamesPlayed       int     `json:"gamesPlayed"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	Draws             int     `json:"draws"`
	Disqualifications int     `json:"disqualifications"`
	TotalScore        float64 `json:"totalScore"`
	WinRate           float64 `json:"winRate"`
	AvgScore          float64 `json:"avgScore"`
}

// DetectMatchType maps a game type onto its topology: blackjack is always
// free-for-all (everyone plays the bank), "-many" variants are
// free-for-all, everything else is pairwise round-robin.
func DetectMatchType(gameType string) string {
	if gameType == blackjack.GameType {
		return FreeForAll
	}
	if strings.HasSuffix(gameType, "-many") {
		return FreeForAll
	}
	return RoundRobin
}

// participantNamed returns the participant with the given name, or nil.
func (t *Tournament) participantNamed(name string) *Participant {
	for _, p := range t.Participants {
		if p.Name == name {
			return p
		}
	}
	return nil
}
