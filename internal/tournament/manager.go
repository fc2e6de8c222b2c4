package tournament

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/score"
)

// Typed failures for tournament operations.
var (
	ErrAlreadyExists         = errors.New("tournament: already exists")
	ErrParticipantExists     = errors.New("tournament: participant already exists")
	ErrParticipantNotFound   = errors.New("tournament: participant not found")
	ErrNotEnoughParticipants = errors.New("tournament: need at least 2 participants")
)

// BotResolver turns a participant's bot identity into a live decision
// function. How resolution happens (built-ins, plugins) is not the
// orchestrator's business.
type BotResolver interface {
	Resolve(gameType, botName string) (engine.Bot, error)
	Discover(gameType string) []string
}

// Manager owns tournament records and drives matches through the engine
// registry, one at a time.
type Manager struct {
	store  *Store
	bots   BotResolver
	scores *score.Normalizer
	logger *log.Logger
	clock  quartz.Clock
	rng    *rand.Rand
}

// NewManager wires the orchestrator.
func NewManager(store *Store, bots BotResolver, logger *log.Logger, clock quartz.Clock, rng *rand.Rand) *Manager {
	return &Manager{
		store:  store,
		bots:   bots,
		scores: score.NewNormalizer(),
		logger: logger,
		clock:  clock,
		rng:    rng,
	}
}

// Create registers a new tournament for a known game type. The match
// topology is derived from the game type, not chosen by the caller.
func (m *Manager) Create(name, gameType string, settings engine.Settings) (*Tournament, error) {
	if _, err := m.store.Load(name); err == nil {
		return nil, fmt.Errorf("%w: %q", ErrAlreadyExists, name)
	}
	if !engine.IsRegistered(gameType) {
		return nil, fmt.Errorf("%w: %q (available: %v)", engine.ErrUnknownGameType, gameType, engine.GameTypes())
	}

	t := &Tournament{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: m.clock.Now(),
		GameType:  gameType,
		MatchType: DetectMatchType(gameType),
		Settings:  settings,
	}
	if err := m.store.Save(t); err != nil {
		return nil, err
	}
	m.logger.Info("tournament created", "name", name, "gameType", gameType, "matchType", t.MatchType)
	return t, nil
}

// Load reads a tournament record by name.
func (m *Manager) Load(name string) (*Tournament, error) {
	return m.store.Load(name)
}

// Delete removes a tournament record.
func (m *Manager) Delete(name string) error {
	return m.store.Delete(name)
}

// List returns the stored tournaments.
func (m *Manager) List() ([]*Tournament, error) {
	names, err := m.store.List()
	if err != nil {
		return nil, err
	}
	var out []*Tournament
	for _, name := range names {
		t, err := m.store.Load(name)
		if err != nil {
			m.logger.Warn("skipping unreadable tournament record", "name", name, "error", err)
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// AddParticipant appends a named participant bound to a bot identity.
func (m *Manager) AddParticipant(tournamentName, name, botName string) (*Participant, error) {
	t, err := m.store.Load(tournamentName)
	if err != nil {
		return nil, err
	}
	if t.participantNamed(name) != nil {
		return nil, fmt.Errorf("%w: %q", ErrParticipantExists, name)
	}

	p := &Participant{
		ID:      uuid.NewString(),
		Name:    name,
		BotName: botName,
		AddedAt: m.clock.Now(),
	}
	t.Participants = append(t.Participants, p)
	if err := m.store.Save(t); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveParticipant deletes a participant by name.
func (m *Manager) RemoveParticipant(tournamentName, name string) error {
	t, err := m.store.Load(tournamentName)
	if err != nil {
		return err
	}
	for i, p := range t.Participants {
		if p.Name == name {
			t.Participants = append(t.Participants[:i], t.Participants[i+1:]...)
			return m.store.Save(t)
		}
	}
	return fmt.Errorf("%w: %q", ErrParticipantNotFound, name)
}

// AutoPopulate replaces the participant list with every bot the resolver
// knows for the tournament's game type.
func (m *Manager) AutoPopulate(tournamentName string) (*Tournament, error) {
	t, err := m.store.Load(tournamentName)
	if err != nil {
		return nil, err
	}
	names := m.bots.Discover(t.GameType)
	if len(names) == 0 {
		return nil, fmt.Errorf("tournament: no bots available for game type %q", t.GameType)
	}

	t.Participants = nil
	for _, name := range names {
		t.Participants = append(t.Participants, &Participant{
			ID:      uuid.NewString(),
			Name:    name,
			BotName: name,
			AddedAt: m.clock.Now(),
		})
	}
	if err := m.store.Save(t); err != nil {
		return nil, err
	}
	return t, nil
}

// RunMatch plays one two-seat match between named participants.
func (m *Manager) RunMatch(tournamentName, name1, name2 string) (*Match, error) {
	t, err := m.store.Load(tournamentName)
	if err != nil {
		return nil, err
	}
	p1 := t.participantNamed(name1)
	p2 := t.participantNamed(name2)
	if p1 == nil || p2 == nil {
		return nil, fmt.Errorf("%w: %q vs %q", ErrParticipantNotFound, name1, name2)
	}

	match, err := m.playMatch(t, []*Participant{p1, p2}, false)
	if err != nil {
		return nil, err
	}
	if err := m.store.Save(t); err != nil {
		return nil, err
	}
	return match, nil
}

// RunRound plays one round-robin round: a two-seat match per unordered
// pair of participants.
func (m *Manager) RunRound(tournamentName string) ([]*Match, error) {
	t, err := m.store.Load(tournamentName)
	if err != nil {
		return nil, err
	}
	if len(t.Participants) < 2 {
		return nil, ErrNotEnoughParticipants
	}

	var matches []*Match
	for i := 0; i < len(t.Participants); i++ {
		for j := i + 1; j < len(t.Participants); j++ {
			match, err := m.playMatch(t, []*Participant{t.Participants[i], t.Participants[j]}, false)
			if err != nil {
				return nil, err
			}
			matches = append(matches, match)
		}
	}
	if err := m.store.Save(t); err != nil {
		return nil, err
	}
	return matches, nil
}

// RunFreeForAll plays a single match seating every participant.
func (m *Manager) RunFreeForAll(tournamentName string) ([]*Match, error) {
	t, err := m.store.Load(tournamentName)
	if err != nil {
		return nil, err
	}
	if len(t.Participants) < 2 {
		return nil, ErrNotEnoughParticipants
	}

	match, err := m.playMatch(t, t.Participants, true)
	if err != nil {
		return nil, err
	}
	if err := m.store.Save(t); err != nil {
		return nil, err
	}
	return []*Match{match}, nil
}

// Run plays the tournament in its detected topology.
func (m *Manager) Run(tournamentName string) ([]*Match, error) {
	t, err := m.store.Load(tournamentName)
	if err != nil {
		return nil, err
	}
	if t.MatchType == FreeForAll {
		return m.RunFreeForAll(tournamentName)
	}
	return m.RunRound(tournamentName)
}

// playMatch resolves bots, runs one engine to completion, folds the
// result into participant stats, and appends the match record.
func (m *Manager) playMatch(t *Tournament, participants []*Participant, freeForAll bool) (*Match, error) {
	var seats []engine.Seat
	var names []string
	for _, p := range participants {
		bot, err := m.bots.Resolve(t.GameType, p.BotName)
		if err != nil {
			return nil, err
		}
		seats = append(seats, engine.Seat{Name: p.Name, Bot: bot})
		names = append(names, p.Name)
	}

	eng, err := engine.New(t.GameType, engine.Params{
		RNG:      m.rng,
		Logger:   m.logger,
		Seats:    seats,
		Settings: t.Settings,
	})
	if err != nil {
		return nil, err
	}

	start := m.clock.Now()
	for i, seat := range seats {
		info := engine.MatchInfo{Tournament: t.Name, GameType: t.GameType}
		for j, other := range names {
			if j != i {
				info.Opponents = append(info.Opponents, other)
			}
		}
		engine.NotifyMatchStarted(m.logger, []engine.Seat{seat}, info)
	}

	m.logger.Info("match starting", "tournament", t.Name, "gameType", t.GameType, "seats", len(seats))
	result, err := eng.PlayFullMatch()
	if err != nil {
		return nil, err
	}
	engine.NotifyMatchEnded(m.logger, seats, *result)

	match := &Match{
		ID:           uuid.NewString(),
		Tournament:   t.Name,
		Participants: names,
		StartTime:    start,
		EndTime:      m.clock.Now(),
		FreeForAll:   freeForAll,
		Result:       *result,
	}
	t.Matches = append(t.Matches, match)

	if err := m.foldStats(t, match); err != nil {
		return nil, err
	}
	m.logger.Info("match finished", "tournament", t.Name, "winner", result.Winner, "rounds", result.TotalRounds)
	return match, nil
}

// foldStats updates cumulative participant statistics from one match.
// Round-robin counts the match as one game; free-for-all counts every
// round the participant actually contested as a separate game, since one
// shared match is many independent scoring events.
func (m *Manager) foldStats(t *Tournament, match *Match) error {
	for _, pr := range match.Result.Players {
		p := t.participantNamed(pr.Name)
		if p == nil {
			continue
		}

		s, err := m.scores.Score(t.GameType, pr)
		if err != nil {
			return err
		}

		if match.FreeForAll {
			p.Stats.GamesPlayed += pr.RoundWins + pr.RoundLosses + pr.RoundTies
			p.Stats.Wins += pr.RoundWins
			p.Stats.Losses += pr.RoundLosses
			p.Stats.Draws += pr.RoundTies
		} else {
			p.Stats.GamesPlayed++
			switch {
			case pr.Disqualifications > 0:
				p.Stats.Losses++
			case match.Result.Winner == pr.Name:
				p.Stats.Wins++
			case match.Result.Winner != "":
				p.Stats.Losses++
			default:
				p.Stats.Draws++
			}
		}
		p.Stats.TotalScore += s
		p.Stats.Disqualifications += pr.Disqualifications
	}
	return nil
}

// Standings derives the current ranking: average score, then win rate,
// then games played, all descending.
func (m *Manager) Standings(tournamentName string) ([]Standing, error) {
	t, err := m.store.Load(tournamentName)
	if err != nil {
		return nil, err
	}

	var standings []Standing
	for _, p := range t.Participants {
		row := Standing{
			Name:              p.Name,
			GamesPlayed:       p.Stats.GamesPlayed,
			Wins:              p.Stats.Wins,
			Losses:            p.Stats.Losses,
			Draws:             p.Stats.Draws,
			Disqualifications: p.Stats.Disqualifications,
			TotalScore:        p.Stats.TotalScore,
		}
		if p.Stats.GamesPlayed > 0 {
			row.WinRate = float64(p.Stats.Wins) / float64(p.Stats.GamesPlayed)
			row.AvgScore = p.Stats.TotalScore / float64(p.Stats.GamesPlayed)
		}
		standings = append(standings, row)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.AvgScore != b.AvgScore {
			return a.AvgScore > b.AvgScore
		}
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		return a.GamesPlayed > b.GamesPlayed
	})
	return standings, nil
}
