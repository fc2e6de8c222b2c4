// Package viewer serves a read-only JSON view of stored tournaments:
// records, standings, and match histories. It never mutates anything;
// running matches stays with the CLI.
package viewer

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/tournament"
)

// Server exposes the viewer API over HTTP.
type Server struct {
	app     *fiber.App
	manager *tournament.Manager
	bots    tournament.BotResolver
	logger  *log.Logger
}

// New builds the viewer with its routes mounted.
func New(manager *tournament.Manager, bots tournament.BotResolver, logger *log.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "cardroom viewer",
		DisableStartupMessage: true,
	})

	s := &Server{
		app:     app,
		manager: manager,
		bots:    bots,
		logger:  logger,
	}

	api := app.Group("/api")
	api.Get("/games", s.listGames)
	api.Get("/tournaments", s.listTournaments)
	api.Get("/tournaments/:name", s.getTournament)
	api.Get("/tournaments/:name/standings", s.getStandings)
	api.Get("/tournaments/:name/matches", s.getMatches)

	return s
}

// Listen serves until the listener fails or Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("viewer listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) listGames(c *fiber.Ctx) error {
	games := make([]fiber.Map, 0)
	for _, gameType := range engine.GameTypes() {
		games = append(games, fiber.Map{
			"gameType":  gameType,
			"matchType": tournament.DetectMatchType(gameType),
			"bots":      s.bots.Discover(gameType),
		})
	}
	return c.JSON(fiber.Map{"games": games})
}

// tournamentSummary is the list-endpoint shape: enough to pick a
// tournament without shipping every match record.
type tournamentSummary struct {
	Name         string `json:"name"`
	GameType     string `json:"gameType"`
	MatchType    string `json:"matchType"`
	Participants int    `json:"participants"`
	Matches      int    `json:"matches"`
}

func (s *Server) listTournaments(c *fiber.Ctx) error {
	list, err := s.manager.List()
	if err != nil {
		return s.fail(c, err)
	}

	summaries := make([]tournamentSummary, 0, len(list))
	for _, t := range list {
		summaries = append(summaries, tournamentSummary{
			Name:         t.Name,
			GameType:     t.GameType,
			MatchType:    t.MatchType,
			Participants: len(t.Participants),
			Matches:      len(t.Matches),
		})
	}
	return c.JSON(fiber.Map{"tournaments": summaries})
}

func (s *Server) getTournament(c *fiber.Ctx) error {
	t, err := s.manager.Load(c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(t)
}

func (s *Server) getStandings(c *fiber.Ctx) error {
	standings, err := s.manager.Standings(c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"standings": standings})
}

func (s *Server) getMatches(c *fiber.Ctx) error {
	t, err := s.manager.Load(c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"matches": t.Matches})
}

func (s *Server) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, tournament.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	s.logger.Error("viewer request failed", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
