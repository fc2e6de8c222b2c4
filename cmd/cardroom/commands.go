package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/tournament"
	"github.com/cardroomhq/cardroom/internal/viewer"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5F5FD7")).
			Bold(true)

	leaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))
)

// formatRow pads plain cells into columns. Styling is applied to whole
// lines afterwards so ANSI escapes never skew the padding.
func formatRow(widths []int, cells ...string) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(fmt.Sprintf("%-*s", widths[i], cell))
	}
	return strings.TrimRight(b.String(), " ")
}

func printRow(widths []int, cells ...string) {
	fmt.Println(formatRow(widths, cells...))
}

func printHeader(widths []int, cells ...string) {
	fmt.Println(headerStyle.Render(formatRow(widths, cells...)))
}

// GamesCmd lists the registered game types and their built-in rosters.
type GamesCmd struct{}

func (c *GamesCmd) Run(env *appEnv) error {
	fmt.Println(titleStyle.Render(" ♠ ♥ cardroom games ♦ ♣ "))
	fmt.Println()

	widths := []int{20, 14, 0}
	printHeader(widths, "GAME", "TOPOLOGY", "BUILT-IN BOTS")
	for _, gameType := range engine.GameTypes() {
		printRow(widths,
			gameType,
			tournament.DetectMatchType(gameType),
			strings.Join(env.resolver.Discover(gameType), ", "))
	}
	return nil
}

// CreateCmd creates a tournament for a game type.
type CreateCmd struct {
	Name     string `arg:"" help:"Tournament name"`
	GameType string `arg:"" help:"Game type (see 'cardroom games')"`
}

func (c *CreateCmd) Run(env *appEnv) error {
	t, err := env.manager.Create(c.Name, c.GameType, env.settings)
	if err != nil {
		return err
	}
	fmt.Printf("created tournament %q (%s, %s)\n", t.Name, t.GameType, t.MatchType)
	return nil
}

// ListCmd lists stored tournaments.
type ListCmd struct{}

func (c *ListCmd) Run(env *appEnv) error {
	list, err := env.manager.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println(dimStyle.Render("no tournaments yet"))
		return nil
	}

	widths := []int{24, 20, 12, 8}
	printHeader(widths, "NAME", "GAME", "PLAYERS", "MATCHES")
	for _, t := range list {
		printRow(widths,
			t.Name,
			t.GameType,
			fmt.Sprintf("%d", len(t.Participants)),
			fmt.Sprintf("%d", len(t.Matches)))
	}
	return nil
}

// DeleteCmd removes a tournament record.
type DeleteCmd struct {
	Name string `arg:"" help:"Tournament name"`
}

func (c *DeleteCmd) Run(env *appEnv) error {
	if err := env.manager.Delete(c.Name); err != nil {
		return err
	}
	fmt.Printf("deleted tournament %q\n", c.Name)
	return nil
}

// AddBotCmd seats a bot in a tournament.
type AddBotCmd struct {
	Tournament string `arg:"" help:"Tournament name"`
	Bot        string `arg:"" help:"Bot name (see 'cardroom games')"`
	As         string `help:"Participant name (defaults to the bot name)"`
}

func (c *AddBotCmd) Run(env *appEnv) error {
	t, err := env.manager.Load(c.Tournament)
	if err != nil {
		return err
	}
	// Fail fast on a bot the resolver cannot seat at match time.
	if _, err := env.resolver.Resolve(t.GameType, c.Bot); err != nil {
		return err
	}

	name := c.As
	if name == "" {
		name = c.Bot
	}
	p, err := env.manager.AddParticipant(c.Tournament, name, c.Bot)
	if err != nil {
		return err
	}
	fmt.Printf("added %q (bot %s) to %q\n", p.Name, p.BotName, c.Tournament)
	return nil
}

// RemoveBotCmd removes a participant.
type RemoveBotCmd struct {
	Tournament string `arg:"" help:"Tournament name"`
	Name       string `arg:"" help:"Participant name"`
}

func (c *RemoveBotCmd) Run(env *appEnv) error {
	if err := env.manager.RemoveParticipant(c.Tournament, c.Name); err != nil {
		return err
	}
	fmt.Printf("removed %q from %q\n", c.Name, c.Tournament)
	return nil
}

// AutoPopulateCmd seats the full built-in roster.
type AutoPopulateCmd struct {
	Tournament string `arg:"" help:"Tournament name"`
}

func (c *AutoPopulateCmd) Run(env *appEnv) error {
	t, err := env.manager.AutoPopulate(c.Tournament)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(t.Participants))
	for _, p := range t.Participants {
		names = append(names, p.Name)
	}
	fmt.Printf("seated %d bots in %q: %s\n", len(names), c.Tournament, strings.Join(names, ", "))
	return nil
}

// RunCmd plays the tournament in its detected topology.
type RunCmd struct {
	Tournament string `arg:"" help:"Tournament name"`
	Rounds     int    `default:"1" help:"Number of rounds to play"`
}

func (c *RunCmd) Run(env *appEnv) error {
	if c.Rounds < 1 {
		return fmt.Errorf("rounds must be at least 1")
	}
	total := 0
	for i := 0; i < c.Rounds; i++ {
		matches, err := env.manager.Run(c.Tournament)
		if err != nil {
			return err
		}
		total += len(matches)
	}
	fmt.Printf("played %d matches\n", total)
	return printStandings(env, c.Tournament)
}

// MatchCmd plays one head-to-head match.
type MatchCmd struct {
	Tournament string `arg:"" help:"Tournament name"`
	Player1    string `arg:"" help:"First participant"`
	Player2    string `arg:"" help:"Second participant"`
}

func (c *MatchCmd) Run(env *appEnv) error {
	match, err := env.manager.RunMatch(c.Tournament, c.Player1, c.Player2)
	if err != nil {
		return err
	}
	if match.Result.Winner == "" {
		fmt.Println("match drawn")
		return nil
	}
	fmt.Printf("%s wins after %d rounds\n", match.Result.Winner, match.Result.TotalRounds)
	return nil
}

// StandingsCmd prints the ranking table.
type StandingsCmd struct {
	Tournament string `arg:"" help:"Tournament name"`
}

func (c *StandingsCmd) Run(env *appEnv) error {
	return printStandings(env, c.Tournament)
}

func printStandings(env *appEnv, name string) error {
	standings, err := env.manager.Standings(name)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf(" %s standings ", name)))
	fmt.Println()
	if len(standings) == 0 {
		fmt.Println(dimStyle.Render("no participants yet"))
		return nil
	}

	widths := []int{4, 20, 6, 5, 7, 6, 4, 9, 9}
	printHeader(widths, "#", "PLAYER", "GAMES", "WINS", "LOSSES", "DRAWS", "DQ", "WIN RATE", "AVG SCORE")
	for i, row := range standings {
		line := formatRow(widths,
			fmt.Sprintf("%d", i+1),
			row.Name,
			fmt.Sprintf("%d", row.GamesPlayed),
			fmt.Sprintf("%d", row.Wins),
			fmt.Sprintf("%d", row.Losses),
			fmt.Sprintf("%d", row.Draws),
			fmt.Sprintf("%d", row.Disqualifications),
			fmt.Sprintf("%.1f%%", row.WinRate*100),
			fmt.Sprintf("%.3f", row.AvgScore))
		if i == 0 && row.GamesPlayed > 0 {
			line = leaderStyle.Render(line)
		}
		fmt.Println(line)
	}
	return nil
}

// ViewerCmd serves the read-only HTTP API until interrupted.
type ViewerCmd struct {
	Addr string `help:"Listen address (defaults to the configured viewer_addr)"`
}

func (c *ViewerCmd) Run(env *appEnv) error {
	addr := c.Addr
	if addr == "" {
		addr = env.cfg.Cardroom.ViewerAddr
	}

	srv := viewer.New(env.manager, env.resolver, env.logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Listen(addr)
	})
	g.Go(func() error {
		<-ctx.Done()
		env.logger.Info("shutting down viewer")
		return srv.Shutdown()
	})
	return g.Wait()
}
