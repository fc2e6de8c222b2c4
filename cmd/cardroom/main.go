package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/joho/godotenv"

	"github.com/cardroomhq/cardroom/internal/bots"
	"github.com/cardroomhq/cardroom/internal/config"
	"github.com/cardroomhq/cardroom/internal/engine"
	_ "github.com/cardroomhq/cardroom/internal/game"
	"github.com/cardroomhq/cardroom/internal/randutil"
	"github.com/cardroomhq/cardroom/internal/tournament"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `help:"Path to HCL config file" default:"cardroom.hcl" type:"path"`
	Debug   bool             `help:"Enable debug logging"`
	DataDir string           `help:"Override the tournament data directory"`
	Seed    *int64           `help:"Deterministic RNG seed (optional)"`

	Games        GamesCmd        `cmd:"" help:"List game types and their built-in bots"`
	Create       CreateCmd       `cmd:"" help:"Create a tournament"`
	List         ListCmd         `cmd:"" help:"List tournaments"`
	Delete       DeleteCmd       `cmd:"" help:"Delete a tournament"`
	AddBot       AddBotCmd       `cmd:"add-bot" help:"Add a bot to a tournament"`
	RemoveBot    RemoveBotCmd    `cmd:"remove-bot" help:"Remove a participant from a tournament"`
	AutoPopulate AutoPopulateCmd `cmd:"auto-populate" help:"Seat every built-in bot for the tournament's game"`
	Run          RunCmd          `cmd:"" help:"Run the tournament in its match topology"`
	Match        MatchCmd        `cmd:"" help:"Run a single head-to-head match"`
	Standings    StandingsCmd    `cmd:"" help:"Show the current standings"`
	Viewer       ViewerCmd       `cmd:"" help:"Serve the read-only HTTP viewer"`
}

// appEnv is the wiring every command runs against.
type appEnv struct {
	cfg      *config.Config
	settings engine.Settings
	logger   *log.Logger
	resolver *bots.Resolver
	manager  *tournament.Manager
}

func newEnv(cli *CLI) (*appEnv, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	if cli.DataDir != "" {
		cfg.Cardroom.DataDir = cli.DataDir
	}
	if cli.Debug {
		cfg.Cardroom.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	level, err := log.ParseLevel(cfg.Cardroom.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	seed := cfg.Cardroom.Seed
	if cli.Seed != nil {
		seed = *cli.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("rng seeded", "seed", seed)

	store, err := tournament.NewStore(cfg.Cardroom.DataDir)
	if err != nil {
		return nil, err
	}
	rng := randutil.New(seed)
	resolver := bots.NewResolver(rng)

	return &appEnv{
		cfg:      cfg,
		settings: cfg.GameSettings(),
		logger:   logger,
		resolver: resolver,
		manager:  tournament.NewManager(store, resolver, logger, quartz.NewReal(), rng),
	}, nil
}

func main() {
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cardroom"),
		kong.Description("Card-game tournament simulator for autonomous bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	env, err := newEnv(&cli)
	ctx.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run(env))
}
