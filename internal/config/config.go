// Package config loads cardroom configuration from HCL. A missing file
// is not an error; the defaults describe a fully working cardroom.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardroomhq/cardroom/internal/engine"
)

// Config represents the complete cardroom configuration.
type Config struct {
	Cardroom CardroomSettings `hcl:"cardroom,block"`
	Settings *SettingsBlock   `hcl:"settings,block"`
}

// CardroomSettings contains process-level configuration.
type CardroomSettings struct {
	DataDir    string `hcl:"data_dir,optional"`
	LogLevel   string `hcl:"log_level,optional"`
	ViewerAddr string `hcl:"viewer_addr,optional"`
	Seed       int64  `hcl:"seed,optional"`
}

// SettingsBlock overrides the default game settings. Zero-valued fields
// keep their defaults.
type SettingsBlock struct {
	GuessRounds     int `hcl:"guess_rounds,optional"`
	GuessManyRounds int `hcl:"guess_many_rounds,optional"`
	StartingCredits int `hcl:"starting_credits,optional"`
	BlackjackHands  int `hcl:"blackjack_hands,optional"`
	BlackjackBet    int `hcl:"blackjack_bet,optional"`
	HoldemHands     int `hcl:"holdem_hands,optional"`
	SmallBlind      int `hcl:"small_blind,optional"`
	BigBlind        int `hcl:"big_blind,optional"`
	SmallBet        int `hcl:"small_bet,optional"`
	BigBet          int `hcl:"big_bet,optional"`
	MaxRaises       int `hcl:"max_raises,optional"`
	StartingChips   int `hcl:"starting_chips,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Cardroom: CardroomSettings{
			DataDir:    "data",
			LogLevel:   "info",
			ViewerAddr: "localhost:8080",
		},
	}
}

// Load loads configuration from an HCL file. A nonexistent file yields
// the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Cardroom.DataDir == "" {
		config.Cardroom.DataDir = "data"
	}
	if config.Cardroom.LogLevel == "" {
		config.Cardroom.LogLevel = "info"
	}
	if config.Cardroom.ViewerAddr == "" {
		config.Cardroom.ViewerAddr = "localhost:8080"
	}

	return &config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Cardroom.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Cardroom.LogLevel)
	}

	s := c.GameSettings()
	if s.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if s.BigBlind <= s.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if s.SmallBet <= 0 || s.BigBet < s.SmallBet {
		return fmt.Errorf("fixed-limit bets must be positive with big bet >= small bet")
	}
	if s.MaxRaises < 1 {
		return fmt.Errorf("max raises must be at least 1")
	}
	if s.GuessRounds < 1 || s.GuessManyRounds < 1 || s.BlackjackHands < 1 || s.HoldemHands < 1 {
		return fmt.Errorf("round and hand counts must be at least 1")
	}
	if s.StartingCredits < 1 || s.StartingChips < 1 || s.BlackjackBet < 1 {
		return fmt.Errorf("stakes must be positive")
	}
	return nil
}

// GameSettings folds the overrides block onto the default game settings.
func (c *Config) GameSettings() engine.Settings {
	s := engine.DefaultSettings()
	o := c.Settings
	if o == nil {
		return s
	}
	if o.GuessRounds != 0 {
		s.GuessRounds = o.GuessRounds
	}
	if o.GuessManyRounds != 0 {
		s.GuessManyRounds = o.GuessManyRounds
	}
	if o.StartingCredits != 0 {
		s.StartingCredits = o.StartingCredits
	}
	if o.BlackjackHands != 0 {
		s.BlackjackHands = o.BlackjackHands
	}
	if o.BlackjackBet != 0 {
		s.BlackjackBet = o.BlackjackBet
	}
	if o.HoldemHands != 0 {
		s.HoldemHands = o.HoldemHands
	}
	if o.SmallBlind != 0 {
		s.SmallBlind = o.SmallBlind
	}
	if o.BigBlind != 0 {
		s.BigBlind = o.BigBlind
	}
	if o.SmallBet != 0 {
		s.SmallBet = o.SmallBet
	}
	if o.BigBet != 0 {
		s.BigBet = o.BigBet
	}
	if o.MaxRaises != 0 {
		s.MaxRaises = o.MaxRaises
	}
	if o.StartingChips != 0 {
		s.StartingChips = o.StartingChips
	}
	return s
}
