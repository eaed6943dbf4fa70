package config

import (
	"holdem-server/internal/util"
	"holdem-server/pkg/table"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the hold'em server
type Config struct {
	loaded bool
	Log    struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	JWT struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	StartingBankroll int `yaml:"startingBankroll" envconfig:"starting_bankroll"`
	// ShowdownDelay is in milliseconds
	ShowdownDelay int `yaml:"showdownDelay" envconfig:"showdown_delay"`
	// ActionTimeout is in seconds, zero disables it
	ActionTimeout int     `yaml:"actionTimeout" envconfig:"action_timeout"`
	Tables        []Table `yaml:"tables" ignored:"true"`
}

// Table configures one table of the room
type Table struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Seats      int    `yaml:"seats"`
	SmallBlind int    `yaml:"smallBlind"`
	BigBlind   int    `yaml:"bigBlind"`
	MinBuyIn   int    `yaml:"minBuyIn"`
	MaxBuyIn   int    `yaml:"maxBuyIn"`
}

// DefaultConfig returns a config that runs out of the box
func DefaultConfig() Config {
	cfg := Config{
		StartingBankroll: 1000,
		ShowdownDelay:    3000,
		ActionTimeout:    30,
		Tables: []Table{
			{ID: "micro", Name: "Micro Stakes", Seats: 10, SmallBlind: 1, BigBlind: 2, MinBuyIn: 40, MaxBuyIn: 200},
			{ID: "low", Name: "Low Stakes", Seats: 6, SmallBlind: 5, BigBlind: 10, MinBuyIn: 200, MaxBuyIn: 1000},
			{ID: "heads-up", Name: "Heads Up", Seats: 2, SmallBlind: 10, BigBlind: 20, MinBuyIn: 400, MaxBuyIn: 2000},
		},
	}
	cfg.Log.Level = "info"
	cfg.JWT.PublicKey = "public.pem"
	cfg.JWT.PrivateKey = "private.key"

	return cfg
}

// TableOptions converts the table config into table options
func (c Config) TableOptions(t Table) table.Options {
	return table.Options{
		Seats:         t.Seats,
		SmallBlind:    t.SmallBlind,
		BigBlind:      t.BigBlind,
		MinBuyIn:      t.MinBuyIn,
		MaxBuyIn:      t.MaxBuyIn,
		ShowdownDelay: time.Duration(c.ShowdownDelay) * time.Millisecond,
		ActionTimeout: time.Duration(c.ActionTimeout) * time.Second,
	}
}

// Validate checks the settings the server cannot run without
func (c Config) Validate() error {
	if c.StartingBankroll <= 0 {
		return errors.New("startingBankroll must be > 0")
	}

	if c.ShowdownDelay < 0 || c.ActionTimeout < 0 {
		return errors.New("showdownDelay and actionTimeout must not be negative")
	}

	if len(c.Tables) == 0 {
		return errors.New("at least one table must be configured")
	}

	seen := make(map[string]bool)
	for _, t := range c.Tables {
		if t.ID == "" {
			return errors.New("every table needs an id")
		}

		if seen[t.ID] {
			return errors.Errorf("table %s is configured twice", t.ID)
		}
		seen[t.ID] = true

		if _, err := table.New(t.ID, t.Name, c.TableOptions(t), nil, nil); err != nil {
			return errors.Wrapf(err, "table %s", t.ID)
		}
	}

	return nil
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The file named by HOLDEM_CONFIG_FILE is read over the defaults, then HOLDEM_* variables override it.
func Load() error {
	configFile := util.Getenv("HOLDEM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		return errors.Wrap(err, "could not open config file")
	}
	defer file.Close()

	cfg := DefaultConfig()
	cfg.Tables = nil
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return errors.Wrap(err, "could not decode config file")
	}

	if len(cfg.Tables) == 0 {
		cfg.Tables = DefaultConfig().Tables
	}

	if err := envconfig.Process("holdem", &cfg); err != nil {
		return errors.Wrap(err, "could not process environment")
	}

	for i := range cfg.Tables {
		if cfg.Tables[i].ID == "" {
			cfg.Tables[i].ID = uuid.New().String()
		}
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	cfg.loaded = true
	config = cfg
	return nil
}
