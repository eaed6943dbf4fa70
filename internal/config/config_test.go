package config

import (
	"holdem-server/internal/util"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstance(t *testing.T) {
	defer util.SetEnv("HOLDEM_CONFIG_FILE", "testdata/config.yaml")()
	defer util.SetEnv("HOLDEM_JWT_PRIVATE_KEY", "private2.key")()
	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal("debug", cfg.Log.Level)
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey)
	a.Equal(5000, cfg.StartingBankroll)
	if a.Len(cfg.Tables, 3) {
		a.Equal("friday", cfg.Tables[0].ID)
		a.Equal(8, cfg.Tables[0].Seats)
		a.Len(cfg.Tables[2].ID, 36, "tables without an id get a generated one")
	}

	opts := cfg.TableOptions(cfg.Tables[1])
	a.Equal(1500*time.Millisecond, opts.ShowdownDelay)
	a.Equal(time.Duration(0), opts.ActionTimeout)
	a.Equal(2, opts.Seats)

	// ensure that it's only loaded once
	_ = os.Setenv("HOLDEM_JWT_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	defer util.SetEnv("HOLDEM_CONFIG_FILE", "testdata/config.yaml")()
	defer util.SetEnv("HOLDEM_STARTING_BANKROLL", "250")()
	defer util.SetEnv("HOLDEM_LOG_LEVEL", "warn")()

	require.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, 250, cfg.StartingBankroll)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	a := assert.New(t)

	func() {
		defer util.SetEnv("HOLDEM_CONFIG_FILE", "testdata/missing.yaml")()
		a.Error(Load())
	}()

	func() {
		defer util.SetEnv("HOLDEM_CONFIG_FILE", "testdata/invalid.yaml")()
		a.EqualError(Load(), "invalid config: table broken: seats must be between 2 and 10")
	}()
}

func TestDefaultConfig(t *testing.T) {
	a := assert.New(t)

	cfg := DefaultConfig()
	a.NoError(cfg.Validate())

	cfg.Tables = append(cfg.Tables, cfg.Tables[0])
	a.EqualError(cfg.Validate(), "table micro is configured twice")

	cfg = DefaultConfig()
	cfg.Tables[1].MinBuyIn = 5000
	a.EqualError(cfg.Validate(), "table low: minimum buy-in must not be more than the maximum buy-in")

	cfg = DefaultConfig()
	cfg.StartingBankroll = 0
	a.Error(cfg.Validate())
}
