package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 5, cfg.Game.StartingHandSize)
	assert.Equal(t, uint64(0), cfg.Game.Seed)
	assert.Len(t, cfg.Game.Market, 6)
	assert.Equal(t, []DeckEntryConfig{{Card: "Copper", Count: 7}, {Card: "Estate", Count: 3}}, cfg.Game.StartingDeck)
	assert.Equal(t, []string{"Alice", "Bob"}, cfg.Simulation.Players)
	assert.Equal(t, 3, cfg.Simulation.Rounds)

	copper, ok := cfg.Game.Card("Copper")
	require.True(t, ok)
	assert.Equal(t, 0, copper.Cost)
	assert.Equal(t, 1, copper.Coins)
	assert.Equal(t, "", cfg.Simulation.Buy)
	_, ok = cfg.Game.Card("Platinum")
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
logging:
  level: debug
  format: json
game:
  starting_hand_size: 4
  seed: 42
  market:
    - name: Copper
      text: "+1 coin"
      cost: 0
    - name: Village
      text: "+1 card, +2 actions"
      cost: 3
  starting_deck:
    - card: Copper
      count: 8
    - card: Village
      count: 2
simulation:
  players: [Ann]
  rounds: 1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 4, cfg.Game.StartingHandSize)
	assert.Equal(t, uint64(42), cfg.Game.Seed)
	assert.Equal(t, []CardConfig{
		{Name: "Copper", Text: "+1 coin", Cost: 0},
		{Name: "Village", Text: "+1 card, +2 actions", Cost: 3},
	}, cfg.Game.Market)
	assert.Equal(t, []DeckEntryConfig{{Card: "Copper", Count: 8}, {Card: "Village", Count: 2}}, cfg.Game.StartingDeck)
	assert.Equal(t, []string{"Ann"}, cfg.Simulation.Players)
	assert.Equal(t, 1, cfg.Simulation.Rounds)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("DECKBUILDER_GAME_STARTING_HAND_SIZE", "3")
	t.Setenv("DECKBUILDER_GAME_SEED", "7")
	t.Setenv("DECKBUILDER_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Game.StartingHandSize)
	assert.Equal(t, uint64(7), cfg.Game.Seed)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "DECKBUILDER_SIMULATION_ROUNDS=9\n")
	t.Chdir(dir)
	t.Cleanup(func() { os.Unsetenv("DECKBUILDER_SIMULATION_ROUNDS") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Simulation.Rounds)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Logging: LoggingConfig{Level: "info", Format: "console"},
			Game: GameConfig{
				StartingHandSize: 5,
				Market:           []CardConfig{{Name: "Copper"}, {Name: "Estate", Cost: 2}},
				StartingDeck:     []DeckEntryConfig{{Card: "Copper", Count: 7}},
			},
		}
	}
	require.NoError(t, valid().Validate())

	buying := valid()
	buying.Simulation.Buy = "Estate"
	require.NoError(t, buying.Validate())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, ErrInvalidConfig},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidConfig},
		{"negative hand size", func(c *Config) { c.Game.StartingHandSize = -1 }, ErrInvalidConfig},
		{"unnamed card", func(c *Config) { c.Game.Market[0].Name = "" }, ErrInvalidConfig},
		{"negative cost", func(c *Config) { c.Game.Market[1].Cost = -2 }, ErrInvalidConfig},
		{"duplicate card", func(c *Config) { c.Game.Market[1].Name = "Copper" }, ErrInvalidConfig},
		{"unknown starting card", func(c *Config) { c.Game.StartingDeck[0].Card = "Curse" }, ErrUnknownCard},
		{"negative count", func(c *Config) { c.Game.StartingDeck[0].Count = -1 }, ErrInvalidConfig},
		{"negative rounds", func(c *Config) { c.Simulation.Rounds = -1 }, ErrInvalidConfig},
		{"negative coins", func(c *Config) { c.Game.Market[0].Coins = -1 }, ErrInvalidConfig},
		{"unknown buy card", func(c *Config) { c.Simulation.Buy = "Platinum" }, ErrUnknownCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}
