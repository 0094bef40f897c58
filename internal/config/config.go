package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// DECKBUILDER_GAME_STARTING_HAND_SIZE.
const EnvPrefix = "DECKBUILDER"

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnknownCard   = errors.New("unknown card")
)

// Config holds all configuration for the deckbuilder
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Game       GameConfig       `mapstructure:"game"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GameConfig describes the market and the starting deck dealt to every player.
type GameConfig struct {
	StartingHandSize int `mapstructure:"starting_hand_size"`
	// Seed makes shuffles reproducible. Zero means a random seed.
	Seed         uint64            `mapstructure:"seed"`
	Market       []CardConfig      `mapstructure:"market"`
	StartingDeck []DeckEntryConfig `mapstructure:"starting_deck"`
}

// CardConfig is one market card definition. Coins is what the card is worth
// when played during a simulation.
type CardConfig struct {
	Name  string `mapstructure:"name"`
	Text  string `mapstructure:"text"`
	Cost  int    `mapstructure:"cost"`
	Coins int    `mapstructure:"coins"`
}

// DeckEntryConfig asks for Count copies of the market card named Card.
type DeckEntryConfig struct {
	Card  string `mapstructure:"card"`
	Count int    `mapstructure:"count"`
}

// SimulationConfig holds defaults for the simulate command
type SimulationConfig struct {
	Players []string `mapstructure:"players"`
	Rounds  int      `mapstructure:"rounds"`
	// Buy names the card every player buys each round. Empty buys the most
	// expensive card the played hand can afford.
	Buy string `mapstructure:"buy"`
}

// Load reads configuration from path (YAML), a .env file in the working
// directory and DECKBUILDER_* environment variables, in increasing order of
// precedence over the built-in defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.starting_hand_size", 5)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.market", []map[string]any{
		{"name": "Copper", "text": "+1 coin", "cost": 0, "coins": 1},
		{"name": "Silver", "text": "+2 coins", "cost": 3, "coins": 2},
		{"name": "Gold", "text": "+3 coins", "cost": 6, "coins": 3},
		{"name": "Estate", "text": "1 victory point", "cost": 2},
		{"name": "Duchy", "text": "3 victory points", "cost": 5},
		{"name": "Province", "text": "6 victory points", "cost": 8},
	})
	v.SetDefault("game.starting_deck", []map[string]any{
		{"card": "Copper", "count": 7},
		{"card": "Estate", "count": 3},
	})

	v.SetDefault("simulation.players", []string{"Alice", "Bob"})
	v.SetDefault("simulation.rounds", 3)
	v.SetDefault("simulation.buy", "")
}

// Validate checks that the configuration describes a playable game.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q: %w", c.Logging.Level, ErrInvalidConfig)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q: %w", c.Logging.Format, ErrInvalidConfig)
	}

	if c.Game.StartingHandSize < 0 {
		return fmt.Errorf("game.starting_hand_size %d: %w", c.Game.StartingHandSize, ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Game.Market))
	for i, card := range c.Game.Market {
		if card.Name == "" {
			return fmt.Errorf("game.market[%d]: missing name: %w", i, ErrInvalidConfig)
		}
		if card.Cost < 0 {
			return fmt.Errorf("game.market[%d] %s: negative cost: %w", i, card.Name, ErrInvalidConfig)
		}
		if card.Coins < 0 {
			return fmt.Errorf("game.market[%d] %s: negative coins: %w", i, card.Name, ErrInvalidConfig)
		}
		if seen[card.Name] {
			return fmt.Errorf("game.market[%d]: duplicate card %s: %w", i, card.Name, ErrInvalidConfig)
		}
		seen[card.Name] = true
	}

	for i, entry := range c.Game.StartingDeck {
		if !seen[entry.Card] {
			return fmt.Errorf("game.starting_deck[%d] %q: %w", i, entry.Card, ErrUnknownCard)
		}
		if entry.Count < 0 {
			return fmt.Errorf("game.starting_deck[%d] %s: negative count: %w", i, entry.Card, ErrInvalidConfig)
		}
	}

	if c.Simulation.Rounds < 0 {
		return fmt.Errorf("simulation.rounds %d: %w", c.Simulation.Rounds, ErrInvalidConfig)
	}
	if c.Simulation.Buy != "" {
		if _, ok := c.Game.Card(c.Simulation.Buy); !ok {
			return fmt.Errorf("simulation.buy %q: %w", c.Simulation.Buy, ErrUnknownCard)
		}
	}
	return nil
}

// Card returns the market card with the given name.
func (g GameConfig) Card(name string) (CardConfig, bool) {
	for _, card := range g.Market {
		if card.Name == name {
			return card, true
		}
	}
	return CardConfig{}, false
}
