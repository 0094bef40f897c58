package app

import (
	"fmt"

	"github.com/ryanbbrown/web-deckbuilding/internal/config"
	"github.com/ryanbbrown/web-deckbuilding/internal/game"
	"github.com/ryanbbrown/web-deckbuilding/internal/game/cards"
	"github.com/ryanbbrown/web-deckbuilding/internal/game/watchers"
	"go.uber.org/zap"
)

// App bundles a game built from configuration with its statistics watchers.
type App struct {
	Config *config.Config
	Game   *game.Game
	Stats  *watchers.Standard

	coins  map[string]int // definition UID -> coins when played
	logger *zap.Logger
}

// New builds the market and starting deck described by cfg. A non-zero
// seed in cfg makes every shuffle reproducible.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config: %w", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []game.Option{game.WithLogger(logger)}
	if cfg.Game.Seed != 0 {
		opts = append(opts, game.WithSeed(cfg.Game.Seed))
	}
	g := game.New(opts...)

	coins := make(map[string]int, len(cfg.Game.Market))
	for _, card := range cfg.Game.Market {
		def := cards.NewDefinition(card.Name, card.Text, card.Cost)
		g.AddCardToMarket(def)
		coins[def.UID] = card.Coins
	}

	composition := make(game.Composition, 0, len(cfg.Game.StartingDeck))
	for _, entry := range cfg.Game.StartingDeck {
		def, ok := g.Market().Lookup(entry.Card)
		if !ok {
			return nil, fmt.Errorf("starting deck card %q: %w", entry.Card, config.ErrUnknownCard)
		}
		composition = append(composition, game.DeckEntry{Definition: def, Count: entry.Count})
	}
	if err := g.SetStartingDeckComposition(composition); err != nil {
		return nil, fmt.Errorf("failed to set starting deck: %w", err)
	}
	g.SetStartingHandSize(cfg.Game.StartingHandSize)

	stats := watchers.RegisterStandard(g.Watchers())

	logger.Info("game configured",
		zap.Int("market_cards", g.Market().Len()),
		zap.Int("starting_deck", composition.Size()),
		zap.Int("starting_hand_size", cfg.Game.StartingHandSize),
		zap.Uint64("seed", cfg.Game.Seed),
	)

	return &App{
		Config: cfg,
		Game:   g,
		Stats:  stats,
		coins:  coins,
		logger: logger,
	}, nil
}

// Market returns the configured catalog in configuration order.
func (a *App) Market() []*cards.Definition {
	return a.Game.Market().Cards()
}
