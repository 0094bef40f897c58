package game

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ryanbbrown/web-deckbuilding/internal/game/cards"
	"github.com/ryanbbrown/web-deckbuilding/internal/game/market"
	"github.com/ryanbbrown/web-deckbuilding/internal/game/rules"
	"go.uber.org/zap"
)

// DefaultStartingHandSize is the hand size used until SetStartingHandSize is called.
const DefaultStartingHandSize = 5

// ErrInvalidComposition is returned for starting decks with nil definitions or negative counts.
var ErrInvalidComposition = errors.New("invalid starting deck composition")

// DeckEntry is one line of a starting deck: Count copies of Definition.
type DeckEntry struct {
	Definition *cards.Definition
	Count      int
}

// Composition is an ordered starting deck. Cards are created in slice order.
type Composition []DeckEntry

// Size returns the total number of cards in the composition.
func (c Composition) Size() int {
	total := 0
	for _, entry := range c {
		total += entry.Count
	}
	return total
}

// Game coordinates players and the shared market.
//
// A Game is not safe for concurrent use.
type Game struct {
	logger   *zap.Logger
	shuffler Shuffler
	events   *rules.EventBus
	watchers *rules.WatcherRegistry

	market      *market.Market
	players     []*Player
	composition Composition // nil until configured
	handSize    int
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the game logger. Players added without their own logger inherit it.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithGameShuffler sets the random source for starting-deck shuffles. Players
// added without their own shuffler inherit it.
func WithGameShuffler(s Shuffler) Option {
	return func(g *Game) { g.shuffler = s }
}

// WithSeed makes every shuffle in the game deterministic.
func WithSeed(seed uint64) Option {
	return func(g *Game) { g.shuffler = NewSeededShuffler(seed) }
}

// WithMarket uses an existing market instead of an empty one.
func WithMarket(m *market.Market) Option {
	return func(g *Game) { g.market = m }
}

// New creates a game with an empty market, no players and no starting deck.
func New(opts ...Option) *Game {
	g := &Game{
		events:   rules.NewEventBus(),
		watchers: rules.NewWatcherRegistry(),
		players:  make([]*Player, 0),
		handSize: DefaultStartingHandSize,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	if g.shuffler == nil {
		g.shuffler = DefaultShuffler()
	}
	if g.market == nil {
		g.market = market.New()
	}

	g.events.Subscribe(g.watchers.NotifyWatchers)
	return g
}

// AddCardToMarket adds def to the market catalog.
func (g *Game) AddCardToMarket(def *cards.Definition) {
	if !g.market.Add(def) {
		return
	}
	evt := rules.NewEvent(rules.EventMarketCardAdded, def.UID, "")
	evt.Metadata["card_name"] = def.Name
	g.events.Publish(evt)

	g.logger.Debug("card added to market",
		zap.String("card_uid", def.UID),
		zap.String("card_name", def.Name),
		zap.Int("cost", def.Cost),
	)
}

// RemoveCardFromMarket drops def from the market catalog.
func (g *Game) RemoveCardFromMarket(def *cards.Definition) bool {
	if !g.market.Remove(def) {
		return false
	}
	g.events.Publish(rules.NewEvent(rules.EventMarketCardRemoved, def.UID, ""))
	return true
}

// SetStartingDeckComposition replaces the starting deck used for new players.
func (g *Game) SetStartingDeckComposition(composition Composition) error {
	for i, entry := range composition {
		if entry.Definition == nil {
			return fmt.Errorf("entry %d: nil definition: %w", i, ErrInvalidComposition)
		}
		if entry.Count < 0 {
			return fmt.Errorf("entry %d (%s): count %d: %w", i, entry.Definition.Name, entry.Count, ErrInvalidComposition)
		}
	}
	g.composition = append(Composition{}, composition...)

	g.logger.Info("starting deck composition set",
		zap.Int("entries", len(composition)),
		zap.Int("cards", g.composition.Size()),
	)
	return nil
}

// SetStartingHandSize sets the number of cards dealt by DealStartingHands.
func (g *Game) SetStartingHandSize(size int) {
	g.handSize = size
}

// AddPlayer deals the starting deck to p, shuffles it and seats p in the
// game. Returns false without changing anything if no starting deck is
// configured, p is nil or p is already seated.
func (g *Game) AddPlayer(p *Player) bool {
	if g.composition == nil {
		g.logger.Warn("cannot add player before starting deck composition is set")
		return false
	}
	if p == nil {
		return false
	}
	if _, exists := g.Player(p.ID); exists {
		return false
	}

	g.attach(p)

	for _, entry := range g.composition {
		for i := 0; i < entry.Count; i++ {
			if err := p.RegisterCard(cards.NewInstance(entry.Definition), cards.ZoneDeck); err != nil {
				// Fresh instances are never owned and DECK is a player zone.
				panic(fmt.Sprintf("game: dealing starting deck: %v", err))
			}
		}
	}
	p.Shuffle()

	g.players = append(g.players, p)

	evt := rules.NewEvent(rules.EventPlayerJoined, p.ID, p.ID)
	evt.Amount = p.Count(cards.ZoneDeck)
	evt.Metadata["player_name"] = p.Name
	g.events.Publish(evt)

	g.logger.Info("player added",
		zap.String("player_id", p.ID),
		zap.String("player_name", p.Name),
		zap.Int("deck_size", p.Count(cards.ZoneDeck)),
		zap.Int("players", len(g.players)),
	)
	return true
}

// attach connects p to the game's event bus and hands down the game's
// logger and shuffler where p has none of its own.
func (g *Game) attach(p *Player) {
	p.events = g.events
	if p.logger == nil {
		p.logger = g.logger
	}
	if p.shuffler == nil {
		p.shuffler = g.shuffler
	}
}

// GainCard gives the seated player playerID a new copy of def from the
// market. The copy goes to the player's discard pile. Returns false if the
// player is not seated or def is not in the market.
func (g *Game) GainCard(playerID string, def *cards.Definition) (*cards.Instance, bool) {
	p, ok := g.Player(playerID)
	if !ok || !g.market.Has(def) {
		return nil, false
	}

	card := cards.NewInstance(def)
	if err := p.GainCard(card); err != nil {
		// A fresh instance is never owned.
		panic(fmt.Sprintf("game: gaining %s: %v", def.Name, err))
	}

	evt := rules.NewEvent(rules.EventCardGained, card.InstanceID, p.ID)
	evt.Zone = cards.ZoneDiscard
	evt.Amount = 1
	evt.Metadata["card_name"] = def.Name
	evt.Metadata["cost"] = strconv.Itoa(def.Cost)
	g.events.Publish(evt)

	g.logger.Debug("card gained",
		zap.String("player_id", p.ID),
		zap.String("card_name", def.Name),
		zap.Int("cost", def.Cost),
	)
	return card, true
}

// DealStartingHands draws a fresh hand of the starting hand size for every player.
func (g *Game) DealStartingHands() map[string][]*cards.Instance {
	hands := make(map[string][]*cards.Instance, len(g.players))
	for _, p := range g.players {
		hands[p.ID] = p.DrawHand(g.handSize)
	}
	return hands
}

// Player returns the seated player with the given ID.
func (g *Game) Player(id string) (*Player, bool) {
	for _, p := range g.players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Players returns the seated players in join order.
func (g *Game) Players() []*Player {
	return append([]*Player(nil), g.players...)
}

func (g *Game) Market() *market.Market { return g.market }

func (g *Game) StartingHandSize() int { return g.handSize }

// StartingDeckComposition returns a copy of the composition and whether one is set.
func (g *Game) StartingDeckComposition() (Composition, bool) {
	if g.composition == nil {
		return nil, false
	}
	return append(Composition{}, g.composition...), true
}

// Events returns the bus that carries every zone transition in the game.
func (g *Game) Events() *rules.EventBus { return g.events }

// Watchers returns the registry notified of every game event.
func (g *Game) Watchers() *rules.WatcherRegistry { return g.watchers }
