package game

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/ryanbbrown/web-deckbuilding/internal/game/cards"
	"github.com/ryanbbrown/web-deckbuilding/internal/game/rules"
	"go.uber.org/zap"
)

var (
	// ErrCardNotInZone is returned when a move names a source zone that does not hold the card.
	ErrCardNotInZone = errors.New("card not in zone")
	// ErrInvalidZone is returned for zones a player does not own (MARKET or out of range).
	ErrInvalidZone = errors.New("zone is not a player zone")
	// ErrAlreadyOwned is returned when registering a card that already has an owner.
	ErrAlreadyOwned = errors.New("card already owned")
)

// Player owns a collection of card instances partitioned into deck, hand,
// played and discard. Every card in AllCards is in exactly one zone and its
// Zone field names that zone.
//
// A Player is not safe for concurrent use.
type Player struct {
	Name string
	ID   string

	allCards []*cards.Instance
	zones    [cards.PlayerZones][]*cards.Instance

	shuffler Shuffler
	logger   *zap.Logger
	events   *rules.EventBus
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithShuffler sets the random source used for deck shuffles.
func WithShuffler(s Shuffler) PlayerOption {
	return func(p *Player) { p.shuffler = s }
}

// WithPlayerLogger sets the logger used for zone transitions.
func WithPlayerLogger(logger *zap.Logger) PlayerOption {
	return func(p *Player) { p.logger = logger }
}

// WithPlayerID overrides the generated player ID.
func WithPlayerID(id string) PlayerOption {
	return func(p *Player) { p.ID = id }
}

// NewPlayer creates a player with empty zones.
func NewPlayer(name string, opts ...PlayerOption) *Player {
	p := &Player{
		Name:     name,
		ID:       uuid.New().String(),
		allCards: make([]*cards.Instance, 0),
	}
	for i := range p.zones {
		p.zones[i] = make([]*cards.Instance, 0)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RegisterCard attaches a newly gained card to the player in the given zone.
func (p *Player) RegisterCard(card *cards.Instance, zone cards.Zone) error {
	if card == nil {
		return fmt.Errorf("register card: card is nil")
	}
	if !zone.PlayerOwned() {
		return fmt.Errorf("register card %s in %s: %w", card.InstanceID, zone, ErrInvalidZone)
	}
	if card.Owned() {
		return fmt.Errorf("register card %s: %w by %s", card.InstanceID, ErrAlreadyOwned, card.OwnerID)
	}

	card.OwnerID = p.ID
	card.Zone = zone
	p.allCards = append(p.allCards, card)
	p.zones[zone] = append(p.zones[zone], card)

	evt := rules.NewEvent(rules.EventCardRegistered, card.InstanceID, p.ID)
	evt.Zone = zone
	evt.Metadata["card_name"] = card.Name()
	p.publish(evt)

	p.log().Debug("registered card",
		zap.String("player_id", p.ID),
		zap.String("card_id", card.InstanceID),
		zap.String("card_name", card.Name()),
		zap.Stringer("zone", zone),
	)
	return nil
}

// GainCard registers a card into the discard pile, where gained cards go by default.
func (p *Player) GainCard(card *cards.Instance) error {
	return p.RegisterCard(card, cards.ZoneDiscard)
}

// Move moves card from one player zone to another. It returns
// ErrCardNotInZone if the card is not in from and ErrInvalidZone if either
// zone is not a player zone; the player is unchanged in both cases.
func (p *Player) Move(card *cards.Instance, from, to cards.Zone) error {
	if err := p.move(card, from, to); err != nil {
		name := "<nil>"
		if card != nil {
			name = card.InstanceID
		}
		return fmt.Errorf("move %s from %s to %s: %w", name, from, to, err)
	}
	return nil
}

// DrawCard moves the top card of the deck into the hand. An empty deck is
// first refilled from the discard pile and shuffled. Returns false when both
// deck and discard are empty.
func (p *Player) DrawCard() (*cards.Instance, bool) {
	if len(p.zones[cards.ZoneDeck]) == 0 && len(p.zones[cards.ZoneDiscard]) > 0 {
		p.reshuffleDiscard()
	}

	deck := p.zones[cards.ZoneDeck]
	if len(deck) == 0 {
		return nil, false
	}

	card := deck[len(deck)-1]
	p.mustMove(card, cards.ZoneDeck, cards.ZoneHand)
	p.publish(rules.NewMoveEvent(rules.EventDrewCard, card, cards.ZoneDeck, cards.ZoneHand))
	return card, true
}

// DrawHand discards everything in play and in hand, then draws up to size
// cards. The returned slice is shorter than size when deck and discard run out.
func (p *Player) DrawHand(size int) []*cards.Instance {
	p.DiscardAllInPlay()
	p.DiscardAllInHand()

	drawn := make([]*cards.Instance, 0, max(size, 0))
	for i := 0; i < size; i++ {
		card, ok := p.DrawCard()
		if !ok {
			break
		}
		drawn = append(drawn, card)
	}

	evt := rules.NewBatchEvent(rules.EventDrewHand, p.ID, drawn)
	evt.Metadata["requested"] = strconv.Itoa(size)
	p.publish(evt)

	p.log().Debug("drew hand",
		zap.String("player_id", p.ID),
		zap.Int("requested", size),
		zap.Int("drawn", len(drawn)),
	)
	return drawn
}

// PlayCard moves card from hand to the play area. Returns false if the card
// is not in hand.
func (p *Player) PlayCard(card *cards.Instance) bool {
	if !p.contains(cards.ZoneHand, card) {
		return false
	}
	p.mustMove(card, cards.ZoneHand, cards.ZonePlayed)
	p.publish(rules.NewMoveEvent(rules.EventCardPlayed, card, cards.ZoneHand, cards.ZonePlayed))
	return true
}

// DiscardCard moves card from hand or the play area to the discard pile.
// Returns false if from is neither HAND nor PLAYED or the card is not there.
func (p *Player) DiscardCard(card *cards.Instance, from cards.Zone) bool {
	if from != cards.ZoneHand && from != cards.ZonePlayed {
		return false
	}
	if !p.contains(from, card) {
		return false
	}
	p.mustMove(card, from, cards.ZoneDiscard)
	p.publish(rules.NewMoveEvent(rules.EventDiscardedCard, card, from, cards.ZoneDiscard))
	return true
}

// DiscardAllInPlay moves every played card to the discard pile in order.
// Returns false if nothing was in play.
func (p *Player) DiscardAllInPlay() bool {
	return p.discardAll(cards.ZonePlayed)
}

// DiscardAllInHand moves every card in hand to the discard pile in order.
// Returns false if the hand was empty.
func (p *Player) DiscardAllInHand() bool {
	return p.discardAll(cards.ZoneHand)
}

// Shuffle randomly permutes the deck.
func (p *Player) Shuffle() {
	deck := p.zones[cards.ZoneDeck]
	p.shuffle().Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	evt := rules.NewEvent(rules.EventDeckShuffled, "", p.ID)
	evt.Amount = len(deck)
	p.publish(evt)
}

func (p *Player) discardAll(from cards.Zone) bool {
	if len(p.zones[from]) == 0 {
		return false
	}

	moved := append([]*cards.Instance(nil), p.zones[from]...)
	for len(p.zones[from]) > 0 {
		p.mustMove(p.zones[from][0], from, cards.ZoneDiscard)
	}

	evt := rules.NewBatchEvent(rules.EventDiscardedCards, p.ID, moved)
	evt.FromZone = from
	evt.Zone = cards.ZoneDiscard
	evt.Metadata["source_zone"] = from.String()
	p.publish(evt)
	return true
}

func (p *Player) reshuffleDiscard() {
	moved := make([]*cards.Instance, 0, len(p.zones[cards.ZoneDiscard]))
	for len(p.zones[cards.ZoneDiscard]) > 0 {
		discard := p.zones[cards.ZoneDiscard]
		card := discard[len(discard)-1]
		p.mustMove(card, cards.ZoneDiscard, cards.ZoneDeck)
		moved = append(moved, card)
	}
	p.Shuffle()

	p.publish(rules.NewBatchEvent(rules.EventDiscardReshuffled, p.ID, moved))
	p.log().Debug("reshuffled discard into deck",
		zap.String("player_id", p.ID),
		zap.Int("cards", len(moved)),
	)
}

// move is the single primitive that changes a card's zone: remove by
// identity from the source, append to the destination, update Zone.
func (p *Player) move(card *cards.Instance, from, to cards.Zone) error {
	if card == nil {
		return ErrCardNotInZone
	}
	if !from.PlayerOwned() || !to.PlayerOwned() {
		return ErrInvalidZone
	}
	idx := p.indexOf(from, card)
	if idx < 0 {
		return ErrCardNotInZone
	}

	src := p.zones[from]
	p.zones[from] = append(src[:idx], src[idx+1:]...)
	p.zones[to] = append(p.zones[to], card)
	card.Zone = to

	evt := rules.NewMoveEvent(rules.EventZoneChange, card, from, to)
	evt.Description = fmt.Sprintf("%s moved from %s to %s", card.Name(), from, to)
	p.publish(evt)

	p.log().Debug("moved card",
		zap.String("player_id", p.ID),
		zap.String("card_id", card.InstanceID),
		zap.String("card_name", card.Name()),
		zap.Stringer("source_zone", from),
		zap.Stringer("target_zone", to),
	)
	return nil
}

// mustMove is used after the caller has established the card is in from.
// A failure means the zone bookkeeping is corrupt.
func (p *Player) mustMove(card *cards.Instance, from, to cards.Zone) {
	if err := p.move(card, from, to); err != nil {
		p.log().Error("zone invariant violated",
			zap.String("player_id", p.ID),
			zap.Stringer("source_zone", from),
			zap.Stringer("target_zone", to),
			zap.Error(err),
		)
		panic(fmt.Sprintf("game: player %s: move from %s to %s: %v", p.ID, from, to, err))
	}
}

// indexOf scans from the end: draws and reshuffles always take the last card.
func (p *Player) indexOf(zone cards.Zone, card *cards.Instance) int {
	list := p.zones[zone]
	for i := len(list) - 1; i >= 0; i-- {
		if list[i] == card {
			return i
		}
	}
	return -1
}

func (p *Player) contains(zone cards.Zone, card *cards.Instance) bool {
	if card == nil || !zone.PlayerOwned() {
		return false
	}
	return p.indexOf(zone, card) >= 0
}

// Cards returns a copy of the cards in a player zone, bottom to top.
func (p *Player) Cards(zone cards.Zone) []*cards.Instance {
	if !zone.PlayerOwned() {
		return nil
	}
	return append([]*cards.Instance(nil), p.zones[zone]...)
}

// Count returns the number of cards in a player zone.
func (p *Player) Count(zone cards.Zone) int {
	if !zone.PlayerOwned() {
		return 0
	}
	return len(p.zones[zone])
}

func (p *Player) Deck() []*cards.Instance    { return p.Cards(cards.ZoneDeck) }
func (p *Player) Hand() []*cards.Instance    { return p.Cards(cards.ZoneHand) }
func (p *Player) Played() []*cards.Instance  { return p.Cards(cards.ZonePlayed) }
func (p *Player) Discard() []*cards.Instance { return p.Cards(cards.ZoneDiscard) }

// AllCards returns every card ever registered to the player, in registration order.
func (p *Player) AllCards() []*cards.Instance {
	return append([]*cards.Instance(nil), p.allCards...)
}

// CheckInvariants verifies that the zones partition AllCards and that every
// card's owner and zone fields agree with where it is stored.
func (p *Player) CheckInvariants() error {
	seen := make(map[*cards.Instance]cards.Zone, len(p.allCards))
	for z := cards.ZoneDeck; z <= cards.ZoneDiscard; z++ {
		for _, card := range p.zones[z] {
			if prev, dup := seen[card]; dup {
				return fmt.Errorf("card %s in both %s and %s", card.InstanceID, prev, z)
			}
			seen[card] = z
			if card.Zone != z {
				return fmt.Errorf("card %s stored in %s but marked %s", card.InstanceID, z, card.Zone)
			}
			if card.OwnerID != p.ID {
				return fmt.Errorf("card %s in %s owned by %q", card.InstanceID, z, card.OwnerID)
			}
		}
	}
	if len(seen) != len(p.allCards) {
		return fmt.Errorf("zones hold %d cards, all cards has %d", len(seen), len(p.allCards))
	}
	for _, card := range p.allCards {
		if _, ok := seen[card]; !ok {
			return fmt.Errorf("card %s registered but in no zone", card.InstanceID)
		}
	}
	return nil
}

func (p *Player) publish(evt rules.Event) {
	if p.events != nil {
		p.events.Publish(evt)
	}
}

func (p *Player) shuffle() Shuffler {
	if p.shuffler == nil {
		return DefaultShuffler()
	}
	return p.shuffler
}

func (p *Player) log() *zap.Logger {
	if p.logger == nil {
		return zap.NewNop()
	}
	return p.logger
}
