package cards

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Zone identifies where a card instance currently lives.
type Zone int

const (
	ZoneDeck Zone = iota
	ZoneHand
	ZonePlayed
	ZoneDiscard
	ZoneMarket
)

// PlayerZones is the number of zones a player owns (deck, hand, played, discard).
const PlayerZones = 4

// String returns the string representation of the zone.
func (z Zone) String() string {
	switch z {
	case ZoneDeck:
		return "DECK"
	case ZoneHand:
		return "HAND"
	case ZonePlayed:
		return "PLAYED"
	case ZoneDiscard:
		return "DISCARD"
	case ZoneMarket:
		return "MARKET"
	default:
		return "UNKNOWN"
	}
}

// PlayerOwned reports whether the zone is one of the four zones held by a player.
func (z Zone) PlayerOwned() bool {
	return z >= ZoneDeck && z <= ZoneDiscard
}

// ParseZone converts a zone name (case-insensitive) to a Zone.
func ParseZone(s string) (Zone, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DECK":
		return ZoneDeck, nil
	case "HAND":
		return ZoneHand, nil
	case "PLAYED":
		return ZonePlayed, nil
	case "DISCARD":
		return ZoneDiscard, nil
	case "MARKET":
		return ZoneMarket, nil
	}
	return 0, fmt.Errorf("unknown zone %q", s)
}

// Definition is the immutable template shared by every copy of a printed card.
// Definitions are compared by UID and must not be mutated after creation.
type Definition struct {
	Name string
	Text string
	Cost int
	UID  string
}

// NewDefinition creates a definition with a fresh UID.
func NewDefinition(name, text string, cost int) *Definition {
	return &Definition{
		Name: name,
		Text: text,
		Cost: cost,
		UID:  uuid.New().String(),
	}
}

func (d *Definition) String() string {
	return fmt.Sprintf("%s (%d)", d.Name, d.Cost)
}

// Instance is one physical copy of a Definition.
type Instance struct {
	Definition *Definition
	OwnerID    string // empty until the card is gained
	Zone       Zone
	InstanceID string
}

// NewInstance creates an unowned copy of def sitting in the market.
func NewInstance(def *Definition) *Instance {
	return &Instance{
		Definition: def,
		Zone:       ZoneMarket,
		InstanceID: uuid.New().String(),
	}
}

// Name returns the name of the underlying definition.
func (c *Instance) Name() string {
	if c.Definition == nil {
		return ""
	}
	return c.Definition.Name
}

// Owned reports whether the card has been gained by a player.
func (c *Instance) Owned() bool {
	return c.OwnerID != ""
}

// Valid reports whether the ownership and zone agree: owned cards live in a
// player zone, unowned cards live in the market.
func (c *Instance) Valid() bool {
	if c.Owned() {
		return c.Zone.PlayerOwned()
	}
	return c.Zone == ZoneMarket
}
