package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefinition(t *testing.T) {
	copper := NewDefinition("Copper", "+1 coin", 0)
	silver := NewDefinition("Silver", "+2 coin", 3)

	assert.Equal(t, "Copper", copper.Name)
	assert.Equal(t, "+1 coin", copper.Text)
	assert.Equal(t, 0, copper.Cost)
	assert.NotEmpty(t, copper.UID)
	assert.NotEqual(t, copper.UID, silver.UID)
	assert.Equal(t, "Silver (3)", silver.String())
}

func TestNewInstanceStartsInMarket(t *testing.T) {
	copper := NewDefinition("Copper", "+1 coin", 0)
	a := NewInstance(copper)
	b := NewInstance(copper)

	assert.Same(t, copper, a.Definition)
	assert.Same(t, a.Definition, b.Definition)
	assert.Equal(t, ZoneMarket, a.Zone)
	assert.False(t, a.Owned())
	assert.NotEqual(t, a.InstanceID, b.InstanceID)
	assert.Equal(t, "Copper", a.Name())
	assert.True(t, a.Valid())
}

func TestInstanceValid(t *testing.T) {
	card := NewInstance(NewDefinition("Estate", "1 VP", 2))

	card.Zone = ZoneHand
	assert.False(t, card.Valid(), "unowned card outside the market")

	card.OwnerID = "player-1"
	for _, z := range []Zone{ZoneDeck, ZoneHand, ZonePlayed, ZoneDiscard} {
		card.Zone = z
		assert.True(t, card.Valid(), "owned card in %s", z)
	}

	card.Zone = ZoneMarket
	assert.False(t, card.Valid(), "owned card in the market")
}

func TestZoneStrings(t *testing.T) {
	tests := []struct {
		zone Zone
		name string
	}{
		{ZoneDeck, "DECK"},
		{ZoneHand, "HAND"},
		{ZonePlayed, "PLAYED"},
		{ZoneDiscard, "DISCARD"},
		{ZoneMarket, "MARKET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.zone.String())
			parsed, err := ParseZone(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.zone, parsed)
		})
	}

	assert.Equal(t, "UNKNOWN", Zone(42).String())
	_, err := ParseZone("graveyard")
	assert.Error(t, err)

	z, err := ParseZone(" played ")
	require.NoError(t, err)
	assert.Equal(t, ZonePlayed, z)
}

func TestPlayerOwned(t *testing.T) {
	assert.True(t, ZoneDeck.PlayerOwned())
	assert.True(t, ZoneDiscard.PlayerOwned())
	assert.False(t, ZoneMarket.PlayerOwned())
	assert.False(t, Zone(-1).PlayerOwned())
}
