package market

import (
	"testing"

	"github.com/ryanbbrown/web-deckbuilding/internal/game/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketAddIsIdempotent(t *testing.T) {
	m := New()
	copper := cards.NewDefinition("Copper", "+1 coin", 0)

	assert.True(t, m.Add(copper))
	assert.False(t, m.Add(copper))
	assert.Equal(t, 1, m.Len())
	assert.True(t, m.Has(copper))
	assert.False(t, m.Add(nil))
}

func TestMarketIdentityIsByUID(t *testing.T) {
	m := New()
	a := cards.NewDefinition("Copper", "+1 coin", 0)
	b := cards.NewDefinition("Copper", "+1 coin", 0)

	m.Add(a)
	m.Add(b)
	assert.Equal(t, 2, m.Len(), "same name, different uid")

	clone := *a
	assert.True(t, m.Has(&clone), "copy with the same uid is the same definition")
	assert.False(t, m.Add(&clone))
}

func TestMarketCardsKeepInsertionOrder(t *testing.T) {
	m := New()
	names := []string{"Copper", "Silver", "Gold", "Estate"}
	for _, name := range names {
		m.Add(cards.NewDefinition(name, "", 0))
	}

	got := make([]string, 0, len(names))
	for _, def := range m.Cards() {
		got = append(got, def.Name)
	}
	assert.Equal(t, names, got)
}

func TestMarketRemove(t *testing.T) {
	m := New()
	copper := cards.NewDefinition("Copper", "+1 coin", 0)
	silver := cards.NewDefinition("Silver", "+2 coin", 3)
	m.Add(copper)
	m.Add(silver)

	assert.True(t, m.Remove(copper))
	assert.False(t, m.Remove(copper))
	assert.False(t, m.Has(copper))
	require.Len(t, m.Cards(), 1)
	assert.Same(t, silver, m.Cards()[0])
}

func TestMarketLookup(t *testing.T) {
	m := New()
	silver := cards.NewDefinition("Silver", "+2 coin", 3)
	m.Add(silver)

	def, ok := m.Lookup("Silver")
	require.True(t, ok)
	assert.Same(t, silver, def)

	byUID, ok := m.Get(silver.UID)
	require.True(t, ok)
	assert.Same(t, silver, byUID)

	_, ok = m.Lookup("Province")
	assert.False(t, ok)
}
