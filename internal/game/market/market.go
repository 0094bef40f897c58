// Package market holds the catalog of card definitions available in a game.
//
// Every card is an infinite pile: the catalog records which definitions exist,
// never how many copies remain.
package market

import (
	"github.com/ryanbbrown/web-deckbuilding/internal/game/cards"
)

// Market is a set of card definitions keyed by UID, kept in insertion order.
type Market struct {
	byUID map[string]*cards.Definition
	order []string
}

// New creates an empty market.
func New() *Market {
	return &Market{
		byUID: make(map[string]*cards.Definition),
		order: make([]string, 0),
	}
}

// Add puts def in the catalog. Adding a definition that is already present
// has no effect. Returns true if the catalog changed.
func (m *Market) Add(def *cards.Definition) bool {
	if def == nil {
		return false
	}
	if _, exists := m.byUID[def.UID]; exists {
		return false
	}
	m.byUID[def.UID] = def
	m.order = append(m.order, def.UID)
	return true
}

// Remove drops def from the catalog. Returns false if it was not present.
func (m *Market) Remove(def *cards.Definition) bool {
	if def == nil {
		return false
	}
	if _, exists := m.byUID[def.UID]; !exists {
		return false
	}
	delete(m.byUID, def.UID)
	for i, uid := range m.order {
		if uid == def.UID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Has reports whether def is in the catalog.
func (m *Market) Has(def *cards.Definition) bool {
	if def == nil {
		return false
	}
	_, exists := m.byUID[def.UID]
	return exists
}

// Get returns the definition with the given UID.
func (m *Market) Get(uid string) (*cards.Definition, bool) {
	def, ok := m.byUID[uid]
	return def, ok
}

// Lookup returns the first definition (in insertion order) with the given name.
func (m *Market) Lookup(name string) (*cards.Definition, bool) {
	for _, uid := range m.order {
		if def := m.byUID[uid]; def.Name == name {
			return def, true
		}
	}
	return nil, false
}

// Cards returns the catalog in insertion order.
func (m *Market) Cards() []*cards.Definition {
	result := make([]*cards.Definition, 0, len(m.order))
	for _, uid := range m.order {
		result = append(result, m.byUID[uid])
	}
	return result
}

// Len returns the number of definitions in the catalog.
func (m *Market) Len() int {
	return len(m.order)
}
