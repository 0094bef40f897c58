package rules

import (
	"fmt"
	"sort"
	"sync"
)

// WatcherScope defines the scope of a watcher's tracking.
type WatcherScope int

const (
	// WatcherScopeGame tracks events for the entire game.
	WatcherScopeGame WatcherScope = iota
	// WatcherScopePlayer tracks events for a specific player.
	WatcherScopePlayer
	// WatcherScopeCard tracks events for a specific card.
	WatcherScopeCard
)

// String returns the string representation of the watcher scope.
func (ws WatcherScope) String() string {
	switch ws {
	case WatcherScopeGame:
		return "GAME"
	case WatcherScopePlayer:
		return "PLAYER"
	case WatcherScopeCard:
		return "CARD"
	default:
		return "UNKNOWN"
	}
}

// Watcher observes game events and accumulates state about them.
type Watcher interface {
	// Watch is called for every published event; watchers filter internally.
	Watch(event Event)

	// Reset clears the watcher's condition and state.
	Reset()

	// ConditionMet returns true once the watcher has seen a relevant event.
	ConditionMet() bool

	GetScope() WatcherScope

	// GetKey returns a unique key for this watcher instance.
	// For GAME scope: the type name
	// For PLAYER scope: playerID + type name
	// For CARD scope: cardID + type name
	GetKey() string
}

// BaseWatcher provides the bookkeeping shared by all watchers.
type BaseWatcher struct {
	scope        WatcherScope
	controllerID string
	sourceID     string
	condition    bool
	key          string
}

// NewBaseWatcher creates a new base watcher with the specified scope.
func NewBaseWatcher(scope WatcherScope) *BaseWatcher {
	return &BaseWatcher{scope: scope}
}

func (bw *BaseWatcher) GetScope() WatcherScope { return bw.scope }

// SetControllerID sets the player ID (for PLAYER scope watchers).
func (bw *BaseWatcher) SetControllerID(id string) { bw.controllerID = id }

func (bw *BaseWatcher) GetControllerID() string { return bw.controllerID }

// SetSourceID sets the card ID (for CARD scope watchers).
func (bw *BaseWatcher) SetSourceID(id string) { bw.sourceID = id }

func (bw *BaseWatcher) GetSourceID() string { return bw.sourceID }

func (bw *BaseWatcher) ConditionMet() bool { return bw.condition }

func (bw *BaseWatcher) SetCondition(condition bool) { bw.condition = condition }

// Reset clears the condition.
func (bw *BaseWatcher) Reset() { bw.condition = false }

func (bw *BaseWatcher) GetKey() string { return bw.key }

func (bw *BaseWatcher) SetKey(key string) { bw.key = key }

// WatcherRegistry manages the watchers of a game.
type WatcherRegistry struct {
	mu       sync.RWMutex
	watchers map[string]Watcher
	byScope  map[WatcherScope][]Watcher
}

// NewWatcherRegistry creates a new watcher registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{
		watchers: make(map[string]Watcher),
		byScope:  make(map[WatcherScope][]Watcher),
	}
}

// AddWatcher adds a watcher to the registry, replacing any watcher with the same key.
func (wr *WatcherRegistry) AddWatcher(watcher Watcher) {
	if watcher == nil {
		return
	}

	wr.mu.Lock()
	defer wr.mu.Unlock()

	key := watcher.GetKey()
	if key == "" {
		key = generateKey(watcher)
		if setter, ok := watcher.(interface{ SetKey(string) }); ok {
			setter.SetKey(key)
		}
	}

	if old, exists := wr.watchers[key]; exists {
		wr.removeFromScope(old, key)
	}
	wr.watchers[key] = watcher
	scope := watcher.GetScope()
	wr.byScope[scope] = append(wr.byScope[scope], watcher)
}

// RemoveWatcher removes a watcher from the registry.
func (wr *WatcherRegistry) RemoveWatcher(key string) {
	wr.mu.Lock()
	defer wr.mu.Unlock()

	watcher, ok := wr.watchers[key]
	if !ok {
		return
	}
	delete(wr.watchers, key)
	wr.removeFromScope(watcher, key)
}

func (wr *WatcherRegistry) removeFromScope(watcher Watcher, key string) {
	scope := watcher.GetScope()
	watchers := wr.byScope[scope]
	for i, w := range watchers {
		if w.GetKey() == key {
			wr.byScope[scope] = append(watchers[:i], watchers[i+1:]...)
			break
		}
	}
}

// GetWatcher retrieves a watcher by key.
func (wr *WatcherRegistry) GetWatcher(key string) Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	return wr.watchers[key]
}

// GetWatchersByScope returns all watchers for a given scope.
func (wr *WatcherRegistry) GetWatchersByScope(scope WatcherScope) []Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	result := make([]Watcher, len(wr.byScope[scope]))
	copy(result, wr.byScope[scope])
	return result
}

// Keys returns the keys of all registered watchers, sorted.
func (wr *WatcherRegistry) Keys() []string {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	keys := make([]string, 0, len(wr.watchers))
	for key := range wr.watchers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ResetWatchers resets all watchers.
func (wr *WatcherRegistry) ResetWatchers() {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, watcher := range wr.watchers {
		watcher.Reset()
	}
}

// NotifyWatchers notifies all watchers of an event.
func (wr *WatcherRegistry) NotifyWatchers(event Event) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, watcher := range wr.watchers {
		watcher.Watch(event)
	}
}

func generateKey(watcher Watcher) string {
	typeName := fmt.Sprintf("%T", watcher)
	switch watcher.GetScope() {
	case WatcherScopePlayer:
		if getter, ok := watcher.(interface{ GetControllerID() string }); ok {
			if id := getter.GetControllerID(); id != "" {
				return id + "_" + typeName
			}
		}
	case WatcherScopeCard:
		if getter, ok := watcher.(interface{ GetSourceID() string }); ok {
			if id := getter.GetSourceID(); id != "" {
				return id + "_" + typeName
			}
		}
	}
	return typeName
}
