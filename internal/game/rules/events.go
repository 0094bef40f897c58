package rules

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ryanbbrown/web-deckbuilding/internal/game/cards"
)

// EventType indicates the category of a game event.
type EventType string

const (
	// Player/game events
	EventPlayerJoined      EventType = "PLAYER_JOINED"
	EventMarketCardAdded   EventType = "MARKET_CARD_ADDED"
	EventMarketCardRemoved EventType = "MARKET_CARD_REMOVED"

	// Zone events
	EventCardRegistered EventType = "CARD_REGISTERED"
	EventCardGained     EventType = "CARD_GAINED"
	EventZoneChange     EventType = "ZONE_CHANGE"

	// Deck events
	EventDrewCard          EventType = "DREW_CARD"
	EventDrewHand          EventType = "DREW_HAND"
	EventDeckShuffled      EventType = "DECK_SHUFFLED"
	EventDiscardReshuffled EventType = "DISCARD_RESHUFFLED"

	// Play/discard events
	EventCardPlayed     EventType = "CARD_PLAYED"
	EventDiscardedCard  EventType = "DISCARDED_CARD"
	EventDiscardedCards EventType = "DISCARDED_CARDS" // batch event
)

// IsBatch returns true if this event type summarises several moves.
func (et EventType) IsBatch() bool {
	switch et {
	case EventDiscardedCards, EventDiscardReshuffled, EventDrewHand:
		return true
	}
	return false
}

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type        EventType
	ID          string            // Unique event ID
	TargetID    string            // Card instance or definition the event is about
	PlayerID    string            // Player the event belongs to
	FromZone    cards.Zone        // Source zone for moves
	Zone        cards.Zone        // Destination zone for moves
	Amount      int               // Card count for batch events
	Targets     []string          // Card instance IDs for batch events
	Timestamp   time.Time
	Metadata    map[string]string
	Description string
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	listenerOrder  []int
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	bus.listenerOrder = append(bus.listenerOrder, handle)
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by handle, whether it was
// registered with Subscribe or SubscribeTyped.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	if _, ok := bus.listeners[handle]; ok {
		delete(bus.listeners, handle)
		for i, h := range bus.listenerOrder {
			if h == handle {
				bus.listenerOrder = append(bus.listenerOrder[:i], bus.listenerOrder[i+1:]...)
				break
			}
		}
		return
	}
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously, in
// subscription order. Listeners must not subscribe or unsubscribe from inside
// the callback.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, handle := range bus.listenerOrder {
		bus.listeners[handle](event)
	}
	for _, listener := range bus.typedListeners[event.Type] {
		listener.Callback(event)
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, targetID, playerID string) Event {
	return Event{
		Type:      eventType,
		ID:        uuid.New().String(),
		TargetID:  targetID,
		PlayerID:  playerID,
		Timestamp: time.Now(),
		Metadata:  make(map[string]string),
	}
}

// NewMoveEvent creates an event describing a card moving between two zones.
func NewMoveEvent(eventType EventType, card *cards.Instance, from, to cards.Zone) Event {
	evt := NewEvent(eventType, card.InstanceID, card.OwnerID)
	evt.FromZone = from
	evt.Zone = to
	evt.Amount = 1
	evt.Metadata["card_name"] = card.Name()
	evt.Metadata["source_zone"] = from.String()
	evt.Metadata["target_zone"] = to.String()
	return evt
}

// NewBatchEvent creates an event summarising several cards of one player.
func NewBatchEvent(eventType EventType, playerID string, moved []*cards.Instance) Event {
	evt := NewEvent(eventType, "", playerID)
	evt.Amount = len(moved)
	evt.Targets = make([]string, 0, len(moved))
	for _, card := range moved {
		evt.Targets = append(evt.Targets, card.InstanceID)
	}
	return evt
}
