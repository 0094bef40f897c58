package watchers

import (
	"github.com/ryanbbrown/web-deckbuilding/internal/game/rules"
)

// CardsDrawnWatcher tracks cards drawn by players.
type CardsDrawnWatcher struct {
	*rules.BaseWatcher
	cardsDrawn map[string]int // playerID -> count
}

// NewCardsDrawnWatcher creates a new cards drawn watcher.
func NewCardsDrawnWatcher() *CardsDrawnWatcher {
	w := &CardsDrawnWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
		cardsDrawn:  make(map[string]int),
	}
	w.SetKey("CardsDrawnWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *CardsDrawnWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventDrewCard || event.PlayerID == "" {
		return
	}
	w.cardsDrawn[event.PlayerID]++
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *CardsDrawnWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.cardsDrawn = make(map[string]int)
}

// GetCount returns the number of cards drawn by a player.
func (w *CardsDrawnWatcher) GetCount(playerID string) int {
	return w.cardsDrawn[playerID]
}

// CardsPlayedWatcher tracks cards moved from hand to the play area.
type CardsPlayedWatcher struct {
	*rules.BaseWatcher
	byPlayer map[string]int            // playerID -> count
	byName   map[string]map[string]int // playerID -> card name -> count
}

// NewCardsPlayedWatcher creates a new cards played watcher.
func NewCardsPlayedWatcher() *CardsPlayedWatcher {
	w := &CardsPlayedWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
		byPlayer:    make(map[string]int),
		byName:      make(map[string]map[string]int),
	}
	w.SetKey("CardsPlayedWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *CardsPlayedWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventCardPlayed || event.PlayerID == "" {
		return
	}
	w.byPlayer[event.PlayerID]++
	if name := event.Metadata["card_name"]; name != "" {
		if w.byName[event.PlayerID] == nil {
			w.byName[event.PlayerID] = make(map[string]int)
		}
		w.byName[event.PlayerID][name]++
	}
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *CardsPlayedWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.byPlayer = make(map[string]int)
	w.byName = make(map[string]map[string]int)
}

// GetCount returns the number of cards played by a player.
func (w *CardsPlayedWatcher) GetCount(playerID string) int {
	return w.byPlayer[playerID]
}

// GetCountByName returns how many copies of the named card a player has played.
func (w *CardsPlayedWatcher) GetCountByName(playerID, name string) int {
	return w.byName[playerID][name]
}

// ReshuffleWatcher tracks how often each player's discard pile was shuffled
// back into an empty deck.
type ReshuffleWatcher struct {
	*rules.BaseWatcher
	reshuffles map[string]int // playerID -> count
	cards      map[string]int // playerID -> cards reshuffled
}

// NewReshuffleWatcher creates a new reshuffle watcher.
func NewReshuffleWatcher() *ReshuffleWatcher {
	w := &ReshuffleWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
		reshuffles:  make(map[string]int),
		cards:       make(map[string]int),
	}
	w.SetKey("ReshuffleWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *ReshuffleWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventDiscardReshuffled || event.PlayerID == "" {
		return
	}
	w.reshuffles[event.PlayerID]++
	w.cards[event.PlayerID] += event.Amount
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *ReshuffleWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.reshuffles = make(map[string]int)
	w.cards = make(map[string]int)
}

// GetCount returns the number of reshuffles for a player.
func (w *ReshuffleWatcher) GetCount(playerID string) int {
	return w.reshuffles[playerID]
}

// GetCardsReshuffled returns the total number of cards a player has reshuffled.
func (w *ReshuffleWatcher) GetCardsReshuffled(playerID string) int {
	return w.cards[playerID]
}

// CardsDiscardedWatcher tracks cards a player moved to the discard pile,
// whether one at a time or in a batch.
type CardsDiscardedWatcher struct {
	*rules.BaseWatcher
	discarded map[string]int // playerID -> count
}

// NewCardsDiscardedWatcher creates a new cards discarded watcher.
func NewCardsDiscardedWatcher() *CardsDiscardedWatcher {
	w := &CardsDiscardedWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
		discarded:   make(map[string]int),
	}
	w.SetKey("CardsDiscardedWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *CardsDiscardedWatcher) Watch(event rules.Event) {
	if event.PlayerID == "" {
		return
	}
	switch event.Type {
	case rules.EventDiscardedCard, rules.EventDiscardedCards:
		w.discarded[event.PlayerID] += event.Amount
		w.SetCondition(true)
	}
}

// Reset clears the watcher's state.
func (w *CardsDiscardedWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.discarded = make(map[string]int)
}

// GetCount returns the number of cards discarded by a player.
func (w *CardsDiscardedWatcher) GetCount(playerID string) int {
	return w.discarded[playerID]
}

// Standard bundles the watchers every game registers.
type Standard struct {
	Drawn      *CardsDrawnWatcher
	Played     *CardsPlayedWatcher
	Reshuffles *ReshuffleWatcher
	Discarded  *CardsDiscardedWatcher
}

// RegisterStandard adds the standard watchers to registry and returns them.
func RegisterStandard(registry *rules.WatcherRegistry) *Standard {
	s := &Standard{
		Drawn:      NewCardsDrawnWatcher(),
		Played:     NewCardsPlayedWatcher(),
		Reshuffles: NewReshuffleWatcher(),
		Discarded:  NewCardsDiscardedWatcher(),
	}
	registry.AddWatcher(s.Drawn)
	registry.AddWatcher(s.Played)
	registry.AddWatcher(s.Reshuffles)
	registry.AddWatcher(s.Discarded)
	return s
}

// CardsGainedWatcher tracks the market cards one player has gained.
type CardsGainedWatcher struct {
	*rules.BaseWatcher
	gained int
	byName map[string]int
}

// NewCardsGainedWatcher creates a watcher scoped to playerID.
func NewCardsGainedWatcher(playerID string) *CardsGainedWatcher {
	w := &CardsGainedWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopePlayer),
		byName:      make(map[string]int),
	}
	w.SetControllerID(playerID)
	return w
}

// Watch implements the Watcher interface.
func (w *CardsGainedWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventCardGained || event.PlayerID != w.GetControllerID() {
		return
	}
	w.gained++
	w.byName[event.Metadata["card_name"]]++
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *CardsGainedWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.gained = 0
	w.byName = make(map[string]int)
}

func (w *CardsGainedWatcher) GetCount() int { return w.gained }

// GetCountByName returns how many copies of the named card were gained.
func (w *CardsGainedWatcher) GetCountByName(name string) int {
	return w.byName[name]
}
