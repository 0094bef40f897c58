package rules

import (
	"testing"
)

func TestWatcherRegistry(t *testing.T) {
	registry := NewWatcherRegistry()

	testWatcher := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopeGame)}
	testWatcher.SetKey("TestWatcher")

	registry.AddWatcher(testWatcher)

	if registry.GetWatcher("TestWatcher") == nil {
		t.Fatal("should retrieve TestWatcher")
	}

	gameWatchers := registry.GetWatchersByScope(WatcherScopeGame)
	if len(gameWatchers) != 1 {
		t.Fatalf("expected 1 game watcher, got %d", len(gameWatchers))
	}

	registry.NotifyWatchers(NewEvent(EventCardPlayed, "card1", "player1"))
	if !testWatcher.ConditionMet() {
		t.Fatal("testWatcher should have condition met")
	}
	if testWatcher.seen != 1 {
		t.Fatalf("expected 1 event seen, got %d", testWatcher.seen)
	}

	registry.ResetWatchers()
	if testWatcher.ConditionMet() {
		t.Fatal("watcher should not have condition met after reset")
	}

	registry.RemoveWatcher("TestWatcher")
	if registry.GetWatcher("TestWatcher") != nil {
		t.Fatal("watcher should be removed")
	}
	if len(registry.GetWatchersByScope(WatcherScopeGame)) != 0 {
		t.Fatal("watcher should be removed from its scope")
	}
}

func TestWatcherRegistryGeneratesKeys(t *testing.T) {
	registry := NewWatcherRegistry()

	gameWatcher := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopeGame)}
	playerWatcher := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopePlayer)}
	playerWatcher.SetControllerID("player1")
	cardWatcher := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopeCard)}
	cardWatcher.SetSourceID("card1")

	registry.AddWatcher(gameWatcher)
	registry.AddWatcher(playerWatcher)
	registry.AddWatcher(cardWatcher)

	if gameWatcher.GetKey() != "*rules.testWatcherImpl" {
		t.Fatalf("unexpected game key %q", gameWatcher.GetKey())
	}
	if playerWatcher.GetKey() != "player1_*rules.testWatcherImpl" {
		t.Fatalf("unexpected player key %q", playerWatcher.GetKey())
	}
	if cardWatcher.GetKey() != "card1_*rules.testWatcherImpl" {
		t.Fatalf("unexpected card key %q", cardWatcher.GetKey())
	}
	if got := len(registry.Keys()); got != 3 {
		t.Fatalf("expected 3 keys, got %d", got)
	}
}

func TestWatcherRegistryReplacesSameKey(t *testing.T) {
	registry := NewWatcherRegistry()

	first := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopeGame)}
	first.SetKey("Dup")
	second := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopeGame)}
	second.SetKey("Dup")

	registry.AddWatcher(first)
	registry.AddWatcher(second)

	if registry.GetWatcher("Dup") != second {
		t.Fatal("expected second watcher to replace the first")
	}
	if n := len(registry.GetWatchersByScope(WatcherScopeGame)); n != 1 {
		t.Fatalf("expected 1 game watcher after replacement, got %d", n)
	}
}

func TestWatcherScopeString(t *testing.T) {
	if WatcherScopeGame.String() != "GAME" || WatcherScopePlayer.String() != "PLAYER" || WatcherScopeCard.String() != "CARD" {
		t.Fatal("unexpected scope names")
	}
	if WatcherScope(9).String() != "UNKNOWN" {
		t.Fatal("expected UNKNOWN for out-of-range scope")
	}
}

// testWatcherImpl counts CARD_PLAYED events.
type testWatcherImpl struct {
	*BaseWatcher
	seen int
}

func (t *testWatcherImpl) Watch(event Event) {
	if event.Type == EventCardPlayed {
		t.seen++
		t.SetCondition(true)
	}
}

func (t *testWatcherImpl) Reset() {
	t.BaseWatcher.Reset()
	t.seen = 0
}
