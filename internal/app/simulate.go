package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ryanbbrown/web-deckbuilding/internal/game"
	"github.com/ryanbbrown/web-deckbuilding/internal/game/cards"
	"github.com/ryanbbrown/web-deckbuilding/internal/game/watchers"
	"go.uber.org/zap"
)

var ErrNoPlayers = errors.New("simulation needs at least one player")

// PlayerReport summarizes one player's zones and activity after a simulation.
type PlayerReport struct {
	ID   string
	Name string

	Deck    int
	Hand    int
	Played  int
	Discard int
	Total   int

	CardsDrawn      int
	CardsPlayed     int
	CardsDiscarded  int
	Reshuffles      int
	CardsReshuffled int
	PlayedByName    map[string]int

	CardsGained  int
	GainedByName map[string]int
}

// Report is the outcome of Simulate.
type Report struct {
	Rounds  int
	Players []PlayerReport
}

// Simulate seats a player for every name and plays the given number of
// rounds. Each round every player draws a fresh hand of the starting hand
// size, plays every card in it and buys one market card: the configured
// simulation.buy card, or else the most expensive card the played coins
// afford.
func (a *App) Simulate(ctx context.Context, names []string, rounds int) (*Report, error) {
	if len(names) == 0 {
		return nil, ErrNoPlayers
	}
	if rounds < 0 {
		return nil, fmt.Errorf("rounds %d must not be negative", rounds)
	}

	players := make([]*game.Player, 0, len(names))
	gained := make(map[string]*watchers.CardsGainedWatcher, len(names))
	for _, name := range names {
		p := game.NewPlayer(name)
		if !a.Game.AddPlayer(p) {
			return nil, fmt.Errorf("failed to add player %s", name)
		}
		players = append(players, p)

		w := watchers.NewCardsGainedWatcher(p.ID)
		a.Game.Watchers().AddWatcher(w)
		gained[p.ID] = w
	}

	handSize := a.Game.StartingHandSize()
	for round := 1; round <= rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("simulation stopped at round %d: %w", round, err)
		}
		for _, p := range players {
			hand := p.DrawHand(handSize)
			coins := 0
			for _, card := range hand {
				p.PlayCard(card)
				coins += a.coins[card.Definition.UID]
			}
			if def := a.purchase(coins); def != nil {
				a.Game.GainCard(p.ID, def)
			}
		}
		a.logger.Debug("round complete", zap.Int("round", round))
	}

	report := &Report{Rounds: rounds, Players: make([]PlayerReport, 0, len(players))}
	for _, p := range players {
		if err := p.CheckInvariants(); err != nil {
			return nil, fmt.Errorf("player %s: %w", p.Name, err)
		}
		report.Players = append(report.Players, a.playerReport(p, gained[p.ID]))
	}

	a.logger.Info("simulation finished",
		zap.Int("players", len(players)),
		zap.Int("rounds", rounds),
	)
	return report, nil
}

// purchase picks the card to buy with coins, or nil if nothing is affordable.
// A configured simulation.buy card is bought whatever it costs.
func (a *App) purchase(coins int) *cards.Definition {
	if name := a.Config.Simulation.Buy; name != "" {
		def, _ := a.Game.Market().Lookup(name)
		return def
	}

	var best *cards.Definition
	for _, def := range a.Game.Market().Cards() {
		if def.Cost > coins {
			continue
		}
		if best == nil || def.Cost > best.Cost {
			best = def
		}
	}
	return best
}

func (a *App) playerReport(p *game.Player, gained *watchers.CardsGainedWatcher) PlayerReport {
	r := PlayerReport{
		ID:              p.ID,
		Name:            p.Name,
		Deck:            p.Count(cards.ZoneDeck),
		Hand:            p.Count(cards.ZoneHand),
		Played:          p.Count(cards.ZonePlayed),
		Discard:         p.Count(cards.ZoneDiscard),
		Total:           len(p.AllCards()),
		CardsDrawn:      a.Stats.Drawn.GetCount(p.ID),
		CardsPlayed:     a.Stats.Played.GetCount(p.ID),
		CardsDiscarded:  a.Stats.Discarded.GetCount(p.ID),
		Reshuffles:      a.Stats.Reshuffles.GetCount(p.ID),
		CardsReshuffled: a.Stats.Reshuffles.GetCardsReshuffled(p.ID),
		PlayedByName:    make(map[string]int),
		CardsGained:     gained.GetCount(),
		GainedByName:    make(map[string]int),
	}
	for _, def := range a.Game.Market().Cards() {
		if n := a.Stats.Played.GetCountByName(p.ID, def.Name); n > 0 {
			r.PlayedByName[def.Name] = n
		}
		if n := gained.GetCountByName(def.Name); n > 0 {
			r.GainedByName[def.Name] = n
		}
	}
	return r
}
