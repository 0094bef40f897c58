package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ryanbbrown/web-deckbuilding/internal/app"
)

// simulate: seat players and play a few rounds of draw-and-play-everything.
func simulateCmd() *cobra.Command {
	var (
		players []string
		rounds  int
		seed    uint64
		buy     string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Deal starting decks and play every card for a number of rounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				cfg.Game.Seed = seed
			}
			if !cmd.Flags().Changed("players") {
				players = cfg.Simulation.Players
			}
			if !cmd.Flags().Changed("rounds") {
				rounds = cfg.Simulation.Rounds
			}
			if cmd.Flags().Changed("buy") {
				cfg.Simulation.Buy = buy
			}

			a, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			report, err := a.Simulate(cmd.Context(), players, rounds)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&players, "players", nil, "comma separated player names (default from config)")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "rounds to play (default from config)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "shuffle seed; 0 picks a random one")
	cmd.Flags().StringVar(&buy, "buy", "", "card every player buys each round (default: most expensive affordable)")
	return cmd
}

func printReport(w io.Writer, report *app.Report) {
	title := color.New(color.FgGreen, color.Bold)
	label := color.New(color.FgCyan)
	warn := color.New(color.FgYellow)

	title.Fprintf(w, "Simulated %d round(s) for %d player(s)\n", report.Rounds, len(report.Players))
	for _, p := range report.Players {
		fmt.Fprintln(w)
		title.Fprintf(w, "%s\n", p.Name)
		label.Fprint(w, "  zones     ")
		fmt.Fprintf(w, "deck %d  hand %d  played %d  discard %d  (total %d)\n",
			p.Deck, p.Hand, p.Played, p.Discard, p.Total)
		label.Fprint(w, "  activity  ")
		fmt.Fprintf(w, "drawn %d  played %d  discarded %d\n",
			p.CardsDrawn, p.CardsPlayed, p.CardsDiscarded)
		label.Fprint(w, "  reshuffle ")
		if p.Reshuffles == 0 {
			warn.Fprintln(w, "none")
		} else {
			fmt.Fprintf(w, "%d time(s), %d card(s)\n", p.Reshuffles, p.CardsReshuffled)
		}

		printCounts(w, p.PlayedByName)

		label.Fprint(w, "  bought    ")
		fmt.Fprintf(w, "%d card(s)\n", p.CardsGained)
		printCounts(w, p.GainedByName)
	}
}

func printCounts(w io.Writer, counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "    %-12s %d\n", name, counts[name])
	}
}
