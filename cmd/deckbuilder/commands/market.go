package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ryanbbrown/web-deckbuilding/internal/app"
)

// market: list the configured catalog and the starting deck built from it.
func marketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "List the market catalog and starting deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			title := color.New(color.FgGreen, color.Bold)
			cost := color.New(color.FgYellow)

			title.Fprintf(w, "Market (%d cards)\n", a.Game.Market().Len())
			for _, def := range a.Market() {
				fmt.Fprintf(w, "  %-12s ", def.Name)
				cost.Fprintf(w, "%2d", def.Cost)
				fmt.Fprintf(w, "  %s\n", def.Text)
			}

			composition, _ := a.Game.StartingDeckComposition()
			title.Fprintf(w, "Starting deck (%d cards, hand of %d)\n", composition.Size(), a.Game.StartingHandSize())
			for _, entry := range composition {
				fmt.Fprintf(w, "  %-12s x%d\n", entry.Definition.Name, entry.Count)
			}
			return nil
		},
	}
}
