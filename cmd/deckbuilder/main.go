package main

import (
	"os"

	"github.com/ryanbbrown/web-deckbuilding/cmd/deckbuilder/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
