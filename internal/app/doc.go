// Package app wires a configured game for the CLI.
//
// It turns a config.Config into market definitions, a starting deck and a
// game.Game with the standard watchers registered, and runs simulations
// against it.
package app
