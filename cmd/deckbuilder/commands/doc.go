// Package commands implements the deckbuilder CLI.
//
// Every command loads configuration from --config, DECKBUILDER_*
// environment variables and an optional .env file before it runs.
package commands
