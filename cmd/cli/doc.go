// Package cli wires the repoadd root command with configuration loading and
// structured logging, and registers the check, add, and trust subcommands.
package cli
