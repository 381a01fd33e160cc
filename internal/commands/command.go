// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"tasker/internal/config"
	"tasker/internal/store"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or mutates tasks.
	// Commands like help and version return false.
	NeedsStore() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// ParseArgs validates positional arguments after flag parsing.
	// It runs before the store is loaded; a non-nil error is a usage error.
	ParseArgs(args []string) error

	// Run executes the command.
	// repo and st are nil if NeedsStore() returns false.
	// Mutating commands must save through repo before reporting success.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, repo store.Repository, st *store.Store, out, errOut io.Writer) int
}
