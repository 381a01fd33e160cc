// Package cli parses the command line and dispatches to a command.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"tasker/internal/commands"
	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/logging"
	"tasker/internal/store"
)

// RepositoryFactory creates the task repository from config.
// Used to inject the storage backend during dispatch.
type RepositoryFactory func(cfg *config.Config) store.Repository

// FileRepositoryFactory opens the task file named by cfg.
func FileRepositoryFactory(cfg *config.Config) store.Repository {
	return store.NewFileRepository(cfg.File, cfg.Lock, cfg.LockTimeout.Duration)
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  RepositoryFactory
}

// NewDispatcher creates a new dispatcher with the given registry and repository factory.
// A nil factory means FileRepositoryFactory.
func NewDispatcher(registry *commands.Registry, factory RepositoryFactory) *Dispatcher {
	if factory == nil {
		factory = FileRepositoryFactory
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to exactly one command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: command required (run: tasker help)")
		return exitcode.UserError
	}

	cmdName := args[0]

	// Flags are accepted only after the command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var opts config.Options
	fs.StringVar(&opts.ConfigPath, "config", "", "")
	fs.StringVar(&opts.File, "file", "", "")
	fs.BoolVar(&opts.Debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(out, "Usage: %s\n", cmd.Usage())
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// Usage errors are reported before the store is touched
	if err := cmd.ParseArgs(fs.Args()); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	cfg, err := config.Load(opts)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}

	logger := logging.New(errOut, cfg.LogLevel)
	ctx = log.WithContext(ctx, logger)
	logger.Debug("resolved config", "command", cmd.Name(), "file", cfg.File, "config", cfg.Source, "lock", cfg.Lock)

	if !cmd.NeedsStore() {
		return cmd.Run(ctx, cfg, nil, nil, out, errOut)
	}

	repo := d.factory(cfg)

	release, err := repo.Lock(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StoreError
	}
	defer release()

	st, err := repo.Load(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StoreError
	}

	return cmd.Run(ctx, cfg, repo, st, out, errOut)
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	errStr := err.Error()
	if name, ok := strings.CutPrefix(errStr, "flag provided but not defined: "); ok {
		return "unknown flag: " + name
	}
	return errStr
}
