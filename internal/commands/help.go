package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/store"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct {
	// Registry lists the commands to describe. Nil means DefaultRegistry.
	Registry *Registry
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasker help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) ParseArgs(args []string) error { return nil }

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, repo store.Repository, st *store.Store, out, errOut io.Writer) int {
	registry := c.Registry
	if registry == nil {
		registry = DefaultRegistry
	}
	WriteUsage(out, registry)
	return exitcode.Success
}

// WriteUsage writes usage for every command in r.
func WriteUsage(w io.Writer, r *Registry) {
	fmt.Fprintln(w, "Usage:")
	for _, cmd := range r.All() {
		line := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			line += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(w, "  %-36s %s\n", cmd.Usage(), line)
	}
	fmt.Fprint(w, commonFlagsText)
}

const commonFlagsText = `
Common flags (after the command, before its arguments):
  --file <path>     Task file (default tasks.json, env TASKER_FILE)
  --config <path>   Config file (default $XDG_CONFIG_HOME/tasker/config.toml)
  --debug           Print debug logs to stderr
`
