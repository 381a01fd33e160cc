package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/store"
)

func init() {
	Register(&CompleteCmd{})
}

// CompleteCmd implements the complete command.
type CompleteCmd struct {
	id uint32
}

func (c *CompleteCmd) Name() string      { return "complete" }
func (c *CompleteCmd) Aliases() []string { return []string{"done"} }
func (c *CompleteCmd) Synopsis() string  { return "Mark a task completed" }
func (c *CompleteCmd) Usage() string     { return "tasker complete <id>" }
func (c *CompleteCmd) NeedsStore() bool  { return true }

func (c *CompleteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CompleteCmd) ParseArgs(args []string) error {
	id, err := parseIDOnly(args)
	if err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *CompleteCmd) Run(ctx context.Context, cfg *config.Config, repo store.Repository, st *store.Store, out, errOut io.Writer) int {
	if !st.Complete(c.id) {
		fmt.Fprintf(out, "Task %d not found.\n", c.id)
		return exitcode.Success
	}

	// Completing twice still saves; the file content is unchanged.
	if code := save(ctx, repo, st, errOut); code != exitcode.Success {
		return code
	}

	fmt.Fprintf(out, "Task %d marked as complete.\n", c.id)
	return exitcode.Success
}
