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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "tasker add <description...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) ParseArgs(args []string) error {
	description, err := joinDescription(args)
	if err != nil {
		return err
	}
	c.description = description
	return nil
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, repo store.Repository, st *store.Store, out, errOut io.Writer) int {
	id, err := st.Add(c.description)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v (next_id %d)\n", err, st.NextID)
		return exitcode.StoreError
	}

	if code := save(ctx, repo, st, errOut); code != exitcode.Success {
		return code
	}

	fmt.Fprintf(out, "Task added: %d\n", id)
	return exitcode.Success
}
