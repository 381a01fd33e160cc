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
	Register(&DeleteCmd{})
}

// DeleteCmd implements the delete command.
// Deleted ids are never handed out again.
type DeleteCmd struct {
	id uint32
}

func (c *DeleteCmd) Name() string      { return "delete" }
func (c *DeleteCmd) Aliases() []string { return []string{"rm"} }
func (c *DeleteCmd) Synopsis() string  { return "Delete a task" }
func (c *DeleteCmd) Usage() string     { return "tasker delete <id>" }
func (c *DeleteCmd) NeedsStore() bool  { return true }

func (c *DeleteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DeleteCmd) ParseArgs(args []string) error {
	id, err := parseIDOnly(args)
	if err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *DeleteCmd) Run(ctx context.Context, cfg *config.Config, repo store.Repository, st *store.Store, out, errOut io.Writer) int {
	if !st.Delete(c.id) {
		fmt.Fprintf(out, "Task %d not found.\n", c.id)
		return exitcode.Success
	}

	if code := save(ctx, repo, st, errOut); code != exitcode.Success {
		return code
	}

	fmt.Fprintf(out, "Task %d deleted.\n", c.id)
	return exitcode.Success
}
