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
	Register(&UpdateCmd{})
}

// UpdateCmd implements the update command.
type UpdateCmd struct {
	id          uint32
	description string
}

func (c *UpdateCmd) Name() string      { return "update" }
func (c *UpdateCmd) Aliases() []string { return nil }
func (c *UpdateCmd) Synopsis() string  { return "Replace a task description" }
func (c *UpdateCmd) Usage() string     { return "tasker update <id> <description...>" }
func (c *UpdateCmd) NeedsStore() bool  { return true }

func (c *UpdateCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UpdateCmd) ParseArgs(args []string) error {
	if len(args) == 0 {
		return ErrIDRequired
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	description, err := joinDescription(args[1:])
	if err != nil {
		return err
	}
	c.id = id
	c.description = description
	return nil
}

func (c *UpdateCmd) Run(ctx context.Context, cfg *config.Config, repo store.Repository, st *store.Store, out, errOut io.Writer) int {
	if !st.Update(c.id, c.description) {
		fmt.Fprintf(out, "Task %d not found.\n", c.id)
		return exitcode.Success
	}

	if code := save(ctx, repo, st, errOut); code != exitcode.Success {
		return code
	}

	fmt.Fprintf(out, "Task %d updated.\n", c.id)
	return exitcode.Success
}
