package commands

import (
	"context"
	"flag"
	"io"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/output"
	"tasker/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Tasks are printed in store order, never sorted.
type ListCmd struct {
	open bool // --open: skip completed tasks
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "tasker list [--open]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.open, "open", false, "")
}

func (c *ListCmd) ParseArgs(args []string) error {
	return noArgs(args)
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, repo store.Repository, st *store.Store, out, errOut io.Writer) int {
	tasks := st.Tasks
	if c.open {
		tasks = make([]store.Task, 0, len(st.Tasks))
		for _, task := range st.Tasks {
			if !task.Completed {
				tasks = append(tasks, task)
			}
		}
	}

	output.FormatTasks(out, tasks)
	return exitcode.Success
}
