// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"

	"tasker/internal/store"
)

// EmptyList is printed by list when the store has no tasks.
const EmptyList = "No tasks found."

// Checkbox returns "[x]" for completed tasks and "[ ]" otherwise.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// FormatTask formats a task line.
// Format: "{[x]|[ ]} {ID}: {DESCRIPTION}\n"
func FormatTask(w io.Writer, task store.Task) {
	fmt.Fprintf(w, "%s %d: %s\n", Checkbox(task.Completed), task.ID, task.Description)
}

// FormatTasks writes one line per task in slice order, or EmptyList.
func FormatTasks(w io.Writer, tasks []store.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, EmptyList)
		return
	}
	for _, task := range tasks {
		FormatTask(w, task)
	}
}
