// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion, including "not found" outcomes.
	Success = 0

	// UserError indicates a usage error (unknown command, bad or missing args).
	UserError = 1

	// StoreError indicates the task file could not be read, parsed, written or locked.
	StoreError = 2

	// ConfigError indicates an unreadable or invalid configuration.
	ConfigError = 3
)
