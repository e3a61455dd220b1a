// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a well-formed request that could not be honored
	// (task not found, check found problems).
	UserError = 1

	// UsageError indicates missing or malformed arguments, an unknown
	// command, flag or status, or an invalid config file.
	UsageError = 2

	// StorageError indicates the task file could not be read, written or
	// locked.
	StorageError = 3
)
