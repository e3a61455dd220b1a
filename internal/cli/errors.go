package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// errProblemsFound is returned by check when the task list has problems.
var errProblemsFound = errors.New("check found problems")

// UsageError reports missing or malformed arguments for a command.
type UsageError struct {
	Err         error
	UseLine     string
	CommandPath string
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func newUsageError(cmd *cobra.Command, err error) *UsageError {
	return &UsageError{
		Err:         err,
		UseLine:     cmd.UseLine(),
		CommandPath: cmd.CommandPath(),
	}
}

// withUsage turns argument validation failures into usage errors.
func withUsage(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return newUsageError(cmd, err)
		}
		return nil
	}
}
