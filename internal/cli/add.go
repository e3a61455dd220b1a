package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (s *session) newAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <description...>",
		Short: "Add a new task",
		Long:  "Add a new task. All arguments are joined with spaces to form the description.",
		Args:  withUsage(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := strings.TrimSpace(strings.Join(args, " "))
			if description == "" {
				return newUsageError(cmd, errors.New("missing task description"))
			}

			todo, err := s.app()
			if err != nil {
				return err
			}
			added, err := todo.AddTask(cmd.Context(), description)
			if err != nil {
				return fmt.Errorf("failed to add task: %w", err)
			}
			fmt.Fprintf(s.out, "Task added successfully (ID: %s)\n", s.colors.Bold(added.ID))
			return nil
		},
	}
}
