package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tiwariParth/task-cli/internal/models"
)

func (s *session) newUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "update <id> <description...>",
		Aliases: []string{"edit"},
		Short:   "Replace a task's description",
		Args:    withUsage(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := models.ParseID(args[0])
			if err != nil {
				return newUsageError(cmd, err)
			}
			description := strings.TrimSpace(strings.Join(args[1:], " "))
			if description == "" {
				return newUsageError(cmd, errors.New("missing task description"))
			}

			todo, err := s.app()
			if err != nil {
				return err
			}
			updated, err := todo.UpdateTask(cmd.Context(), id, description)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Task %s updated successfully\n", s.colors.Bold(updated.ID))
			return nil
		},
	}
}
