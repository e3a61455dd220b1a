package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiwariParth/task-cli/internal/models"
)

func (s *session) newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Long:    "Delete a task. The ids of the remaining tasks do not change.",
		Args:    withUsage(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := models.ParseID(args[0])
			if err != nil {
				return newUsageError(cmd, err)
			}

			todo, err := s.app()
			if err != nil {
				return err
			}
			removed, err := todo.DeleteTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Task %s deleted successfully\n", s.colors.Bold(removed.ID))
			return nil
		},
	}
}
