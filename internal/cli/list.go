package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiwariParth/task-cli/internal/models"
)

func (s *session) newListCommand() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:     "list [status]",
		Aliases: []string{"ls"},
		Short:   "List tasks, optionally only those with the given status",
		Args:    withUsage(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *models.Status
			if len(args) == 1 {
				status, err := models.ParseStatus(args[0])
				if err != nil {
					return newUsageError(cmd, err)
				}
				filter = &status
			}

			todo, err := s.app()
			if err != nil {
				return err
			}
			tasks, err := todo.ListTasks(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Fprintln(s.out, noTasksMessage)
				return nil
			}
			if plain {
				s.printPlain(s.out, tasks)
			} else {
				s.printTable(s.out, tasks)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print one line per task instead of a table")
	return cmd
}
