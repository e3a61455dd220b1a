package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiwariParth/task-cli/internal/models"
)

func (s *session) newMarkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mark <id> <status>",
		Short: "Set a task's status (todo, in_progress, done)",
		Args:  withUsage(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := models.ParseID(args[0])
			if err != nil {
				return newUsageError(cmd, err)
			}
			status, err := models.ParseStatus(args[1])
			if err != nil {
				return newUsageError(cmd, err)
			}
			return s.mark(cmd, id, status)
		},
	}
}

// newMarkShortcut builds mark-todo, mark-in-progress and mark-done.
func (s *session) newMarkShortcut(name string, status models.Status) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id>",
		Short: fmt.Sprintf("Mark a task as %s", status),
		Args:  withUsage(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := models.ParseID(args[0])
			if err != nil {
				return newUsageError(cmd, err)
			}
			return s.mark(cmd, id, status)
		},
	}
}

func (s *session) mark(cmd *cobra.Command, id int, status models.Status) error {
	todo, err := s.app()
	if err != nil {
		return err
	}
	marked, err := todo.MarkTask(cmd.Context(), id, status)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Task %s marked as %s\n", s.colors.Bold(marked.ID), s.colors.Status(marked.Status))
	return nil
}
