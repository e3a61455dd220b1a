package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (s *session) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  withUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(s.out, "task-cli %s\n", Version)
			return nil
		},
	}
}
