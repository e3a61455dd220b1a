package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (s *session) newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the task file",
		Long: `Validate the stored tasks against the task file schema and report
duplicate ids. Exits with status 1 when problems are found.`,
		Args: withUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			todo, err := s.app()
			if err != nil {
				return err
			}
			result, err := todo.Check(cmd.Context())
			if err != nil {
				return err
			}

			if result.OK() {
				fmt.Fprintf(s.out, "%s: %d tasks, no problems found\n", s.cfg.File, result.Checked)
				return nil
			}
			fmt.Fprintf(s.out, "%s: %s\n", s.cfg.File, s.colors.Red(fmt.Sprintf("%d problems", len(result.Problems))))
			for _, p := range result.Problems {
				fmt.Fprintf(s.out, "  %s\n", p)
			}
			return fmt.Errorf("%w in %s", errProblemsFound, s.cfg.File)
		},
	}
}
