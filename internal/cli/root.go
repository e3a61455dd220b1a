package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tiwariParth/task-cli/internal/config"
	"github.com/tiwariParth/task-cli/internal/logging"
	"github.com/tiwariParth/task-cli/internal/models"
)

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	file    string
	format  string
	lock    bool
	noColor bool
	debug   bool
}

// overrides returns the flags that were set explicitly.
func (f *rootFlags) overrides(fs *pflag.FlagSet) config.Overrides {
	var o config.Overrides
	if fs.Changed("file") {
		o.File = &f.file
	}
	if fs.Changed("format") {
		o.Format = &f.format
	}
	if fs.Changed("lock") {
		o.Lock = &f.lock
	}
	if fs.Changed("no-color") {
		o.NoColor = &f.noColor
	}
	if fs.Changed("debug") && f.debug {
		level := "debug"
		o.LogLevel = &level
	}
	return o
}

func (s *session) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "task-cli",
		Short: "Track tasks in a local file",
		Long: `task-cli keeps a short list of tasks in a local file (tasks.json by default).
Tasks are addressed by id and move between todo, in_progress and done.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return s.setup(cmd) },
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return nil
			}
			msg := fmt.Sprintf("unknown command %q", args[0])
			if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
				msg += fmt.Sprintf(" (did you mean %q?)", suggestions[0])
			}
			return newUsageError(cmd, errors.New(msg))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return newUsageError(cmd, errors.New("missing command"))
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return newUsageError(cmd, err)
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&s.flags.file, "file", "f", config.DefaultFile, "task file path")
	pf.StringVar(&s.flags.format, "format", "", "task file format: json, yaml or toml (default: from extension)")
	pf.BoolVar(&s.flags.lock, "lock", false, "hold an exclusive lock on the task file while running")
	pf.BoolVar(&s.flags.noColor, "no-color", false, "disable colored output")
	pf.BoolVar(&s.flags.debug, "debug", false, "log debug messages to stderr")

	// Subcommands (alphabetical)
	root.AddCommand(s.newAddCommand())
	root.AddCommand(s.newCheckCommand())
	root.AddCommand(s.newDeleteCommand())
	root.AddCommand(s.newListCommand())
	root.AddCommand(s.newMarkCommand())
	root.AddCommand(s.newMarkShortcut("mark-done", models.StatusDone))
	root.AddCommand(s.newMarkShortcut("mark-in-progress", models.StatusInProgress))
	root.AddCommand(s.newMarkShortcut("mark-todo", models.StatusTodo))
	root.AddCommand(s.newUpdateCommand())
	root.AddCommand(s.newVersionCommand())
	return root
}

// setup resolves config and output settings once flags are parsed.
func (s *session) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(s.flags.overrides(cmd.Flags()))
	if err != nil {
		return err
	}
	s.cfg = cfg
	opts := logging.DefaultOptions()
	opts.Level = cfg.Level()
	s.logger = logging.New(s.errOut, opts)

	renderer := lipgloss.NewRenderer(s.out)
	colorOn := !cfg.NoColor && renderer.ColorProfile() != termenv.Ascii
	if !colorOn {
		renderer.SetColorProfile(termenv.Ascii)
	}
	s.colors = newPalette(colorOn)
	s.styles = newStyles(renderer)

	s.logger.Debug("resolved config",
		"file", cfg.File, "format", cfg.StoreFormat(), "lock", cfg.Lock,
		"source", cfg.Source, "color", colorOn)
	return nil
}
