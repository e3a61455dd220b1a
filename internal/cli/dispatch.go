// Package cli implements the task-cli command tree and maps its results to
// exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tiwariParth/task-cli/internal/app"
	"github.com/tiwariParth/task-cli/internal/config"
	"github.com/tiwariParth/task-cli/internal/exitcode"
	"github.com/tiwariParth/task-cli/internal/logging"
	"github.com/tiwariParth/task-cli/internal/models"
	"github.com/tiwariParth/task-cli/internal/storage"
	"github.com/tiwariParth/task-cli/internal/storage/file"
)

// Version is reported by the version command.
var Version = "dev"

// StoreFactory opens the task store for one command.
// Used to inject the backend during dispatch.
type StoreFactory func(cfg *config.Config, logger *log.Logger) (storage.Storage, error)

// FileStoreFactory opens the file store described by cfg.
func FileStoreFactory(cfg *config.Config, logger *log.Logger) (storage.Storage, error) {
	opts := []file.Option{
		file.WithFormat(cfg.StoreFormat()),
		file.WithLogger(logger),
	}
	if cfg.Lock {
		opts = append(opts, file.WithLock(cfg.LockTimeout.Duration))
	}
	return file.NewFileStore(cfg.File, opts...), nil
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	factory StoreFactory
	now     func() time.Time
}

// NewDispatcher creates a dispatcher. A nil factory uses FileStoreFactory.
func NewDispatcher(factory StoreFactory) *Dispatcher {
	if factory == nil {
		factory = FileStoreFactory
	}
	return &Dispatcher{factory: factory}
}

// SetClock replaces the clock used to stamp tasks.
func (d *Dispatcher) SetClock(now func() time.Time) {
	d.now = now
}

// Run parses args, executes the matching command and returns the exit
// code. Output goes to out, errors and logs to errOut.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if args == nil {
		args = []string{}
	}
	s := &session{d: d, out: out, errOut: errOut, logger: logging.Discard()}

	root := s.newRootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		return s.fail(err)
	}
	return exitcode.Success
}

// fail reports err on errOut and classifies it.
func (s *session) fail(err error) int {
	fmt.Fprintf(s.errOut, "error: %s\n", err)

	var usage *UsageError
	if errors.As(err, &usage) {
		if usage.UseLine != "" {
			fmt.Fprintf(s.errOut, "usage: %s\n", usage.UseLine)
		}
		fmt.Fprintf(s.errOut, "Run '%s --help' for more.\n", usage.CommandPath)
		return exitcode.UsageError
	}

	switch {
	case errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, models.ErrInvalidID),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrEmptyDescription):
		return exitcode.UsageError
	case errors.Is(err, storage.ErrStorageIO), errors.Is(err, storage.ErrLocked):
		return exitcode.StorageError
	}
	// Not found, check problems, interrupted runs.
	return exitcode.UserError
}

// session is the state of one Run.
type session struct {
	d      *Dispatcher
	out    io.Writer
	errOut io.Writer
	flags  rootFlags
	cfg    *config.Config
	logger *log.Logger
	colors palette
	styles styles
}

func (s *session) app() (*app.TodoApp, error) {
	store, err := s.d.factory(s.cfg, s.logger)
	if err != nil {
		return nil, err
	}
	return app.NewTodoApp(store, app.WithClock(s.d.now)), nil
}
