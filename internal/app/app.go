// Package app runs each task operation as one load, mutate, save cycle
// against a storage backend.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/tiwariParth/task-cli/internal/models"
	"github.com/tiwariParth/task-cli/internal/schema"
	"github.com/tiwariParth/task-cli/internal/storage"
	"github.com/tiwariParth/task-cli/internal/task"
)

// TodoApp applies task operations to a store.
type TodoApp struct {
	store storage.Storage
	now   func() time.Time
}

// Option configures a TodoApp.
type Option func(*TodoApp)

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(app *TodoApp) {
		if now != nil {
			app.now = now
		}
	}
}

// NewTodoApp creates an app backed by store.
func NewTodoApp(store storage.Storage, opts ...Option) *TodoApp {
	app := &TodoApp{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// AddTask appends a new todo task and returns it with its assigned id.
func (app *TodoApp) AddTask(ctx context.Context, description string) (models.Task, error) {
	var added models.Task
	err := app.mutate(ctx, func(c *task.Collection) error {
		var err error
		added, err = c.AddTask(description, app.now())
		return err
	})
	return added, err
}

// UpdateTask replaces the description of task id.
func (app *TodoApp) UpdateTask(ctx context.Context, id int, description string) (models.Task, error) {
	var updated models.Task
	err := app.mutate(ctx, func(c *task.Collection) error {
		var err error
		updated, err = c.Update(id, func(t *models.Task) error {
			return t.SetDescription(description, app.now())
		})
		return err
	})
	return updated, err
}

// DeleteTask removes task id. Remaining ids are not renumbered.
func (app *TodoApp) DeleteTask(ctx context.Context, id int) (models.Task, error) {
	var removed models.Task
	err := app.mutate(ctx, func(c *task.Collection) error {
		var err error
		removed, err = c.Remove(id)
		return err
	})
	return removed, err
}

// MarkTask sets the status of task id. Re-marking with the current status
// still refreshes UpdatedAt.
func (app *TodoApp) MarkTask(ctx context.Context, id int, status models.Status) (models.Task, error) {
	if !status.Valid() {
		return models.Task{}, fmt.Errorf("%w %q", models.ErrInvalidStatus, status)
	}
	var marked models.Task
	err := app.mutate(ctx, func(c *task.Collection) error {
		var err error
		marked, err = c.Update(id, func(t *models.Task) error {
			return t.SetStatus(status, app.now())
		})
		return err
	})
	return marked, err
}

// ListTasks returns tasks in stored order, restricted to filter when it is
// non-nil.
func (app *TodoApp) ListTasks(ctx context.Context, filter *models.Status) ([]models.Task, error) {
	c, err := app.load(ctx)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return c.Tasks(), nil
	}
	return c.Filter(*filter), nil
}

// Check validates the stored tasks without modifying them.
func (app *TodoApp) Check(ctx context.Context) (*schema.Result, error) {
	c, err := app.load(ctx)
	if err != nil {
		return nil, err
	}
	return schema.Validate(c.Tasks())
}

func (app *TodoApp) load(ctx context.Context) (c *task.Collection, err error) {
	defer func() {
		if cerr := app.store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return app.store.Load(ctx)
}

// mutate loads the collection, applies fn and saves. Nothing is saved when
// fn fails.
func (app *TodoApp) mutate(ctx context.Context, fn func(*task.Collection) error) (err error) {
	defer func() {
		if cerr := app.store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	c, err := app.store.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return app.store.Save(ctx, c)
}
