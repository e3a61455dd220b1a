package storage

import (
	"context"
	"errors"

	"github.com/tiwariParth/task-cli/internal/task"
)

// Common errors that can be returned by any storage implementation
var (
	ErrStorageIO = errors.New("storage I/O error")
	ErrLocked    = errors.New("task file is locked by another process")
)

// Storage loads and saves the whole task collection as one unit.
type Storage interface {
	// Load returns the persisted collection. A missing or unreadable
	// document yields an empty collection, not an error.
	Load(ctx context.Context) (*task.Collection, error)

	// Save replaces the persisted document with c. Callers never observe a
	// partially written document.
	Save(ctx context.Context, c *task.Collection) error

	// Close releases any resources held since Load.
	Close() error
}
