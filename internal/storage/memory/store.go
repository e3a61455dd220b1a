package memory

import (
	"context"
	"sync"

	"github.com/tiwariParth/task-cli/internal/models"
	"github.com/tiwariParth/task-cli/internal/task"
)

// MemoryStore implements the storage.Storage interface using in-memory storage
type MemoryStore struct {
	mu     sync.Mutex
	tasks  []models.Task
	saves  int
	closed int
}

// NewMemoryStore creates a new instance of MemoryStore seeded with tasks
func NewMemoryStore(tasks ...models.Task) *MemoryStore {
	return &MemoryStore{tasks: task.NewCollection(tasks).Tasks()}
}

// Load returns a copy of the stored collection
func (m *MemoryStore) Load(ctx context.Context) (*task.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return task.NewCollection(m.tasks), nil
}

// Save replaces the stored collection with a copy of c
func (m *MemoryStore) Save(ctx context.Context, c *task.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = c.Tasks()
	m.saves++
	return nil
}

// Close counts calls so tests can check the store was released
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
	return nil
}

// Tasks returns a copy of the stored tasks
func (m *MemoryStore) Tasks() []models.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return task.NewCollection(m.tasks).Tasks()
}

// Saves returns how many times Save succeeded
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Closes returns how many times Close was called
func (m *MemoryStore) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
