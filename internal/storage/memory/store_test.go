package memory

import (
	"context"
	"testing"
	"time"

	"github.com/tiwariParth/task-cli/internal/models"
	"github.com/tiwariParth/task-cli/internal/storage"
	"github.com/tiwariParth/task-cli/internal/task"
)

var _ storage.Storage = (*MemoryStore)(nil)

func TestLoadReturnsIndependentCopy(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore(models.NewTask(1, "a", now))
	ctx := context.Background()

	c, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.AddTask("b", now)
	c.Update(1, func(tk *models.Task) error { return tk.SetStatus(models.StatusDone, now) })

	if got := store.Tasks(); len(got) != 1 || got[0].Status != models.StatusTodo {
		t.Errorf("unsaved changes leaked into the store: %+v", got)
	}
}

func TestSaveReplacesContents(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	c := task.NewCollection(nil)
	c.AddTask("a", time.Now())
	c.AddTask("b", time.Now())
	if err := store.Save(ctx, c); err != nil {
		t.Fatalf("Save: %v", err)
	}
	c.Remove(1)

	if got := store.Tasks(); len(got) != 2 {
		t.Errorf("len(Tasks()) = %d, want 2", len(got))
	}
	if store.Saves() != 1 {
		t.Errorf("Saves() = %d, want 1", store.Saves())
	}
}

func TestCanceledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Load(ctx); err == nil {
		t.Error("Load succeeded with a canceled context")
	}
	if err := store.Save(ctx, task.NewCollection(nil)); err == nil {
		t.Error("Save succeeded with a canceled context")
	}
	if store.Saves() != 0 {
		t.Errorf("Saves() = %d, want 0", store.Saves())
	}
}
