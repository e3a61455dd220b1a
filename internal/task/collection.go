package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/tiwariParth/task-cli/internal/models"
)

// Collection is the ordered set of tasks persisted as one document.
// Tasks keep insertion order and ids are unique.
type Collection struct {
	tasks []models.Task
}

// NewCollection initializes a collection from tasks in stored order.
func NewCollection(tasks []models.Task) *Collection {
	c := &Collection{tasks: make([]models.Task, 0, len(tasks))}
	for _, t := range tasks {
		c.tasks = append(c.tasks, t.Clone())
	}
	return c
}

// Reassignment records a stored task that was given a fresh id because it
// had none or repeated an earlier id.
type Reassignment struct {
	Index int
	OldID int
	NewID int
}

// LoadCollection builds a collection from stored records, enforcing the
// collection rules. Records without a positive id, or repeating an id seen
// earlier in the list, get fresh ids above the current maximum in stored
// order, so the same input always yields the same ids. A record with an
// empty description or an unknown status fails the whole load.
func LoadCollection(tasks []models.Task) (*Collection, []Reassignment, error) {
	maxID := 0
	for i, t := range tasks {
		if strings.TrimSpace(t.Description) == "" {
			return nil, nil, fmt.Errorf("%w: record %d: %v", ErrInvalidRecord, i, models.ErrEmptyDescription)
		}
		if !t.Status.Valid() {
			return nil, nil, fmt.Errorf("%w: record %d: %v %q", ErrInvalidRecord, i, models.ErrInvalidStatus, t.Status)
		}
		if t.ID > maxID {
			maxID = t.ID
		}
	}

	c := NewCollection(tasks)
	seen := make(map[int]bool, len(c.tasks))
	var moved []Reassignment
	for i := range c.tasks {
		id := c.tasks[i].ID
		if id >= 1 && !seen[id] {
			seen[id] = true
			continue
		}
		maxID++
		c.tasks[i].ID = maxID
		seen[maxID] = true
		moved = append(moved, Reassignment{Index: i, OldID: id, NewID: maxID})
	}
	return c, moved, nil
}

// Len returns the number of tasks.
func (c *Collection) Len() int {
	return len(c.tasks)
}

// Tasks returns a copy of all tasks in stored order.
func (c *Collection) Tasks() []models.Task {
	out := make([]models.Task, len(c.tasks))
	for i, t := range c.tasks {
		out[i] = t.Clone()
	}
	return out
}

// NextID returns max existing id + 1, or 1 for an empty collection.
func (c *Collection) NextID() int {
	maxID := 0
	for _, t := range c.tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

// AddTask appends a new todo task with the next id.
func (c *Collection) AddTask(description string, now time.Time) (models.Task, error) {
	t := models.NewTask(c.NextID(), description, now)
	if err := t.Validate(); err != nil {
		return models.Task{}, fmt.Errorf("invalid task: %w", err)
	}
	c.tasks = append(c.tasks, t)
	return t.Clone(), nil
}

// Get returns the task with id.
func (c *Collection) Get(id int) (models.Task, error) {
	i := c.indexOf(id)
	if i < 0 {
		return models.Task{}, &NotFoundError{ID: id}
	}
	return c.tasks[i].Clone(), nil
}

// Update applies fn to the task with id. The task is left untouched when fn
// fails.
func (c *Collection) Update(id int, fn func(*models.Task) error) (models.Task, error) {
	i := c.indexOf(id)
	if i < 0 {
		return models.Task{}, &NotFoundError{ID: id}
	}
	updated := c.tasks[i].Clone()
	if err := fn(&updated); err != nil {
		return models.Task{}, err
	}
	c.tasks[i] = updated
	return updated.Clone(), nil
}

// Remove deletes the task with id, keeping the order of the rest.
func (c *Collection) Remove(id int) (models.Task, error) {
	i := c.indexOf(id)
	if i < 0 {
		return models.Task{}, &NotFoundError{ID: id}
	}
	removed := c.tasks[i]
	c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
	return removed, nil
}

// Filter returns the tasks whose status equals status, in stored order.
func (c *Collection) Filter(status models.Status) []models.Task {
	out := make([]models.Task, 0)
	for _, t := range c.tasks {
		if t.Status == status {
			out = append(out, t.Clone())
		}
	}
	return out
}

// DuplicateIDs returns ids that occur more than once, in first-seen order.
func (c *Collection) DuplicateIDs() []int {
	seen := make(map[int]int, len(c.tasks))
	var dups []int
	for _, t := range c.tasks {
		seen[t.ID]++
		if seen[t.ID] == 2 {
			dups = append(dups, t.ID)
		}
	}
	return dups
}

func (c *Collection) indexOf(id int) int {
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
