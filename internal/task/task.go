// Package task holds the in-memory task collection and its invariants.
package task

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskNotFound matches any NotFoundError via errors.Is.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidRecord is returned for stored records that cannot be
	// repaired.
	ErrInvalidRecord = errors.New("invalid task record")
)

// NotFoundError reports that no task has the given id.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Task %d not found", e.ID)
}

// Is makes errors.Is(err, ErrTaskNotFound) succeed.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrTaskNotFound
}
