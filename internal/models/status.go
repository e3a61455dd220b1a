package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Status represents the progress state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

var (
	// ErrInvalidStatus is returned for any status outside Statuses.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidID is returned for ids that are not positive integers.
	ErrInvalidID = errors.New("invalid task id")
)

// Valid reports whether s is one of Statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// String returns the status as stored on disk.
func (s Status) String() string {
	return string(s)
}

// ParseStatus validates user input as a Status. Matching ignores case and
// surrounding space; "in-progress" is accepted for "in_progress".
func ParseStatus(input string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "in-progress" {
		normalized = string(StatusInProgress)
	}
	s := Status(normalized)
	if !s.Valid() {
		return "", fmt.Errorf("%w %q: must be one of %s", ErrInvalidStatus, input, statusList())
	}
	return s, nil
}

// ParseID validates user input as a task id.
func ParseID(input string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w %q: must be a positive integer", ErrInvalidID, input)
	}
	return id, nil
}

func statusList() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
