package models

import (
	"errors"
	"strings"
	"time"
)

// TimestampLayout is the on-disk timestamp format. It is fixed width, so
// timestamps sort lexicographically.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// TimestampPrecision is the resolution kept by Timestamp.
const TimestampPrecision = time.Millisecond

// ErrEmptyDescription is returned when a task has no description text.
var ErrEmptyDescription = errors.New("task description cannot be empty")

// Timestamp is a UTC instant serialized as text with TimestampLayout.
type Timestamp struct {
	time.Time
}

// NewTimestamp returns t as a UTC Timestamp truncated to TimestampPrecision.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t.UTC().Truncate(TimestampPrecision)}
}

// nextTimestamp stamps now, moved past the task's existing timestamps if the
// clock has not advanced, so UpdatedAt always increases.
func (t *Task) nextTimestamp(now time.Time) *Timestamp {
	ts := NewTimestamp(now)
	for _, prev := range []*Timestamp{t.CreatedAt, t.UpdatedAt} {
		if prev != nil && !ts.After(prev.Time) {
			ts = &Timestamp{Time: prev.Add(TimestampPrecision)}
		}
	}
	return ts
}

// String returns the timestamp in TimestampLayout.
func (ts Timestamp) String() string {
	return ts.Time.UTC().Format(TimestampLayout)
}

// MarshalText implements encoding.TextMarshaler. JSON, YAML and TOML
// codecs all go through it.
func (ts Timestamp) MarshalText() ([]byte, error) {
	return []byte(ts.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Full RFC 3339 input
// (fractional seconds, offsets) is accepted and normalized.
func (ts *Timestamp) UnmarshalText(text []byte) error {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	ts.Time = t.UTC().Truncate(TimestampPrecision)
	return nil
}

// MarshalJSON overrides the promoted time.Time method so JSON output uses
// TimestampLayout.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.String() + `"`), nil
}

// UnmarshalJSON accepts a JSON string holding an RFC 3339 timestamp.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return errors.New("timestamp must be a JSON string")
	}
	return ts.UnmarshalText([]byte(s[1 : len(s)-1]))
}

// Task represents a single to-do record.
type Task struct {
	ID          int        `json:"id" yaml:"id" toml:"id"`
	Description string     `json:"description" yaml:"description" toml:"description"`
	Status      Status     `json:"status" yaml:"status" toml:"status"`
	CreatedAt   *Timestamp `json:"createdAt,omitempty" yaml:"createdAt,omitempty" toml:"createdAt,omitempty"`
	UpdatedAt   *Timestamp `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty" toml:"updatedAt,omitempty"`
}

// NewTask creates a todo task stamped with now.
func NewTask(id int, description string, now time.Time) Task {
	return Task{
		ID:          id,
		Description: strings.TrimSpace(description),
		Status:      StatusTodo,
		CreatedAt:   NewTimestamp(now),
		UpdatedAt:   NewTimestamp(now),
	}
}

// Validate checks if a task is valid.
func (t *Task) Validate() error {
	if t.ID < 1 {
		return ErrInvalidID
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// SetDescription replaces the description and refreshes UpdatedAt.
func (t *Task) SetDescription(description string, now time.Time) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrEmptyDescription
	}
	t.Description = description
	t.UpdatedAt = t.nextTimestamp(now)
	return nil
}

// SetStatus changes the status and refreshes UpdatedAt.
func (t *Task) SetStatus(status Status, now time.Time) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	t.Status = status
	t.UpdatedAt = t.nextTimestamp(now)
	return nil
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	if t.CreatedAt != nil {
		c := *t.CreatedAt
		t.CreatedAt = &c
	}
	if t.UpdatedAt != nil {
		u := *t.UpdatedAt
		t.UpdatedAt = &u
	}
	return t
}
