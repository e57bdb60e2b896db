package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Priority represents a task priority.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityNone   Priority = "none"
)

// Priorities lists every priority in display order.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow, PriorityNone}
}

// Rank returns the display rank of the priority. Lower ranks sort first.
// Unknown priorities rank after none.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	case PriorityNone:
		return 3
	default:
		return 4
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p.Rank() < 4
}

// Next returns the following priority in display order, wrapping to high.
func (p Priority) Next() Priority {
	all := Priorities()
	return all[(p.Rank()+1)%len(all)]
}

// ParsePriority parses a priority name. The empty string means none.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PriorityNone, nil
	}
	if !p.Valid() {
		return "", &ValidationError{
			Path: "priority",
			Err:  fmt.Errorf("%w %q, must be one of: high, medium, low, none", ErrInvalidPriority, s),
		}
	}
	return p, nil
}

// ParsePriorities parses a comma-separated priority list such as
// "high, low". Blank entries are skipped; an empty list yields nil.
func ParsePriorities(s string) ([]Priority, error) {
	var out []Priority
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		p, err := ParsePriority(part)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Task represents a single entry in the task list.
type Task struct {
	ID        string
	Text      string
	Completed bool
	Priority  Priority
	CreatedAt time.Time
}

// IsZero returns true if the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == ""
}

var (
	// ErrEmptyText is returned by Add when the task text is blank.
	ErrEmptyText = errors.New("task cannot be empty")
	// ErrInvalidPriority is returned for a priority outside the known set.
	ErrInvalidPriority = errors.New("invalid priority")
	// ErrNotFound is returned when a reference does not match any task.
	ErrNotFound = errors.New("task not found")
	// ErrAmbiguous is returned when an id prefix matches more than one task.
	ErrAmbiguous = errors.New("ambiguous task reference")
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
