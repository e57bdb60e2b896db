package todo

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/taskpad/internal/kvstore"
	"github.com/nibzard/taskpad/internal/notify"
)

// DefaultKey is the storage key holding the task array.
const DefaultKey = "todos"

// Notice messages.
const (
	MsgEmptyText   = "Task cannot be empty"
	MsgTaskAdded   = "Task added successfully"
	MsgTaskDeleted = "Task deleted successfully"
)

// Option configures a Store.
type Option func(*Store)

// WithKey sets the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock sets the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the id source used by Add.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// WithNotifier sets where add and delete notices go.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store owns the task list and mirrors it to storage after every change.
// A Store is not safe for concurrent use.
type Store struct {
	storage  kvstore.Storage
	key      string
	now      func() time.Time
	newID    func() string
	notifier notify.Notifier
	logger   *log.Logger

	tasks        []Task
	loadProblems []error
	persistErr   error
}

// Open creates a store and loads the persisted list. It never fails: missing
// state starts empty, and unreadable state is logged and discarded.
func Open(storage kvstore.Storage, opts ...Option) *Store {
	s := &Store{
		storage:  storage,
		key:      DefaultKey,
		now:      time.Now,
		newID:    uuid.NewString,
		notifier: notify.Discard,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

func (s *Store) load() {
	s.tasks = nil
	s.loadProblems = nil

	value, ok, err := s.storage.Get(s.key)
	if err != nil {
		s.logger.Error("Error reading tasks from storage", "key", s.key, "err", err)
		s.loadProblems = append(s.loadProblems, err)
		return
	}
	if !ok {
		s.logger.Debug("No saved tasks", "key", s.key)
		return
	}

	tasks, problems, err := Decode([]byte(value))
	if err != nil {
		s.logger.Error("Error parsing tasks from storage", "key", s.key, "err", err)
		s.loadProblems = append(s.loadProblems, err)
		return
	}
	for _, p := range problems {
		s.logger.Warn("Dropping invalid task record", "key", s.key, "err", p)
	}
	s.loadProblems = problems
	s.tasks = tasks
	s.logger.Debug("Loaded tasks", "key", s.key, "count", len(tasks))
}

// LoadProblems returns what was discarded when the store was opened.
func (s *Store) LoadProblems() []error {
	return s.loadProblems
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Tasks returns a copy of the tasks in insertion order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Sorted returns the tasks in display order.
func (s *Store) Sorted() []Task {
	return Sorted(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns a copy of the task with id.
func (s *Store) Get(id string) (Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// Add creates a task. Blank text is rejected with a *ValidationError
// wrapping ErrEmptyText; nothing is stored in that case.
func (s *Store) Add(text string, priority Priority) (Task, error) {
	if strings.TrimSpace(text) == "" {
		s.notifier.Notify(notify.Error(MsgEmptyText))
		return Task{}, &ValidationError{Path: "text", Err: ErrEmptyText}
	}
	if priority == "" {
		priority = PriorityNone
	}
	if !priority.Valid() {
		s.notifier.Notify(notify.Error(fmt.Sprintf("Invalid priority %q", priority)))
		return Task{}, &ValidationError{
			Path: "priority",
			Err:  fmt.Errorf("%w %q", ErrInvalidPriority, priority),
		}
	}

	task := Task{
		ID:        s.newID(),
		Text:      text,
		Completed: false,
		Priority:  priority,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	s.tasks = append(s.tasks, task)
	s.logger.Debug("Added task", "id", task.ID, "priority", task.Priority)
	s.persist()
	s.notifier.Notify(notify.Success(MsgTaskAdded))
	return task, nil
}

// Toggle flips the completed flag of the task with id. It reports whether
// the task existed; a missing id changes nothing.
func (s *Store) Toggle(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.logger.Debug("Toggled task", "id", id, "completed", s.tasks[i].Completed)
	s.persist()
	return true
}

// Delete removes the task with id. It reports whether the task existed;
// a missing id changes nothing.
func (s *Store) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.logger.Debug("Deleted task", "id", id)
	s.persist()
	s.notifier.Notify(notify.Success(MsgTaskDeleted))
	return true
}

// Persist writes the full task list to storage.
func (s *Store) Persist() error {
	data, err := Encode(s.tasks)
	if err != nil {
		return err
	}
	if err := s.storage.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// persist is the best-effort write that follows every mutation.
func (s *Store) persist() {
	s.persistErr = s.Persist()
	if s.persistErr != nil {
		s.logger.Error("Error saving tasks", "key", s.key, "err", s.persistErr)
	}
}

// PersistErr returns the error from the most recent write, if any.
func (s *Store) PersistErr() error {
	return s.persistErr
}

// Resolve maps a user reference to a task id. A reference is, in order of
// precedence, an exact id, a 1-based position in display order, or a
// prefix shared by exactly one id.
func (s *Store) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	if i := s.index(ref); i >= 0 {
		return ref, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		sorted := s.Sorted()
		if n >= 1 && n <= len(sorted) {
			return sorted[n-1].ID, nil
		}
	}

	var match string
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", ErrAmbiguous, ref)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return match, nil
}

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
