// Package editor models the day-workout editing session: an in-memory draft
// of one client-date workout that the trainer mutates freely and then either
// saves through a single upsert or discards. Nothing touches storage until
// Save, and a failed save keeps the draft intact for retry.
package editor

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"fitbysuarez/coaching/internal/domain"
)

var (
	// ErrClosed is returned by mutations on a session that is not open.
	ErrClosed = errors.New("editor: session is not open")
	// ErrSaveInFlight rejects a Save while a previous one has not returned.
	ErrSaveInFlight = errors.New("editor: save already in progress")
	// ErrSupersetSelection requires at least two selected exercises.
	ErrSupersetSelection = errors.New("editor: superset needs at least two selected exercises")
	// ErrNoSuchExercise is returned when an exercise id is not in the draft.
	ErrNoSuchExercise = errors.New("editor: exercise not in draft")
)

// State tracks the session lifecycle. A session opens exactly once and ends
// in Saved or Discarded; a failed save leaves it Open.
type State string

const (
	StateClosed    State = "closed"
	StateOpen      State = "open"
	StateSaved     State = "saved"
	StateDiscarded State = "discarded"
)

// Draft is the editable snapshot handed to the saver on Save.
type Draft struct {
	Title     string
	Warmup    string
	Cooldown  string
	Exercises []domain.EditorExercise
}

// SaveFunc persists the draft; typically a closure over
// WorkoutService.UpsertWorkout for a fixed client and date.
type SaveFunc func(ctx context.Context, d Draft) error

// Session is safe for concurrent use; every method takes the session lock.
type Session struct {
	mu       sync.Mutex
	state    State
	draft    Draft
	selected map[string]bool
	save     SaveFunc
	saving   bool
}

// Open starts a session for a date with no workout yet. The draft is seeded
// with a single blank exercise slot so the trainer starts typing into a row
// instead of an empty list.
func Open(save SaveFunc) *Session {
	return &Session{
		state:    StateOpen,
		draft:    Draft{Exercises: []domain.EditorExercise{{ID: uuid.NewString()}}},
		selected: make(map[string]bool),
		save:     save,
	}
}

// OpenExisting starts a session seeded from a stored workout. The draft gets
// its own copies, so later edits never alias the caller's slices, and stored
// exercise order is preserved.
func OpenExisting(w *domain.ClientWorkout, save SaveFunc) *Session {
	s := Open(save)
	s.draft.Title = w.Title
	s.draft.Warmup = w.Warmup
	s.draft.Cooldown = w.Cooldown
	s.draft.Exercises = append([]domain.EditorExercise(nil), w.Exercises...)
	return s
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft returns a copy of the current draft.
func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft
	d.Exercises = append([]domain.EditorExercise(nil), s.draft.Exercises...)
	return d
}

// Labels returns the current display letters for the draft's exercises.
func (s *Session) Labels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Labels(s.draft.Exercises)
}

func (s *Session) SetTitle(title string) error       { return s.mutate(func() { s.draft.Title = title }) }
func (s *Session) SetWarmup(warmup string) error     { return s.mutate(func() { s.draft.Warmup = warmup }) }
func (s *Session) SetCooldown(cooldown string) error { return s.mutate(func() { s.draft.Cooldown = cooldown }) }

// AddExercise appends a new exercise and returns its generated id.
func (s *Session) AddExercise(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateOpen {
		return "", ErrClosed
	}
	id := uuid.NewString()
	s.draft.Exercises = append(s.draft.Exercises, domain.EditorExercise{ID: id, Name: name})
	return id, nil
}

func (s *Session) RenameExercise(id, name string) error {
	return s.withExercise(id, func(ex *domain.EditorExercise) { ex.Name = name })
}

func (s *Session) SetInstructions(id, instructions string) error {
	return s.withExercise(id, func(ex *domain.EditorExercise) { ex.Instructions = instructions })
}

func (s *Session) SetVideoURL(id, url string) error {
	return s.withExercise(id, func(ex *domain.EditorExercise) { ex.VideoURL = url })
}

// RemoveExercise drops the exercise and forgets its selection.
func (s *Session) RemoveExercise(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateOpen {
		return ErrClosed
	}
	i := s.indexOf(id)
	if i < 0 {
		return ErrNoSuchExercise
	}
	s.draft.Exercises = append(s.draft.Exercises[:i], s.draft.Exercises[i+1:]...)
	delete(s.selected, id)
	return nil
}

// ToggleSelect flips the checkbox used to build supersets.
func (s *Session) ToggleSelect(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateOpen {
		return ErrClosed
	}
	if s.indexOf(id) < 0 {
		return ErrNoSuchExercise
	}
	s.selected[id] = !s.selected[id]
	return nil
}

// CreateSuperset turns the selected exercises into one contiguous superset
// block at the position of the first selected entry, preserving their
// relative order, then clears the selection. With fewer than two selected it
// fails without changing the draft.
func (s *Session) CreateSuperset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateOpen {
		return ErrClosed
	}
	var picked []domain.EditorExercise
	var rest []domain.EditorExercise
	insertAt := -1
	for i, ex := range s.draft.Exercises {
		if s.selected[ex.ID] {
			if insertAt < 0 {
				insertAt = i
			}
			ex.IsSuperset = true
			picked = append(picked, ex)
		} else {
			rest = append(rest, ex)
		}
	}
	if len(picked) < 2 {
		return ErrSupersetSelection
	}
	if insertAt > len(rest) {
		insertAt = len(rest)
	}
	merged := make([]domain.EditorExercise, 0, len(s.draft.Exercises))
	merged = append(merged, rest[:insertAt]...)
	merged = append(merged, picked...)
	merged = append(merged, rest[insertAt:]...)
	s.draft.Exercises = merged
	s.selected = make(map[string]bool)
	return nil
}

// Move shifts the exercise at from to position to.
func (s *Session) Move(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateOpen {
		return ErrClosed
	}
	n := len(s.draft.Exercises)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrNoSuchExercise
	}
	if from == to {
		return nil
	}
	ex := s.draft.Exercises[from]
	list := append(s.draft.Exercises[:from], s.draft.Exercises[from+1:]...)
	list = append(list, domain.EditorExercise{})
	copy(list[to+1:], list[to:])
	list[to] = ex
	s.draft.Exercises = list
	return nil
}

// Save persists the draft through the SaveFunc. Only one save may be in
// flight at a time; success closes the session as Saved, failure returns the
// saver's error and leaves the session open with the draft untouched.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateOpen {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.saving {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	s.saving = true
	d := s.draft
	d.Exercises = append([]domain.EditorExercise(nil), s.draft.Exercises...)
	s.mu.Unlock()

	err := s.save(ctx, d)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		return err
	}
	if s.state == StateOpen { // a concurrent Discard may have won
		s.state = StateSaved
	}
	return nil
}

// Discard abandons the draft.
func (s *Session) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateOpen {
		return ErrClosed
	}
	s.state = StateDiscarded
	return nil
}

func (s *Session) mutate(fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateOpen {
		return ErrClosed
	}
	fn()
	return nil
}

func (s *Session) withExercise(id string, fn func(*domain.EditorExercise)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateOpen {
		return ErrClosed
	}
	i := s.indexOf(id)
	if i < 0 {
		return ErrNoSuchExercise
	}
	fn(&s.draft.Exercises[i])
	return nil
}

func (s *Session) indexOf(id string) int {
	for i, ex := range s.draft.Exercises {
		if ex.ID == id {
			return i
		}
	}
	return -1
}
