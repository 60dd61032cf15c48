package editor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"fitbysuarez/coaching/internal/domain"
)

func noSave(ctx context.Context, d Draft) error { return nil }

func TestSession_OpenSeedsBlankSlot(t *testing.T) {
	s := Open(noSave)
	d := s.Draft()
	if len(d.Exercises) != 1 {
		t.Fatalf("new session has %d exercises, want one blank slot", len(d.Exercises))
	}
	blank := d.Exercises[0]
	if blank.ID == "" {
		t.Error("blank slot has no id")
	}
	if blank.Name != "" || blank.IsSuperset {
		t.Errorf("blank slot is not empty: %+v", blank)
	}

	// Reopening a stored workout keeps exactly the stored rows.
	stored := &domain.ClientWorkout{Exercises: []domain.EditorExercise{{ID: "a", Name: "Remo"}}}
	if got := OpenExisting(stored, noSave).Draft().Exercises; len(got) != 1 || got[0].ID != "a" {
		t.Errorf("reopened draft = %+v, want the single stored row", got)
	}
}

func TestSession_AddRenameRemove(t *testing.T) {
	s := Open(noSave)
	blank := s.Draft().Exercises[0].ID

	id, err := s.AddExercise("Sentadilla")
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}
	if id == "" {
		t.Fatal("AddExercise returned empty id")
	}

	if err := s.RenameExercise(id, "Sentadilla Frontal"); err != nil {
		t.Fatalf("RenameExercise failed: %v", err)
	}
	if err := s.SetInstructions(id, "3x8"); err != nil {
		t.Fatalf("SetInstructions failed: %v", err)
	}

	d := s.Draft()
	if len(d.Exercises) != 2 {
		t.Fatalf("draft has %d exercises, want 2", len(d.Exercises))
	}
	if d.Exercises[1].Name != "Sentadilla Frontal" || d.Exercises[1].Instructions != "3x8" {
		t.Errorf("unexpected exercise: %+v", d.Exercises[1])
	}

	if err := s.RemoveExercise(blank); err != nil {
		t.Fatalf("RemoveExercise(blank slot) failed: %v", err)
	}
	if err := s.RemoveExercise(id); err != nil {
		t.Fatalf("RemoveExercise failed: %v", err)
	}
	if got := len(s.Draft().Exercises); got != 0 {
		t.Errorf("draft has %d exercises after remove, want 0", got)
	}

	if err := s.RenameExercise(id, "x"); !errors.Is(err, ErrNoSuchExercise) {
		t.Errorf("rename of removed exercise returned %v, want ErrNoSuchExercise", err)
	}
}

func TestSession_CreateSupersetNeedsTwoSelected(t *testing.T) {
	s := Open(noSave)
	id1 := s.Draft().Exercises[0].ID
	s.RenameExercise(id1, "Press Banca")
	s.AddExercise("Remo")

	if err := s.CreateSuperset(); !errors.Is(err, ErrSupersetSelection) {
		t.Fatalf("CreateSuperset with no selection returned %v, want ErrSupersetSelection", err)
	}

	if err := s.ToggleSelect(id1); err != nil {
		t.Fatalf("ToggleSelect failed: %v", err)
	}
	if err := s.CreateSuperset(); !errors.Is(err, ErrSupersetSelection) {
		t.Fatalf("CreateSuperset with one selection returned %v, want ErrSupersetSelection", err)
	}

	// The failed attempts must not have flagged anything.
	for _, ex := range s.Draft().Exercises {
		if ex.IsSuperset {
			t.Errorf("exercise %q flagged as superset after failed CreateSuperset", ex.Name)
		}
	}
}

func TestSession_CreateSupersetGroupsSelection(t *testing.T) {
	s := Open(noSave)
	id1 := s.Draft().Exercises[0].ID
	s.RenameExercise(id1, "Press Banca")
	s.AddExercise("Sentadilla")
	id3, _ := s.AddExercise("Remo")

	s.ToggleSelect(id1)
	s.ToggleSelect(id3)

	if err := s.CreateSuperset(); err != nil {
		t.Fatalf("CreateSuperset failed: %v", err)
	}

	d := s.Draft()
	names := make([]string, len(d.Exercises))
	for i, ex := range d.Exercises {
		names[i] = ex.Name
	}
	// Members become contiguous at the first selected position.
	want := []string{"Press Banca", "Remo", "Sentadilla"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order after superset = %v, want %v", names, want)
		}
	}
	if !d.Exercises[0].IsSuperset || !d.Exercises[1].IsSuperset || d.Exercises[2].IsSuperset {
		t.Errorf("superset flags wrong: %+v", d.Exercises)
	}

	labels := s.Labels()
	if labels[0] != "A1" || labels[1] != "A2" || labels[2] != "B" {
		t.Errorf("labels = %v, want [A1 A2 B]", labels)
	}

	// Selection is consumed; a second attempt starts from nothing.
	if err := s.CreateSuperset(); !errors.Is(err, ErrSupersetSelection) {
		t.Errorf("CreateSuperset after clear returned %v, want ErrSupersetSelection", err)
	}
}

func TestSession_OpenExistingPreservesOrder(t *testing.T) {
	stored := &domain.ClientWorkout{
		Title: "Pierna",
		Exercises: []domain.EditorExercise{
			{ID: "a", Name: "Sentadilla"},
			{ID: "b", Name: "Zancadas", IsSuperset: true},
			{ID: "c", Name: "Gemelos", IsSuperset: true},
		},
	}

	s := OpenExisting(stored, noSave)
	d := s.Draft()
	if d.Title != "Pierna" {
		t.Errorf("title = %q, want Pierna", d.Title)
	}
	for i, want := range []string{"a", "b", "c"} {
		if d.Exercises[i].ID != want {
			t.Fatalf("exercise[%d].ID = %q, want %q", i, d.Exercises[i].ID, want)
		}
	}

	// Edits must not leak back into the stored document.
	s.RenameExercise("a", "Prensa")
	if stored.Exercises[0].Name != "Sentadilla" {
		t.Errorf("stored workout mutated by session edit")
	}
}

func TestSession_SaveFailureKeepsDraftOpen(t *testing.T) {
	saveErr := errors.New("mongo down")
	s := Open(func(ctx context.Context, d Draft) error { return saveErr })
	s.RenameExercise(s.Draft().Exercises[0].ID, "Remo")

	if err := s.Save(context.Background()); !errors.Is(err, saveErr) {
		t.Fatalf("Save returned %v, want wrapped save error", err)
	}
	if s.State() != StateOpen {
		t.Errorf("state after failed save = %v, want open", s.State())
	}
	if got := len(s.Draft().Exercises); got != 1 {
		t.Errorf("draft lost exercises on failed save: %d", got)
	}

	// Retry with a working saver path is not possible here, but the session
	// must still accept edits.
	if _, err := s.AddExercise("Dominadas"); err != nil {
		t.Errorf("session rejected edit after failed save: %v", err)
	}
}

func TestSession_SaveClosesSession(t *testing.T) {
	var saved Draft
	s := Open(func(ctx context.Context, d Draft) error { saved = d; return nil })
	s.RenameExercise(s.Draft().Exercises[0].ID, "Remo")
	s.SetTitle("Espalda")

	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if s.State() != StateSaved {
		t.Errorf("state = %v, want saved", s.State())
	}
	if saved.Title != "Espalda" || len(saved.Exercises) != 1 {
		t.Errorf("saver got %+v", saved)
	}

	if _, err := s.AddExercise("x"); !errors.Is(err, ErrClosed) {
		t.Errorf("edit after save returned %v, want ErrClosed", err)
	}
	if err := s.Save(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("second save returned %v, want ErrClosed", err)
	}
}

func TestSession_SingleSaveInFlight(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{})
	s := Open(func(ctx context.Context, d Draft) error {
		close(started)
		<-block
		return nil
	})
	s.AddExercise("Remo")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Save(context.Background())
	}()

	<-started
	if err := s.Save(context.Background()); !errors.Is(err, ErrSaveInFlight) {
		t.Errorf("concurrent save returned %v, want ErrSaveInFlight", err)
	}

	close(block)
	wg.Wait()
	if s.State() != StateSaved {
		t.Errorf("state = %v, want saved", s.State())
	}
}

func TestSession_Discard(t *testing.T) {
	s := Open(noSave)
	s.AddExercise("Remo")

	if err := s.Discard(); err != nil {
		t.Fatalf("Discard failed: %v", err)
	}
	if s.State() != StateDiscarded {
		t.Errorf("state = %v, want discarded", s.State())
	}
	if err := s.Save(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("save after discard returned %v, want ErrClosed", err)
	}
}

func TestSession_Move(t *testing.T) {
	s := Open(noSave)
	s.RenameExercise(s.Draft().Exercises[0].ID, "A")
	s.AddExercise("B")
	s.AddExercise("C")

	if err := s.Move(2, 0); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	d := s.Draft()
	got := []string{d.Exercises[0].Name, d.Exercises[1].Name, d.Exercises[2].Name}
	if got[0] != "C" || got[1] != "A" || got[2] != "B" {
		t.Errorf("order after move = %v, want [C A B]", got)
	}

	if err := s.Move(0, 5); !errors.Is(err, ErrNoSuchExercise) {
		t.Errorf("out-of-range move returned %v", err)
	}
}
