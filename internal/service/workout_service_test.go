package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitbysuarez/coaching/internal/domain"
)

func TestWorkoutService_UpsertAndGet(t *testing.T) {
	svc := NewWorkoutService(newMemWorkoutRepo())
	ctx := context.Background()
	clientID := primitive.NewObjectID()

	payload := WorkoutPayload{
		Title:  "Pierna",
		Warmup: "5 min remo",
		Exercises: []domain.EditorExercise{
			{ID: "ex-1", Name: "Sentadilla", Instructions: "5x5"},
		},
	}

	saved, err := svc.UpsertWorkout(ctx, clientID, "2025-12-01", payload)
	if err != nil {
		t.Fatalf("UpsertWorkout failed: %v", err)
	}
	if saved.ID.IsZero() {
		t.Error("saved workout has zero ID")
	}

	got, err := svc.GetWorkout(ctx, clientID, "2025-12-01")
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if got.Title != "Pierna" || len(got.Exercises) != 1 || got.Exercises[0].Name != "Sentadilla" {
		t.Errorf("got %+v", got)
	}
}

func TestWorkoutService_UpsertReplacesWholeDocument(t *testing.T) {
	svc := NewWorkoutService(newMemWorkoutRepo())
	ctx := context.Background()
	clientID := primitive.NewObjectID()

	first, _ := svc.UpsertWorkout(ctx, clientID, "2025-12-01", WorkoutPayload{
		Title:     "Pierna",
		Exercises: []domain.EditorExercise{{ID: "a", Name: "Sentadilla"}},
	})

	second, err := svc.UpsertWorkout(ctx, clientID, "2025-12-01", WorkoutPayload{
		Title: "Descarga",
	})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	if second.ID != first.ID {
		t.Error("upsert created a second document for the same (client, date)")
	}
	if second.Title != "Descarga" {
		t.Errorf("title = %q, want Descarga", second.Title)
	}
	if len(second.Exercises) != 0 {
		t.Errorf("old exercises survived the replace: %+v", second.Exercises)
	}
}

func TestWorkoutService_UpsertFillsMissingExerciseIDs(t *testing.T) {
	svc := NewWorkoutService(newMemWorkoutRepo())
	clientID := primitive.NewObjectID()

	saved, err := svc.UpsertWorkout(context.Background(), clientID, "2025-12-01", WorkoutPayload{
		Exercises: []domain.EditorExercise{{Name: "Remo"}, {ID: "keep", Name: "Press"}},
	})
	if err != nil {
		t.Fatalf("UpsertWorkout failed: %v", err)
	}
	if saved.Exercises[0].ID == "" {
		t.Error("missing exercise id was not generated")
	}
	if saved.Exercises[1].ID != "keep" {
		t.Errorf("existing id was replaced: %q", saved.Exercises[1].ID)
	}
}

func TestWorkoutService_RejectsBadDate(t *testing.T) {
	svc := NewWorkoutService(newMemWorkoutRepo())
	ctx := context.Background()
	clientID := primitive.NewObjectID()

	for _, bad := range []string{"", "01-12-2025", "2025/12/01", "2025-13-01"} {
		if _, err := svc.UpsertWorkout(ctx, clientID, bad, WorkoutPayload{}); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("upsert with date %q returned %v, want ErrValidationFailed", bad, err)
		}
		if _, err := svc.GetWorkout(ctx, clientID, bad); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("get with date %q returned %v, want ErrValidationFailed", bad, err)
		}
	}
}

func TestWorkoutService_ListRange(t *testing.T) {
	svc := NewWorkoutService(newMemWorkoutRepo())
	ctx := context.Background()
	clientID := primitive.NewObjectID()
	other := primitive.NewObjectID()

	for _, date := range []string{"2025-12-03", "2025-12-01", "2025-12-10"} {
		if _, err := svc.UpsertWorkout(ctx, clientID, date, WorkoutPayload{Title: date}); err != nil {
			t.Fatalf("seed upsert failed: %v", err)
		}
	}
	svc.UpsertWorkout(ctx, other, "2025-12-01", WorkoutPayload{Title: "otro cliente"})

	got, err := svc.ListWorkouts(ctx, clientID, "2025-12-01", "2025-12-05")
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d workouts, want 2", len(got))
	}
	if got[0].Date != "2025-12-01" || got[1].Date != "2025-12-03" {
		t.Errorf("dates = %s, %s; want ascending 2025-12-01, 2025-12-03", got[0].Date, got[1].Date)
	}
}

func TestWorkoutService_Delete(t *testing.T) {
	svc := NewWorkoutService(newMemWorkoutRepo())
	ctx := context.Background()
	clientID := primitive.NewObjectID()

	svc.UpsertWorkout(ctx, clientID, "2025-12-01", WorkoutPayload{Title: "Pierna"})

	if err := svc.DeleteWorkout(ctx, clientID, "2025-12-01"); err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}
	if _, err := svc.GetWorkout(ctx, clientID, "2025-12-01"); !errors.Is(err, ErrWorkoutNotFound) {
		t.Errorf("get after delete returned %v, want ErrWorkoutNotFound", err)
	}
	if err := svc.DeleteWorkout(ctx, clientID, "2025-12-01"); !errors.Is(err, ErrWorkoutNotFound) {
		t.Errorf("second delete returned %v, want ErrWorkoutNotFound", err)
	}
}
