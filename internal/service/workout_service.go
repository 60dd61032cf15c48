package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitbysuarez/coaching/internal/domain"
	"fitbysuarez/coaching/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound = errors.New("no workout found for this date")
)

// WorkoutPayload is the caller's view of one day's workout, without store
// bookkeeping fields.
type WorkoutPayload struct {
	Title     string                  `json:"title"`
	Warmup    string                  `json:"warmup"`
	Cooldown  string                  `json:"cooldown"`
	Exercises []domain.EditorExercise `json:"exercises"`
}

// WorkoutService manages per-date client workouts (calendar overrides).
type WorkoutService interface {
	// UpsertWorkout creates or wholly replaces the workout at (clientID, date).
	// Idempotent: repeating the same call leaves the store unchanged.
	UpsertWorkout(ctx context.Context, clientID primitive.ObjectID, date string, payload WorkoutPayload) (*domain.ClientWorkout, error)
	GetWorkout(ctx context.Context, clientID primitive.ObjectID, date string) (*domain.ClientWorkout, error)
	// ListWorkouts returns the client's workouts by date ascending; from/to
	// bound the range inclusively when non-empty.
	ListWorkouts(ctx context.Context, clientID primitive.ObjectID, from, to string) ([]domain.ClientWorkout, error)
	DeleteWorkout(ctx context.Context, clientID primitive.ObjectID, date string) error
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo repository.ClientWorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.ClientWorkoutRepository) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
	}
}

// UpsertWorkout validates the key and hands the full payload to the store.
func (s *workoutService) UpsertWorkout(ctx context.Context, clientID primitive.ObjectID, date string, payload WorkoutPayload) (*domain.ClientWorkout, error) {
	if clientID == primitive.NilObjectID {
		return nil, fmt.Errorf("%w: client ID is required", ErrValidationFailed)
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	exercises := make([]domain.EditorExercise, len(payload.Exercises))
	copy(exercises, payload.Exercises)
	for i := range exercises {
		// Payloads built outside the editor may omit line ids.
		if exercises[i].ID == "" {
			exercises[i].ID = uuid.NewString()
		}
	}

	workout := &domain.ClientWorkout{
		ClientID:  clientID,
		Date:      date,
		Title:     payload.Title,
		Warmup:    payload.Warmup,
		Cooldown:  payload.Cooldown,
		Exercises: exercises,
	}
	return s.workoutRepo.Upsert(ctx, workout)
}

// GetWorkout retrieves the workout for one client and date.
func (s *workoutService) GetWorkout(ctx context.Context, clientID primitive.ObjectID, date string) (*domain.ClientWorkout, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	workout, err := s.workoutRepo.GetByClientAndDate(ctx, clientID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// ListWorkouts retrieves a client's workouts ordered by date ascending.
func (s *workoutService) ListWorkouts(ctx context.Context, clientID primitive.ObjectID, from, to string) ([]domain.ClientWorkout, error) {
	if from != "" {
		if err := validateDate(from); err != nil {
			return nil, err
		}
	}
	if to != "" {
		if err := validateDate(to); err != nil {
			return nil, err
		}
	}
	return s.workoutRepo.ListByClient(ctx, clientID, from, to)
}

// DeleteWorkout removes the workout at (clientID, date).
func (s *workoutService) DeleteWorkout(ctx context.Context, clientID primitive.ObjectID, date string) error {
	if err := validateDate(date); err != nil {
		return err
	}

	err := s.workoutRepo.Delete(ctx, clientID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be formatted %s", ErrValidationFailed, domain.DateLayout)
	}
	return nil
}
