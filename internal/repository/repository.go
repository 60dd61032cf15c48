package repository

import (
	"context"

	"fitbysuarez/coaching/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string, firstLogin bool) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

// LibraryRepository defines the interface for the exercise library catalog.
// Entries are keyed case-insensitively by name and are never hard-deleted.
type LibraryRepository interface {
	Upsert(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	SearchByPrefix(ctx context.Context, prefix string) ([]domain.Exercise, error)
	SetVideoObjectKey(ctx context.Context, id primitive.ObjectID, objectKey string) error
}

// ProgramRepository defines the interface for program templates.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error)
	GetByName(ctx context.Context, name string) (*domain.Program, error)
	List(ctx context.Context) ([]domain.Program, error)
	Replace(ctx context.Context, program *domain.Program) error
	SetWeeks(ctx context.Context, id primitive.ObjectID, weeks []domain.Week) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ClientWorkoutRepository defines the interface for per-date client workouts.
// The (clientId, date) pair is a natural key; Upsert has replace semantics.
type ClientWorkoutRepository interface {
	Upsert(ctx context.Context, workout *domain.ClientWorkout) (*domain.ClientWorkout, error)
	GetByClientAndDate(ctx context.Context, clientID primitive.ObjectID, date string) (*domain.ClientWorkout, error)
	// ListByClient returns workouts ordered by date ascending. from/to bound the
	// date range inclusively when non-empty.
	ListByClient(ctx context.Context, clientID primitive.ObjectID, from, to string) ([]domain.ClientWorkout, error)
	Delete(ctx context.Context, clientID primitive.ObjectID, date string) error
}
