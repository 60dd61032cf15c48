package mongo

import (
	"context"
	"errors"
	"time"

	"fitbysuarez/coaching/internal/domain"
	"fitbysuarez/coaching/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const clientWorkoutCollectionName = "client_workouts"

// mongoClientWorkoutRepository implements repository.ClientWorkoutRepository
type mongoClientWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoClientWorkoutRepository creates a new per-date client workout repository.
func NewMongoClientWorkoutRepository(db *mongo.Database) repository.ClientWorkoutRepository {
	return &mongoClientWorkoutRepository{
		collection: db.Collection(clientWorkoutCollectionName),
	}
}

// Upsert creates or wholly replaces the workout at (clientId, date). There is
// no field-level merge: a second upsert for the same key discards the prior
// document's content. Concurrent upserts are last-write-wins.
func (r *mongoClientWorkoutRepository) Upsert(ctx context.Context, workout *domain.ClientWorkout) (*domain.ClientWorkout, error) {
	if workout.ClientID == primitive.NilObjectID || workout.Date == "" {
		return nil, errors.New("client ID and date are required")
	}
	if workout.Exercises == nil {
		workout.Exercises = []domain.EditorExercise{}
	}

	now := time.Now().UTC()
	filter := bson.M{"clientId": workout.ClientID, "date": workout.Date}
	update := bson.M{
		"$set": bson.M{
			"title":     workout.Title,
			"warmup":    workout.Warmup,
			"cooldown":  workout.Cooldown,
			"exercises": workout.Exercises,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"clientId":  workout.ClientID,
			"date":      workout.Date,
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var saved domain.ClientWorkout
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost a race against a concurrent insert for the same key; the
			// unique index guarantees a document now exists, retry once.
			err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved)
		}
		if err != nil {
			return nil, err
		}
	}
	return &saved, nil
}

// GetByClientAndDate retrieves the single workout for one client and date.
func (r *mongoClientWorkoutRepository) GetByClientAndDate(ctx context.Context, clientID primitive.ObjectID, date string) (*domain.ClientWorkout, error) {
	var workout domain.ClientWorkout
	filter := bson.M{"clientId": clientID, "date": date}

	err := r.collection.FindOne(ctx, filter).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// ListByClient retrieves a client's workouts ordered by date ascending,
// optionally bounded to [from, to] inclusive. ISO date strings sort
// lexicographically, so string comparison is a correct range filter.
func (r *mongoClientWorkoutRepository) ListByClient(ctx context.Context, clientID primitive.ObjectID, from, to string) ([]domain.ClientWorkout, error) {
	filter := bson.M{"clientId": clientID}
	if from != "" || to != "" {
		dateFilter := bson.M{}
		if from != "" {
			dateFilter["$gte"] = from
		}
		if to != "" {
			dateFilter["$lte"] = to
		}
		filter["date"] = dateFilter
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workouts []domain.ClientWorkout
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Delete removes the workout at (clientId, date).
func (r *mongoClientWorkoutRepository) Delete(ctx context.Context, clientID primitive.ObjectID, date string) error {
	filter := bson.M{"clientId": clientID, "date": date}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureClientWorkoutIndexes creates necessary indexes for the client_workouts
// collection. The compound unique index is what enforces "one workout per
// client per date" at the store boundary.
func EnsureClientWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
