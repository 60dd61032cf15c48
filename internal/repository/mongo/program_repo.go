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

const programCollectionName = "programs"

// mongoProgramRepository implements repository.ProgramRepository
type mongoProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoProgramRepository creates a new program template repository backed by MongoDB.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		collection: db.Collection(programCollectionName),
	}
}

// Create inserts a new program template.
func (r *mongoProgramRepository) Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error) {
	if program.Name == "" {
		return primitive.NilObjectID, errors.New("program name is required")
	}

	program.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now
	if program.Weeks == nil {
		program.Weeks = []domain.Week{}
	}

	result, err := r.collection.InsertOne(ctx, program)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted program ID")
	}
	return insertedID, nil
}

// GetByID retrieves a program by its ID.
func (r *mongoProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error) {
	var program domain.Program
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// GetByName retrieves a program by its name. Clients reference their assigned
// program by name, so the calendar resolver comes through here.
func (r *mongoProgramRepository) GetByName(ctx context.Context, name string) (*domain.Program, error) {
	var program domain.Program
	filter := bson.M{"name": name}

	err := r.collection.FindOne(ctx, filter).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// List retrieves all programs, newest first.
func (r *mongoProgramRepository) List(ctx context.Context) ([]domain.Program, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var programs []domain.Program
	if err = cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return programs, nil
}

// Replace overwrites the stored program document with the given one.
func (r *mongoProgramRepository) Replace(ctx context.Context, program *domain.Program) error {
	if program.ID == primitive.NilObjectID {
		return errors.New("program ID is required for replace")
	}
	if program.Name == "" {
		return errors.New("program name cannot be empty")
	}
	program.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": program.ID}
	result, err := r.collection.ReplaceOne(ctx, filter, program)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetWeeks persists just the weeks array. Builder mutations (setDay, addWeek)
// land here so every edit is durable immediately.
func (r *mongoProgramRepository) SetWeeks(ctx context.Context, id primitive.ObjectID, weeks []domain.Week) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{
			"weeks":     weeks,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a program template.
func (r *mongoProgramRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProgramIndexes creates necessary indexes for the programs collection.
func EnsureProgramIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Clients reference programs by name
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
