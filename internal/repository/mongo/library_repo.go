package mongo

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"fitbysuarez/coaching/internal/domain"
	"fitbysuarez/coaching/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const libraryCollectionName = "library"

// mongoLibraryRepository implements repository.LibraryRepository
type mongoLibraryRepository struct {
	collection *mongo.Collection
}

// NewMongoLibraryRepository creates a new exercise library repository backed by MongoDB.
func NewMongoLibraryRepository(db *mongo.Database) repository.LibraryRepository {
	return &mongoLibraryRepository{
		collection: db.Collection(libraryCollectionName),
	}
}

// Upsert creates or replaces a library entry keyed on the lowercased name.
// On a match the new name casing wins and videoUrl/category/instructions are
// replaced wholesale, matching the original trainer flow where re-saving an
// exercise updates its metadata.
func (r *mongoLibraryRepository) Upsert(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	if exercise.Name == "" {
		return nil, errors.New("exercise name is required")
	}
	exercise.NameLower = strings.ToLower(exercise.Name)
	exercise.LastUpdated = time.Now().UTC()

	filter := bson.M{"nameLower": exercise.NameLower}
	update := bson.M{
		"$set": bson.M{
			"name":         exercise.Name,
			"nameLower":    exercise.NameLower,
			"videoUrl":     exercise.VideoURL,
			"category":     exercise.Category,
			"instructions": exercise.Instructions,
			"lastUpdated":  exercise.LastUpdated,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var updated domain.Exercise
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetByID retrieves a library entry by its ID.
func (r *mongoLibraryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// GetByName retrieves a library entry by case-insensitive name.
func (r *mongoLibraryRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	filter := bson.M{"nameLower": strings.ToLower(name)}

	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// SearchByPrefix retrieves entries whose name starts with prefix,
// case-insensitively, ordered by name. An empty prefix lists the whole catalog.
func (r *mongoLibraryRepository) SearchByPrefix(ctx context.Context, prefix string) ([]domain.Exercise, error) {
	filter := bson.M{}
	if prefix != "" {
		filter["nameLower"] = bson.M{"$regex": "^" + regexp.QuoteMeta(strings.ToLower(prefix))}
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "nameLower", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.Exercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

// SetVideoObjectKey records the storage key of an uploaded demo video.
func (r *mongoLibraryRepository) SetVideoObjectKey(ctx context.Context, id primitive.ObjectID, objectKey string) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{
			"videoObjectKey": objectKey,
			"lastUpdated":    time.Now().UTC(),
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

// EnsureLibraryIndexes creates necessary indexes for the library collection.
func EnsureLibraryIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Case-insensitive uniqueness and prefix search both go through nameLower
			Keys:    bson.D{{Key: "nameLower", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
