package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"fitbysuarez/coaching/internal/domain"
	"fitbysuarez/coaching/internal/repository"
	"fitbysuarez/coaching/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrUploadURLError   = errors.New("failed to generate upload URL")
)

// VideoUploadResponse carries the presigned URL plus the object key the caller
// must report back on confirm.
type VideoUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// LibraryService manages the deduplicated exercise catalog used for
// autocomplete in the program builder and workout editor.
type LibraryService interface {
	// Upsert matches an existing entry case-insensitively by name. On a match
	// the entry's metadata is replaced and the new name casing wins; otherwise
	// a new entry is created.
	Upsert(ctx context.Context, name, videoURL string, categories []string, instructions string) (*domain.Exercise, error)
	// SearchByPrefix returns entries whose name starts with text,
	// case-insensitive, ordered by name. Empty text lists the whole catalog.
	// Entries with an uploaded clip get a fresh presigned download URL.
	SearchByPrefix(ctx context.Context, text string) ([]domain.Exercise, error)

	// Demo video upload flow, mirroring the client-video upload pattern:
	// request a presigned PUT, upload directly to storage, then confirm.
	RequestVideoUploadURL(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (*VideoUploadResponse, error)
	ConfirmVideoUpload(ctx context.Context, exerciseID primitive.ObjectID, objectKey string) (*domain.Exercise, error)
}

// libraryService implements the LibraryService interface.
type libraryService struct {
	libraryRepo repository.LibraryRepository
	fileStorage storage.FileStorage
}

// NewLibraryService creates a new instance of libraryService.
func NewLibraryService(libraryRepo repository.LibraryRepository, fileStorage storage.FileStorage) LibraryService {
	return &libraryService{
		libraryRepo: libraryRepo,
		fileStorage: fileStorage,
	}
}

// Upsert creates or updates a catalog entry keyed on case-insensitive name.
func (s *libraryService) Upsert(ctx context.Context, name, videoURL string, categories []string, instructions string) (*domain.Exercise, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidationFailed)
	}
	if len(categories) == 0 {
		categories = []string{"General"}
	}

	exercise := &domain.Exercise{
		Name:         strings.TrimSpace(name),
		VideoURL:     videoURL,
		Category:     categories,
		Instructions: instructions,
	}
	return s.libraryRepo.Upsert(ctx, exercise)
}

// SearchByPrefix drives autocomplete. The scan is bounded by catalog size,
// which stays in the hundreds-to-low-thousands for a single trainer; the
// nameLower index leaves room to push the prefix match into the store later.
func (s *libraryService) SearchByPrefix(ctx context.Context, text string) ([]domain.Exercise, error) {
	exercises, err := s.libraryRepo.SearchByPrefix(ctx, strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}

	for i := range exercises {
		if exercises[i].VideoObjectKey == "" {
			continue
		}
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, exercises[i].VideoObjectKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			// Keep the entry usable without its clip rather than failing the search.
			continue
		}
		exercises[i].VideoURL = url
	}
	return exercises, nil
}

// RequestVideoUploadURL generates a presigned PUT URL for a demo video clip.
func (s *libraryService) RequestVideoUploadURL(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (*VideoUploadResponse, error) {
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "video/") {
		return nil, fmt.Errorf("%w: invalid or missing video content type", ErrValidationFailed)
	}

	exercise, err := s.libraryRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	ext := strings.TrimPrefix(strings.ToLower(contentType), "video/")
	objectKey := path.Join("library", exercise.ID.Hex(), uuid.NewString()+"."+ext)

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &VideoUploadResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmVideoUpload records the uploaded object key on the entry. A clip
// replaced by a newer upload is removed from storage.
func (s *libraryService) ConfirmVideoUpload(ctx context.Context, exerciseID primitive.ObjectID, objectKey string) (*domain.Exercise, error) {
	if objectKey == "" {
		return nil, fmt.Errorf("%w: object key is required", ErrValidationFailed)
	}

	exercise, err := s.libraryRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	if prior := exercise.VideoObjectKey; prior != "" && prior != objectKey {
		// Best effort; an orphaned object is not worth failing the confirm.
		_ = s.fileStorage.DeleteObject(ctx, prior)
	}

	if err := s.libraryRepo.SetVideoObjectKey(ctx, exerciseID, objectKey); err != nil {
		return nil, err
	}
	return s.libraryRepo.GetByID(ctx, exerciseID)
}
