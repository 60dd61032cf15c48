package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitbysuarez/coaching/internal/domain"
	"fitbysuarez/coaching/internal/service"
)

// LibraryHandler serves the exercise catalog: prefix search, upsert and the
// demo-video upload flow.
type LibraryHandler struct {
	libraryService service.LibraryService
}

func NewLibraryHandler(libraryService service.LibraryService) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

// --- Request/Response Structs ---

type UpsertExerciseRequest struct {
	Name         string   `json:"name" binding:"required"`
	VideoURL     string   `json:"videoUrl"`
	Category     []string `json:"category"`
	Instructions string   `json:"instructions"`
}

type GenerateVideoUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmVideoUploadRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

type ExerciseResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     []string  `json:"category"`
	Instructions string    `json:"instructions,omitempty"`
	VideoURL     string    `json:"videoUrl,omitempty"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:           ex.ID.Hex(),
		Name:         ex.Name,
		Category:     ex.Category,
		Instructions: ex.Instructions,
		VideoURL:     ex.VideoURL,
		LastUpdated:  ex.LastUpdated,
	}
}

// --- Handler Methods ---

// Search godoc
// @Summary Search library exercises by name prefix
// @Description Case-insensitive prefix match; empty query lists everything.
// @Tags Library
// @Produce json
// @Param q query string false "Name prefix"
// @Success 200 {array} ExerciseResponse
// @Router /library [get]
func (h *LibraryHandler) Search(c *gin.Context) {
	exercises, err := h.libraryService.SearchByPrefix(c.Request.Context(), c.Query("q"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not search library")
		return
	}

	resp := make([]ExerciseResponse, 0, len(exercises))
	for i := range exercises {
		resp = append(resp, MapExerciseToResponse(&exercises[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Upsert creates the entry or, when a name matches case-insensitively,
// replaces its metadata. "press banca" and "Press Banca" are one entry.
func (h *LibraryHandler) Upsert(c *gin.Context) {
	var req UpsertExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.libraryService.Upsert(c.Request.Context(), req.Name, req.VideoURL, req.Category, req.Instructions)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not save exercise")
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// GenerateVideoUploadURL returns a presigned PUT URL for a demo clip.
func (h *LibraryHandler) GenerateVideoUploadURL(c *gin.Context) {
	id, ok := exerciseIDParam(c)
	if !ok {
		return
	}

	var req GenerateVideoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	resp, err := h.libraryService.RequestVideoUploadURL(c.Request.Context(), id, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not generate upload URL")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ConfirmVideoUpload records the uploaded object key after the client PUT
// succeeded, replacing any previous clip.
func (h *LibraryHandler) ConfirmVideoUpload(c *gin.Context) {
	id, ok := exerciseIDParam(c)
	if !ok {
		return
	}

	var req ConfirmVideoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.libraryService.ConfirmVideoUpload(c.Request.Context(), id, req.ObjectKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not confirm upload")
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

func exerciseIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}
