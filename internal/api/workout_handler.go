package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitbysuarez/coaching/internal/domain"
	"fitbysuarez/coaching/internal/editor"
	"fitbysuarez/coaching/internal/service"
)

// WorkoutHandler serves per-date client workouts, the documents that override
// the program template on the calendar.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request/Response Structs ---

type UpsertWorkoutRequest struct {
	Title     string                  `json:"title"`
	Warmup    string                  `json:"warmup"`
	Cooldown  string                  `json:"cooldown"`
	Exercises []domain.EditorExercise `json:"exercises"`
}

// WorkoutResponse carries the stored document plus the display labels the
// editor derives from exercise order and superset flags.
type WorkoutResponse struct {
	ID        string                  `json:"id"`
	ClientID  string                  `json:"clientId"`
	Date      string                  `json:"date"`
	Title     string                  `json:"title,omitempty"`
	Warmup    string                  `json:"warmup,omitempty"`
	Cooldown  string                  `json:"cooldown,omitempty"`
	Exercises []domain.EditorExercise `json:"exercises"`
	Labels    []string                `json:"labels"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

func MapWorkoutToResponse(w *domain.ClientWorkout) WorkoutResponse {
	exercises := w.Exercises
	if exercises == nil {
		exercises = []domain.EditorExercise{}
	}
	return WorkoutResponse{
		ID:        w.ID.Hex(),
		ClientID:  w.ClientID.Hex(),
		Date:      w.Date,
		Title:     w.Title,
		Warmup:    w.Warmup,
		Cooldown:  w.Cooldown,
		Exercises: exercises,
		Labels:    editor.Labels(exercises),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// --- Handler Methods ---

// UpsertWorkout creates or wholly replaces the workout at (client, date).
// Saving the same payload twice is a no-op.
func (h *WorkoutHandler) UpsertWorkout(c *gin.Context) {
	clientID, ok := h.clientIDParam(c)
	if !ok {
		return
	}

	var req UpsertWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.workoutService.UpsertWorkout(c.Request.Context(), clientID, c.Param("date"), service.WorkoutPayload{
		Title:     req.Title,
		Warmup:    req.Warmup,
		Cooldown:  req.Cooldown,
		Exercises: req.Exercises,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not save workout")
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	clientID, ok := h.clientIDParam(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.GetWorkout(c.Request.Context(), clientID, c.Param("date"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not fetch workout")
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// ListWorkouts returns the client's stored workouts, date ascending,
// optionally bounded by ?from and ?to.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	clientID, ok := h.clientIDParam(c)
	if !ok {
		return
	}

	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), clientID, c.Query("from"), c.Query("to"))
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not list workouts")
		}
		return
	}

	resp := make([]WorkoutResponse, 0, len(workouts))
	for i := range workouts {
		resp = append(resp, MapWorkoutToResponse(&workouts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteWorkout removes the override; the calendar date falls back to the
// template projection.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	clientID, ok := h.clientIDParam(c)
	if !ok {
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), clientID, c.Param("date")); err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not delete workout")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *WorkoutHandler) clientIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}
