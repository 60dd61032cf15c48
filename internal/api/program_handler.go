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

// ProgramHandler serves program template CRUD and the week/day builder ops.
type ProgramHandler struct {
	programService service.ProgramService
}

func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- Request/Response Structs ---

type CreateProgramRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

type ReplaceProgramRequest struct {
	Name        string        `json:"name" binding:"required"`
	Description string        `json:"description"`
	Tags        string        `json:"tags"`
	Weeks       []domain.Week `json:"weeks"`
}

type SetDayRequest struct {
	WeekIndex int            `json:"weekIndex"`
	DayIndex  int            `json:"dayIndex" binding:"required,min=1,max=7"`
	Plan      domain.DayPlan `json:"plan"`
}

type ProgramResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Tags        string        `json:"tags,omitempty"`
	Weeks       []domain.Week `json:"weeks"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func MapProgramToResponse(p *domain.Program) ProgramResponse {
	weeks := p.Weeks
	if weeks == nil {
		weeks = []domain.Week{}
	}
	return ProgramResponse{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		Tags:        p.Tags,
		Weeks:       weeks,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// --- Handler Methods ---

func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), req.Name, req.Description, req.Tags)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not create program")
		}
		return
	}

	c.JSON(http.StatusCreated, MapProgramToResponse(program))
}

// ListPrograms returns summaries only; weeks are fetched per program.
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	programs, err := h.programService.ListPrograms(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not list programs")
		return
	}
	c.JSON(http.StatusOK, programs)
}

func (h *ProgramHandler) GetProgram(c *gin.Context) {
	id, ok := programIDParam(c)
	if !ok {
		return
	}

	program, err := h.programService.GetProgram(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not fetch program")
		}
		return
	}

	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// ReplaceProgram overwrites the whole template document, weeks included.
func (h *ProgramHandler) ReplaceProgram(c *gin.Context) {
	id, ok := programIDParam(c)
	if !ok {
		return
	}

	var req ReplaceProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	program, err := h.programService.ReplaceProgram(c.Request.Context(), id, &domain.Program{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		Weeks:       req.Weeks,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not update program")
		}
		return
	}

	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	id, ok := programIDParam(c)
	if !ok {
		return
	}

	if err := h.programService.DeleteProgram(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not delete program")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// AddWeek appends an empty week and returns its zero-based index.
func (h *ProgramHandler) AddWeek(c *gin.Context) {
	id, ok := programIDParam(c)
	if !ok {
		return
	}

	index, err := h.programService.AddWeek(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not add week")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"weekIndex": index})
}

// SetDay stores a day plan at (weekIndex, dayIndex). Addressing the week
// right past the last one appends it; skipping further is rejected.
func (h *ProgramHandler) SetDay(c *gin.Context) {
	id, ok := programIDParam(c)
	if !ok {
		return
	}

	var req SetDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	program, err := h.programService.SetDay(c.Request.Context(), id, req.WeekIndex, req.DayIndex, req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not set day")
		}
		return
	}

	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

func programIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid program ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}
