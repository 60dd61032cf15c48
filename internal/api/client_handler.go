package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitbysuarez/coaching/internal/calendar"
	"fitbysuarez/coaching/internal/domain"
	"fitbysuarez/coaching/internal/repository"
	"fitbysuarez/coaching/internal/service"
)

// ClientHandler serves client management, the payments view and the resolved
// calendar.
type ClientHandler struct {
	clientService service.ClientService
	resolver      *calendar.Resolver
}

func NewClientHandler(clientService service.ClientService, resolver *calendar.Resolver) *ClientHandler {
	return &ClientHandler{clientService: clientService, resolver: resolver}
}

// --- Request/Response Structs ---

type CreateClientRequest struct {
	Name     string `json:"name" binding:"required"`
	LastName string `json:"lastName"`
	Email    string `json:"email" binding:"required,email"`
	Type     string `json:"type"`
	Group    string `json:"group"`
	DueDate  string `json:"dueDate"`
}

// UpdateClientRequest uses pointers so absent fields are left untouched.
type UpdateClientRequest struct {
	Name             *string                  `json:"name"`
	LastName         *string                  `json:"lastName"`
	Program          *string                  `json:"program"`
	Group            *string                  `json:"group"`
	Type             *string                  `json:"type"`
	DueDate          *string                  `json:"dueDate"`
	IsActive         *bool                    `json:"isActive"`
	Timezone         *string                  `json:"timezone"`
	EmailPreferences *domain.EmailPreferences `json:"emailPreferences"`
}

// --- Handler Methods ---

// CreateClient registers a client account with a temporary password and
// sends the welcome email.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req.Name, req.LastName, req.Email, req.Type, req.Group, req.DueDate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailConflict):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not create client")
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(client))
}

func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not list clients")
		return
	}

	resp := make([]UserResponse, 0, len(clients))
	for i := range clients {
		resp = append(resp, MapUserToResponse(&clients[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	id, ok := h.clientIDParam(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not fetch client")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(client))
}

// UpdateClient patches profile fields. Assigning a program here stamps the
// start date the calendar anchors week 1 to.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, ok := h.clientIDParam(c)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), id, service.ClientUpdate{
		Name:             req.Name,
		LastName:         req.LastName,
		Program:          req.Program,
		Group:            req.Group,
		Type:             req.Type,
		DueDate:          req.DueDate,
		IsActive:         req.IsActive,
		Timezone:         req.Timezone,
		EmailPreferences: req.EmailPreferences,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not update client")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(client))
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, ok := h.clientIDParam(c)
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not delete client")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetPayments returns paid/unpaid counts plus one row per active client.
func (h *ClientHandler) GetPayments(c *gin.Context) {
	summary, err := h.clientService.GetPaymentsSummary(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not build payments summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ClientHandler) SendPaymentReminder(c *gin.Context) {
	id, ok := h.clientIDParam(c)
	if !ok {
		return
	}

	if err := h.clientService.SendPaymentReminder(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not send reminder")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder sent"})
}

// GetCalendar godoc
// @Summary Resolved calendar for a client
// @Description Merges the assigned program projection with per-date workout
// @Description overrides over [from, to]. Defaults to the 26-week window the
// @Description calendar UI renders.
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} calendar.Entry
// @Router /clients/{id}/calendar [get]
func (h *ClientHandler) GetCalendar(c *gin.Context) {
	id, ok := h.clientIDParam(c)
	if !ok {
		return
	}

	// Clients may only read their own calendar.
	role, _ := getUserRoleFromContext(c)
	if role == domain.RoleClient {
		selfID, err := getUserIDFromContext(c)
		if err != nil || selfID != id.Hex() {
			abortWithError(c, http.StatusForbidden, "Clients can only access their own calendar")
			return
		}
	}

	from, to, err := calendarWindow(c.Query("from"), c.Query("to"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.resolver.Resolve(c.Request.Context(), id, from, to)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidRange):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			abortWithError(c, http.StatusNotFound, "Client not found")
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not resolve calendar")
		}
		return
	}

	c.JSON(http.StatusOK, entries)
}

// calendarWindow parses optional from/to query params; both absent means the
// default 26-week window.
func calendarWindow(fromStr, toStr string) (time.Time, time.Time, error) {
	if fromStr == "" && toStr == "" {
		from, to := calendar.DefaultWindow(time.Now())
		return from, to, nil
	}
	from, err := time.Parse(domain.DateLayout, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid 'from' date: %v", err)
	}
	to, err := time.Parse(domain.DateLayout, toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid 'to' date: %v", err)
	}
	return from, to, nil
}

func (h *ClientHandler) clientIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}
