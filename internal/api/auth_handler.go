package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fitbysuarez/coaching/internal/domain"
	"fitbysuarez/coaching/internal/service"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     domain.Role `json:"role" binding:"required,oneof=trainer client"`
}

// UserResponse excludes sensitive info like the password hash.
type UserResponse struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	LastName         string                  `json:"lastName,omitempty"`
	Email            string                  `json:"email"`
	Role             domain.Role             `json:"role"`
	IsFirstLogin     bool                    `json:"isFirstLogin"`
	Program          string                  `json:"program,omitempty"`
	ProgramStartDate string                  `json:"programStartDate,omitempty"`
	Group            string                  `json:"group,omitempty"`
	Type             string                  `json:"type,omitempty"`
	DueDate          string                  `json:"dueDate,omitempty"`
	IsActive         bool                    `json:"isActive"`
	Timezone         string                  `json:"timezone,omitempty"`
	EmailPreferences domain.EmailPreferences `json:"emailPreferences"`
	CreatedAt        time.Time               `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UpdatePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// MapUserToResponse converts a domain.User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:               user.ID.Hex(),
		Name:             user.Name,
		LastName:         user.LastName,
		Email:            user.Email,
		Role:             user.Role,
		IsFirstLogin:     user.IsFirstLogin,
		Program:          user.Program,
		ProgramStartDate: user.ProgramStartDate,
		Group:            user.Group,
		Type:             user.Type,
		DueDate:          user.DueDate,
		IsActive:         user.IsActive,
		Timezone:         user.Timezone,
		EmailPreferences: user.EmailPreferences,
		CreatedAt:        user.CreatedAt,
	}
}

// --- Handler Methods ---

// Register godoc
// @Summary Register a new user (Trainer or Client)
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} UserResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if errors.Is(err, service.ErrHashingFailed) {
			abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login godoc
// @Summary Log in a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, User: MapUserToResponse(user)})
}

// UpdatePassword replaces the authenticated user's password. Clients created
// by the trainer land here on first login to retire the temporary password.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.authService.UpdatePassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not update password")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
