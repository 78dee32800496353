package handler

import (
	"errors"
	"net/http"

	"github.com/campusforge/recruit-backend/internal/middleware"
	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/campusforge/recruit-backend/internal/repository"
	"github.com/campusforge/recruit-backend/internal/response"
	"github.com/campusforge/recruit-backend/internal/service"
	"github.com/campusforge/recruit-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and token refresh.
type AuthHandler struct {
	userService *service.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Register godoc
// POST /api/v1/auth/register
// Creates an account and signs it in. The first account becomes admin.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, tokens, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user, "tokens": tokens})
}

// Login godoc
// POST /api/v1/auth/login
// Authenticates an email/password pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, tokens, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user, "tokens": tokens})
}

// Refresh godoc
// POST /api/v1/auth/refresh
// Exchanges a refresh token for a fresh pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	tokens, err := h.userService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			response.Fail(c, http.StatusUnauthorized, response.ErrTokenExpired)
		case errors.Is(err, service.ErrTokenInvalid), errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tokens": tokens})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), actor.ID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
