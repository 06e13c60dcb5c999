package handlers

import (
	"net/http"

	"campus-portal.backend/internal/domain/entities"
	domainerrors "campus-portal.backend/internal/domain/errors"
	"campus-portal.backend/internal/interfaces/http/response"
	"campus-portal.backend/internal/usecases"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Register handles account creation against the student allow-list
// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("request body is empty or malformed"))
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "registration successful", gin.H{
		"user": user,
	})
}

// Login handles credential verification by student id
// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		StudentID string `json:"student_id"`
		Password  string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("request body is empty or malformed"))
		return
	}

	user, err := h.authUsecase.Login(c.Request.Context(), input.StudentID, input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "login successful", gin.H{
		"user": user,
	})
}
