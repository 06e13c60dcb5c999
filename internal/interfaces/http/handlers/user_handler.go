package handlers

import (
	"net/http"

	domainerrors "campus-portal.backend/internal/domain/errors"
	"campus-portal.backend/internal/interfaces/http/response"
	"campus-portal.backend/internal/usecases"
	"github.com/gin-gonic/gin"
)

// UserHandler handles self-service account endpoints
type UserHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewUserHandler creates a new user handler
func NewUserHandler(authUsecase *usecases.AuthUsecase) *UserHandler {
	return &UserHandler{
		authUsecase: authUsecase,
	}
}

// DeleteSelf removes the caller's account after re-authentication
// POST /api/user/delete_self
func (h *UserHandler) DeleteSelf(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("request body is empty or malformed"))
		return
	}

	if err := h.authUsecase.DeleteSelf(c.Request.Context(), input.Username, input.Password); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "your account has been deleted", nil)
}
