package handlers

import (
	"fmt"
	"net/http"

	"campus-portal.backend/internal/domain/entities"
	domainerrors "campus-portal.backend/internal/domain/errors"
	"campus-portal.backend/internal/interfaces/http/response"
	"campus-portal.backend/internal/usecases"
	"github.com/gin-gonic/gin"
)

// RecoveryHandler handles the password recovery endpoints
type RecoveryHandler struct {
	recoveryUsecase *usecases.RecoveryUsecase
}

// NewRecoveryHandler creates a new recovery handler
func NewRecoveryHandler(recoveryUsecase *usecases.RecoveryUsecase) *RecoveryHandler {
	return &RecoveryHandler{
		recoveryUsecase: recoveryUsecase,
	}
}

// SendVerificationCode issues a verification code over email or phone
// POST /api/auth/send_verification_code
func (h *RecoveryHandler) SendVerificationCode(c *gin.Context) {
	var input struct {
		StudentID string `json:"student_id"`
		Method    string `json:"method"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("request body is empty or malformed"))
		return
	}

	issue, err := h.recoveryUsecase.SendCode(c.Request.Context(), input.StudentID, entities.RecoveryMethod(input.Method))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := fmt.Sprintf("verification code sent to %s %s", issue.Method, issue.Target)
	if !issue.Delivered {
		message = "verification code could not be delivered, please try again"
	}

	response.Success(c, http.StatusOK, message, gin.H{
		"method": issue.Method,
		"target": issue.Target,
	})
}

// VerifyCode checks a submitted code and hands out the reset token
// POST /api/auth/verify_code
func (h *RecoveryHandler) VerifyCode(c *gin.Context) {
	var input struct {
		StudentID string `json:"student_id"`
		Method    string `json:"method"`
		Code      string `json:"code"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("request body is empty or malformed"))
		return
	}

	token, err := h.recoveryUsecase.VerifyCode(c.Request.Context(), input.StudentID, entities.RecoveryMethod(input.Method), input.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "verification successful", gin.H{
		"reset_token": token,
	})
}

// ResetPassword consumes a reset token and sets the new password
// POST /api/auth/reset_password
func (h *RecoveryHandler) ResetPassword(c *gin.Context) {
	var input struct {
		ResetToken  string `json:"reset_token"`
		NewPassword string `json:"new_password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("request body is empty or malformed"))
		return
	}

	if err := h.recoveryUsecase.ResetPassword(c.Request.Context(), input.ResetToken, input.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "password reset successful", nil)
}
