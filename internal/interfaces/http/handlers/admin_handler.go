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

// AdminHandler handles administrative endpoints. There are no admin
// sessions; every request carries admin credentials and is
// re-authenticated by the usecase.
type AdminHandler struct {
	adminUsecase *usecases.AdminUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
	}
}

// adminCredentials is embedded in every admin request body.
type adminCredentials struct {
	AdminUsername string `json:"admin_username"`
	AdminPassword string `json:"admin_password"`
}

// ImportStudents loads a batch of allow-list entries
// POST /api/admin/import_students
func (h *AdminHandler) ImportStudents(c *gin.Context) {
	var input struct {
		adminCredentials
		Students []entities.StudentImportInput `json:"students"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("students payload must be an array of objects"))
		return
	}

	result, err := h.adminUsecase.ImportStudents(c.Request.Context(), input.AdminUsername, input.AdminPassword, input.Students)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := fmt.Sprintf("imported %d student ids", result.ImportedCount)
	if result.DuplicateCount > 0 {
		message += fmt.Sprintf(", skipped %d duplicates", result.DuplicateCount)
	}
	if result.ErrorCount > 0 {
		message += fmt.Sprintf(", %d failed", result.ErrorCount)
	}

	response.Success(c, http.StatusOK, message, result)
}

// ListStudents returns all allow-list entries with usage counts
// POST /api/admin/list_students
func (h *AdminHandler) ListStudents(c *gin.Context) {
	var input adminCredentials

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("request body is empty or malformed"))
		return
	}

	students, stats, err := h.adminUsecase.ListStudents(c.Request.Context(), input.AdminUsername, input.AdminPassword)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{
		"students":        students,
		"total":           stats.Total,
		"used_count":      stats.UsedCount,
		"available_count": stats.Available,
	})
}

// DeleteStudent removes an unused allow-list entry
// POST /api/admin/delete_student
func (h *AdminHandler) DeleteStudent(c *gin.Context) {
	var input struct {
		adminCredentials
		StudentID string `json:"student_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("request body is empty or malformed"))
		return
	}

	if err := h.adminUsecase.DeleteStudent(c.Request.Context(), input.AdminUsername, input.AdminPassword, input.StudentID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, fmt.Sprintf("student id %s deleted", input.StudentID), nil)
}

// DeleteUser removes an account and releases its allow-list entry
// POST /api/admin/delete_user
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	var input struct {
		adminCredentials
		TargetUsername string `json:"target_username"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("request body is empty or malformed"))
		return
	}

	if err := h.adminUsecase.DeleteUser(c.Request.Context(), input.AdminUsername, input.AdminPassword, input.TargetUsername); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, fmt.Sprintf("user %s deleted", input.TargetUsername), nil)
}

// ListUsers returns all registered accounts
// POST /api/admin/list_users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var input adminCredentials

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("request body is empty or malformed"))
		return
	}

	users, err := h.adminUsecase.ListUsers(c.Request.Context(), input.AdminUsername, input.AdminPassword)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{
		"users": users,
		"total": len(users),
	})
}
