package response

import (
	domainerrors "campus-portal.backend/internal/domain/errors"
	"github.com/gin-gonic/gin"
)

// Success sends a success response
func Success(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if e, ok := err.(*domainerrors.AppError); ok {
		appErr = e
	} else {
		// Default to Internal Server Error if not an AppError
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, gin.H{
		"success": false,
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
