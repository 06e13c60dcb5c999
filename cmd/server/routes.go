package main

import (
	"net/http"
	"time"

	"campus-portal.backend/internal/interfaces/http/handlers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	recoveryHandler *handlers.RecoveryHandler
	adminHandler    *handlers.AdminHandler
	userHandler     *handlers.UserHandler
	pingDB          func() error
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		// Account routes (public)
		api.POST("/register", d.authHandler.Register)
		api.POST("/login", d.authHandler.Login)

		// Password recovery routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/send_verification_code", d.recoveryHandler.SendVerificationCode)
			auth.POST("/verify_code", d.recoveryHandler.VerifyCode)
			auth.POST("/reset_password", d.recoveryHandler.ResetPassword)
		}

		// Admin routes; credentials travel in the body and every call
		// is re-authenticated, so no middleware guard here
		admin := api.Group("/admin")
		{
			admin.POST("/import_students", d.adminHandler.ImportStudents)
			admin.POST("/list_students", d.adminHandler.ListStudents)
			admin.POST("/delete_student", d.adminHandler.DeleteStudent)
			admin.POST("/delete_user", d.adminHandler.DeleteUser)
			admin.POST("/list_users", d.adminHandler.ListUsers)
		}

		// Self-service routes
		user := api.Group("/user")
		{
			user.POST("/delete_self", d.userHandler.DeleteSelf)
		}

		api.GET("/health", healthHandler(d.pingDB))
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func healthHandler(pingDB func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "ok"
		status := http.StatusOK
		if pingDB != nil {
			if err := pingDB(); err != nil {
				dbStatus = "unavailable"
				status = http.StatusServiceUnavailable
			}
		}
		c.JSON(status, gin.H{
			"success":   status == http.StatusOK,
			"status":    "running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database": gin.H{
				"status": dbStatus,
			},
		})
	}
}
