package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"campus-portal.backend/internal/domain/entities"
	"campus-portal.backend/internal/infrastructure/ratelimit"
	infrarepos "campus-portal.backend/internal/infrastructure/repositories"
	"campus-portal.backend/internal/usecases"
	"campus-portal.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// captureSender records dispatched codes instead of sending them.
type captureSender struct {
	mu       sync.Mutex
	lastCode string
	fail     bool
}

func (s *captureSender) Send(_ context.Context, _ string, _ entities.RecoveryMethod, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return fmt.Errorf("sender down")
	}
	s.lastCode = code
	return nil
}

func (s *captureSender) LastCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCode
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	sender *captureSender
}

// newTestEnv wires handlers against real usecases and repositories over
// an in-memory sqlite database, mirroring the production setup minus
// redis and SMTP.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger.Init("development")
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	require.NoError(t, db.Exec(`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		phone TEXT UNIQUE NOT NULL,
		student_id TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at DATETIME,
		last_login DATETIME,
		reset_token TEXT,
		reset_code_hash TEXT,
		reset_token_expires DATETIME
	);`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE student_ids (
		id TEXT PRIMARY KEY,
		student_id TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		department TEXT,
		major TEXT,
		class_name TEXT,
		is_used BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME
	);`).Error)

	userRepo := infrarepos.NewUserRepository(db)
	studentRepo := infrarepos.NewStudentRepository(db)
	uow := infrarepos.NewUnitOfWork(db)
	sender := &captureSender{}

	authUC := usecases.NewAuthUsecase(userRepo, studentRepo, uow)
	recoveryUC := usecases.NewRecoveryUsecase(userRepo, sender, ratelimit.NewNoopCooldown(), time.Hour, time.Minute)
	adminUC := usecases.NewAdminUsecase(userRepo, studentRepo, uow)

	authHandler := NewAuthHandler(authUC)
	recoveryHandler := NewRecoveryHandler(recoveryUC)
	adminHandler := NewAdminHandler(adminUC)
	userHandler := NewUserHandler(authUC)

	r := gin.New()
	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/auth/send_verification_code", recoveryHandler.SendVerificationCode)
		api.POST("/auth/verify_code", recoveryHandler.VerifyCode)
		api.POST("/auth/reset_password", recoveryHandler.ResetPassword)
		api.POST("/admin/import_students", adminHandler.ImportStudents)
		api.POST("/admin/list_students", adminHandler.ListStudents)
		api.POST("/admin/delete_student", adminHandler.DeleteStudent)
		api.POST("/admin/delete_user", adminHandler.DeleteUser)
		api.POST("/admin/list_users", adminHandler.ListUsers)
		api.POST("/user/delete_self", userHandler.DeleteSelf)
	}

	return &testEnv{router: r, db: db, sender: sender}
}

// postJSON performs a request and decodes the wire envelope.
func (e *testEnv) postJSON(t *testing.T, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(payload))

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), "body: %s", w.Body.String())
	return w.Code, decoded
}

func (e *testEnv) seedStudent(t *testing.T, studentID, name string) {
	t.Helper()
	require.NoError(t, e.db.Exec(
		`INSERT INTO student_ids (id, student_id, name, is_used, created_at) VALUES (?, ?, ?, 0, ?)`,
		uuid.NewString(), studentID, name, time.Now().UTC(),
	).Error)
}

func (e *testEnv) register(t *testing.T, studentID, username, phone string) {
	t.Helper()
	e.seedStudent(t, studentID, "Seeded "+username)
	code, body := e.postJSON(t, "/api/register", gin.H{
		"student_id": studentID,
		"username":   username,
		"email":      username + "@example.edu",
		"phone":      phone,
		"password":   "secret123",
	})
	require.Equal(t, http.StatusCreated, code, "register %s: %v", username, body)
}

func dataOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "missing data envelope: %v", body)
	return data
}
