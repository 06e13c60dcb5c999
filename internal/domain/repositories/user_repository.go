package repositories

import (
	"context"
	"time"

	"campus-portal.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// UserRepository defines account data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByStudentID(ctx context.Context, studentID string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByPhone(ctx context.Context, phone string) (*entities.User, error)
	GetByResetToken(ctx context.Context, token string) (*entities.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	// SetResetToken overwrites any previous token, code digest and expiry.
	SetResetToken(ctx context.Context, id uuid.UUID, token, codeHash string, expires time.Time) error
	// ResetPassword replaces the password hash and clears the reset
	// token, code digest and expiry in one update.
	ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*entities.User, error)
}
