package repositories

import (
	"context"
	"errors"
	"time"

	"campus-portal.backend/internal/domain/entities"
	domainerrors "campus-portal.backend/internal/domain/errors"
	"campus-portal.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// UserRepository implements account data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new account
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	m := &models.User{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Phone:        user.Phone,
		StudentID:    user.StudentID,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByStudentID gets an account by student identifier
func (r *UserRepository) GetByStudentID(ctx context.Context, studentID string) (*entities.User, error) {
	return r.getBy(ctx, "student_id = ?", studentID)
}

// GetByUsername gets an account by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.getBy(ctx, "username = ?", username)
}

// GetByEmail gets an account by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.getBy(ctx, "email = ?", email)
}

// GetByPhone gets an account by phone number
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*entities.User, error) {
	return r.getBy(ctx, "phone = ?", phone)
}

// GetByResetToken gets an account by its open reset token
func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*entities.User, error) {
	return r.getBy(ctx, "reset_token = ?", token)
}

func (r *UserRepository) getBy(ctx context.Context, query string, arg interface{}) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// UpdateLastLogin persists the last successful login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetResetToken overwrites the reset token, code digest and expiry
func (r *UserRepository) SetResetToken(ctx context.Context, id uuid.UUID, token, codeHash string, expires time.Time) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token":         token,
			"reset_code_hash":     codeHash,
			"reset_token_expires": expires,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ResetPassword replaces the password hash and clears the reset state
func (r *UserRepository) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash":       passwordHash,
			"reset_token":         nil,
			"reset_code_hash":     nil,
			"reset_token_expires": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes an account permanently
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists all accounts, newest first
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	var userModels []models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC").Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, toUserEntity(&userModels[i]))
	}
	return users, nil
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                m.ID,
		Username:          m.Username,
		Email:             m.Email,
		Phone:             m.Phone,
		StudentID:         m.StudentID,
		PasswordHash:      m.PasswordHash,
		CreatedAt:         m.CreatedAt,
		LastLogin:         null.TimeFromPtr(m.LastLogin),
		ResetToken:        null.StringFromPtr(m.ResetToken),
		ResetCodeHash:     null.StringFromPtr(m.ResetCodeHash),
		ResetTokenExpires: null.TimeFromPtr(m.ResetTokenExpires),
	}
}
