package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents a registered account. An account can only come into
// existence through registration against an unused allow-list entry.
type User struct {
	ID                uuid.UUID   `json:"id"`
	Username          string      `json:"username"`
	Email             string      `json:"email"`
	Phone             string      `json:"phone"`
	StudentID         string      `json:"student_id"`
	PasswordHash      string      `json:"-"`
	CreatedAt         time.Time   `json:"created_at"`
	LastLogin         null.Time   `json:"last_login"`
	ResetToken        null.String `json:"-"`
	ResetCodeHash     null.String `json:"-"`
	ResetTokenExpires null.Time   `json:"-"`
}

// RegisterInput represents input for account registration
type RegisterInput struct {
	StudentID string `json:"student_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// LoginInput represents input for login
type LoginInput struct {
	StudentID string `json:"student_id" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// RecoveryMethod selects the channel a verification code is delivered on
type RecoveryMethod string

const (
	RecoveryMethodEmail RecoveryMethod = "email"
	RecoveryMethodPhone RecoveryMethod = "phone"
)

// Valid reports whether the method is a known delivery channel
func (m RecoveryMethod) Valid() bool {
	return m == RecoveryMethodEmail || m == RecoveryMethodPhone
}
