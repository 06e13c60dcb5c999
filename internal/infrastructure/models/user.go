package models

import (
	"time"

	"github.com/google/uuid"
)

// User rows are hard-deleted so their unique columns (username, email,
// phone, student_id) become reusable immediately.
type User struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username          string     `gorm:"type:varchar(80);uniqueIndex;not null"`
	Email             string     `gorm:"type:varchar(120);uniqueIndex;not null"`
	Phone             string     `gorm:"type:varchar(20);uniqueIndex;not null"`
	StudentID         string     `gorm:"type:varchar(20);uniqueIndex;not null"`
	PasswordHash      string     `gorm:"type:varchar(200);not null"`
	CreatedAt         time.Time
	LastLogin         *time.Time `gorm:"type:timestamp"`
	ResetToken        *string    `gorm:"type:varchar(100);index"`
	ResetCodeHash     *string    `gorm:"type:varchar(64)"`
	ResetTokenExpires *time.Time `gorm:"type:timestamp"`
}
