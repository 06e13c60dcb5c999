package models

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	StudentID  string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Name       string    `gorm:"type:varchar(50);not null"`
	Department string    `gorm:"type:varchar(100)"`
	Major      string    `gorm:"type:varchar(100)"`
	ClassName  string    `gorm:"type:varchar(50)"`
	IsUsed     bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

// TableName keeps the original table name used by earlier deployments
func (Student) TableName() string {
	return "student_ids"
}
