package repositories

import (
	"context"

	"campus-portal.backend/internal/domain/entities"
)

// StudentRepository defines allow-list data operations
type StudentRepository interface {
	Create(ctx context.Context, student *entities.Student) error
	GetByStudentID(ctx context.Context, studentID string) (*entities.Student, error)
	// SetUsed flips the consumed flag for a student identifier.
	SetUsed(ctx context.Context, studentID string, used bool) error
	Delete(ctx context.Context, studentID string) error
	List(ctx context.Context) ([]*entities.Student, error)
	Stats(ctx context.Context) (*entities.StudentStats, error)
}
