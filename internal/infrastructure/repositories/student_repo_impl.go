package repositories

import (
	"context"
	"errors"
	"time"

	"campus-portal.backend/internal/domain/entities"
	domainerrors "campus-portal.backend/internal/domain/errors"
	"campus-portal.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentRepository implements allow-list data operations
type StudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a new allow-list entry
func (r *StudentRepository) Create(ctx context.Context, student *entities.Student) error {
	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now().UTC()
	}
	m := &models.Student{
		ID:         student.ID,
		StudentID:  student.StudentID,
		Name:       student.Name,
		Department: student.Department,
		Major:      student.Major,
		ClassName:  student.ClassName,
		IsUsed:     student.IsUsed,
		CreatedAt:  student.CreatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByStudentID gets an entry by student identifier
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*entities.Student, error) {
	var m models.Student
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("student_id = ?", studentID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toStudentEntity(&m), nil
}

// SetUsed flips the consumed flag for a student identifier
func (r *StudentRepository) SetUsed(ctx context.Context, studentID string, used bool) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Student{}).
		Where("student_id = ?", studentID).
		Update("is_used", used)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes an entry permanently
func (r *StudentRepository) Delete(ctx context.Context, studentID string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Student{}, "student_id = ?", studentID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists all entries, newest first
func (r *StudentRepository) List(ctx context.Context) ([]*entities.Student, error) {
	var studentModels []models.Student
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC").Find(&studentModels).Error; err != nil {
		return nil, err
	}

	students := make([]*entities.Student, 0, len(studentModels))
	for i := range studentModels {
		students = append(students, toStudentEntity(&studentModels[i]))
	}
	return students, nil
}

// Stats returns total/used/available counters
func (r *StudentRepository) Stats(ctx context.Context) (*entities.StudentStats, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total, used int64
	if err := db.Model(&models.Student{}).Count(&total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Student{}).Where("is_used = ?", true).Count(&used).Error; err != nil {
		return nil, err
	}

	return &entities.StudentStats{
		Total:     total,
		UsedCount: used,
		Available: total - used,
	}, nil
}

func toStudentEntity(m *models.Student) *entities.Student {
	return &entities.Student{
		ID:         m.ID,
		StudentID:  m.StudentID,
		Name:       m.Name,
		Department: m.Department,
		Major:      m.Major,
		ClassName:  m.ClassName,
		IsUsed:     m.IsUsed,
		CreatedAt:  m.CreatedAt,
	}
}
