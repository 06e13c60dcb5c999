package usecases

import (
	"context"
	"errors"
	"strings"

	"campus-portal.backend/internal/domain/entities"
	domainerrors "campus-portal.backend/internal/domain/errors"
	"campus-portal.backend/internal/domain/repositories"
	"campus-portal.backend/pkg/crypto"
)

// AdminUsecase handles privileged CRUD over accounts and the
// allow-list. There are no sessions: every operation re-validates the
// administrator's own credentials through Authorize.
type AdminUsecase struct {
	userRepo    repositories.UserRepository
	studentRepo repositories.StudentRepository
	uow         repositories.UnitOfWork
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	userRepo repositories.UserRepository,
	studentRepo repositories.StudentRepository,
	uow repositories.UnitOfWork,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		uow:         uow,
	}
}

// Authorize re-validates administrator credentials. Implemented once
// and called at the top of every privileged operation.
func (u *AdminUsecase) Authorize(ctx context.Context, username, password string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domainerrors.BadRequest("admin username and password are required")
	}

	admin, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("admin authentication failed")
		}
		return nil, err
	}
	if !crypto.CheckPassword(password, admin.PasswordHash) {
		return nil, domainerrors.Unauthorized("admin authentication failed")
	}
	return admin, nil
}

// ListUsers returns all accounts
func (u *AdminUsecase) ListUsers(ctx context.Context, adminUsername, adminPassword string) ([]*entities.User, error) {
	if _, err := u.Authorize(ctx, adminUsername, adminPassword); err != nil {
		return nil, err
	}
	return u.userRepo.List(ctx)
}

// DeleteUser removes an account and releases its allow-list entry in
// one transaction. Deleting one's own admin account is rejected.
func (u *AdminUsecase) DeleteUser(ctx context.Context, adminUsername, adminPassword, targetUsername string) error {
	admin, err := u.Authorize(ctx, adminUsername, adminPassword)
	if err != nil {
		return err
	}

	targetUsername = strings.TrimSpace(targetUsername)
	if targetUsername == "" {
		return domainerrors.BadRequest("target username is required")
	}

	target, err := u.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return err
	}
	if target.Username == admin.Username {
		return domainerrors.BadRequest("cannot delete your own account")
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.studentRepo.SetUsed(txCtx, target.StudentID, false); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		return u.userRepo.Delete(txCtx, target.ID)
	})
}

// ImportStudents inserts a batch of allow-list entries. The batch
// commits atomically at the storage level but entries are judged one by
// one: malformed entries and duplicates are counted and skipped, never
// aborting the rest.
func (u *AdminUsecase) ImportStudents(ctx context.Context, adminUsername, adminPassword string, students []entities.StudentImportInput) (*entities.StudentImportResult, error) {
	if _, err := u.Authorize(ctx, adminUsername, adminPassword); err != nil {
		return nil, err
	}

	result := &entities.StudentImportResult{}
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		for _, s := range students {
			studentID := strings.TrimSpace(s.StudentID)
			name := strings.TrimSpace(s.Name)
			if studentID == "" || name == "" {
				result.ErrorCount++
				continue
			}

			_, err := u.studentRepo.GetByStudentID(txCtx, studentID)
			if err == nil {
				result.DuplicateCount++
				continue
			}
			if !errors.Is(err, domainerrors.ErrNotFound) {
				return err
			}

			entry := &entities.Student{
				StudentID:  studentID,
				Name:       name,
				Department: strings.TrimSpace(s.Department),
				Major:      strings.TrimSpace(s.Major),
				ClassName:  strings.TrimSpace(s.ClassName),
			}
			if err := u.studentRepo.Create(txCtx, entry); err != nil {
				result.ErrorCount++
				continue
			}
			result.ImportedCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListStudents returns all allow-list entries with usage counters
func (u *AdminUsecase) ListStudents(ctx context.Context, adminUsername, adminPassword string) ([]*entities.Student, *entities.StudentStats, error) {
	if _, err := u.Authorize(ctx, adminUsername, adminPassword); err != nil {
		return nil, nil, err
	}

	students, err := u.studentRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	stats, err := u.studentRepo.Stats(ctx)
	if err != nil {
		return nil, nil, err
	}
	return students, stats, nil
}

// DeleteStudent removes an allow-list entry. Entries consumed by an
// existing account cannot be deleted; the account must go first.
func (u *AdminUsecase) DeleteStudent(ctx context.Context, adminUsername, adminPassword, studentID string) error {
	if _, err := u.Authorize(ctx, adminUsername, adminPassword); err != nil {
		return err
	}

	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return domainerrors.BadRequest("student id is required")
	}

	student, err := u.studentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("student id not found")
		}
		return err
	}
	if student.IsUsed {
		return domainerrors.Conflict("student id is in use, delete the account first")
	}

	return u.studentRepo.Delete(ctx, studentID)
}
