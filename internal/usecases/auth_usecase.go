package usecases

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"campus-portal.backend/internal/domain/entities"
	domainerrors "campus-portal.backend/internal/domain/errors"
	"campus-portal.backend/internal/domain/repositories"
	"campus-portal.backend/pkg/crypto"
	"github.com/volatiletech/null/v8"
)

const (
	minPasswordLength = 6
	minUsernameLength = 3
)

// Mainland mobile numbers: 11 digits, leading 1, second digit 3-9.
var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

// AuthUsecase handles registration, login and self-service deletion
type AuthUsecase struct {
	userRepo    repositories.UserRepository
	studentRepo repositories.StudentRepository
	uow         repositories.UnitOfWork
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	studentRepo repositories.StudentRepository,
	uow repositories.UnitOfWork,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		uow:         uow,
	}
}

// Register creates an account against an unused allow-list entry. The
// account insert and the is_used flip commit in one transaction, so a
// failure at any point leaves both tables untouched.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	studentID := strings.TrimSpace(input.StudentID)
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)
	password := input.Password

	if studentID == "" || username == "" || email == "" || phone == "" || password == "" {
		return nil, domainerrors.BadRequest("all fields are required")
	}
	if len(password) < minPasswordLength {
		return nil, domainerrors.BadRequest("password must be at least 6 characters")
	}
	if len(username) < minUsernameLength {
		return nil, domainerrors.BadRequest("username must be at least 3 characters")
	}

	student, err := u.studentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("student id not found, please contact an administrator")
		}
		return nil, err
	}
	if student.IsUsed {
		return nil, domainerrors.Conflict("student id has already been used for registration")
	}

	if err := validatePhone(phone); err != nil {
		return nil, err
	}

	if err := u.checkUniqueness(ctx, username, email, phone, studentID); err != nil {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     username,
		Email:        email,
		Phone:        phone,
		StudentID:    studentID,
		PasswordHash: passwordHash,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		return u.studentRepo.SetUsed(txCtx, studentID, true)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials by student identifier and records the
// login time. Lookup miss and bad password return the same error so
// identifiers cannot be enumerated.
func (u *AuthUsecase) Login(ctx context.Context, studentID, password string) (*entities.User, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" || password == "" {
		return nil, domainerrors.BadRequest("student id and password are required")
	}

	user, err := u.userRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("student id or password incorrect")
		}
		return nil, err
	}
	if !crypto.CheckPassword(password, user.PasswordHash) {
		return nil, domainerrors.Unauthorized("student id or password incorrect")
	}

	now := time.Now().UTC()
	if err := u.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = null.TimeFrom(now)

	return user, nil
}

// DeleteSelf removes the caller's own account after re-authenticating,
// releasing the allow-list entry in the same transaction.
func (u *AuthUsecase) DeleteSelf(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domainerrors.BadRequest("username and password are required")
	}

	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.Unauthorized("username or password incorrect")
		}
		return err
	}
	if !crypto.CheckPassword(password, user.PasswordHash) {
		return domainerrors.Unauthorized("username or password incorrect")
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.studentRepo.SetUsed(txCtx, user.StudentID, false); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		return u.userRepo.Delete(txCtx, user.ID)
	})
}

func validatePhone(phone string) error {
	for _, c := range phone {
		if c < '0' || c > '9' {
			return domainerrors.BadRequest("phone number may only contain digits")
		}
	}
	if len(phone) < 7 {
		return domainerrors.BadRequest("phone number must be at least 7 digits")
	}
	if !phonePattern.MatchString(phone) {
		return domainerrors.BadRequest("please enter a valid mobile number (11 digits, starting with 1)")
	}
	return nil
}

func (u *AuthUsecase) checkUniqueness(ctx context.Context, username, email, phone, studentID string) error {
	checks := []struct {
		lookup  func(context.Context, string) (*entities.User, error)
		value   string
		message string
	}{
		{u.userRepo.GetByUsername, username, "username already taken"},
		{u.userRepo.GetByEmail, email, "email already registered"},
		{u.userRepo.GetByPhone, phone, "phone number already registered"},
		{u.userRepo.GetByStudentID, studentID, "student id already registered"},
	}
	for _, check := range checks {
		_, err := check.lookup(ctx, check.value)
		if err == nil {
			return domainerrors.Conflict(check.message)
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
	}
	return nil
}
