package usecases

import (
	"context"
	"time"

	"campus-portal.backend/internal/domain/entities"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByStudentID(ctx context.Context, studentID string) (*entities.User, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*entities.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByResetToken(ctx context.Context, token string) (*entities.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, id uuid.UUID, token, codeHash string, expires time.Time) error {
	args := m.Called(ctx, id, token, codeHash, expires)
	return args.Error(0)
}

func (m *MockUserRepository) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

// Mock StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *entities.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) GetByStudentID(ctx context.Context, studentID string) (*entities.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Student), args.Error(1)
}

func (m *MockStudentRepository) SetUsed(ctx context.Context, studentID string, used bool) error {
	args := m.Called(ctx, studentID, used)
	return args.Error(0)
}

func (m *MockStudentRepository) Delete(ctx context.Context, studentID string) error {
	args := m.Called(ctx, studentID)
	return args.Error(0)
}

func (m *MockStudentRepository) List(ctx context.Context) ([]*entities.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Student), args.Error(1)
}

func (m *MockStudentRepository) Stats(ctx context.Context) (*entities.StudentStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StudentStats), args.Error(1)
}

// Mock CodeSender
type MockCodeSender struct {
	mock.Mock
}

func (m *MockCodeSender) Send(ctx context.Context, destination string, method entities.RecoveryMethod, code string) error {
	args := m.Called(ctx, destination, method, code)
	return args.Error(0)
}

// Mock CooldownLimiter
type MockCooldownLimiter struct {
	mock.Mock
}

func (m *MockCooldownLimiter) Acquire(ctx context.Context, key string, cooldown time.Duration) (bool, error) {
	args := m.Called(ctx, key, cooldown)
	return args.Bool(0), args.Error(1)
}
