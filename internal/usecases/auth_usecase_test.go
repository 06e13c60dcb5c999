package usecases

import (
	"context"
	"testing"

	"campus-portal.backend/internal/domain/entities"
	domainerrors "campus-portal.backend/internal/domain/errors"
	"campus-portal.backend/pkg/crypto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validRegisterInput() *entities.RegisterInput {
	return &entities.RegisterInput{
		StudentID: "20240001",
		Username:  "alice",
		Email:     "alice@campus.edu",
		Phone:     "13812345678",
		Password:  "secret123",
	}
}

func newAuthUsecaseForTest(userRepo *MockUserRepository, studentRepo *MockStudentRepository, uow *MockUnitOfWork) *AuthUsecase {
	return NewAuthUsecase(userRepo, studentRepo, uow)
}

func TestAuthUsecase_Register_ValidationOrder(t *testing.T) {
	uc := newAuthUsecaseForTest(new(MockUserRepository), new(MockStudentRepository), new(MockUnitOfWork))
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*entities.RegisterInput)
		message string
	}{
		{"empty student id", func(i *entities.RegisterInput) { i.StudentID = "  " }, "all fields are required"},
		{"empty username", func(i *entities.RegisterInput) { i.Username = "" }, "all fields are required"},
		{"empty email", func(i *entities.RegisterInput) { i.Email = "" }, "all fields are required"},
		{"empty phone", func(i *entities.RegisterInput) { i.Phone = "" }, "all fields are required"},
		{"empty password", func(i *entities.RegisterInput) { i.Password = "" }, "all fields are required"},
		{"short password", func(i *entities.RegisterInput) { i.Password = "12345" }, "password must be at least 6 characters"},
		{"short username", func(i *entities.RegisterInput) { i.Username = "ab" }, "username must be at least 3 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRegisterInput()
			tc.mutate(input)
			_, err := uc.Register(ctx, input)
			require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
			var appErr *domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tc.message, appErr.Message)
		})
	}
}

func TestAuthUsecase_Register_StudentIDNotInAllowList(t *testing.T) {
	studentRepo := new(MockStudentRepository)
	uc := newAuthUsecaseForTest(new(MockUserRepository), studentRepo, new(MockUnitOfWork))

	studentRepo.On("GetByStudentID", mock.Anything, "20240001").Return(nil, domainerrors.ErrNotFound).Once()

	_, err := uc.Register(context.Background(), validRegisterInput())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestAuthUsecase_Register_StudentIDAlreadyUsed(t *testing.T) {
	studentRepo := new(MockStudentRepository)
	uc := newAuthUsecaseForTest(new(MockUserRepository), studentRepo, new(MockUnitOfWork))

	studentRepo.On("GetByStudentID", mock.Anything, "20240001").
		Return(&entities.Student{StudentID: "20240001", IsUsed: true}, nil).Once()

	_, err := uc.Register(context.Background(), validRegisterInput())
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestAuthUsecase_Register_PhoneValidation(t *testing.T) {
	studentRepo := new(MockStudentRepository)
	uc := newAuthUsecaseForTest(new(MockUserRepository), studentRepo, new(MockUnitOfWork))
	studentRepo.On("GetByStudentID", mock.Anything, "20240001").
		Return(&entities.Student{StudentID: "20240001"}, nil)

	cases := []struct {
		phone   string
		message string
	}{
		{"138123a5678", "phone number may only contain digits"},
		{"123", "phone number must be at least 7 digits"},
		{"0234567890", "please enter a valid mobile number (11 digits, starting with 1)"},
		{"12345678901", "please enter a valid mobile number (11 digits, starting with 1)"},
		{"1381234567", "please enter a valid mobile number (11 digits, starting with 1)"},
	}
	for _, tc := range cases {
		input := validRegisterInput()
		input.Phone = tc.phone
		_, err := uc.Register(context.Background(), input)
		require.ErrorIs(t, err, domainerrors.ErrInvalidInput, "phone=%s", tc.phone)
		var appErr *domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, tc.message, appErr.Message, "phone=%s", tc.phone)
	}
}

func TestAuthUsecase_Register_UniquenessConflicts(t *testing.T) {
	existing := &entities.User{ID: uuid.New()}

	cases := []struct {
		name  string
		setup func(*MockUserRepository)
	}{
		{"username taken", func(m *MockUserRepository) {
			m.On("GetByUsername", mock.Anything, "alice").Return(existing, nil).Once()
		}},
		{"email taken", func(m *MockUserRepository) {
			m.On("GetByUsername", mock.Anything, "alice").Return(nil, domainerrors.ErrNotFound).Once()
			m.On("GetByEmail", mock.Anything, "alice@campus.edu").Return(existing, nil).Once()
		}},
		{"phone taken", func(m *MockUserRepository) {
			m.On("GetByUsername", mock.Anything, "alice").Return(nil, domainerrors.ErrNotFound).Once()
			m.On("GetByEmail", mock.Anything, "alice@campus.edu").Return(nil, domainerrors.ErrNotFound).Once()
			m.On("GetByPhone", mock.Anything, "13812345678").Return(existing, nil).Once()
		}},
		{"student id taken", func(m *MockUserRepository) {
			m.On("GetByUsername", mock.Anything, "alice").Return(nil, domainerrors.ErrNotFound).Once()
			m.On("GetByEmail", mock.Anything, "alice@campus.edu").Return(nil, domainerrors.ErrNotFound).Once()
			m.On("GetByPhone", mock.Anything, "13812345678").Return(nil, domainerrors.ErrNotFound).Once()
			m.On("GetByStudentID", mock.Anything, "20240001").Return(existing, nil).Once()
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			studentRepo := new(MockStudentRepository)
			uc := newAuthUsecaseForTest(userRepo, studentRepo, new(MockUnitOfWork))
			studentRepo.On("GetByStudentID", mock.Anything, "20240001").
				Return(&entities.Student{StudentID: "20240001"}, nil).Once()
			tc.setup(userRepo)

			_, err := uc.Register(context.Background(), validRegisterInput())
			require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
			userRepo.AssertExpectations(t)
		})
	}
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	studentRepo := new(MockStudentRepository)
	uow := new(MockUnitOfWork)
	uc := newAuthUsecaseForTest(userRepo, studentRepo, uow)
	ctx := context.Background()

	studentRepo.On("GetByStudentID", mock.Anything, "20240001").
		Return(&entities.Student{StudentID: "20240001"}, nil).Once()
	userRepo.On("GetByUsername", mock.Anything, "alice").Return(nil, domainerrors.ErrNotFound).Once()
	userRepo.On("GetByEmail", mock.Anything, "alice@campus.edu").Return(nil, domainerrors.ErrNotFound).Once()
	userRepo.On("GetByPhone", mock.Anything, "13812345678").Return(nil, domainerrors.ErrNotFound).Once()
	userRepo.On("GetByStudentID", mock.Anything, "20240001").Return(nil, domainerrors.ErrNotFound).Once()
	uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.User")).Return(nil).Once()
	studentRepo.On("SetUsed", mock.Anything, "20240001", true).Return(nil).Once()

	user, err := uc.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, crypto.CheckPassword("secret123", user.PasswordHash))

	userRepo.AssertExpectations(t)
	studentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAuthUsecase_Login(t *testing.T) {
	hash, err := crypto.HashPassword("secret123")
	require.NoError(t, err)
	userID := uuid.New()

	t.Run("success updates last login", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		uc := newAuthUsecaseForTest(userRepo, new(MockStudentRepository), new(MockUnitOfWork))
		userRepo.On("GetByStudentID", mock.Anything, "20240001").
			Return(&entities.User{ID: userID, StudentID: "20240001", PasswordHash: hash}, nil).Once()
		userRepo.On("UpdateLastLogin", mock.Anything, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

		user, err := uc.Login(context.Background(), "20240001", "secret123")
		require.NoError(t, err)
		assert.True(t, user.LastLogin.Valid)
		userRepo.AssertExpectations(t)
	})

	t.Run("unknown id and wrong password are indistinguishable", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		uc := newAuthUsecaseForTest(userRepo, new(MockStudentRepository), new(MockUnitOfWork))
		userRepo.On("GetByStudentID", mock.Anything, "unknown").Return(nil, domainerrors.ErrNotFound).Once()
		userRepo.On("GetByStudentID", mock.Anything, "20240001").
			Return(&entities.User{ID: userID, StudentID: "20240001", PasswordHash: hash}, nil).Once()

		_, errMissing := uc.Login(context.Background(), "unknown", "secret123")
		_, errWrongPw := uc.Login(context.Background(), "20240001", "wrongpass")

		var appErrMissing, appErrWrongPw *domainerrors.AppError
		require.ErrorAs(t, errMissing, &appErrMissing)
		require.ErrorAs(t, errWrongPw, &appErrWrongPw)
		assert.Equal(t, appErrMissing.Message, appErrWrongPw.Message)
		assert.Equal(t, 401, appErrMissing.Status)
	})

	t.Run("missing input", func(t *testing.T) {
		uc := newAuthUsecaseForTest(new(MockUserRepository), new(MockStudentRepository), new(MockUnitOfWork))
		_, err := uc.Login(context.Background(), " ", "pw")
		require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	})
}

func TestAuthUsecase_DeleteSelf(t *testing.T) {
	hash, err := crypto.HashPassword("secret123")
	require.NoError(t, err)
	userID := uuid.New()

	t.Run("success releases allow-list entry", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		studentRepo := new(MockStudentRepository)
		uow := new(MockUnitOfWork)
		uc := newAuthUsecaseForTest(userRepo, studentRepo, uow)

		userRepo.On("GetByUsername", mock.Anything, "alice").
			Return(&entities.User{ID: userID, Username: "alice", StudentID: "20240001", PasswordHash: hash}, nil).Once()
		uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
		studentRepo.On("SetUsed", mock.Anything, "20240001", false).Return(nil).Once()
		userRepo.On("Delete", mock.Anything, userID).Return(nil).Once()

		require.NoError(t, uc.DeleteSelf(context.Background(), "alice", "secret123"))
		userRepo.AssertExpectations(t)
		studentRepo.AssertExpectations(t)
	})

	t.Run("missing allow-list entry is tolerated", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		studentRepo := new(MockStudentRepository)
		uow := new(MockUnitOfWork)
		uc := newAuthUsecaseForTest(userRepo, studentRepo, uow)

		userRepo.On("GetByUsername", mock.Anything, "alice").
			Return(&entities.User{ID: userID, Username: "alice", StudentID: "20240001", PasswordHash: hash}, nil).Once()
		uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
		studentRepo.On("SetUsed", mock.Anything, "20240001", false).Return(domainerrors.ErrNotFound).Once()
		userRepo.On("Delete", mock.Anything, userID).Return(nil).Once()

		require.NoError(t, uc.DeleteSelf(context.Background(), "alice", "secret123"))
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		uc := newAuthUsecaseForTest(userRepo, new(MockStudentRepository), new(MockUnitOfWork))
		userRepo.On("GetByUsername", mock.Anything, "alice").
			Return(&entities.User{ID: userID, Username: "alice", PasswordHash: hash}, nil).Once()

		err := uc.DeleteSelf(context.Background(), "alice", "wrongpass")
		require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})
}
