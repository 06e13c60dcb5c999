package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"campus-portal.backend/internal/domain/entities"
	domainerrors "campus-portal.backend/internal/domain/errors"
	"campus-portal.backend/internal/domain/repositories"
	"campus-portal.backend/pkg/crypto"
	"campus-portal.backend/pkg/logger"
	"go.uber.org/zap"
)

// CodeIssue reports where a verification code was dispatched. Delivered
// is false when the notification sink failed; the reset token is still
// persisted in that case.
type CodeIssue struct {
	Method    entities.RecoveryMethod
	Target    string
	Delivered bool
}

// RecoveryUsecase drives the three-step password recovery flow:
// issue code, verify code, consume token.
type RecoveryUsecase struct {
	userRepo repositories.UserRepository
	sender   repositories.CodeSender
	limiter  repositories.CooldownLimiter
	tokenTTL time.Duration
	cooldown time.Duration

	now func() time.Time
}

// NewRecoveryUsecase creates a new recovery usecase
func NewRecoveryUsecase(
	userRepo repositories.UserRepository,
	sender repositories.CodeSender,
	limiter repositories.CooldownLimiter,
	tokenTTL time.Duration,
	cooldown time.Duration,
) *RecoveryUsecase {
	return &RecoveryUsecase{
		userRepo: userRepo,
		sender:   sender,
		limiter:  limiter,
		tokenTTL: tokenTTL,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// SendCode generates a verification code and a fresh reset token,
// persists the token with a digest of the code, and dispatches the code
// over the chosen channel. Re-invoking overwrites the previous token.
func (u *RecoveryUsecase) SendCode(ctx context.Context, studentID string, method entities.RecoveryMethod) (*CodeIssue, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, domainerrors.BadRequest("student id is required")
	}
	if method == "" {
		method = entities.RecoveryMethodEmail
	}
	if !method.Valid() {
		return nil, domainerrors.BadRequest("method must be email or phone")
	}

	user, err := u.userRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("student id not found")
		}
		return nil, err
	}

	ok, err := u.limiter.Acquire(ctx, studentID, u.cooldown)
	if err != nil {
		// a broken limiter must not lock users out of recovery
		logger.Warn(ctx, "recovery cooldown check failed, admitting request", zap.Error(err))
	} else if !ok {
		return nil, domainerrors.TooManyRequests("verification code already sent, try again later")
	}

	code, err := crypto.GenerateVerificationCode()
	if err != nil {
		return nil, err
	}
	token, err := crypto.GenerateResetToken()
	if err != nil {
		return nil, err
	}

	expires := u.now().UTC().Add(u.tokenTTL)
	if err := u.userRepo.SetResetToken(ctx, user.ID, token, crypto.HashCode(code), expires); err != nil {
		return nil, err
	}

	target := user.Email
	if method == entities.RecoveryMethodPhone {
		target = user.Phone
	}

	issue := &CodeIssue{Method: method, Target: target, Delivered: true}
	if err := u.sender.Send(ctx, target, method, code); err != nil {
		// token stays valid; the caller is told delivery failed
		logger.Error(ctx, "verification code dispatch failed",
			zap.String("method", string(method)),
			zap.Error(err),
		)
		issue.Delivered = false
	}

	return issue, nil
}

// VerifyCode gates the reset step: it checks the submitted code against
// the persisted digest and returns the reset token on success. It never
// mutates recovery state.
func (u *RecoveryUsecase) VerifyCode(ctx context.Context, studentID string, method entities.RecoveryMethod, code string) (string, error) {
	studentID = strings.TrimSpace(studentID)
	code = strings.TrimSpace(code)
	if studentID == "" || code == "" {
		return "", domainerrors.BadRequest("student id and verification code are required")
	}

	user, err := u.userRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.NotFound("student id not found")
		}
		return "", err
	}

	if !user.ResetToken.Valid {
		return "", domainerrors.BadRequest("no verification code requested")
	}
	if user.ResetTokenExpires.Valid && user.ResetTokenExpires.Time.Before(u.now().UTC()) {
		return "", domainerrors.Expired("verification code expired, please request a new one")
	}
	if !user.ResetCodeHash.Valid || crypto.HashCode(code) != user.ResetCodeHash.String {
		return "", domainerrors.BadRequest("incorrect verification code")
	}

	return user.ResetToken.String, nil
}

// ResetPassword consumes a reset token: it replaces the password hash
// and clears the token so it cannot be used twice.
func (u *RecoveryUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" || newPassword == "" {
		return domainerrors.BadRequest("reset token and new password are required")
	}
	if len(newPassword) < minPasswordLength {
		return domainerrors.BadRequest("password must be at least 6 characters")
	}

	user, err := u.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("invalid reset token")
		}
		return err
	}
	if user.ResetTokenExpires.Valid && user.ResetTokenExpires.Time.Before(u.now().UTC()) {
		return domainerrors.Expired("reset token expired")
	}

	passwordHash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return u.userRepo.ResetPassword(ctx, user.ID, passwordHash)
}
