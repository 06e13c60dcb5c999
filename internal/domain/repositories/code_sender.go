package repositories

import (
	"context"

	"campus-portal.backend/internal/domain/entities"
)

// CodeSender dispatches a verification code to a destination over the
// given channel. Implementations cover email and SMS delivery.
type CodeSender interface {
	Send(ctx context.Context, destination string, method entities.RecoveryMethod, code string) error
}
