package notifications

import (
	"context"
	"testing"
	"time"

	"campus-portal.backend/internal/domain/entities"
	domainerrors "campus-portal.backend/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPSender_DefaultTimeout(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "mail.example.edu", Port: 587})
	assert.Equal(t, 10*time.Second, s.cfg.Timeout)

	s = NewSMTPSender(SMTPConfig{Host: "mail.example.edu", Port: 587, Timeout: time.Second})
	assert.Equal(t, time.Second, s.cfg.Timeout)
}

func TestSMTPSender_RejectsPhoneChannel(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "mail.example.edu", Port: 587})
	err := s.Send(context.Background(), "13812345678", entities.RecoveryMethodPhone, "123456")
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("noreply@example.edu", "alice@example.edu", "code", "123456")
	assert.Contains(t, msg, "From: noreply@example.edu\r\n")
	assert.Contains(t, msg, "To: alice@example.edu\r\n")
	assert.Contains(t, msg, "Subject: code\r\n")
	assert.Contains(t, msg, "\r\n\r\n123456")
}

func TestParseAddress(t *testing.T) {
	assert.Equal(t, "a@b.c", parseAddress("a@b.c"))
	assert.Equal(t, "a@b.c", parseAddress("Portal <a@b.c>"))
	assert.Equal(t, "a@b.c", parseAddress("  a@b.c  "))
}
