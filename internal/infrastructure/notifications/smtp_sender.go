package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"campus-portal.backend/internal/domain/entities"
	domainerrors "campus-portal.backend/internal/domain/errors"
)

// SMTPConfig holds outbound mail settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPSender delivers verification codes by email. SMS delivery is not
// wired to a gateway; phone-channel sends are rejected so the caller
// can fall back to the log sender in that configuration.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates a new SMTP code sender
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPSender{cfg: cfg}
}

// Send delivers a verification code to the destination address
func (s *SMTPSender) Send(ctx context.Context, destination string, method entities.RecoveryMethod, code string) error {
	if method != entities.RecoveryMethodEmail {
		return fmt.Errorf("smtp sender supports email only, got %q: %w", method, domainerrors.ErrInvalidInput)
	}

	subject := "Your password reset verification code"
	body := "Your verification code is: " + code + "\r\nIt expires in 1 hour."
	message := buildMessage(s.cfg.From, destination, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	client, err := s.dial(ctx, addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(parseAddress(s.cfg.From)); err != nil {
		return err
	}
	if err := client.Rcpt(destination); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write([]byte(message)); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

func (s *SMTPSender) dial(ctx context.Context, addr string) (*smtp.Client, error) {
	dialer := &net.Dialer{Timeout: s.cfg.Timeout}

	if s.cfg.Port == 465 {
		conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: s.cfg.Host})
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(conn, s.cfg.Host)
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return nil, err
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			_ = client.Close()
			return nil, err
		}
	}
	return client, nil
}

func buildMessage(from, to, subject, body string) string {
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}
	return strings.Join(headers, "\r\n")
}

func parseAddress(from string) string {
	start := strings.Index(from, "<")
	end := strings.Index(from, ">")
	if start >= 0 && end > start {
		return strings.TrimSpace(from[start+1 : end])
	}
	return strings.TrimSpace(from)
}
