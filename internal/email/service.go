package email

import (
	"context"
	"fmt"
)

// Service handles email composition and sending.
type Service struct {
	sender      Sender
	fromAddress string
	fromName    string
}

// NewService creates a new email service.
func NewService(sender Sender, fromAddress, fromName string) *Service {
	return &Service{
		sender:      sender,
		fromAddress: fromAddress,
		fromName:    fromName,
	}
}

// SendResetCode mails a 6-digit password reset code to the user.
func (s *Service) SendResetCode(ctx context.Context, to, name, code string) error {
	email := &Email{
		To:      []string{to},
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress),
		Subject: "Your password reset code",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nYour password reset code is %s. It expires in 10 minutes.\n\nIf you did not request this, you can ignore this message.\n",
			name, code,
		),
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your password reset code is <strong>%s</strong>. It expires in 10 minutes.</p><p>If you did not request this, you can ignore this message.</p>",
			name, code,
		),
	}

	if _, err := s.sender.Send(ctx, email); err != nil {
		return fmt.Errorf("failed to send reset code email: %w", err)
	}
	return nil
}
