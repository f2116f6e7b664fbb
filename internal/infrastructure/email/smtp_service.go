package email

import (
	"context"
	"fmt"
	"net/smtp"

	"blog-backend/pkg/logger"
)

type EmailService interface {
	SendConfirmationCode(ctx context.Context, data ConfirmationCodeData) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
	send     sendFunc
}

// NewSMTPEmailService gửi qua SMTP không auth (MailHog/Mailpit ở local, relay nội bộ ở prod)
func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
		send:     smtp.SendMail,
	}
}

func buildConfirmationMessage(from string, data ConfirmationCodeData) Message {
	body := fmt.Sprintf(`Hi,

Your confirmation code is: %s

The code expires in %s.

If you did not sign up, you can ignore this email.`, data.Code, data.ExpiresIn)

	return Message{
		From:    from,
		To:      []string{data.Email},
		Subject: "Your verification code",
		Body:    body,
	}
}

func (s *smtpEmailService) SendConfirmationCode(ctx context.Context, data ConfirmationCodeData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildConfirmationMessage(s.smtpFrom, data)
	if err := s.send(s.smtpAddr, nil, s.smtpFrom, msg.To, msg.Bytes()); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        data.Email,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
