package email

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendConfirmationCode(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	svc := &smtpEmailService{
		smtpAddr: "mail:1025",
		smtpFrom: "noreply@blog.dev",
		send: func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		},
	}

	err := svc.SendConfirmationCode(context.Background(), ConfirmationCodeData{
		Email:     "reader@example.com",
		Code:      "123456",
		ExpiresIn: "24h",
	})
	require.NoError(t, err)

	assert.Equal(t, "mail:1025", gotAddr)
	assert.Equal(t, "noreply@blog.dev", gotFrom)
	assert.Equal(t, []string{"reader@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "To: reader@example.com\r\n")
	assert.Contains(t, string(gotMsg), "123456")
}

func TestSendConfirmationCodeWrapsError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := &smtpEmailService{
		smtpAddr: "mail:1025",
		smtpFrom: "noreply@blog.dev",
		send: func(string, smtp.Auth, string, []string, []byte) error {
			return boom
		},
	}

	err := svc.SendConfirmationCode(context.Background(), ConfirmationCodeData{Email: "a@b.c", Code: "1"})
	assert.ErrorIs(t, err, boom)
}
