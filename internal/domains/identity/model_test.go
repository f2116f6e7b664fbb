package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckCode(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	code := "042917"
	expires := now.Add(time.Hour)
	a := &Account{ConfirmationCode: &code, ConfirmationExpiresAt: &expires}

	assert.NoError(t, a.CheckCode("042917", now))
	assert.ErrorIs(t, a.CheckCode("42917", now), ErrInvalidCode)
	assert.ErrorIs(t, a.CheckCode("042917", expires), ErrCodeExpired)

	a.Confirmed = true
	assert.ErrorIs(t, a.CheckCode("042917", now), ErrAlreadyConfirmed)

	assert.ErrorIs(t, (&Account{}).CheckCode("042917", now), ErrInvalidCode)
}
