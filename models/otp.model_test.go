package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOTPExpired(t *testing.T) {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	otp := OTP{CreatedAt: created}

	assert.Equal(t, created.Add(15*time.Minute), otp.ExpiresAt(15*time.Minute))
	assert.False(t, otp.Expired(created.Add(15*time.Minute), 15*time.Minute))
	assert.True(t, otp.Expired(created.Add(15*time.Minute+time.Second), 15*time.Minute))
	assert.True(t, otp.Expired(created.Add(6*time.Minute), 5*time.Minute))
}
