package utils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/VinukaThejana/blog/models"
	"github.com/resendlabs/resend-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendVerificationOTP(t *testing.T) {
	var sent *resend.SendEmailRequest
	e := &Email{
		From:   "blog@example.com",
		OTPTTL: 15 * time.Minute,
		send: func(params *resend.SendEmailRequest) (string, error) {
			sent = params
			return "email-1", nil
		},
	}

	err := e.SendVerificationOTP(context.Background(), models.User{Name: "Alice", Email: "a@x.com"}, "123456")
	require.NoError(t, err)

	assert.Equal(t, []string{"a@x.com"}, sent.To)
	assert.Equal(t, "blog@example.com", sent.From)
	assert.Contains(t, sent.Html, `<section class="block">6</section>`)
}

func TestSendResetLinkError(t *testing.T) {
	e := &Email{
		ResetTTL: 20 * time.Minute,
		send: func(*resend.SendEmailRequest) (string, error) {
			return "", fmt.Errorf("invalid api key")
		},
	}

	err := e.SendResetLink(context.Background(), models.User{Email: "a@x.com"}, "http://localhost:3000/x")
	assert.EqualError(t, err, "invalid api key")
}

func TestSendTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	e := &Email{
		OTPTTL: 15 * time.Minute,
		send: func(*resend.SendEmailRequest) (string, error) {
			<-release
			return "late", nil
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := e.SendVerificationOTP(ctx, models.User{Email: "a@x.com"}, "1234")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
