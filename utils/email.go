package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/VinukaThejana/blog/config"
	"github.com/VinukaThejana/blog/models"
	"github.com/VinukaThejana/blog/templates"
	"github.com/VinukaThejana/go-utils/logger"
	"github.com/resendlabs/resend-go"
)

// Email sends the verification and password reset emails through resend
type Email struct {
	From     string
	OTPTTL   time.Duration
	ResetTTL time.Duration

	send func(params *resend.SendEmailRequest) (string, error)
}

// NewEmail creates the email sender with a client that is shared by every request
func NewEmail(client *resend.Client, env *config.Env) *Email {
	return &Email{
		From:     env.MailFrom,
		OTPTTL:   env.OTPTTL,
		ResetTTL: env.ResetTokenExpires,
		send: func(params *resend.SendEmailRequest) (string, error) {
			sent, err := client.Emails.Send(params)
			if err != nil {
				return "", err
			}

			return sent.Id, nil
		},
	}
}

// SendVerificationOTP sends the code that is used to verify the email address
func (e *Email) SendVerificationOTP(ctx context.Context, user models.User, code string) error {
	html, err := templates.Email{}.VerificationTmpl(user.Name, code, int(e.OTPTTL.Minutes()))
	if err != nil {
		return err
	}

	return e.deliver(ctx, &resend.SendEmailRequest{
		From:    e.From,
		To:      []string{user.Email},
		Html:    html,
		Subject: "Verify your email address",
		ReplyTo: e.From,
	})
}

// SendResetLink sends the link that is used to reset the password
func (e *Email) SendResetLink(ctx context.Context, user models.User, link string) error {
	html, err := templates.Email{}.PasswordResetTmpl(user.Name, link, int(e.ResetTTL.Minutes()))
	if err != nil {
		return err
	}

	return e.deliver(ctx, &resend.SendEmailRequest{
		From:    e.From,
		To:      []string{user.Email},
		Html:    html,
		Subject: "Password Reset",
		ReplyTo: e.From,
	})
}

// deliver gives up on the email when ctx is done, the request itself is left to finish in the
// background since the resend client does not take a context
func (e *Email) deliver(ctx context.Context, params *resend.SendEmailRequest) error {
	type result struct {
		id  string
		err error
	}

	done := make(chan result, 1)
	go func() {
		id, err := e.send(params)
		done <- result{id: id, err: err}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("sending %q: %w", params.Subject, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return res.err
		}

		logger.Log(fmt.Sprintf("[ %s ] : %s email sent", res.id, params.Subject))
		return nil
	}
}
