package services

import (
	"context"
	errs "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/VinukaThejana/blog/config"
	"github.com/VinukaThejana/blog/errors"
	"github.com/VinukaThejana/blog/models"
	"github.com/VinukaThejana/blog/schemas"
	"github.com/VinukaThejana/blog/token"
	"github.com/VinukaThejana/blog/validate"
	"github.com/VinukaThejana/go-utils/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgInvalidCredentials = "Invalid email or password."
	msgUserNotFound       = "User not found."
	msgEmailNotFound      = "Email doesn't exist."

	cleanupTimeout = 10 * time.Second
)

// Result is returned after registering or logging in
type Result struct {
	User  models.User
	Token string
}

// Auth coordinates the credential and OTP stores, the password hasher, the token issuer and
// the notification sender
type Auth struct {
	Users        UserStore
	OTPs         OTPStore
	Hasher       Hasher
	Tokens       *token.Issuer
	Mail         Notifier
	Images       ImageStore
	Codes        CodeGenerator
	Validate     *validator.Validate
	Now          func() time.Time
	FrontendURL  string
	OTPTTL       time.Duration
	MailTimeout  time.Duration
	RequireImage bool
	MailAsync    bool

	wg sync.WaitGroup
}

// NewAuth creates the auth workflow from the enviroment and the given collaborators
func NewAuth(env *config.Env, users UserStore, otps OTPStore, images ImageStore, mail Notifier) *Auth {
	return &Auth{
		Users:        users,
		OTPs:         otps,
		Hasher:       Bcrypt{},
		Tokens:       token.New(env),
		Mail:         mail,
		Images:       images,
		Codes:        HOTPCode{Digits: env.OTPDigits},
		Validate:     validate.New(env.PasswordMinEntropy, env.OTPDigits),
		Now:          time.Now,
		FrontendURL:  env.FrontendURL,
		OTPTTL:       env.OTPTTL,
		MailTimeout:  env.MailTimeout,
		RequireImage: env.RequireProfileImage,
		MailAsync:    env.MailAsync,
	}
}

// Wait blocks until every email that is being delivered in the background is done
func (a *Auth) Wait() {
	a.wg.Wait()
}

func (a *Auth) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *Auth) check(input interface{}, msg string) error {
	if err := a.Validate.Struct(input); err != nil {
		return errors.Validation(msg, validate.Fields(err))
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified user, sends the verification code and logs the user in
func (a *Auth) Register(ctx context.Context, input schemas.RegisterInput) (*Result, error) {
	input.Email = normalizeEmail(input.Email)

	if err := a.check(input, "All fields are required, including profile image."); err != nil {
		return nil, err
	}
	if a.RequireImage && input.Image == nil {
		return nil, errors.Validation("All fields are required, including profile image.", map[string]string{
			"image": `"image" is required`,
		})
	}
	if input.Password != input.ConfirmPassword {
		return nil, errors.Validation("Password and Confirm Password do not match.", map[string]string{
			"confirmPassword": `"confirmPassword" must match "password"`,
		})
	}

	_, err := a.Users.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, errors.Conflict("Email already exists.")
	}
	if !errs.Is(err, errors.ErrRecordNotFound) {
		return nil, errors.Server(err)
	}

	hashedPassword, err := a.hash(input.Password, "password")
	if err != nil {
		return nil, err
	}

	var imagePath string
	if input.Image != nil {
		imagePath, err = a.Images.Put(ctx, input.Image.Filename, input.Image.ContentType, input.Image.Size, input.Image.Body)
		if err != nil {
			return nil, errors.Server(err)
		}
	}

	user := models.User{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(input.Name),
		Email:     input.Email,
		Address:   input.Address,
		Password:  hashedPassword,
		ImagePath: imagePath,
		Verified:  false,
	}
	if err := a.Users.Create(ctx, &user); err != nil {
		a.removeImage(imagePath)
		if errs.Is(err, errors.ErrDuplicateKey) {
			return nil, errors.Conflict("Email already exists.")
		}

		return nil, errors.Server(err)
	}

	code, err := a.issueOTP(ctx, user)
	if err != nil {
		a.removeUser(user.ID)
		a.removeImage(imagePath)
		return nil, errors.Server(err)
	}
	a.deliver(ctx, user, "verification email", func(ctx context.Context) error {
		return a.Mail.SendVerificationOTP(ctx, user, code)
	})

	session, err := a.Tokens.CreateSession(user)
	if err != nil {
		return nil, errors.Server(err)
	}

	return &Result{
		User:  user,
		Token: session.Token,
	}, nil
}

// Login checks the credentials and issues a session token
func (a *Auth) Login(ctx context.Context, credentials schemas.Credentials) (*Result, error) {
	credentials.Email = normalizeEmail(credentials.Email)

	if err := a.check(credentials, "All fields (email, password) are required."); err != nil {
		return nil, err
	}

	user, err := a.Users.FindByEmail(ctx, credentials.Email)
	if err != nil {
		if errs.Is(err, errors.ErrRecordNotFound) {
			return nil, errors.Authentication(msgInvalidCredentials)
		}

		return nil, errors.Server(err)
	}

	if !a.Hasher.Compare(user.Password, credentials.Password) {
		return nil, errors.Authentication(msgInvalidCredentials)
	}

	session, err := a.Tokens.CreateSession(*user)
	if err != nil {
		return nil, errors.Server(err)
	}

	return &Result{
		User:  *user,
		Token: session.Token,
	}, nil
}

// VerifyOTP verifies the email address of the user with the code that was sent to it
func (a *Auth) VerifyOTP(ctx context.Context, input schemas.VerifyOTPInput) error {
	input.Email = normalizeEmail(input.Email)

	if err := a.check(input, "All fields are required."); err != nil {
		return err
	}

	var user *models.User
	var err error
	switch {
	case input.Email != "":
		user, err = a.Users.FindByEmail(ctx, input.Email)
	case input.UserID != "":
		user, err = a.Users.FindByID(ctx, input.UserID)
	default:
		return errors.Validation("All fields are required.", map[string]string{
			"email": `"email" is required`,
		})
	}
	if err != nil {
		if errs.Is(err, errors.ErrRecordNotFound) {
			return errors.NotFound(msgEmailNotFound)
		}

		return errors.Server(err)
	}

	if user.Verified {
		return errors.Conflict("Email is already verified.")
	}

	otp, err := a.OTPs.Find(ctx, user.ID, input.OTP)
	if err != nil {
		if !errs.Is(err, errors.ErrRecordNotFound) {
			return errors.Server(err)
		}

		if err := a.reissueOTP(ctx, *user); err != nil {
			return err
		}
		return errors.InvalidCode("Invalid OTP, new OTP sent to your email.")
	}

	if otp.Expired(a.now(), a.OTPTTL) {
		if err := a.reissueOTP(ctx, *user); err != nil {
			return err
		}
		return errors.Expired("OTP expired, new OTP sent to your email.")
	}

	user.Verified = true
	if err := a.Users.Update(ctx, user); err != nil {
		return errors.Server(err)
	}

	if err := a.OTPs.DeleteAllForUser(ctx, user.ID); err != nil {
		logger.ErrorWithMsg(err, fmt.Sprintf("Failed to delete the OTP records of %s", user.ID))
	}

	return nil
}

// UpdatePassword changes the password of a logged in user
func (a *Auth) UpdatePassword(ctx context.Context, userID string, input schemas.UpdatePasswordInput) error {
	if err := a.check(input, "Both old and new password are required."); err != nil {
		return err
	}

	user, err := a.Users.FindByID(ctx, userID)
	if err != nil {
		if errs.Is(err, errors.ErrRecordNotFound) {
			return errors.NotFound(msgUserNotFound)
		}

		return errors.Server(err)
	}

	if !a.Hasher.Compare(user.Password, input.OldPassword) {
		return errors.Authentication("Old password is incorrect.")
	}

	return a.setPassword(ctx, user, input.NewPassword, "newPassword")
}

// RequestPasswordReset emails a password reset link to the user
func (a *Auth) RequestPasswordReset(ctx context.Context, input schemas.ResetLinkInput) error {
	input.Email = normalizeEmail(input.Email)

	if err := a.check(input, "Email field is required."); err != nil {
		return err
	}

	user, err := a.Users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errs.Is(err, errors.ErrRecordNotFound) {
			return errors.NotFound(msgEmailNotFound)
		}

		return errors.Server(err)
	}

	reset, err := a.Tokens.CreateReset(user.ID)
	if err != nil {
		return errors.Server(err)
	}

	link := fmt.Sprintf(
		"%s/account/reset-password-confirm/%s/%s",
		strings.TrimRight(a.FrontendURL, "/"),
		user.ID,
		reset.Token,
	)

	ctx, cancel := context.WithTimeout(ctx, a.MailTimeout)
	defer cancel()

	if err := a.Mail.SendResetLink(ctx, *user, link); err != nil {
		return errors.Server(err)
	}

	return nil
}

// ResetPassword sets a new password with the token from the reset link
func (a *Auth) ResetPassword(ctx context.Context, input schemas.ResetPasswordInput) error {
	if _, err := uuid.Parse(input.UserID); err != nil {
		return errors.NotFound(msgUserNotFound)
	}

	user, err := a.Users.FindByID(ctx, input.UserID)
	if err != nil {
		if errs.Is(err, errors.ErrRecordNotFound) {
			return errors.NotFound(msgUserNotFound)
		}

		return errors.Server(err)
	}

	if err := a.Tokens.ValidateReset(user.ID, input.Token); err != nil {
		return errors.InvalidToken("Invalid or expired token.", err)
	}

	if err := a.check(input, "Password and confirm password are required."); err != nil {
		return err
	}
	if input.Password != input.ConfirmPassword {
		return errors.Validation("New Password and Confirm New Password don't match.", map[string]string{
			"confirm_password": `"confirm_password" must match "password"`,
		})
	}

	return a.setPassword(ctx, user, input.Password, "password")
}

// Profile returns the logged in user
func (a *Auth) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := a.Users.FindByID(ctx, userID)
	if err != nil {
		if errs.Is(err, errors.ErrRecordNotFound) {
			return nil, errors.NotFound(msgUserNotFound)
		}

		return nil, errors.Server(err)
	}

	return user, nil
}

// hash reports passwords that bcrypt cannot hash as a validation error on field
func (a *Auth) hash(password, field string) (string, error) {
	hashedPassword, err := a.Hasher.Hash(password)
	if err != nil {
		if errs.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", errors.Validation("Password is too long.", map[string]string{
				field: fmt.Sprintf("%q should have at most 72 bytes", field),
			})
		}

		return "", errors.Server(err)
	}

	return hashedPassword, nil
}

func (a *Auth) setPassword(ctx context.Context, user *models.User, password, field string) error {
	hashedPassword, err := a.hash(password, field)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	if err := a.Users.Update(ctx, user); err != nil {
		return errors.Server(err)
	}

	return nil
}

// issueOTP replaces the outstanding codes of the user with a fresh one
func (a *Auth) issueOTP(ctx context.Context, user models.User) (string, error) {
	code, err := a.Codes.Generate()
	if err != nil {
		return "", err
	}

	if err := a.OTPs.DeleteAllForUser(ctx, user.ID); err != nil {
		return "", err
	}

	err = a.OTPs.Create(ctx, &models.OTP{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Code:      code,
		CreatedAt: a.now().UTC(),
	})
	if err != nil {
		return "", err
	}

	return code, nil
}

func (a *Auth) reissueOTP(ctx context.Context, user models.User) error {
	code, err := a.issueOTP(ctx, user)
	if err != nil {
		return errors.Server(err)
	}

	a.deliver(ctx, user, "verification email", func(ctx context.Context) error {
		return a.Mail.SendVerificationOTP(ctx, user, code)
	})
	return nil
}

// deliver sends an email that the caller does not wait on when MailAsync is set, failures are
// only logged since the records it refers to are already persisted
func (a *Auth) deliver(ctx context.Context, user models.User, what string, send func(ctx context.Context) error) {
	if !a.MailAsync {
		ctx, cancel := context.WithTimeout(ctx, a.MailTimeout)
		defer cancel()

		if err := send(ctx); err != nil {
			logger.ErrorWithMsg(err, fmt.Sprintf("Failed to send the %s to %s", what, user.ID))
		}
		return
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), a.MailTimeout)
		defer cancel()

		if err := send(ctx); err != nil {
			logger.ErrorWithMsg(err, fmt.Sprintf("Failed to send the %s to %s", what, user.ID))
		}
	}()
}

// removeUser rolls back a registration that could not be completed
func (a *Auth) removeUser(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	if err := a.Users.Delete(ctx, id); err != nil {
		logger.ErrorWithMsg(err, fmt.Sprintf("Failed to remove the incomplete registration %s", id))
	}
}

func (a *Auth) removeImage(path string) {
	if path == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	if err := a.Images.Remove(ctx, path); err != nil {
		logger.ErrorWithMsg(err, fmt.Sprintf("Failed to remove the orphaned image %s", path))
	}
}
