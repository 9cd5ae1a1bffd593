package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/VinukaThejana/blog/controllers"
	"github.com/VinukaThejana/blog/errors"
	"github.com/VinukaThejana/blog/middleware"
	"github.com/VinukaThejana/blog/models"
	"github.com/VinukaThejana/blog/routes"
	"github.com/VinukaThejana/blog/services"
	"github.com/VinukaThejana/blog/token"
	"github.com/VinukaThejana/blog/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type users struct {
	mu   sync.Mutex
	byID map[string]models.User
}

func (u *users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, user := range u.byID {
		if user.Email == email {
			user := user
			return &user, nil
		}
	}
	return nil, errors.ErrRecordNotFound
}

func (u *users) FindByID(_ context.Context, id string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.byID[id]
	if !ok {
		return nil, errors.ErrRecordNotFound
	}
	return &user, nil
}

func (u *users) Create(_ context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, existing := range u.byID {
		if existing.Email == user.Email {
			return errors.ErrDuplicateKey
		}
	}
	u.byID[user.ID] = *user
	return nil
}

func (u *users) Update(_ context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.byID[user.ID] = *user
	return nil
}

func (u *users) Delete(_ context.Context, id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.byID, id)
	return nil
}

type otps struct {
	mu      sync.Mutex
	records []models.OTP
}

func (o *otps) Create(_ context.Context, otp *models.OTP) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, *otp)
	return nil
}

func (o *otps) Find(_ context.Context, userID, code string) (*models.OTP, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, r := range o.records {
		if r.UserID == userID && r.Code == code {
			r := r
			return &r, nil
		}
	}
	return nil, errors.ErrRecordNotFound
}

func (o *otps) DeleteAllForUser(_ context.Context, userID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	var kept []models.OTP
	for _, r := range o.records {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	o.records = kept
	return nil
}

type mailbox struct {
	mu    sync.Mutex
	codes map[string]string
	links map[string]string
}

func (m *mailbox) SendVerificationOTP(_ context.Context, user models.User, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[user.Email] = code
	return nil
}

func (m *mailbox) SendResetLink(_ context.Context, user models.User, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[user.Email] = link
	return nil
}

type images struct{}

func (images) Put(_ context.Context, name, _ string, _ int64, body io.Reader) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	return "profile-images/profile/" + name, nil
}

func (images) Remove(context.Context, string) error {
	return nil
}

type fixedCode string

func (f fixedCode) Generate() (string, error) {
	return string(f), nil
}

func newApp(t *testing.T, requireImage bool) (*fiber.App, *mailbox) {
	t.Helper()

	mail := &mailbox{codes: map[string]string{}, links: map[string]string{}}
	auth := &services.Auth{
		Users:        &users{byID: map[string]models.User{}},
		OTPs:         &otps{},
		Hasher:       services.Bcrypt{Cost: bcrypt.MinCost},
		Tokens:       &token.Issuer{Secret: []byte("secret"), SessionTTL: 24 * time.Hour, ResetTTL: 20 * time.Minute},
		Mail:         mail,
		Images:       images{},
		Codes:        fixedCode("123456"),
		Validate:     validate.New(0, 6),
		FrontendURL:  "http://localhost:3000",
		OTPTTL:       15 * time.Minute,
		MailTimeout:  time.Second,
		RequireImage: requireImage,
	}

	app := fiber.New()
	routes.Auth(app, &controllers.Auth{Service: auth}, &middleware.Auth{Tokens: auth.Tokens})

	return app, mail
}

func jsonRequest(method, target string, body interface{}, sessionToken string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	}
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]interface{}) {
	t.Helper()

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return res.StatusCode, body
}

var alice = map[string]string{
	"name":            "Alice",
	"email":           "a@x.com",
	"password":        "secret1",
	"confirmPassword": "secret1",
	"address":         "1 Main St",
}

func register(t *testing.T, app *fiber.App) string {
	t.Helper()

	status, body := do(t, app, jsonRequest(http.MethodPost, "/auth/register", alice, ""))
	require.Equal(t, fiber.StatusCreated, status, body)
	return body["token"].(string)
}

func TestRegisterJSON(t *testing.T) {
	app, mail := newApp(t, false)

	status, body := do(t, app, jsonRequest(http.MethodPost, "/auth/register", alice, ""))
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["status"])
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, false, user["verified"])
	assert.NotContains(t, user, "password")
	assert.Equal(t, "123456", mail.codes["a@x.com"])

	status, body = do(t, app, jsonRequest(http.MethodPost, "/auth/register", alice, ""))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["status"])
	assert.Equal(t, "Email already exists.", body["message"])
}

func TestRegisterMultipart(t *testing.T) {
	app, _ := newApp(t, true)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range alice {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("image", "me.png")
	require.NoError(t, err)
	part.Write([]byte("png"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/auth/register", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	status, body := do(t, app, req)
	assert.Equal(t, fiber.StatusCreated, status, body)

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "profile-images/profile/me.png", user["imagePath"])
}

func TestRegisterMissingImage(t *testing.T) {
	app, _ := newApp(t, true)

	status, body := do(t, app, jsonRequest(http.MethodPost, "/auth/register", alice, ""))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "All fields are required, including profile image.", body["message"])
	assert.Contains(t, body["errors"], "image")
}

func TestLogin(t *testing.T) {
	app, _ := newApp(t, false)
	register(t, app)

	status, body := do(t, app, jsonRequest(http.MethodPost, "/auth/login", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	}, ""))
	assert.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "Alice", body["user"].(map[string]interface{})["name"])

	req := httptest.NewRequest(http.MethodPost, "/auth/login?email=a@x.com&password=secret1", nil)
	status, _ = do(t, app, req)
	assert.Equal(t, fiber.StatusOK, status)

	status, body = do(t, app, jsonRequest(http.MethodPost, "/auth/login", map[string]string{
		"email":    "a@x.com",
		"password": "wrong",
	}, ""))
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password.", body["message"])
}

func TestVerifyOTP(t *testing.T) {
	app, _ := newApp(t, false)
	sessionToken := register(t, app)

	status, body := do(t, app, jsonRequest(http.MethodPost, "/auth/verify-otp", map[string]string{"otp": "000000"}, sessionToken))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid OTP, new OTP sent to your email.", body["message"])

	status, _ = do(t, app, jsonRequest(http.MethodPost, "/auth/verify-otp", map[string]string{"otp": "123456"}, sessionToken))
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = do(t, app, jsonRequest(http.MethodPost, "/auth/verify-otp", map[string]string{
		"email": "a@x.com",
		"otp":   "123456",
	}, ""))
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, jsonRequest(http.MethodPost, "/auth/verify-otp", map[string]string{"otp": "123456"}, "not-a-token"))
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestUpdatePassword(t *testing.T) {
	app, _ := newApp(t, false)
	sessionToken := register(t, app)
	payload := map[string]string{"oldPassword": "secret1", "newPassword": "secret2"}

	status, _ := do(t, app, jsonRequest(http.MethodPost, "/auth/update-password", payload, ""))
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = do(t, app, jsonRequest(http.MethodPost, "/auth/update-password", payload, sessionToken))
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = do(t, app, jsonRequest(http.MethodPost, "/auth/login", map[string]string{
		"email":    "a@x.com",
		"password": "secret2",
	}, ""))
	assert.Equal(t, fiber.StatusOK, status)
}

func TestPasswordReset(t *testing.T) {
	app, mail := newApp(t, false)
	register(t, app)

	status, _ := do(t, app, jsonRequest(http.MethodPost, "/auth/reset-password-link", map[string]string{"email": "nobody@x.com"}, ""))
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = do(t, app, jsonRequest(http.MethodPost, "/auth/reset-password-link", map[string]string{"email": "a@x.com"}, ""))
	require.Equal(t, fiber.StatusOK, status)

	link := mail.links["a@x.com"]
	path := strings.TrimPrefix(link, "http://localhost:3000/account/reset-password-confirm/")
	payload := map[string]string{"password": "secret2", "confirm_password": "secret2"}

	status, body := do(t, app, jsonRequest(http.MethodPost, "/auth/reset-password/"+path+"x", payload, ""))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid or expired token.", body["message"])

	status, _ = do(t, app, jsonRequest(http.MethodPost, "/auth/reset-password/"+path, payload, ""))
	assert.Equal(t, fiber.StatusOK, status)
}

func TestProfile(t *testing.T) {
	app, _ := newApp(t, false)
	sessionToken := register(t, app)

	status, body := do(t, app, jsonRequest(http.MethodGet, "/auth/profile", nil, sessionToken))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "a@x.com", body["data"].(map[string]interface{})["email"])
}
