// Package token is used to create and validate session and password reset tokens
package token

import (
	errs "errors"
	"fmt"
	"time"

	"github.com/VinukaThejana/blog/config"
	"github.com/VinukaThejana/blog/models"
	"github.com/golang-jwt/jwt/v5"
)

// Details is a struct that contains the created token and when it expires
type Details struct {
	Token     string
	ExpiresIn int64
	UserID    string
}

// SessionClaims are the claims carried by the session token, the subject is the user ID
type SessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// ResetClaims are the claims carried by the password reset token
type ResetClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userID"`
}

// ErrInvalid is returned when a token cannot be parsed or is not valid
var ErrInvalid = fmt.Errorf("token_invalid")

// Issuer creates and validates tokens
type Issuer struct {
	Now        func() time.Time
	Secret     []byte
	SessionTTL time.Duration
	ResetTTL   time.Duration
}

// New creates an issuer from the enviroment
func New(env *config.Env) *Issuer {
	return &Issuer{
		Secret:     []byte(env.JWTSecret),
		SessionTTL: env.SessionTokenExpires,
		ResetTTL:   env.ResetTokenExpires,
		Now:        time.Now,
	}
}

func (i *Issuer) now() time.Time {
	if i.Now == nil {
		return time.Now()
	}
	return i.Now()
}

// CreateSession creates a session token for the user
func (i *Issuer) CreateSession(user models.User) (*Details, error) {
	now := i.now().UTC()
	expires := now.Add(i.SessionTTL)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		Email: user.Email,
		Name:  user.Name,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.Secret)
	if err != nil {
		return nil, err
	}

	return &Details{
		Token:     token,
		ExpiresIn: expires.Unix(),
		UserID:    user.ID,
	}, nil
}

// ValidateSession validates the session token and returns its claims
func (i *Issuer) ValidateSession(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := i.parse(tokenStr, claims, i.Secret); err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, ErrInvalid
	}

	return claims, nil
}

// resetSecret binds the reset token to the persisted user and to the server secret
func (i *Issuer) resetSecret(userID string) []byte {
	return append([]byte(userID), i.Secret...)
}

// CreateReset creates a password reset token for the user
func (i *Issuer) CreateReset(userID string) (*Details, error) {
	now := i.now().UTC()
	expires := now.Add(i.ResetTTL)

	claims := ResetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.resetSecret(userID))
	if err != nil {
		return nil, err
	}

	return &Details{
		Token:     token,
		ExpiresIn: expires.Unix(),
		UserID:    userID,
	}, nil
}

// ValidateReset validates a password reset token that was issued for userID
func (i *Issuer) ValidateReset(userID, tokenStr string) error {
	claims := &ResetClaims{}
	if err := i.parse(tokenStr, claims, i.resetSecret(userID)); err != nil {
		return err
	}
	if claims.UserID != userID {
		return ErrInvalid
	}

	return nil
}

func (i *Issuer) parse(tokenStr string, claims jwt.Claims, key []byte) error {
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected method : %s", t.Header["alg"])
		}

		return key, nil
	},
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errs.Is(err, jwt.ErrTokenExpired) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !token.Valid {
		return ErrInvalid
	}

	return nil
}

// Expired reports wether the token was rejected only because it expired
func Expired(err error) bool {
	return errs.Is(err, jwt.ErrTokenExpired)
}
