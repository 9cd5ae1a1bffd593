// Package errors contians http errors and other custom errors
package errors

import (
	errs "errors"
	"fmt"

	"github.com/VinukaThejana/blog/schemas"
	"github.com/VinukaThejana/go-utils/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
)

//revive:disable

var (
	ErrValidation     = fmt.Errorf("validation_error")
	ErrConflict       = fmt.Errorf("conflict_error")
	ErrAuthentication = fmt.Errorf("authentication_error")
	ErrNotFound       = fmt.Errorf("not_found_error")
	ErrExpired        = fmt.Errorf("expired_error")
	ErrInvalidCode    = fmt.Errorf("invalid_code_error")
	ErrInvalidToken   = fmt.Errorf("invalid_token_error")
	ErrServer         = fmt.Errorf("server_error")

	ErrRecordNotFound = fmt.Errorf("record_not_found")
	ErrDuplicateKey   = fmt.Errorf("duplicate_key")
)

const ServerErrMsg = "Server error. Please try again later."

//revive:enable

// HTTPError is an error returned by the auth workflow that knows how it should be rendered
type HTTPError struct {
	Kind    error
	Err     error
	Fields  map[string]string
	Message string
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As
func (e *HTTPError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Status is the http status code of the error
func (e *HTTPError) Status() int {
	switch e.Kind {
	case ErrValidation, ErrConflict, ErrExpired, ErrInvalidCode, ErrInvalidToken:
		return fiber.StatusBadRequest
	case ErrAuthentication:
		return fiber.StatusUnauthorized
	case ErrNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

//revive:disable

func Validation(msg string, fields map[string]string) error {
	return &HTTPError{Kind: ErrValidation, Message: msg, Fields: fields}
}

func Conflict(msg string) error {
	return &HTTPError{Kind: ErrConflict, Message: msg}
}

func Authentication(msg string) error {
	return &HTTPError{Kind: ErrAuthentication, Message: msg}
}

func NotFound(msg string) error {
	return &HTTPError{Kind: ErrNotFound, Message: msg}
}

func Expired(msg string) error {
	return &HTTPError{Kind: ErrExpired, Message: msg}
}

func InvalidCode(msg string) error {
	return &HTTPError{Kind: ErrInvalidCode, Message: msg}
}

func InvalidToken(msg string, err error) error {
	return &HTTPError{Kind: ErrInvalidToken, Message: msg, Err: err}
}

func Server(err error) error {
	return &HTTPError{Kind: ErrServer, Message: ServerErrMsg, Err: err}
}

//revive:enable

// Respond renders err as the json envelope with the matching status code
func Respond(c *fiber.Ctx, err error) error {
	var httpErr *HTTPError
	if !errs.As(err, &httpErr) {
		httpErr = &HTTPError{Kind: ErrServer, Message: ServerErrMsg, Err: err}
	}

	status := httpErr.Status()
	if status == fiber.StatusInternalServerError {
		logger.ErrorWithMsg(err, fmt.Sprintf("%s %s", c.Method(), c.Path()))
	}

	return c.Status(status).JSON(schemas.Res{
		Status:  false,
		Message: httpErr.Message,
		Errors:  httpErr.Fields,
	})
}

// BadRequest is used when the request body cannot be parsed
func BadRequest(c *fiber.Ctx) error {
	return Respond(c, Validation("Invalid request body.", nil))
}

// Unauthorized is used when the caller is not logged in
func Unauthorized(c *fiber.Ctx) error {
	return Respond(c, Authentication("Unauthorized."))
}

// Done is used when the request was completed with only a message to return
func Done(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusOK).JSON(schemas.Res{
		Status:  true,
		Message: msg,
	})
}

// CheckDBError is a struc that is used to identify the database errors
type CheckDBError struct{}

// DuplicateKey is a function that is used to find wether the returned database error
// is due to a duplicate key entry (A unique key constraint)
func (CheckDBError) DuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errs.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return true
		}
	}

	return mongo.IsDuplicateKeyError(err)
}
