// Package validate contains custom validation functions
package validate

import (
	errs "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

// Password returns a validation function that rejects passwords below minEntropy,
// a minEntropy of zero accepts every password
func Password(minEntropy float64) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if minEntropy <= 0 {
			return true
		}

		password := fl.Field().String()
		return passwordvalidator.Validate(password, minEntropy) == nil
	}
}

// OTP returns a validation function that accepts numeric codes of exactly digits length
func OTP(digits int) validator.Func {
	regex := regexp.MustCompile(fmt.Sprintf(`^[0-9]{%d}$`, digits))

	return func(fl validator.FieldLevel) bool {
		return regex.MatchString(fl.Field().String())
	}
}

// New returns a validator with the custom validation functions registered, field errors are
// reported under the json name of the field
func New(minEntropy float64, otpDigits int) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	v.RegisterValidation("validate_password", Password(minEntropy))
	v.RegisterValidation("validate_otp", OTP(otpDigits))

	return v
}

// Fields converts the validation errors to a field -> message map
func Fields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errs.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, ferr := range verrs {
		fields[ferr.Field()] = message(ferr)
	}

	return fields
}

func message(ferr validator.FieldError) string {
	field := ferr.Field()

	switch ferr.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "email":
		return fmt.Sprintf("%q must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%q should have at least %s characters", field, ferr.Param())
	case "max":
		return fmt.Sprintf("%q should have at most %s characters", field, ferr.Param())
	case "validate_otp":
		return fmt.Sprintf("%q must be a numeric code of the expected length", field)
	case "validate_password":
		return fmt.Sprintf("%q is too weak", field)
	default:
		return fmt.Sprintf("%q is not valid", field)
	}
}
