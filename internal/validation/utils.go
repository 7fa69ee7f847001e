package validation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/bfhl/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MessageInvalidBody is reported when the body cannot be bound at all.
const MessageInvalidBody = "Invalid JSON body"

// Validatable is implemented by request payload types that know how to
// validate themselves.
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
type CustomValidationError struct {
	Field   string
	Message string
	Code    string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	if len(c) == 0 {
		return "Validation failed"
	}
	return c[0].Message
}

var validate = validator.New()

// Struct runs go-playground/validator over v. It is shared so payloads do
// not each build their own validator (which caches struct metadata).
func Struct(v any) error {
	return validate.Struct(v)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the payload from the request body.
//  2. payload.Validate() applies validation rules.
//  3. Any failure becomes a 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		return extractValidationError(err)
	}

	return nil
}

// DecodeAndValidate is BindAndValidate for a raw JSON document that did
// not arrive over HTTP (the compute command).
func DecodeAndValidate(data []byte, payload Validatable) error {
	if err := json.Unmarshal(data, payload); err != nil {
		return errs.NewBadRequestError(MessageInvalidBody, nil)
	}

	if err := payload.Validate(); err != nil {
		return extractValidationError(err)
	}

	return nil
}

// bindError maps echo's bind failures (malformed JSON, unsupported media
// type, type mismatches) onto one client-facing message. Only a body
// that was too large keeps its own status.
//
// A body cut off by the BodyLimit reader surfaces as a 400 from the
// binder with echo.ErrStatusRequestEntityTooLarge in its chain.
func bindError(err error) *errs.HTTPError {
	var echoErr *echo.HTTPError
	if errors.Is(err, echo.ErrStatusRequestEntityTooLarge) ||
		(errors.As(err, &echoErr) && echoErr.Code == http.StatusRequestEntityTooLarge) {
		return errs.NewPayloadTooLargeError()
	}
	return errs.NewBadRequestError(MessageInvalidBody, nil)
}

func extractValidationError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var custom CustomValidationErrors
	if errors.As(err, &custom) && len(custom) > 0 {
		first := custom[0]
		var code *string
		if first.Code != "" {
			code = &first.Code
		}
		return errs.NewBadRequestError(first.Message, code)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return errs.NewBadRequestError(describe(validationErrors[0]), nil)
	}

	return errs.ValidationError(err)
}

// describe turns a validator field error into a user-friendly message.
func describe(err validator.FieldError) string {
	field := strings.ToLower(err.Field())

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, err.Param())
		}
		if err.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s items", field, err.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", field, err.Param())
		}
		if err.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must not exceed %s items", field, err.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, err.Param())
	default:
		if err.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
		}
		return fmt.Sprintf("%s: %s", field, err.Tag())
	}
}
