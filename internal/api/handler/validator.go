package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/projecthub/projects-api/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call
// c.Validate(req). Failures come back as a VALIDATION domain error carrying
// a field → message map keyed by JSON field names.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to
// echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()

	// Report fields by their JSON names so validation maps match the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Let time-based tags (gt = future, gte = present-or-future) work on
	// the LocalDateTime wire type.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if dt, ok := field.Interface().(domain.LocalDateTime); ok {
			return dt.Time
		}
		return nil
	}, domain.LocalDateTime{})

	// Go's RE2 regexp has no lookahead, so the password policy is a
	// character-class walk instead of the documented PCRE pattern.
	_ = v.RegisterValidation("password", validPassword)

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			if _, seen := fields[fe.Field()]; !seen {
				fields[fe.Field()] = fieldMessage(fe)
			}
		}
		return domain.NewValidation(fields)
	}
	return err
}

// fieldMessage converts a single ValidationError into a human-readable
// message.
func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gt":
		if isTimeField(fe) {
			return field + " must be in the future"
		}
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		if isTimeField(fe) {
			return field + " must be in the present or future"
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "password":
		return field + " must be at least 8 characters and contain a lowercase letter, an uppercase letter, a digit and one of @$!%*?&"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func isTimeField(fe validator.FieldError) bool {
	_, ok := fe.Value().(time.Time)
	return ok
}

const passwordSpecials = "@$!%*?&"

// validPassword enforces the registration password policy: length >= 8,
// only letters, digits and the special set, with at least one of each
// class (lower, upper, digit, special).
func validPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r) && r <= unicode.MaxASCII:
			lower = true
		case unicode.IsUpper(r) && r <= unicode.MaxASCII:
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}
