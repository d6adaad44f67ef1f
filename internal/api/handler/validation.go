package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"customer-service/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

var cuitPattern = regexp.MustCompile(`^\d{2}-?\d{8}-?\d$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("cuit", validateCUIT); err != nil {
		panic("Init: Error registering cuit validation: " + err.Error())
	}
	return v
}

// validateCUIT accepts XX-XXXXXXXX-X with or without dashes.
func validateCUIT(fl validator.FieldLevel) bool {
	return cuitPattern.MatchString(fl.Field().String())
}

// validateRequest runs the struct tags of req and converts failures into
// apperrors.ValidationErrors keyed by JSON field name.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
	}

	out := make(apperrors.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, apperrors.ValidationError{Field: fe.Field(), Message: describeFieldError(fe)})
	}
	return out
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "cuit":
		return "must be a CUIT in the form XX-XXXXXXXX-X"
	case "datetime":
		return fmt.Sprintf("must be a date in the form %s", fe.Param())
	default:
		return fmt.Sprintf("failed the %s check", fe.Tag())
	}
}
