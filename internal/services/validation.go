package services

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/security"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return security.ValidatePhoneNumber(fl.Field().String())
	})
	return v
}

// validateInput runs the struct tags of input and reports failures keyed by JSON field name.
func validateInput(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to validate input")
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return errors.Validation(fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "phone":
		return "Enter a valid mobile number."
	}
	return "Invalid value."
}

// required reports missing fields of a create payload.
func required(fields map[string]bool) error {
	missing := map[string]string{}
	for name, present := range fields {
		if !present {
			missing[name] = "This field is required."
		}
	}
	if len(missing) > 0 {
		return errors.Validation(missing)
	}
	return nil
}
