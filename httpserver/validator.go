package httpserver

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries field-level failures to the boundary, where they
// become a 422 with an errors map. It never reaches business logic.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Message
}

func NewValidationError(fields map[string][]string) *ValidationError {
	return &ValidationError{
		Message: "Invalid input data",
		Fields:  fields,
	}
}

type CustomValidator struct {
	validate *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &CustomValidator{validate: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validate.Struct(i); err != nil {
		return NewValidationError(fieldErrors(err))
	}
	return nil
}

func fieldErrors(err error) map[string][]string {
	fields := make(map[string][]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["_"] = []string{"invalid request"}
		return fields
	}

	for _, fe := range verrs {
		field := fe.Field()
		if field == "" {
			field = fe.StructField()
		}
		fields[field] = append(fields[field], reason(fe))
	}
	return fields
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "datetime":
		return "must be a valid date (" + fe.Param() + ")"
	default:
		return "failed on " + fe.Tag()
	}
}
