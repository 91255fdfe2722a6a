package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

var projectFieldMessages = map[string]string{
	"title":       "Project title is required",
	"description": "Project description is required",
	"budget":      "Budget must be greater than zero",
	"deadline":    "Project deadline is required",
	"status":      "Invalid project status",
	"createdBy":   "Project owner is required",
}

// firstFieldError converts the first failed struct tag into a ValidationError.
func firstFieldError(err error, messages map[string]string) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	field := fieldErrs[0].Field()
	message, ok := messages[field]
	if !ok {
		message = "Invalid " + field
	}
	return &ValidationError{Field: field, Message: message}
}
