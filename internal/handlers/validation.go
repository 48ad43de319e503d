package handlers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseValidationErrors converts validator errors to user-friendly format
func ParseValidationErrors(err error) []ValidationError {
	var out []ValidationError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			out = append(out, ValidationError{
				Field:   fieldError.Field(),
				Message: getErrorMessage(fieldError),
			})
		}
	}

	return out
}

// summarize joins validation messages into a single line for inline display
func summarize(err error) string {
	parsed := ParseValidationErrors(err)
	if len(parsed) == 0 {
		return "Invalid form submission"
	}
	messages := make([]string, 0, len(parsed))
	for _, ve := range parsed {
		messages = append(messages, ve.Message)
	}
	return strings.Join(messages, "; ")
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "max":
		return fe.Field() + " must not exceed " + fe.Param() + " characters"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "url":
		return "Invalid URL format"
	default:
		return fe.Field() + " is invalid"
	}
}

// splitTags turns comma separated form inputs into a clean tag list
func splitTags(values []string) []string {
	tags := []string{}
	for _, value := range values {
		for _, tag := range strings.Split(value, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
