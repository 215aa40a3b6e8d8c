package exceptions

import (
	"strings"
	"studiobook-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validationMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"oneof":    "must be one of %s",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"len":      "must be exactly %s characters",
	"iso3166_1_alpha2": "must be a two-letter country code",
}

var tagsWithParams = map[string]bool{
	"oneof": true,
	"min":   true,
	"max":   true,
	"len":   true,
}

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return constvars.ErrClientCannotProcessRequest
	}

	firstErr := validationErrors[0]
	fieldName := strings.ToLower(firstErr.Field())
	tag := firstErr.Tag()

	message, ok := validationMessages[tag]
	if !ok {
		message = "is invalid"
	}
	if tagsWithParams[tag] {
		if tag == "oneof" {
			message = strings.Replace(message, "%s", strings.Join(strings.Fields(firstErr.Param()), ", "), 1)
		} else {
			message = strings.Replace(message, "%s", firstErr.Param(), 1)
		}
	}
	return fieldName + " " + message
}
