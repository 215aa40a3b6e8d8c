package exceptions

import "net/http"

func ErrInvalidAPIKey(err error) error {
	return BuildNewCustomError(err, http.StatusUnauthorized, "Invalid API key", "INVALID_API_KEY")
}

func ErrAPIKeyRequired(err error) error {
	return BuildNewCustomError(err, http.StatusUnauthorized, "API key is required", "API_KEY_REQUIRED")
}
