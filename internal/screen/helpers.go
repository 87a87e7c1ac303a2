package screen

import (
	"errors"
	"unicode"

	"biblio-cli/internal/api"
)

// errMessage prefers the server-supplied message of an *api.APIError and
// falls back to a generic one for transport failures.
func errMessage(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func capitalizeFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
