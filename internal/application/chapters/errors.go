package chapters

import (
	"errors"
	"net/http"

	"github.com/aescanero/gita/pkg/adapters/scripture"
)

// InternalErrorMessage is the client-facing text for unexpected failures
const InternalErrorMessage = "Internal server error"

// ErrorStatus maps a lookup error to the HTTP status and message shown to clients:
// invalid input is a 400, upstream errors keep their status and message, and
// anything else is a generic 500.
func ErrorStatus(err error) (int, string) {
	if errors.Is(err, ErrInvalidChapter) {
		return http.StatusBadRequest, InvalidChapterMessage
	}

	var apiErr *scripture.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, apiErr.Message
	}

	return http.StatusInternalServerError, InternalErrorMessage
}
