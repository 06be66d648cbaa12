package chapters

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// MinChapter is the first chapter number
	MinChapter = 1
	// MaxChapter is the last chapter number
	MaxChapter = 18
)

// InvalidChapterMessage is the client-facing text for ErrInvalidChapter
const InvalidChapterMessage = "Chapter number (1–18) is required and must be valid."

// decimalNumber matches plain decimal notation only
var decimalNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ErrInvalidChapter is returned for missing, non-numeric or out-of-range chapters
var ErrInvalidChapter = errors.New("invalid chapter")

// ValidateChapter checks that n is within [MinChapter, MaxChapter]
func ValidateChapter(n int) error {
	if n < MinChapter || n > MaxChapter {
		return fmt.Errorf("%w: got %d", ErrInvalidChapter, n)
	}
	return nil
}

// ParseChapter converts a raw JSON value into a chapter number.
//
// Both JSON numbers and numeric strings are accepted since HTML forms submit
// strings. Fractions, booleans and anything else are rejected.
func ParseChapter(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, fmt.Errorf("%w: missing", ErrInvalidChapter)
	}

	var text string
	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidChapter, err)
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		text = string(raw)
	default:
		return 0, fmt.Errorf("%w: not a number", ErrInvalidChapter)
	}

	return ParseChapterString(text)
}

// ParseChapterString converts form or CLI input into a chapter number
func ParseChapterString(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: missing", ErrInvalidChapter)
	}

	if !decimalNumber.MatchString(s) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidChapter, s)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidChapter, s)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidChapter, s)
	}
	if f < MinChapter || f > MaxChapter {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidChapter, s)
	}

	return int(f), nil
}
