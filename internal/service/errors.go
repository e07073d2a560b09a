package service

import (
	"errors"
	"strings"
)

// Domain errors surfaced to the HTTP boundary. Anything not listed here
// is treated as a storage failure and never echoed to clients verbatim.
var (
	// ErrInvalidCredentials covers unknown username, wrong password and
	// bad/expired session tokens alike; callers get no further detail.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound means an operation referenced a product id that does
	// not exist.
	ErrNotFound = errors.New("product not found")
)

// ValidationError carries every violated rule from a single submission.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
