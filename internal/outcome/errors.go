package outcome

import (
	"errors"
	"fmt"
)

// ErrMalformedBody is matched by every MalformedBodyError.
var ErrMalformedBody = errors.New("malformed response body")

var errEmptyBody = errors.New("body is empty")

// MalformedBodyError reports a response body that did not satisfy the
// contract expected for its status code.
type MalformedBodyError struct {
	StatusCode int
	Cause      error
}

func (e *MalformedBodyError) Error() string {
	return fmt.Sprintf("status %d: %s: %v", e.StatusCode, ErrMalformedBody, e.Cause)
}

func (e *MalformedBodyError) Unwrap() error {
	return e.Cause
}

func (e *MalformedBodyError) Is(target error) bool {
	return target == ErrMalformedBody
}
