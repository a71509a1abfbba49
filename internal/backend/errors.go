package backend

import (
	"errors"
	"fmt"
)

// ErrMalformed marks responses that do not match the canonical
// {success, data, message} envelope. The caller renders an error state
// instead of guessing at alternate shapes.
var ErrMalformed = errors.New("malformed response envelope")

// APIError is a backend-reported failure: the HTTP status plus whatever
// message the envelope carried.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned http %d", e.StatusCode)
}

// AsAPIError unwraps err into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
