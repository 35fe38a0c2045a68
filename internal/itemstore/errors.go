package itemstore

import (
	"errors"
	"fmt"
)

// FetchError is returned when a call does not get a 2xx response, either
// because the transport failed (Err set) or the server refused (StatusCode set).
type FetchError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s: %s %s: status %d: %s", e.Op, e.Method, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %s %s: status %d", e.Op, e.Method, e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError is returned when a 2xx body is not valid item data.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func IsFetch(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// StatusCode returns the HTTP status carried by a FetchError, or 0.
func StatusCode(err error) int {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.StatusCode
	}
	return 0
}
