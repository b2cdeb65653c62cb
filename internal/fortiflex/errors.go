package fortiflex

import (
	"fmt"
	"strings"
)

// HTTPError is returned when the FortiFlex API answers with a non-2xx status.
type HTTPError struct {
	URI        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fortiflex: %s returned HTTP %d: %s", e.URI, e.StatusCode, strings.TrimSpace(e.Body))
}

// RequestError is returned when the request never produced a response
// (DNS, connect, TLS, timeout, cancelled context).
type RequestError struct {
	URI string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("fortiflex: request to %s failed: %v", e.URI, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// UnexpectedError covers everything else: encoding the body, decoding a
// response that is not a JSON object, a token response without a token.
type UnexpectedError struct {
	URI string
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("fortiflex: unexpected error on %s: %v", e.URI, e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }
