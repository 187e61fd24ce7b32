package posapi

import (
	"errors"
	"fmt"
)

// ErrTransport is returned when the POS API gave no response at all
// (connection refused, timeout). Callers should suggest a retry.
var ErrTransport = errors.New("no response from POS API")

// ErrorKind classifies a non-success response so the caller can show the
// right user-facing message: fix the input, retry, or contact support.
type ErrorKind string

const (
	// KindBadPayload means the server rejected the request body (HTTP 400).
	KindBadPayload ErrorKind = "bad_payload"
	// KindServerFault means the server failed processing (HTTP 5xx).
	KindServerFault ErrorKind = "server_fault"
	// KindUnexpected means the response was well-formed but did not carry a
	// success result_code.
	KindUnexpected ErrorKind = "unexpected"
)

// ServerError is a response the POS API did answer, but not with success.
type ServerError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("POS API %s (http %d)", e.Kind, e.Status)
	}
	return fmt.Sprintf("POS API %s (http %d): %s", e.Kind, e.Status, e.Message)
}
