package client

import (
	"errors"
	"fmt"
)

// Sentinel errors. Check with errors.Is.
var (
	// ErrInvalidURL means an endpoint could not be turned into a URL. It is a
	// programmer error and should never reach a user.
	ErrInvalidURL = errors.New("client: invalid URL")

	// ErrInvalidResponse means the server answered with something the
	// operation does not accept, e.g. 200 where a DELETE requires 204.
	ErrInvalidResponse = errors.New("client: invalid response")

	// ErrUnauthorized means the operation needs a bearer token and none was
	// available. No request was sent.
	ErrUnauthorized = errors.New("client: unauthorized")
)

// HTTPError is a server-reported failure (status >= 400). Reason comes from the
// {"error": true, "reason": "..."} body, or is "Unknown error" when the body
// does not parse.
type HTTPError struct {
	Status int
	Reason string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("client: HTTP %d: %s", e.Status, e.Reason)
}

// DecodingError means a success response did not match the expected shape,
// including a required field being absent.
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string {
	return "client: decoding response: " + e.Err.Error()
}

func (e *DecodingError) Unwrap() error { return e.Err }

// EncodingError means the request body could not be serialized. Programmer error.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return "client: encoding request: " + e.Err.Error()
}

func (e *EncodingError) Unwrap() error { return e.Err }

// NetworkError wraps a transport failure: DNS, refused connection, timeout,
// cancelled context, or a body that could not be read.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "client: network: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }
