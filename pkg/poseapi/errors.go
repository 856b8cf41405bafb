package poseapi

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoFrame is returned when Compare is called with an empty frame.
	ErrNoFrame = errors.New("poseapi: empty frame")
)

// ServiceError means the service understood the request and rejected it
// with a non-2xx status. Message carries the body's "error" field when
// present, else the raw body.
type ServiceError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("poseapi: service error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound returns true if the reference pose or asana was not found (HTTP 404).
func (e *ServiceError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsServerError returns true if this is a server-side error (HTTP 5xx).
func (e *ServiceError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// TransportError means the request never completed at the network level.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("poseapi: transport: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError means the service responded but the body was not
// well-formed for the endpoint.
type ProtocolError struct {
	Err error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("poseapi: malformed response: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}
