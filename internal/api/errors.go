package api

import (
	"errors"
	"fmt"
)

// ValidationError indicates that a required field was missing or empty.
// It is raised before any network call is made.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// IsValidationError reports whether err (or any error in its chain) is a
// ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AuthRequired indicates that an authenticated operation was attempted
// without a valid session. Like ValidationError it is resolved before
// any request is issued.
type AuthRequired struct{}

func (e *AuthRequired) Error() string {
	return "not signed in"
}

// IsAuthRequired reports whether err is an AuthRequired error.
func IsAuthRequired(err error) bool {
	var ar *AuthRequired
	return errors.As(err, &ar)
}

// AuthRejected indicates that the server declined the supplied
// credentials during sign-in or sign-up. Message carries the
// server-provided reason when one was present in the error payload.
type AuthRejected struct {
	Message string
}

func (e *AuthRejected) Error() string {
	return fmt.Sprintf("auth rejected: %s", e.Message)
}

// IsAuthRejected reports whether err is an AuthRejected error.
func IsAuthRejected(err error) bool {
	var ar *AuthRejected
	return errors.As(err, &ar)
}

// RequestError indicates a non-success response from the server on an
// authenticated endpoint. Message is the server-provided reason if the
// error payload contained one.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("unexpected status %d", e.Status)
}

// NetworkError indicates that a request could not complete at the
// transport level.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err is a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// DecodeError indicates a malformed response payload from the server.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError reports whether err is a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// UserMessage extracts a single human-readable message from err for
// display in the status bar. Server-provided messages win; transport
// and decode failures collapse to a generic line.
func UserMessage(err error, fallback string) string {
	var rejected *AuthRejected
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	if IsAuthRequired(err) {
		return "You must be logged in to do that."
	}
	return fallback
}
