// Package server provides the HTTP REST API for ResuMix.
package server

import (
	"fmt"
	"net/http"
)

// ErrUserNotFound indicates the uid has no account.
type ErrUserNotFound struct {
	UID string
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UID)
}

// ErrPasswordIncorrect indicates a failed password check.
type ErrPasswordIncorrect struct{}

func (e *ErrPasswordIncorrect) Error() string {
	return "password incorrect"
}

// ErrUniqueViolation indicates the uid or email is already registered.
type ErrUniqueViolation struct{}

func (e *ErrUniqueViolation) Error() string {
	return "uid or email unique violation"
}

// ErrAuthTypeMismatch indicates the account exists under a different
// authentication method.
type ErrAuthTypeMismatch struct {
	UID      string
	AuthType string
}

func (e *ErrAuthTypeMismatch) Error() string {
	return fmt.Sprintf("auth type mismatch for %s: account uses %s", e.UID, e.AuthType)
}

// ErrInvalidToken indicates a missing, malformed, expired, or forged token.
type ErrInvalidToken struct {
	Reason string
}

func (e *ErrInvalidToken) Error() string {
	return "invalid token: " + e.Reason
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return "validation error: " + e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrUniqueViolation:
		return http.StatusConflict
	case *ErrPasswordIncorrect, *ErrAuthTypeMismatch, *ErrInvalidToken:
		return http.StatusUnauthorized
	case *ErrUserNotFound:
		return http.StatusBadRequest
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// DetailStatus returns the detail status string the client's error
// taxonomy keys on. Unknown errors map to a generic tag so internals
// never leak onto the wire.
func DetailStatus(err error) string {
	switch e := err.(type) {
	case *ErrUserNotFound:
		return "user not found"
	case *ErrPasswordIncorrect:
		return "password incorrect"
	case *ErrUniqueViolation:
		return "uid or email unique violation"
	case *ErrAuthTypeMismatch:
		return "auth type mismatch"
	case *ErrInvalidToken:
		return "invalid token"
	case *ErrValidation:
		return e.Message
	default:
		return "internal error"
	}
}
