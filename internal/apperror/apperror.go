package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the application's failure taxonomy. Services wrap
// these in an *AppError; handlers use errors.Is to decide how to respond
// (404 page, redirect with flash, etc.). None of them are fatal.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrNoSuchAccount      = errors.New("no such account")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

type AppError struct {
	Err     error  // sentinel category
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, key string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s already exists for %s", resource, key),
	}
}

// NoSuchAccount signals a login attempt for an email with no account.
// Deliberately does not echo whether the email was close to an existing one.
func NoSuchAccount() *AppError {
	return &AppError{
		Err:     ErrNoSuchAccount,
		Message: "no account exists for that email",
	}
}

// InvalidCredentials signals a login attempt with a wrong password.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "incorrect password",
	}
}

// Unauthenticated signals an operation that requires a logged-in user but
// was attempted anonymously (e.g. submitting a rating with no session).
func Unauthenticated(operation string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: fmt.Sprintf("%s requires a logged-in user", operation),
	}
}
