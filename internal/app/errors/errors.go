package errors

import (
	"fmt"
)

// Upload and request errors. Messages are shown to the user verbatim.
var (
	ErrNotAudio     = New("Por favor selecciona un archivo de audio válido")
	ErrFileTooLarge = New("El archivo es muy grande. El límite es 25MB")
	ErrEmptyFile    = New("El archivo de audio está vacío")
	ErrMissingInput = New("Por favor selecciona un archivo y proporciona tu API key")

	// Provider errors
	ErrProviderNotFound = New("provider not found")
	ErrUpstream         = New("transcription request failed")

	// Store errors
	ErrNotFound        = New("not found")
	ErrHistoryDisabled = New("transcription history is disabled")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Message returns the error message without the wrapped cause.
func (e *Error) Message() string {
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}
