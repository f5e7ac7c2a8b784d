// Package errors provides the error types shared by the catalog, the generators
// and the explorer. Typed errors support errors.Is against the sentinels so
// callers (CLI, HTTP server) can map them without string matching.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupported indicates a generator type, language or format that is not registered
	ErrUnsupported = errors.New("unsupported")

	// ErrAPIKeyRequired is returned by the explorer when no bearer token was supplied
	ErrAPIKeyRequired = errors.New("API key is required. Please enter your API key to test this endpoint.")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
	Err     error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, msg)
	}
	return fmt.Sprintf("validation failed: %s", msg)
}

// Unwrap implements errors.Unwrap
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// UnsupportedError reports a value outside a closed set (generator type, language, format).
type UnsupportedError struct {
	Kind      string
	Value     string
	Supported []string
}

// Error implements the error interface
func (e *UnsupportedError) Error() string {
	if len(e.Supported) > 0 {
		return fmt.Sprintf("unsupported %s: %s (supported: %v)", e.Kind, e.Value, e.Supported)
	}
	return fmt.Sprintf("unsupported %s: %s", e.Kind, e.Value)
}

// Is implements errors.Is support
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// NewUnsupportedError creates a new UnsupportedError
func NewUnsupportedError(kind, value string, supported ...string) *UnsupportedError {
	return &UnsupportedError{Kind: kind, Value: value, Supported: supported}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	var cerr *ConfigError
	return errors.As(err, &cerr)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnsupported checks if an error reports an unsupported value
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

// IsAPIKeyRequired checks if an error is the explorer's missing-token error
func IsAPIKeyRequired(err error) bool {
	return errors.Is(err, ErrAPIKeyRequired)
}
