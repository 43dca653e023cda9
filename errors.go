package main

import (
	"errors"
	"fmt"
)

// ValidationError reports a structurally invalid evaluation request.
// It is always the caller's fault and maps to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConfigMissingError reports that the sub-configuration for the declared
// mode was not supplied. It unwraps to a ValidationError.
type ConfigMissingError struct {
	Mode EvaluationMode
}

func (e *ConfigMissingError) Error() string {
	switch e.Mode {
	case ModeCompare:
		return "Compare configuration missing"
	case ModeJury:
		return "Jury configuration missing"
	default:
		return fmt.Sprintf("%s configuration missing", e.Mode)
	}
}

// Unwrap lets errors.As match a missing config as a ValidationError.
func (e *ConfigMissingError) Unwrap() error {
	return &ValidationError{Message: e.Error()}
}

// SchemaError reports a completion response that did not have the
// expected choices[0].message.content shape.
type SchemaError struct {
	Message string
	Err     error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// UpstreamError reports a non-success HTTP status from the completion
// endpoint.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("LLM service returned status %d: %s", e.StatusCode, e.Body)
}

// UnsupportedModeError reports a mode outside the closed set.
type UnsupportedModeError struct {
	Mode EvaluationMode
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("Unsupported evaluation mode: %s", e.Mode)
}

// IsClientError reports whether err should be surfaced to the caller as a
// 400. SchemaError counts too, although the upstream produced it.
func IsClientError(err error) bool {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return true
	}
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}
