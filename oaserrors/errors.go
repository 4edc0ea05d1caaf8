// Package oaserrors provides structured error types for apitestgen.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish a document that could not be
// read or decoded from one whose data source could not be recognised.
//
// The decomposition core (walker, filter, splitter, merger) recovers locally
// from malformed or dangling references and missing containers, so these
// errors only surface for unreadable input and invalid configuration.
//
// # Usage with errors.Is
//
//	def, err := processor.Process(ctx, "api.yaml")
//	if errors.Is(err, oaserrors.ErrSource) {
//	    // not an OpenAPI document or Postman collection
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a document could not be read or decoded.
	ErrParse = errors.New("parse error")

	// ErrSource indicates the data source could not be detected or loaded.
	ErrSource = errors.New("source error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to decode a definition, fragment, or collection.
type ParseError struct {
	// Path is the file path, URL or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// SourceError represents a data source that could not be recognised or fetched.
type SourceError struct {
	// Source is the file path or URL
	Source string
	// StatusCode is the HTTP status for remote sources (0 if not applicable)
	StatusCode int
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SourceError) Error() string {
	msg := "source error"
	if e.Source != "" {
		msg += " for " + e.Source
	}
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SourceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SourceError) Is(target error) bool {
	return target == ErrSource
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
