package oaserrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ParseError{
			Path:    "api.yaml",
			Line:    42,
			Message: "invalid fragment",
			Cause:   errors.New("underlying error"),
		}
		assert.Equal(t, "parse error in api.yaml at line 42: invalid fragment: underlying error", err.Error())
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		assert.Equal(t, "parse error", (&ParseError{}).Error())
	})

	t.Run("Is matches ErrParse only", func(t *testing.T) {
		err := &ParseError{Message: "test"}
		assert.ErrorIs(t, err, ErrParse)
		assert.NotErrorIs(t, err, ErrSource)
		assert.NotErrorIs(t, err, ErrConfig)
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		assert.ErrorIs(t, err, cause)
		assert.Nil(t, (&ParseError{}).Unwrap())
	})

	t.Run("As extracts ParseError through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("splitter: %w", &ParseError{Path: "spec.json"})
		var pe *ParseError
		assert.True(t, errors.As(wrapped, &pe))
		assert.Equal(t, "spec.json", pe.Path)
	})
}

func TestSourceError(t *testing.T) {
	t.Run("Error message with status", func(t *testing.T) {
		err := &SourceError{Source: "https://example.com/api.yaml", StatusCode: 404, Message: "fetch failed"}
		assert.Equal(t, "source error for https://example.com/api.yaml (HTTP 404): fetch failed", err.Error())
	})

	t.Run("Error message with cause", func(t *testing.T) {
		err := &SourceError{Source: "missing.json", Cause: errors.New("no such file")}
		assert.Equal(t, "source error for missing.json: no such file", err.Error())
	})

	t.Run("Is matches ErrSource only", func(t *testing.T) {
		err := &SourceError{}
		assert.ErrorIs(t, err, ErrSource)
		assert.NotErrorIs(t, err, ErrParse)
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := &ConfigError{Option: "concurrency", Value: -1, Message: "must be positive"}
		assert.Equal(t, "configuration error for concurrency (value: -1): must be positive", err.Error())
	})

	t.Run("Is matches ErrConfig only", func(t *testing.T) {
		err := &ConfigError{}
		assert.ErrorIs(t, err, ErrConfig)
		assert.NotErrorIs(t, err, ErrSource)
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("bad duration")
		assert.ErrorIs(t, &ConfigError{Cause: cause}, cause)
	})
}
