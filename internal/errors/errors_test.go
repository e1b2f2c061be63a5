package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "error with wrapped error",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "failed to read input",
				Err:     errors.New("file not found"),
			},
			expected: "input: failed to read input: file not found",
		},
		{
			name: "error without wrapped error",
			appError: &AppError{
				Type:    ErrorTypeParsing,
				Message: "invalid bencode",
				Err:     nil,
			},
			expected: "parsing: invalid bencode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	appErr := &AppError{
		Type:    ErrorTypeInput,
		Message: "test message",
		Err:     wrappedErr,
	}

	assert.Equal(t, wrappedErr, appErr.Unwrap())
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		target   error
		expected bool
	}{
		{
			name:     "same type",
			appError: &AppError{Type: ErrorTypeInput, Message: "test message"},
			target:   &AppError{Type: ErrorTypeInput, Message: "different message", Err: errors.New("some error")},
			expected: true,
		},
		{
			name:     "different type",
			appError: &AppError{Type: ErrorTypeInput, Message: "test message"},
			target:   &AppError{Type: ErrorTypeParsing, Message: "test message"},
			expected: false,
		},
		{
			name:     "not an AppError",
			appError: &AppError{Type: ErrorTypeInput, Message: "test message"},
			target:   errors.New("standard error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Is(tt.target))
		})
	}
}

func TestMalformedInputError(t *testing.T) {
	err := NewMalformedInput("missing colon", 7)

	assert.Equal(t, "malformed input at offset 7: missing colon", err.Error())
	assert.True(t, errors.Is(err, ErrMalformedInput))
	assert.False(t, errors.Is(err, ErrEmptyInput))

	wrapped := NewParsingError("failed to decode bencode", err)
	assert.True(t, errors.Is(wrapped, ErrMalformedInput))
	assert.True(t, errors.Is(wrapped, &AppError{Type: ErrorTypeParsing}))

	var malformed *MalformedInputError
	assert.True(t, errors.As(fmt.Errorf("context: %w", wrapped), &malformed))
	assert.Equal(t, 7, malformed.Offset)
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "input error",
			err:      NewInputError("failed to read file", nil),
			expected: "Input error: failed to read file",
		},
		{
			name:     "parsing error",
			err:      NewParsingError("failed to decode bencode", nil),
			expected: "Bencode parsing error: failed to decode bencode",
		},
		{
			name:     "parsing error with malformed input",
			err:      NewParsingError("failed to decode bencode", NewMalformedInput("truncated string", 2)),
			expected: "Bencode parsing error: truncated string (at byte 2)",
		},
		{
			name:     "config error",
			err:      NewConfigError("unknown key order \"random\"", ErrInvalidConfig),
			expected: "Configuration error: unknown key order \"random\"",
		},
		{
			name:     "output error",
			err:      NewOutputError("failed to write output", nil),
			expected: "Output error: failed to write output",
		},
		{
			name:     "bare malformed input",
			err:      NewMalformedInput("unrecognized tag", 0),
			expected: "Error: The input is not valid bencode: unrecognized tag (at byte 0).",
		},
		{
			name:     "standard error - empty input",
			err:      ErrEmptyInput,
			expected: "Error: The input is empty. Please provide bencoded data.",
		},
		{
			name:     "standard error - no input",
			err:      ErrNoInput,
			expected: "Error: No input provided. Pass a value, specify a file with -i or pipe data to stdin.",
		},
		{
			name:     "unknown error",
			err:      errors.New("some unknown error"),
			expected: "Error: some unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserFriendlyError(tt.err))
		})
	}
}
