package vintage

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrParse indicates raw input could not be captured into a Content at all.
	ErrParse = errors.New("parse failed")

	// ErrMismatch indicates a decode attempt failed because the content's
	// structure does not match the attempted type.
	ErrMismatch = errors.New("structural mismatch")

	// ErrConvert indicates a converter rejected a structurally valid legacy value.
	ErrConvert = errors.New("convert failed")

	// ErrNoMatch indicates every registration, current included, failed.
	ErrNoMatch = errors.New("no matching version")

	// ErrInvalidRegistration indicates a resolver was built from a malformed
	// registration list.
	ErrInvalidRegistration = errors.New("invalid registration")

	// ErrMissingResolver indicates a versioned field has no resolver registered.
	ErrMissingResolver = errors.New("missing resolver")

	// ErrMissingField indicates a versioned field was absent from the payload.
	ErrMissingField = errors.New("missing field")
)

// ParseError reports input that could not be captured. Resolution never
// starts on content that failed to parse.
type ParseError struct {
	Cause error // Original error from the codec
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", ErrParse.Error(), e.Cause)
	}
	return ErrParse.Error()
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// MismatchError reports one failed structural decode attempt. Resolvers
// absorb these during trial decoding; they surface only from Reinterpret or
// inside NoMatchError attempt diagnostics.
type MismatchError struct {
	TypeName string // Type the content was decoded into
	Cause    error  // Original error from the codec
}

func (e *MismatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s for %s: %v", ErrMismatch.Error(), e.TypeName, e.Cause)
	}
	return fmt.Sprintf("%s for %s", ErrMismatch.Error(), e.TypeName)
}

func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}

// ConvertError reports a converter rejecting a structurally valid legacy
// value. Absorbed during trial decoding unless the resolver runs with
// StrictConversion.
type ConvertError struct {
	Tag   Tag   // Registration whose converter failed
	Cause error // Original error from the converter
}

func (e *ConvertError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s for version %q: %v", ErrConvert.Error(), e.Tag, e.Cause)
	}
	return fmt.Sprintf("%s for version %q", ErrConvert.Error(), e.Tag)
}

func (e *ConvertError) Unwrap() error {
	return ErrConvert
}

// Attempt records one failed registration trial for diagnostics.
type Attempt struct {
	Tag Tag   // Registration that was tried
	Err error // Why it did not match
}

// NoMatchError reports exhaustion: no registration, current included,
// produced a value for the content.
type NoMatchError struct {
	TypeName string    // Target type of the resolution
	Attempts []Attempt // Per-registration failure detail, in trial order
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("%s for %s: %d registrations tried", ErrNoMatch.Error(), e.TypeName, len(e.Attempts))
}

func (e *NoMatchError) Unwrap() error {
	return ErrNoMatch
}

// ConfigError represents a resolver or processor configuration error.
// It wraps a sentinel error with context about the field or registration.
type ConfigError struct {
	Err    error  // Underlying sentinel error (ErrMissingResolver, etc.)
	Field  string // Field name that triggered the error
	Detail string // Resolver name, tag, or other specifics
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Detail != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Err.Error(), e.Detail, e.Field)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Detail)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError for configuration failures.
func newConfigError(sentinel error, field, detail string) error {
	return &ConfigError{
		Err:    sentinel,
		Field:  field,
		Detail: detail,
	}
}
