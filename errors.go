package scrub

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnknownTransformer indicates a tag names a transformer that is not in the catalog.
	ErrUnknownTransformer = errors.New("unknown transformer")

	// ErrInstantiate indicates a transformer could not be constructed.
	ErrInstantiate = errors.New("cannot instantiate transformer")

	// ErrTypeMismatch indicates a transformer cannot operate on the field's value type.
	ErrTypeMismatch = errors.New("transformer type mismatch")

	// ErrInvalidRecord indicates a declared record type that is not a struct.
	ErrInvalidRecord = errors.New("invalid record type")

	// ErrDuplicate indicates two catalog entries share a name or implementation type.
	ErrDuplicate = errors.New("duplicate transformer")

	// ErrNotRegistered indicates a registry lookup for an identity that was never supplied.
	ErrNotRegistered = errors.New("transformer not registered")

	// ErrNotSettable indicates a field that cannot be written (unexported, or the record is not addressable).
	ErrNotSettable = errors.New("field not settable")

	// ErrTransformPanic indicates a transformer or accessor panicked while processing a field.
	ErrTransformPanic = errors.New("transformer panicked")

	// ErrConfig indicates the engine configuration could not be loaded.
	ErrConfig = errors.New("invalid configuration")
)

// ConfigError represents a record type that cannot be planned.
// It is returned synchronously to the caller that triggered discovery and is never cached.
type ConfigError struct {
	Err         error  // Underlying sentinel error (ErrInstantiate, ErrUnknownTransformer, ...)
	Type        string // Record type being planned
	Field       string // Field that referenced the transformer
	Transformer string // Transformer name from the tag
	Cause       error  // Original error, if any
}

func (e *ConfigError) Error() string {
	var msg string
	switch {
	case e.Transformer != "" && e.Field != "":
		msg = fmt.Sprintf("%s %q referenced by field %s", e.Err.Error(), e.Transformer, e.Field)
	case e.Transformer != "":
		msg = fmt.Sprintf("%s %q", e.Err.Error(), e.Transformer)
	case e.Field != "":
		msg = fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	default:
		msg = e.Err.Error()
	}
	if e.Type != "" {
		msg = e.Type + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// FieldError represents a field that was skipped during application.
// Field errors never fail Apply; they are reported through SignalFieldSkipped.
type FieldError struct {
	Err         error  // Underlying sentinel error (ErrNotSettable, ErrTransformPanic)
	Field       string // Field path that was skipped
	Transformer string // Transformer that was about to run
	Cause       error  // Recovered panic value or access error
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("%s: field %s", e.Err.Error(), e.Field)
	if e.Transformer != "" {
		msg += fmt.Sprintf(" (transformer %q)", e.Transformer)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError for plan construction failures.
func newConfigError(sentinel error, typeName, field, transformer string, cause error) error {
	return &ConfigError{
		Err:         sentinel,
		Type:        typeName,
		Field:       field,
		Transformer: transformer,
		Cause:       cause,
	}
}

// newFieldError creates a FieldError for a skipped field.
func newFieldError(sentinel error, field, transformer string, cause error) *FieldError {
	return &FieldError{
		Err:         sentinel,
		Field:       field,
		Transformer: transformer,
		Cause:       cause,
	}
}
