// File: envgrove/config/errors.go
package config

import "fmt"

// MaskedValue replaces secret field values in textual output.
const MaskedValue = "********"

// SchemaError reports an invalid field registration or an inconsistent
// schema definition. It is surfaced when the schema is compiled at Build.
type SchemaError struct {
	Schema string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema %s: %s", e.Schema, e.Reason)
	}
	return fmt.Sprintf("schema %s: field %s: %s", e.Schema, e.Field, e.Reason)
}

// MissingFieldError reports a required field for which no source provided a
// value and no default exists. Key is the fully-prefixed source key.
type MissingFieldError struct {
	Key string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required variable: %s", e.Key)
}

// CastError reports a raw value that could not be converted to the field's
// declared type. Value holds the literal offending value.
type CastError struct {
	Key    string
	Value  any
	Target string
	Reason string
}

func (e *CastError) Error() string {
	msg := fmt.Sprintf("cannot cast '%v' to %s for %s", e.Value, e.Target, e.Key)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// UnsupportedTypeError reports a declared type with no casting rule.
type UnsupportedTypeError struct {
	Key  string
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type %s for %s", e.Type, e.Key)
}

// ValidationError reports a cast value that failed choices, bounds, or a
// custom predicate. Value holds the literal offending value.
type ValidationError struct {
	Key    string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Key, e.Reason)
}

// MutationError reports an external write attempt on a frozen instance.
type MutationError struct {
	Key string
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("cannot set %s: configuration is frozen", e.Key)
}

// FormatError reports a source file whose content could not be parsed.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed config file '%s': %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
