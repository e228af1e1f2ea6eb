package schema

import (
	"errors"
	"fmt"
)

// Common schema errors
var (
	// ErrInvalidSchema is returned when a schema definition fails to parse
	// or fails validation at the requested strictness.
	ErrInvalidSchema = errors.New("schema: invalid schema")

	// ErrUnsupportedOperation is returned when an operation is requested
	// for a format that does not support it, such as the generic document
	// view of a protobuf schema.
	ErrUnsupportedOperation = errors.New("schema: operation not supported for this format")

	// ErrUnknownFormat is returned when an unrecognized schema format
	// reaches the parse dispatch. It indicates a caller bug (for example a
	// new format added without adapter wiring), not bad user input, and
	// must not be retried.
	ErrUnknownFormat = errors.New("schema: unknown schema format")
)

// InvalidSchemaError carries the format of the offending schema and the
// original parser failure. Every adapter failure is wrapped in this type
// before it crosses the parse boundary, so parser-internal error types
// never reach callers directly.
type InvalidSchemaError struct {
	Format Format
	cause  error
}

func (e *InvalidSchemaError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("schema: invalid %s schema", e.Format)
	}
	return fmt.Sprintf("schema: invalid %s schema: %v", e.Format, e.cause)
}

// Unwrap returns the underlying parser failure for diagnostics.
func (e *InvalidSchemaError) Unwrap() error { return e.cause }

// Is reports a match against ErrInvalidSchema so that errors.Is sees one
// shared error kind regardless of which parser produced the failure.
func (e *InvalidSchemaError) Is(target error) bool { return target == ErrInvalidSchema }

func invalidSchema(format Format, cause error) error {
	return &InvalidSchemaError{Format: format, cause: cause}
}

// IsInvalidSchema checks if the error marks a schema that failed parsing
// or validation. Such errors are recoverable: reject the input, never
// partially store it.
func IsInvalidSchema(err error) bool {
	return errors.Is(err, ErrInvalidSchema)
}

// IsUnsupportedOperation checks if the error marks an operation that the
// schema's format does not provide.
func IsUnsupportedOperation(err error) bool {
	return errors.Is(err, ErrUnsupportedOperation)
}

// IsUnknownFormat checks if the error was caused by an unrecognized
// format value reaching the parse dispatch.
func IsUnknownFormat(err error) bool {
	return errors.Is(err, ErrUnknownFormat)
}
