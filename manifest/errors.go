package manifest

import (
	"fmt"
	"strings"

	"github.com/slipway-dev/slipway/domain/model"
)

// ParseErrorKind classifies parse failures.
type ParseErrorKind string

const (
	// MalformedDocument indicates a document that could not be decoded into
	// a typed descriptor.
	MalformedDocument ParseErrorKind = "MalformedDocument"
	// UnknownKind indicates a document whose kind discriminator names no
	// supported descriptor type.
	UnknownKind ParseErrorKind = "UnknownKind"
)

// ParseError reports a failed document decode. Parsing is deterministic;
// a parse failure aborts the whole load and retrying does not help.
type ParseError struct {
	Kind ParseErrorKind
	// Message describes the failure.
	Message string
	// Path is the source file the document was read from, if any.
	Path string
	// Index is the 1-based document position within the source.
	Index int
	// Err is the underlying decode error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("manifest parse error: %s%s", e.Message, location(e.Path, e.Index))
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationErrorKind classifies validation failures.
type ValidationErrorKind string

const (
	// MissingField indicates a required field that is absent or empty.
	MissingField ValidationErrorKind = "MissingField"
	// InvalidValue indicates a field whose value violates its format rules.
	InvalidValue ValidationErrorKind = "InvalidValue"
	// Duplicate indicates a name that collides with an earlier declaration.
	Duplicate ValidationErrorKind = "Duplicate"
	// DanglingReference indicates a reference that resolves to nothing, such
	// as a service targetPort with no matching containerPort or a volume
	// mount naming no declared volume.
	DanglingReference ValidationErrorKind = "DanglingReference"
	// SelectorMismatch indicates a deployment selector that does not match
	// its own pod template labels.
	SelectorMismatch ValidationErrorKind = "SelectorMismatch"
	// UnsupportedVersion indicates an apiVersion outside the supported set
	// for the document kind.
	UnsupportedVersion ValidationErrorKind = "UnsupportedVersion"
)

// ValidationError reports a constraint violation in a parsed document.
type ValidationError struct {
	Kind ValidationErrorKind
	// Key identifies the offending document.
	Key model.Key
	// Field is the path of the offending field, e.g. "spec.ports[0].targetPort".
	Field string
	// Message describes the violation.
	Message string
	// Path is the source file the document was read from, if any.
	Path string
	// Index is the 1-based document position within the source.
	Index int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q validation error: %s%s",
		strings.ToLower(string(e.Key.Kind)), e.Key.NamespacedName(), e.Message, location(e.Path, e.Index))
}

// location renders the document source position for error messages.
func location(path string, index int) string {
	if path == "" {
		return ""
	}
	if index > 0 {
		return fmt.Sprintf(" from %s (document %d)", path, index)
	}
	return fmt.Sprintf(" from %s", path)
}
