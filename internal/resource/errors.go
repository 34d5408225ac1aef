package resource

import (
	"fmt"
	"strings"
)

// PreconditionError reports a call that was rejected before it touched any
// state: an unknown instance id, a delete against a locked instance without
// force, a recipe naming a foreign category, or an unrecognized comparator
// name. The message always identifies the offending id, owner, or name.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return e.Msg }

// newPreconditionError builds a PreconditionError with a formatted message.
func newPreconditionError(format string, args ...any) *PreconditionError {
	return &PreconditionError{Msg: fmt.Sprintf(format, args...)}
}

// ValidationError aggregates every schema violation found while validating a
// capability map, so the caller sees the complete report at once.
type ValidationError struct {
	Category   string
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid capabilities for category '%s':\n- %s",
		e.Category, strings.Join(e.Violations, "\n- "))
}

// TypeMismatchError reports an operand or instance of the wrong concrete
// kind: a container comparator applied to a textual or non-iterable value,
// an ordering comparator across unordered kinds, or recipe serialization
// invoked against an instance of a different category.
type TypeMismatchError struct {
	Msg string
}

func (e *TypeMismatchError) Error() string { return e.Msg }

// newTypeMismatchError builds a TypeMismatchError with a formatted message.
func newTypeMismatchError(format string, args ...any) *TypeMismatchError {
	return &TypeMismatchError{Msg: fmt.Sprintf(format, args...)}
}

// CleanupError wraps a failure raised by an instance's own cleanup hook
// during deletion. The manager never swallows or translates it.
type CleanupError struct {
	InstanceID string
	Err        error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("cleanup of instance '%s' failed: %v", e.InstanceID, e.Err)
}

func (e *CleanupError) Unwrap() error { return e.Err }
