// Package errors defines the typed errors shared by every estimator in the
// repository.
//
// All errors produced by Fit, Transform, and Predict implementations are one
// of the types below, so callers can branch with errors.As, or compare
// against the exported sentinels with errors.Is. Wrapping goes through
// cockroachdb/errors so that %+v formatting carries stack traces.
package errors

import (
	"fmt"

	cockroach "github.com/cockroachdb/errors"
)

// Sentinel errors for common failure conditions.
var (
	// ErrEmptyData indicates a fit or transform received no samples.
	ErrEmptyData = cockroach.New("empty data")

	// ErrNotFitted indicates an estimator was used before Fit completed.
	ErrNotFitted = cockroach.New("estimator is not fitted")

	// ErrDimensionMismatch indicates inputs with incompatible shapes.
	ErrDimensionMismatch = cockroach.New("dimension mismatch")

	// ErrInvalidInput indicates a request that failed boundary validation.
	ErrInvalidInput = cockroach.New("invalid input")
)

// ModelError wraps a failure inside a model operation with the operation
// name and a short description.
type ModelError struct {
	Op      string // Operation, e.g. "RandomForestRegressor.Fit"
	Message string
	Err     error
}

// NewModelError creates a ModelError wrapping cause.
func NewModelError(op, message string, cause error) *ModelError {
	return &ModelError{Op: op, Message: message, Err: cause}
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vgsales: %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("vgsales: %s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ModelError) Unwrap() error { return e.Err }

// NotFittedError indicates a method that requires a fitted estimator was
// called before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

// NewNotFittedError creates a NotFittedError for the given estimator and
// method.
func NewNotFittedError(modelName, method string) *NotFittedError {
	return &NotFittedError{ModelName: modelName, Method: method}
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("vgsales: %s.%s: estimator is not fitted; call Fit first", e.ModelName, e.Method)
}

// Unwrap lets errors.Is(err, ErrNotFitted) succeed.
func (e *NotFittedError) Unwrap() error { return ErrNotFitted }

// DimensionError indicates an input whose shape disagrees with the shape
// seen at fit time.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 = rows, 1 = columns
}

// NewDimensionError creates a DimensionError.
func NewDimensionError(op string, expected, got, axis int) *DimensionError {
	return &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("vgsales: %s: dimension mismatch on axis %d: expected %d, got %d",
		e.Op, e.Axis, e.Expected, e.Got)
}

// Unwrap lets errors.Is(err, ErrDimensionMismatch) succeed.
func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }

// ValueError indicates an input value an operation cannot work with.
type ValueError struct {
	Op      string
	Message string
}

// NewValueError creates a ValueError.
func NewValueError(op, message string) *ValueError {
	return &ValueError{Op: op, Message: message}
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("vgsales: %s: %s", e.Op, e.Message)
}

// ValidationError indicates a prediction request field that failed boundary
// validation. It rejects the single request; the pipeline stays usable.
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("vgsales: invalid %s: %s (got %q)", e.Field, e.Message, fmt.Sprint(e.Value))
}

// Unwrap lets errors.Is(err, ErrInvalidInput) succeed.
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Wrap annotates err with a message, preserving the chain and stack trace.
func Wrap(err error, message string) error {
	return cockroach.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return cockroach.Wrapf(err, format, args...)
}

// New creates a plain error with a stack trace attached.
func New(message string) error { return cockroach.New(message) }

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return cockroach.Is(err, target) }

// As finds the first error in err's chain matching target.
func As(err error, target interface{}) bool { return cockroach.As(err, target) }

// Recover converts a panic inside an estimator method into a returned
// error. Use as:
//
//	func (e *Estimator) Fit(...) (err error) {
//		defer errors.Recover(&err, "Estimator.Fit")
//		...
//	}
func Recover(errp *error, op string) {
	if r := recover(); r != nil {
		if err, ok := r.(error); ok {
			*errp = NewModelError(op, "panic during operation", err)
			return
		}
		*errp = NewModelError(op, "panic during operation", fmt.Errorf("%v", r))
	}
}
