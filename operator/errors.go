package operator

import (
	"errors"
	"fmt"
)

// Errors returned by operator construction, binding, and registration.
var (
	// ErrNilSettings indicates Bind was called without settings.
	ErrNilSettings = errors.New("settings must not be nil")

	// ErrInvalidSettings indicates the settings failed validation.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrInvalidConfig indicates the operator's configuration failed
	// validation.
	ErrInvalidConfig = errors.New("invalid operator configuration")

	// ErrMissingScoreField indicates a result record lacked the metric's
	// canonical score field.
	ErrMissingScoreField = errors.New("score field missing from result")

	// ErrMisalignedResults indicates the result count did not match the
	// projected record count at the merge step.
	ErrMisalignedResults = errors.New("result count does not match record count")

	// ErrDuplicateOperator indicates a registration under an already
	// registered name.
	ErrDuplicateOperator = errors.New("operator already registered")

	// ErrUnknownOperator indicates a lookup for an unregistered name.
	ErrUnknownOperator = errors.New("unknown operator")
)

// ConfigError is a bind-time failure: absent or invalid settings, or an
// invalid operator configuration. It is fatal to that operator's binding
// and occurs before any network interaction.
type ConfigError struct {
	// Op is the operator's registry name.
	Op string

	// Err is the underlying cause.
	Err error
}

// Error returns the formatted configuration error with operator context.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("operator %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *ConfigError) Unwrap() error { return e.Err }

// EvalError is a run-time failure: the remote evaluation failed, returned a
// malformed or misaligned result, or the input table lacked a configured
// column. It is fatal to the enclosing Run call; no partial result is ever
// produced.
type EvalError struct {
	// Op is the operator's registry name.
	Op string

	// Metric is the remote metric identifier the operator evaluates.
	Metric string

	// Err is the underlying cause.
	Err error
}

// Error returns the formatted evaluation error with operator and metric
// context.
func (e *EvalError) Error() string {
	return fmt.Sprintf("operator %s: evaluation of %q failed: %v", e.Op, e.Metric, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *EvalError) Unwrap() error { return e.Err }
