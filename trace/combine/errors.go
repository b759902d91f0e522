package combine

import (
	"errors"
	"fmt"
)

// Errors returned by the combination engine.
var (
	ErrNoInput           = errors.New("combine: no datasets supplied")
	ErrDatasetSize       = errors.New("combine: dataset sizes are not broadcast-compatible")
	ErrUnsupportedPolicy = errors.New("combine: unsupported policy reaction")
	ErrUnknownOp         = errors.New("combine: unknown operator")

	// ErrMismatch is the common base of every MismatchError; match it with
	// errors.Is to catch any attribute mismatch.
	ErrMismatch = errors.New("combine: attribute mismatch")
)

// MismatchError reports a header attribute that differs between two records
// while its policy is set to ReactError.
type MismatchError struct {
	Attribute Attribute
	Detail    string
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("combine: %s mismatch: %s", e.Attribute, e.Detail)
}

// Unwrap makes every MismatchError match ErrMismatch via errors.Is.
func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}

// Warning reports a non-fatal attribute mismatch (policy ReactWarn). The
// engine collects warnings in encounter order and returns them alongside the
// result; a WarningHandler receives them as they occur.
type Warning struct {
	Attribute Attribute
	Message   string
}

// String formats the warning for display.
func (w Warning) String() string {
	return fmt.Sprintf("combine: %s: %s", w.Attribute, w.Message)
}
