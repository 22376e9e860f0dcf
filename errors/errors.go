// Package errors provides error handling for bindgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Wrap with context
//	if err := decode(); err != nil {
//	    return errors.Wrap(err, "failed to decode model")
//	}
//
//	// Mark a failure with one of the sentinels below
//	return errors.Wrapf(errors.ErrUnsupportedType, "declaration %q", name)
//
//	// Check errors
//	if errors.Is(err, errors.ErrUnsupportedType) {
//	    // handle unsupported shape
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf   = crdb.AssertionFailedf
	IsAssertionFailure = crdb.IsAssertionFailure
)

// Sentinel errors for the generator.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrUnsupportedType indicates a type node or declaration shape the
	// generator does not know how to emit
	ErrUnsupportedType = New("unsupported type")

	// ErrInvalidModel indicates the declaration model file is malformed
	ErrInvalidModel = New("invalid declaration model")

	// ErrOutOfDate indicates a generated module differs from a fresh generation
	ErrOutOfDate = New("generated module is out of date")
)

// IsUnsupportedType checks if an error is or wraps ErrUnsupportedType
func IsUnsupportedType(err error) bool {
	return err != nil && Is(err, ErrUnsupportedType)
}

// IsInvalidModel checks if an error is or wraps ErrInvalidModel
func IsInvalidModel(err error) bool {
	return err != nil && Is(err, ErrInvalidModel)
}

// NewUnsupportedTypef creates an unsupported-type error with a formatted message
func NewUnsupportedTypef(format string, args ...interface{}) error {
	return Wrapf(ErrUnsupportedType, format, args...)
}

// NewInvalidModelf creates an invalid-model error with a formatted message
func NewInvalidModelf(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidModel, format, args...)
}
