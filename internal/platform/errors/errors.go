// Package errors provides error types and utilities for qdev.
// It extends the standard errors package with sentinels for the build
// orchestration failure classes and context wrapping.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes qdev distinguishes.
var (
	// ErrInvalidInput indicates a malformed command line or configuration.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnresolvableTarget indicates a target name matched no resolution rule.
	ErrUnresolvableTarget = errors.New("unresolvable target")

	// ErrManifestRead indicates a module descriptor is missing or unparsable.
	ErrManifestRead = errors.New("manifest read failed")

	// ErrProcessFailed indicates an external build exited non-zero or could not start.
	ErrProcessFailed = errors.New("external process failed")

	// ErrFullBuildFailed indicates the whole-tree build exited non-zero.
	ErrFullBuildFailed = errors.New("full build failed")
)

type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
//
// Example:
//
//	if err := reader.Read(dir); err != nil {
//	    return errors.Wrap(err, "reading pom.xml")
//	}
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: msg, cause: err}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: fmt.Sprintf(format, args...), cause: err}
}

// Is wraps errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap wraps errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// New wraps errors.New.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf wraps fmt.Errorf.
func Errorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Join wraps errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// IsInvalidInput reports whether the error is a usage or configuration error.
func IsInvalidInput(err error) bool {
	return Is(err, ErrInvalidInput)
}

// IsUnresolvableTarget reports whether a target could not be resolved.
func IsUnresolvableTarget(err error) bool {
	return Is(err, ErrUnresolvableTarget)
}

// IsManifestRead reports whether a module descriptor could not be read.
func IsManifestRead(err error) bool {
	return Is(err, ErrManifestRead)
}

// IsProcessFailed reports whether an external build failed.
func IsProcessFailed(err error) bool {
	return Is(err, ErrProcessFailed)
}

// IsFullBuildFailed reports whether the whole-tree build failed.
func IsFullBuildFailed(err error) bool {
	return Is(err, ErrFullBuildFailed)
}
