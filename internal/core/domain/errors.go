// internal/core/domain/errors.go
package domain

import (
	"fmt"
	"strings"

	"qdev/internal/platform/errors"
)

// UnresolvableTargetError reports a user target that matched none of the
// resolution rules. It is fatal and raised before any build starts.
type UnresolvableTargetError struct {
	Input string
	Root  string
}

func (e *UnresolvableTargetError) Error() string {
	return fmt.Sprintf("%s is neither an integration test nor an extension (searched under %s)", e.Input, e.Root)
}

func (e *UnresolvableTargetError) Unwrap() error { return errors.ErrUnresolvableTarget }

// DuplicateNameError reports two integration tests that share a directory
// name. Both would write <root>/<name>.out, so the run is refused before any
// build starts.
type DuplicateNameError struct {
	Input string
	Path  string
	Other string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s resolves to %s, which has the same directory name as %s; build them in separate runs",
		e.Input, e.Path, e.Other)
}

func (e *DuplicateNameError) Unwrap() error { return errors.ErrInvalidInput }

// OutsideRootError reports an extension that lies outside the tree root and
// so cannot be selected from the root reactor.
type OutsideRootError struct {
	Input string
	Path  string
	Root  string
}

func (e *OutsideRootError) Error() string {
	return fmt.Sprintf("extension %s (%s) is outside %s", e.Input, e.Path, e.Root)
}

func (e *OutsideRootError) Unwrap() error { return errors.ErrInvalidInput }

// ManifestReadError reports a module descriptor that is missing or unparsable.
type ManifestReadError struct {
	Path string
	Err  error
}

func (e *ManifestReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ManifestReadError) Unwrap() []error { return []error{errors.ErrManifestRead, e.Err} }

// ExternalProcessFailure is recorded on a BuildOutcome when an invocation
// exits non-zero or cannot be started. It is never returned to the caller of
// a subset build.
type ExternalProcessFailure struct {
	Command  []string
	Dir      string
	ExitCode int
	Err      error
}

func (e *ExternalProcessFailure) Error() string {
	cmd := strings.Join(e.Command, " ")
	if e.Err != nil {
		return fmt.Sprintf("%s in %s: %v", cmd, e.Dir, e.Err)
	}
	return fmt.Sprintf("%s in %s exited with code %d", cmd, e.Dir, e.ExitCode)
}

func (e *ExternalProcessFailure) Unwrap() []error {
	if e.Err != nil {
		return []error{errors.ErrProcessFailed, e.Err}
	}
	return []error{errors.ErrProcessFailed}
}

// FullBuildFailure is the one build failure that aborts the host process.
type FullBuildFailure struct {
	ExitCode int
	Err      error
}

func (e *FullBuildFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("full build could not run: %v", e.Err)
	}
	return fmt.Sprintf("full build exited with code %d", e.ExitCode)
}

func (e *FullBuildFailure) Unwrap() []error {
	if e.Err != nil {
		return []error{errors.ErrFullBuildFailed, e.Err}
	}
	return []error{errors.ErrFullBuildFailed}
}
