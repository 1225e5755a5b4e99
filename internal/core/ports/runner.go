// internal/core/ports/runner.go
package ports

import (
	"context"
	"io"
)

// Runner executes one external command and blocks until it exits.
//
// command[0] is the executable. Standard output and standard error both go to
// sink. A non-zero exit is reported through exitCode with a nil error; err is
// reserved for processes that could not be started or waited on.
type Runner interface {
	Run(ctx context.Context, command []string, dir string, sink io.Writer) (exitCode int, err error)
}
