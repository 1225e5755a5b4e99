// Package maven adapts the Maven command line and project descriptors to the
// core ports.
package maven

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"qdev/internal/platform/logx"
)

// ExecRunner runs commands as child processes and waits for them. It has no
// timeout: a hung build blocks until the process is killed.
type ExecRunner struct {
	logger logx.Logger
}

func NewExecRunner(logger logx.Logger) *ExecRunner {
	if logger == nil {
		logger = logx.Discard()
	}
	return &ExecRunner{logger: logger.With("component", "runner")}
}

// Run starts command in dir with stdout and stderr both written to sink.
func (r *ExecRunner) Run(ctx context.Context, command []string, dir string, sink io.Writer) (int, error) {
	if len(command) == 0 {
		return -1, fmt.Errorf("empty command")
	}

	path, err := exec.LookPath(command[0])
	if err != nil {
		return -1, fmt.Errorf("%s not found in PATH: %w", command[0], err)
	}

	cmd := exec.CommandContext(ctx, path, command[1:]...)
	cmd.Dir = dir
	cmd.Stdout = sink
	cmd.Stderr = sink

	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("failed to start process: %w", err)
	}
	r.logger.Debug("subprocess started", "pid", cmd.Process.Pid, "dir", dir)

	err = cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("waiting for process: %w", err)
}
