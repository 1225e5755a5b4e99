// cmd/qdev/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"qdev/internal/adapters/maven"
	"qdev/internal/adapters/output"
	"qdev/internal/core/domain"
	"qdev/internal/core/usecases"
	"qdev/internal/platform/config"
	"qdev/internal/platform/errors"
	"qdev/internal/platform/logx"
	"qdev/internal/platform/ui"
)

var (
	// Set with -ldflags at build time
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// program prefixes the resume command printed after a failing subset.
const program = "qdev subset"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches the subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		config.PrintHelp(stderr)
		return 2
	}

	switch args[0] {
	case "help", "-h", "--help":
		config.PrintHelp(stdout)
		return 0
	case "version", "-v", "--version":
		config.PrintVersion(stdout, version, commit, date)
		return 0
	case "subset", "install":
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n", args[0])
		fmt.Fprintln(stderr, "Try: qdev help")
		return 2
	}

	// 1. Layered configuration (.env, file, env)
	base, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: configuration load failed: %v\n", err)
		return 2
	}

	// 2. Shared logger, scoped to this run
	logger := logx.NewWithWriter(stderr, logx.ParseLevel(os.Getenv(logx.EnvLevel))).
		With("run", uuid.NewString())

	// 3. Context canceled on SIGINT/SIGTERM only
	ctx, cancel := rootContextWithSignals()
	defer cancel()

	if args[0] == "install" {
		return runInstall(ctx, args[1:], base, logger, stdout, stderr)
	}
	return runSubset(ctx, args[1:], base, logger, stdout, stderr)
}

func runSubset(ctx context.Context, args []string, base config.Config, logger logx.Logger, stdout, stderr io.Writer) int {
	cmd, err := config.ParseSubset(args, base)
	if err != nil {
		return usageError(stderr, err)
	}
	if cmd.Help {
		config.PrintHelp(stdout)
		return 0
	}
	if cmd.Settings.Debug {
		logger.SetLevel(logx.LevelDebug)
	}

	cfg := domain.NewBuildConfig(cmd.Settings)
	if cfg.Full() && len(cmd.Targets) > 0 {
		logger.Warn("targets ignored by full build", "targets", len(cmd.Targets))
	}
	if !cfg.Full() && len(cmd.Targets) == 0 {
		return usageError(stderr, errors.Wrap(errors.ErrInvalidInput, "no targets given"))
	}

	logger.Info("qdev starting",
		"version", version,
		"root", cfg.Root(),
		"full", cfg.Full(),
		"targets", len(cmd.Targets),
	)
	logger.Debug("configuration", "effective", base.String())

	orch := usecases.NewOrchestrator(usecases.OrchestratorOptions{
		Config:        cfg,
		Runner:        maven.NewExecRunner(logger),
		Manifests:     maven.NewPOMReader(),
		Reporter:      output.NewTerminalReporter(stdout),
		Logger:        logger,
		Stdout:        stdout,
		Maven:         base.Maven,
		LogSuffix:     base.LogSuffix,
		FailureMarker: base.FailureMarker,
		Program:       program,
	})

	start := time.Now()
	report, err := orch.Run(ctx, cmd.Targets)
	elapsed := time.Since(start)

	if err != nil {
		logger.Err(err, "phase", "run", "elapsed", ui.ElapsedTime(elapsed))
		return exitCode(err)
	}

	logger.Info("qdev finished",
		"elapsed", ui.ElapsedTime(elapsed),
		"built", len(report.Outcomes),
		"failed", len(report.Failed),
	)
	return 0
}

func runInstall(ctx context.Context, args []string, base config.Config, logger logx.Logger, stdout, stderr io.Writer) int {
	cmd, err := config.ParseInstall(args, base)
	if err != nil {
		return usageError(stderr, err)
	}
	if cmd.Help {
		config.PrintHelp(stdout)
		return 0
	}
	if len(cmd.Modules) == 0 {
		return usageError(stderr, errors.Wrap(errors.ErrInvalidInput, "no modules given"))
	}
	if cmd.Settings.Debug {
		logger.SetLevel(logx.LevelDebug)
	}

	installer := usecases.NewInstaller(usecases.InstallerOptions{
		Config:   domain.NewBuildConfig(cmd.Settings),
		Runner:   maven.NewExecRunner(logger),
		Reporter: output.NewTerminalReporter(stdout),
		Logger:   logger,
		Stdout:   stdout,
		Maven:    base.Maven,
	})

	code, err := installer.Install(ctx, cmd.Modules)
	if err != nil {
		logger.Err(err, "phase", "install")
	}
	return code
}

func usageError(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	fmt.Fprintln(w, "Try: qdev help")
	return 2
}

// exitCode maps a fatal run error to the process exit code.
func exitCode(err error) int {
	var full *domain.FullBuildFailure
	switch {
	case err == nil:
		return 0
	case errors.As(err, &full):
		if full.ExitCode == 0 {
			return 1
		}
		return full.ExitCode
	case errors.IsInvalidInput(err), errors.IsUnresolvableTarget(err):
		return 2
	default:
		return 1
	}
}

// rootContextWithSignals returns a context canceled on SIGINT or SIGTERM.
// Builds have no timeout. The cancel function also releases the signal handler.
func rootContextWithSignals() (context.Context, context.CancelFunc) {
	base, baseCancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanup := func() {
		signal.Stop(ch)
		baseCancel()
	}
	return base, cleanup
}
