// internal/core/usecases/orchestrator.go
package usecases

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"qdev/internal/core/domain"
	"qdev/internal/core/ports"
	"qdev/internal/platform/errors"
	"qdev/internal/platform/logx"
)

// Orchestrator runs a subset (or whole-tree) build one invocation at a time.
// Builds are never parallelized: they share the local Maven repository, and
// Maven's own -T flag is the way to speed a single build up.
//
// The Orchestrator is the only component that creates or deletes log files.
type Orchestrator struct {
	cfg       domain.BuildConfig
	runner    ports.Runner
	manifests ports.ManifestReader
	reporter  ports.Reporter
	logger    logx.Logger
	stdout    io.Writer

	resolver *Resolver
	scanner  *LogScanner

	maven     string
	logSuffix string
	program   string
}

// OrchestratorOptions configures the orchestrator.
type OrchestratorOptions struct {
	Config    domain.BuildConfig
	Runner    ports.Runner
	Manifests ports.ManifestReader
	Reporter  ports.Reporter
	Logger    logx.Logger

	// Stdout receives a live copy of every build's output. Defaults to os.Stdout.
	Stdout io.Writer

	// Maven is the build tool executable. Defaults to "mvn".
	Maven string

	LogSuffix     string
	FailureMarker string

	// Program prefixes the printed resume command.
	Program string
}

// NewOrchestrator creates a new orchestrator.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Maven == "" {
		opts.Maven = "mvn"
	}
	if opts.LogSuffix == "" {
		opts.LogSuffix = DefaultLogSuffix
	}
	if opts.Reporter == nil {
		opts.Reporter = nopReporter{}
	}

	logger := opts.Logger.With("component", "orchestrator")
	return &Orchestrator{
		cfg:       opts.Config,
		runner:    opts.Runner,
		manifests: opts.Manifests,
		reporter:  opts.Reporter,
		logger:    logger,
		stdout:    opts.Stdout,
		resolver:  NewResolver(opts.Config.Root(), opts.Logger),
		scanner:   NewLogScanner(opts.FailureMarker),
		maven:     opts.Maven,
		logSuffix: opts.LogSuffix,
		program:   opts.Program,
	}
}

// Run executes the build the configuration asks for. With Full set it runs
// RunFull and returns an empty report. Otherwise it resolves raw, builds the
// subset and reports; per-module failures end up in the report, never in the
// returned error.
func (o *Orchestrator) Run(ctx context.Context, raw []string) (domain.Report, error) {
	if o.cfg.Full() {
		return domain.Report{}, o.RunFull(ctx)
	}
	return o.RunSubset(ctx, raw)
}

// RunFull rebuilds the whole tree in a single invocation at the root. Its
// failure is fatal: the returned *domain.FullBuildFailure carries the exit code.
func (o *Orchestrator) RunFull(ctx context.Context) error {
	root := o.cfg.Root()
	o.logger.Info("full build starting", "root", root)

	start := time.Now()
	code, err := o.invoke(ctx, root, ComposeFull(o.cfg), o.stdout)
	if err != nil {
		return &domain.FullBuildFailure{ExitCode: 1, Err: err}
	}
	if code != 0 {
		return &domain.FullBuildFailure{ExitCode: code}
	}

	o.logger.Info("full build finished", "duration", time.Since(start).Round(time.Second))
	return nil
}

// RunSubset resolves raw, installs the extensions in one batch, builds each
// integration test into its own log, then scans, prunes and reports.
func (o *Orchestrator) RunSubset(ctx context.Context, raw []string) (domain.Report, error) {
	if len(raw) == 0 {
		return domain.Report{}, errors.Wrap(errors.ErrInvalidInput, "no targets given")
	}

	targets, err := o.resolver.Resolve(raw)
	if err != nil {
		return domain.Report{}, err
	}
	o.logger.Info("targets resolved",
		"extensions", len(targets.Extensions),
		"integration_tests", len(targets.IntegrationTests),
	)

	report := domain.Report{Targets: targets}

	if len(targets.Extensions) > 0 {
		report.ExtensionsExitCode = o.installExtensions(ctx, targets.Extensions)
	}

	for _, it := range targets.IntegrationTests {
		report.Outcomes = append(report.Outcomes, o.buildIntegrationTest(ctx, it))
	}

	report.Failed = o.scanAndPrune(report.Outcomes)

	if report.HasFailures() {
		planner := NewResumePlanner(ResumePlannerOptions{
			Targets:   targets,
			Manifests: o.manifests,
			Config:    o.cfg,
			LogSuffix: o.logSuffix,
			Program:   o.program,
			Logger:    o.logger,
		})
		plan := planner.Plan(report.Failed)
		if !plan.Empty() {
			report.Plan = &plan
		}
	}

	o.reporter.Failures(report.Failed, report.Plan)
	o.logger.Info("subset build finished",
		"built", len(report.Outcomes),
		"failed", len(report.Failed),
	)
	return report, nil
}

// installExtensions has no per-module log: extensions are not scanned.
func (o *Orchestrator) installExtensions(ctx context.Context, extensions []domain.ResolvedTarget) int {
	args := ComposeExtensionBatch(o.reactorProjects(extensions), o.cfg)
	code, err := o.invoke(ctx, o.cfg.Root(), args, o.stdout)
	if err != nil {
		o.logger.Err(err, "phase", "extensions")
		return -1
	}
	if code != 0 {
		o.logger.Warn("extension install failed, continuing", "exit_code", code)
	}
	return code
}

// reactorProjects lists every extension directory followed by the modules it
// aggregates, depth first. Maven 3 selects only the aggregator pom for a -pl
// entry, so runtime/ and deployment/ have to be named too. A directory whose
// descriptor cannot be read is selected alone.
func (o *Orchestrator) reactorProjects(extensions []domain.ResolvedTarget) []string {
	var projects []string
	seen := make(map[string]bool)

	var walk func(dir string)
	walk = func(dir string) {
		if seen[dir] {
			return
		}
		seen[dir] = true
		projects = append(projects, dir)

		children, err := o.manifests.Modules(dir)
		if err != nil {
			o.logger.Warn("module list unreadable, selecting the directory alone", "dir", dir, "error", err.Error())
			return
		}
		for _, child := range children {
			childDir := filepath.Join(dir, filepath.FromSlash(child))
			if strings.HasSuffix(childDir, ".xml") {
				childDir = filepath.Dir(childDir)
			}
			if !isDir(childDir) {
				o.logger.Warn("declared module not found, skipping", "parent", dir, "module", child)
				continue
			}
			walk(childDir)
		}
	}

	for _, ext := range extensions {
		walk(ext.Path)
	}
	return projects
}

// buildIntegrationTest never aborts the run; failures are recorded on the outcome.
func (o *Orchestrator) buildIntegrationTest(ctx context.Context, target domain.ResolvedTarget) domain.BuildOutcome {
	args := Compose(domain.KindIntegrationTest, o.cfg)
	outcome := domain.BuildOutcome{
		Target:  target,
		LogFile: o.LogFile(target),
	}

	f, err := os.Create(outcome.LogFile)
	if err != nil {
		outcome.ExitCode = -1
		outcome.Err = &domain.ExternalProcessFailure{Command: args, Dir: target.Path, ExitCode: -1, Err: err}
		o.logger.Err(outcome.Err, "module", target.Name())
		return outcome
	}

	code, runErr := o.invoke(ctx, target.Path, args, io.MultiWriter(f, o.stdout))
	if closeErr := f.Close(); closeErr != nil {
		o.logger.Warn("closing log failed", "log", outcome.LogFile, "error", closeErr.Error())
	}

	switch {
	case runErr != nil:
		outcome.ExitCode = -1
		outcome.Err = &domain.ExternalProcessFailure{Command: args, Dir: target.Path, ExitCode: -1, Err: runErr}
	case code != 0:
		outcome.ExitCode = code
		outcome.Err = &domain.ExternalProcessFailure{Command: args, Dir: target.Path, ExitCode: code}
	}

	if outcome.Err != nil {
		o.logger.Warn("module build failed, continuing", "module", target.Name(), "exit_code", outcome.ExitCode)
	}
	return outcome
}

// scanAndPrune deletes logs without the failure marker and returns the
// outcomes whose log is kept. Unreadable logs are kept and counted as failed.
func (o *Orchestrator) scanAndPrune(outcomes []domain.BuildOutcome) []domain.BuildOutcome {
	var failed []domain.BuildOutcome
	for _, outcome := range outcomes {
		verdict, err := o.scanner.Scan(outcome.LogFile)
		if err != nil {
			o.logger.Warn("log could not be scanned, keeping it", "log", outcome.LogFile, "error", err.Error())
			failed = append(failed, outcome)
			continue
		}

		if verdict == domain.VerdictFailed {
			failed = append(failed, outcome)
			continue
		}

		if err := os.Remove(outcome.LogFile); err != nil && !os.IsNotExist(err) {
			o.logger.Warn("removing passing log failed", "log", outcome.LogFile, "error", err.Error())
		}
	}
	return failed
}

// LogFile returns where the build output of target is written.
func (o *Orchestrator) LogFile(target domain.ResolvedTarget) string {
	return filepath.Join(o.cfg.Root(), target.Name()+o.logSuffix)
}

func (o *Orchestrator) invoke(ctx context.Context, dir string, args []string, sink io.Writer) (int, error) {
	command := append([]string{o.maven}, args...)
	if o.cfg.Debug() {
		o.reporter.Command(dir, command)
	}
	o.logger.Debug("invoking build", "dir", dir, "args", args)

	start := time.Now()
	code, err := o.runner.Run(ctx, command, dir, sink)
	o.logger.Debug("build returned",
		"dir", dir,
		"exit_code", code,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return code, err
}

type nopReporter struct{}

func (nopReporter) Command(string, []string)                           {}
func (nopReporter) Failures([]domain.BuildOutcome, *domain.ResumePlan) {}
