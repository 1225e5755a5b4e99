// internal/core/usecases/resume_planner.go
package usecases

import (
	"path/filepath"
	"strings"

	"qdev/internal/core/domain"
	"qdev/internal/core/ports"
	"qdev/internal/platform/logx"
)

// DefaultLogSuffix is appended to a module's directory name to name its log.
const DefaultLogSuffix = ".out"

// ResumePlanner reduces failing outcomes to the subset command that re-runs
// only them.
type ResumePlanner struct {
	targets   domain.TargetSet
	manifests ports.ManifestReader
	cfg       domain.BuildConfig
	logSuffix string
	program   string
	logger    logx.Logger
}

// ResumePlannerOptions configures a ResumePlanner.
type ResumePlannerOptions struct {
	// Targets are the targets resolved for the run being planned.
	Targets   domain.TargetSet
	Manifests ports.ManifestReader
	Config    domain.BuildConfig

	// LogSuffix defaults to DefaultLogSuffix.
	LogSuffix string

	// Program is the command prefix of the synthesized line, e.g. "qdev subset".
	Program string

	Logger logx.Logger
}

func NewResumePlanner(opts ResumePlannerOptions) *ResumePlanner {
	if opts.LogSuffix == "" {
		opts.LogSuffix = DefaultLogSuffix
	}
	if opts.Program == "" {
		opts.Program = "qdev subset"
	}
	if opts.Logger == nil {
		opts.Logger = logx.Discard()
	}
	return &ResumePlanner{
		targets:   opts.Targets,
		manifests: opts.Manifests,
		cfg:       opts.Config,
		logSuffix: opts.LogSuffix,
		program:   opts.Program,
		logger:    opts.Logger.With("component", "resume-planner"),
	}
}

// Plan maps each failing log back to its integration test, reads the module's
// artifact id and builds the resume command over the matched directory names
// in discovery order. Logs that match no resolved target, and modules whose
// descriptor cannot be read, are left out.
func (p *ResumePlanner) Plan(failing []domain.BuildOutcome) domain.ResumePlan {
	failed := make(map[string]bool, len(failing))
	for _, outcome := range failing {
		name := p.moduleName(outcome.LogFile)
		if _, ok := p.targets.IntegrationTestNamed(name); !ok {
			p.logger.Debug("failing log matches no requested target", "log", outcome.LogFile)
			continue
		}
		failed[name] = true
	}

	var plan domain.ResumePlan
	var args []string
	for _, target := range p.targets.IntegrationTests {
		name := target.Name()
		if !failed[name] {
			continue
		}
		delete(failed, name)

		artifactID, err := p.manifests.ArtifactID(target.Path)
		if err != nil {
			p.logger.Warn("excluding module from resume plan", "module", name, "error", err.Error())
			continue
		}
		plan.FailingArtifactIDs = append(plan.FailingArtifactIDs, artifactID)
		plan.Modules = append(plan.Modules, name)
		args = append(args, p.rerunArg(target))
	}

	if !plan.Empty() {
		plan.CommandLine = p.commandLine(args)
	}
	return plan
}

// rerunArg is the directory name for a module directly under
// integration-tests/, which the name alone resolves back to. Nested modules
// such as integration-tests/kubernetes/deploy get their root-relative path.
func (p *ResumePlanner) rerunArg(target domain.ResolvedTarget) string {
	root := p.cfg.Root()
	if root == "" || filepath.Dir(target.Path) == filepath.Join(root, IntegrationTestsDir) {
		return target.Name()
	}
	if within(root, target.Path) {
		if rel, err := filepath.Rel(root, target.Path); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return target.Path
}

func (p *ResumePlanner) moduleName(logFile string) string {
	return strings.TrimSuffix(filepath.Base(logFile), p.logSuffix)
}

// commandLine repeats the flags that shaped the original run. --full and
// --resume are dropped: the first bypasses subsets, the second points into a
// reactor that no longer exists.
func (p *ResumePlanner) commandLine(modules []string) string {
	parts := []string{p.program}
	if p.cfg.Clean() {
		parts = append(parts, "--clean")
	}
	if p.cfg.Native() {
		parts = append(parts, "--native")
	}
	if p.cfg.RunTests() {
		parts = append(parts, "--test")
	}
	if p.cfg.Bytecode() {
		parts = append(parts, "--bytecode")
	}
	if p.cfg.RootOverridden() {
		parts = append(parts, "--root", shellQuote(p.cfg.Root()))
	}
	for _, m := range modules {
		parts = append(parts, shellQuote(m))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$`*?[]{}()<>|&;#~!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
