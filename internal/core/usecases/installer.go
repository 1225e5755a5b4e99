package usecases

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"qdev/internal/core/domain"
	"qdev/internal/core/ports"
	"qdev/internal/platform/logx"
)

// Installer pushes individual modules into the local repository, one after
// the other, stopping at the first failure. Unlike a subset build there is
// nothing to report afterwards, so fail-fast is the useful behavior.
type Installer struct {
	cfg      domain.BuildConfig
	runner   ports.Runner
	reporter ports.Reporter
	logger   logx.Logger
	stdout   io.Writer
	maven    string
	workDir  string
}

// InstallerOptions configures an Installer.
type InstallerOptions struct {
	Config   domain.BuildConfig
	Runner   ports.Runner
	Reporter ports.Reporter
	Logger   logx.Logger
	Stdout   io.Writer
	Maven    string

	// WorkDir anchors "./"-prefixed modules. Defaults to the process cwd.
	WorkDir string
}

func NewInstaller(opts InstallerOptions) *Installer {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Maven == "" {
		opts.Maven = "mvn"
	}
	if opts.Reporter == nil {
		opts.Reporter = nopReporter{}
	}
	if opts.WorkDir == "" {
		opts.WorkDir, _ = os.Getwd()
	}
	return &Installer{
		cfg:      opts.Config,
		runner:   opts.Runner,
		reporter: opts.Reporter,
		logger:   opts.Logger.With("component", "installer"),
		stdout:   opts.Stdout,
		maven:    opts.Maven,
		workDir:  opts.WorkDir,
	}
}

// Install builds modules in order. Every module is located before the first
// build starts. It returns the exit code of the first failing build together
// with an *domain.ExternalProcessFailure, or 0 and nil.
func (i *Installer) Install(ctx context.Context, modules []string) (int, error) {
	dirs := make([]string, 0, len(modules))
	for _, module := range modules {
		dir := i.locate(module)
		if !isDir(dir) {
			return 2, &domain.UnresolvableTargetError{Input: module, Root: i.cfg.Root()}
		}
		dirs = append(dirs, dir)
	}

	for _, dir := range dirs {
		args := ComposeInstall(dir, i.cfg)
		command := append([]string{i.maven}, args...)
		if i.cfg.Debug() {
			i.reporter.Command(dir, command)
		}

		code, err := i.runner.Run(ctx, command, i.cfg.Root(), i.stdout)
		if err != nil {
			return 1, &domain.ExternalProcessFailure{Command: command, Dir: dir, ExitCode: -1, Err: err}
		}
		if code != 0 {
			return code, &domain.ExternalProcessFailure{Command: command, Dir: dir, ExitCode: code}
		}
		i.logger.Info("module installed", "module", filepath.Base(dir))
	}
	return 0, nil
}

func (i *Installer) locate(module string) string {
	var dir string
	if strings.HasPrefix(module, "./") || filepath.IsAbs(module) {
		dir = module
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(i.workDir, dir)
		}
	} else {
		dir = filepath.Join(i.cfg.Root(), module)
	}
	return filepath.Clean(dir)
}
