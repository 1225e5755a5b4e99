// internal/core/usecases/composer.go
package usecases

import (
	"path/filepath"
	"strings"

	"qdev/internal/core/domain"
)

// Maven arguments the composer emits.
const (
	GoalClean     = "clean"
	FlagSkipTests = "-DskipTests"
	FlagNative    = "-Dnative"
	FlagResume    = "-rf"
	FlagProjects  = "-pl"
	FlagThreads   = "-T"
	FlagFile      = "-f"
	GoalSourceJar = "source:jar"
)

// fullBuildSkips turns off everything a whole-tree rebuild does not need.
var fullBuildSkips = []string{
	FlagSkipTests,
	"-DskipITs",
	"-DskipExtensionValidation",
	"-Dskip.gradle.tests",
}

// Compose returns the Maven arguments (without the executable) for building
// one module of the given kind. It has no side effects.
//
// Layout: [clean] <goal> <fixed properties> [bytecode properties] [-Dnative]
// [-DskipTests] [-rf :<artifactId>].
func Compose(kind domain.Kind, cfg domain.BuildConfig) []string {
	args := make([]string, 0, 12)
	if cfg.Clean() {
		args = append(args, GoalClean)
	}
	args = append(args, kind.Goal())
	args = appendOptions(args, cfg)
	if cfg.Native() {
		args = append(args, FlagNative)
	}
	if !cfg.RunTests() {
		args = append(args, FlagSkipTests)
	}
	return appendResume(args, cfg)
}

// ComposeExtensionBatch installs the given module directories in one reactor
// run started from the tree root, selecting them with -pl by root-relative
// path. Callers list aggregator children explicitly.
func ComposeExtensionBatch(projectDirs []string, cfg domain.BuildConfig) []string {
	args := Compose(domain.KindExtension, cfg)
	if len(projectDirs) == 0 {
		return args
	}
	projects := make([]string, 0, len(projectDirs))
	for _, dir := range projectDirs {
		projects = append(projects, relativeTo(cfg.Root(), dir))
	}
	return append(args, FlagProjects, strings.Join(projects, ","))
}

// ComposeFull returns the whole-tree rebuild arguments: parallel, every test
// and validation skipped, always installing.
func ComposeFull(cfg domain.BuildConfig) []string {
	args := make([]string, 0, 16)
	if threads := cfg.Threads(); threads != "" {
		args = append(args, FlagThreads, threads)
	}
	args = append(args, fullBuildSkips...)
	if cfg.Clean() {
		args = append(args, GoalClean)
	}
	args = append(args, domain.KindExtension.Goal())
	args = appendOptions(args, cfg)
	return appendResume(args, cfg)
}

// ComposeInstall builds a single module through its pom with a sources jar
// attached, the way a module is pushed into the local repository by hand.
func ComposeInstall(dir string, cfg domain.BuildConfig) []string {
	args := []string{FlagFile, dir}
	if cfg.Clean() {
		args = append(args, GoalClean)
	}
	args = append(args, GoalSourceJar, domain.KindExtension.Goal())
	if !cfg.RunTests() {
		args = append(args, FlagSkipTests)
	}
	return args
}

func appendOptions(args []string, cfg domain.BuildConfig) []string {
	args = append(args, cfg.FixedProperties()...)
	if cfg.Bytecode() {
		args = append(args, cfg.BytecodeProperties()...)
	}
	return args
}

func appendResume(args []string, cfg domain.BuildConfig) []string {
	if sel := cfg.ResumeSelector(); sel != "" {
		args = append(args, FlagResume, sel)
	}
	return args
}

func relativeTo(root, path string) string {
	if root == "" {
		return path
	}
	if !within(root, path) {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
