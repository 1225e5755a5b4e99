// internal/core/usecases/resolver.go
package usecases

import (
	"os"
	"path/filepath"
	"strings"

	"qdev/internal/core/domain"
	"qdev/internal/platform/logx"
)

// Conventional subtrees of the source tree.
const (
	IntegrationTestsDir = "integration-tests"
	ExtensionsDir       = "extensions"
)

// Resolver maps user-supplied target names to module directories and
// classifies each one. It only ever stats directories.
type Resolver struct {
	root   string
	itRoot string
	logger logx.Logger
}

// NewResolver creates a resolver anchored at the tree root.
func NewResolver(root string, logger logx.Logger) *Resolver {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	if logger == nil {
		logger = logx.Discard()
	}
	return &Resolver{
		root:   filepath.Clean(root),
		itRoot: filepath.Join(root, IntegrationTestsDir),
		logger: logger.With("component", "resolver"),
	}
}

// Resolve resolves every input in order. Duplicates collapse onto their first
// occurrence. The first input that matches no rule aborts resolution with an
// *domain.UnresolvableTargetError naming it. An extension outside the root, or
// an integration test sharing its directory name with another one, aborts with
// *domain.OutsideRootError or *domain.DuplicateNameError.
func (r *Resolver) Resolve(raw []string) (domain.TargetSet, error) {
	var set domain.TargetSet
	for _, input := range raw {
		target, err := r.ResolveOne(input)
		if err != nil {
			return domain.TargetSet{}, err
		}
		if err := r.checkPlacement(set, target); err != nil {
			return domain.TargetSet{}, err
		}
		if !set.Add(target) {
			r.logger.Debug("duplicate target ignored", "input", input, "path", target.Path)
		}
	}
	return set, nil
}

// ResolveOne tries, in order: the input as an existing path, the input under
// the root, under integration-tests/ and under extensions/.
func (r *Resolver) ResolveOne(input string) (domain.ResolvedTarget, error) {
	for _, candidate := range r.candidates(input) {
		if !isDir(candidate) {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		target := domain.ResolvedTarget{
			Input: input,
			Path:  abs,
			Kind:  r.classify(abs),
		}
		r.logger.Debug("target resolved", "input", input, "path", abs, "kind", target.Kind)
		return target, nil
	}
	return domain.ResolvedTarget{}, &domain.UnresolvableTargetError{Input: input, Root: r.root}
}

// checkPlacement rejects targets the build cannot address: extensions are
// selected with -pl from the root, and integration-test logs are keyed on the
// directory name.
func (r *Resolver) checkPlacement(set domain.TargetSet, target domain.ResolvedTarget) error {
	if set.Contains(target.Path) {
		return nil
	}
	switch target.Kind {
	case domain.KindExtension:
		if !within(r.root, target.Path) {
			return &domain.OutsideRootError{Input: target.Input, Path: target.Path, Root: r.root}
		}
	case domain.KindIntegrationTest:
		if other, ok := set.IntegrationTestNamed(target.Name()); ok {
			return &domain.DuplicateNameError{Input: target.Input, Path: target.Path, Other: other.Path}
		}
	}
	return nil
}

func (r *Resolver) candidates(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	return []string{
		input,
		filepath.Join(r.root, input),
		filepath.Join(r.root, IntegrationTestsDir, input),
		filepath.Join(r.root, ExtensionsDir, input),
	}
}

// classify decides the kind from where the directory sits: anything inside
// integration-tests/ is an integration test, everything else an extension.
func (r *Resolver) classify(path string) domain.Kind {
	if within(r.itRoot, path) {
		return domain.KindIntegrationTest
	}
	return domain.KindExtension
}

// within reports whether path is dir or lies below it. Both must be absolute.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
