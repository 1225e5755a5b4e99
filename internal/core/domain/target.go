// internal/core/domain/target.go
package domain

import "path/filepath"

// ResolvedTarget is a user-supplied target bound to an absolute module
// directory and exactly one Kind.
type ResolvedTarget struct {
	// Input is the string the user typed.
	Input string

	// Path is the absolute, cleaned module directory.
	Path string

	Kind Kind
}

// Name returns the module's directory name. Log files and resume commands
// are keyed on it.
func (t ResolvedTarget) Name() string {
	return filepath.Base(t.Path)
}

// TargetSet holds the resolved targets split by kind. Both slices keep the
// first-occurrence order of the input and never contain the same path twice.
type TargetSet struct {
	Extensions       []ResolvedTarget
	IntegrationTests []ResolvedTarget
}

// Add appends t to the slice matching its kind unless its path is already
// present in either slice. It reports whether t was added.
func (s *TargetSet) Add(t ResolvedTarget) bool {
	if s.Contains(t.Path) {
		return false
	}
	switch t.Kind {
	case KindIntegrationTest:
		s.IntegrationTests = append(s.IntegrationTests, t)
	default:
		s.Extensions = append(s.Extensions, t)
	}
	return true
}

// Contains reports whether a target with the given absolute path is present.
func (s TargetSet) Contains(path string) bool {
	for _, t := range s.Extensions {
		if t.Path == path {
			return true
		}
	}
	for _, t := range s.IntegrationTests {
		if t.Path == path {
			return true
		}
	}
	return false
}

// IntegrationTestNamed finds the integration test whose directory is name.
func (s TargetSet) IntegrationTestNamed(name string) (ResolvedTarget, bool) {
	for _, t := range s.IntegrationTests {
		if t.Name() == name {
			return t, true
		}
	}
	return ResolvedTarget{}, false
}

// Len returns the total number of resolved targets.
func (s TargetSet) Len() int {
	return len(s.Extensions) + len(s.IntegrationTests)
}
