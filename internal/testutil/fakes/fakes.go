// Package fakes holds in-memory stand-ins for the core ports.
package fakes

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"qdev/internal/core/domain"
)

// Invocation is one recorded Runner call.
type Invocation struct {
	Command []string
	Dir     string
}

// Script is what the fake Runner does for one directory.
type Script struct {
	Output   string
	ExitCode int
	Err      error
}

// Runner records invocations and replays scripted output per working
// directory. Directories without a script print nothing and exit 0.
type Runner struct {
	mu      sync.Mutex
	scripts map[string]Script
	calls   []Invocation
}

func NewRunner() *Runner {
	return &Runner{scripts: make(map[string]Script)}
}

// On scripts the behavior for builds run in dir.
func (r *Runner) On(dir string, s Script) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts[filepath.Clean(dir)] = s
	return r
}

func (r *Runner) Run(_ context.Context, command []string, dir string, sink io.Writer) (int, error) {
	r.mu.Lock()
	r.calls = append(r.calls, Invocation{Command: append([]string(nil), command...), Dir: dir})
	s := r.scripts[filepath.Clean(dir)]
	r.mu.Unlock()

	if s.Err != nil {
		return -1, s.Err
	}
	if s.Output != "" {
		if _, err := io.WriteString(sink, s.Output); err != nil {
			return -1, err
		}
	}
	return s.ExitCode, nil
}

// Calls returns a copy of the recorded invocations.
func (r *Runner) Calls() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Invocation(nil), r.calls...)
}

// Manifests serves artifact ids and module lists keyed by module directory.
// A directory with neither entry has no readable descriptor.
type Manifests struct {
	IDs      map[string]string
	Children map[string][]string
}

func (m Manifests) ArtifactID(dir string) (string, error) {
	if id, ok := m.IDs[filepath.Clean(dir)]; ok {
		return id, nil
	}
	return "", m.missing(dir)
}

func (m Manifests) Modules(dir string) ([]string, error) {
	dir = filepath.Clean(dir)
	if children, ok := m.Children[dir]; ok {
		return append([]string(nil), children...), nil
	}
	if _, ok := m.IDs[dir]; ok {
		return nil, nil
	}
	return nil, m.missing(dir)
}

func (Manifests) missing(dir string) error {
	path := filepath.Join(dir, "pom.xml")
	return &domain.ManifestReadError{Path: path, Err: fmt.Errorf("no manifest")}
}

// Reporter records what the orchestrator asked to render.
type Reporter struct {
	Commands [][]string
	Failed   []domain.BuildOutcome
	Plan     *domain.ResumePlan
	Reported bool
}

func (r *Reporter) Command(_ string, command []string) {
	r.Commands = append(r.Commands, command)
}

func (r *Reporter) Failures(failed []domain.BuildOutcome, plan *domain.ResumePlan) {
	r.Reported = true
	r.Failed = failed
	r.Plan = plan
}
