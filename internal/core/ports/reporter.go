// internal/core/ports/reporter.go
package ports

import "qdev/internal/core/domain"

// Reporter renders orchestration progress and the final report for a human.
type Reporter interface {
	// Command echoes an invocation before it runs. Only called in debug mode.
	Command(dir string, command []string)

	// Failures lists the modules whose logs were retained and, when plan is
	// non-nil, the command that re-runs them.
	Failures(failed []domain.BuildOutcome, plan *domain.ResumePlan)
}
