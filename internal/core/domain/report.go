package domain

// ResumePlan is the minimal re-invocation covering the failed modules.
// It is only ever printed.
type ResumePlan struct {
	// FailingArtifactIDs are the declared artifact ids of the failed modules.
	FailingArtifactIDs []string

	// Modules are the failed modules' directory names in discovery order.
	Modules []string

	// CommandLine is a ready-to-copy subset invocation over Modules.
	CommandLine string
}

// Empty reports whether the plan covers no module.
func (p ResumePlan) Empty() bool {
	return len(p.Modules) == 0
}

// Report is what a subset run hands back once every build has run and every
// log has been scanned.
type Report struct {
	Targets  TargetSet
	Outcomes []BuildOutcome

	// Failed are the outcomes whose log carried the failure marker, in build order.
	Failed []BuildOutcome

	// ExtensionsExitCode is the exit code of the batch extension install, or
	// 0 when there were no extensions.
	ExtensionsExitCode int

	// Plan is nil when nothing failed.
	Plan *ResumePlan
}

// HasFailures reports whether at least one module log was retained.
func (r Report) HasFailures() bool {
	return len(r.Failed) > 0
}
