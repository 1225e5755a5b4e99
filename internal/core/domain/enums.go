// internal/core/domain/enums.go
package domain

// Kind classifies a resolved build module. It decides both the lifecycle goal
// used to build it and whether its output gets its own log file.
type Kind string

const (
	// KindExtension is a library-style module installed into the local repository.
	KindExtension Kind = "extension"

	// KindIntegrationTest is an end-to-end module built with verify and log-scanned.
	KindIntegrationTest Kind = "integration-test"
)

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindExtension, KindIntegrationTest:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	return string(k)
}

// Goal returns the Maven lifecycle phase used to build modules of this kind.
func (k Kind) Goal() string {
	if k == KindIntegrationTest {
		return "verify"
	}
	return "install"
}

// Verdict is the Log Scanner's classification of a captured build log.
type Verdict int

const (
	VerdictPassed Verdict = iota
	VerdictFailed
)

func (v Verdict) String() string {
	if v == VerdictFailed {
		return "failed"
	}
	return "passed"
}
