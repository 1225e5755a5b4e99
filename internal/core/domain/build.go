package domain

import "strings"

// BuildSettings is the mutable input used once to construct a BuildConfig.
type BuildSettings struct {
	Clean    bool
	Native   bool
	RunTests bool
	Bytecode bool
	Full     bool
	Debug    bool

	// ResumeFrom is an artifact id, with or without the leading ':'.
	ResumeFrom string

	FixedProperties    []string
	BytecodeProperties []string

	// Threads is the -T value used by the whole-tree build, e.g. "4C".
	Threads string

	// Root is the tree root; RootOverridden records that it came from --root.
	Root           string
	RootOverridden bool
}

// BuildConfig holds the per-invocation build settings. It is built once from
// the command line and only read afterwards; accessors hand out copies.
type BuildConfig struct {
	clean, native, runTests, bytecode, full, debug bool

	resumeFrom         string
	fixedProperties    []string
	bytecodeProperties []string
	threads            string
	root               string
	rootOverridden     bool
}

// NewBuildConfig freezes s into a BuildConfig.
func NewBuildConfig(s BuildSettings) BuildConfig {
	return BuildConfig{
		clean:              s.Clean,
		native:             s.Native,
		runTests:           s.RunTests,
		bytecode:           s.Bytecode,
		full:               s.Full,
		debug:              s.Debug,
		resumeFrom:         strings.TrimSpace(s.ResumeFrom),
		fixedProperties:    append([]string(nil), s.FixedProperties...),
		bytecodeProperties: append([]string(nil), s.BytecodeProperties...),
		threads:            s.Threads,
		root:               s.Root,
		rootOverridden:     s.RootOverridden,
	}
}

func (c BuildConfig) Clean() bool          { return c.clean }
func (c BuildConfig) Native() bool         { return c.native }
func (c BuildConfig) RunTests() bool       { return c.runTests }
func (c BuildConfig) Bytecode() bool       { return c.bytecode }
func (c BuildConfig) Full() bool           { return c.full }
func (c BuildConfig) Debug() bool          { return c.debug }
func (c BuildConfig) Root() string         { return c.root }
func (c BuildConfig) RootOverridden() bool { return c.rootOverridden }
func (c BuildConfig) ResumeFrom() string   { return c.resumeFrom }
func (c BuildConfig) Threads() string      { return c.threads }

func (c BuildConfig) FixedProperties() []string {
	return append([]string(nil), c.fixedProperties...)
}

func (c BuildConfig) BytecodeProperties() []string {
	return append([]string(nil), c.bytecodeProperties...)
}

// ResumeSelector returns the -rf argument, ":<artifactId>", or "" when no
// resume point is set. A value that already starts with ':' is kept as is.
func (c BuildConfig) ResumeSelector() string {
	if c.resumeFrom == "" {
		return ""
	}
	if strings.HasPrefix(c.resumeFrom, ":") {
		return c.resumeFrom
	}
	return ":" + c.resumeFrom
}

// BuildOutcome is the result of building one integration-test module.
type BuildOutcome struct {
	Target   ResolvedTarget
	LogFile  string
	ExitCode int

	// Err is an *ExternalProcessFailure when the build exited non-zero or
	// never started.
	Err error
}

// Succeeded reports whether the process exited cleanly. A clean exit does
// not guarantee a passing log; the Log Scanner decides that.
func (o BuildOutcome) Succeeded() bool {
	return o.Err == nil && o.ExitCode == 0
}
