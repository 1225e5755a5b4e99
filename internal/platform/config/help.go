// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"runtime"
)

const helpText = `
qdev - Build a subset of a Quarkus source tree

USAGE:
  qdev subset [options] <target>...
  qdev install [options] <module>...
  qdev version
  qdev help

  A target is a directory: a literal path, a path under the root, or a module
  name under <root>/integration-tests or <root>/extensions. Extensions are
  installed first in one Maven run; each integration test is then verified in
  its own directory with output kept in <root>/<name>.out when it fails.

SUBSET OPTIONS:
  -f, --full               Install the whole tree (-T 4C, tests skipped), no targets
  -c, --clean              Run the clean goal before building
  -n, --native             Build native images (-Dnative)
  -t, --test               Run tests (default: tests skipped)
  -r, --resume string      Resume from an artifact id (-rf :<id>)
      --root string        Source tree root (default: ~/dev/quarkus)
  -b, --bytecode           Dump generated and transformed classes under target/q
  -d, --debug              Print each Maven command before running it

INSTALL OPTIONS:
  -c, --clean              Run the clean goal before building
  -t, --test               Run tests (default: tests skipped)
  -r, --root string        Source tree root (default: ~/dev/quarkus)
  -d, --debug              Print each Maven command before running it

  Modules starting with ./ are relative to the working directory, all others
  to the root. Install stops at the first module that fails.

EXAMPLES:
  Build an extension and the integration test that covers it:
    qdev subset hibernate-orm integration-tests/hibernate-orm-panache

  Clean build with tests, echoing every command:
    qdev subset -c -t -d jpa-postgresql

  Whole tree, resuming after a failure:
    qdev subset -f -r quarkus-arc-deployment

  Install modules with their source jars:
    qdev install core/runtime ./my-extension

ENVIRONMENT VARIABLES:
  QDEV_ROOT=/path                   Source tree root
  QDEV_MVN=mvnd                     Maven executable
  QDEV_PROPERTIES=-Ddocker,...      Properties passed to every module build
  QDEV_LOG_SUFFIX=.out              Log file suffix
  QDEV_FAILURE_MARKER=[ERROR]       Text that marks a log as failed
  QDEV_CONFIG=/path/config.yaml     Config file (default: ~/.config/qdev/config.yaml)
  QDEV_DEBUG=true                   Always print commands
  QDEV_LOG_LEVEL=debug              Diagnostic log level (debug, info, warn, error)

  A .env file in the working directory is read first. Flags override
  environment variables, which override the config file.

EXIT CODES:
  0  builds finished (failed modules are reported, not fatal)
  2  bad usage or a target that cannot be resolved
  1  any other error; --full and install exit with Maven's own code
`

// PrintHelp writes the usage text to w.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, helpText)
}

// PrintVersion writes version information to w.
func PrintVersion(w io.Writer, version, commit, date string) {
	fmt.Fprintf(w, "qdev %s\n", version)
	fmt.Fprintf(w, "  Commit:  %s\n", commit)
	fmt.Fprintf(w, "  Built:   %s\n", date)
	fmt.Fprintf(w, "  Go:      %s\n", getGoVersion())
}

func getGoVersion() string {
	return runtime.Version()
}
