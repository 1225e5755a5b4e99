// internal/adapters/output/report.go
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/pterm/pterm"

	"qdev/internal/core/domain"
	"qdev/internal/platform/ui"
)

// TerminalReporter prints command echoes and the end-of-run report.
type TerminalReporter struct {
	w io.Writer
}

// NewTerminalReporter writes to w, or stdout when w is nil.
func NewTerminalReporter(w io.Writer) *TerminalReporter {
	if w == nil {
		w = os.Stdout
	}
	return &TerminalReporter{w: w}
}

// Command echoes an invocation before it runs.
func (r *TerminalReporter) Command(dir string, command []string) {
	pterm.Fprintln(r.w, ui.StyleEcho.Sprint("---  Building "+dir))
	pterm.Fprintln(r.w, ui.StyleEcho.Sprint("---  executing:  "+strings.Join(command, " ")))
}

// Failures lists retained logs and the resume command.
func (r *TerminalReporter) Failures(failed []domain.BuildOutcome, plan *domain.ResumePlan) {
	pterm.Fprintln(r.w)
	if len(failed) == 0 {
		pterm.Fprintln(r.w, ui.StatusPassed.Line("No failures found"))
		return
	}

	for _, outcome := range failed {
		pterm.Fprintln(r.w, ui.StatusFailed.Line("Errors found in "+filepath.Base(outcome.LogFile)))
	}
	pterm.Fprintln(r.w)

	tw := tabwriter.NewWriter(r.w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODULE\tEXIT\tLOG")
	for _, outcome := range failed {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", outcome.Target.Name(), exitLabel(outcome), outcome.LogFile)
	}
	_ = tw.Flush()

	if plan == nil || plan.Empty() {
		return
	}
	pterm.Fprintln(r.w)
	pterm.Fprintln(r.w, "Rerun failing tests with: ")
	pterm.Fprintln(r.w, ui.StyleCommand.Sprint(" "+plan.CommandLine))
}

func exitLabel(o domain.BuildOutcome) string {
	if o.ExitCode < 0 {
		return ui.StatusNotRun.String()
	}
	return fmt.Sprintf("%d", o.ExitCode)
}
