// Package report provides the reporter the driver threads through every
// component for informational and error notices, so no component depends
// on process-wide verbosity state.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	infoPrefix = color.New(color.FgCyan).Sprint("info:")
	errPrefix  = color.New(color.FgRed, color.Bold).Sprint("error:")
)

// Reporter writes human-facing notices. Informational notices are emitted
// only when verbose is set; error notices are always emitted. Diagnostic
// messages produced by analyzers do not go through the Reporter, they are
// rendered separately.
type Reporter struct {
	out     io.Writer
	verbose bool
}

// New creates a Reporter writing to out.
func New(out io.Writer, verbose bool) *Reporter {
	return &Reporter{out: out, verbose: verbose}
}

// Verbose reports whether informational notices are enabled.
func (r *Reporter) Verbose() bool {
	return r.verbose
}

// Infof emits an informational notice when verbose output is enabled.
func (r *Reporter) Infof(format string, args ...any) {
	if !r.verbose {
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", infoPrefix, fmt.Sprintf(format, args...))
}

// Errorf emits an error notice.
func (r *Reporter) Errorf(format string, args ...any) {
	fmt.Fprintf(r.out, "%s %s\n", errPrefix, fmt.Sprintf(format, args...))
}
