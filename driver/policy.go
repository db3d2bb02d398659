package driver

import (
	"slices"

	"github.com/pluglint/pluglint/analyzer"
)

// Exit codes are stable so calling automation can distinguish "could not
// run" from "ran and found violations".
const (
	ExitSuccess         = 0
	ExitAnalysisFailure = 1 // messages triggered the failure policy
	ExitRunFailure      = 2 // the run never produced results
)

// Results is the aggregated outcome of a completed run. A nil *Results
// signals that the run never executed.
type Results struct {
	Messages []*analyzer.Message
}

// ExitCode maps the run outcome and the fail-on-warnings code set to a
// process exit code. Any Error-severity message fails the run, as does any
// Warning-severity message whose code is in failOnWarnings.
func ExitCode(results *Results, failOnWarnings []string) int {
	if results == nil {
		return ExitRunFailure
	}
	for _, msg := range results.Messages {
		switch msg.Severity {
		case analyzer.SeverityError:
			return ExitAnalysisFailure
		case analyzer.SeverityWarning:
			if slices.Contains(failOnWarnings, msg.Code) {
				return ExitAnalysisFailure
			}
		}
	}
	return ExitSuccess
}
