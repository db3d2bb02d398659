// Package analyzer defines the capability contract between the driver and
// analyzer plugins: the Analyzer interface, the per-file analysis Context,
// and the Message diagnostics analyzers produce.
package analyzer

import "fmt"

// Analyzer represents the interface every analyzer plugin implements.
// Plugins are compiled against this package, so the registry can bind them
// with a plain type assertion instead of structural introspection.
type Analyzer interface {
	// Name returns a stable identifier used to attribute diagnostics
	// and failures to this analyzer.
	Name() string

	// Analyze inspects the provided context and returns any messages found.
	// The context is shared read-only state: implementations must not mutate it.
	Analyze(ctx *Context) ([]*Message, error)
}

// Severity represents the severity level of a message.
// The levels are ordered: Info < Warning < Error.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the display name used in rendered output.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler so JSON output carries the
// severity name rather than its ordinal.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Message represents a single diagnostic produced by an analyzer.
// Messages are immutable value records; ownership transfers to the
// aggregator on creation.
type Message struct {
	Path        string   `json:"path"`
	StartLine   int      `json:"startLine"` // 1-indexed
	StartColumn int      `json:"startColumn"`
	EndLine     int      `json:"endLine,omitempty"`
	EndColumn   int      `json:"endColumn,omitempty"`
	Severity    Severity `json:"severity"`
	Code        string   `json:"code"` // stable identifier, e.g. PL0004
	Text        string   `json:"text"` // description of the finding
}
