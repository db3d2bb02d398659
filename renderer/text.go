// Package renderer provides a way to render diagnostic messages in
// different formats.
package renderer

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/pluglint/pluglint/analyzer"
)

// TextRenderer writes one line per message:
//
//	path:line:col: severity code: text
//
// The format is stable so calling automation can parse it. Severity names
// are colored when writing to a terminal.
type TextRenderer struct{}

// NewTextRenderer creates a new instance of TextRenderer.
func NewTextRenderer() Renderer {
	return &TextRenderer{}
}

// Render formats and writes every message to the output.
func (r *TextRenderer) Render(messages []*analyzer.Message, output io.Writer) error {
	colored := output == os.Stdout
	for _, msg := range messages {
		severity := msg.Severity.String()
		if colored {
			severity = severityColor(msg.Severity).Sprint(severity)
		}
		_, err := fmt.Fprintf(output, "%s:%d:%d: %s %s: %s\n",
			msg.Path, msg.StartLine, msg.StartColumn, severity, msg.Code, msg.Text)
		if err != nil {
			return err
		}
	}
	return nil
}

func severityColor(s analyzer.Severity) *color.Color {
	switch s {
	case analyzer.SeverityError:
		return color.New(color.FgRed, color.Bold)
	case analyzer.SeverityWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}

// Format returns the format type.
func (r *TextRenderer) Format() string {
	return "text"
}
