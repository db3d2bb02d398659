package renderer

import (
	"io"

	"github.com/pluglint/pluglint/analyzer"
)

// Renderer defines the interface for rendering analysis results in different formats.
type Renderer interface {
	// Render takes the ordered message sequence and writes it in the
	// desired format to the provided writer.
	Render(messages []*analyzer.Message, output io.Writer) error

	// Format returns the name of the output format (e.g., "json", "text").
	Format() string
}
