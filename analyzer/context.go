package analyzer

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/packages"
)

// Context is the per-file analysis context handed to every analyzer.
// It combines the file's typed-check result with the project-wide check
// result it belongs to. Immutable once built; analyzers receive it by
// reference and must not mutate it.
type Context struct {
	// Path is the absolute path of the analyzed file.
	Path string

	// Content is the raw source text of the file.
	Content []byte

	// File is the parsed syntax tree of the file.
	File *ast.File

	// Pkg is the type-checked package containing the file. Type and
	// object information is available through Pkg.Types and Pkg.TypesInfo.
	Pkg *packages.Package

	// Fset maps token positions in File back to source locations.
	Fset *token.FileSet

	// Project is the project-wide check result shared by every context
	// in a run.
	Project []*packages.Package
}

// NewContext builds a Context from a successfully checked file. It returns
// false when the check carries no typed syntax for the file body (the
// compiler excluded the file, so there is nothing to analyze); such files
// are skipped without a diagnostic.
func NewContext(path string, content []byte, syntax *ast.File, pkg *packages.Package, project []*packages.Package) (*Context, bool) {
	if syntax == nil || pkg == nil || pkg.TypesInfo == nil {
		return nil, false
	}
	return &Context{
		Path:    path,
		Content: content,
		File:    syntax,
		Pkg:     pkg,
		Fset:    pkg.Fset,
		Project: project,
	}, true
}

// MessageAt builds a Message located at the given syntax positions.
// end may be token.NoPos when the finding has no meaningful extent.
func (c *Context) MessageAt(pos, end token.Pos, severity Severity, code, text string) *Message {
	start := c.Fset.Position(pos)
	msg := &Message{
		Path:        c.Path,
		StartLine:   start.Line,
		StartColumn: start.Column,
		Severity:    severity,
		Code:        code,
		Text:        text,
	}
	if end.IsValid() {
		e := c.Fset.Position(end)
		msg.EndLine = e.Line
		msg.EndColumn = e.Column
	}
	return msg
}
