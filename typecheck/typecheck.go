// Package typecheck wraps the semantic-analysis service behind the driver:
// one project-wide load shared by the whole run, and a per-file check that
// classifies failures. It owns no analysis logic of its own.
package typecheck

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/pluglint/pluglint/project"
)

// ErrAborted signals that the semantic check could not complete for a file.
// The file is dropped from further processing; the run continues.
var ErrAborted = errors.New("semantic check aborted")

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo

// ProjectResult is the project-wide check result. It is computed once per
// run by CheckProject and referenced, read-only, by every per-file check
// and every analysis context.
type ProjectResult struct {
	Fset     *token.FileSet
	Packages []*packages.Package

	files map[string]fileEntry
}

type fileEntry struct {
	pkg    *packages.Package
	syntax *ast.File
	cause  string // non-empty when the check aborted for this file
}

// FileResult is the typed-check result for one file: its syntax-parse
// result plus the type-checked package it belongs to.
type FileResult struct {
	Path    string
	Content []byte
	Syntax  *ast.File
	Pkg     *packages.Package
}

// CheckProject loads and type-checks every package of the project. The
// produced ProjectResult is the single shared view of the project for the
// entire run.
func CheckProject(ctx context.Context, opts project.Options) (*ProjectResult, error) {
	cfg := &packages.Config{
		Context:    ctx,
		Mode:       loadMode,
		Dir:        opts.Dir,
		BuildFlags: opts.BuildFlags,
		Tests:      opts.Tests,
		Fset:       token.NewFileSet(),
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("semantic check failed for project %s: %w", opts.Dir, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("semantic check produced no packages for project %s", opts.Dir)
	}

	result := &ProjectResult{
		Fset:     cfg.Fset,
		Packages: pkgs,
		files:    make(map[string]fileEntry),
	}
	for _, pkg := range pkgs {
		result.index(pkg)
	}
	return result, nil
}

// index records where each compiled file of pkg lives and, for ill-typed
// packages, which failure to attribute to its files.
func (r *ProjectResult) index(pkg *packages.Package) {
	cause := ""
	if pkg.IllTyped {
		cause = "type checking failed"
		if len(pkg.Errors) > 0 {
			cause = pkg.Errors[0].Msg
		}
	}
	for _, file := range pkg.Syntax {
		name := r.Fset.Position(file.Pos()).Filename
		if _, ok := r.files[name]; ok {
			continue // first package claiming the file wins (test variants re-list sources)
		}
		entry := fileEntry{pkg: pkg, syntax: file, cause: cause}
		// An error reported inside the file itself takes precedence as cause.
		for _, perr := range pkg.Errors {
			if errorInFile(perr, name) {
				entry.cause = perr.Msg
				break
			}
		}
		r.files[name] = entry
	}
}

func errorInFile(perr packages.Error, file string) bool {
	pos := perr.Pos
	if i := strings.IndexByte(pos, ':'); i > 0 {
		pos = pos[:i]
	}
	return pos == file
}

// CheckFile returns the typed-check result for one previously resolved
// file. A nil Syntax in the result means the compiler excluded the file
// body; callers skip such files without a diagnostic. ErrAborted is
// returned when the semantic check did not complete for the file.
func (r *ProjectResult) CheckFile(ctx context.Context, path string, content []byte) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entry, ok := r.files[path]
	if !ok {
		// Resolved but never compiled (build constraints, ignored file).
		return &FileResult{Path: path, Content: content}, nil
	}
	if entry.cause != "" {
		return nil, fmt.Errorf("%w for %s: %s", ErrAborted, path, entry.cause)
	}
	return &FileResult{
		Path:    path,
		Content: content,
		Syntax:  entry.syntax,
		Pkg:     entry.pkg,
	}, nil
}
