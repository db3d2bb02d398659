// Package project resolves a project reference into the ordered list of
// source files that participate in analysis, plus the compilation options
// shared by the whole run.
package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// Options are the compilation settings applied to every check in a run.
type Options struct {
	// Dir is the project root the loader runs in.
	Dir string

	// BuildFlags are extra flags passed through to the build system.
	BuildFlags []string

	// Tests includes test files in the resolved file set.
	Tests bool
}

// Project is the resolved project model: an ordered file list plus the
// compilation options. Resolve is called once per run; the result is
// read-only afterwards.
type Project struct {
	Dir     string
	Files   []string
	Options Options
}

// Resolve lists the Go source files of the project rooted at dir. The
// returned file order is the loader's package order with files in package
// declaration order, which is stable across runs over an unchanged project.
func Resolve(ctx context.Context, dir string, opts Options) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to determine absolute project path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("unable to access project %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project %s is not a directory", dir)
	}
	opts.Dir = abs

	cfg := &packages.Config{
		Context:    ctx,
		Mode:       packages.NeedName | packages.NeedFiles,
		Dir:        abs,
		BuildFlags: opts.BuildFlags,
		Tests:      opts.Tests,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("unable to resolve project %s: %w", dir, err)
	}

	seen := make(map[string]bool)
	var files []string
	for _, pkg := range pkgs {
		for _, file := range pkg.GoFiles {
			if seen[file] {
				continue
			}
			seen[file] = true
			files = append(files, file)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Go source files found in project %s", dir)
	}

	return &Project{Dir: abs, Files: files, Options: opts}, nil
}
