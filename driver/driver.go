// Package driver runs the analysis pipeline: select the project's files,
// type-check them against the shared project result, build per-file
// contexts, dispatch them to the registered analyzers and aggregate the
// diagnostics.
package driver

import (
	"context"
	"errors"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pluglint/pluglint/analyzer"
	"github.com/pluglint/pluglint/project"
	"github.com/pluglint/pluglint/registry"
	"github.com/pluglint/pluglint/report"
	"github.com/pluglint/pluglint/selector"
	"github.com/pluglint/pluglint/typecheck"
)

// Driver orchestrates one run. The registry and selector are read-only
// once the driver is constructed.
type Driver struct {
	registry *registry.Registry
	selector *selector.Selector
	reporter *report.Reporter
	jobs     int
}

// New creates a driver. jobs bounds the per-file worker pool; values < 1
// default to the number of CPUs.
func New(reg *registry.Registry, sel *selector.Selector, reporter *report.Reporter, jobs int) *Driver {
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	return &Driver{registry: reg, selector: sel, reporter: reporter, jobs: jobs}
}

// Run analyzes the resolved project and returns the aggregated messages.
// Per-file failures are contained and reported; only cancellation or a
// project-wide check failure abort the run. When Run returns an error no
// partial results are exposed.
func (d *Driver) Run(ctx context.Context, proj *project.Project) (*Results, error) {
	files := d.selector.Select(proj.Files)
	if len(files) == 0 {
		d.reporter.Infof("all project files were ignored, nothing to analyze")
		return &Results{}, nil
	}

	checked, err := typecheck.CheckProject(ctx, proj.Options)
	if err != nil {
		return nil, err
	}

	agg := NewAggregator()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.jobs)
	for _, file := range files {
		file := file
		g.Go(func() error {
			return d.analyzeFile(gctx, checked, file, agg)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Results{Messages: agg.Messages()}, nil
}

// analyzeFile pushes one file through type-check, context build and
// analyzer dispatch. File-scoped failures are reported and swallowed so
// one broken file cannot suppress results for the rest of the project.
func (d *Driver) analyzeFile(ctx context.Context, checked *typecheck.ProjectResult, path string, agg *Aggregator) error {
	content, err := os.ReadFile(path)
	if err != nil {
		d.reporter.Errorf("unable to read %s: %v", path, err)
		return nil
	}

	result, err := checked.CheckFile(ctx, path, content)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		// Covers typecheck.ErrAborted: the file is dropped, the run continues.
		d.reporter.Errorf("%v", err)
		return nil
	}

	actx, ok := analyzer.NewContext(result.Path, result.Content, result.Syntax, result.Pkg, checked.Packages)
	if !ok {
		// No typed representation of the file body. Not an error.
		return nil
	}

	messages, err := d.registry.Run(actx)
	if err != nil {
		return err
	}
	agg.Add(path, messages)
	return nil
}
