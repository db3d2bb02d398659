// Package cmd defines all the commands for the cli
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/pluglint/pluglint/config"
	"github.com/pluglint/pluglint/driver"
	"github.com/pluglint/pluglint/project"
	"github.com/pluglint/pluglint/registry"
	"github.com/pluglint/pluglint/renderer"
	"github.com/pluglint/pluglint/report"
	"github.com/pluglint/pluglint/selector"
)

var (
	ProjectFlag = &cli.PathFlag{
		Name:  "project",
		Usage: "Path to the project to analyze",
	}
	AnalyzersPathFlag = &cli.PathFlag{
		Name:        "analyzers-path",
		Usage:       "Directory containing analyzer plugin binaries",
		DefaultText: config.DefaultAnalyzersPath,
	}
	FailOnWarningsFlag = &cli.StringSliceFlag{
		Name:  "fail-on-warnings",
		Usage: "Diagnostic codes escalated to failure at warning severity",
	}
	IgnoreFilesFlag = &cli.StringSliceFlag{
		Name:  "ignore-files",
		Usage: "Glob patterns for files excluded from analysis",
	}
	VerboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Enable informational diagnostics",
	}
	FormatFlag = &cli.StringFlag{
		Name:        "format",
		Usage:       "format of the output. Options: json, text",
		DefaultText: "text",
	}
	ReportOutputPathFlag = &cli.PathFlag{
		Name:  "report-output-path",
		Usage: "output file path for the report. Default: stdout",
	}
	ConfigFlag = &cli.PathFlag{
		Name:  "config",
		Usage: "Path to a YAML run configuration file",
	}
	JobsFlag = &cli.IntFlag{
		Name:  "jobs",
		Usage: "Number of files analyzed concurrently. Default: number of CPUs",
	}
)

func CreateRunCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "run",
		Usage:       "Runs every registered analyzer across the project's files",
		Description: "Runs every registered analyzer across the project's files",
		Action:      action,
		Flags: []cli.Flag{
			ProjectFlag,
			AnalyzersPathFlag,
			FailOnWarningsFlag,
			IgnoreFilesFlag,
			VerboseFlag,
			FormatFlag,
			ReportOutputPathFlag,
			ConfigFlag,
			JobsFlag,
		},
	}
}

var RunCommand = CreateRunCommand(RunAnalysis)

// RunAnalysis drives one full analysis run. Exit codes: 0 on success,
// driver.ExitAnalysisFailure when messages trigger the failure policy, and
// driver.ExitRunFailure when the run could not execute at all.
func RunAnalysis(ctx *cli.Context) error {
	reporter := report.New(os.Stderr, ctx.Bool(VerboseFlag.Name))

	cfg, err := loadConfig(ctx)
	if err != nil {
		reporter.Errorf("%v", err)
		return cli.Exit("", driver.ExitRunFailure)
	}

	projectPath := ctx.Path(ProjectFlag.Name)
	if projectPath == "" {
		reporter.Errorf("no project specified, use --project")
		return cli.Exit("", driver.ExitRunFailure)
	}

	runCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt)
	defer stop()

	proj, err := project.Resolve(runCtx, projectPath, project.Options{})
	if err != nil {
		reporter.Errorf("%v", err)
		return cli.Exit("", driver.ExitRunFailure)
	}
	reporter.Infof("resolved %d file(s) in %s", len(proj.Files), proj.Dir)

	reg := registry.New(reporter)
	defer reg.Dispose()
	bindings, err := registry.LoadBinaries(cfg.AnalyzersPath, reporter)
	if err != nil {
		reporter.Errorf("%v", err)
		return cli.Exit("", driver.ExitRunFailure)
	}
	if err := reg.Load(bindings); err != nil {
		reporter.Errorf("%v", err)
		return cli.Exit("", driver.ExitRunFailure)
	}
	if reg.Len() == 0 {
		reporter.Errorf("no analyzers found in %s", cfg.AnalyzersPath)
		return cli.Exit("", driver.ExitRunFailure)
	}

	sel, err := selector.New(cfg.IgnoreFiles, reporter)
	if err != nil {
		reporter.Errorf("%v", err)
		return cli.Exit("", driver.ExitRunFailure)
	}

	results, err := driver.New(reg, sel, reporter, cfg.Jobs).Run(runCtx, proj)
	if err != nil {
		reporter.Errorf("analysis did not complete: %v", err)
		return cli.Exit("", driver.ExitRunFailure)
	}

	if err := writeReport(results, cfg.Format, ctx.Path(ReportOutputPathFlag.Name)); err != nil {
		reporter.Errorf("unable to write report: %v", err)
		return cli.Exit("", driver.ExitRunFailure)
	}

	if code := driver.ExitCode(results, cfg.FailOnWarnings); code != driver.ExitSuccess {
		return cli.Exit("", code)
	}
	return nil
}

// loadConfig builds the effective configuration: config file values first,
// command-line flags on top.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := ctx.Path(ConfigFlag.Name); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if ctx.IsSet(AnalyzersPathFlag.Name) {
		cfg.AnalyzersPath = ctx.Path(AnalyzersPathFlag.Name)
	}
	if ctx.IsSet(FailOnWarningsFlag.Name) {
		cfg.FailOnWarnings = ctx.StringSlice(FailOnWarningsFlag.Name)
	}
	if ctx.IsSet(IgnoreFilesFlag.Name) {
		cfg.IgnoreFiles = ctx.StringSlice(IgnoreFilesFlag.Name)
	}
	if ctx.IsSet(FormatFlag.Name) {
		cfg.Format = ctx.String(FormatFlag.Name)
	}
	if ctx.IsSet(JobsFlag.Name) {
		cfg.Jobs = ctx.Int(JobsFlag.Name)
	}
	return cfg, nil
}

// writeReport outputs the results in the specified format.
func writeReport(results *driver.Results, format, outputPath string) error {
	var output *os.File
	if outputPath == "" {
		output = os.Stdout
	} else {
		absPath, err := filepath.Abs(outputPath)
		if err != nil {
			return fmt.Errorf("unable to determine absolute path: %w", err)
		}
		output, err = os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("unable to open output file: %w", err)
		}
		defer func() {
			_ = output.Close()
		}()
	}

	var rendererInstance renderer.Renderer
	switch format {
	case "text", "":
		rendererInstance = renderer.NewTextRenderer()
	case "json":
		rendererInstance = renderer.NewJSONRenderer()
	default:
		return fmt.Errorf("invalid format: %s", format)
	}

	return rendererInstance.Render(results.Messages, output)
}
