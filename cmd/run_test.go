package cmd_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/pluglint/pluglint/cmd"
	"github.com/pluglint/pluglint/driver"
)

// runApp runs the CLI in-process. The no-op exit handler keeps cli from
// calling os.Exit so the ExitCoder error reaches the test.
func runApp(args ...string) error {
	app := cli.NewApp()
	app.ExitErrHandler = func(*cli.Context, error) {}
	app.Commands = []*cli.Command{cmd.RunCommand}
	return app.Run(append([]string{"pluglint"}, args...))
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var coder cli.ExitCoder
	require.True(t, errors.As(err, &coder), "expected an exit-coded error, got %v", err)
	return coder.ExitCode()
}

func TestRunWithoutProjectIsRunFailure(t *testing.T) {
	err := runApp("run")
	assert.Equal(t, driver.ExitRunFailure, exitCode(t, err))
}

func TestRunUnresolvableProjectIsRunFailure(t *testing.T) {
	err := runApp("run", "--project", filepath.Join(t.TempDir(), "absent"))
	assert.Equal(t, driver.ExitRunFailure, exitCode(t, err))
}

func TestRunMissingAnalyzersDirIsRunFailure(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"go.mod": "module example.com/sample\n\ngo 1.21\n",
		"a.go":   "package sample\n\nfunc A() int { return 1 }\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	err := runApp("run", "--project", dir, "--analyzers-path", filepath.Join(dir, "analyzers"))
	assert.Equal(t, driver.ExitRunFailure, exitCode(t, err))
}

func TestRunBadConfigIsRunFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pluglint.yaml")
	if err := os.WriteFile(path, []byte("analyzers_path: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := runApp("run", "--config", path, "--project", t.TempDir())
	assert.Equal(t, driver.ExitRunFailure, exitCode(t, err))
}
