package registry_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluglint/pluglint/analyzer"
	"github.com/pluglint/pluglint/registry"
	"github.com/pluglint/pluglint/report"
)

type fakeAnalyzer struct {
	name     string
	messages []*analyzer.Message
	err      error
	panics   bool
}

func (f *fakeAnalyzer) Name() string { return f.name }

func (f *fakeAnalyzer) Analyze(_ *analyzer.Context) ([]*analyzer.Message, error) {
	if f.panics {
		panic("broken analyzer")
	}
	return f.messages, f.err
}

func message(code string) *analyzer.Message {
	return &analyzer.Message{
		Path:        "/p/a.go",
		StartLine:   1,
		StartColumn: 1,
		Severity:    analyzer.SeverityWarning,
		Code:        code,
		Text:        "finding " + code,
	}
}

func builtin(a analyzer.Analyzer) registry.Binding {
	return registry.Binding{Origin: "builtin", Value: a}
}

func TestRunConcatenatesInRegistrationOrder(t *testing.T) {
	reg := registry.New(report.New(&bytes.Buffer{}, false))
	err := reg.Load([]registry.Binding{
		builtin(&fakeAnalyzer{name: "first", messages: []*analyzer.Message{message("A001"), message("A002")}}),
		builtin(&fakeAnalyzer{name: "second", messages: []*analyzer.Message{message("B001")}}),
	})
	require.NoError(t, err)

	messages, err := reg.Run(&analyzer.Context{Path: "/p/a.go"})
	require.NoError(t, err)

	codes := make([]string, 0, len(messages))
	for _, msg := range messages {
		codes = append(codes, msg.Code)
	}
	assert.Equal(t, []string{"A001", "A002", "B001"}, codes)
}

func TestRunIsolatesFailingAnalyzer(t *testing.T) {
	var out bytes.Buffer
	reg := registry.New(report.New(&out, false))
	err := reg.Load([]registry.Binding{
		builtin(&fakeAnalyzer{name: "before", messages: []*analyzer.Message{message("A001")}}),
		builtin(&fakeAnalyzer{name: "crasher", panics: true}),
		builtin(&fakeAnalyzer{name: "failer", err: errors.New("boom")}),
		builtin(&fakeAnalyzer{name: "after", messages: []*analyzer.Message{message("B001")}}),
	})
	require.NoError(t, err)

	messages, err := reg.Run(&analyzer.Context{Path: "/p/a.go"})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "A001", messages[0].Code)
	assert.Equal(t, "B001", messages[1].Code)

	// Both failures are attributed to their analyzer.
	assert.Contains(t, out.String(), "crasher")
	assert.Contains(t, out.String(), "broken analyzer")
	assert.Contains(t, out.String(), "failer")
	assert.Contains(t, out.String(), "boom")
}

func TestLoadSkipsInvalidCandidates(t *testing.T) {
	reg := registry.New(report.New(&bytes.Buffer{}, false))
	err := reg.Load([]registry.Binding{
		builtin(&fakeAnalyzer{name: "valid"}),
		{Origin: "plug.so", Value: "not an analyzer"},
		{Origin: "plug.so", Value: 42},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 2, reg.Skipped())
}

func TestLoadAcceptsPointerBinding(t *testing.T) {
	reg := registry.New(report.New(&bytes.Buffer{}, false))
	var impl analyzer.Analyzer = &fakeAnalyzer{name: "pointed"}
	err := reg.Load([]registry.Binding{{Origin: "plug.so", Value: &impl}})
	require.NoError(t, err)

	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, "pointed", reg.Descriptors()[0].Name)
}

func TestLoadTwiceFails(t *testing.T) {
	reg := registry.New(report.New(&bytes.Buffer{}, false))
	require.NoError(t, reg.Load(nil))
	assert.Error(t, reg.Load(nil))
}

func TestRunBeforeLoadFails(t *testing.T) {
	reg := registry.New(report.New(&bytes.Buffer{}, false))
	_, err := reg.Run(&analyzer.Context{Path: "/p/a.go"})
	assert.Error(t, err)
}

func TestRunAfterDisposeFails(t *testing.T) {
	reg := registry.New(report.New(&bytes.Buffer{}, false))
	require.NoError(t, reg.Load([]registry.Binding{builtin(&fakeAnalyzer{name: "a"})}))
	reg.Dispose()

	_, err := reg.Run(&analyzer.Context{Path: "/p/a.go"})
	assert.Error(t, err)
}

func TestLoadAfterRunFails(t *testing.T) {
	reg := registry.New(report.New(&bytes.Buffer{}, false))
	require.NoError(t, reg.Load([]registry.Binding{builtin(&fakeAnalyzer{name: "a"})}))
	_, err := reg.Run(&analyzer.Context{Path: "/p/a.go"})
	require.NoError(t, err)

	// The analyzer set is fixed for the whole invocation.
	assert.Error(t, reg.Load([]registry.Binding{builtin(&fakeAnalyzer{name: "late"})}))
}
