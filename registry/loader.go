package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"plugin"

	"github.com/pluglint/pluglint/analyzer"
	"github.com/pluglint/pluglint/report"
)

// Plugin binaries export their analyzers through one of these symbols,
// compiled against the analyzer package of this module.
const (
	symbolAnalyzers = "Analyzers" // var Analyzers []analyzer.Analyzer
	symbolAnalyzer  = "Analyzer"  // var Analyzer analyzer.Analyzer
)

// LoadBinaries resolves candidate analyzer bindings from every shared
// object in dir. Binaries that cannot be opened or export no known symbol
// are reported and skipped; they never fail the load.
func LoadBinaries(dir string, reporter *report.Reporter) ([]Binding, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to determine absolute analyzers path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("unable to read analyzers directory %s: %w", dir, err)
	}

	var bindings []Binding
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".so" {
			continue
		}
		path := filepath.Join(abs, entry.Name())
		bindings = append(bindings, openBinary(path, reporter)...)
	}
	return bindings, nil
}

// openBinary extracts candidate bindings from a single plugin binary.
// A slice-valued Analyzers symbol contributes one binding per element.
func openBinary(path string, reporter *report.Reporter) []Binding {
	plug, err := plugin.Open(path)
	if err != nil {
		reporter.Errorf("skipping plugin %s: %v", path, err)
		return nil
	}

	if sym, err := plug.Lookup(symbolAnalyzers); err == nil {
		return flatten(path, sym)
	}
	sym, err := plug.Lookup(symbolAnalyzer)
	if err != nil {
		reporter.Errorf("skipping plugin %s: no %s or %s symbol", path, symbolAnalyzers, symbolAnalyzer)
		return nil
	}
	return []Binding{{Origin: path, Value: sym}}
}

func flatten(path string, sym any) []Binding {
	values, ok := sym.(*[]analyzer.Analyzer)
	if !ok {
		return []Binding{{Origin: path, Value: sym}}
	}
	bindings := make([]Binding, 0, len(*values))
	for _, v := range *values {
		bindings = append(bindings, Binding{Origin: path, Value: v})
	}
	return bindings
}
