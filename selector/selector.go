// Package selector filters a project's file list against a set of
// glob-style ignore patterns.
package selector

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pluglint/pluglint/report"
)

// Selector holds the ignore patterns compiled at startup. It is read-only
// for the remainder of the run.
type Selector struct {
	patterns []string
	reporter *report.Reporter
}

// New validates the given glob patterns and returns a Selector.
// Supported syntax is shell globbing including `*`, `**` and character
// classes, matched over slash-normalized absolute paths.
func New(patterns []string, reporter *report.Reporter) (*Selector, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid ignore pattern %q", p)
		}
	}
	return &Selector{patterns: patterns, reporter: reporter}, nil
}

// Select returns the subset of files matching none of the ignore patterns,
// preserving the input ordering. Each excluded file is reported with the
// pattern that matched it.
func (s *Selector) Select(files []string) []string {
	if len(s.patterns) == 0 {
		return files
	}
	selected := make([]string, 0, len(files))
	for _, file := range files {
		if pattern, ok := s.match(file); ok {
			s.reporter.Infof("ignoring %s: matched pattern %q", file, pattern)
			continue
		}
		selected = append(selected, file)
	}
	return selected
}

// match returns the first pattern matching the file, in pattern order.
func (s *Selector) match(file string) (string, bool) {
	normalized := filepath.ToSlash(file)
	base := path.Base(normalized)
	for _, pattern := range s.patterns {
		// Patterns without a separator apply to the file name alone,
		// so `*_test.go` works without a `**/` prefix.
		target := normalized
		if !strings.Contains(pattern, "/") {
			target = base
		}
		if ok, err := doublestar.Match(pattern, target); err == nil && ok {
			return pattern, true
		}
	}
	return "", false
}
