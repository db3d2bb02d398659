package driver

import (
	"sort"
	"sync"

	"github.com/pluglint/pluglint/analyzer"
)

// Aggregator collects the messages produced across the whole file set.
// It performs no filtering or deduplication; severity decisions belong to
// the exit policy. Safe for concurrent use by the worker pool.
type Aggregator struct {
	mu     sync.Mutex
	byFile map[string][]*analyzer.Message
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{byFile: make(map[string][]*analyzer.Message)}
}

// Add records the messages produced for one file. Within a file the given
// order (analyzer registration order, then emission order) is preserved.
func (a *Aggregator) Add(path string, messages []*analyzer.Message) {
	if len(messages) == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.byFile[path] = append(a.byFile[path], messages...)
}

// Len returns the number of collected messages.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, messages := range a.byFile {
		n += len(messages)
	}
	return n
}

// Messages returns the final ordered sequence: files sorted by path, and
// within each file the order the messages were added. Files may have been
// analyzed out of order by the pool; sorting here keeps output reproducible.
func (a *Aggregator) Messages() []*analyzer.Message {
	a.mu.Lock()
	defer a.mu.Unlock()

	paths := make([]string, 0, len(a.byFile))
	for path := range a.byFile {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var out []*analyzer.Message
	for _, path := range paths {
		out = append(out, a.byFile[path]...)
	}
	return out
}
