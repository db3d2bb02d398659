// Package registry holds the set of discovered analyzers for a run and
// dispatches analysis contexts to them, isolating failures so one broken
// analyzer cannot suppress the results of the others.
package registry

import (
	"fmt"
	"sync"

	"github.com/pluglint/pluglint/analyzer"
	"github.com/pluglint/pluglint/report"
)

type state int

const (
	stateUnloaded state = iota
	stateLoaded
	stateRunning
	stateDisposed
)

// Binding is one candidate analyzer resolved from a plugin binary; the
// registry validates its shape before registering it.
type Binding struct {
	Origin string // plugin binary the candidate came from, or "builtin"
	Value  any
}

// Descriptor describes one registered analyzer.
type Descriptor struct {
	Name   string
	Origin string

	impl analyzer.Analyzer
}

// Registry owns the analyzer descriptors for the lifetime of a run.
// Load fixes the analyzer set before the first Run call, so every file is
// analyzed by the same analyzers in the same order.
type Registry struct {
	reporter *report.Reporter

	mu          sync.Mutex
	state       state
	descriptors []Descriptor
	skipped     int
}

// New returns an empty registry in the unloaded state.
func New(reporter *report.Reporter) *Registry {
	return &Registry{reporter: reporter}
}

// Load validates and registers the given candidate bindings, in order.
// Candidates that do not satisfy the analyzer capability shape are skipped;
// the skip count is reported. Load may only be called once, before any Run.
func (r *Registry) Load(bindings []Binding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != stateUnloaded {
		return fmt.Errorf("registry already loaded")
	}
	for _, binding := range bindings {
		impl, ok := asAnalyzer(binding.Value)
		if !ok {
			r.skipped++
			continue
		}
		r.descriptors = append(r.descriptors, Descriptor{
			Name:   impl.Name(),
			Origin: binding.Origin,
			impl:   impl,
		})
	}
	r.state = stateLoaded
	if r.skipped > 0 {
		r.reporter.Infof("skipped %d candidate(s) not matching the analyzer interface", r.skipped)
	}
	r.reporter.Infof("registered %d analyzer(s)", len(r.descriptors))
	return nil
}

// asAnalyzer checks a candidate against the capability shape. Plugin symbol
// lookups on variables yield pointers, so both forms are accepted.
func asAnalyzer(value any) (analyzer.Analyzer, bool) {
	switch v := value.(type) {
	case analyzer.Analyzer:
		return v, true
	case *analyzer.Analyzer:
		if v != nil && *v != nil {
			return *v, true
		}
	}
	return nil, false
}

// Len returns the number of registered analyzers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.descriptors)
}

// Skipped returns how many load-time candidates were rejected.
func (r *Registry) Skipped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.skipped
}

// Descriptors returns the registered analyzers in registration order.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Run invokes every registered analyzer against the context, in
// registration order, and concatenates their messages. A failing analyzer
// is surfaced as an error notice naming it and does not affect the others.
// Run is safe for concurrent use across contexts.
func (r *Registry) Run(actx *analyzer.Context) ([]*analyzer.Message, error) {
	r.mu.Lock()
	switch r.state {
	case stateLoaded:
		r.state = stateRunning
	case stateRunning:
	default:
		r.mu.Unlock()
		return nil, fmt.Errorf("registry is not loaded")
	}
	descriptors := r.descriptors
	r.mu.Unlock()

	var messages []*analyzer.Message
	for i := range descriptors {
		messages = append(messages, r.invoke(&descriptors[i], actx)...)
	}
	return messages, nil
}

// invoke runs one analyzer, converting panics and error returns into
// notices attributed to the analyzer.
func (r *Registry) invoke(desc *Descriptor, actx *analyzer.Context) (messages []*analyzer.Message) {
	defer func() {
		if rec := recover(); rec != nil {
			r.reporter.Errorf("analyzer %s panicked on %s: %v", desc.Name, actx.Path, rec)
			messages = nil
		}
	}()
	messages, err := desc.impl.Analyze(actx)
	if err != nil {
		r.reporter.Errorf("analyzer %s failed on %s: %v", desc.Name, actx.Path, err)
		return nil
	}
	return messages
}

// Dispose releases the registry. Subsequent Run calls fail.
func (r *Registry) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = stateDisposed
	r.descriptors = nil
}
