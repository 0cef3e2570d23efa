// Package fakes provides an in-memory Runner for testing provisioning logic.
package fakes

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Call records a single command invocation.
type Call struct {
	Name string
	Args []string
}

// String renders the call as the command line it represents.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result scripts the outcome of a command matched by prefix.
type Result struct {
	Output string
	Err    error
}

// FakeRunner simulates command execution. Outputs and errors are scripted
// per command-line prefix; every invocation is recorded for assertions.
type FakeRunner struct {
	mu      sync.Mutex
	calls   []Call
	results map[string]Result
	// Binaries lists names LookPath reports as present.
	Binaries map[string]string
}

// NewFakeRunner creates an empty FakeRunner with no binaries on PATH.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		results:  make(map[string]Result),
		Binaries: make(map[string]string),
	}
}

// Script sets the result for any command line starting with prefix.
func (f *FakeRunner) Script(prefix, output string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[prefix] = Result{Output: output, Err: err}
}

// AddBinary marks a binary as present on the fake PATH.
func (f *FakeRunner) AddBinary(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Binaries[name] = "/usr/bin/" + name
}

// RemoveBinary removes a binary from the fake PATH.
func (f *FakeRunner) RemoveBinary(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Binaries, name)
}

// Run implements system.Runner.
func (f *FakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := Call{Name: name, Args: args}
	f.calls = append(f.calls, call)

	line := call.String()
	var (
		best    string
		matched bool
	)
	for prefix := range f.results {
		if strings.HasPrefix(line, prefix) && len(prefix) > len(best) {
			best = prefix
			matched = true
		}
	}
	if matched {
		res := f.results[best]
		return res.Output, res.Err
	}
	return "", nil
}

// LookPath implements system.Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if path, ok := f.Binaries[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

// Calls returns a copy of all recorded invocations.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many recorded command lines start with prefix.
func (f *FakeRunner) CallCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c.String(), prefix) {
			n++
		}
	}
	return n
}

// Reset clears all recorded calls but keeps scripted results and binaries.
func (f *FakeRunner) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}
