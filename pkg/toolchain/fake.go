package toolchain

import (
	"context"
	"strings"
	"sync"
)

// Ensure Fake implements Runner
var _ Runner = (*Fake)(nil)

// Call records a single command execution through the fake.
type Call struct {
	Name string
	Args []string
}

// Fake is a recording Runner for tests. By default every LookPath succeeds
// and every Run returns empty output and no error; set the hook functions
// to script specific behavior.
type Fake struct {
	mu    sync.Mutex
	Calls []Call

	// RunFunc, if set, is consulted for every Run call.
	RunFunc func(name string, args []string) (string, error)

	// LookPathFunc, if set, is consulted for every LookPath call.
	LookPathFunc func(name string) (string, error)
}

func (f *Fake) LookPath(name string) (string, error) {
	if f.LookPathFunc != nil {
		return f.LookPathFunc(name)
	}
	return name, nil
}

func (f *Fake) Run(_ context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, Call{Name: name, Args: args})
	f.mu.Unlock()

	if f.RunFunc != nil {
		return f.RunFunc(name, args)
	}
	return "", nil
}

// CallCount returns how many recorded calls invoked the named tool.
func (f *Fake) CallCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, c := range f.Calls {
		if c.Name == name {
			count++
		}
	}
	return count
}

// CommandLines renders every recorded call as a single string, useful for
// asserting on argument construction.
func (f *Fake) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		lines = append(lines, c.Name+" "+strings.Join(c.Args, " "))
	}
	return lines
}
