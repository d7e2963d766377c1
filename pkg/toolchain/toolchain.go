// Package toolchain abstracts the external command-line tools the pipeline
// drives (security, codesign, pyinstaller, hdiutil, xcrun).
//
// Every stage talks to the platform through a Runner so the pipeline logic
// can be exercised against a recording fake without macOS tooling installed.
package toolchain

import (
	"context"
	"fmt"
	"os/exec"
)

// Runner executes external commands on behalf of the pipeline.
type Runner interface {
	// LookPath resolves a tool name or candidate path to an executable.
	// Returns an error if the tool is not present or not executable.
	LookPath(name string) (string, error)

	// Run executes the named tool with the given arguments and returns its
	// combined stdout/stderr output. A non-zero exit is returned as an error
	// alongside whatever output was produced.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// execRunner is the production Runner backed by os/exec.
type execRunner struct{}

// New returns a Runner that executes real commands.
func New() Runner {
	return execRunner{}
}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		return output, fmt.Errorf("%s failed: %w", name, err)
	}
	return output, nil
}
