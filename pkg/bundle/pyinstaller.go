// Package bundle drives the external packaging tool (pyinstaller) that
// turns the application sources into an executable .app bundle. The tool
// itself is an opaque collaborator; this package only resolves it, invokes
// it, and checks that it actually produced output.
package bundle

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/superpicky/releaser/pkg/toolchain"
)

// ResolveTool finds the packaging tool through the configured search list.
// Each candidate is tried in order: bare names resolve through PATH, path
// entries are checked directly. The first hit wins.
func ResolveTool(tools toolchain.Runner, searchPaths []string) (string, error) {
	if len(searchPaths) == 0 {
		return "", fmt.Errorf("no packaging tool candidates configured (bundle.tool_paths)")
	}

	for _, candidate := range searchPaths {
		if path, err := tools.LookPath(candidate); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf(
		"packaging tool not found — tried: %s\ninstall it with: pip install pyinstaller",
		strings.Join(searchPaths, ", "),
	)
}

// Run invokes the packaging tool against the spec descriptor. --noconfirm
// replaces any prior output without prompting and --clean discards the
// tool's own caches, so a rerun never reuses stale state. Returns combined
// output and any error.
func Run(ctx context.Context, tools toolchain.Runner, tool, specPath string) (string, error) {
	out, err := tools.Run(ctx, tool, "--noconfirm", "--clean", specPath)
	if err != nil {
		return out, fmt.Errorf("packaging failed: %s: %w", strings.TrimSpace(out), err)
	}
	return out, nil
}

// VerifyOutput checks that the expected bundle directory exists. The
// packaging tool can exit zero after a partial failure, so its exit status
// alone is not trusted.
func VerifyOutput(appPath string) error {
	info, err := os.Stat(appPath)
	if err != nil {
		return fmt.Errorf("packaging produced no output at %s — the packaging tool reported success but the bundle is missing", appPath)
	}
	if !info.IsDir() {
		return fmt.Errorf("expected a bundle directory at %s, found a file", appPath)
	}
	return nil
}
