package clean

import (
	"fmt"
	"os"

	"github.com/superpicky/releaser/pkg/context"
)

// Pipe unconditionally removes build and output residue from prior runs.
// Re-invoking the whole pipeline is always safe because of this stage: no
// later stage ever reads state a previous run left behind.
type Pipe struct{}

func (Pipe) String() string { return "cleaning previous build output" }

func (Pipe) Run(ctx *context.Context) error {
	for _, dir := range []string{"build", "dist"} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove %s: %w", dir, err)
		}
	}

	if err := os.MkdirAll("dist", 0755); err != nil {
		return fmt.Errorf("failed to create dist: %w", err)
	}

	ctx.Logger.Debug("Removed build/ and dist/ residue")
	return nil
}
