package version

import (
	"fmt"

	"github.com/superpicky/releaser/pkg/context"
	"github.com/superpicky/releaser/pkg/version"
)

// Pipe resolves the release version from the configured source text.
// Runs before bundling because every artifact name derives from it.
type Pipe struct{}

func (Pipe) String() string { return "resolving release version" }

func (Pipe) Run(ctx *context.Context) error {
	resolved, err := version.ResolveFromFile(ctx.Config.Version.Source)
	if err != nil {
		return fmt.Errorf("version not found: %w", err)
	}

	ctx.Version = resolved
	ctx.Logger.Infof("Version: %s", resolved)
	return nil
}
