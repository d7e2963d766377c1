package bundle

import (
	"fmt"
	"os"

	"github.com/superpicky/releaser/pkg/bundle"
	"github.com/superpicky/releaser/pkg/context"
)

// CheckPipe verifies the packaging tool and the read-only input descriptors
// are present. Order within preflight: after the credential check, before
// any execution stage.
type CheckPipe struct{}

func (CheckPipe) String() string { return "checking packaging tool" }

func (CheckPipe) Run(ctx *context.Context) error {
	cfg := ctx.Config

	tool, err := bundle.ResolveTool(ctx.Tools, cfg.Bundle.ToolPaths)
	if err != nil {
		return fmt.Errorf("missing packaging tool: %w", err)
	}
	ctx.Logger.Debugf("Packaging tool: %s", tool)

	if _, err := os.Stat(cfg.Bundle.Spec); err != nil {
		return fmt.Errorf("packaging descriptor not found at %s: %w", cfg.Bundle.Spec, err)
	}
	if _, err := os.Stat(cfg.Sign.Entitlements); err != nil {
		return fmt.Errorf("missing entitlements: descriptor not found at %s: %w", cfg.Sign.Entitlements, err)
	}

	return nil
}
