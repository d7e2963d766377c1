package bundle

import (
	"fmt"
	"path/filepath"

	"github.com/superpicky/releaser/pkg/bundle"
	"github.com/superpicky/releaser/pkg/context"
)

// Pipe invokes the packaging tool to produce the raw application bundle.
type Pipe struct{}

func (Pipe) String() string { return "bundling application" }

func (Pipe) Run(ctx *context.Context) error {
	cfg := ctx.Config

	tool, err := bundle.ResolveTool(ctx.Tools, cfg.Bundle.ToolPaths)
	if err != nil {
		return err
	}

	ctx.Logger.Infof("Running %s against %s", tool, cfg.Bundle.Spec)
	out, err := bundle.Run(ctx.StdCtx, ctx.Tools, tool, cfg.Bundle.Spec)
	if err != nil {
		ctx.Logger.Debug(out)
		return err
	}
	ctx.Logger.Debug(out)

	// The tool's exit status is not trusted on its own
	appPath := filepath.Join("dist", cfg.App.Name+".app")
	if err := bundle.VerifyOutput(appPath); err != nil {
		return fmt.Errorf("bundling failed: %w", err)
	}

	ctx.Artifacts.AppPath = appPath
	ctx.Logger.Infof("Bundle produced: %s", appPath)
	return nil
}
