package project

import (
	"github.com/superpicky/releaser/pkg/context"
	"github.com/superpicky/releaser/pkg/validate"
)

// CheckPipe validates the app and input-path configuration
type CheckPipe struct{}

func (CheckPipe) String() string { return "validating project configuration" }

func (CheckPipe) Run(ctx *context.Context) error {
	cfg := ctx.Config

	if err := validate.RequiredString(cfg.App.Name, "app.name"); err != nil {
		return err
	}
	if err := validate.RequiredString(cfg.App.BundleID, "app.bundle_id"); err != nil {
		return err
	}
	if err := validate.RequiredString(cfg.Sign.Identity, "sign.identity"); err != nil {
		return err
	}
	if err := validate.RequiredString(cfg.Sign.Entitlements, "sign.entitlements"); err != nil {
		return err
	}
	if err := validate.RequiredString(cfg.Bundle.Spec, "bundle.spec"); err != nil {
		return err
	}
	if err := validate.RequiredSlice(cfg.Bundle.ToolPaths, "bundle.tool_paths"); err != nil {
		return err
	}
	if err := validate.RequiredString(cfg.Version.Source, "version.source"); err != nil {
		return err
	}

	ctx.Logger.Debug("Project configuration validated successfully")
	return nil
}
