package notarize

import (
	"fmt"

	"github.com/superpicky/releaser/pkg/context"
	"github.com/superpicky/releaser/pkg/env"
	"github.com/superpicky/releaser/pkg/keychain"
	"github.com/superpicky/releaser/pkg/validate"
)

// CheckPipe verifies the notarization credential is stored before any
// expensive work starts. Only applies in release mode.
type CheckPipe struct{}

func (CheckPipe) String() string { return "checking notarization credential" }

func (CheckPipe) Run(ctx *context.Context) error {
	if !ctx.Mode.IsRelease() {
		return skipError("notarization not performed in test mode")
	}

	cfg := ctx.Config.Notarize

	if err := env.CheckResolved(cfg.AppleID, "notarize.apple_id"); err != nil {
		return err
	}
	if err := env.CheckResolved(cfg.TeamID, "notarize.team_id"); err != nil {
		return err
	}

	if err := validate.RequiredString(cfg.AppleID, "notarize.apple_id"); err != nil {
		return err
	}
	if err := validate.RequiredString(cfg.TeamID, "notarize.team_id"); err != nil {
		return err
	}
	if err := validate.RequiredString(cfg.KeychainItem, "notarize.keychain_item"); err != nil {
		return err
	}

	if err := keychain.HasCredential(ctx.StdCtx, ctx.Tools, cfg.KeychainItem, cfg.AppleID); err != nil {
		return fmt.Errorf("missing credential: %w", err)
	}

	ctx.Logger.Debugf("Notarization credential available for %s", cfg.AppleID)
	return nil
}
