package sign

import (
	"fmt"

	"github.com/superpicky/releaser/pkg/context"
	"github.com/superpicky/releaser/pkg/sign"
)

// Pipe deep-signs the application bundle, inner binaries first so later
// signatures never invalidate earlier ones.
type Pipe struct{}

func (Pipe) String() string { return "signing application" }

func (Pipe) Run(ctx *context.Context) error {
	if ctx.Artifacts.AppPath == "" {
		return fmt.Errorf("no .app found to sign — ensure the bundle step completed successfully")
	}

	identity := ctx.Config.Sign.Identity
	entitlements := ctx.Config.Sign.Entitlements
	appPath := ctx.Artifacts.AppPath

	// Pre-sign embedded libraries with the hardened runtime. Per-file
	// failures are tolerated: some files are already validly signed or not
	// signable at all, and the deep bundle sign below is the authoritative
	// gate. The attempt still matters because notarization requires the
	// hardened-runtime flag on every Mach-O.
	libs, err := sign.CollectLibraries(appPath)
	if err != nil {
		return err
	}
	ctx.Logger.Infof("Signing %d embedded libraries", len(libs))
	for _, lib := range libs {
		if out, err := sign.File(ctx.StdCtx, ctx.Tools, identity, lib); err != nil {
			ctx.Logger.Warnf("Could not pre-sign %s: %v", lib, err)
			ctx.Logger.Debug(out)
		}
	}

	// Same tolerance policy for the executables
	executables, err := sign.CollectExecutables(appPath)
	if err != nil {
		return err
	}
	ctx.Logger.Infof("Signing %d executables", len(executables))
	for _, exe := range executables {
		if out, err := sign.File(ctx.StdCtx, ctx.Tools, identity, exe); err != nil {
			ctx.Logger.Warnf("Could not pre-sign %s: %v", exe, err)
			ctx.Logger.Debug(out)
		}
	}

	ctx.Artifacts.Binaries = append(append(ctx.Artifacts.Binaries, libs...), executables...)

	// The bundle-level deep sign is fatal on failure
	ctx.Logger.Infof("Signing %s", appPath)
	out, err := sign.Bundle(ctx.StdCtx, ctx.Tools, identity, entitlements, appPath)
	if err != nil {
		ctx.Logger.Debug(out)
		return fmt.Errorf("signing failed: %w", err)
	}
	ctx.Logger.Debug(out)

	ctx.Logger.Info("Verifying signature")
	out, err = sign.VerifyBundle(ctx.StdCtx, ctx.Tools, appPath)
	if err != nil {
		ctx.Logger.Debug(out)
		return fmt.Errorf("signature verification failed: %w", err)
	}
	ctx.Logger.Debug(out)

	ctx.Logger.Infof("Signed and verified: %s", appPath)
	return nil
}
