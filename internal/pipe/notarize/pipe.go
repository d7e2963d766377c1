package notarize

import (
	"fmt"

	"github.com/superpicky/releaser/pkg/context"
	"github.com/superpicky/releaser/pkg/keychain"
	"github.com/superpicky/releaser/pkg/notarize"
)

// Pipe submits the signed disk image to the Apple notary service and
// blocks until the verdict arrives. Release mode only.
type Pipe struct{}

func (Pipe) String() string { return "notarizing disk image" }

func (Pipe) Run(ctx *context.Context) error {
	if !ctx.Mode.IsRelease() {
		return skipError("notarization skipped in test mode")
	}

	if ctx.Artifacts.ImagePath == "" {
		return fmt.Errorf("no disk image found to notarize — ensure the dmg step completed successfully")
	}

	cfg := ctx.Config.Notarize

	// The credential lives in memory for this stage only; it is needed
	// again for the diagnostic log fetch on rejection.
	password, err := keychain.FindPassword(ctx.StdCtx, ctx.Tools, cfg.KeychainItem, cfg.AppleID)
	if err != nil {
		return fmt.Errorf("credential lookup failed: %w", err)
	}

	ctx.Logger.Info("Submitting to Apple notary service (this may take several minutes)...")
	out, submitErr := notarize.Submit(ctx.StdCtx, ctx.Tools, ctx.Artifacts.ImagePath, cfg.AppleID, cfg.TeamID, password)
	ctx.Logger.Debug(out)

	verdict := notarize.ParseVerdict(out)
	if verdict.Accepted {
		ctx.Artifacts.Notarized = true
		ctx.Logger.Infof("Notarization accepted: %s", ctx.Artifacts.ImagePath)
		return nil
	}

	// Rejected or indeterminate: best-effort diagnostic retrieval before
	// failing the stage.
	if verdict.SubmissionID != "" {
		ctx.Logger.Errorf("Notarization rejected (submission %s), fetching log", verdict.SubmissionID)
		log, logErr := notarize.FetchLog(ctx.StdCtx, ctx.Tools, verdict.SubmissionID, cfg.AppleID, cfg.TeamID, password)
		if logErr != nil {
			ctx.Logger.Warnf("Could not fetch notarization log: %v", logErr)
		} else {
			ctx.Logger.Error(log)
		}
	}

	if submitErr != nil {
		return fmt.Errorf("notarization failed: %w", submitErr)
	}
	return fmt.Errorf("notarization rejected for %s", ctx.Artifacts.ImagePath)
}
