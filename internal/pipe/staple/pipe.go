package staple

import (
	"fmt"

	"github.com/superpicky/releaser/pkg/context"
	"github.com/superpicky/releaser/pkg/notarize"
)

// Pipe attaches the notarization ticket to the accepted disk image and
// validates the attachment. Release mode only.
type Pipe struct{}

func (Pipe) String() string { return "stapling notarization ticket" }

func (Pipe) Run(ctx *context.Context) error {
	if !ctx.Mode.IsRelease() {
		return skipError("stapling skipped in test mode")
	}

	if ctx.Artifacts.ImagePath == "" {
		return fmt.Errorf("no disk image found to staple — ensure the dmg step completed successfully")
	}
	if !ctx.Artifacts.Notarized {
		return fmt.Errorf("disk image was not notarized — refusing to staple")
	}

	imagePath := ctx.Artifacts.ImagePath

	ctx.Logger.Infof("Stapling ticket to %s", imagePath)
	out, err := notarize.Staple(ctx.StdCtx, ctx.Tools, imagePath)
	if err != nil {
		ctx.Logger.Debug(out)
		return fmt.Errorf("stapling failed: %w", err)
	}
	ctx.Logger.Debug(out)

	ctx.Logger.Info("Validating stapled ticket")
	out, err = notarize.ValidateStaple(ctx.StdCtx, ctx.Tools, imagePath)
	if err != nil {
		ctx.Logger.Debug(out)
		return fmt.Errorf("staple validation failed: %w", err)
	}
	ctx.Logger.Debug(out)

	ctx.Logger.Infof("Ticket stapled and validated: %s", imagePath)
	return nil
}
