package imagesign

import (
	"fmt"

	"github.com/superpicky/releaser/pkg/context"
	"github.com/superpicky/releaser/pkg/sign"
)

// Pipe signs and verifies the disk image as a standalone artifact.
type Pipe struct{}

func (Pipe) String() string { return "signing disk image" }

func (Pipe) Run(ctx *context.Context) error {
	if ctx.Artifacts.ImagePath == "" {
		return fmt.Errorf("no disk image found to sign — ensure the dmg step completed successfully")
	}

	imagePath := ctx.Artifacts.ImagePath

	ctx.Logger.Infof("Signing %s", imagePath)
	out, err := sign.ImageFile(ctx.StdCtx, ctx.Tools, ctx.Config.Sign.Identity, imagePath)
	if err != nil {
		ctx.Logger.Debug(out)
		return fmt.Errorf("image signing failed: %w", err)
	}
	ctx.Logger.Debug(out)

	ctx.Logger.Info("Verifying image signature")
	out, err = sign.VerifyFile(ctx.StdCtx, ctx.Tools, imagePath)
	if err != nil {
		ctx.Logger.Debug(out)
		return fmt.Errorf("image signature verification failed: %w", err)
	}
	ctx.Logger.Debug(out)

	ctx.Logger.Infof("Signed and verified: %s", imagePath)
	return nil
}
