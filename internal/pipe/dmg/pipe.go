package dmg

import (
	"fmt"
	"path/filepath"

	"github.com/superpicky/releaser/pkg/archive"
	"github.com/superpicky/releaser/pkg/config"
	"github.com/superpicky/releaser/pkg/context"
)

// Pipe stages the signed bundle and produces the compressed, read-only
// disk image under dist/.
type Pipe struct{}

func (Pipe) String() string { return "creating disk image" }

func (Pipe) Run(ctx *context.Context) error {
	if ctx.Artifacts.AppPath == "" {
		return fmt.Errorf("no .app found to package — ensure the sign step completed successfully")
	}
	if ctx.Version == "" {
		return fmt.Errorf("no resolved version — ensure the version step completed successfully")
	}

	outputPath := filepath.Join("dist", OutputName(ctx.Config.App.Name, ctx.Version, ctx.Mode))

	ctx.Logger.Infof("Creating DMG: %s", outputPath)
	if err := archive.CreateDMG(ctx.StdCtx, ctx.Tools, ctx.Artifacts.AppPath, outputPath, ctx.Config.App.Name); err != nil {
		return fmt.Errorf("DMG packaging failed: %w", err)
	}

	ctx.Artifacts.ImagePath = outputPath
	ctx.Logger.Infof("DMG created: %s", outputPath)
	return nil
}

// OutputName derives the image filename: <AppName>_v<version>.dmg, with a
// _test suffix in test mode.
func OutputName(appName, version string, mode config.Mode) string {
	if mode.IsRelease() {
		return fmt.Sprintf("%s_v%s.dmg", appName, version)
	}
	return fmt.Sprintf("%s_v%s_test.dmg", appName, version)
}
