package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/superpicky/releaser/pkg/toolchain"
)

// CreateDMG stages the signed bundle next to an /Applications symlink and
// produces a compressed, read-only disk image at outputPath with hdiutil,
// overwriting any prior file of that name. volumeName is the name shown
// when the image is mounted.
//
// The staging directory is transient: created fresh here and removed on
// every path out, success or failure.
func CreateDMG(ctx context.Context, tools toolchain.Runner, appPath, outputPath, volumeName string) error {
	if _, err := tools.LookPath("hdiutil"); err != nil {
		return fmt.Errorf("hdiutil not found — this tool is required for DMG packaging on macOS")
	}

	staging, err := os.MkdirTemp("", "superpicky-dmg-")
	if err != nil {
		return fmt.Errorf("staging failed: %w", err)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	// cp -R preserves the bundle's resource structure and permissions
	if out, err := tools.Run(ctx, "cp", "-R", appPath, filepath.Join(staging, filepath.Base(appPath))); err != nil {
		return fmt.Errorf("staging failed: %s: %w", out, err)
	}

	// Install-target shortcut shown alongside the app when mounted
	if err := os.Symlink("/Applications", filepath.Join(staging, "Applications")); err != nil {
		return fmt.Errorf("staging failed: %w", err)
	}

	out, err := tools.Run(ctx, "hdiutil", "create",
		"-volname", volumeName,
		"-srcfolder", staging,
		"-ov",
		"-format", "UDZO",
		outputPath,
	)
	if err != nil {
		return fmt.Errorf("failed to create DMG image: %s: %w", out, err)
	}

	return nil
}
