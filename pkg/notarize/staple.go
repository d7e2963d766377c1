package notarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/superpicky/releaser/pkg/toolchain"
)

// Staple attaches the notarization ticket to the disk image so the
// artifact verifies offline. Returns combined output and any error.
func Staple(ctx context.Context, tools toolchain.Runner, imagePath string) (string, error) {
	if _, err := tools.LookPath("xcrun"); err != nil {
		return "", fmt.Errorf("xcrun not found — install Xcode Command Line Tools with: xcode-select --install")
	}

	out, err := tools.Run(ctx, "xcrun", "stapler", "staple", imagePath)
	if err != nil {
		if strings.Contains(out, "Could not find ticket") {
			return out, fmt.Errorf("stapling failed — the notarization ticket was not found; ensure the submission was accepted")
		}
		return out, fmt.Errorf("stapler staple failed: %s: %w", out, err)
	}
	return out, nil
}

// ValidateStaple checks that the ticket is present and well-formed on the
// image. An accepted-but-unstapled image would still verify online, but
// the pipeline's contract is a self-contained artifact, so a validation
// failure is fatal.
func ValidateStaple(ctx context.Context, tools toolchain.Runner, imagePath string) (string, error) {
	out, err := tools.Run(ctx, "xcrun", "stapler", "validate", imagePath)
	if err != nil {
		return out, fmt.Errorf("stapler validate failed for %s: %s: %w", imagePath, out, err)
	}
	return out, nil
}
