package sign

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/superpicky/releaser/pkg/toolchain"
)

// File signs a single embedded binary with a secure timestamp and the
// hardened runtime enabled. Inner binaries are pre-signed this way because
// notarization requires the hardened-runtime flag on every Mach-O inside
// the bundle. Returns combined output and any error.
func File(ctx context.Context, tools toolchain.Runner, identity, path string) (string, error) {
	out, err := tools.Run(ctx, "codesign",
		"--force", "--timestamp",
		"--options", "runtime",
		"--sign", identity,
		path,
	)
	if err != nil {
		return out, fmt.Errorf("codesign failed for %s: %s: %w", path, strings.TrimSpace(out), err)
	}
	return out, nil
}

// Bundle deep-signs the whole application bundle with the entitlements
// descriptor attached and the hardened runtime enabled. This is the
// authoritative signing pass; it must run after the inner binaries so the
// outer signature is not invalidated.
func Bundle(ctx context.Context, tools toolchain.Runner, identity, entitlements, appPath string) (string, error) {
	if _, err := tools.LookPath("codesign"); err != nil {
		return "", fmt.Errorf("codesign not found — install Xcode Command Line Tools with: xcode-select --install")
	}

	out, err := tools.Run(ctx, "codesign",
		"--deep", "--force", "--timestamp",
		"--options", "runtime",
		"--entitlements", entitlements,
		"--sign", identity,
		appPath,
	)
	if err != nil {
		if strings.Contains(out, "resource fork, Finder information, or similar detritus") {
			return out, fmt.Errorf("codesign failed due to extended attributes — remove them with: xattr -cr %s", appPath)
		}
		return out, fmt.Errorf("codesign failed: %s: %w", out, err)
	}
	return out, nil
}

// VerifyBundle verifies the bundle's signature deeply and strictly.
func VerifyBundle(ctx context.Context, tools toolchain.Runner, appPath string) (string, error) {
	out, err := tools.Run(ctx, "codesign", "--verify", "--deep", "--strict", appPath)
	if err != nil {
		return out, fmt.Errorf("signature verification failed for %s: %s: %w", appPath, out, err)
	}
	return out, nil
}

// ImageFile signs a standalone file such as a disk image. Not recursive;
// the image is a single artifact.
func ImageFile(ctx context.Context, tools toolchain.Runner, identity, path string) (string, error) {
	out, err := tools.Run(ctx, "codesign",
		"--force", "--timestamp",
		"--sign", identity,
		path,
	)
	if err != nil {
		return out, fmt.Errorf("codesign failed for %s: %s: %w", path, out, err)
	}
	return out, nil
}

// VerifyFile verifies a standalone file's signature strictly.
func VerifyFile(ctx context.Context, tools toolchain.Runner, path string) (string, error) {
	out, err := tools.Run(ctx, "codesign", "--verify", "--strict", path)
	if err != nil {
		return out, fmt.Errorf("signature verification failed for %s: %s: %w", path, out, err)
	}
	return out, nil
}

// CollectLibraries walks the bundle and returns every embedded dynamic
// library or shared object, in walk order. These are signed inner-to-outer
// before the bundle itself.
func CollectLibraries(appPath string) ([]string, error) {
	var libs []string

	err := filepath.WalkDir(appPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(d.Name()) {
		case ".dylib", ".so":
			libs = append(libs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate libraries in %s: %w", appPath, err)
	}

	return libs, nil
}

// CollectExecutables returns the regular files in the bundle's executable
// directory (Contents/MacOS).
func CollectExecutables(appPath string) ([]string, error) {
	macosDir := filepath.Join(appPath, "Contents", "MacOS")

	entries, err := os.ReadDir(macosDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", macosDir, err)
	}

	var executables []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			executables = append(executables, filepath.Join(macosDir, entry.Name()))
		}
	}
	return executables, nil
}
