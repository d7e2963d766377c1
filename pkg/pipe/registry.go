package pipe

import (
	"github.com/superpicky/releaser/internal/pipe/bundle"
	"github.com/superpicky/releaser/internal/pipe/clean"
	"github.com/superpicky/releaser/internal/pipe/dmg"
	"github.com/superpicky/releaser/internal/pipe/imagesign"
	"github.com/superpicky/releaser/internal/pipe/notarize"
	"github.com/superpicky/releaser/internal/pipe/project"
	"github.com/superpicky/releaser/internal/pipe/publish"
	"github.com/superpicky/releaser/internal/pipe/sign"
	"github.com/superpicky/releaser/internal/pipe/staple"
	"github.com/superpicky/releaser/internal/pipe/version"
)

// PreflightPipes verify that the environment can complete the selected mode
// before any side effect occurs. Side-effect free; order matters: identity,
// credential, packaging tool, input descriptors.
var PreflightPipes = []Piper{
	project.CheckPipe{},  // Required config fields
	sign.CheckPipe{},     // Signing identity present in the keychain
	notarize.CheckPipe{}, // Notarization credential stored (release mode)
	bundle.CheckPipe{},   // Packaging tool, spec descriptor, entitlements
	publish.CheckPipe{},  // GITHUB_TOKEN when publishing is configured
}

// ExecutionPipes is the stage sequence proper. Strictly linear: each
// stage's output is the next stage's required input.
var ExecutionPipes = []Piper{
	clean.Pipe{},     // Remove prior build/dist state
	version.Pipe{},   // Resolve release version from source text
	bundle.Pipe{},    // Produce the .app with pyinstaller
	sign.Pipe{},      // Deep-sign and verify the bundle
	dmg.Pipe{},       // Stage and create the disk image
	imagesign.Pipe{}, // Sign and verify the disk image
	notarize.Pipe{},  // Submit, wait for verdict (release mode)
	staple.Pipe{},    // Attach and validate ticket (release mode)
	publish.Pipe{},   // Upload to GitHub release (optional)
}
