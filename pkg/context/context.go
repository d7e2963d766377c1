package context

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/superpicky/releaser/pkg/config"
	"github.com/superpicky/releaser/pkg/github"
	"github.com/superpicky/releaser/pkg/toolchain"
)

// Artifacts is the append-only set of paths produced by the run. Each field
// is populated by exactly one stage and read by later ones; nothing is
// mutated after being set.
type Artifacts struct {
	// AppPath is the signed application bundle, set by the bundle stage.
	AppPath string

	// Binaries lists the embedded libraries and executables discovered
	// inside the bundle at signing time.
	Binaries []string

	// ImagePath is the produced disk image, set by the dmg stage.
	ImagePath string

	// Notarized records whether the image passed notarization.
	Notarized bool
}

// Context provides shared state for all pipes
type Context struct {
	StdCtx context.Context // Standard context for cancellation support
	Config *config.Config
	Mode   config.Mode
	Logger *logrus.Logger

	// Tools runs external commands; tests swap in a toolchain.Fake.
	Tools toolchain.Runner

	// ReleaseClient, when non-nil, overrides the GitHub client the publish
	// stage constructs from GITHUB_TOKEN. Used by tests.
	ReleaseClient github.ClientInterface

	// Version is the resolved release version (no leading v), set by the
	// version stage.
	Version string

	// SkipPublish disables the publish stage even in release mode.
	SkipPublish bool

	Artifacts Artifacts
}

// NewContext creates a new context with the given standard context, config,
// mode, and logger. If stdCtx is nil, context.Background() is used; the
// toolchain defaults to real command execution.
func NewContext(stdCtx context.Context, cfg *config.Config, mode config.Mode, logger *logrus.Logger) *Context {
	if stdCtx == nil {
		stdCtx = context.Background()
	}
	return &Context{
		StdCtx: stdCtx,
		Config: cfg,
		Mode:   mode,
		Logger: logger,
		Tools:  toolchain.New(),
	}
}

// Done returns the done channel from the standard context for cancellation support
func (c *Context) Done() <-chan struct{} {
	return c.StdCtx.Done()
}

// Err returns the error from the standard context
func (c *Context) Err() error {
	return c.StdCtx.Err()
}
