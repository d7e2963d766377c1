package publish

import (
	"fmt"

	"github.com/superpicky/releaser/pkg/context"
	"github.com/superpicky/releaser/pkg/github"
)

// CheckPipe verifies publishing credentials are available when the publish
// stage will run.
type CheckPipe struct{}

func (CheckPipe) String() string { return "checking publishing credentials" }

func (CheckPipe) Run(ctx *context.Context) error {
	if reason := skipReason(ctx); reason != "" {
		return skipError(reason)
	}

	if ctx.ReleaseClient != nil {
		return nil
	}
	if github.GetGitHubToken() == "" {
		return fmt.Errorf("GITHUB_TOKEN is not set — required to publish to %s/%s",
			ctx.Config.Release.GitHub.Owner, ctx.Config.Release.GitHub.Repo)
	}

	ctx.Logger.Debug("Publishing credentials available")
	return nil
}
