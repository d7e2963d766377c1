package publish

import (
	"fmt"

	gogithub "github.com/google/go-github/github"
	"github.com/superpicky/releaser/pkg/context"
	"github.com/superpicky/releaser/pkg/github"
)

// Pipe uploads the finished disk image to a GitHub release. Optional:
// skipped in test mode, when no repository is configured, or with
// --skip-publish.
type Pipe struct{}

func (Pipe) String() string { return "publishing release" }

func (Pipe) Run(ctx *context.Context) error {
	if reason := skipReason(ctx); reason != "" {
		return skipError(reason)
	}

	if ctx.Artifacts.ImagePath == "" {
		return fmt.Errorf("no disk image found to publish — ensure the dmg step completed successfully")
	}

	cfg := ctx.Config.Release.GitHub

	client := ctx.ReleaseClient
	if client == nil {
		real, err := github.NewClient(github.GetGitHubToken())
		if err != nil {
			return fmt.Errorf("failed to create GitHub client: %w", err)
		}
		client = real
	}

	tag := "v" + ctx.Version

	release, err := client.GetRelease(ctx.StdCtx, cfg.Owner, cfg.Repo, tag)
	if err != nil {
		if !github.IsNotFound(err) {
			return fmt.Errorf("failed to look up release %s: %w", tag, err)
		}

		ctx.Logger.Infof("Creating release %s in %s/%s", tag, cfg.Owner, cfg.Repo)
		release, err = client.CreateRelease(ctx.StdCtx, cfg.Owner, cfg.Repo, &gogithub.RepositoryRelease{
			TagName: &tag,
			Name:    &tag,
			Draft:   &cfg.Draft,
		})
		if err != nil {
			return fmt.Errorf("failed to create release %s: %w", tag, err)
		}
	}

	ctx.Logger.Infof("Uploading %s", ctx.Artifacts.ImagePath)
	if _, err := client.UploadReleaseAsset(ctx.StdCtx, cfg.Owner, cfg.Repo, release.GetID(), ctx.Artifacts.ImagePath, "application/x-apple-diskimage"); err != nil {
		return fmt.Errorf("failed to upload disk image: %w", err)
	}

	ctx.Logger.Infof("Published %s to %s/%s", tag, cfg.Owner, cfg.Repo)
	return nil
}

func skipReason(ctx *context.Context) string {
	switch {
	case !ctx.Mode.IsRelease():
		return "publishing skipped in test mode"
	case ctx.SkipPublish:
		return "publishing skipped via --skip-publish"
	case ctx.Config.Release.GitHub.Owner == "" || ctx.Config.Release.GitHub.Repo == "":
		return "no release repository configured"
	}
	return ""
}
