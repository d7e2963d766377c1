// Package github wraps the small slice of the GitHub API the publish
// stage needs: look up a release by tag, create one, upload the disk
// image to it.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/go-github/github"
	"golang.org/x/oauth2"
)

// ClientInterface is the publish stage's view of the GitHub API. The
// pipeline context carries one so tests can inject a MockClient.
type ClientInterface interface {
	GetRelease(ctx context.Context, owner, repo, tag string) (*github.RepositoryRelease, error)
	CreateRelease(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, error)
	UploadReleaseAsset(ctx context.Context, owner, repo string, releaseID int64, assetPath, contentType string) (*github.ReleaseAsset, error)
}

// NotFoundError is the mock client's 404 condition
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// IsNotFound reports whether err is a GitHub 404, from either the real
// API's ErrorResponse or the mock's NotFoundError.
func IsNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		return ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
	}
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

var _ ClientInterface = (*Client)(nil)

// Client is the production ClientInterface backed by go-github
type Client struct {
	gh *github.Client
}

// NewClient authenticates with the given token. Publishing always needs
// one, so an empty token is rejected up front.
func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token is required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)
	// oauth2.NewClient comes back without a timeout; a dmg upload can be
	// slow but must not hang forever
	httpClient.Timeout = 5 * time.Minute

	return &Client{gh: github.NewClient(httpClient)}, nil
}

// GetGitHubToken reads the publishing token from the environment
func GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

// GetRelease fetches the release tagged tag. The wrapped error stays
// recognizable to IsNotFound.
func (c *Client) GetRelease(ctx context.Context, owner, repo, tag string) (*github.RepositoryRelease, error) {
	release, _, err := c.gh.Repositories.GetReleaseByTag(ctx, owner, repo, tag)
	if err != nil {
		return nil, fmt.Errorf("get release %s/%s@%s: %w", owner, repo, tag, err)
	}
	return release, nil
}

// CreateRelease creates a new release in owner/repo
func (c *Client) CreateRelease(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, error) {
	created, _, err := c.gh.Repositories.CreateRelease(ctx, owner, repo, release)
	if err != nil {
		return nil, fmt.Errorf("create release %s/%s: %w", owner, repo, err)
	}
	return created, nil
}

// UploadReleaseAsset attaches the file at assetPath to an existing release.
func (c *Client) UploadReleaseAsset(ctx context.Context, owner, repo string, releaseID int64, assetPath, contentType string) (*github.ReleaseAsset, error) {
	absPath, err := filepath.Abs(assetPath)
	if err != nil {
		return nil, fmt.Errorf("invalid asset path: %w", err)
	}

	// Reject symlinks and non-regular files before opening
	info, err := os.Lstat(absPath)
	if err != nil {
		return nil, fmt.Errorf("asset not accessible: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("asset %s is not a regular file", assetPath)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset: %w", err)
	}
	defer file.Close()

	opts := &github.UploadOptions{Name: filepath.Base(assetPath)}
	asset, _, err := c.gh.Repositories.UploadReleaseAsset(ctx, owner, repo, releaseID, opts, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s to release %d: %w", opts.Name, releaseID, err)
	}
	return asset, nil
}
