package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/github"
)

// Ensure MockClient implements ClientInterface
var _ ClientInterface = (*MockClient)(nil)

// MockClient is a mock implementation of the GitHub client for testing
type MockClient struct {
	Releases       map[string][]*github.RepositoryRelease // key: "owner/repo"
	UploadedAssets []string                               // tracks asset paths passed to UploadReleaseAsset
	ErrorToReturn  error
	UploadError    error // if non-nil, returned by UploadReleaseAsset instead of ErrorToReturn

	nextReleaseID int64
}

// NewMockClient creates a new mock GitHub client
func NewMockClient() *MockClient {
	return &MockClient{
		Releases: make(map[string][]*github.RepositoryRelease),
	}
}

// GetRelease fetches a specific release from mock data
func (m *MockClient) GetRelease(ctx context.Context, owner, repo, tag string) (*github.RepositoryRelease, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	key := fmt.Sprintf("%s/%s", owner, repo)
	for _, release := range m.Releases[key] {
		if release.TagName != nil && *release.TagName == tag {
			return release, nil
		}
	}

	return nil, &NotFoundError{Message: fmt.Sprintf("release %s not found in %s", tag, key)}
}

// CreateRelease records a new release in mock data
func (m *MockClient) CreateRelease(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	m.nextReleaseID++
	id := m.nextReleaseID
	release.ID = &id

	key := fmt.Sprintf("%s/%s", owner, repo)
	m.Releases[key] = append(m.Releases[key], release)
	return release, nil
}

// UploadReleaseAsset records the uploaded asset path
func (m *MockClient) UploadReleaseAsset(ctx context.Context, owner, repo string, releaseID int64, assetPath, contentType string) (*github.ReleaseAsset, error) {
	if m.UploadError != nil {
		return nil, m.UploadError
	}
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	m.UploadedAssets = append(m.UploadedAssets, assetPath)
	name := assetPath
	return &github.ReleaseAsset{Name: &name}, nil
}
