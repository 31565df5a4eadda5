package github

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relwatch/pkg/domain/interfaces"
	"github.com/m-mizutani/relwatch/pkg/domain/model"
	"github.com/m-mizutani/relwatch/pkg/domain/types"
)

type client struct {
	githubClient *github.Client
}

// NewClient creates a GitHub release source. token may be empty for
// anonymous access; baseURL may be empty for github.com, or point at a
// GitHub Enterprise Server instance.
func NewClient(token, baseURL string) (interfaces.ReleaseSource, error) {
	gh := github.NewClient(nil)

	if token != "" {
		gh = gh.WithAuthToken(token)
	}

	if baseURL != "" {
		var err error
		gh, err = gh.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to set GitHub base URL", goerr.V("base_url", baseURL))
		}
	}

	return &client{
		githubClient: gh,
	}, nil
}

// LatestRelease fetches the latest release of the repository identified as
// "owner/name".
func (c *client) LatestRelease(ctx context.Context, repoID string) (*model.ReleaseSnapshot, error) {
	owner, name, ok := strings.Cut(repoID, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return nil, goerr.New("invalid repository id, expected owner/name", goerr.V("repo", repoID))
	}

	rel, resp, err := c.githubClient.Repositories.GetLatestRelease(ctx, owner, name)
	if err != nil {
		// 404 covers both "no releases yet" and a missing/inaccessible
		// repository. Either way there is nothing to compare.
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, goerr.Wrap(err, "repository has no release",
				goerr.V("repo", repoID), goerr.T(types.ErrTagNoRelease))
		}
		return nil, goerr.Wrap(err, "failed to fetch latest release", goerr.V("repo", repoID))
	}

	return SnapshotFromRelease(rel), nil
}

// SnapshotFromRelease normalizes a GitHub API release into the domain
// snapshot. The display name falls back to the tag name when the release
// has no separate name.
func SnapshotFromRelease(rel *github.RepositoryRelease) *model.ReleaseSnapshot {
	snap := &model.ReleaseSnapshot{
		ID:          rel.GetID(),
		HTMLURL:     rel.GetHTMLURL(),
		TagName:     rel.GetTagName(),
		Name:        rel.GetName(),
		PublishedAt: rel.GetPublishedAt().Time,
		Draft:       rel.GetDraft(),
		Body:        rel.GetBody(),
	}
	if snap.Name == "" {
		snap.Name = snap.TagName
	}
	return snap
}
