package interfaces

import (
	"context"

	"github.com/m-mizutani/relwatch/pkg/domain/model"
)

// ReleaseSource defines the release-metadata fetch boundary.
type ReleaseSource interface {
	// LatestRelease returns the current latest release of the repository
	// identified as "owner/name". A repository without any published
	// release yields an error tagged types.ErrTagNoRelease.
	LatestRelease(ctx context.Context, repoID string) (*model.ReleaseSnapshot, error)
}
