package model

import "time"

// ReleaseSnapshot is a point-in-time view of a repository's latest release
// as returned by the source API. Snapshots are ephemeral: fetched, compared,
// rendered, then discarded.
type ReleaseSnapshot struct {
	ID          int64     // Release ID assigned by the source system
	HTMLURL     string    // Canonical human-viewable link
	TagName     string    // Version/tag string
	Name        string    // Display name; falls back to TagName when absent
	PublishedAt time.Time // Publish timestamp, always present
	Draft       bool      // True for unpublished drafts
	Body        string    // Free-text release notes, may be empty
}

// Entry returns the persisted subset of the snapshot. Body is deliberately
// dropped: it is large and only needed at notification time.
func (s *ReleaseSnapshot) Entry() StateEntry {
	return StateEntry{
		ID:          s.ID,
		HTMLURL:     s.HTMLURL,
		TagName:     s.TagName,
		Name:        s.Name,
		PublishedAt: s.PublishedAt,
	}
}

// StateEntry is the last release recorded as "seen" for a repository.
type StateEntry struct {
	ID          int64     `yaml:"id"`
	HTMLURL     string    `yaml:"html_url"`
	TagName     string    `yaml:"tag_name"`
	Name        string    `yaml:"name"`
	PublishedAt time.Time `yaml:"published_at"`
}

// StateMap maps a repository identifier ("owner/name") to its last seen
// release. Entries are created or overwritten during a pass, never deleted.
type StateMap map[string]StateEntry

// Decision classifies one repository's outcome within a pass.
type Decision string

const (
	// DecisionDraftSkipped means the fetched release is a draft and draft
	// skipping is enabled. The snapshot touches neither state nor the sink,
	// so the release is still evaluated as new once it is published.
	DecisionDraftSkipped Decision = "draft_skipped"

	// DecisionNoPriorState means this is the first observation of the
	// repository. The snapshot is recorded silently as the baseline.
	DecisionNoPriorState Decision = "no_prior_state"

	// DecisionUnchanged means the fetched release is not newer than the
	// recorded one. State is refreshed but no notification is sent.
	DecisionUnchanged Decision = "unchanged"

	// DecisionNewRelease means the fetched release is strictly newer.
	// State is updated and a notification is dispatched.
	DecisionNewRelease Decision = "new_release"
)
