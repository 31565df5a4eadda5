package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures so callers can tell fatal state-store
// errors from per-repository skips.
var (
	// ErrTagStateCorrupt marks a state file that exists but cannot be
	// parsed. Fatal: aborting is better than silently discarding history.
	ErrTagStateCorrupt = goerr.NewTag("state_corrupt")

	// ErrTagStatePersist marks a failure to write the state file back.
	ErrTagStatePersist = goerr.NewTag("state_persist")

	// ErrTagNoRelease marks a repository that has no published release or
	// is not accessible. Per-repository skip, never fatal.
	ErrTagNoRelease = goerr.NewTag("no_release")

	// ErrTagBadResponse marks a non-2xx response from the webhook sink.
	ErrTagBadResponse = goerr.NewTag("bad_response")
)
