package usecase

import "github.com/m-mizutani/relwatch/pkg/domain/model"

// Evaluate decides how a freshly fetched snapshot relates to the previously
// recorded one. prev is nil when the repository has never been seen.
//
// The caller records the snapshot into state for every decision except
// DecisionDraftSkipped: a draft must never be marked as seen, so the
// eventual published release is still compared against the last non-draft
// state (or absence) and notified.
func Evaluate(prev *model.StateEntry, current *model.ReleaseSnapshot, skipDraft bool) model.Decision {
	if skipDraft && current.Draft {
		return model.DecisionDraftSkipped
	}

	if prev == nil {
		return model.DecisionNoPriorState
	}

	// Republished or backfilled releases can carry an equal or older
	// timestamp. Only a strictly newer publish counts as new.
	if !prev.PublishedAt.Before(current.PublishedAt) {
		return model.DecisionUnchanged
	}

	return model.DecisionNewRelease
}
