package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relwatch/pkg/domain/interfaces"
	"github.com/m-mizutani/relwatch/pkg/domain/model"
	"github.com/m-mizutani/relwatch/pkg/domain/types"
)

type watchUseCase struct {
	settings *model.Settings
	source   interfaces.ReleaseSource
	states   interfaces.StateStore
	notifier interfaces.Notifier
}

// NewWatch creates the single-pass orchestrator.
func NewWatch(
	settings *model.Settings,
	source interfaces.ReleaseSource,
	states interfaces.StateStore,
	notifier interfaces.Notifier,
) interfaces.Watcher {
	return &watchUseCase{
		settings: settings,
		source:   source,
		states:   states,
		notifier: notifier,
	}
}

// Run performs one pass over the configured repositories in order. Fetch
// and delivery failures are logged per repository and never stop the pass;
// only loading and the final save of the state file can fail the run.
func (uc *watchUseCase) Run(ctx context.Context) error {
	logger := ctxlog.From(ctx)

	states, err := uc.states.Load()
	if err != nil {
		return goerr.Wrap(err, "failed to load state")
	}

	for _, repoID := range uc.settings.Repos {
		current, err := uc.source.LatestRelease(ctx, repoID)
		if err != nil {
			// No valid snapshot exists, so the stored entry stays as is
			// and the repository is retried on the next scheduled run.
			if goerr.HasTag(err, types.ErrTagNoRelease) {
				logger.Info("No release found", "repo", repoID)
			} else {
				logger.Error("Failed to fetch latest release", "repo", repoID, "error", err)
			}
			continue
		}

		var prev *model.StateEntry
		if entry, ok := states[repoID]; ok {
			prev = &entry
		}

		decision := Evaluate(prev, current, uc.settings.SkipDraft)
		if decision == model.DecisionDraftSkipped {
			logger.Debug("Skipping draft release", "repo", repoID, "tag", current.TagName)
			continue
		}

		states[repoID] = current.Entry()

		switch decision {
		case model.DecisionNoPriorState:
			logger.Info("Recorded baseline release",
				"repo", repoID,
				"tag", current.TagName,
			)
			continue
		case model.DecisionUnchanged:
			logger.Info("No new release", "repo", repoID)
			continue
		}

		logger.Info("New release",
			"repo", repoID,
			"name", current.Name,
			"tag", current.TagName,
			"published_at", current.PublishedAt,
		)

		if uc.settings.Webhook == nil {
			continue
		}

		var content string
		if uc.settings.Webhook.Content != "" {
			content = RenderContent(uc.settings.Webhook.Content, ContentVars(repoID, current, uc.settings.Timezone))
		}

		if err := uc.notifier.Deliver(ctx, uc.settings.Webhook, content); err != nil {
			// Delivery is best-effort: the release stays recorded as seen
			// and no retry happens on a later run.
			logger.Error("Failed to send notification", "repo", repoID, "error", err)
			continue
		}
		logger.Debug("Notification sent", "repo", repoID)
	}

	if err := uc.states.Save(states); err != nil {
		return goerr.Wrap(err, "failed to save state")
	}

	return nil
}
