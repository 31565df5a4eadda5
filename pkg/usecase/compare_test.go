package usecase_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relwatch/pkg/domain/model"
	"github.com/m-mizutani/relwatch/pkg/usecase"
)

func TestEvaluate(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		prev      *model.StateEntry
		current   *model.ReleaseSnapshot
		skipDraft bool
		want      model.Decision
	}{
		{
			name:      "No prior state records baseline",
			prev:      nil,
			current:   &model.ReleaseSnapshot{TagName: "v1", PublishedAt: t1},
			skipDraft: true,
			want:      model.DecisionNoPriorState,
		},
		{
			name:      "Strictly newer release is new",
			prev:      &model.StateEntry{TagName: "v1", PublishedAt: t1},
			current:   &model.ReleaseSnapshot{TagName: "v2", PublishedAt: t2},
			skipDraft: true,
			want:      model.DecisionNewRelease,
		},
		{
			name:      "Identical timestamp is unchanged",
			prev:      &model.StateEntry{TagName: "v1", PublishedAt: t1},
			current:   &model.ReleaseSnapshot{TagName: "v1", PublishedAt: t1},
			skipDraft: true,
			want:      model.DecisionUnchanged,
		},
		{
			name:      "Older timestamp is unchanged",
			prev:      &model.StateEntry{TagName: "v2", PublishedAt: t2},
			current:   &model.ReleaseSnapshot{TagName: "v1", PublishedAt: t1},
			skipDraft: true,
			want:      model.DecisionUnchanged,
		},
		{
			name:      "Draft is skipped regardless of prior state",
			prev:      &model.StateEntry{TagName: "v1", PublishedAt: t1},
			current:   &model.ReleaseSnapshot{TagName: "v2", PublishedAt: t2, Draft: true},
			skipDraft: true,
			want:      model.DecisionDraftSkipped,
		},
		{
			name:      "Draft without prior state is skipped",
			prev:      nil,
			current:   &model.ReleaseSnapshot{TagName: "v1", PublishedAt: t1, Draft: true},
			skipDraft: true,
			want:      model.DecisionDraftSkipped,
		},
		{
			name:      "Draft is evaluated normally when skipping is off",
			prev:      &model.StateEntry{TagName: "v1", PublishedAt: t1},
			current:   &model.ReleaseSnapshot{TagName: "v2", PublishedAt: t2, Draft: true},
			skipDraft: false,
			want:      model.DecisionNewRelease,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.Evaluate(tt.prev, tt.current, tt.skipDraft)
			gt.Value(t, got).Equal(tt.want)
		})
	}
}
