// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sred-engine/pkg/types"
)

// fullRun builds a run exercising every bucket.
func fullRun() *types.Run {
	return &types.Run{
		ID:           "run-1",
		CreatedAt:    time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
		ClientName:   "Acme Corp",
		FiscalYear:   "2025",
		ModelUsed:    "google/gemini-2.5-flash",
		IsStructured: true,
		Output: &types.Output{
			CandidateProjects: []types.CandidateProject{
				{
					Label:       "Caching Layer",
					Description: "Distributed cache work",
					Signals:     "Distinct system",
					Confidence:  types.ConfidenceHigh,
					Citations:   []types.Citation{{Quote: "We tried caching but it broke consistency.", Location: "Alice 00:01"}},
				},
			},
			BigPicture: []types.BigPictureItem{
				{Content: "Sub-second lookups at scale", Type: types.BigPictureGoal,
					Citations: []types.Citation{{Quote: "we needed sub-second", Location: "Bob 00:03"}}},
				{Content: "Commodity hardware only", Type: types.BigPictureConstraint,
					Citations: []types.Citation{{Quote: "no exotic hardware", Location: "Bob 00:04"}}},
				{Content: "Unknown consistency behavior under load", Type: types.BigPictureUncertainty},
			},
			WorkPerformed: []types.WorkPerformedItem{
				{Component: "Cache invalidation", Activity: "Prototyped write-through invalidation",
					IssueAddressed: "Stale reads",
					Citations:      []types.Citation{{Quote: "we prototyped write-through", Location: "Alice 00:05"}}},
			},
			Iterations: []types.IterationItem{
				{InitialApproach: "TTL-based expiry", WorkDone: "Shipped TTL cache",
					Observations: "Stale reads under write bursts", Change: "Moved to explicit invalidation",
					Status: types.IterationComplete, SequenceCue: "first quarter",
					Citations: []types.Citation{{Quote: "TTL was not enough", Location: "Alice 00:06"}}},
			},
			DraftingMaterial: types.DraftingMaterial{
				BigPicture232: []types.DraftingBullet{
					{Bullet: "Required sub-second lookups on commodity hardware", Status: types.BulletDraftReady,
						Citation: types.Citation{Quote: "we needed sub-second", Location: "Bob 00:03"}},
				},
				WorkPerformed244246: []types.DraftingBullet{
					{Bullet: "Prototyped write-through cache invalidation", Status: types.BulletNeedsClarification,
						ClarificationNeeded: "Which services were covered?",
						Citation:            types.Citation{Quote: "we prototyped write-through", Location: "Alice 00:05"}},
				},
				ResultsOutcomes248: []types.DraftingBullet{
					{Bullet: "Eliminated stale reads", Status: types.BulletDraftReady},
				},
			},
		},
	}
}

func TestBuildReport(t *testing.T) {
	r := BuildReport(fullRun())

	require.Len(t, r.Goals, 1)
	require.Len(t, r.Constraints, 1)
	require.Len(t, r.Uncertainties, 1)
	assert.Equal(t, "Sub-second lookups at scale", r.Goals[0].Content)

	require.Len(t, r.DraftingSections, 4)
	assert.Equal(t, "Big Picture (232)", r.DraftingSections[0].Title)
	assert.Equal(t, "Work Performed (244/246)", r.DraftingSections[1].Title)
	assert.Equal(t, "Iterations", r.DraftingSections[2].Title)
	assert.Equal(t, "Results / Outcomes (248)", r.DraftingSections[3].Title)

	assert.Equal(t, 3, r.TotalBullets)
	assert.Equal(t, 2, r.DraftReady)
	assert.Equal(t, 1, r.NeedsClarification)

	// One uncited big-picture item and one uncited bullet.
	assert.Equal(t, [5]int{0, 1, 0, 0, 1}, r.Uncited)
	assert.Equal(t, 2, r.TotalUncited())
}

func TestBuildReportEmptyRun(t *testing.T) {
	// Totality: a run without structured output still yields a full report.
	r := BuildReport(&types.Run{ID: "x", IsStructured: false})

	assert.NotNil(t, r.Output)
	assert.Empty(t, r.Output.CandidateProjects)
	assert.Empty(t, r.Goals)
	require.Len(t, r.DraftingSections, 4)
	assert.Equal(t, 0, r.TotalBullets)
	assert.Equal(t, 0, r.TotalUncited())
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		client string
		want   string
	}{
		{"simple client", "Acme", "sred-run-Acme-2025-06-15.csv"},
		{"spaces and punctuation sanitized", "Acme Corp, Inc.", "sred-run-Acme-Corp--Inc--2025-06-15.csv"},
		{"empty client", "", "sred-run-unknown-2025-06-15.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &types.Run{
				ClientName: tt.client,
				CreatedAt:  time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
			}
			assert.Equal(t, tt.want, Filename(run, "csv"))
		})
	}
}

func TestAllRunsFilename(t *testing.T) {
	now := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "sred-all-runs-2025-12-31.json", AllRunsFilename(now))
}
