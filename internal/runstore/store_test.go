// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sred-engine/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun() *types.Run {
	return &types.Run{
		TranscriptText:  "Alice 00:01: We tried caching but it broke consistency.",
		ClientName:      "Acme Corp",
		FiscalYear:      "2025",
		MeetingType:     "kickoff",
		ContextPackText: "pack text",
		ContextPackName: "default",
		PromptText:      "system prompt",
		ModelUsed:       "google/gemini-2.5-flash",
		IsStructured:    true,
		Output: &types.Output{
			CandidateProjects: []types.CandidateProject{
				{
					Label:      "Caching Layer",
					Confidence: types.ConfidenceHigh,
					Citations: []types.Citation{
						{Quote: "We tried caching", Location: "Alice 00:01"},
					},
				},
			},
		},
	}
}

func TestInsertGetRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	run := sampleRun()
	require.NoError(t, s.Insert(ctx, run))
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	got, err := s.Get(ctx, run.ID)
	require.NoError(t, err)

	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.TranscriptText, got.TranscriptText)
	assert.Equal(t, "Acme Corp", got.ClientName)
	assert.Equal(t, "2025", got.FiscalYear)
	assert.Equal(t, "kickoff", got.MeetingType)
	assert.Equal(t, "default", got.ContextPackName)
	assert.Equal(t, "google/gemini-2.5-flash", got.ModelUsed)
	assert.True(t, got.IsStructured)

	require.NotNil(t, got.Output)
	require.Len(t, got.Output.CandidateProjects, 1)
	assert.Equal(t, "Caching Layer", got.Output.CandidateProjects[0].Label)
	// Loaded output is normalized: absent buckets are empty, not nil.
	assert.NotNil(t, got.Output.WorkPerformed)
}

func TestInsertUnstructured(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	run := &types.Run{
		TranscriptText:  "t",
		ContextPackText: "c",
		PromptText:      "p",
		ModelUsed:       "openai/gpt-5",
		RawOutput:       "free-form analysis text",
		IsStructured:    false,
	}
	require.NoError(t, s.Insert(ctx, run))

	got, err := s.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.False(t, got.IsStructured)
	assert.Nil(t, got.Output)
	assert.Equal(t, "free-form analysis text", got.RawOutput)
}

func TestGetNotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := sampleRun()
		run.ClientName = []string{"first", "second", "third"}[i]
		run.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, s.Insert(ctx, run))
	}

	summaries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "third", summaries[0].ClientName)
	assert.Equal(t, "second", summaries[1].ClientName)
	assert.Equal(t, "first", summaries[2].ClientName)
	assert.True(t, summaries[0].IsStructured)
}

func TestAll(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, s.Insert(ctx, sampleRun()))
	}

	runs, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	for _, run := range runs {
		assert.NotEmpty(t, run.TranscriptText)
		assert.NotNil(t, run.Output)
	}
}

func TestUpdateEvaluation(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	run := sampleRun()
	require.NoError(t, s.Insert(ctx, run))

	eval := types.Evaluation{
		CandidateProjects: 4,
		BigPicture:        3,
		NotesOverall:      "solid extraction, weak iterations",
	}
	require.NoError(t, s.UpdateEvaluation(ctx, run.ID, eval))

	got, err := s.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Evaluation.CandidateProjects)
	assert.Equal(t, 3, got.Evaluation.BigPicture)
	assert.Equal(t, 0, got.Evaluation.Iterations)
	assert.Equal(t, "solid extraction, weak iterations", got.Evaluation.NotesOverall)
}

func TestUpdateEvaluationValidation(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	run := sampleRun()
	require.NoError(t, s.Insert(ctx, run))

	err := s.UpdateEvaluation(ctx, run.ID, types.Evaluation{BigPicture: 6})
	require.Error(t, err)
	assert.Equal(t, types.KindValidation, types.KindOf(err))

	err = s.UpdateEvaluation(ctx, run.ID, types.Evaluation{Iterations: -1})
	require.Error(t, err)
}

func TestUpdateEvaluationNotFound(t *testing.T) {
	s := testStore(t)
	err := s.UpdateEvaluation(context.Background(), "missing", types.Evaluation{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	run := sampleRun()
	require.NoError(t, s.Insert(ctx, run))
	require.NoError(t, s.Delete(ctx, run.ID))

	_, err := s.Get(ctx, run.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, run.ID), ErrNotFound)
}

func TestCorruptTimestamp(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	run := sampleRun()
	require.NoError(t, s.Insert(ctx, run))

	// A corrupt created_at must surface as an error, not a zero timestamp.
	_, err := s.db.ExecContext(ctx, `UPDATE runs SET created_at = 'not-a-time' WHERE id = ?`, run.ID)
	require.NoError(t, err)

	_, err = s.Get(ctx, run.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing run timestamp")

	_, err = s.List(ctx)
	require.Error(t, err)
}

func TestOpenReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(types.StoreConfig{DataDir: dir})
	require.NoError(t, err)
	run := sampleRun()
	require.NoError(t, s.Insert(ctx, run))
	require.NoError(t, s.Close())

	// Schema creation is idempotent; data survives reopen.
	s2, err := Open(types.StoreConfig{DataDir: dir})
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.TranscriptText, got.TranscriptText)
}
