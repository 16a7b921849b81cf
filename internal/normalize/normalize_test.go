// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sred-engine/pkg/types"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare json untouched",
			raw:  `{"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "json fence with language tag",
			raw:  "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "fence without language tag",
			raw:  "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n```json\n{}\n```  \n",
			want: "{}",
		},
		{
			name: "opening fence only",
			raw:  "```json\n{\"a\": 1}",
			want: `{"a": 1}`,
		},
		{
			name: "empty string",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.raw))
		})
	}
}

func TestParse(t *testing.T) {
	raw := "```json\n" + `{
		"candidate_projects": [
			{
				"label": "Caching Layer",
				"description": "Distributed cache work",
				"signals": "Distinct system",
				"confidence": "High",
				"citations": [{"quote": "we tried caching", "location": "Alice 00:01"}]
			}
		],
		"big_picture": [
			{"content": "Sub-second lookups at scale", "type": "goal", "citations": []}
		],
		"drafting_material": {
			"big_picture_232": [
				{"bullet": "Needed sub-second lookups", "status": "draft-ready",
				 "citation": {"quote": "sub-second", "location": "Alice 00:02"}}
			]
		}
	}` + "\n```"

	out, err := Parse(raw)
	require.NoError(t, err)

	require.Len(t, out.CandidateProjects, 1)
	p := out.CandidateProjects[0]
	assert.Equal(t, "Caching Layer", p.Label)
	assert.Equal(t, types.ConfidenceHigh, p.Confidence)
	require.Len(t, p.Citations, 1)
	assert.Equal(t, "we tried caching", p.Citations[0].Quote)

	require.Len(t, out.BigPicture, 1)
	assert.Equal(t, types.BigPictureGoal, out.BigPicture[0].Type)

	// Absent buckets come back empty, never nil.
	assert.NotNil(t, out.WorkPerformed)
	assert.Empty(t, out.WorkPerformed)
	assert.NotNil(t, out.Iterations)
	assert.NotNil(t, out.DraftingMaterial.IterationsBullets)
	require.Len(t, out.DraftingMaterial.BigPicture232, 1)
}

func TestParseInvalidJSON(t *testing.T) {
	raw := "I could not produce JSON for this transcript, sorry."

	out, err := Parse(raw)
	require.Error(t, err)
	assert.Nil(t, out)

	var terr *types.Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, types.KindParseFailure, terr.Kind)
	// The verbatim reply must survive for the operator.
	assert.Equal(t, raw, terr.Raw)
}

func TestParseTruncatedJSON(t *testing.T) {
	raw := `{"candidate_projects": [{"label": "Cut off`

	_, err := Parse(raw)
	require.Error(t, err)
	assert.Equal(t, types.KindParseFailure, types.KindOf(err))
	assert.Equal(t, raw, types.RawOf(err))
}

func TestParseShapeMismatch(t *testing.T) {
	// Valid JSON of the wrong shape is not a parse failure; buckets come
	// back empty.
	out, err := Parse(`{"candidate_projects": "not an array"}`)
	require.NoError(t, err)
	assert.Empty(t, out.CandidateProjects)
	assert.NotNil(t, out.BigPicture)
}

func TestParseEmptyObject(t *testing.T) {
	out, err := Parse("{}")
	require.NoError(t, err)
	assert.Empty(t, out.CandidateProjects)
	assert.Empty(t, out.DraftingMaterial.AllBullets())
}
