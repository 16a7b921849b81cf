// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	got, err := Build("PACK CONTENT", "Alice 00:01: We tried caching.")
	require.NoError(t, err)

	// Context pack first, transcript after the section label.
	packIdx := strings.Index(got, "PACK CONTENT")
	labelIdx := strings.Index(got, "TRANSCRIPT TO ANALYZE:")
	transcriptIdx := strings.Index(got, "Alice 00:01: We tried caching.")
	require.True(t, packIdx >= 0)
	require.True(t, labelIdx > packIdx)
	require.True(t, transcriptIdx > labelIdx)

	// The output contract is part of the prompt.
	assert.Contains(t, got, "OUTPUT INSTRUCTIONS:")
	assert.Contains(t, got, "CRITICAL RULES:")
	assert.Contains(t, got, "Return ONLY the JSON object, no markdown, no explanation")

	// All five bucket keys appear in the skeleton.
	for _, key := range []string{
		`"candidate_projects"`,
		`"big_picture"`,
		`"work_performed"`,
		`"iterations"`,
		`"drafting_material"`,
	} {
		assert.Contains(t, got, key)
	}

	// And the four drafting sections.
	for _, key := range []string{
		`"big_picture_232"`,
		`"work_performed_244_246"`,
		`"iterations_bullets"`,
		`"results_outcomes_248"`,
	} {
		assert.Contains(t, got, key)
	}
}

func TestBuildVerbatimInputs(t *testing.T) {
	// Inputs are embedded as-is: no escaping, no trimming inside the body.
	pack := "line one\n  indented {braces} and \"quotes\""
	transcript := "Bob: it's 50% faster\twith tabs"

	got, err := Build(pack, transcript)
	require.NoError(t, err)
	assert.Contains(t, got, pack)
	assert.Contains(t, got, transcript)
}

func TestDefaults(t *testing.T) {
	assert.NotEmpty(t, DefaultSystemPrompt)
	assert.NotEmpty(t, FallbackSystemPrompt)
	assert.Contains(t, DefaultContextPack, "SR&ED")
}
