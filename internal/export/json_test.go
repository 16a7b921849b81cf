// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sred-engine/pkg/types"
)

func TestJSONLossless(t *testing.T) {
	run := fullRun()
	data, err := JSON(run)
	require.NoError(t, err)

	var back types.Run
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, run.ID, back.ID)
	assert.Equal(t, run.ClientName, back.ClientName)
	require.NotNil(t, back.Output)
	assert.Equal(t, run.Output.CandidateProjects, back.Output.CandidateProjects)
	assert.Equal(t, run.Output.DraftingMaterial, back.Output.DraftingMaterial)
}

func TestAllJSON(t *testing.T) {
	data, err := AllJSON([]*types.Run{fullRun(), {ID: "run-2"}})
	require.NoError(t, err)

	var back []*types.Run
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 2)
	assert.Equal(t, "run-1", back[0].ID)
	assert.Equal(t, "run-2", back[1].ID)
}
