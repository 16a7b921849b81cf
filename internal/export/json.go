// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"fmt"

	"github.com/pdiddy/sred-engine/pkg/types"
)

// JSON pretty-prints the full run record. Parsing the result back yields
// the same field values; the projection is lossless.
func JSON(run *types.Run) ([]byte, error) {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling run: %w", err)
	}
	return data, nil
}

// AllJSON pretty-prints the whole run history for bulk export.
func AllJSON(runs []*types.Run) ([]byte, error) {
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling runs: %w", err)
	}
	return data, nil
}
