// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sred-engine/pkg/types"
)

func TestCSVSections(t *testing.T) {
	got := CSV(fullRun())
	lines := strings.Split(got, "\n")

	// Header block.
	assert.Equal(t, `"SR&ED Run Export"`, lines[0])
	assert.Contains(t, got, `"Run ID","run-1"`)
	assert.Contains(t, got, `"Date","2025-06-15 10:30"`)
	assert.Contains(t, got, `"Client","Acme Corp"`)
	assert.Contains(t, got, `"Model","google/gemini-2.5-flash"`)

	// All five section markers, in order.
	markers := []string{
		`"=== CANDIDATE PROJECTS ==="`,
		`"=== BIG PICTURE ==="`,
		`"=== WORK PERFORMED ==="`,
		`"=== ITERATIONS ==="`,
		`"=== DRAFTING MATERIAL ==="`,
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(got, m)
		require.True(t, idx > last, "section %s out of order", m)
		last = idx
	}

	// Column headers follow their markers.
	assert.Contains(t, got, `"Label","Description","Confidence","Signals"`)
	assert.Contains(t, got, `"Type","Content","Citation Quote","Citation Location"`)
	assert.Contains(t, got, `"Component","Activity","Issue Addressed","Citation Quote"`)
	assert.Contains(t, got, `"Sequence","Status","Initial Approach","Observations","Change"`)
	assert.Contains(t, got, `"Section","Bullet","Status","Clarification Needed","Citation"`)

	// Data rows.
	assert.Contains(t, got, `"Caching Layer","Distributed cache work","High","Distinct system"`)
	assert.Contains(t, got, `"goal","Sub-second lookups at scale","we needed sub-second","Bob 00:03"`)
	assert.Contains(t, got, `"Cache invalidation","Prototyped write-through invalidation","Stale reads","we prototyped write-through"`)
	assert.Contains(t, got, `"first quarter","complete","TTL-based expiry","Stale reads under write bursts","Moved to explicit invalidation"`)
	assert.Contains(t, got, `"Big Picture (232)","Required sub-second lookups on commodity hardware","draft-ready","","we needed sub-second"`)
}

func TestCSVEveryCellQuoted(t *testing.T) {
	got := CSV(fullRun())
	for _, line := range strings.Split(got, "\n") {
		require.True(t, strings.HasPrefix(line, `"`), "line not quoted: %s", line)
		require.True(t, strings.HasSuffix(line, `"`), "line not quoted: %s", line)
	}
}

func TestCSVQuoteDoubling(t *testing.T) {
	run := fullRun()
	run.Output.CandidateProjects[0].Description = `They said "it just broke", twice`

	got := CSV(run)
	assert.Contains(t, got, `"They said ""it just broke"", twice"`)
}

func TestCSVCommasAndNewlinesStayInCell(t *testing.T) {
	run := fullRun()
	run.Output.WorkPerformed[0].Activity = "tested, measured, fixed"

	got := CSV(run)
	assert.Contains(t, got, `"tested, measured, fixed"`)
}

func TestCSVEmptyOutput(t *testing.T) {
	run := &types.Run{ID: "empty", ClientName: "C"}
	got := CSV(run)

	// Sections are present even with no data rows.
	assert.Contains(t, got, `"=== CANDIDATE PROJECTS ==="`)
	assert.Contains(t, got, `"=== DRAFTING MATERIAL ==="`)
}
