// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sred-engine/pkg/types"
)

func TestHTMLStructure(t *testing.T) {
	got, err := HTML(fullRun())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
	assert.Contains(t, got, "<title>SR&amp;ED Run Report - Acme Corp</title>")
	assert.Contains(t, got, "SR&amp;ED Analysis Report")
	assert.Contains(t, got, "June 15, 2025 10:30")
	assert.Contains(t, got, "FY 2025")

	// Section headings.
	assert.Contains(t, got, "<h2>Candidate Projects</h2>")
	assert.Contains(t, got, "<h2>Big Picture</h2>")
	assert.Contains(t, got, "<h2>Work Performed</h2>")
	assert.Contains(t, got, "<h2>Iterations</h2>")
	assert.Contains(t, got, "<h2>Drafting Material</h2>")

	// Big-picture subsections with counts.
	assert.Contains(t, got, "Goals (1)")
	assert.Contains(t, got, "Constraints (1)")
	assert.Contains(t, got, "Uncertainties (1)")

	// Confidence and status badges.
	assert.Contains(t, got, `badge-High`)
	assert.Contains(t, got, `badge-complete`)
	assert.Contains(t, got, `bullet-item draft-ready`)
	assert.Contains(t, got, `bullet-item needs-clarification`)
	assert.Contains(t, got, "Which services were covered?")

	// Uncited warning stat (fullRun has two uncited items).
	assert.Contains(t, got, "2 Uncited")

	// Footer carries the run id.
	assert.Contains(t, got, "Run ID: run-1")
}

func TestHTMLEscaping(t *testing.T) {
	run := fullRun()
	run.ClientName = `Acme <&> "Co"`
	run.Output.CandidateProjects[0].Label = "<script>alert('x')</script>"
	run.Output.CandidateProjects[0].Citations[0].Quote = `a & b < c > d "e" 'f'`

	got, err := HTML(run)
	require.NoError(t, err)

	assert.NotContains(t, got, "<script>alert")
	assert.Contains(t, got, "&lt;script&gt;")
	// The raw unsafe quote text never appears unescaped.
	assert.NotContains(t, got, `a & b < c > d`)
	assert.Contains(t, got, "a &amp; b &lt; c &gt; d")
}

func TestHTMLEmptySectionsOmitted(t *testing.T) {
	run := &types.Run{ID: "empty", ClientName: "C"}
	got, err := HTML(run)
	require.NoError(t, err)

	assert.NotContains(t, got, "<h2>Candidate Projects</h2>")
	assert.NotContains(t, got, "<h2>Iterations</h2>")
	// The summary still renders with zero counts.
	assert.Contains(t, got, "0 Projects")
	assert.Contains(t, got, "Unknown Client")
}

func TestHTMLIterationFallbackTitle(t *testing.T) {
	run := fullRun()
	run.Output.Iterations[0].SequenceCue = ""

	got, err := HTML(run)
	require.NoError(t, err)
	assert.Contains(t, got, "Iteration 1")
}
