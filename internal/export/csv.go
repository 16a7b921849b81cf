// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"strings"

	"github.com/pdiddy/sred-engine/pkg/types"
)

// CSV flattens all five buckets into one comma-separated text blob: a
// header block, then one section per bucket with a `=== NAME ===` marker
// row, a column header row, data rows, and a blank separator row. Every
// cell is wrapped in quotes with internal quotes doubled so downstream
// spreadsheet tools never misparse free text.
func CSV(run *types.Run) string {
	r := BuildReport(run)
	out := r.Output

	var rows [][]string
	rows = append(rows,
		[]string{"SR&ED Run Export"},
		[]string{""},
		[]string{"Run ID", run.ID},
		[]string{"Date", run.CreatedAt.Format("2006-01-02 15:04")},
		[]string{"Client", run.ClientName},
		[]string{"Model", run.ModelUsed},
		[]string{""},
	)

	rows = append(rows,
		[]string{"=== CANDIDATE PROJECTS ==="},
		[]string{"Label", "Description", "Confidence", "Signals"},
	)
	for _, p := range out.CandidateProjects {
		rows = append(rows, []string{p.Label, p.Description, string(p.Confidence), p.Signals})
	}
	rows = append(rows, []string{""})

	rows = append(rows,
		[]string{"=== BIG PICTURE ==="},
		[]string{"Type", "Content", "Citation Quote", "Citation Location"},
	)
	for _, b := range out.BigPicture {
		quote, location := firstCitation(b.Citations)
		rows = append(rows, []string{string(b.Type), b.Content, quote, location})
	}
	rows = append(rows, []string{""})

	rows = append(rows,
		[]string{"=== WORK PERFORMED ==="},
		[]string{"Component", "Activity", "Issue Addressed", "Citation Quote"},
	)
	for _, w := range out.WorkPerformed {
		quote, _ := firstCitation(w.Citations)
		rows = append(rows, []string{w.Component, w.Activity, w.IssueAddressed, quote})
	}
	rows = append(rows, []string{""})

	rows = append(rows,
		[]string{"=== ITERATIONS ==="},
		[]string{"Sequence", "Status", "Initial Approach", "Observations", "Change"},
	)
	for _, it := range out.Iterations {
		rows = append(rows, []string{it.SequenceCue, string(it.Status), it.InitialApproach, it.Observations, it.Change})
	}
	rows = append(rows, []string{""})

	rows = append(rows,
		[]string{"=== DRAFTING MATERIAL ==="},
		[]string{"Section", "Bullet", "Status", "Clarification Needed", "Citation"},
	)
	for _, sec := range r.DraftingSections {
		for _, b := range sec.Bullets {
			rows = append(rows, []string{sec.Title, b.Bullet, string(b.Status), b.ClarificationNeeded, b.Citation.Quote})
		}
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = quoteCell(cell)
		}
		lines[i] = strings.Join(cells, ",")
	}
	return strings.Join(lines, "\n")
}

// quoteCell wraps a value in quotes and doubles internal quote characters.
func quoteCell(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func firstCitation(citations []types.Citation) (quote, location string) {
	if len(citations) == 0 {
		return "", ""
	}
	return citations[0].Quote, citations[0].Location
}
