// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export projects a Run into its export formats: CSV, a standalone
// HTML document, and pretty-printed JSON. All projectors consume one shared
// grouped representation so the nested output is traversed exactly once.
package export

import (
	"regexp"
	"time"

	"github.com/pdiddy/sred-engine/pkg/types"
)

// Report is the grouped-and-flattened view of a run's output that every
// projector consumes. Building it is total: absent buckets or drafting
// sections become empty slices, never failures.
type Report struct {
	Run    *types.Run
	Output *types.Output

	// Big-picture items grouped by type, in display order.
	Goals         []types.BigPictureItem
	Constraints   []types.BigPictureItem
	Uncertainties []types.BigPictureItem

	// Drafting sections in their fixed order, plus flattened totals.
	DraftingSections   []types.DraftingSection
	TotalBullets       int
	DraftReady         int
	NeedsClarification int

	// Uncited counts items carrying no citation, per bucket, in bucket
	// order (candidate projects, big picture, work performed, iterations,
	// drafting bullets). A nonzero count flags output the model should not
	// have produced.
	Uncited [5]int
}

// BuildReport groups and flattens a run's output once.
func BuildReport(run *types.Run) *Report {
	out := run.BucketOutput()
	r := &Report{Run: run, Output: out}

	for _, item := range out.BigPicture {
		switch item.Type {
		case types.BigPictureGoal:
			r.Goals = append(r.Goals, item)
		case types.BigPictureConstraint:
			r.Constraints = append(r.Constraints, item)
		case types.BigPictureUncertainty:
			r.Uncertainties = append(r.Uncertainties, item)
		}
	}

	r.DraftingSections = out.DraftingMaterial.Sections()
	for _, sec := range r.DraftingSections {
		for _, b := range sec.Bullets {
			r.TotalBullets++
			switch b.Status {
			case types.BulletDraftReady:
				r.DraftReady++
			case types.BulletNeedsClarification:
				r.NeedsClarification++
			}
			if b.Citation.Quote == "" {
				r.Uncited[4]++
			}
		}
	}

	for _, p := range out.CandidateProjects {
		if len(p.Citations) == 0 {
			r.Uncited[0]++
		}
	}
	for _, b := range out.BigPicture {
		if len(b.Citations) == 0 {
			r.Uncited[1]++
		}
	}
	for _, w := range out.WorkPerformed {
		if len(w.Citations) == 0 {
			r.Uncited[2]++
		}
	}
	for _, it := range out.Iterations {
		if len(it.Citations) == 0 {
			r.Uncited[3]++
		}
	}

	return r
}

// TotalUncited sums the per-bucket uncited counts.
func (r *Report) TotalUncited() int {
	total := 0
	for _, n := range r.Uncited {
		total += n
	}
	return total
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// FilenameBase derives the export filename stem from the client name and
// creation date: sred-run-<client>-<YYYY-MM-DD>.
func FilenameBase(run *types.Run) string {
	client := run.ClientName
	if client == "" {
		client = "unknown"
	} else {
		client = nonAlnum.ReplaceAllString(client, "-")
	}
	return "sred-run-" + client + "-" + run.CreatedAt.Format("2006-01-02")
}

// Filename joins the stem with an extension ("csv", "html", "json").
func Filename(run *types.Run, ext string) string {
	return FilenameBase(run) + "." + ext
}

// AllRunsFilename names the whole-history JSON export for the given moment.
func AllRunsFilename(now time.Time) string {
	return "sred-all-runs-" + now.Format("2006-01-02") + ".json"
}
