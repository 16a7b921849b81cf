// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the interactive projector: a collapsible terminal tree of
// a run's five buckets. Every bucket shows a count badge and an empty-state
// line; citation groups start collapsed and are toggled per item. Toggle
// state is local to the session, never persisted.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdiddy/sred-engine/internal/export"
	"github.com/pdiddy/sred-engine/pkg/types"
)

// item is one renderable entry inside a bucket: a few content lines plus
// its citation group.
type item struct {
	lines     []string
	citations []types.Citation
	showCits  bool
}

// bucket is one titled, collapsible container.
type bucket struct {
	title     string
	desc      string
	items     []item
	collapsed bool
}

// Model is the bubbletea model for the run viewer.
type Model struct {
	run     *types.Run
	report  *export.Report
	buckets []bucket
	styles  Styles

	// cursor addresses (bucket, item); item -1 selects the bucket header.
	curBucket int
	curItem   int

	vp    viewport.Model
	ready bool
}

// New builds the viewer for a run.
func New(run *types.Run) Model {
	report := export.BuildReport(run)
	return Model{
		run:     run,
		report:  report,
		buckets: buildBuckets(report),
		styles:  DefaultStyles(),
		curItem: -1,
	}
}

func buildBuckets(r *export.Report) []bucket {
	out := r.Output

	projects := bucket{title: "1. Candidate Projects / Sub-Projects", desc: "Proposed groupings of SR&ED effort"}
	for _, p := range out.CandidateProjects {
		projects.items = append(projects.items, item{
			lines: compact(
				fmt.Sprintf("%s [%s]", p.Label, p.Confidence),
				p.Description,
				labeled("Signals", p.Signals),
			),
			citations: p.Citations,
		})
	}

	bigPicture := bucket{title: "2. Big Picture (232)", desc: "Technical goals, constraints, uncertainties"}
	for _, groups := range []struct {
		label string
		items []types.BigPictureItem
	}{
		{"goal", r.Goals},
		{"constraint", r.Constraints},
		{"uncertainty", r.Uncertainties},
	} {
		for _, b := range groups.items {
			bigPicture.items = append(bigPicture.items, item{
				lines:     compact(fmt.Sprintf("[%s] %s", groups.label, b.Content)),
				citations: b.Citations,
			})
		}
	}

	work := bucket{title: "3. Work Performed (244/246)", desc: "Components, technical actions, issues addressed"}
	for i, w := range out.WorkPerformed {
		head := w.Component
		if head == "" {
			head = fmt.Sprintf("Work item %d", i+1)
		}
		work.items = append(work.items, item{
			lines: compact(
				head,
				labeled("Activity", w.Activity),
				labeled("Issue addressed", w.IssueAddressed),
			),
			citations: w.Citations,
		})
	}

	iterations := bucket{title: "4. Iterations", desc: "Attempt arcs with observations and pivots"}
	for i, it := range out.Iterations {
		head := it.SequenceCue
		if head == "" {
			head = fmt.Sprintf("Iteration %d", i+1)
		}
		iterations.items = append(iterations.items, item{
			lines: compact(
				fmt.Sprintf("%s [%s]", head, it.Status),
				labeled("Initial approach", it.InitialApproach),
				labeled("Work done", it.WorkDone),
				labeled("Observations", it.Observations),
				labeled("Change/Next", it.Change),
			),
			citations: it.Citations,
		})
	}

	drafting := bucket{title: "5. Drafting Raw Material", desc: "Citation-backed bullets for claim writing"}
	for _, sec := range r.DraftingSections {
		for _, b := range sec.Bullets {
			lines := compact(
				fmt.Sprintf("[%s] %s", sec.Title, b.Bullet),
				labeled("Status", string(b.Status)),
				labeled("Needs clarification", b.ClarificationNeeded),
			)
			var cits []types.Citation
			if b.Citation.Quote != "" {
				cits = []types.Citation{b.Citation}
			}
			drafting.items = append(drafting.items, item{lines: lines, citations: cits})
		}
	}

	return []bucket{projects, bigPicture, work, iterations, drafting}
}

func labeled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

func compact(lines ...string) []string {
	out := lines[:0:0]
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - 2
		}
		m.vp.SetContent(m.content())

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "down", "j":
			m.moveCursor(1)
		case "up", "k":
			m.moveCursor(-1)
		case "enter", " ":
			m.toggle()
		case "pgdown":
			m.vp.HalfViewDown()
		case "pgup":
			m.vp.HalfViewUp()
		}
		if m.ready {
			m.vp.SetContent(m.content())
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// moveCursor steps through bucket headers and their visible items.
func (m *Model) moveCursor(delta int) {
	if delta > 0 {
		b := m.buckets[m.curBucket]
		if !b.collapsed && m.curItem < len(b.items)-1 {
			m.curItem++
		} else if m.curBucket < len(m.buckets)-1 {
			m.curBucket++
			m.curItem = -1
		}
		return
	}
	if m.curItem > -1 {
		m.curItem--
	} else if m.curBucket > 0 {
		m.curBucket--
		prev := m.buckets[m.curBucket]
		if prev.collapsed {
			m.curItem = -1
		} else {
			m.curItem = len(prev.items) - 1
		}
	}
}

// toggle collapses the selected bucket or expands the selected item's
// citation group.
func (m *Model) toggle() {
	b := &m.buckets[m.curBucket]
	if m.curItem < 0 {
		b.collapsed = !b.collapsed
		if b.collapsed {
			m.curItem = -1
		}
		return
	}
	b.items[m.curItem].showCits = !b.items[m.curItem].showCits
}

func (m Model) content() string {
	var sb strings.Builder

	title := "SR&ED Run"
	if m.run.ClientName != "" {
		title += " - " + m.run.ClientName
	}
	sb.WriteString(m.styles.Title.Render(title))
	sb.WriteString("  " + m.styles.Label.Render(m.run.ModelUsed))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Status.Render(fmt.Sprintf("%d draft-ready", m.report.DraftReady)))
	if n := m.report.TotalUncited(); n > 0 {
		sb.WriteString("  " + m.styles.Warn.Render(fmt.Sprintf("%d uncited", n)))
	}
	sb.WriteString("\n\n")

	for bi, b := range m.buckets {
		marker := "▸"
		if !b.collapsed {
			marker = "▾"
		}
		header := fmt.Sprintf("%s %s %s", marker,
			m.styles.Section.Render(b.title),
			m.styles.Badge.Render(fmt.Sprintf("%d", len(b.items))))
		if bi == m.curBucket && m.curItem == -1 {
			header = m.styles.ItemActive.Render("> ") + header
		} else {
			header = "  " + header
		}
		sb.WriteString(header + "\n")
		sb.WriteString("    " + m.styles.Label.Render(b.desc) + "\n")

		if b.collapsed {
			sb.WriteString("\n")
			continue
		}
		if len(b.items) == 0 {
			sb.WriteString("    " + m.styles.Empty.Render("No items extracted") + "\n\n")
			continue
		}

		for ii, it := range b.items {
			prefix := "    "
			style := m.styles.Item
			if bi == m.curBucket && ii == m.curItem {
				prefix = m.styles.ItemActive.Render("  > ")
				style = m.styles.ItemActive
			}
			sb.WriteString(prefix + style.Render(it.lines[0]) + "\n")
			for _, line := range it.lines[1:] {
				sb.WriteString("      " + m.styles.Label.Render(line) + "\n")
			}
			if len(it.citations) > 0 {
				if it.showCits {
					for _, c := range it.citations {
						sb.WriteString("      " + m.styles.Citation.Render(fmt.Sprintf("%q", c.Quote)) + "\n")
						if c.Location != "" {
							sb.WriteString("        " + m.styles.Citation.Render(c.Location) + "\n")
						}
					}
				} else {
					sb.WriteString("      " + m.styles.Help.Render(fmt.Sprintf("[%d citation(s), enter to expand]", len(it.citations))) + "\n")
				}
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	help := m.styles.Help.Render("j/k move · enter toggle · q quit")
	return m.vp.View() + "\n" + help
}
