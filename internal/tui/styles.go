// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/lipgloss"

// Styles collects the lipgloss styles used by the run viewer.
type Styles struct {
	Title      lipgloss.Style
	Section    lipgloss.Style
	Badge      lipgloss.Style
	Empty      lipgloss.Style
	Item       lipgloss.Style
	ItemActive lipgloss.Style
	Label      lipgloss.Style
	Citation   lipgloss.Style
	Status     lipgloss.Style
	Warn       lipgloss.Style
	Help       lipgloss.Style
}

// DefaultStyles returns the dark palette used by the viewer.
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		Badge:      lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB")).Background(lipgloss.Color("#374151")).Padding(0, 1),
		Empty:      lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#6B7280")),
		Item:       lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB")),
		ItemActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B")),
		Label:      lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		Citation:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#6B7280")).PaddingLeft(4),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		Warn:       lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}
