// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pdiddy/sred-engine/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view <run-id>",
	Short: "Browse a run's extraction buckets interactively",
	Long: `View opens a saved run in a terminal browser: five collapsible bucket
sections with item counts, citations expandable per item. Navigation is
j/k (or arrows), enter toggles, q quits.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func runView(cmd *cobra.Command, args []string) error {
	store, err := openStore(engineConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	if !run.IsStructured {
		return fmt.Errorf("run %s has no structured output to view", run.ID)
	}

	p := tea.NewProgram(tui.New(run), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
