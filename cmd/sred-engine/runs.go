// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pdiddy/sred-engine/internal/export"
	"github.com/pdiddy/sred-engine/pkg/types"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage the run history (list, show, evaluate, delete)",
}

// --- list subcommand ---

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs, newest first",
	RunE:  runRunsList,
}

func runRunsList(cmd *cobra.Command, args []string) error {
	store, err := openStore(engineConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.List(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	if len(summaries) == 0 {
		fmt.Println("No saved runs.")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"ID", "Date", "Client", "Fiscal Year", "Meeting", "Model", "Structured"})
	for _, sum := range summaries {
		structured := "yes"
		if !sum.IsStructured {
			structured = "no"
		}
		tw.AppendRow(table.Row{
			sum.ID,
			sum.CreatedAt.Local().Format("2006-01-02 15:04"),
			sum.ClientName,
			sum.FiscalYear,
			sum.MeetingType,
			sum.ModelUsed,
			structured,
		})
	}
	tw.Render()
	fmt.Printf("\n%d run(s)\n", len(summaries))
	return nil
}

// --- show subcommand ---

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run in full as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	store, err := openStore(engineConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	if summaryOnly, _ := cmd.Flags().GetBool("summary"); summaryOnly {
		r := export.BuildReport(run)
		fmt.Printf("Run %s  (%s)\n", run.ID, run.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Printf("Client: %s  Fiscal year: %s  Meeting: %s\n", run.ClientName, run.FiscalYear, run.MeetingType)
		fmt.Printf("Model: %s\n\n", run.ModelUsed)
		fmt.Printf("Candidate projects: %d\n", len(r.Output.CandidateProjects))
		fmt.Printf("Big picture items:  %d (%d goals, %d constraints, %d uncertainties)\n",
			len(r.Output.BigPicture), len(r.Goals), len(r.Constraints), len(r.Uncertainties))
		fmt.Printf("Work performed:     %d\n", len(r.Output.WorkPerformed))
		fmt.Printf("Iterations:         %d\n", len(r.Output.Iterations))
		fmt.Printf("Drafting bullets:   %d (%d draft-ready, %d need clarification)\n",
			r.TotalBullets, r.DraftReady, r.NeedsClarification)
		if n := r.TotalUncited(); n > 0 {
			fmt.Printf("Uncited items:      %d\n", n)
		}
		return nil
	}

	out, err := export.JSON(run)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// --- evaluate subcommand ---

var runsEvaluateCmd = &cobra.Command{
	Use:   "evaluate <run-id>",
	Short: "Record evaluation scores and notes on a run",
	Long: `Evaluate annotates a saved run with reviewer scores (1-5) and notes for
each extraction bucket. Scores left at 0 are recorded as unscored. The
existing evaluation is replaced in full.`,
	Args: cobra.ExactArgs(1),
	RunE: runRunsEvaluate,
}

func runRunsEvaluate(cmd *cobra.Command, args []string) error {
	var eval types.Evaluation
	eval.CandidateProjects, _ = cmd.Flags().GetInt("score-projects")
	eval.BigPicture, _ = cmd.Flags().GetInt("score-big-picture")
	eval.WorkPerformed, _ = cmd.Flags().GetInt("score-work-performed")
	eval.Iterations, _ = cmd.Flags().GetInt("score-iterations")
	eval.DraftingMaterial, _ = cmd.Flags().GetInt("score-drafting")
	eval.NotesCandidateProjects, _ = cmd.Flags().GetString("notes-projects")
	eval.NotesBigPicture, _ = cmd.Flags().GetString("notes-big-picture")
	eval.NotesWorkPerformed, _ = cmd.Flags().GetString("notes-work-performed")
	eval.NotesIterations, _ = cmd.Flags().GetString("notes-iterations")
	eval.NotesDraftingMaterial, _ = cmd.Flags().GetString("notes-drafting")
	eval.NotesOverall, _ = cmd.Flags().GetString("notes-overall")

	store, err := openStore(engineConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.UpdateEvaluation(context.Background(), args[0], eval); err != nil {
		return err
	}
	fmt.Printf("Updated evaluation for run %s\n", args[0])
	return nil
}

// --- delete subcommand ---

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a run from the history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(engineConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted run %s\n", args[0])
		return nil
	},
}

func init() {
	runsListCmd.Flags().Bool("json", false, "output summaries as JSON")

	runsShowCmd.Flags().Bool("summary", false, "print bucket counts instead of the full run")

	runsEvaluateCmd.Flags().Int("score-projects", 0, "candidate projects score (1-5)")
	runsEvaluateCmd.Flags().Int("score-big-picture", 0, "big picture score (1-5)")
	runsEvaluateCmd.Flags().Int("score-work-performed", 0, "work performed score (1-5)")
	runsEvaluateCmd.Flags().Int("score-iterations", 0, "iterations score (1-5)")
	runsEvaluateCmd.Flags().Int("score-drafting", 0, "drafting material score (1-5)")
	runsEvaluateCmd.Flags().String("notes-projects", "", "candidate projects notes")
	runsEvaluateCmd.Flags().String("notes-big-picture", "", "big picture notes")
	runsEvaluateCmd.Flags().String("notes-work-performed", "", "work performed notes")
	runsEvaluateCmd.Flags().String("notes-iterations", "", "iterations notes")
	runsEvaluateCmd.Flags().String("notes-drafting", "", "drafting material notes")
	runsEvaluateCmd.Flags().String("notes-overall", "", "overall notes")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsEvaluateCmd)
	runsCmd.AddCommand(runsDeleteCmd)

	rootCmd.AddCommand(runsCmd)
}
