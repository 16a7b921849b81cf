// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sred-engine/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [run-id]",
	Short: "Export a run to CSV, HTML, or JSON",
	Long: `Export writes a saved run to a file named
sred-run-<client>-<date>.<ext> in the output directory. With --all the
entire run history is written as a single JSON file instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outDir, _ := cmd.Flags().GetString("out")
	all, _ := cmd.Flags().GetBool("all")

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	store, err := openStore(engineConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	if all {
		runs, err := store.All(context.Background())
		if err != nil {
			return err
		}
		data, err := export.AllJSON(runs)
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, export.AllRunsFilename(time.Now()))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Printf("Exported %d run(s) to %s\n", len(runs), path)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("run id required (or use --all)")
	}

	run, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "csv":
		data = []byte(export.CSV(run))
	case "html":
		doc, err := export.HTML(run)
		if err != nil {
			return err
		}
		data = []byte(doc)
	case "json", "":
		format = "json"
		data, err = export.JSON(run)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use csv, html, or json", format)
	}

	path := filepath.Join(outDir, export.Filename(run, format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Printf("Exported run %s to %s\n", run.ID, path)
	return nil
}

func init() {
	exportCmd.Flags().String("format", "json", "export format: csv, html, or json")
	exportCmd.Flags().String("out", ".", "output directory")
	exportCmd.Flags().Bool("all", false, "export the entire run history as one JSON file")

	rootCmd.AddCommand(exportCmd)
}
