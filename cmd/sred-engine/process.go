// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sred-engine/internal/gateway"
	"github.com/pdiddy/sred-engine/internal/process"
	"github.com/pdiddy/sred-engine/internal/prompt"
	"github.com/pdiddy/sred-engine/internal/runstore"
	"github.com/pdiddy/sred-engine/pkg/types"
)

var processCmd = &cobra.Command{
	Use:   "process <transcript-file>",
	Short: "Process a transcript into structured claim material",
	Long: `Process reads a transcript file, combines it with a context pack, and
sends it to the model gateway for extraction. The structured result is
saved to the run history and printed as JSON.

The context pack defaults to the built-in reasoning guide. Supply
--context-pack with a YAML file (fields: name, version, text) to use a
client-specific pack instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

// contextPackFile is the YAML shape of an on-disk context pack.
type contextPackFile struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Text    string `yaml:"text"`
}

func runProcess(cmd *cobra.Command, args []string) error {
	transcript, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading transcript: %w", err)
	}

	req := process.Request{
		Transcript:  string(transcript),
		ContextPack: prompt.DefaultContextPack,
	}
	req.ClientName, _ = cmd.Flags().GetString("client")
	req.FiscalYear, _ = cmd.Flags().GetString("fiscal-year")
	req.MeetingType, _ = cmd.Flags().GetString("meeting-type")
	req.PromptName, _ = cmd.Flags().GetString("prompt-name")
	req.PromptVersion, _ = cmd.Flags().GetString("prompt-version")
	req.DisableStructured, _ = cmd.Flags().GetBool("no-structured")

	model, _ := cmd.Flags().GetString("model")
	req.Model = types.ModelKey(model)

	if packPath, _ := cmd.Flags().GetString("context-pack"); packPath != "" {
		data, err := os.ReadFile(packPath)
		if err != nil {
			return fmt.Errorf("reading context pack: %w", err)
		}
		var pack contextPackFile
		if err := yaml.Unmarshal(data, &pack); err != nil {
			return fmt.Errorf("parsing context pack %s: %w", packPath, err)
		}
		if pack.Text == "" {
			return fmt.Errorf("context pack %s has no text field", packPath)
		}
		req.ContextPack = pack.Text
		req.ContextPackName = pack.Name
		req.ContextPackVersion = pack.Version
	}

	if promptPath, _ := cmd.Flags().GetString("system-prompt"); promptPath != "" {
		data, err := os.ReadFile(promptPath)
		if err != nil {
			return fmt.Errorf("reading system prompt: %w", err)
		}
		req.SystemPrompt = string(data)
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := engineConfig()

	var store *runstore.Store
	if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
		store, err = openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	proc := newProcessor(cfg, store, logger)

	fmt.Fprintf(os.Stderr, "Processing with %s...\n", gateway.Describe(req.Model))
	stop := startElapsedTicker(os.Stderr)
	result, err := proc.Run(context.Background(), req)
	stop()
	if err != nil {
		return err
	}

	if result.PersistWarning != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", result.PersistWarning)
	}
	if result.Run.ID != "" {
		fmt.Fprintf(os.Stderr, "Saved run %s\n", result.Run.ID)
	}

	if result.Run.IsStructured {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Run.Output)
	}
	fmt.Println(result.Run.RawOutput)
	return nil
}

// startElapsedTicker prints elapsed seconds to w once per second until the
// returned stop function is called.
func startElapsedTicker(w *os.File) func() {
	start := time.Now()
	ticker := time.NewTicker(time.Second)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\relapsed: %ds", int(time.Since(start).Seconds()))
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
		fmt.Fprintln(w)
	}
}

func init() {
	processCmd.Flags().String("model", "", "model selection: openai, claude, or gemini (default gemini)")
	processCmd.Flags().String("context-pack", "", "YAML context pack file (fields: name, version, text)")
	processCmd.Flags().String("system-prompt", "", "file overriding the built-in system prompt")
	processCmd.Flags().String("client", "", "client name recorded on the run")
	processCmd.Flags().String("fiscal-year", "", "fiscal year recorded on the run")
	processCmd.Flags().String("meeting-type", "", "meeting type recorded on the run")
	processCmd.Flags().String("prompt-name", "", "prompt name recorded on the run")
	processCmd.Flags().String("prompt-version", "", "prompt version recorded on the run")
	processCmd.Flags().Bool("no-structured", false, "skip JSON normalization and print the raw model reply")
	processCmd.Flags().Bool("no-save", false, "do not save the run to history")

	rootCmd.AddCommand(processCmd)
}
