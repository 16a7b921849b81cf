// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sred-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/sred-engine/internal/gateway"
	"github.com/pdiddy/sred-engine/internal/process"
	"github.com/pdiddy/sred-engine/internal/runstore"
	"github.com/pdiddy/sred-engine/internal/secrets"
	"github.com/pdiddy/sred-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if set, otherwise the loaded secret for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the sred-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "sred-engine",
	Short: "SR&ED interview transcript extraction",
	Long: `sred-engine turns raw SR&ED interview transcripts into structured,
citation-backed claim material. A transcript and a context pack are sent to
an LLM gateway; the reply is normalized into five fixed buckets (candidate
projects, big picture, work performed, iterations, drafting material),
saved to a local run history, and projected into CSV, HTML, and JSON
exports or an interactive grouped view.

Each operation is a subcommand: process, runs, export, view, and serve.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sred-engine.yaml or ~/.config/sred-engine/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the run history database (default: data)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose (development-style) logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sred-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sred-engine"))
		}
	}

	viper.SetDefault("store.data_dir", "data")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.base_path", "/v0")

	viper.SetEnvPrefix("SRED_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig assembles the runtime configuration from viper and loaded
// secrets. Flags and config file win over secrets.
func engineConfig() types.Config {
	cfg := types.Config{
		Gateway: types.GatewayConfig{
			URL:    viper.GetString("gateway.url"),
			APIKey: secretDefault("gateway-api-key", viper.GetString("gateway.api_key")),
		},
		Store: types.StoreConfig{
			DataDir: viper.GetString("store.data_dir"),
		},
		Server: types.ServerConfig{
			Addr:      viper.GetString("server.addr"),
			BasePath:  viper.GetString("server.base_path"),
			JWTSecret: secretDefault("jwt-secret", viper.GetString("server.jwt_secret")),
		},
		ProcessTimeout: viper.GetDuration("process_timeout"),
	}
	if dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir"); dataDir != "" {
		cfg.Store.DataDir = dataDir
	}
	if cfg.ProcessTimeout <= 0 {
		cfg.ProcessTimeout = types.DefaultProcessTimeout
	}
	return cfg
}

// openStore opens the run history database from config.
func openStore(cfg types.Config) (*runstore.Store, error) {
	store, err := runstore.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("opening run store: %w", err)
	}
	return store, nil
}

// newProcessor wires the gateway client and store into a processor.
func newProcessor(cfg types.Config, store *runstore.Store, logger *zap.Logger) *process.Processor {
	gw := cfg.Gateway
	if gw.Timeout <= 0 {
		gw.Timeout = cfg.ProcessTimeout + 10*time.Second
	}
	return &process.Processor{
		Backend: gateway.NewClient(gw),
		Store:   store,
		Timeout: cfg.ProcessTimeout,
		Logger:  logger,
	}
}

// newLogger builds the process logger; --verbose switches to the
// human-readable development encoder.
func newLogger() (*zap.Logger, error) {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
