// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/sred-engine/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve exposes the engine over HTTP: submit transcripts, browse the run
history, record evaluations, and download exports. All routes except the
health check require a JWT bearer token signed with the configured
secret (jwt-secret in .secrets/ or SRED_JWT_SECRET).`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if cfg.Server.JWTSecret == "" {
		return fmt.Errorf("jwt secret required: set jwt-secret in .secrets/ or SRED_JWT_SECRET")
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	handler, err := server.New(server.Config{
		Processor: newProcessor(cfg, store, logger),
		Store:     store,
		BasePath:  cfg.Server.BasePath,
		JWTSecret: cfg.Server.JWTSecret,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("base_path", cfg.Server.BasePath),
	)
	return srv.ListenAndServe()
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")

	rootCmd.AddCommand(serveCmd)
}
