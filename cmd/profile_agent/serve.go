package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-optimizer/internal/optimizer"
	"github.com/jonathan/profile-optimizer/internal/server"
	"github.com/jonathan/profile-optimizer/internal/session"
	"github.com/jonathan/profile-optimizer/internal/vision"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server exposing the session, extraction, and optimization endpoints.",
	RunE:  runServe,
}

var (
	servePort       int
	serveConfigPath string
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	store, err := session.OpenStore(cfg.DatabasePath, cfg.SessionNamespace)
	if err != nil {
		return err
	}

	sess := session.New()
	// Best-effort restore: a broken or missing snapshot starts fresh.
	if snap, err := store.Load(ctx); err != nil {
		slog.Warn("failed to load persisted session, starting fresh", "error", err)
	} else {
		sess.Restore(snap)
	}
	persister := session.NewPersister(store, sess, cfg.Debounce())

	srv := server.New(server.Config{
		Port:           cfg.Port,
		Session:        sess,
		Persister:      persister,
		Store:          store,
		Optimizer:      optimizer.New(client),
		Analyzer:       vision.NewAnalyzer(client),
		JobDescription: cfg.JobDescription,
	})

	return srv.Start()
}
