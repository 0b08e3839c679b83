package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	app "evaluation-backend/internal"
	"evaluation-backend/internal/clock"
	"evaluation-backend/internal/config"
	"evaluation-backend/internal/evaluation"
	"evaluation-backend/internal/storage"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the evaluation API server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		fmt.Println("Starting evaluation API server...")
		ServerMain(ctx, provider, clk)
	},
}

func ServerMain(ctx context.Context, storageProvider storage.Provider, clk *clock.Clock) {

	if config.Cfg == nil {
		panic("Config not initialized.")
	}

	// Use the provider passed from cobra command (already initialized)
	if storageProvider == nil {
		slog.Error("Storage provider is nil")
		os.Exit(1)
	}

	svc := evaluation.NewService(storageProvider, clk)
	svc.LogSystemStarted(ctx, "evaluation API server started")

	server := app.HTTPServer()
	server.Use(app.InjectProviders(svc, storageProvider))
	app.RegisterRoutes(server, svc)

	slog.Info("Server listening", "addr", config.Cfg.ListenAddr, "timezone", config.Cfg.Timezone)
	if err := server.Run(config.Cfg.ListenAddr); err != nil {
		slog.Error("Server terminated", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
