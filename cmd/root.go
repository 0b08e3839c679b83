package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"evaluation-backend/internal/clock"
	"evaluation-backend/internal/config"
	"evaluation-backend/internal/storage"
)

var (
	cfgFile  string
	cfg      *config.Config
	provider storage.Provider
	clk      *clock.Clock
)

var rootCmd = &cobra.Command{
	Use:   "evaluation-backend",
	Short: "Satisfaction evaluation backend",
	Long:  `HTTP backend for collecting device-submitted satisfaction evaluations with a one-vote-per-device-per-day rule.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		if cfgFile != "" {
			cfg, err = config.LoadConfig(cfgFile)
		} else {
			cfg, err = config.LoadConfig()
		}
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		config.Cfg = cfg

		initLogger(cfg)

		clk, err = clock.New(cfg.Timezone)
		if err != nil {
			slog.Error("Failed to initialize clock", "error", err, "timezone", cfg.Timezone)
			os.Exit(1)
		}

		provider = storage.NewProvider(&cfg.Storage)
		if provider == nil {
			slog.Error("Failed to initialize storage provider")
			os.Exit(1)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if provider != nil {
			provider.Close()
		}
	},
}

// Initialize logger
func initLogger(cfg *config.Config) {
	var level slog.Level
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	slog.Debug("Logger initialized", "level", level.String())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./instance/config.yaml)")
}
