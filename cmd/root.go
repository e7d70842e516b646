package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/axellelanca/shortlinks/internal/config"
	"github.com/axellelanca/shortlinks/internal/logger"
)

// Cfg holds the configuration loaded before any command runs.
var Cfg *config.Config

// Log is the process logger, built from Cfg.Log.
var Log = zerolog.Nop()

var (
	configPath string
	logLevel   string
)

// RootCmd is the base command. Subcommands register themselves from their
// own packages' init functions.
var RootCmd = &cobra.Command{
	Use:   "shortlinks",
	Short: "A URL shortener with link activation and request counting",
	Long: `shortlinks turns reachable URLs into short base-62 codes, redirects
requests for those codes and counts them, and lets operators deactivate
and reactivate links.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree. It is called from main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./configs/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (trace, debug, info, warn, error)")
}

func initConfig() {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	l, err := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	Cfg = cfg
	Log = l
}
