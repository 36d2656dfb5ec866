package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/catalog/internal/config"
	"github.com/mmynk/catalog/pkg/logging"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config

	rootCmd = &cobra.Command{
		Use:               "catalog",
		Short:             "Catalog backend for categories, plans, addons and API keys",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml or ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides logger.level")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(issueKeyCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.Logger.Level
	if logLevel != "" {
		level = logLevel
	}
	logging.SetupWithLevel(logging.ParseLevel(level))
	slog.Debug("Configuration loaded", "driver", cfg.Database.Driver, "addr", cfg.Server.Addr())
	return nil
}
