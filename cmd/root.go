package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bullion/internal/config"
)

var (
	rootCmd = &cobra.Command{
		Use:   "bullion",
		Short: "Gold and silver prices estimated by a generative model",
	}

	configPath string

	cnf    *config.Config
	logger *slog.Logger
)

func Execute() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config.yml", "path to the YAML config file")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		initConfig()
		initLogger()
	}

	rootCmd.AddCommand(serveCmd, fetchCmd)
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	cnf = config.MustLoad(configPath)
}

func initLogger() {
	opts := &slog.HandlerOptions{Level: cnf.Logger.ParsedSlogLevel}
	logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
