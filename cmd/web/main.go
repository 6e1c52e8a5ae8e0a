package main

import (
	"fmt"
	"os"

	"github.com/DLICWCPA/monday-report-app/pkg/config"
	"github.com/DLICWCPA/monday-report-app/pkg/render/xlsx"
	"github.com/DLICWCPA/monday-report-app/pkg/server"
	"github.com/DLICWCPA/monday-report-app/pkg/services/pipeline"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the weekly enquiry report",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the settings file (defaults and MONDAY_REPORT_* variables apply when empty)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	reports, err := pipeline.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to create report service: %w", err)
	}

	logger.Info().Msgf("Profiles loaded from `%s`:", cfg.Profiles.Path)
	profiles, err := reports.Profiles(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to list profiles")
	}
	for _, profile := range profiles {
		logger.Info().Msgf("Name: `%s`", profile)
	}

	webAPI := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		RequestTimeout:  cfg.Server.RequestTimeout,
		Title:           cfg.Report.Title,
		UTCOffsetHours:  cfg.Report.UTCOffsetHours,
		Dependencies: server.Dependencies{
			Reports:  reports,
			Renderer: xlsx.NewRenderer(),
			Logger:   logger,
		},
	})

	return webAPI.Start()
}
