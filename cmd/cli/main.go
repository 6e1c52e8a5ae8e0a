package main

import (
	"context"
	"fmt"
	"os"

	"github.com/DLICWCPA/monday-report-app/pkg/config"
	"github.com/DLICWCPA/monday-report-app/pkg/runtime/terminal"
	"github.com/DLICWCPA/monday-report-app/pkg/runtime/terminal/commands"
	"github.com/DLICWCPA/monday-report-app/pkg/services/pipeline"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()

	cli := terminal.NewCLI(terminal.Options{
		Loader: load,
		Output: os.Stdout,
	})

	if err := cli.Execute(logger.WithContext(context.Background())); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func load(path string) (*commands.Runtime, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	reports, err := pipeline.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create report service: %w", err)
	}

	return &commands.Runtime{
		Service:        reports,
		UTCOffsetHours: cfg.Report.UTCOffsetHours,
		Timeout:        cfg.Server.RequestTimeout,
	}, nil
}
