package pipeline

import (
	"fmt"

	appconfig "github.com/DLICWCPA/monday-report-app/pkg/config"
	"github.com/DLICWCPA/monday-report-app/pkg/services/config"
	"github.com/DLICWCPA/monday-report-app/pkg/services/report"
	"github.com/DLICWCPA/monday-report-app/pkg/store/source"
)

// NewFromConfig wires the profile file, the built-in sources and the configured layout.
func NewFromConfig(cfg *appconfig.Config) (Service, error) {
	profiles, err := config.NewRegistry(cfg.Profiles.Path)
	if err != nil {
		return nil, err
	}

	sources, err := source.NewDefaultRegistry(source.FetchOptions{
		PageLimit:  cfg.Fetch.PageLimit,
		MaxRetries: cfg.Fetch.MaxRetries,
		Timeout:    cfg.Fetch.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register sources: %w", err)
	}

	generator, err := report.NewGenerator(cfg.Report.Title, cfg.Report.Layout())
	if err != nil {
		return nil, err
	}

	return NewService(profiles, sources, generator, cfg.Profiles.Default), nil
}
