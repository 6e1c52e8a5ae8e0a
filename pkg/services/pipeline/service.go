// Package pipeline runs a report for a named board profile: resolve the profile, build its item
// source, then generate.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/DLICWCPA/monday-report-app/pkg/services/config"
	"github.com/DLICWCPA/monday-report-app/pkg/services/report"
	"github.com/DLICWCPA/monday-report-app/pkg/store/source"
	"github.com/rs/zerolog"
)

type Service interface {
	// Run generates the report of profile for w. A blank profile uses the configured default.
	Run(ctx context.Context, profile string, w domain.ReportWindow) (*domain.Report, error)
	// Profiles lists the profile names available to Run.
	Profiles(ctx context.Context) ([]string, error)
}

type service struct {
	profiles       config.Registry
	sources        source.Registry
	generator      report.Generator
	defaultProfile string
}

func NewService(
	profiles config.Registry,
	sources source.Registry,
	generator report.Generator,
	defaultProfile string,
) Service {
	return &service{
		profiles:       profiles,
		sources:        sources,
		generator:      generator,
		defaultProfile: defaultProfile,
	}
}

func (s *service) Run(ctx context.Context, name string, w domain.ReportWindow) (*domain.Report, error) {
	if name == "" {
		name = s.defaultProfile
	}

	profile, err := s.profiles.GetProfile(ctx, name)
	if err != nil {
		return nil, err
	}

	src, err := s.sources.Create(ctx, profile)
	if err != nil {
		return nil, err
	}
	if closer, ok := src.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Str("profile", profile.Name).Msg("failed to close item source")
			}
		}()
	}

	rep, err := s.generator.Generate(ctx, src, w)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", profile.Name, err)
	}
	return rep, nil
}

func (s *service) Profiles(ctx context.Context) ([]string, error) {
	return s.profiles.GetProfiles(ctx)
}
