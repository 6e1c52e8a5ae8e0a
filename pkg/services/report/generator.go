package report

import (
	"context"
	"fmt"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/DLICWCPA/monday-report-app/pkg/services/classify"
	"github.com/DLICWCPA/monday-report-app/pkg/services/normalize"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultTitle is used when no report title is configured.
const DefaultTitle = "Weekly Enquiry Report"

// ItemSource delivers the raw board items a report is built from.
type ItemSource interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.RawItem, error)
}

// Generator runs the full pipeline for one request: fetch, normalize, classify, assemble.
// It holds only immutable settings and is safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, src ItemSource, w domain.ReportWindow) (*domain.Report, error)
}

type generator struct {
	title  string
	layout Layout
}

// NewGenerator validates the layout and returns a Generator using it.
func NewGenerator(title string, layout Layout) (Generator, error) {
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report layout: %w", err)
	}
	if title == "" {
		title = DefaultTitle
	}
	return &generator{title: title, layout: layout}, nil
}

func (g *generator) Generate(ctx context.Context, src ItemSource, w domain.ReportWindow) (*domain.Report, error) {
	runID := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().
		Str("run_id", runID).
		Str("source", src.Name()).
		Str("window", w.String()).
		Logger()

	logger.Debug().Msg("fetching items")
	items, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}

	data, err := normalize.Normalize(items)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize items: %w", err)
	}
	data.Enquiries = classify.Apply(data.Enquiries, w)

	sections, err := Assemble(data.Enquiries, w, g.layout)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble report: %w", err)
	}
	logger.Info().
		Int("items", len(items)).
		Int("columns", len(data.Columns)).
		Int("sections", len(sections)).
		Msg("report generated")

	return &domain.Report{
		Title:    g.title,
		RunID:    runID,
		Window:   w,
		Data:     data,
		Sections: sections,
	}, nil
}
