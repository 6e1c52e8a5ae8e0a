package adapters

import (
	"testing"

	"github.com/DLICWCPA/monday-report-app/pkg/models/api"
	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapReportDomainToApi(t *testing.T) {
	// Given
	w, err := domain.NewReportWindow(domain.NewDate(2024, 1, 6), domain.NewDate(2024, 1, 13))
	require.NoError(t, err)
	rep := &domain.Report{
		Title:  "Weekly",
		RunID:  "run-1",
		Window: w,
		Data: domain.Dataset{Enquiries: []domain.Enquiry{
			{Name: "A", Flags: domain.Flags{IsActiveNow: true, IsActiveBeforeCutoff: true, IsHot: true}},
			{Name: "B", Flags: domain.Flags{IsActiveNow: true, AdditionAfterCutoff: true, IsCold: true}},
			{Name: "C", Flags: domain.Flags{RemovalAfterCutoff: true}},
		}},
		Sections: []domain.ReportSection{
			{Kind: domain.SectionHeading, Title: "Individual Desks"},
			{
				Kind:     domain.SectionPivot,
				Title:    "By Country",
				Header:   []string{"Country/Region", "Hot", "Total"},
				Rows:     []domain.Row{{"Brazil", 1, 1}, {"Grand Total", 1, 1}},
				Emphasis: []string{"Total"},
			},
		},
	}

	// When
	res := MapReportDomainToApi(rep)

	// Then
	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, api.TimePeriod{Start: w.Begin, End: w.End, Duration: 7}, res.Period)
	assert.Equal(t, 3, res.Enquiries)
	assert.Equal(t, api.MovementSummary{
		ActiveNow: 2, ActiveBefore: 1, Additions: 1, Removals: 1, Hot: 1, Cold: 1,
	}, res.Movement)
	require.Len(t, res.Sections, 2)
	assert.Equal(t, "heading", res.Sections[0].Kind)
	assert.Empty(t, res.Sections[0].Rows)
	assert.NotNil(t, res.Sections[0].Rows)
	assert.Equal(t, [][]any{{"Brazil", 1, 1}, {"Grand Total", 1, 1}}, res.Sections[1].Rows)
}
