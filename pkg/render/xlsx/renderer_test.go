package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/DLICWCPA/monday-report-app/pkg/services/classify"
	"github.com/DLICWCPA/monday-report-app/pkg/services/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func date(y int, m time.Month, d int) *time.Time {
	t := domain.NewDate(y, m, d)
	return &t
}

func testReport(t *testing.T) *domain.Report {
	w, err := domain.NewReportWindow(domain.NewDate(2024, 1, 6), domain.NewDate(2024, 1, 13))
	require.NoError(t, err)

	rows := classify.Apply([]domain.Enquiry{
		{
			ID: "1", Name: "Alpha", CreatedOn: date(2024, 1, 5), Status: "Active", Potential: "Hot",
			Department: "COS", Country: "Brazil", Salesperson: "Zoe", Service: "Audit",
			Stage: "Lead", ReferralSource: "Web",
			Columns: map[string]string{domain.ColumnCountry: "Brazil"},
		},
		{
			ID: "2", Name: "Beta", CreatedOn: date(2024, 1, 10), Status: "Active", Potential: "Cold",
			Department: "TAX", Country: "Spain", Salesperson: "Adam", Service: "Tax",
			Stage: "Proposal", ReferralSource: "Partner",
			Columns: map[string]string{domain.ColumnCountry: "Spain"},
		},
	}, w)

	sections, err := report.Assemble(rows, w, report.DefaultLayout())
	require.NoError(t, err)

	return &domain.Report{
		Title:  "Weekly",
		RunID:  "run-1",
		Window: w,
		Data: domain.Dataset{
			Columns:   []string{domain.ColumnItemID, domain.ColumnItemName, domain.ColumnCountry},
			Enquiries: rows,
		},
		Sections: sections,
	}
}

func readBack(t *testing.T, rep *domain.Report) *excelize.File {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Write(rep, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestRenderer_Sheets(t *testing.T) {
	f := readBack(t, testReport(t))

	assert.Equal(t, []string{DataSheet, SummarySheet}, f.GetSheetList())
}

func TestRenderer_DataSheet(t *testing.T) {
	// Given
	f := readBack(t, testReport(t))

	// When
	rows, err := f.GetRows(DataSheet)

	// Then
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{
		"Item ID", "Item Name", "Country/Region", "ReportBegin", "ReportEnd",
		"IsActiveBeforeCutoff", "IsActiveNow", "AdditionAfterCutoff", "RemovalAfterCutoff", "IsHot", "IsCold",
	}, rows[0])
	assert.Equal(t, []string{"1", "Alpha", "Brazil", "2024-01-06", "2024-01-13", "1", "1", "0", "0", "1", "0"}, rows[1])
	assert.Equal(t, []string{"2", "Beta", "Spain", "2024-01-06", "2024-01-13", "0", "1", "1", "0", "0", "1"}, rows[2])
}

func TestRenderer_SummarySheet(t *testing.T) {
	// Given
	rep := testReport(t)
	f := readBack(t, rep)

	// When
	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)

	// Then
	assert.Equal(t, []string{"Period:", "From", "To"}, rows[0])
	assert.Equal(t, []string{"", "01/06/2024", "01/13/2024"}, rows[1])

	title, err := f.GetCellValue(SummarySheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, report.TitleMovement, title)

	firstColumn := make([]string, 0, len(rows))
	for _, r := range rows {
		if len(r) > 0 {
			firstColumn = append(firstColumn, r[0])
		}
	}
	assert.Contains(t, firstColumn, report.TitleDepartments)
	assert.Contains(t, firstColumn, report.TitleBySalesperson)
	assert.Contains(t, firstColumn, grandTotal)

	merged, err := f.GetMergeCells(SummarySheet)
	require.NoError(t, err)
	assert.NotEmpty(t, merged)

	width, err := f.GetColWidth(SummarySheet, "H")
	require.NoError(t, err)
	assert.Equal(t, float64(columnWidth), width)
}

func TestRenderer_SalespersonTitleWrittenOnce(t *testing.T) {
	// Given
	f := readBack(t, testReport(t))

	// When
	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)

	// Then
	var at []int
	for i, r := range rows {
		if len(r) > 0 && r[0] == report.TitleBySalesperson {
			at = append(at, i)
		}
	}
	require.Len(t, at, 1)
	require.Greater(t, len(rows), at[0]+2)
	assert.Equal(t, string(domain.FieldSalesperson), rows[at[0]+2][0])
	assert.Equal(t, report.SubtotalLine("Adam", 1), rows[at[0]+3][0])
}

func TestRenderer_EmptyReport(t *testing.T) {
	rep := testReport(t)
	rep.Data = domain.Dataset{}
	sections, err := report.Assemble(nil, rep.Window, report.DefaultLayout())
	require.NoError(t, err)
	rep.Sections = sections

	f := readBack(t, rep)

	rows, err := f.GetRows(DataSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, columnBegin, rows[0][0])
}

func TestFileName(t *testing.T) {
	w, err := domain.NewReportWindow(domain.NewDate(2024, 1, 6), domain.NewDate(2024, 1, 13))
	require.NoError(t, err)

	assert.Equal(t, "monday_report_2024-01-06_to_2024-01-13.xlsx", FileName(w))
}
