// Package xlsx renders a report as an Excel workbook with a "Data" and a "Summary Report" sheet.
package xlsx

import (
	"fmt"
	"io"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const (
	DataSheet    = "Data"
	SummarySheet = "Summary Report"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	columnBegin = "ReportBegin"
	columnEnd   = "ReportEnd"

	summaryWidth = 8
	columnWidth  = 20
	headingFill  = "D9E1F2"
	grandTotal   = "Grand Total"
)

// FileName is the download name of a report, e.g. monday_report_2024-01-06_to_2024-01-13.xlsx.
func FileName(w domain.ReportWindow) string {
	return fmt.Sprintf("monday_report_%s_to_%s.xlsx",
		w.Begin.Format("2006-01-02"), w.End.Format("2006-01-02"))
}

type styles struct {
	title   int
	heading int
	header  int
	cell    int
	bold    int
	summary int
}

// Renderer writes reports as xlsx documents.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Write renders rep into w.
func (r *Renderer) Write(rep *domain.Report, w io.Writer) error {
	f, err := r.Build(rep)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Build lays out rep in a new workbook. The caller closes the returned file.
func (r *Renderer) Build(rep *domain.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create data sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeData(f, rep, st); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write data sheet: %w", err)
	}
	if err := writeSummary(f, rep.Sections, st); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write summary sheet: %w", err)
	}
	return f, nil
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	wrap := &excelize.Alignment{WrapText: true, Vertical: "center"}

	var st styles
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&st.title, &excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		}},
		{&st.heading, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 12},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{headingFill}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}},
		{&st.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Border:    border,
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		}},
		{&st.cell, &excelize.Style{Border: border, Alignment: wrap}},
		{&st.bold, &excelize.Style{Font: &excelize.Font{Bold: true}, Border: border, Alignment: wrap}},
		{&st.summary, &excelize.Style{Alignment: &excelize.Alignment{Horizontal: "left", WrapText: true}}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return styles{}, fmt.Errorf("failed to create style: %w", err)
		}
		*d.dst = id
	}
	return st, nil
}

func writeData(f *excelize.File, rep *domain.Report, st styles) error {
	header := make([]any, 0, len(rep.Data.Columns)+2+len(domain.AllFlags))
	for _, c := range rep.Data.Columns {
		header = append(header, c)
	}
	header = append(header, columnBegin, columnEnd)
	for _, fl := range domain.AllFlags {
		header = append(header, string(fl))
	}
	if err := setRow(f, DataSheet, 1, header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(DataSheet, "A1", last, st.bold); err != nil {
		return err
	}

	begin, end := rep.Window.Begin.Format("2006-01-02"), rep.Window.End.Format("2006-01-02")
	for i, e := range rep.Data.Enquiries {
		row := make([]any, 0, len(header))
		for _, c := range rep.Data.Columns {
			row = append(row, e.Column(c))
		}
		row = append(row, begin, end)
		for _, fl := range domain.AllFlags {
			row = append(row, e.Flags.Int(fl))
		}
		if err := setRow(f, DataSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
