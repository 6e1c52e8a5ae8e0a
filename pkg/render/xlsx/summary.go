package xlsx

import (
	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

// summaryWriter appends sections to the summary sheet top to bottom.
type summaryWriter struct {
	f       *excelize.File
	st      styles
	row     int
	maxCols int
}

func writeSummary(f *excelize.File, sections []domain.ReportSection, st styles) error {
	w := &summaryWriter{f: f, st: st, row: 1, maxCols: summaryWidth}
	for _, s := range sections {
		if err := w.section(s); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(w.maxCols)
	if err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "A", last, columnWidth)
}

func (w *summaryWriter) section(s domain.ReportSection) error {
	var err error
	switch s.Kind {
	case domain.SectionPeriod:
		err = w.period(s)
	case domain.SectionMetrics:
		err = w.metrics(s)
	case domain.SectionHeading:
		err = w.merged(s.Title, w.st.heading)
	case domain.SectionBreakdown:
		err = w.breakdown(s)
	case domain.SectionGroupedList:
		// the preceding heading carries the title
		err = w.table(s, 1)
	default:
		if err = w.merged(s.Title, w.st.title); err == nil {
			err = w.table(s, 1)
		}
	}
	if err != nil {
		return err
	}
	w.row++
	return nil
}

func (w *summaryWriter) period(s domain.ReportSection) error {
	if err := w.values(1, toAny(s.Header), w.st.title); err != nil {
		return err
	}
	for _, r := range s.Rows {
		if err := w.values(1, r, 0); err != nil {
			return err
		}
	}
	return nil
}

// metrics tables are indented by one column.
func (w *summaryWriter) metrics(s domain.ReportSection) error {
	if err := w.values(2, domain.Row{s.Title}, w.st.title); err != nil {
		return err
	}
	return w.table(s, 2)
}

func (w *summaryWriter) breakdown(s domain.ReportSection) error {
	if err := w.merged(s.Title, w.st.title); err != nil {
		return err
	}
	for _, line := range s.Summary {
		if err := w.merged(line, w.st.summary); err != nil {
			return err
		}
	}
	return w.table(s, 1)
}

func (w *summaryWriter) table(s domain.ReportSection, col int) error {
	if len(s.Header) > 0 {
		if err := w.values(col, toAny(s.Header), w.st.header); err != nil {
			return err
		}
	}

	emphasis := make(map[int]bool)
	for i, h := range s.Header {
		for _, e := range s.Emphasis {
			if h == e {
				emphasis[i] = true
			}
		}
	}

	for _, r := range s.Rows {
		rowStyle := w.st.cell
		if len(r) > 0 && (r[0] == grandTotal || s.Kind == domain.SectionGroupedList && r[0] != "") {
			rowStyle = w.st.bold
		}
		if err := w.setRow(col, r); err != nil {
			return err
		}
		for i := range r {
			style := rowStyle
			if emphasis[i] {
				style = w.st.bold
			}
			if err := w.style(col+i, col+i, style); err != nil {
				return err
			}
		}
		w.row++
	}
	return nil
}

// merged writes text across columns A-H on its own row.
func (w *summaryWriter) merged(text string, style int) error {
	first, _ := excelize.CoordinatesToCellName(1, w.row)
	last, _ := excelize.CoordinatesToCellName(summaryWidth, w.row)
	if err := w.f.MergeCell(SummarySheet, first, last); err != nil {
		return err
	}
	if err := w.f.SetCellValue(SummarySheet, first, text); err != nil {
		return err
	}
	if err := w.f.SetCellStyle(SummarySheet, first, last, style); err != nil {
		return err
	}
	w.row++
	return nil
}

// values writes one row starting at col and styles it when style is non-zero.
func (w *summaryWriter) values(col int, r domain.Row, style int) error {
	if err := w.setRow(col, r); err != nil {
		return err
	}
	if style != 0 && len(r) > 0 {
		if err := w.style(col, col+len(r)-1, style); err != nil {
			return err
		}
	}
	w.row++
	return nil
}

func (w *summaryWriter) setRow(col int, r domain.Row) error {
	if n := col + len(r) - 1; n > w.maxCols {
		w.maxCols = n
	}
	cell, err := excelize.CoordinatesToCellName(col, w.row)
	if err != nil {
		return err
	}
	values := []any(r)
	return w.f.SetSheetRow(SummarySheet, cell, &values)
}

func (w *summaryWriter) style(fromCol, toCol, style int) error {
	first, err := excelize.CoordinatesToCellName(fromCol, w.row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(toCol, w.row)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(SummarySheet, first, last, style)
}

func toAny(ss []string) domain.Row {
	r := make(domain.Row, len(ss))
	for i, s := range ss {
		r[i] = s
	}
	return r
}
