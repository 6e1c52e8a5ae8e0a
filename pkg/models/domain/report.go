package domain

import (
	"fmt"
	"time"
)

// Report represents a complete weekly pipeline snapshot
type Report struct {
	Title    string
	RunID    string
	Window   ReportWindow
	Data     Dataset
	Sections []ReportSection
}

// ReportWindow is the half-open interval [Begin, End) of calendar dates covered by a report
type ReportWindow struct {
	Begin time.Time
	End   time.Time
}

// NewReportWindow truncates both bounds to dates and checks that the window is not empty.
func NewReportWindow(begin, end time.Time) (ReportWindow, error) {
	w := ReportWindow{Begin: Date(begin), End: Date(end)}
	if !w.Begin.Before(w.End) {
		return ReportWindow{}, &ValidationError{
			Reason: fmt.Sprintf("report window begin %s must be before end %s",
				w.Begin.Format("2006-01-02"), w.End.Format("2006-01-02")),
		}
	}
	return w, nil
}

// Days returns the length of the window in days.
func (w ReportWindow) Days() int {
	return int(w.End.Sub(w.Begin).Hours() / 24)
}

func (w ReportWindow) String() string {
	return fmt.Sprintf("%s..%s", w.Begin.Format("2006-01-02"), w.End.Format("2006-01-02"))
}

// SectionKind tells a renderer how a section is laid out. It never changes the section content.
type SectionKind string

const (
	SectionPeriod      SectionKind = "period"
	SectionMetrics     SectionKind = "metrics"
	SectionTable       SectionKind = "table"
	SectionPivot       SectionKind = "pivot"
	SectionHeading     SectionKind = "heading"
	SectionBreakdown   SectionKind = "breakdown"
	SectionGroupedList SectionKind = "grouped_list"
)

// Row is one line of a section table. Cells hold either a string or an int.
type Row []any

// ReportSection represents a logical section in the report
type ReportSection struct {
	Kind    SectionKind
	Title   string
	Header  []string
	Rows    []Row
	Summary []string
	// Emphasis names header columns a renderer may highlight, e.g. "Total".
	Emphasis []string
}
