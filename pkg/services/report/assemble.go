// Package report turns classified enquiries into the ordered summary sections of the weekly report.
package report

import (
	"fmt"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/DLICWCPA/monday-report-app/pkg/services/aggregate"
	"github.com/DLICWCPA/monday-report-app/pkg/services/desk"
)

const periodLayout = "01/02/2006"

// Section titles.
const (
	TitlePeriod        = "Period"
	TitleMovement      = "Enquiries Movement"
	TitlePotential     = "Enquiries by Potential"
	TitleAdded         = "Enquiries Added This Week"
	TitleRemoved       = "Enquiries Removed This Week"
	TitleByCountry     = "Active Enquiries by Country and Potential"
	TitleByDesk        = "Active Enquiries by Market Division and Potential (7+4 Desk Mapping)"
	TitleReferral      = "Referral Source Effectiveness (Based on 'Won' Deals)"
	TitleDepartments   = "Breakdown by Departments"
	TitleDesks         = "Individual Desks"
	TitleBySalesperson = "Breakdown by Salesperson"
)

var (
	movementColumns = []string{"This Week", "Last Week", "Addition (+)", "Removal (-)"}
	movementFlags   = []domain.Flag{
		domain.FlagActiveNow,
		domain.FlagActiveBeforeCutoff,
		domain.FlagAdditionAfterCutoff,
		domain.FlagRemovalAfterCutoff,
	}

	movementListColumns = []domain.Field{
		domain.FieldDepartment, domain.FieldName, domain.FieldCountry, domain.FieldSalesperson,
		domain.FieldService, domain.FieldStage, domain.FieldReferralSource, domain.FieldStatus,
	}
	blockColumns = []domain.Field{
		domain.FieldName, domain.FieldCountry, domain.FieldSalesperson, domain.FieldService,
		domain.FieldStage, domain.FieldPotential, domain.FieldReferralSource,
	}
	salespersonColumns = []domain.Field{
		domain.FieldName, domain.FieldDepartment, domain.FieldService, domain.FieldPotential,
	}
)

// Assemble builds the summary sections for classified rows. It is a pure function of its inputs:
// the same rows, window and layout always produce the same sections. An invalid layout is
// returned as a ValidationError.
func Assemble(rows []domain.Enquiry, w domain.ReportWindow, layout Layout) ([]domain.ReportSection, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	active := aggregate.FilterBy(rows, aggregate.HasFlag(domain.FlagActiveNow))

	sections := []domain.ReportSection{
		periodSection(w),
		movementSection(rows),
		potentialSection(rows),
		listSection(TitleAdded, aggregate.FilterBy(rows, aggregate.HasFlag(domain.FlagAdditionAfterCutoff))),
		listSection(TitleRemoved, aggregate.FilterBy(rows, aggregate.HasFlag(domain.FlagRemovalAfterCutoff))),
		pivotSection(TitleByCountry, "Country/Region",
			aggregate.PivotCounts(active, aggregate.FieldKey(domain.FieldCountry), aggregate.FieldKey(domain.FieldPotential))),
		pivotSection(TitleByDesk, "Market Segment",
			aggregate.PivotCounts(active, deskKey, aggregate.FieldKey(domain.FieldPotential))),
		referralSection(rows),
		{Kind: domain.SectionHeading, Title: TitleDepartments},
	}

	for _, d := range layout.Departments {
		pred, err := d.Predicate()
		if err != nil {
			return nil, &domain.ValidationError{Reason: err.Error()}
		}
		sections = append(sections, breakdownSection(d.Label, aggregate.FilterBy(active, pred)))
	}

	sections = append(sections, domain.ReportSection{Kind: domain.SectionHeading, Title: TitleDesks})
	for _, label := range layout.Desks {
		sections = append(sections, breakdownSection(label, aggregate.FilterBy(active, inDesk(label))))
	}

	sections = append(sections, domain.ReportSection{Kind: domain.SectionHeading, Title: TitleBySalesperson})
	return append(sections, salespersonSection(active)), nil
}

func deskKey(e domain.Enquiry) string {
	return desk.Map(e.Country)
}

func inDesk(label string) aggregate.Predicate {
	return func(e domain.Enquiry) bool {
		return desk.Map(e.Country) == label
	}
}

func periodSection(w domain.ReportWindow) domain.ReportSection {
	return domain.ReportSection{
		Kind:   domain.SectionPeriod,
		Title:  TitlePeriod,
		Header: []string{"Period:", "From", "To"},
		Rows:   []domain.Row{{"", w.Begin.Format(periodLayout), w.End.Format(periodLayout)}},
	}
}

func movementSection(rows []domain.Enquiry) domain.ReportSection {
	counts := make(domain.Row, 0, len(movementFlags))
	for _, f := range movementFlags {
		counts = append(counts, aggregate.SumFlag(rows, f))
	}
	return domain.ReportSection{
		Kind:   domain.SectionMetrics,
		Title:  TitleMovement,
		Header: movementColumns,
		Rows:   []domain.Row{counts},
	}
}

func potentialSection(rows []domain.Enquiry) domain.ReportSection {
	return domain.ReportSection{
		Kind:   domain.SectionMetrics,
		Title:  TitlePotential,
		Header: []string{"Potential", domain.PotentialHot, domain.PotentialCold},
		Rows: []domain.Row{{
			"",
			aggregate.SumFlag(rows, domain.FlagHot),
			aggregate.SumFlag(rows, domain.FlagCold),
		}},
	}
}

func listSection(title string, rows []domain.Enquiry) domain.ReportSection {
	return domain.ReportSection{
		Kind:   domain.SectionTable,
		Title:  title,
		Header: fieldHeader(movementListColumns),
		Rows:   fieldRows(rows, movementListColumns),
	}
}

func pivotSection(title, keyLabel string, p aggregate.Pivot) domain.ReportSection {
	return domain.ReportSection{
		Kind:     domain.SectionPivot,
		Title:    title,
		Header:   p.Header(keyLabel),
		Rows:     p.Table(),
		Emphasis: []string{aggregate.TotalLabel},
	}
}

func referralSection(rows []domain.Enquiry) domain.ReportSection {
	eff := aggregate.ComputeEffectiveness(rows, aggregate.FieldKey(domain.FieldReferralSource), aggregate.IsWon)
	return domain.ReportSection{
		Kind:     domain.SectionPivot,
		Title:    TitleReferral,
		Header:   []string{string(domain.FieldReferralSource), aggregate.TotalLabel, "Won", "Win %"},
		Rows:     eff.Table(),
		Emphasis: []string{aggregate.TotalLabel, "Win %"},
	}
}

// breakdownSection always emits its title and summary, even when rows is empty.
func breakdownSection(label string, rows []domain.Enquiry) domain.ReportSection {
	return domain.ReportSection{
		Kind:    domain.SectionBreakdown,
		Title:   label,
		Summary: []string{Summary(label, rows)},
		Header:  fieldHeader(blockColumns),
		Rows:    fieldRows(rows, blockColumns),
	}
}

// Summary is the one-line description of a breakdown block.
func Summary(label string, rows []domain.Enquiry) string {
	return fmt.Sprintf("There are total %d active enquiries for %s, out of which %d are hot and %d are cold.",
		len(rows), label, aggregate.SumFlag(rows, domain.FlagHot), aggregate.SumFlag(rows, domain.FlagCold))
}

// SubtotalLine labels a salesperson group, e.g. "Alice (Total: 3)".
func SubtotalLine(name string, count int) string {
	return fmt.Sprintf("%s (Total: %d)", name, count)
}

func salespersonSection(active []domain.Enquiry) domain.ReportSection {
	header := append([]string{string(domain.FieldSalesperson)}, fieldHeader(salespersonColumns)...)
	out := make([]domain.Row, 0, len(active))
	for _, g := range aggregate.GroupBy(active, aggregate.FieldKey(domain.FieldSalesperson)) {
		subtotal := make(domain.Row, len(header))
		subtotal[0] = SubtotalLine(g.Key, g.Count)
		for i := 1; i < len(subtotal); i++ {
			subtotal[i] = ""
		}
		out = append(out, subtotal)
		for _, r := range fieldRows(g.Rows, salespersonColumns) {
			out = append(out, append(domain.Row{""}, r...))
		}
	}
	return domain.ReportSection{
		Kind:   domain.SectionGroupedList,
		Title:  TitleBySalesperson,
		Header: header,
		Rows:   out,
	}
}

func fieldHeader(fields []domain.Field) []string {
	h := make([]string, len(fields))
	for i, f := range fields {
		h[i] = string(f)
	}
	return h
}

func fieldRows(rows []domain.Enquiry, fields []domain.Field) []domain.Row {
	out := make([]domain.Row, 0, len(rows))
	for _, e := range rows {
		r := make(domain.Row, len(fields))
		for i, f := range fields {
			r[i] = e.Value(f)
		}
		out = append(out, r)
	}
	return out
}
