package adapters

import (
	"github.com/DLICWCPA/monday-report-app/pkg/models/api"
	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/DLICWCPA/monday-report-app/pkg/services/aggregate"
)

func MapWindowDomainToApi(w domain.ReportWindow) api.TimePeriod {
	return api.TimePeriod{
		Start:    w.Begin,
		End:      w.End,
		Duration: w.Days(),
	}
}

func MapSectionDomainToApi(s domain.ReportSection) api.ReportSection {
	res := api.ReportSection{
		Kind:     string(s.Kind),
		Title:    s.Title,
		Header:   s.Header,
		Rows:     make([][]any, 0, len(s.Rows)),
		Summary:  s.Summary,
		Emphasis: s.Emphasis,
	}
	for _, r := range s.Rows {
		res.Rows = append(res.Rows, []any(r))
	}
	return res
}

func MapMovementDomainToApi(rows []domain.Enquiry) api.MovementSummary {
	return api.MovementSummary{
		ActiveNow:    aggregate.SumFlag(rows, domain.FlagActiveNow),
		ActiveBefore: aggregate.SumFlag(rows, domain.FlagActiveBeforeCutoff),
		Additions:    aggregate.SumFlag(rows, domain.FlagAdditionAfterCutoff),
		Removals:     aggregate.SumFlag(rows, domain.FlagRemovalAfterCutoff),
		Hot:          aggregate.SumFlag(rows, domain.FlagHot),
		Cold:         aggregate.SumFlag(rows, domain.FlagCold),
	}
}

func MapReportDomainToApi(r *domain.Report) api.ReportSummary {
	res := api.ReportSummary{
		Title:     r.Title,
		RunID:     r.RunID,
		Period:    MapWindowDomainToApi(r.Window),
		Enquiries: len(r.Data.Enquiries),
		Movement:  MapMovementDomainToApi(r.Data.Enquiries),
		Sections:  make([]api.ReportSection, 0, len(r.Sections)),
	}
	for _, s := range r.Sections {
		res.Sections = append(res.Sections, MapSectionDomainToApi(s))
	}
	return res
}
