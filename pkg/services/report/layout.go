package report

import (
	"fmt"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/DLICWCPA/monday-report-app/pkg/services/aggregate"
	"github.com/DLICWCPA/monday-report-app/pkg/services/desk"
)

// MatchMode selects how a department rule compares the Dept field.
type MatchMode string

const (
	MatchExact    MatchMode = "exact"
	MatchContains MatchMode = "contains"
)

// DepartmentRule defines one "Breakdown by Departments" block.
type DepartmentRule struct {
	Label string    `mapstructure:"label" json:"label"`
	Match MatchMode `mapstructure:"match" json:"match"`
	Value string    `mapstructure:"value" json:"value"`
}

// Predicate builds the filter for the rule. An empty Value falls back to the label.
func (r DepartmentRule) Predicate() (aggregate.Predicate, error) {
	value := r.Value
	if value == "" {
		value = r.Label
	}
	switch r.Match {
	case MatchExact, "":
		return aggregate.FieldEquals(domain.FieldDepartment, value), nil
	case MatchContains:
		return aggregate.FieldContains(domain.FieldDepartment, value), nil
	default:
		return nil, fmt.Errorf("department %q: unknown match mode %q", r.Label, r.Match)
	}
}

// Layout is the configurable part of the summary: which department and desk blocks to emit, in order.
type Layout struct {
	Departments []DepartmentRule
	Desks       []string
}

// DefaultDepartments are the department blocks of the weekly report.
func DefaultDepartments() []DepartmentRule {
	return []DepartmentRule{
		{Label: "COS", Match: MatchExact},
		{Label: "CCT-GBA", Match: MatchExact},
		{Label: "CCT-SH", Match: MatchExact},
		{Label: "AG2", Match: MatchContains},
		{Label: "TAX", Match: MatchContains},
	}
}

// DefaultDesks lists every desk the mapper can produce, in report order.
func DefaultDesks() []string {
	return []string{
		desk.Brazil, desk.Mexico, desk.Latam, desk.Spain, desk.UK, desk.USA,
		desk.MidEast, desk.India, desk.Euro, desk.Australia, desk.China, desk.Germany,
	}
}

// DefaultLayout returns the standard weekly layout.
func DefaultLayout() Layout {
	return Layout{Departments: DefaultDepartments(), Desks: DefaultDesks()}
}

// Validate checks every department rule and rejects desk labels that have no block, Others included.
func (l Layout) Validate() error {
	for _, d := range l.Departments {
		if d.Label == "" {
			return &domain.ValidationError{Reason: "department rule without label"}
		}
		if _, err := d.Predicate(); err != nil {
			return &domain.ValidationError{Reason: err.Error()}
		}
	}
	for _, label := range l.Desks {
		if !desk.Known(label) {
			return &domain.ValidationError{Reason: fmt.Sprintf("unknown desk %q", label)}
		}
	}
	return nil
}
