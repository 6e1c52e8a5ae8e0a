// Package normalize turns raw board items into typed enquiries with every business column present.
package normalize

import (
	"strings"
	"time"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
)

// requiredColumns are materialized with a placeholder when the board never delivers them, so the
// classification and aggregation code never branches on a missing column.
var requiredColumns = []string{
	domain.ColumnCreatedOn,
	domain.ColumnClosedOn,
	domain.ColumnStatus,
	domain.ColumnPotential,
	domain.ColumnDepartment,
	domain.ColumnCountry,
	domain.ColumnSalesperson,
	domain.ColumnService,
	domain.ColumnStage,
	domain.ColumnReferralSource,
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// Normalize flattens raw items into a Dataset. Titles repeated within one item are last-write-wins;
// the first appearance of a title across the whole import fixes its column position.
func Normalize(items []domain.RawItem) (domain.Dataset, error) {
	columns := []string{domain.ColumnItemID, domain.ColumnItemName}
	seen := map[string]bool{
		domain.ColumnItemID:   true,
		domain.ColumnItemName: true,
	}

	enquiries := make([]domain.Enquiry, 0, len(items))
	for i, item := range items {
		if domain.Blank(item.ID) {
			return domain.Dataset{}, &domain.SchemaError{Index: i, Field: domain.ColumnItemID}
		}
		if domain.Blank(item.Name) {
			return domain.Dataset{}, &domain.SchemaError{Index: i, ID: item.ID, Field: domain.ColumnItemName}
		}

		values := make(map[string]string, len(item.Columns))
		for _, col := range item.Columns {
			title := strings.TrimSpace(col.Title)
			if title == "" || title == domain.ColumnItemID || title == domain.ColumnItemName {
				continue
			}
			values[title] = strings.TrimSpace(col.Text)
			if !seen[title] {
				seen[title] = true
				columns = append(columns, title)
			}
		}

		enquiries = append(enquiries, domain.Enquiry{
			ID:      strings.TrimSpace(item.ID),
			Name:    strings.TrimSpace(item.Name),
			Columns: values,
		})
	}

	for _, title := range requiredColumns {
		if !seen[title] {
			columns = append(columns, title)
		}
	}

	for i := range enquiries {
		fillDefaults(&enquiries[i])
	}

	return domain.Dataset{Columns: columns, Enquiries: enquiries}, nil
}

func fillDefaults(e *domain.Enquiry) {
	for _, title := range requiredColumns {
		if _, ok := e.Columns[title]; !ok {
			e.Columns[title] = placeholder(title)
		}
	}

	e.CreatedOn = ParseDate(e.Columns[domain.ColumnCreatedOn])
	e.ClosedOn = ParseDate(e.Columns[domain.ColumnClosedOn])
	e.Status = text(e.Columns, domain.ColumnStatus)
	e.Potential = text(e.Columns, domain.ColumnPotential)
	e.Department = text(e.Columns, domain.ColumnDepartment)
	e.Country = text(e.Columns, domain.ColumnCountry)
	e.Salesperson = text(e.Columns, domain.ColumnSalesperson)
	e.Service = text(e.Columns, domain.ColumnService)
	e.Stage = text(e.Columns, domain.ColumnStage)
	e.ReferralSource = text(e.Columns, domain.ColumnReferralSource)
}

func text(values map[string]string, title string) string {
	v := strings.TrimSpace(values[title])
	if v == "" {
		return placeholder(title)
	}
	return v
}

func placeholder(title string) string {
	switch title {
	case domain.ColumnCreatedOn, domain.ColumnClosedOn:
		return ""
	case domain.ColumnSalesperson:
		return domain.PlaceholderUnassigned
	default:
		return domain.PlaceholderUnknown
	}
}

// ParseDate reads a board date in any of the layouts the board emits. Unparseable text yields nil.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d := domain.Date(t)
			return &d
		}
	}
	return nil
}
