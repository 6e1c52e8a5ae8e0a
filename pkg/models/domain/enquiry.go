package domain

import (
	"strings"
	"time"
)

// Column titles used by the board. Everything else is carried through the open column map.
const (
	ColumnItemID         = "Item ID"
	ColumnItemName       = "Item Name"
	ColumnCreatedOn      = "Deal creation date"
	ColumnClosedOn       = "Close Date"
	ColumnStatus         = "Group Status"
	ColumnPotential      = "Potential"
	ColumnDepartment     = "Dept"
	ColumnCountry        = "Country/Region"
	ColumnSalesperson    = "Salesperson"
	ColumnService        = "Service"
	ColumnStage          = "Stage"
	ColumnReferralSource = "Referral Source Category"
)

const (
	PlaceholderUnknown    = "Unknown"
	PlaceholderUnassigned = "Unassigned"
)

const (
	StatusActive = "Active"
	StatusWon    = "Won"

	PotentialHot  = "Hot"
	PotentialCold = "Cold"
)

// Field names a typed enquiry attribute, used by filters and group keys.
type Field string

const (
	FieldName           Field = ColumnItemName
	FieldStatus         Field = ColumnStatus
	FieldPotential      Field = ColumnPotential
	FieldDepartment     Field = ColumnDepartment
	FieldCountry        Field = ColumnCountry
	FieldSalesperson    Field = ColumnSalesperson
	FieldService        Field = ColumnService
	FieldStage          Field = ColumnStage
	FieldReferralSource Field = ColumnReferralSource
)

// RawItem is one board item as delivered by an item source, before normalization.
type RawItem struct {
	ID      string
	Name    string
	Columns []RawColumn
}

// RawColumn is a single column value of a raw item. An empty Title marks a value whose column
// could not be resolved upstream.
type RawColumn struct {
	Title string
	Text  string
}

// Enquiry is one tracked opportunity after normalization.
type Enquiry struct {
	ID      string
	Name    string
	Columns map[string]string

	CreatedOn      *time.Time
	ClosedOn       *time.Time
	Status         string
	Potential      string
	Department     string
	Country        string
	Salesperson    string
	Service        string
	Stage          string
	ReferralSource string

	Flags Flags
}

// Value returns the typed value for f.
func (e Enquiry) Value(f Field) string {
	switch f {
	case FieldName:
		return e.Name
	case FieldStatus:
		return e.Status
	case FieldPotential:
		return e.Potential
	case FieldDepartment:
		return e.Department
	case FieldCountry:
		return e.Country
	case FieldSalesperson:
		return e.Salesperson
	case FieldService:
		return e.Service
	case FieldStage:
		return e.Stage
	case FieldReferralSource:
		return e.ReferralSource
	default:
		return e.Columns[string(f)]
	}
}

// Column returns the text of a column, falling back to the typed fields for the identifier and name.
func (e Enquiry) Column(title string) string {
	switch title {
	case ColumnItemID:
		return e.ID
	case ColumnItemName:
		return e.Name
	}
	return e.Columns[title]
}

// Dataset is the normalized import: column order fixed by first appearance, and the enquiries in
// source order.
type Dataset struct {
	Columns   []string
	Enquiries []Enquiry
}

// Date truncates t to a calendar date in UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDate builds a UTC calendar date.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders an optional date as YYYY-MM-DD, or an empty string for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// Blank reports whether s holds nothing but whitespace.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
