// Package aggregate holds the read-only queries the report assembler runs over classified enquiries:
// flag counts, two-key pivots, win-rate effectiveness, filters and groupings.
package aggregate

import (
	"math"
	"sort"
	"strconv"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
)

const (
	TotalLabel      = "Total"
	GrandTotalLabel = "Grand Total"
)

// KeyFunc extracts a categorical key from an enquiry.
type KeyFunc func(domain.Enquiry) string

// Predicate selects enquiries.
type Predicate func(domain.Enquiry) bool

// FieldKey returns a KeyFunc reading a typed field.
func FieldKey(f domain.Field) KeyFunc {
	return func(e domain.Enquiry) string {
		return e.Value(f)
	}
}

// SumFlag counts rows with flag set.
func SumFlag(rows []domain.Enquiry, flag domain.Flag) int {
	n := 0
	for _, e := range rows {
		if e.Flags.Get(flag) {
			n++
		}
	}
	return n
}

// PivotRow is one category line of a pivot. Counts align with Pivot.Columns.
type PivotRow struct {
	Key    string
	Counts []int
	Total  int
}

// Pivot is a zero-filled count table over two categorical keys.
type Pivot struct {
	Columns    []string
	Rows       []PivotRow
	GrandTotal PivotRow
}

// PivotCounts counts rows by (rowKey, colKey). Category columns are sorted by name. Rows are
// ordered by Total descending; equal totals keep the order in which their key first appeared.
func PivotCounts(rows []domain.Enquiry, rowKey, colKey KeyFunc) Pivot {
	var rowOrder []string
	counts := make(map[string]map[string]int)
	colSeen := make(map[string]bool)

	for _, e := range rows {
		r, c := rowKey(e), colKey(e)
		if _, ok := counts[r]; !ok {
			counts[r] = make(map[string]int)
			rowOrder = append(rowOrder, r)
		}
		counts[r][c]++
		colSeen[c] = true
	}

	columns := make([]string, 0, len(colSeen))
	for c := range colSeen {
		columns = append(columns, c)
	}
	sort.Strings(columns)

	p := Pivot{
		Columns:    columns,
		Rows:       make([]PivotRow, 0, len(rowOrder)),
		GrandTotal: PivotRow{Key: GrandTotalLabel, Counts: make([]int, len(columns))},
	}
	for _, r := range rowOrder {
		pr := PivotRow{Key: r, Counts: make([]int, len(columns))}
		for i, c := range columns {
			n := counts[r][c]
			pr.Counts[i] = n
			pr.Total += n
			p.GrandTotal.Counts[i] += n
		}
		p.GrandTotal.Total += pr.Total
		p.Rows = append(p.Rows, pr)
	}

	sort.SliceStable(p.Rows, func(i, j int) bool {
		return p.Rows[i].Total > p.Rows[j].Total
	})
	return p
}

// Header returns the pivot header with the given label for the key column.
func (p Pivot) Header(keyLabel string) []string {
	h := make([]string, 0, len(p.Columns)+2)
	h = append(h, keyLabel)
	h = append(h, p.Columns...)
	return append(h, TotalLabel)
}

// Table renders the pivot rows followed by the Grand Total row.
func (p Pivot) Table() []domain.Row {
	out := make([]domain.Row, 0, len(p.Rows)+1)
	for _, r := range append(append([]PivotRow{}, p.Rows...), p.GrandTotal) {
		row := make(domain.Row, 0, len(r.Counts)+2)
		row = append(row, r.Key)
		for _, n := range r.Counts {
			row = append(row, n)
		}
		out = append(out, append(row, r.Total))
	}
	return out
}

// EffectivenessRow holds the win rate of one category.
type EffectivenessRow struct {
	Category string
	Total    int
	Won      int
}

// Ratio is Won/Total, or 0 when the category is empty.
func (r EffectivenessRow) Ratio() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Won) / float64(r.Total)
}

// WinPercent formats the ratio as a percentage rounded half-to-even to one decimal, e.g. "33.3%".
func (r EffectivenessRow) WinPercent() string {
	pct := math.RoundToEven(r.Ratio()*100*10) / 10
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}

// Effectiveness is a per-category win-rate table.
type Effectiveness struct {
	Rows       []EffectivenessRow
	GrandTotal EffectivenessRow
}

// ComputeEffectiveness counts, per category, all rows and the rows satisfying win. Rows are ordered
// by win ratio descending; equal ratios keep first-appearance order.
func ComputeEffectiveness(rows []domain.Enquiry, category KeyFunc, win Predicate) Effectiveness {
	var order []string
	byCategory := make(map[string]*EffectivenessRow)

	for _, e := range rows {
		c := category(e)
		r, ok := byCategory[c]
		if !ok {
			r = &EffectivenessRow{Category: c}
			byCategory[c] = r
			order = append(order, c)
		}
		r.Total++
		if win(e) {
			r.Won++
		}
	}

	eff := Effectiveness{
		Rows:       make([]EffectivenessRow, 0, len(order)),
		GrandTotal: EffectivenessRow{Category: GrandTotalLabel},
	}
	for _, c := range order {
		r := *byCategory[c]
		eff.Rows = append(eff.Rows, r)
		eff.GrandTotal.Total += r.Total
		eff.GrandTotal.Won += r.Won
	}

	sort.SliceStable(eff.Rows, func(i, j int) bool {
		return eff.Rows[i].Ratio() > eff.Rows[j].Ratio()
	})
	return eff
}

// Table renders the effectiveness rows followed by the Grand Total row.
func (e Effectiveness) Table() []domain.Row {
	out := make([]domain.Row, 0, len(e.Rows)+1)
	for _, r := range append(append([]EffectivenessRow{}, e.Rows...), e.GrandTotal) {
		out = append(out, domain.Row{r.Category, r.Total, r.Won, r.WinPercent()})
	}
	return out
}

// IsWon is the win predicate used for referral effectiveness.
func IsWon(e domain.Enquiry) bool {
	return e.Status == domain.StatusWon
}

// FilterBy returns the rows matching pred, in input order.
func FilterBy(rows []domain.Enquiry, pred Predicate) []domain.Enquiry {
	out := make([]domain.Enquiry, 0)
	for _, e := range rows {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// Group is one key of a GroupBy result.
type Group struct {
	Key   string
	Count int
	Rows  []domain.Enquiry
}

// GroupBy buckets rows by key. Groups are sorted by key; members keep their input order.
func GroupBy(rows []domain.Enquiry, key KeyFunc) []Group {
	idx := make(map[string]int)
	var groups []Group
	for _, e := range rows {
		k := key(e)
		i, ok := idx[k]
		if !ok {
			i = len(groups)
			idx[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, e)
		groups[i].Count++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	return groups
}
