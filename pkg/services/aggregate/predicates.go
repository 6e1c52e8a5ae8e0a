package aggregate

import (
	"strings"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"golang.org/x/text/cases"
)

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// FieldEquals matches rows whose field equals value, ignoring case and surrounding space.
func FieldEquals(f domain.Field, value string) Predicate {
	want := fold(value)
	return func(e domain.Enquiry) bool {
		return fold(e.Value(f)) == want
	}
}

// FieldContains matches rows whose field contains value, ignoring case.
func FieldContains(f domain.Field, value string) Predicate {
	want := fold(value)
	return func(e domain.Enquiry) bool {
		return strings.Contains(fold(e.Value(f)), want)
	}
}

// HasFlag matches rows with flag set.
func HasFlag(flag domain.Flag) Predicate {
	return func(e domain.Enquiry) bool {
		return e.Flags.Get(flag)
	}
}

// All matches rows satisfying every predicate.
func All(preds ...Predicate) Predicate {
	return func(e domain.Enquiry) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}
}
