// Package classify derives the week-over-week movement flags of an enquiry for a report window.
package classify

import (
	"time"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
)

// Flags computes the six movement flags for e. Any comparison involving a missing date is false.
func Flags(e domain.Enquiry, w domain.ReportWindow) domain.Flags {
	active := e.Status == domain.StatusActive

	f := domain.Flags{
		IsActiveNow: (before(e.CreatedOn, w.End) && active) ||
			(!active && notBefore(e.ClosedOn, w.End)),
		IsActiveBeforeCutoff: before(e.CreatedOn, w.Begin) &&
			(active || notBefore(e.ClosedOn, w.Begin)),
		AdditionAfterCutoff: within(e.CreatedOn, w),
		RemovalAfterCutoff:  within(e.ClosedOn, w),
	}
	f.IsHot = e.Potential == domain.PotentialHot && f.IsActiveNow
	f.IsCold = e.Potential == domain.PotentialCold && f.IsActiveNow
	return f
}

// Apply returns a copy of rows with flags attached. The input slice is left untouched.
func Apply(rows []domain.Enquiry, w domain.ReportWindow) []domain.Enquiry {
	out := make([]domain.Enquiry, len(rows))
	for i, e := range rows {
		e.Flags = Flags(e, w)
		out[i] = e
	}
	return out
}

func before(d *time.Time, bound time.Time) bool {
	return d != nil && d.Before(bound)
}

func notBefore(d *time.Time, bound time.Time) bool {
	return d != nil && !d.Before(bound)
}

func within(d *time.Time, w domain.ReportWindow) bool {
	return notBefore(d, w.Begin) && before(d, w.End)
}
