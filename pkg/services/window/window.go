// Package window computes and parses report windows.
package window

import (
	"fmt"
	"strings"
	"time"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
)

const (
	dateLayout = "2006-01-02"

	// DefaultUTCOffsetHours is the reporting timezone used to decide what "today" is.
	DefaultUTCOffsetHours = 8
)

// Current returns the weekly window for now: end is the next Saturday strictly after today in the
// given UTC offset, begin is seven days earlier.
func Current(now time.Time, utcOffsetHours int) domain.ReportWindow {
	zone := time.FixedZone(fmt.Sprintf("UTC%+d", utcOffsetHours), utcOffsetHours*3600)
	local := now.In(zone)
	today := domain.NewDate(local.Year(), local.Month(), local.Day())

	ahead := (int(time.Saturday) - int(today.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	end := today.AddDate(0, 0, ahead)
	return domain.ReportWindow{Begin: end.AddDate(0, 0, -7), End: end}
}

// Parse builds a window from YYYY-MM-DD bounds. When both are blank it falls back to Current.
func Parse(from, to string, now time.Time, utcOffsetHours int) (domain.ReportWindow, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" && to == "" {
		return Current(now, utcOffsetHours), nil
	}
	if from == "" || to == "" {
		return domain.ReportWindow{}, &domain.ValidationError{Reason: "both start and end dates are required"}
	}

	begin, err := ParseDate(from)
	if err != nil {
		return domain.ReportWindow{}, err
	}
	end, err := ParseDate(to)
	if err != nil {
		return domain.ReportWindow{}, err
	}
	return domain.NewReportWindow(begin, end)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &domain.ValidationError{Reason: fmt.Sprintf("date %q is not in YYYY-MM-DD format", s)}
	}
	return t, nil
}
