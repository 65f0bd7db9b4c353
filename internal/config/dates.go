package config

import (
	"fmt"
	"time"
)

const isoDate = "2006-01-02"

// DateRange is an inclusive calendar-date window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// MonthWindow resolves the report window from a YYYY-MM argument. An empty
// month defaults to the previous full calendar month relative to now.
func MonthWindow(month string, now time.Time) (DateRange, error) {
	var first time.Time
	if month == "" {
		thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		first = thisMonth.AddDate(0, -1, 0)
	} else {
		parsed, err := time.ParseInLocation("2006-01", month, now.Location())
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", month, err)
		}
		first = parsed
	}

	return DateRange{
		Start: first,
		End:   first.AddDate(0, 1, -1),
	}, nil
}

// MonthName returns the window's display name, e.g. "January 2026".
func (r DateRange) MonthName() string {
	return r.Start.Format("January 2006")
}

// StartISO returns the inclusive start date as YYYY-MM-DD.
func (r DateRange) StartISO() string { return r.Start.Format(isoDate) }

// EndISO returns the inclusive end date as YYYY-MM-DD.
func (r DateRange) EndISO() string { return r.End.Format(isoDate) }

// ContainsDate reports whether a YYYY-MM-DD date string falls within the
// window. Lexical comparison is valid because the dates are zero-padded.
func (r DateRange) ContainsDate(date string) bool {
	if len(date) > len(isoDate) {
		date = date[:len(isoDate)]
	}
	return date >= r.StartISO() && date <= r.EndISO()
}

// UntilExclusive returns the first instant after the window, for half-open
// timestamp comparisons.
func (r DateRange) UntilExclusive() time.Time {
	return r.End.AddDate(0, 0, 1)
}
