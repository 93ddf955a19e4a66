package domain

import (
	"fmt"
	"time"
)

// FiscalYearStatus tracks the lifecycle of a fiscal year.
// Transitions only go forward: Building -> Running -> Finished.
type FiscalYearStatus int

const (
	YearBuilding FiscalYearStatus = iota
	YearRunning
	YearFinished
)

func (s FiscalYearStatus) String() string {
	switch s {
	case YearBuilding:
		return "BUILDING"
	case YearRunning:
		return "RUNNING"
	case YearFinished:
		return "FINISHED"
	}
	return fmt.Sprintf("FiscalYearStatus(%d)", int(s))
}

// FiscalYear is the accounting period owning its own chart of accounts and
// entry sequence numbering. At most one fiscal year is active system-wide.
type FiscalYear struct {
	FiscalYearID  string
	Begin         time.Time
	End           time.Time
	Status        FiscalYearStatus
	IsActive      bool
	PredecessorID *string
	AuditFields
}

// ContainsDate reports whether d falls within [Begin, End].
func (y FiscalYear) ContainsDate(d time.Time) bool {
	return !d.Before(y.Begin) && !d.After(y.End)
}

// ClampDate forces d into the year's date range.
func (y FiscalYear) ClampDate(d time.Time) time.Time {
	if d.Before(y.Begin) {
		return y.Begin
	}
	if d.After(y.End) {
		return y.End
	}
	return d
}

// Identify returns the short human label of the year, e.g. "2024" or "2024/2025".
func (y FiscalYear) Identify() string {
	if y.Begin.Year() != y.End.Year() {
		return fmt.Sprintf("%d/%d", y.Begin.Year(), y.End.Year())
	}
	return fmt.Sprintf("%d", y.Begin.Year())
}

// NextYearDates computes the default [begin, end] for a year following lastEnd.
// A nil lastEnd means no year exists yet and today is used as the begin date.
// The end date lands one year minus a day after begin, falling back from
// Feb 29 to Feb 28 when the target year is not a leap year.
func NextYearDates(lastEnd *time.Time, today time.Time) (time.Time, time.Time) {
	var begin time.Time
	if lastEnd == nil {
		begin = today
	} else {
		begin = lastEnd.AddDate(0, 0, 1)
	}
	end := sameDateNextYear(begin).AddDate(0, 0, -1)
	return begin, end
}

func sameDateNextYear(d time.Time) time.Time {
	target := time.Date(d.Year()+1, d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	// time.Date normalises Feb 29 to Mar 1 on non-leap years.
	if target.Month() != d.Month() {
		return time.Date(d.Year()+1, d.Month(), d.Day()-1, 0, 0, 0, 0, d.Location())
	}
	return target
}
