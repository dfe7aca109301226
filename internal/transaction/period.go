package transaction

import "time"

// Period is a date predicate used by Summary and the breakdown queries.
// The same mechanism serves the monthly, yearly and category views.
type Period func(time.Time) bool

// Month matches transactions dated in the given month and year.
func Month(year int, month time.Month) Period {
	return func(t time.Time) bool {
		return t.Year() == year && t.Month() == month
	}
}

// Year matches transactions dated in the given year.
func Year(year int) Period {
	return func(t time.Time) bool {
		return t.Year() == year
	}
}

// CurrentMonth matches transactions dated in the same month and year as now.
func CurrentMonth(now time.Time) Period {
	return Month(now.Year(), now.Month())
}

// AllTime matches every transaction.
func AllTime() Period {
	return func(time.Time) bool { return true }
}
