package clock

import (
	"time"
)

// Clock supplies the current time. Everything that stamps week numbers or
// day keys takes a Clock so tests can pin the calendar.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed always returns T.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}

// WeekYear returns the ISO-8601 week number and week-numbering year of t.
func WeekYear(t time.Time) (week, year int) {
	year, week = t.ISOWeek()
	return week, year
}

// DayKey formats t as the YYYY-MM-DD key used by chat activity rows.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
