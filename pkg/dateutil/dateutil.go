package dateutil

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date layout used for every date field.
const DateLayout = "2006-01-02"

var nanosPerDay = decimal.NewFromInt(int64(24 * time.Hour))

// DateOf returns the calendar date of t (as seen in t's own location) at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// BeginningOfWeek returns the most recent Sunday on or before date
func BeginningOfWeek(date time.Time) time.Time {
	d := DateOf(date)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// BeginningOfMonth returns the first day of the month for a given date
func BeginningOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// BeginningOfQuarter returns the first day of the three-month block containing date
// (January, April, July or October).
func BeginningOfQuarter(date time.Time) time.Time {
	firstMonth := (int(date.Month())-1)/3*3 + 1
	return time.Date(date.Year(), time.Month(firstMonth), 1, 0, 0, 0, 0, time.UTC)
}

// BeginningOfYear returns the first day of the year for a given date
func BeginningOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
}

// WithinDates reports whether the calendar date of t falls in [from, to], both inclusive.
func WithinDates(t, from, to time.Time) bool {
	d := DateOf(t)
	return !d.Before(DateOf(from)) && !d.After(DateOf(to))
}

// DaysBetween returns the elapsed time from -> to in fractional days.
// Negative when to is before from.
func DaysBetween(from, to time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(to.Sub(from))).Div(nanosPerDay)
}

// CeilDays returns the number of days from -> to rounded up to a whole day.
func CeilDays(from, to time.Time) int {
	days := float64(to.Sub(from)) / float64(24*time.Hour)
	return int(math.Ceil(days))
}
