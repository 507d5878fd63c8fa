package date

import (
	"fmt"
	"time"
)

// Layout is the canonical text form of a CalendarDate.
const Layout = "2006-01-02"

// CalendarDate is a timezone-naive calendar day. The zero value means "no date".
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the CalendarDate for the given day, normalizing out-of-range
// values the way time.Date does (e.g. Jan 32 becomes Feb 1).
func New(year int, month time.Month, day int) CalendarDate {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime drops the time of day and location of t.
func FromTime(t time.Time) CalendarDate {
	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Parse parses a date in Layout form.
func Parse(s string) (CalendarDate, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return FromTime(t), nil
}

func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

// Time returns midnight UTC of d.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d CalendarDate) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d CalendarDate) Compare(o CalendarDate) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d CalendarDate) Before(o CalendarDate) bool { return d.Compare(o) < 0 }
func (d CalendarDate) After(o CalendarDate) bool { return d.Compare(o) > 0 }
func (d CalendarDate) Equal(o CalendarDate) bool { return d == o }

func (d CalendarDate) AddDays(n int) CalendarDate {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// AddMonths moves by n months, clamping the day to the length of the target
// month so that Jan 31 + 1 month is the last day of February.
func (d CalendarDate) AddMonths(n int) CalendarDate {
	first := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	target := FromTime(first)
	day := d.Day
	if last := target.DaysInMonth(); day > last {
		day = last
	}
	target.Day = day
	return target
}

func (d CalendarDate) StartOfMonth() CalendarDate {
	return CalendarDate{Year: d.Year, Month: d.Month, Day: 1}
}

func (d CalendarDate) EndOfMonth() CalendarDate {
	return CalendarDate{Year: d.Year, Month: d.Month, Day: d.DaysInMonth()}
}

func (d CalendarDate) DaysInMonth() int {
	return time.Date(d.Year, d.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d CalendarDate) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// SameMonth reports whether d and o fall in the same calendar month.
func (d CalendarDate) SameMonth(o CalendarDate) bool {
	return d.Year == o.Year && d.Month == o.Month
}

// StartOfWeek returns the closest day on or before d that falls on first.
func (d CalendarDate) StartOfWeek(first time.Weekday) CalendarDate {
	diff := (int(d.Weekday()) - int(first) + 7) % 7
	return d.AddDays(-diff)
}

// IsInclusivelyAfter reports whether a is on or after b.
func IsInclusivelyAfter(a, b CalendarDate) bool {
	return !a.Before(b)
}

// DaysBetween returns the number of days from a to b (negative when b is
// before a).
func DaysBetween(a, b CalendarDate) int {
	return int(b.Time().Sub(a.Time()).Hours() / 24)
}

// MonthsBetween returns the number of calendar months from a to b.
func MonthsBetween(a, b CalendarDate) int {
	return (b.Year-a.Year)*12 + int(b.Month) - int(a.Month)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
