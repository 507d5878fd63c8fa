package date

import "time"

// Clock supplies "now" so that defaults depending on today are testable.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// FixedAt returns a FixedClock at midnight of d.
func FixedAt(d CalendarDate) FixedClock {
	return FixedClock(d.Time())
}

// Today returns the calendar day of c in c's own location.
func Today(c Clock) CalendarDate {
	if c == nil {
		c = SystemClock{}
	}
	return FromTime(c.Now())
}
