package picker

import (
	"time"

	"datepick/internal/date"
)

// WeekStart is the effective first day of the week.
func (b *base) WeekStart() time.Weekday {
	return b.cfg.WeekStart(b.env.Locale.FirstDayOfWeek())
}

// VisibleMonths returns the first day of each rendered month, in order.
func (b *base) VisibleMonths() []date.CalendarDate {
	months := make([]date.CalendarDate, b.cfg.NumberOfMonths)
	for i := range months {
		months[i] = b.visibleMonth.AddMonths(i)
	}
	return months
}

// MoveFocus moves the calendar cursor by days, scrolling the visible months
// so the cursor stays on screen.
func (b *base) MoveFocus(days int) {
	b.setFocusedDate(b.focusedDate.AddDays(days))
}

// MoveFocusMonths moves the cursor by whole months (page up/down).
func (b *base) MoveFocusMonths(n int) {
	b.setFocusedDate(b.focusedDate.AddMonths(n))
}

// FocusStartOfWeek moves the cursor to the first day of its week (home).
func (b *base) FocusStartOfWeek() {
	b.setFocusedDate(b.focusedDate.StartOfWeek(b.WeekStart()))
}

// FocusEndOfWeek moves the cursor to the last day of its week (end).
func (b *base) FocusEndOfWeek() {
	b.setFocusedDate(b.focusedDate.StartOfWeek(b.WeekStart()).AddDays(6))
}

func (b *base) FocusToday() {
	b.setFocusedDate(b.Today())
}

// SetFocusedDate puts the cursor on d.
func (b *base) SetFocusedDate(d date.CalendarDate) {
	if !d.IsZero() {
		b.setFocusedDate(d)
	}
}

// PrevMonth and NextMonth page the visible months without moving the cursor,
// like the navigation arrows.
func (b *base) PrevMonth() {
	b.visibleMonth = b.visibleMonth.AddMonths(-1)
}

func (b *base) NextMonth() {
	b.visibleMonth = b.visibleMonth.AddMonths(1)
}

// SetVisibleMonth makes month the first visible month. It backs the month
// and year selectors handed to custom month renderers.
func (b *base) SetVisibleMonth(month date.CalendarDate) {
	if !month.IsZero() {
		b.visibleMonth = month.StartOfMonth()
	}
}

func (b *base) setFocusedDate(d date.CalendarDate) {
	b.focusedDate = d
	first := b.visibleMonth
	last := first.AddMonths(b.cfg.NumberOfMonths - 1)
	switch {
	case d.Before(first):
		b.visibleMonth = d.StartOfMonth()
	case d.After(last.EndOfMonth()):
		b.visibleMonth = d.StartOfMonth().AddMonths(-(b.cfg.NumberOfMonths - 1))
	}
}
