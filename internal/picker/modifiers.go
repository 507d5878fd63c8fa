package picker

import (
	"strings"

	"datepick/internal/date"
)

// Modifiers is the set of visual states of one day cell.
type Modifiers uint32

const (
	ModToday Modifiers = 1 << iota
	ModBlocked
	ModBlockedOutOfRange
	ModBlockedCalendar
	ModHighlightedCalendar
	ModSelected
	ModSelectedStart
	ModSelectedEnd
	ModSelectedSpan
	ModHoveredSpan
	ModFocused
	ModOutsideMonth
)

var modifierNames = []string{
	"today", "blocked", "blocked-out-of-range", "blocked-calendar",
	"highlighted-calendar", "selected", "selected-start", "selected-end",
	"selected-span", "hovered-span", "focused", "outside",
}

func (m Modifiers) Has(o Modifiers) bool { return m&o == o }

func (m Modifiers) String() string {
	var names []string
	for i, name := range modifierNames {
		if m&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, " ")
}

// dayState is what the controllers know about the current selection when
// computing modifiers.
type dayState struct {
	today    date.CalendarDate
	focused  date.CalendarDate
	selected date.Range
	preview  date.Range
	single   bool
}

func (v Validator) modifiers(d date.CalendarDate, month date.CalendarDate, st dayState) Modifiers {
	var m Modifiers
	if d == st.today {
		m |= ModToday
	}
	if !d.SameMonth(month) {
		m |= ModOutsideMonth
	}
	if v.IsOutsideAllowedRange(d) {
		m |= ModBlocked | ModBlockedOutOfRange
	}
	if v.IsDayBlocked(d) {
		m |= ModBlocked | ModBlockedCalendar
	}
	if _, ok := v.HighlightKind(d); ok {
		m |= ModHighlightedCalendar
	}
	if d == st.focused {
		m |= ModFocused
	}

	if st.single {
		if d == st.selected.Start && !d.IsZero() {
			m |= ModSelected
		}
		return m
	}

	// A same-day range is both start and end.
	if !d.IsZero() && d == st.selected.Start {
		m |= ModSelected | ModSelectedStart
	}
	if !d.IsZero() && d == st.selected.End {
		m |= ModSelected | ModSelectedEnd
	}
	if st.selected.ContainsStrictly(d) {
		m |= ModSelectedSpan
	}
	if st.preview.IsComplete() && d.After(st.preview.Start) && !d.After(st.preview.End) {
		m |= ModHoveredSpan
	}
	return m
}

// DayModifiers computes the modifiers of d with no selection or keyboard
// focus, for rendering outside a controller.
func (v Validator) DayModifiers(d, month, today date.CalendarDate) Modifiers {
	return v.modifiers(d, month, dayState{today: today, single: true})
}
