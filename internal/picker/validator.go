package picker

import "datepick/internal/date"

// Predicate is a host-supplied rule over calendar days. It must be total:
// a panicking predicate propagates to the caller.
type Predicate func(date.CalendarDate) bool

// Rules are the three injected validation predicates. Nil fields fall back
// to the defaults of NewValidator.
type Rules struct {
	IsOutsideRange   Predicate
	IsDayBlocked     Predicate
	IsDayHighlighted Predicate
}

type HighlightKind int

const (
	HighlightCalendar HighlightKind = iota + 1
)

// Validator answers per-day questions for the renderer and the controllers.
// It holds no state of its own.
type Validator struct {
	rules Rules
}

// NewValidator fills unset rules with defaults: nothing is blocked or
// highlighted, and days strictly before today (per clock) are outside range.
func NewValidator(rules Rules, clock date.Clock) Validator {
	if rules.IsOutsideRange == nil {
		rules.IsOutsideRange = BeforeToday(clock)
	}
	if rules.IsDayBlocked == nil {
		rules.IsDayBlocked = func(date.CalendarDate) bool { return false }
	}
	if rules.IsDayHighlighted == nil {
		rules.IsDayHighlighted = func(date.CalendarDate) bool { return false }
	}
	return Validator{rules: rules}
}

// BeforeToday is the default outside-range rule. Today itself is allowed.
func BeforeToday(clock date.Clock) Predicate {
	return func(d date.CalendarDate) bool {
		return !date.IsInclusivelyAfter(d, date.Today(clock))
	}
}

func (v Validator) IsOutsideAllowedRange(d date.CalendarDate) bool {
	return v.rules.IsOutsideRange(d)
}

func (v Validator) IsDayBlocked(d date.CalendarDate) bool {
	return v.rules.IsDayBlocked(d)
}

// IsBlocked reports whether d cannot be selected for either reason.
func (v Validator) IsBlocked(d date.CalendarDate) bool {
	return v.rules.IsDayBlocked(d) || v.rules.IsOutsideRange(d)
}

func (v Validator) HighlightKind(d date.CalendarDate) (HighlightKind, bool) {
	if v.rules.IsDayHighlighted(d) {
		return HighlightCalendar, true
	}
	return 0, false
}

// BlockedWithin reports whether any day strictly between the ends of a
// complete range is blocked.
func (v Validator) BlockedWithin(r date.Range) bool {
	if !r.IsComplete() {
		return false
	}
	for d := r.Start.AddDays(1); d.Before(r.End); d = d.AddDays(1) {
		if v.IsBlocked(d) {
			return true
		}
	}
	return false
}
