package date

// Range is a pair of optional calendar days. Either end may be unset while a
// range is being selected.
type Range struct {
	Start CalendarDate
	End   CalendarDate
}

func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// IsComplete reports whether both ends are set.
func (r Range) IsComplete() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// Valid reports whether the range honours Start <= End when both are set.
func (r Range) Valid() bool {
	if !r.IsComplete() {
		return true
	}
	return !r.End.Before(r.Start)
}

// Contains reports whether d lies within a complete range, inclusive.
func (r Range) Contains(d CalendarDate) bool {
	if !r.IsComplete() {
		return false
	}
	return !d.Before(r.Start) && !d.After(r.End)
}

// ContainsStrictly reports whether d lies within a complete range, excluding
// both ends.
func (r Range) ContainsStrictly(d CalendarDate) bool {
	if !r.IsComplete() {
		return false
	}
	return d.After(r.Start) && d.Before(r.End)
}

// Nights returns the number of days between Start and End, or 0 for an
// incomplete range.
func (r Range) Nights() int {
	if !r.IsComplete() {
		return 0
	}
	return DaysBetween(r.Start, r.End)
}

// Days calls yield for each day of a complete range in order, stopping early
// when yield returns false.
func (r Range) Days(yield func(CalendarDate) bool) {
	if !r.IsComplete() {
		return
	}
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		if !yield(d) {
			return
		}
	}
}

func (r Range) String() string {
	return r.Start.String() + ".." + r.End.String()
}
