package date

import (
	"testing"
	"time"
)

func TestNew_Normalizes(t *testing.T) {
	d := New(2026, time.January, 32)
	if d != (CalendarDate{2026, time.February, 1}) {
		t.Errorf("expected 2026-02-01, got %s", d)
	}
}

func TestFromTime_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("X", -5*3600)
	d := FromTime(time.Date(2026, time.March, 15, 23, 59, 0, 0, loc))
	if d != (CalendarDate{2026, time.March, 15}) {
		t.Errorf("expected 2026-03-15, got %s", d)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b CalendarDate
		want int
	}{
		{New(2026, 3, 15), New(2026, 3, 15), 0},
		{New(2026, 3, 14), New(2026, 3, 15), -1},
		{New(2026, 4, 1), New(2026, 3, 31), 1},
		{New(2025, 12, 31), New(2026, 1, 1), -1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("Compare(%s, %s): expected %d, got %d", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestAddMonths_ClampsDay(t *testing.T) {
	got := New(2026, time.January, 31).AddMonths(1)
	if got != New(2026, time.February, 28) {
		t.Errorf("expected 2026-02-28, got %s", got)
	}
	got = New(2026, time.March, 31).AddMonths(-13)
	if got != New(2025, time.February, 28) {
		t.Errorf("expected 2025-02-28, got %s", got)
	}
}

func TestStartOfWeek(t *testing.T) {
	// 2026-10-16 is a Friday.
	d := New(2026, time.October, 16)
	if got := d.StartOfWeek(time.Sunday); got != New(2026, time.October, 11) {
		t.Errorf("sunday start: got %s", got)
	}
	if got := d.StartOfWeek(time.Monday); got != New(2026, time.October, 12) {
		t.Errorf("monday start: got %s", got)
	}
	if got := d.StartOfWeek(time.Friday); got != d {
		t.Errorf("friday start: got %s", got)
	}
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween(New(2026, 2, 27), New(2026, 3, 2)); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := DaysBetween(New(2026, 3, 2), New(2026, 2, 27)); got != -3 {
		t.Errorf("expected -3, got %d", got)
	}
}

func TestRange(t *testing.T) {
	r := Range{Start: New(2026, 5, 1), End: New(2026, 5, 4)}
	if !r.Valid() || !r.IsComplete() {
		t.Fatal("expected complete valid range")
	}
	if !r.Contains(r.Start) || !r.Contains(r.End) {
		t.Error("Contains should be inclusive")
	}
	if r.ContainsStrictly(r.Start) || !r.ContainsStrictly(New(2026, 5, 2)) {
		t.Error("ContainsStrictly should exclude ends")
	}
	if r.Nights() != 3 {
		t.Errorf("expected 3 nights, got %d", r.Nights())
	}

	var n int
	r.Days(func(CalendarDate) bool { n++; return true })
	if n != 4 {
		t.Errorf("expected 4 days, got %d", n)
	}

	partial := Range{Start: New(2026, 5, 1)}
	if !partial.Valid() || partial.IsComplete() {
		t.Error("partial range should be valid and incomplete")
	}

	backwards := Range{Start: r.End, End: r.Start}
	if backwards.Valid() {
		t.Error("end before start should be invalid")
	}
}

func TestToday_UsesClock(t *testing.T) {
	c := FixedAt(New(2026, 10, 16))
	if Today(c) != New(2026, 10, 16) {
		t.Errorf("expected 2026-10-16, got %s", Today(c))
	}
}
