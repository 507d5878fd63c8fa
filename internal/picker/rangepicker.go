package picker

import (
	"datepick/internal/date"
)

// RangeInput names the endpoint a range picker is editing.
type RangeInput int

const (
	InputNone RangeInput = iota
	InputStart
	InputEnd
)

func (r RangeInput) String() string {
	switch r {
	case InputStart:
		return "start"
	case InputEnd:
		return "end"
	}
	return "none"
}

// RangeCallbacks connect a RangeController to its host. OnDatesChange and
// OnFocusChange are required.
type RangeCallbacks struct {
	OnDatesChange func(date.Range)
	OnFocusChange func(FocusChange)
	OnClose       func(date.Range)
}

// RangeController is the state machine of a date-range picker. Selection is
// two-phase: the first click picks the start, the second the end.
type RangeController struct {
	base
	dates        date.Range
	selectingEnd bool
	hovered      date.CalendarDate
	cb           RangeCallbacks
}

func NewRangeController(cfg Config, rules Rules, cb RangeCallbacks, env Environment, initial date.Range) (*RangeController, error) {
	if err := requireCallback("OnDatesChange", cb.OnDatesChange == nil); err != nil {
		return nil, err
	}
	if err := requireCallback("OnFocusChange", cb.OnFocusChange == nil); err != nil {
		return nil, err
	}
	if cb.OnClose == nil {
		cb.OnClose = func(date.Range) {}
	}
	if !initial.Valid() {
		initial = date.Range{}
	}

	b, err := newBase(cfg, rules, env)
	if err != nil {
		return nil, err
	}
	c := &RangeController{
		base:         b,
		dates:        initial,
		selectingEnd: !initial.Start.IsZero() && initial.End.IsZero(),
		cb:           cb,
	}
	c.notifyFocus = func(focused bool) {
		input := InputNone
		if focused {
			input = c.FocusedInput()
		}
		c.cb.OnFocusChange(FocusChange{Focused: focused, Input: input})
	}
	return c, nil
}

func (c *RangeController) Dates() date.Range { return c.dates }

// SelectingEnd reports whether a start is pending and the next click picks
// the end.
func (c *RangeController) SelectingEnd() bool { return c.selectingEnd }

func (c *RangeController) Hovered() date.CalendarDate { return c.hovered }

// FocusedInput is the endpoint the next selection fills.
func (c *RangeController) FocusedInput() RangeInput {
	if !c.open {
		return InputNone
	}
	if c.selectingEnd {
		return InputEnd
	}
	return InputStart
}

// Open opens the picker anchored at anchor, or at the start date when anchor
// is zero.
func (c *RangeController) Open(anchor date.CalendarDate, via OpenTrigger) bool {
	if anchor.IsZero() {
		anchor = c.dates.Start
	}
	return c.openWith(anchor, via)
}

func (c *RangeController) InputFocus() {
	if !c.open {
		c.Open(date.CalendarDate{}, OpenFromInput)
		return
	}
	c.InputFocused()
}

// MaxRangeNights is the longest range a picker accepts.
const MaxRangeNights = 3660

// SelectDate applies one click of the two-phase protocol. Blocked days are
// refused. A click before the pending start restarts the range there. An
// end that would enclose a blocked day, fall short of MinimumNights or
// exceed MaxRangeNights is refused and the pending start kept.
func (c *RangeController) SelectDate(d date.CalendarDate) bool {
	if d.IsZero() || c.validator.IsBlocked(d) {
		return false
	}

	if !c.selectingEnd || d.Before(c.dates.Start) {
		c.dates = date.Range{Start: d}
		c.selectingEnd = true
		c.hovered = date.CalendarDate{}
		c.cb.OnDatesChange(c.dates)
		return true
	}

	proposed := date.Range{Start: c.dates.Start, End: d}
	if !c.spanAllowed(proposed) {
		return false
	}

	c.dates = proposed
	c.selectingEnd = false
	c.hovered = date.CalendarDate{}
	c.cb.OnDatesChange(c.dates)
	if !c.cfg.KeepOpenOnSelect && c.closeInternal() {
		c.cb.OnClose(c.dates)
	}
	return true
}

// spanAllowed checks the length of a complete range before scanning its
// interior for blocked days.
func (c *RangeController) spanAllowed(r date.Range) bool {
	n := r.Nights()
	if n < c.cfg.MinimumNights || n > MaxRangeNights {
		return false
	}
	return !c.validator.BlockedWithin(r)
}

func (c *RangeController) SelectFocused() bool {
	return c.SelectDate(c.focusedDate)
}

// Hover records the day under the pointer or cursor; the preview span is
// derived from it on every render.
func (c *RangeController) Hover(d date.CalendarDate) {
	c.hovered = d
}

// PreviewRange is the span between the pending start and the hovered day
// while an end is being chosen.
func (c *RangeController) PreviewRange() (date.Range, bool) {
	if !c.selectingEnd || c.hovered.IsZero() || c.hovered.Before(c.dates.Start) {
		return date.Range{}, false
	}
	return date.Range{Start: c.dates.Start, End: c.hovered}, true
}

// SetDates commits a range typed into the inputs. Both ends must be
// selectable, ordered, and free of blocked days between them.
func (c *RangeController) SetDates(r date.Range) bool {
	if !r.Valid() {
		return false
	}
	for _, d := range []date.CalendarDate{r.Start, r.End} {
		if !d.IsZero() && c.validator.IsBlocked(d) {
			return false
		}
	}
	if r.IsComplete() && !c.spanAllowed(r) {
		return false
	}
	c.dates = r
	c.selectingEnd = !r.Start.IsZero() && r.End.IsZero()
	c.cb.OnDatesChange(c.dates)
	if !r.Start.IsZero() {
		c.setFocusedDate(r.Start)
	}
	return true
}

// TypeStart and TypeEnd parse one endpoint from text and commit the result
// through SetDates.
func (c *RangeController) TypeStart(text string) bool {
	d, err := c.env.Locale.ParseDate(text)
	if err != nil {
		return false
	}
	r := c.dates
	r.Start = d
	if r.IsComplete() && r.End.Before(d) {
		r.End = date.CalendarDate{}
	}
	return c.SetDates(r)
}

func (c *RangeController) TypeEnd(text string) bool {
	d, err := c.env.Locale.ParseDate(text)
	if err != nil {
		return false
	}
	r := c.dates
	r.End = d
	return c.SetDates(r)
}

func (c *RangeController) Clear() {
	c.dates = date.Range{}
	c.selectingEnd = false
	c.hovered = date.CalendarDate{}
	c.cb.OnDatesChange(c.dates)
	if c.cfg.ReopenOnClear {
		c.Open(date.CalendarDate{}, OpenFromInput)
		c.focus.FocusInput()
	}
}

// Dismiss mirrors SingleController.Dismiss.
func (c *RangeController) Dismiss(p Point) bool {
	if !c.open || !c.cfg.OutsideClickEnabled() {
		return false
	}
	if !c.cfg.WithAnyPortal() && c.trigger.Contains(p) {
		return false
	}
	if r, ok := c.OverlayRect(); ok && r.Contains(p) {
		return false
	}
	return c.Close()
}

func (c *RangeController) Close() bool {
	if !c.closeInternal() {
		return false
	}
	c.hovered = date.CalendarDate{}
	c.cb.OnClose(c.dates)
	return true
}

func (c *RangeController) Modifiers(d, month date.CalendarDate) Modifiers {
	preview, _ := c.PreviewRange()
	return c.validator.modifiers(d, month, dayState{
		today:    c.Today(),
		focused:  c.focusForModifiers(),
		selected: c.dates,
		preview:  preview,
	})
}
