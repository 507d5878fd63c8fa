package picker

import (
	"datepick/internal/date"
)

// SingleCallbacks connect a SingleController to its host. OnDateChange and
// OnFocusChange are required.
type SingleCallbacks struct {
	OnDateChange  func(date.CalendarDate)
	OnFocusChange func(FocusChange)
	OnClose       func(date.CalendarDate)
}

// SingleController is the state machine of a single-date picker.
type SingleController struct {
	base
	date date.CalendarDate
	cb   SingleCallbacks
}

// NewSingleController validates cfg and the callbacks and returns a closed
// controller holding initial.
func NewSingleController(cfg Config, rules Rules, cb SingleCallbacks, env Environment, initial date.CalendarDate) (*SingleController, error) {
	if err := requireCallback("OnDateChange", cb.OnDateChange == nil); err != nil {
		return nil, err
	}
	if err := requireCallback("OnFocusChange", cb.OnFocusChange == nil); err != nil {
		return nil, err
	}
	if cb.OnClose == nil {
		cb.OnClose = func(date.CalendarDate) {}
	}

	b, err := newBase(cfg, rules, env)
	if err != nil {
		return nil, err
	}
	c := &SingleController{base: b, date: initial, cb: cb}
	c.notifyFocus = func(focused bool) {
		c.cb.OnFocusChange(FocusChange{Focused: focused})
	}
	return c, nil
}

func (c *SingleController) Date() date.CalendarDate { return c.date }

// Open opens the picker with the visible months anchored at anchor, or at
// the selected date when anchor is zero. Opening an open picker only
// repositions it.
func (c *SingleController) Open(anchor date.CalendarDate, via OpenTrigger) bool {
	if anchor.IsZero() {
		anchor = c.date
	}
	return c.openWith(anchor, via)
}

// InputFocus handles the input receiving focus: it opens a closed picker
// and re-routes focus on an open one.
func (c *SingleController) InputFocus() {
	if !c.open {
		c.Open(date.CalendarDate{}, OpenFromInput)
		return
	}
	c.InputFocused()
}

// SelectDate commits d unless it is blocked or outside the allowed range, in
// which case nothing changes and false is returned.
func (c *SingleController) SelectDate(d date.CalendarDate) bool {
	if d.IsZero() || c.validator.IsBlocked(d) {
		return false
	}
	c.commit(d)
	if !c.cfg.KeepOpenOnSelect && c.closeInternal() {
		c.cb.OnClose(c.date)
	}
	return true
}

// SelectFocused selects the day under the calendar cursor.
func (c *SingleController) SelectFocused() bool {
	return c.SelectDate(c.focusedDate)
}

// TypeDate commits a date typed into the input. Typing never closes the
// picker.
func (c *SingleController) TypeDate(text string) bool {
	d, err := c.env.Locale.ParseDate(text)
	if err != nil || c.validator.IsBlocked(d) {
		return false
	}
	c.commit(d)
	c.setFocusedDate(d)
	return true
}

func (c *SingleController) commit(d date.CalendarDate) {
	c.date = d
	c.cb.OnDateChange(d)
}

// Clear unsets the date. With ReopenOnClear the picker opens with the input
// focused; otherwise the open state is left alone.
func (c *SingleController) Clear() {
	c.date = date.CalendarDate{}
	c.cb.OnDateChange(c.date)
	if c.cfg.ReopenOnClear {
		c.Open(date.CalendarDate{}, OpenFromInput)
		c.focus.FocusInput()
	}
}

// Dismiss handles a click at p. Clicks on the trigger or inside the overlay
// (including a detached overlay) are ignored, as are all outside clicks for
// the full-screen portal.
func (c *SingleController) Dismiss(p Point) bool {
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

// Close closes the picker explicitly (escape key, close button).
func (c *SingleController) Close() bool {
	if !c.closeInternal() {
		return false
	}
	c.cb.OnClose(c.date)
	return true
}

// Modifiers computes the visual state of d rendered within month.
func (c *SingleController) Modifiers(d, month date.CalendarDate) Modifiers {
	return c.validator.modifiers(d, month, dayState{
		today:    c.Today(),
		focused:  c.focusForModifiers(),
		selected: date.Range{Start: c.date},
		single:   true,
	})
}

func (b *base) focusForModifiers() date.CalendarDate {
	if b.focus.State() != FocusCalendar {
		return date.CalendarDate{}
	}
	return b.focusedDate
}
