package picker

import (
	"fmt"
	"sync"

	"datepick/internal/date"
	"datepick/internal/locale"
	"datepick/internal/logs"
)

// FocusChange is delivered to the host on every open/close transition.
type FocusChange struct {
	Focused bool
	// Input is the range endpoint being edited. Single pickers leave it
	// InputNone.
	Input RangeInput
}

// OpenTrigger is the gesture that opened the picker.
type OpenTrigger int

const (
	// OpenFromInput applies the focus routing policy.
	OpenFromInput OpenTrigger = iota
	// OpenFromKeyboard focuses the calendar (arrow down in the input).
	OpenFromKeyboard
	// OpenWithShortcuts focuses the calendar and shows the shortcuts panel.
	OpenWithShortcuts
)

// Environment holds the capabilities a controller reads from the runtime.
type Environment struct {
	Clock  date.Clock
	Locale locale.Formatter
	// TouchDevice is probed every time the input opens the picker.
	TouchDevice func() bool
}

func (e Environment) withDefaults() Environment {
	if e.Clock == nil {
		e.Clock = date.SystemClock{}
	}
	if e.Locale == nil {
		e.Locale = locale.NewEnglish(e.Clock)
	}
	if e.TouchDevice == nil {
		e.TouchDevice = func() bool { return false }
	}
	return e
}

// base is the state machine shared by the single and range controllers:
// open state, focus, geometry, scroll lock, resize debounce and the calendar
// cursor.
type base struct {
	cfg        Config
	env        Environment
	validator  Validator
	positioner Positioner

	open     bool
	focus    FocusCoordinator
	geometry Geometry
	lock     ScrollLock

	trigger   Rect
	overlay   Size
	viewport  Viewport
	container Scroller

	resizeTicket  uint64
	listening     bool
	stopListening func()

	titleHeight      Slot[int]
	cancelTitle      func()
	monthTitleHeight int

	visibleMonth date.CalendarDate
	focusedDate  date.CalendarDate

	notifyFocus func(bool)
}

func newBase(cfg Config, rules Rules, env Environment) (base, error) {
	if err := cfg.Validate(); err != nil {
		return base{}, err
	}
	env = env.withDefaults()
	today := date.Today(env.Clock)
	return base{
		cfg:          cfg,
		env:          env,
		validator:    NewValidator(rules, env.Clock),
		positioner:   NewPositioner(cfg),
		visibleMonth: today.StartOfMonth(),
		focusedDate:  today,
	}, nil
}

func (b *base) Config() Config { return b.cfg }
func (b *base) Validator() Validator { return b.validator }
func (b *base) Locale() locale.Formatter { return b.env.Locale }
func (b *base) IsOpen() bool { return b.open }
func (b *base) FocusState() FocusState { return b.focus.State() }
func (b *base) ShortcutsVisible() bool { return b.focus.ShortcutsVisible() }
func (b *base) Geometry() Geometry { return b.geometry }
func (b *base) ScrollLocked() bool { return b.lock.Applied() }
func (b *base) MonthTitleHeight() int { return b.monthTitleHeight }
func (b *base) VisibleMonth() date.CalendarDate { return b.visibleMonth }
func (b *base) FocusedDate() date.CalendarDate { return b.focusedDate }
func (b *base) Today() date.CalendarDate { return date.Today(b.env.Clock) }

// Mount starts listening for viewport resizes. Teardown releases it.
func (b *base) Mount() {
	if b.listening {
		return
	}
	b.listening = true
	b.stopListening = sync.OnceFunc(func() {
		b.listening = false
		b.resizeTicket++
	})
}

// Teardown closes an open picker without firing OnClose, then releases the
// resize listener and the scroll lock. It is safe to call more than once and
// never panics.
func (b *base) Teardown() {
	b.closeInternal()
	if b.stopListening != nil {
		b.stopListening()
	}
	b.releaseScrollLock()
	b.titleHeight.Cancel()
}

// SetLayout records the measured trigger box, the overlay size and the
// scroll scope of the picker container. It does not reposition by itself.
func (b *base) SetLayout(trigger Rect, overlay Size, container Scroller) {
	b.trigger = trigger
	b.overlay = overlay
	b.container = container
}

func (b *base) SetViewport(vp Viewport) {
	b.viewport = vp
}

// Resize records a viewport change and returns a ticket to hand back to
// ResizeSettled once the debounce delay has passed. A zero ticket means the
// controller is not listening.
func (b *base) Resize(vp Viewport) uint64 {
	if !b.listening {
		return 0
	}
	b.viewport = vp
	b.resizeTicket++
	return b.resizeTicket
}

// ResizeSettled recomputes geometry for the latest resize. Stale tickets and
// tickets arriving after the picker closed are ignored.
func (b *base) ResizeSettled(ticket uint64) bool {
	if ticket == 0 || ticket != b.resizeTicket || !b.open {
		return false
	}
	b.reposition()
	return true
}

// Reposition recomputes geometry for the current layout while open.
func (b *base) Reposition() {
	if b.open {
		b.reposition()
	}
}

// OverlayRect is the box the overlay occupies, when open and positioned.
func (b *base) OverlayRect() (Rect, bool) {
	if !b.open || b.geometry.IsZero() {
		return Rect{}, false
	}
	o := b.geometry.Origin(b.trigger, b.overlay, b.viewport)
	return Rect{Left: o.X, Top: o.Y, Right: o.X + b.overlay.Width, Bottom: o.Y + b.overlay.Height}, true
}

func (b *base) reposition() {
	g, err := b.positioner.Compute(b.trigger, b.overlay, b.viewport)
	if err != nil {
		logs.Logger.Printf("picker: skipping geometry update: %v", err)
		return
	}
	b.geometry = g
}

func (b *base) applyScrollLock() {
	if !b.open || !b.cfg.LocksScroll() {
		return
	}
	if _, err := b.lock.Apply(b.container); err != nil {
		logs.Logger.Printf("picker: %v", err)
	}
}

func (b *base) releaseScrollLock() {
	if err := b.lock.Dispose(); err != nil {
		logs.Logger.Printf("picker: %v", err)
	}
}

func (b *base) routeFocusFromInput() {
	policy := FocusPolicy{
		WithPortal:           b.cfg.WithPortal,
		WithFullScreenPortal: b.cfg.WithFullScreenPortal,
		ReadOnly:             b.cfg.ReadOnly,
		TouchDevice:          b.env.TouchDevice(),
		KeepFocusOnInput:     b.cfg.KeepFocusOnInput,
	}
	if policy.CalendarOnOpen() {
		b.focus.FocusCalendar()
	} else {
		b.focus.FocusInput()
	}
}

// openWith runs the closed->open transition: focus, then geometry, then
// scroll lock. When already open it only repositions.
func (b *base) openWith(anchor date.CalendarDate, via OpenTrigger) bool {
	if b.open {
		b.reposition()
		return false
	}
	b.open = true

	switch via {
	case OpenFromKeyboard:
		b.focus.FocusCalendar()
	case OpenWithShortcuts:
		b.focus.FocusCalendar()
		if !b.cfg.HideKeyboardShortcutsPanel {
			b.focus.ShowShortcuts()
		}
	default:
		b.routeFocusFromInput()
	}

	if anchor.IsZero() {
		anchor = b.Today()
	}
	b.visibleMonth = anchor.StartOfMonth()
	b.focusedDate = anchor
	b.cancelTitle = b.titleHeight.Replace(func(h int) {
		b.monthTitleHeight = h
	})

	b.notifyFocus(true)
	b.reposition()
	b.applyScrollLock()
	return true
}

func (b *base) closeInternal() bool {
	if !b.open {
		return false
	}
	b.open = false
	b.focus.Reset()
	b.geometry = Geometry{}
	b.resizeTicket++
	b.releaseScrollLock()
	if b.cancelTitle != nil {
		b.cancelTitle()
		b.cancelTitle = nil
	}
	b.notifyFocus(false)
	return true
}

// InputFocused re-evaluates focus routing when the input receives focus
// while the picker is open.
func (b *base) InputFocused() {
	if b.open {
		b.routeFocusFromInput()
	}
}

// FocusCalendar moves focus into the open calendar (arrow down).
func (b *base) FocusCalendar() {
	if b.open {
		b.focus.FocusCalendar()
	}
}

// FocusInput moves focus back to the input while staying open.
func (b *base) FocusInput() {
	if b.open {
		b.focus.FocusInput()
	}
}

// ShowShortcuts opens the keyboard shortcuts panel, moving focus to the
// calendar first as the "?" key does from the input.
func (b *base) ShowShortcuts() bool {
	if !b.open || b.cfg.HideKeyboardShortcutsPanel {
		return false
	}
	if b.focus.State() != FocusCalendar {
		b.focus.FocusCalendar()
	}
	return b.focus.ShowShortcuts()
}

func (b *base) HideShortcuts() {
	b.focus.HideShortcuts()
}

// MeasureMonthTitle delivers a measured month title height to the current
// subscriber. It may be called any number of times.
func (b *base) MeasureMonthTitle(height int) bool {
	return b.titleHeight.Notify(height)
}

func requireCallback(name string, missing bool) error {
	if missing {
		return fmt.Errorf("%w: %s", ErrMissingCallback, name)
	}
	return nil
}
