package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"datepick/internal/date"
	"datepick/internal/locale"
	"datepick/internal/picker"
	"datepick/internal/tui/calendar"
	"datepick/internal/tui/messages"
	"datepick/internal/tui/shared"
	"datepick/internal/tui/theme"
)

// Options configure a picker model.
type Options struct {
	// ID tags every message the picker emits so a host can run several.
	ID     string
	Config picker.Config
	Rules  picker.Rules
	Env    picker.Environment
	Hooks  calendar.Hooks
	// Container is the page element holding the picker. Its ancestors are
	// scroll-locked while the picker is open.
	Container picker.Scroller
}

// controller is the part of the picker state machine shared by the single
// and range controllers.
type controller interface {
	Config() picker.Config
	Locale() locale.Formatter
	IsOpen() bool
	FocusState() picker.FocusState
	ShortcutsVisible() bool
	VisibleMonths() []date.CalendarDate
	WeekStart() time.Weekday
	FocusedDate() date.CalendarDate
	MonthTitleHeight() int
	Modifiers(d, month date.CalendarDate) picker.Modifiers

	Mount()
	Teardown()
	SetLayout(trigger picker.Rect, overlay picker.Size, container picker.Scroller)
	Resize(vp picker.Viewport) uint64
	ResizeSettled(ticket uint64) bool
	Reposition()
	OverlayRect() (picker.Rect, bool)
	MeasureMonthTitle(height int) bool

	Open(anchor date.CalendarDate, via picker.OpenTrigger) bool
	InputFocus()
	FocusCalendar()
	FocusInput()
	ShowShortcuts() bool
	HideShortcuts()
	MoveFocus(days int)
	MoveFocusMonths(n int)
	FocusStartOfWeek()
	FocusEndOfWeek()
	FocusToday()
	PrevMonth()
	NextMonth()
	SetVisibleMonth(month date.CalendarDate)
	SelectDate(d date.CalendarDate) bool
	SelectFocused() bool
	Clear()
	Dismiss(p picker.Point) bool
	Close() bool
}

// outbox collects the messages the controller callbacks produce during one
// Update so they can be returned as commands in order.
type outbox struct {
	msgs []tea.Msg
}

func (o *outbox) push(msg tea.Msg) {
	o.msgs = append(o.msgs, msg)
}

func (o *outbox) flush() tea.Cmd {
	if len(o.msgs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(o.msgs))
	for i, msg := range o.msgs {
		cmds[i] = func() tea.Msg { return msg }
	}
	o.msgs = nil
	return tea.Sequence(cmds...)
}

type hit int

const (
	hitOutside hit = iota
	hitTrigger
	hitOverlay
	hitDay
	hitNav
	hitClose
)

// frame is the bubbletea plumbing shared by the picker models: overlay
// rendering, hit testing, keyboard navigation and resize debouncing.
type frame struct {
	id        string
	ctrl      controller
	hooks     calendar.Hooks
	container picker.Scroller
	keys      keyMap
	help      help.Model
	out       *outbox

	layout     calendar.Layout
	overlay    string
	size       picker.Size
	bodyOffset picker.Point
	closeBtn   picker.Rect
	calView    viewport.Model

	trigger picker.Rect
	placed  picker.Rect
	screen  picker.Viewport
	focused bool

	// onHover and afterMove let the range model derive its hover preview.
	onHover   func(date.CalendarDate)
	afterMove func()
}

func newFrame(opts Options, ctrl controller, out *outbox) frame {
	return frame{
		id:        opts.ID,
		ctrl:      ctrl,
		hooks:     opts.Hooks,
		container: opts.Container,
		keys:      newKeyMap(),
		help:      help.New(),
		out:       out,
		calView:   viewport.New(0, 0),
	}
}

// SetTrigger records where the host drew the input, in screen cells.
func (f *frame) SetTrigger(r picker.Rect) {
	f.trigger = r
	f.ctrl.SetLayout(r, f.size, f.container)
}

func (f frame) Focused() bool { return f.focused }

func (f frame) IsOpen() bool { return f.ctrl.IsOpen() }

// Teardown releases the picker's listeners and scroll lock.
func (f frame) Teardown() {
	f.ctrl.Teardown()
}

// Overlay composites the open calendar over bg, the host's full screen.
func (f frame) Overlay(bg string) string {
	r, ok := f.ctrl.OverlayRect()
	if !ok {
		return bg
	}
	if f.ctrl.Config().WithFullScreenPortal {
		bg = shared.Backdrop(theme.Backdrop, f.screen.Width, f.screen.Height)
	}
	return shared.Composite(bg, f.overlay, r.Left, r.Top)
}

// render rebuilds the overlay and hands its measured size to the
// controller. It returns a command carrying the measured month title height
// when it changed.
func (f *frame) render() tea.Cmd {
	c := f.ctrl
	cfg := c.Config()

	f.layout = calendar.Render(calendar.Options{
		Months:            c.VisibleMonths(),
		WeekStart:         c.WeekStart(),
		Orientation:       cfg.Orientation,
		DaySize:           cfg.DaySize,
		EnableOutsideDays: cfg.EnableOutsideDays,
		IsRTL:             cfg.IsRTL,
		Locale:            c.Locale(),
		Modifiers:         c.Modifiers,
		Hooks:             f.hooks,
	})

	body := f.layout.View
	if cfg.Orientation == picker.VerticalScrollable {
		f.calView.Width = f.layout.Size.Width
		f.calView.Height = f.scrollHeight()
		f.calView.SetContent(body)
		f.revealCursor()
		body = f.calView.View()
	}
	if c.ShortcutsVisible() {
		body = shared.RenderHelpBox(f.keys.sections())
	}

	// Border plus horizontal padding of theme.Overlay.
	f.bodyOffset = picker.Point{X: 2, Y: 1}
	f.closeBtn = picker.Rect{}

	var parts []string
	if cfg.WithFullScreenPortal {
		label := c.Locale().Phrases().CloseDatePicker + " ✕"
		w := max(lipgloss.Width(body), lipgloss.Width(label))
		parts = append(parts, lipgloss.PlaceHorizontal(w, lipgloss.Right, theme.NavArrow.Render(label)))
		f.closeBtn = picker.Rect{Left: 2 + w - lipgloss.Width(label), Top: 1, Right: 2 + w, Bottom: 2}
		f.bodyOffset.Y++
	}
	parts = append(parts, body)
	if !cfg.HideKeyboardShortcutsPanel {
		parts = append(parts, f.help.ShortHelpView(f.keys.ShortHelp()))
	}
	f.overlay = theme.Overlay.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))

	size := picker.Size{Width: lipgloss.Width(f.overlay), Height: lipgloss.Height(f.overlay)}
	c.SetLayout(f.trigger, size, f.container)
	if size != f.size || f.trigger != f.placed {
		f.size, f.placed = size, f.trigger
		c.Reposition()
	}

	if c.IsOpen() && f.layout.TitleHeight != c.MonthTitleHeight() {
		id, h := f.id, f.layout.TitleHeight
		return func() tea.Msg {
			return messages.MonthTitleMeasuredMsg{PickerID: id, Height: h}
		}
	}
	return nil
}

func (f *frame) scrollHeight() int {
	oneMonth := 1 + f.layout.TitleHeight + 7
	if f.screen.Height <= 0 {
		return min(f.layout.Size.Height, oneMonth)
	}
	return min(f.layout.Size.Height, max(oneMonth, f.screen.Height-6))
}

func (f *frame) revealCursor() {
	focused := f.ctrl.FocusedDate()
	for _, cell := range f.layout.Cells {
		if cell.Date != focused {
			continue
		}
		y := cell.Rect.Top
		switch {
		case y < f.calView.YOffset:
			f.calView.SetYOffset(y)
		case y >= f.calView.YOffset+f.calView.Height:
			f.calView.SetYOffset(y - f.calView.Height + 1)
		}
		return
	}
}

// updateCommon handles the messages every picker model reacts to the same
// way.
func (f *frame) updateCommon(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		vp := picker.Viewport{Width: msg.Width, Height: msg.Height}
		f.screen = vp
		ticket := f.ctrl.Resize(vp)
		if ticket == 0 {
			return true, nil
		}
		delay := f.ctrl.Config().ResizeDebounce
		if delay == 0 {
			f.ctrl.ResizeSettled(ticket)
			return true, nil
		}
		id := f.id
		return true, tea.Tick(delay, func(time.Time) tea.Msg {
			return messages.ResizeSettledMsg{PickerID: id, Ticket: ticket}
		})

	case messages.ResizeSettledMsg:
		if msg.PickerID == f.id {
			f.ctrl.ResizeSettled(msg.Ticket)
		}
		return true, nil

	case messages.MonthTitleMeasuredMsg:
		if msg.PickerID == f.id {
			f.ctrl.MeasureMonthTitle(msg.Height)
		}
		return true, nil

	case messages.SetVisibleMonthMsg:
		if f.ctrl.IsOpen() {
			f.ctrl.SetVisibleMonth(msg.Month)
		}
		return true, nil
	}
	return false, nil
}

// calendarKey handles a key while the calendar has focus.
func (f *frame) calendarKey(msg tea.KeyMsg) {
	c := f.ctrl
	k := f.keys
	step := 1
	if c.Config().IsRTL {
		step = -1
	}

	switch {
	case key.Matches(msg, k.Left):
		c.MoveFocus(-step)
	case key.Matches(msg, k.Right):
		c.MoveFocus(step)
	case key.Matches(msg, k.Up):
		c.MoveFocus(-7)
	case key.Matches(msg, k.Down):
		c.MoveFocus(7)
	case key.Matches(msg, k.PrevMonth):
		c.MoveFocusMonths(-1)
	case key.Matches(msg, k.NextMonth):
		c.MoveFocusMonths(1)
	case key.Matches(msg, k.WeekStart):
		c.FocusStartOfWeek()
	case key.Matches(msg, k.WeekEnd):
		c.FocusEndOfWeek()
	case key.Matches(msg, k.Today):
		c.FocusToday()
	case key.Matches(msg, k.Select):
		c.SelectFocused()
	case key.Matches(msg, k.Clear):
		c.Clear()
	case key.Matches(msg, k.Close):
		c.Close()
	case key.Matches(msg, k.Shortcuts):
		c.ShowShortcuts()
	case key.Matches(msg, k.FocusInput):
		c.FocusInput()
	}

	if f.afterMove != nil {
		f.afterMove()
	}
}

// hitTest classifies a click at screen point p.
func (f *frame) hitTest(p picker.Point) (hit, date.CalendarDate, int) {
	c := f.ctrl
	if r, ok := c.OverlayRect(); ok && r.Contains(p) {
		rel := picker.Point{X: p.X - r.Left, Y: p.Y - r.Top}
		if f.closeBtn.Contains(rel) {
			return hitClose, date.CalendarDate{}, 0
		}
		if c.ShortcutsVisible() {
			return hitOverlay, date.CalendarDate{}, 0
		}
		x, y := rel.X-f.bodyOffset.X, rel.Y-f.bodyOffset.Y
		if c.Config().Orientation == picker.VerticalScrollable {
			if y >= f.calView.Height {
				return hitOverlay, date.CalendarDate{}, 0
			}
			y += f.calView.YOffset
		}
		if d, ok := f.layout.DayAt(x, y); ok {
			return hitDay, d, 0
		}
		if dir := f.layout.NavAt(x, y); dir != 0 {
			return hitNav, date.CalendarDate{}, dir
		}
		return hitOverlay, date.CalendarDate{}, 0
	}
	// A portal covers the trigger while open.
	if f.trigger.Contains(p) && !(c.IsOpen() && c.Config().WithAnyPortal()) {
		return hitTrigger, date.CalendarDate{}, 0
	}
	return hitOutside, date.CalendarDate{}, 0
}

// mouse handles clicks and, for range pickers, pointer hover.
func (f *frame) mouse(msg tea.MouseMsg) {
	c := f.ctrl
	p := picker.Point{X: msg.X, Y: msg.Y}

	if msg.Action == tea.MouseActionMotion {
		if f.onHover == nil {
			return
		}
		if h, d, _ := f.hitTest(p); h == hitDay {
			f.onHover(d)
		}
		return
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	h, d, dir := f.hitTest(p)
	switch h {
	case hitTrigger:
		f.focused = true
		c.InputFocus()
	case hitDay:
		c.SelectDate(d)
	case hitNav:
		if dir < 0 {
			c.PrevMonth()
		} else {
			c.NextMonth()
		}
	case hitClose:
		c.Close()
	case hitOutside:
		if !c.IsOpen() || c.Dismiss(p) {
			f.focused = false
		}
	}
}
