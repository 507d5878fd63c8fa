package tui

import (
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"datepick/internal/date"
	"datepick/internal/locale"
	"datepick/internal/picker"
	"datepick/internal/tui/messages"
	"datepick/internal/tui/page"
)

var today = date.New(2026, 10, 16)

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func testConfig() picker.Config {
	cfg := picker.DefaultConfig()
	cfg.ResizeDebounce = 0
	return cfg
}

func testOptions(id string, cfg picker.Config) Options {
	clock := date.FixedAt(today)
	root := page.NewRoot("screen", false)
	field := root.Child("page", true).Child("field", false)
	return Options{
		ID:        id,
		Config:    cfg,
		Env:       picker.Environment{Clock: clock, Locale: locale.NewEnglish(clock)},
		Container: field,
	}
}

// collect runs cmd and flattens batches and sequences into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	v := reflect.ValueOf(msg)
	cmdType := reflect.TypeOf(tea.Cmd(nil))
	if v.Kind() == reflect.Slice && v.Type().Elem() == cmdType {
		var out []tea.Msg
		for i := 0; i < v.Len(); i++ {
			out = append(out, collect(v.Index(i).Interface().(tea.Cmd))...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func newSingle(t *testing.T, cfg picker.Config) SingleDateModel {
	t.Helper()
	m, err := NewSingleDateModel(testOptions("date", cfg), date.CalendarDate{})
	if err != nil {
		t.Fatalf("NewSingleDateModel: %v", err)
	}
	t.Cleanup(m.Teardown)
	m.SetTrigger(picker.Rect{Left: 8, Top: 4, Right: 8 + m.TriggerWidth(), Bottom: 5})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func newRange(t *testing.T, cfg picker.Config) RangeModel {
	t.Helper()
	m, err := NewRangeModel(testOptions("stay", cfg), date.Range{})
	if err != nil {
		t.Fatalf("NewRangeModel: %v", err)
	}
	t.Cleanup(m.Teardown)
	m.SetTrigger(picker.Rect{Left: 8, Top: 4, Right: 8 + m.TriggerWidth(), Bottom: 5})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// dayPoint is the screen cell of d in the open overlay.
func dayPoint(t *testing.T, f frame, d date.CalendarDate) (int, int) {
	t.Helper()
	r, ok := f.ctrl.OverlayRect()
	if !ok {
		t.Fatal("overlay is not placed")
	}
	for _, c := range f.layout.Cells {
		if c.Date == d {
			return r.Left + f.bodyOffset.X + c.Rect.Left, r.Top + f.bodyOffset.Y + c.Rect.Top
		}
	}
	t.Fatalf("%s is not rendered", d)
	return 0, 0
}

func TestOutboxFlush(t *testing.T) {
	out := &outbox{}
	if out.flush() != nil {
		t.Error("expected nil command from an empty outbox")
	}

	out.push(messages.DateChangedMsg{PickerID: "a", Date: today})
	out.push(messages.ClosedMsg{PickerID: "a", Date: today})
	msgs := collect(out.flush())
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if _, ok := msgs[0].(messages.DateChangedMsg); !ok {
		t.Errorf("expected DateChangedMsg first, got %T", msgs[0])
	}
	if _, ok := msgs[1].(messages.ClosedMsg); !ok {
		t.Errorf("expected ClosedMsg second, got %T", msgs[1])
	}
	if out.flush() != nil {
		t.Error("expected the outbox to be empty after flush")
	}
}

func TestSingleDateModel_KeyboardSelect(t *testing.T) {
	m := newSingle(t, testConfig())

	m.Focus()
	if !m.IsOpen() {
		t.Fatal("expected focus to open the picker")
	}
	if m.ctrl.FocusState() != picker.FocusInput {
		t.Fatalf("expected focus on the input, got %v", m.ctrl.FocusState())
	}

	m, _ = m.Update(keyDown)
	if m.ctrl.FocusState() != picker.FocusCalendar {
		t.Fatalf("expected down to focus the calendar, got %v", m.ctrl.FocusState())
	}
	m, _ = m.Update(keyRight)
	if got := m.ctrl.FocusedDate(); got != today.AddDays(1) {
		t.Fatalf("expected focused %s, got %s", today.AddDays(1), got)
	}

	var cmd tea.Cmd
	m, cmd = m.Update(keyEnter)
	want := today.AddDays(1)
	if m.Date() != want || m.Controller().Date() != want {
		t.Errorf("expected date %s, got %s", want, m.Date())
	}
	if m.IsOpen() {
		t.Error("expected the picker to close after selecting")
	}
	if m.input.Value() != "2026-10-17" {
		t.Errorf("expected input 2026-10-17, got %q", m.input.Value())
	}

	var changed, closed bool
	for _, msg := range collect(cmd) {
		switch msg := msg.(type) {
		case messages.DateChangedMsg:
			changed = msg.PickerID == "date" && msg.Date == want
		case messages.ClosedMsg:
			closed = msg.Date == want
		}
	}
	if !changed || !closed {
		t.Errorf("expected DateChangedMsg and ClosedMsg, got changed=%v closed=%v", changed, closed)
	}
}

func TestSingleDateModel_TypedDate(t *testing.T) {
	m := newSingle(t, testConfig())
	m.Focus()

	m.input.SetValue("+3")
	m, _ = m.Update(keyEnter)
	if want := today.AddDays(3); m.Date() != want {
		t.Errorf("expected %s, got %s", want, m.Date())
	}
	if m.invalid {
		t.Error("expected a valid entry")
	}

	m.input.SetValue("nonsense")
	m, _ = m.Update(keyEnter)
	if m.Date() != today.AddDays(3) {
		t.Errorf("expected the date to be kept, got %s", m.Date())
	}
	if !m.invalid || !strings.Contains(m.View(), "!") {
		t.Error("expected the input to be marked invalid")
	}
}

func TestSingleDateModel_ClickDay(t *testing.T) {
	m := newSingle(t, testConfig())
	m.Focus()

	want := date.New(2026, 10, 20)
	x, y := dayPoint(t, m.frame, want)
	m, _ = m.Update(click(x, y))
	if m.Date() != want {
		t.Errorf("expected %s, got %s", want, m.Date())
	}
	if m.IsOpen() {
		t.Error("expected the picker to close")
	}
}

func TestSingleDateModel_ClickBlockedDay(t *testing.T) {
	m := newSingle(t, testConfig())
	m.Focus()

	x, y := dayPoint(t, m.frame, today.AddDays(-1))
	m, _ = m.Update(click(x, y))
	if !m.Date().IsZero() {
		t.Errorf("expected a past day to be refused, got %s", m.Date())
	}
	if !m.IsOpen() {
		t.Error("expected the picker to stay open")
	}
}

func TestSingleDateModel_ClickNav(t *testing.T) {
	m := newSingle(t, testConfig())
	m.Focus()

	r, _ := m.ctrl.OverlayRect()
	next := m.layout.Next
	m, _ = m.Update(click(r.Left+m.bodyOffset.X+next.Left, r.Top+m.bodyOffset.Y+next.Top))
	if got := m.ctrl.VisibleMonths()[0]; got != date.New(2026, 11, 1) {
		t.Errorf("expected November after paging, got %s", got)
	}
}

func TestSingleDateModel_ClickOutside(t *testing.T) {
	m := newSingle(t, testConfig())
	m.Focus()

	m, _ = m.Update(click(99, 39))
	if m.IsOpen() {
		t.Error("expected an outside click to close the picker")
	}
	if m.Focused() {
		t.Error("expected an outside click to blur the picker")
	}

	m, _ = m.Update(click(9, 4))
	if !m.IsOpen() || !m.Focused() {
		t.Error("expected a click on the input to reopen the picker")
	}
}

func TestSingleDateModel_FullScreenPortal(t *testing.T) {
	cfg := testConfig()
	cfg.WithFullScreenPortal = true
	m := newSingle(t, cfg)
	m.Focus()

	if m.ctrl.FocusState() != picker.FocusCalendar {
		t.Errorf("expected the full screen portal to focus the calendar, got %v", m.ctrl.FocusState())
	}
	if !strings.Contains(m.Overlay(""), "Close") {
		t.Error("expected a close button in the overlay")
	}

	m, _ = m.Update(click(0, 0))
	if !m.IsOpen() {
		t.Fatal("expected outside clicks to be ignored")
	}

	r, _ := m.ctrl.OverlayRect()
	m, _ = m.Update(click(r.Left+m.closeBtn.Left, r.Top+m.closeBtn.Top))
	if m.IsOpen() {
		t.Error("expected the close button to close the picker")
	}
}

func TestSingleDateModel_RTLArrows(t *testing.T) {
	cfg := testConfig()
	cfg.IsRTL = true
	m := newSingle(t, cfg)
	m.Focus()

	m, _ = m.Update(keyDown)
	m, _ = m.Update(keyRight)
	if got := m.ctrl.FocusedDate(); got != today.AddDays(-1) {
		t.Errorf("expected right to move back in RTL, got %s", got)
	}
	m, _ = m.Update(keyLeft)
	m, _ = m.Update(keyLeft)
	if got := m.ctrl.FocusedDate(); got != today.AddDays(1) {
		t.Errorf("expected left to move forward in RTL, got %s", got)
	}
}

func TestSingleDateModel_Shortcuts(t *testing.T) {
	m := newSingle(t, testConfig())
	m.Focus()

	m, _ = m.Update(runeKey("?"))
	if !m.ctrl.ShortcutsVisible() {
		t.Fatal("expected the shortcuts panel")
	}
	if !strings.Contains(m.Overlay(""), "Navigation") {
		t.Error("expected the shortcuts panel in the overlay")
	}

	m, _ = m.Update(keyRight)
	if m.ctrl.ShortcutsVisible() {
		t.Error("expected any key to hide the panel")
	}
	if m.ctrl.FocusedDate() != today {
		t.Error("expected the dismissing key not to move the cursor")
	}
}

func TestSingleDateModel_EscCloses(t *testing.T) {
	m := newSingle(t, testConfig())
	m.Focus()

	m, _ = m.Update(keyEsc)
	if m.IsOpen() {
		t.Error("expected esc to close the picker")
	}
	if !m.Focused() {
		t.Error("expected the input to keep focus")
	}
}

func TestSingleDateModel_ResizeDebounce(t *testing.T) {
	cfg := testConfig()
	cfg.ResizeDebounce = time.Millisecond
	m := newSingle(t, cfg)
	m.Focus()

	var first, second tea.Cmd
	m, first = m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m, second = m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})

	settled := func(cmd tea.Cmd) messages.ResizeSettledMsg {
		t.Helper()
		for _, msg := range collect(cmd) {
			if s, ok := msg.(messages.ResizeSettledMsg); ok {
				return s
			}
		}
		t.Fatal("expected a ResizeSettledMsg")
		return messages.ResizeSettledMsg{}
	}
	a, b := settled(first), settled(second)
	if a.PickerID != "date" || b.Ticket <= a.Ticket {
		t.Errorf("expected increasing tickets for picker date, got %+v then %+v", a, b)
	}

	// Settling applies the latest viewport; the stale ticket is ignored.
	m, _ = m.Update(a)
	m, _ = m.Update(b)
	r, ok := m.ctrl.OverlayRect()
	if !ok || r.Right > 60 {
		t.Errorf("expected the overlay inside a 60 cell viewport, got %+v", r)
	}
}

func TestSingleDateModel_MonthTitleMeasured(t *testing.T) {
	m := newSingle(t, testConfig())

	var measured *messages.MonthTitleMeasuredMsg
	for _, msg := range collect(m.Focus()) {
		if mm, ok := msg.(messages.MonthTitleMeasuredMsg); ok {
			measured = &mm
		}
	}
	if measured == nil {
		t.Fatal("expected the title height to be reported after opening")
	}
	if measured.Height != 1 {
		t.Errorf("expected title height 1, got %d", measured.Height)
	}

	m, cmd := m.Update(*measured)
	if m.ctrl.MonthTitleHeight() != 1 {
		t.Errorf("expected the controller to record height 1, got %d", m.ctrl.MonthTitleHeight())
	}
	for _, msg := range collect(cmd) {
		if _, ok := msg.(messages.MonthTitleMeasuredMsg); ok {
			t.Error("expected no further measurement once recorded")
		}
	}
}

func TestSingleDateModel_SetVisibleMonth(t *testing.T) {
	m := newSingle(t, testConfig())
	m.Focus()

	m, _ = m.Update(messages.SetVisibleMonthMsg{Month: date.New(2027, 3, 1)})
	if got := m.ctrl.VisibleMonths()[0]; got != date.New(2027, 3, 1) {
		t.Errorf("expected March 2027, got %s", got)
	}
}

func TestRangeModel_TwoPhaseKeyboard(t *testing.T) {
	m := newRange(t, testConfig())
	m.Focus()

	m, _ = m.Update(keyDown)
	m, _ = m.Update(keyRight)
	m, _ = m.Update(keyEnter)
	start := today.AddDays(1)
	if got := m.Dates(); got.Start != start || !got.End.IsZero() {
		t.Fatalf("expected pending start %s, got %s", start, got)
	}
	if !m.IsOpen() {
		t.Fatal("expected the picker to stay open for the end date")
	}
	if m.start.Value() != "2026-10-17" || m.end.Value() != "" {
		t.Errorf("unexpected inputs %q %q", m.start.Value(), m.end.Value())
	}

	for range 3 {
		m, _ = m.Update(keyRight)
	}
	end := start.AddDays(3)
	if m.ctrl.Hovered() != end {
		t.Errorf("expected the cursor to drive the preview, hovered %s", m.ctrl.Hovered())
	}
	if mods := m.ctrl.Modifiers(start.AddDays(1), start.StartOfMonth()); !mods.Has(picker.ModHoveredSpan) {
		t.Errorf("expected a hovered span, got %v", mods)
	}

	var cmd tea.Cmd
	m, cmd = m.Update(keyEnter)
	if got := m.Controller().Dates(); got.Start != start || got.End != end {
		t.Errorf("expected %s to %s, got %s", start, end, got)
	}
	if m.IsOpen() {
		t.Error("expected the picker to close after the end date")
	}
	if m.end.Value() != "2026-10-20" {
		t.Errorf("expected end input 2026-10-20, got %q", m.end.Value())
	}

	var got []date.Range
	for _, msg := range collect(cmd) {
		if dc, ok := msg.(messages.DatesChangedMsg); ok {
			got = append(got, dc.Range)
		}
	}
	if len(got) != 1 || got[0].End != end {
		t.Errorf("expected one DatesChangedMsg with the full range, got %v", got)
	}
}

func TestRangeModel_MouseHover(t *testing.T) {
	m := newRange(t, testConfig())
	m.Focus()

	start := date.New(2026, 10, 20)
	x, y := dayPoint(t, m.frame, start)
	m, _ = m.Update(click(x, y))
	if m.Dates().Start != start {
		t.Fatalf("expected start %s, got %s", start, m.Dates())
	}

	hover := date.New(2026, 10, 23)
	x, y = dayPoint(t, m.frame, hover)
	m, _ = m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	if m.ctrl.Hovered() != hover {
		t.Errorf("expected hovered %s, got %s", hover, m.ctrl.Hovered())
	}
	if mods := m.ctrl.Modifiers(date.New(2026, 10, 22), start.StartOfMonth()); !mods.Has(picker.ModHoveredSpan) {
		t.Errorf("expected a hovered span, got %v", mods)
	}
}

func TestRangeModel_TypedEnd(t *testing.T) {
	m := newRange(t, testConfig())
	m.Focus()

	m.start.SetValue("2026-10-20")
	m, _ = m.Update(keyEnter)
	if m.ctrl.FocusedInput() != picker.InputEnd {
		t.Fatalf("expected the end input next, got %v", m.ctrl.FocusedInput())
	}

	m.end.SetValue("2026-10-18")
	m, _ = m.Update(keyEnter)
	if !m.invalid {
		t.Error("expected an end before the start to be refused")
	}

	m.end.SetValue("2026-10-25")
	m, _ = m.Update(keyEnter)
	want := date.Range{Start: date.New(2026, 10, 20), End: date.New(2026, 10, 25)}
	if m.Dates() != want {
		t.Errorf("expected %s, got %s", want, m.Dates())
	}
}
