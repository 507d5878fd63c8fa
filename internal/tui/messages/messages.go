package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"datepick/internal/date"
	"datepick/internal/picker"
)

// ViewType represents the different views in the demo application
type ViewType int

const (
	ViewSingle ViewType = iota
	ViewRange
)

// SwitchViewMsg is sent to switch the demo application to a different view
type SwitchViewMsg struct {
	View ViewType
}

// DateChangedMsg is emitted by a single-date picker when its date is
// committed or cleared.
type DateChangedMsg struct {
	PickerID string
	Date     date.CalendarDate
}

// DatesChangedMsg is emitted by a range picker on every committed change,
// including the pending start of a two-phase selection.
type DatesChangedMsg struct {
	PickerID string
	Range    date.Range
}

// FocusChangedMsg mirrors the picker's onFocusChange callback.
type FocusChangedMsg struct {
	PickerID string
	Change   picker.FocusChange
}

// ClosedMsg is emitted after a picker closes.
type ClosedMsg struct {
	PickerID string
	Date     date.CalendarDate
	Range    date.Range
}

// SetVisibleMonthMsg pages every open picker so that Month is the first
// visible month.
type SetVisibleMonthMsg struct {
	Month date.CalendarDate
}

// ResizeSettledMsg fires once the resize debounce delay has passed.
type ResizeSettledMsg struct {
	PickerID string
	Ticket   uint64
}

// MonthTitleMeasuredMsg carries the rendered month title height back to the
// picker after a frame.
type MonthTitleMeasuredMsg struct {
	PickerID string
	Height   int
}

func SwitchView(v ViewType) tea.Cmd {
	return func() tea.Msg {
		return SwitchViewMsg{View: v}
	}
}

func SetVisibleMonth(month date.CalendarDate) tea.Cmd {
	return func() tea.Msg {
		return SetVisibleMonthMsg{Month: month}
	}
}
