package picker

// FocusState is which part of the picker holds logical focus.
type FocusState int

const (
	FocusNone FocusState = iota
	FocusInput
	FocusCalendar
)

func (s FocusState) String() string {
	switch s {
	case FocusInput:
		return "input"
	case FocusCalendar:
		return "calendar"
	}
	return "none"
}

// FocusCoordinator tracks input/calendar focus and the keyboard shortcuts
// panel. The panel is only ever visible while the calendar is focused.
type FocusCoordinator struct {
	state     FocusState
	shortcuts bool
}

func (f *FocusCoordinator) State() FocusState { return f.state }

func (f *FocusCoordinator) ShortcutsVisible() bool { return f.shortcuts }

func (f *FocusCoordinator) FocusInput() {
	f.state = FocusInput
	f.shortcuts = false
}

func (f *FocusCoordinator) FocusCalendar() {
	f.state = FocusCalendar
	f.shortcuts = false
}

// ShowShortcuts opens the shortcuts panel. It does nothing and returns false
// unless the calendar is focused.
func (f *FocusCoordinator) ShowShortcuts() bool {
	if f.state != FocusCalendar {
		return false
	}
	f.shortcuts = true
	return true
}

func (f *FocusCoordinator) HideShortcuts() {
	f.shortcuts = false
}

func (f *FocusCoordinator) Reset() {
	f.state = FocusNone
	f.shortcuts = false
}

// FocusPolicy decides where focus lands when the input opens the picker.
type FocusPolicy struct {
	WithPortal           bool
	WithFullScreenPortal bool
	ReadOnly             bool
	TouchDevice          bool
	KeepFocusOnInput     bool
}

// CalendarOnOpen reports whether opening should move focus to the calendar.
// Portals always take focus; read-only inputs and touch devices do unless
// KeepFocusOnInput is set.
func (p FocusPolicy) CalendarOnOpen() bool {
	if p.WithPortal || p.WithFullScreenPortal {
		return true
	}
	if p.KeepFocusOnInput {
		return false
	}
	return p.ReadOnly || p.TouchDevice
}
