package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"datepick/internal/tui/shared"
)

// keyMap holds the picker key bindings. It satisfies help.KeyMap.
type keyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	PrevMonth  key.Binding
	NextMonth  key.Binding
	WeekStart  key.Binding
	WeekEnd    key.Binding
	Today      key.Binding
	Select     key.Binding
	Clear      key.Binding
	Close      key.Binding
	Shortcuts  key.Binding
	FocusInput key.Binding
	Commit     key.Binding
	Open       key.Binding
	Leave      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous day")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous week")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
		PrevMonth:  key.NewBinding(key.WithKeys("pgup", "H", "-"), key.WithHelp("pgup/H", "previous month")),
		NextMonth:  key.NewBinding(key.WithKeys("pgdown", "L", "+", "="), key.WithHelp("pgdn/L", "next month")),
		WeekStart:  key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first day of week")),
		WeekEnd:    key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last day of week")),
		Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Select:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select day")),
		Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Shortcuts:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "shortcuts")),
		FocusInput: key.NewBinding(key.WithKeys("i", "tab", "shift+tab"), key.WithHelp("i/tab", "edit text")),
		Commit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply typed date")),
		Open:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "open calendar")),
		Leave:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "leave input")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.PrevMonth, k.NextMonth, k.Close, k.Shortcuts}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PrevMonth, k.NextMonth, k.WeekStart, k.WeekEnd, k.Today},
		{k.Select, k.Clear, k.FocusInput, k.Close},
	}
}

// sections is the keyboard shortcuts panel.
func (k keyMap) sections() []shared.HelpSection {
	full := k.FullHelp()
	return []shared.HelpSection{
		shared.BindingsSection("Navigation", full[0]...),
		shared.BindingsSection("Paging", full[1]...),
		shared.BindingsSection("Selection", full[2]...),
	}
}
