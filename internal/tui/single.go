package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"datepick/internal/date"
	"datepick/internal/picker"
	"datepick/internal/tui/messages"
	"datepick/internal/tui/theme"
)

// SingleDateModel is a single-date picker: a text input that opens a
// calendar overlay.
type SingleDateModel struct {
	frame
	ctrl    *picker.SingleController
	input   textinput.Model
	shown   date.CalendarDate
	invalid bool
}

func NewSingleDateModel(opts Options, initial date.CalendarDate) (SingleDateModel, error) {
	out := &outbox{}
	id := opts.ID
	ctrl, err := picker.NewSingleController(opts.Config, opts.Rules, picker.SingleCallbacks{
		OnDateChange: func(d date.CalendarDate) {
			out.push(messages.DateChangedMsg{PickerID: id, Date: d})
		},
		OnFocusChange: func(fc picker.FocusChange) {
			out.push(messages.FocusChangedMsg{PickerID: id, Change: fc})
		},
		OnClose: func(d date.CalendarDate) {
			out.push(messages.ClosedMsg{PickerID: id, Date: d})
		},
	}, opts.Env, initial)
	if err != nil {
		return SingleDateModel{}, fmt.Errorf("single date picker %q: %w", id, err)
	}

	phrases := ctrl.Locale().Phrases()
	ti := textinput.New()
	ti.Placeholder = phrases.DatePlaceholder
	ti.CharLimit = 20
	ti.Width = 12
	ti.PromptStyle = theme.Input
	ti.SetValue(ctrl.Locale().FormatDate(initial))

	m := SingleDateModel{
		frame: newFrame(opts, ctrl, out),
		ctrl:  ctrl,
		input: ti,
		shown: initial,
	}
	ctrl.Mount()
	m.render()
	return m, nil
}

func (m SingleDateModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SingleDateModel) Date() date.CalendarDate { return m.ctrl.Date() }

func (m SingleDateModel) Controller() *picker.SingleController { return m.ctrl }

// Focus gives the input keyboard focus, which opens the picker.
func (m *SingleDateModel) Focus() tea.Cmd {
	m.focused = true
	m.ctrl.InputFocus()
	return m.finish(nil)
}

// Blur takes keyboard focus away and closes the picker.
func (m *SingleDateModel) Blur() tea.Cmd {
	m.focused = false
	m.ctrl.Close()
	return m.finish(nil)
}

func (m SingleDateModel) Update(msg tea.Msg) (SingleDateModel, tea.Cmd) {
	if handled, cmd := m.updateCommon(msg); handled {
		return m, m.finish(cmd)
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.updateKey(msg)
	case tea.MouseMsg:
		m.mouse(msg)
	}
	return m, m.finish(cmd)
}

func (m *SingleDateModel) updateKey(msg tea.KeyMsg) tea.Cmd {
	if !m.focused {
		return nil
	}
	c := m.ctrl
	if c.ShortcutsVisible() {
		c.HideShortcuts()
		return nil
	}
	if c.FocusState() == picker.FocusCalendar {
		m.calendarKey(msg)
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Close):
		c.Close()
		return nil
	case key.Matches(msg, m.keys.Open):
		if !c.Open(date.CalendarDate{}, picker.OpenFromKeyboard) {
			c.FocusCalendar()
		}
		return nil
	case key.Matches(msg, m.keys.Shortcuts) && c.IsOpen():
		c.ShowShortcuts()
		return nil
	case key.Matches(msg, m.keys.Commit):
		m.invalid = m.input.Value() != "" && !c.TypeDate(m.input.Value())
		return nil
	case key.Matches(msg, m.keys.Leave):
		m.focused = false
		c.Close()
		return nil
	}

	if !c.IsOpen() {
		c.InputFocus()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.invalid = false
	return cmd
}

// finish mirrors controller state into the input, re-renders the overlay
// and flushes the callbacks fired during this update.
func (m *SingleDateModel) finish(cmd tea.Cmd) tea.Cmd {
	if d := m.ctrl.Date(); d != m.shown {
		m.shown = d
		m.input.SetValue(m.ctrl.Locale().FormatDate(d))
		m.invalid = false
	}
	if m.focused && m.ctrl.FocusState() != picker.FocusCalendar {
		m.input.Focus()
		m.input.PromptStyle = theme.InputFocused
	} else {
		m.input.Blur()
		m.input.PromptStyle = theme.Input
	}
	return tea.Batch(cmd, m.render(), m.out.flush())
}

// View renders the input line. Use Overlay to draw the open calendar.
func (m SingleDateModel) View() string {
	v := m.input.View()
	if m.invalid {
		v += theme.Error.Render(" !")
	}
	return v
}

// TriggerWidth is the number of cells the input occupies.
func (m SingleDateModel) TriggerWidth() int {
	return lipgloss.Width(m.input.Prompt) + m.input.Width + 1
}
