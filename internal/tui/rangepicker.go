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

const rangeArrow = " → "

// RangeModel is a date-range picker: start and end inputs sharing one
// calendar overlay.
type RangeModel struct {
	frame
	ctrl       *picker.RangeController
	start, end textinput.Model
	shown      date.Range
	invalid    bool
}

func NewRangeModel(opts Options, initial date.Range) (RangeModel, error) {
	out := &outbox{}
	id := opts.ID
	ctrl, err := picker.NewRangeController(opts.Config, opts.Rules, picker.RangeCallbacks{
		OnDatesChange: func(r date.Range) {
			out.push(messages.DatesChangedMsg{PickerID: id, Range: r})
		},
		OnFocusChange: func(fc picker.FocusChange) {
			out.push(messages.FocusChangedMsg{PickerID: id, Change: fc})
		},
		OnClose: func(r date.Range) {
			out.push(messages.ClosedMsg{PickerID: id, Range: r})
		},
	}, opts.Env, initial)
	if err != nil {
		return RangeModel{}, fmt.Errorf("range picker %q: %w", id, err)
	}

	phrases := ctrl.Locale().Phrases()
	newInput := func(placeholder string, d date.CalendarDate) textinput.Model {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholder
		ti.CharLimit = 20
		ti.Width = 12
		ti.SetValue(ctrl.Locale().FormatDate(d))
		return ti
	}

	m := RangeModel{
		frame: newFrame(opts, ctrl, out),
		ctrl:  ctrl,
		start: newInput(phrases.StartDatePlaceholder, ctrl.Dates().Start),
		end:   newInput(phrases.EndDatePlaceholder, ctrl.Dates().End),
		shown: ctrl.Dates(),
	}
	m.onHover = ctrl.Hover
	m.afterMove = func() {
		if ctrl.SelectingEnd() {
			ctrl.Hover(ctrl.FocusedDate())
		}
	}
	ctrl.Mount()
	m.render()
	return m, nil
}

func (m RangeModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m RangeModel) Dates() date.Range { return m.ctrl.Dates() }

func (m RangeModel) Controller() *picker.RangeController { return m.ctrl }

func (m *RangeModel) Focus() tea.Cmd {
	m.focused = true
	m.ctrl.InputFocus()
	return m.finish(nil)
}

func (m *RangeModel) Blur() tea.Cmd {
	m.focused = false
	m.ctrl.Close()
	return m.finish(nil)
}

func (m RangeModel) Update(msg tea.Msg) (RangeModel, tea.Cmd) {
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

// activeInput is the text input for the endpoint being edited.
func (m *RangeModel) activeInput() *textinput.Model {
	if m.ctrl.FocusedInput() == picker.InputEnd {
		return &m.end
	}
	return &m.start
}

func (m *RangeModel) updateKey(msg tea.KeyMsg) tea.Cmd {
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
		in := m.activeInput()
		if in.Value() == "" {
			return nil
		}
		if c.FocusedInput() == picker.InputEnd {
			m.invalid = !c.TypeEnd(in.Value())
		} else {
			m.invalid = !c.TypeStart(in.Value())
		}
		return nil
	case key.Matches(msg, m.keys.Leave):
		m.focused = false
		c.Close()
		return nil
	}

	if !c.IsOpen() {
		c.InputFocus()
	}
	in := m.activeInput()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	m.invalid = false
	return cmd
}

func (m *RangeModel) finish(cmd tea.Cmd) tea.Cmd {
	if r := m.ctrl.Dates(); r != m.shown {
		m.shown = r
		m.start.SetValue(m.ctrl.Locale().FormatDate(r.Start))
		m.end.SetValue(m.ctrl.Locale().FormatDate(r.End))
		m.invalid = false
	}

	m.start.Blur()
	m.end.Blur()
	if m.focused && m.ctrl.FocusState() != picker.FocusCalendar {
		m.activeInput().Focus()
	}
	return tea.Batch(cmd, m.render(), m.out.flush())
}

// View renders both inputs on one line. Use Overlay to draw the open
// calendar.
func (m RangeModel) View() string {
	arrow := theme.Input
	if m.focused {
		arrow = theme.InputFocused
	}
	v := lipgloss.JoinHorizontal(lipgloss.Top, m.start.View(), arrow.Render(rangeArrow), m.end.View())
	if m.invalid {
		v += theme.Error.Render(" !")
	}
	return v
}

// TriggerWidth is the number of cells the inputs occupy.
func (m RangeModel) TriggerWidth() int {
	return 2*(m.start.Width+1) + lipgloss.Width(rangeArrow)
}
