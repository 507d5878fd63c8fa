package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"datepick/internal/config"
	"datepick/internal/date"
	"datepick/internal/locale"
	"datepick/internal/logs"
	"datepick/internal/picker"
	"datepick/internal/tui/calendar"
	"datepick/internal/tui/page"
	"datepick/internal/tui/shared"
)

const (
	singleID = "date"
	rangeID  = "stay"

	// Line of the page content holding the picker inputs.
	fieldLine  = 4
	labelWidth = 8
	statusRows = 2
)

// AppModel is the root model: a scrollable page with one picker field on it.
type AppModel struct {
	cfg         *config.Config
	currentView ViewType
	body        page.Model
	single      SingleDateModel
	stay        RangeModel
	status      string
	showHelp    bool
	width       int
	height      int
	ready       bool
}

// NewAppModel creates the root application model
func NewAppModel(cfg *config.Config, clock date.Clock) (AppModel, error) {
	root := page.NewRoot("screen", false)
	scroll := root.Child("page", true)
	form := scroll.Child("form", false)

	var hooks calendar.Hooks
	if cfg.InfoFile != "" {
		hook, err := loadInfoHook(cfg.InfoFile, cfg.Picker)
		if err != nil {
			logs.Logger.Printf("Error loading info file %s: %v", cfg.InfoFile, err)
		}
		hooks.RenderCalendarInfo = hook
	}

	env := picker.Environment{Clock: clock, Locale: locale.NewEnglish(clock)}
	rules := cfg.PickerRules(clock)

	single, err := NewSingleDateModel(Options{
		ID:        singleID,
		Config:    cfg.Picker,
		Rules:     rules,
		Env:       env,
		Hooks:     hooks,
		Container: form.Child("date-field", false),
	}, date.CalendarDate{})
	if err != nil {
		return AppModel{}, err
	}
	stay, err := NewRangeModel(Options{
		ID:        rangeID,
		Config:    cfg.Picker,
		Rules:     rules,
		Env:       env,
		Hooks:     hooks,
		Container: form.Child("stay-field", false),
	}, date.Range{})
	if err != nil {
		return AppModel{}, err
	}

	view := ViewSingle
	if cfg.Mode == config.ModeRange {
		view = ViewRange
	}

	m := AppModel{
		cfg:         cfg,
		currentView: view,
		body:        page.New(scroll, 0, 0),
		single:      single,
		stay:        stay,
	}
	m.body.SetContent(m.pageContent())
	return m, nil
}

// loadInfoHook reads a markdown file for the panel under the calendar.
func loadInfoHook(path string, cfg picker.Config) (func() string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := calendar.ParseInfo(src)
	if err != nil {
		return nil, err
	}
	width := 7 * cfg.DaySize
	if cfg.Orientation == picker.Horizontal {
		width = cfg.NumberOfMonths*width + (cfg.NumberOfMonths-1)*2
	}
	return calendar.InfoHook(info, width), nil
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.single.Init(), m.stay.Init())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.syncTriggers()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.body.SetSize(msg.Width, max(0, msg.Height-statusRows))
		return m, m.broadcast(msg)

	case SwitchViewMsg:
		if msg.View == m.currentView {
			return m, nil
		}
		cmd := m.blurActive()
		m.currentView = msg.View
		m.body.SetContent(m.pageContent())
		return m, cmd

	case DateChangedMsg:
		m.status = "Date: " + orDash(msg.Date)
		logs.Logger.Printf("picker %s: date changed to %s", msg.PickerID, msg.Date)
		return m, nil

	case DatesChangedMsg:
		m.status = fmt.Sprintf("Stay: %s → %s", orDash(msg.Range.Start), orDash(msg.Range.End))
		logs.Logger.Printf("picker %s: dates changed to %s", msg.PickerID, msg.Range)
		return m, nil

	case FocusChangedMsg:
		logs.Logger.Printf("picker %s: focus %+v", msg.PickerID, msg.Change)
		return m, nil

	case ClosedMsg:
		logs.Logger.Printf("picker %s: closed", msg.PickerID)
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// A focused picker gets every key.
		if m.activeFocused() {
			return m, m.updateActive(msg)
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "1":
			return m, SwitchView(ViewSingle)
		case "2":
			return m, SwitchView(ViewRange)
		case "?":
			m.showHelp = true
			return m, nil
		case "tab", "enter", "i":
			return m, m.focusActive()
		}

		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmds []tea.Cmd
		if msg.Action == tea.MouseActionPress && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown) {
			var cmd tea.Cmd
			m.body, cmd = m.body.Update(msg)
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, m.updateActive(msg))
		return m, tea.Batch(cmds...)
	}

	// Picker-scoped messages: resize settling, title measurement, paging.
	return m, m.broadcast(msg)
}

// syncTriggers tells both pickers where their inputs are on screen. The page
// may have scrolled since the last update.
func (m *AppModel) syncTriggers() {
	y := fieldLine - m.body.YOffset()
	m.single.SetTrigger(picker.Rect{Left: labelWidth, Top: y, Right: labelWidth + m.single.TriggerWidth(), Bottom: y + 1})
	m.stay.SetTrigger(picker.Rect{Left: labelWidth, Top: y, Right: labelWidth + m.stay.TriggerWidth(), Bottom: y + 1})
}

func (m *AppModel) broadcast(msg tea.Msg) tea.Cmd {
	var c1, c2 tea.Cmd
	m.single, c1 = m.single.Update(msg)
	m.stay, c2 = m.stay.Update(msg)
	return tea.Batch(c1, c2)
}

func (m *AppModel) updateActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.currentView == ViewRange {
		m.stay, cmd = m.stay.Update(msg)
	} else {
		m.single, cmd = m.single.Update(msg)
	}
	return cmd
}

func (m AppModel) activeFocused() bool {
	if m.currentView == ViewRange {
		return m.stay.Focused()
	}
	return m.single.Focused()
}

func (m *AppModel) focusActive() tea.Cmd {
	if m.currentView == ViewRange {
		return m.stay.Focus()
	}
	return m.single.Focus()
}

func (m *AppModel) blurActive() tea.Cmd {
	if m.currentView == ViewRange {
		return m.stay.Blur()
	}
	return m.single.Blur()
}

// Teardown releases both pickers. Call it after the program exits.
func (m AppModel) Teardown() {
	m.single.Teardown()
	m.stay.Teardown()
}

func (m AppModel) pageContent() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("datepick") + "\n")
	b.WriteString(HelpStyle.Render("Pick a day or a stay. Blocked days cannot be chosen.") + "\n\n")

	label, field := "Date", m.single.View()
	summary := "Selected: " + orDash(m.single.Date())
	if m.currentView == ViewRange {
		r := m.stay.Dates()
		label, field = "Stay", m.stay.View()
		summary = fmt.Sprintf("Selected: %s → %s (%d nights)", orDash(r.Start), orDash(r.End), r.Nights())
	}
	b.WriteString(TitleStyle.Render(label) + "\n")
	b.WriteString(lipgloss.NewStyle().Width(labelWidth).Render("") + field + "\n\n")
	b.WriteString(HelpStyle.Render(summary) + "\n\n")

	// Enough text below the field for the page to scroll.
	for i := 1; i <= 40; i++ {
		b.WriteString(HelpStyle.Render(fmt.Sprintf("Line %d of the page below the form.", i)) + "\n")
	}
	return b.String()
}

func orDash(d date.CalendarDate) string {
	if d.IsZero() {
		return "-"
	}
	return d.String()
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	// The field line is re-rendered so the input cursor stays live.
	m.body.SetContent(m.pageContent())
	content := m.body.View()

	statusText := "1:single 2:range | tab:pick | pgup/pgdn:scroll | ?:help | q:quit"
	if m.activeFocused() {
		statusText = "esc:close | ?:shortcuts | tab:leave"
	}
	statusText = HelpStyle.Render(statusText)
	if m.status != "" {
		statusText = SelectionStyle.Render(m.status) + HelpStyle.Render(" | ") + statusText
	}
	statusBar := StatusBarStyle.Width(m.width).Render(statusText)

	screen := lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
	if m.currentView == ViewRange {
		return m.stay.Overlay(screen)
	}
	return m.single.Overlay(screen)
}

func (m AppModel) renderHelpOverlay() string {
	global := shared.BindingsSection("Global",
		key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "single date picker")),
		key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "date range picker")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab/enter", "focus the picker")),
		key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup/pgdn", "scroll the page")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),
	)
	sections := append([]shared.HelpSection{global}, newKeyMap().sections()...)
	return shared.RenderHelpPopup(sections, m.width, m.height)
}
