package theme

import (
	"github.com/charmbracelet/lipgloss"

	"datepick/internal/picker"
)

// ---------------------------------------------------------------------------
// Color palette: ANSI 0-15 plus one 256-color accent
// ---------------------------------------------------------------------------

var (
	Text       = lipgloss.Color("7")
	TextMuted  = lipgloss.Color("8")
	TextBright = lipgloss.Color("15")
	TextDark   = lipgloss.Color("0")

	Primary       = lipgloss.Color("4")   // blue
	Secondary     = lipgloss.Color("6")   // cyan
	Accent        = lipgloss.Color("5")   // magenta
	Success       = lipgloss.Color("2")   // green
	Warning       = lipgloss.Color("3")   // yellow
	Danger        = lipgloss.Color("1")   // red
	Surface       = lipgloss.Color("236") // dark bg
	Border        = lipgloss.Color("8")   // dim
	BorderFocused = lipgloss.Color("4")   // blue
)

// ---------------------------------------------------------------------------
// Semantic text styles
// ---------------------------------------------------------------------------

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Muted    = lipgloss.NewStyle().Foreground(TextMuted)

	Error = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Ok    = lipgloss.NewStyle().Bold(true).Foreground(Success)
)

// ---------------------------------------------------------------------------
// Calendar
// ---------------------------------------------------------------------------

var (
	MonthTitle = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	Weekday    = lipgloss.NewStyle().Bold(true).Foreground(TextMuted)
	NavArrow   = lipgloss.NewStyle().Bold(true).Foreground(Primary)

	Day            = lipgloss.NewStyle().Foreground(Text)
	DayToday       = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	DayOutside     = lipgloss.NewStyle().Foreground(TextMuted).Faint(true)
	DayBlocked     = lipgloss.NewStyle().Foreground(TextMuted).Strikethrough(true)
	DayHighlighted = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	DaySelected    = lipgloss.NewStyle().Bold(true).Foreground(TextBright).Background(Primary)
	DaySpan        = lipgloss.NewStyle().Foreground(TextBright).Background(Secondary)
	DayHoveredSpan = lipgloss.NewStyle().Foreground(TextBright).Background(Surface)
	DayFocused     = lipgloss.NewStyle().Bold(true).Foreground(TextDark).Background(Warning)

	CalendarInfo = lipgloss.NewStyle().
			Foreground(Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)
)

// DayStyle picks the style for a day cell. The cursor wins over selection,
// which wins over blocked, highlighted and today.
func DayStyle(m picker.Modifiers) lipgloss.Style {
	switch {
	case m.Has(picker.ModFocused):
		return DayFocused
	case m.Has(picker.ModSelected):
		return DaySelected
	case m.Has(picker.ModSelectedSpan):
		return DaySpan
	case m.Has(picker.ModHoveredSpan):
		return DayHoveredSpan
	case m.Has(picker.ModOutsideMonth):
		return DayOutside
	case m.Has(picker.ModBlocked):
		return DayBlocked
	case m.Has(picker.ModHighlightedCalendar):
		return DayHighlighted
	case m.Has(picker.ModToday):
		return DayToday
	}
	return Day
}

// ---------------------------------------------------------------------------
// Reusable component helpers
// ---------------------------------------------------------------------------

var (
	// Overlay is the calendar box drawn over the host page.
	Overlay = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(0, 1)

	// Backdrop fills the screen behind a portal.
	Backdrop = lipgloss.NewStyle().Background(Surface)

	// Input and InputFocused style the prompt of a picker's text input.
	Input        = lipgloss.NewStyle().Foreground(TextMuted)
	InputFocused = lipgloss.NewStyle().Bold(true).Foreground(BorderFocused)

	StatusBar = lipgloss.NewStyle().
			Foreground(TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)
)
