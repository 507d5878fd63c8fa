// Package calendar renders the month grid of a picker and maps terminal
// cells back to days.
package calendar

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"datepick/internal/date"
	"datepick/internal/locale"
	"datepick/internal/picker"
	"datepick/internal/tui/messages"
	"datepick/internal/tui/theme"
)

const (
	weeksPerMonth = 6
	monthGap      = 2
	navPrev       = "‹"
	navNext       = "›"
)

// MonthElementProps is handed to a custom month title renderer.
type MonthElementProps struct {
	Month date.CalendarDate
	Title string
	Width int
	// SelectMonth and SelectYear return commands that page the calendar so
	// that Month's slot shows the chosen month or year.
	SelectMonth func(time.Month) tea.Cmd
	SelectYear  func(int) tea.Cmd
}

// DayProps is handed to a custom day cell renderer.
type DayProps struct {
	Date      date.CalendarDate
	Month     date.CalendarDate
	Modifiers picker.Modifiers
	// Contents is the default cell text, or the output of RenderDayContents.
	Contents string
	Width    int
}

// Hooks replace parts of the default rendering. Their output is treated as
// opaque text and clipped to the space it is given.
type Hooks struct {
	RenderMonthElement func(MonthElementProps) string
	RenderCalendarDay  func(DayProps) string
	RenderDayContents  func(date.CalendarDate, picker.Modifiers) string
	RenderCalendarInfo func() string
}

type Options struct {
	Months            []date.CalendarDate
	WeekStart         time.Weekday
	Orientation       picker.Orientation
	DaySize           int
	EnableOutsideDays bool
	IsRTL             bool
	Locale            locale.Formatter
	Modifiers         func(d, month date.CalendarDate) picker.Modifiers
	Hooks             Hooks
}

// Cell is the screen box of one selectable day, relative to the top-left of
// the rendered calendar.
type Cell struct {
	Date  date.CalendarDate
	Month date.CalendarDate
	Rect  picker.Rect
}

// Layout is a rendered calendar together with everything needed to hit-test
// it.
type Layout struct {
	View        string
	Size        picker.Size
	TitleHeight int
	Cells       []Cell
	Prev, Next  picker.Rect
}

// DayAt returns the day rendered at x, y.
func (l Layout) DayAt(x, y int) (date.CalendarDate, bool) {
	p := picker.Point{X: x, Y: y}
	for _, c := range l.Cells {
		if c.Rect.Contains(p) {
			return c.Date, true
		}
	}
	return date.CalendarDate{}, false
}

// NavAt reports -1 for the previous-month arrow, 1 for the next-month arrow
// and 0 otherwise.
func (l Layout) NavAt(x, y int) int {
	p := picker.Point{X: x, Y: y}
	switch {
	case l.Prev.Contains(p):
		return -1
	case l.Next.Contains(p):
		return 1
	}
	return 0
}

// Render draws the months in opts. It is a pure function of its input.
func Render(opts Options) Layout {
	if opts.DaySize < 2 {
		opts.DaySize = picker.DefaultDaySize
	}
	if opts.Locale == nil {
		opts.Locale = locale.NewEnglish(nil)
	}
	if opts.Modifiers == nil {
		opts.Modifiers = func(date.CalendarDate, date.CalendarDate) picker.Modifiers { return 0 }
	}

	monthWidth := 7 * opts.DaySize

	titles := make([][]string, len(opts.Months))
	titleHeight := 1
	for i, month := range opts.Months {
		titles[i] = strings.Split(renderTitle(opts, i, month, monthWidth), "\n")
		titleHeight = max(titleHeight, len(titles[i]))
	}
	monthHeight := titleHeight + 1 + weeksPerMonth

	var l Layout
	l.TitleHeight = titleHeight

	blocks := make([][]string, len(opts.Months))
	for i, month := range opts.Months {
		ox, oy := 0, 1
		if opts.Orientation == picker.Horizontal {
			ox = i * (monthWidth + monthGap)
		} else {
			oy += i * (monthHeight + 1)
		}
		if opts.Orientation == picker.Horizontal && opts.IsRTL {
			ox = (len(opts.Months) - 1 - i) * (monthWidth + monthGap)
		}
		blocks[i] = renderMonth(opts, month, titles[i], titleHeight, monthWidth, ox, oy, &l)
	}

	var body []string
	if opts.Orientation == picker.Horizontal {
		order := blocks
		if opts.IsRTL {
			order = make([][]string, len(blocks))
			for i, b := range blocks {
				order[len(blocks)-1-i] = b
			}
		}
		gap := strings.Repeat(" ", monthGap)
		for row := 0; row < monthHeight; row++ {
			parts := make([]string, len(order))
			for i, b := range order {
				parts[i] = b[row]
			}
			body = append(body, strings.Join(parts, gap))
		}
	} else {
		for i, b := range blocks {
			if i > 0 {
				body = append(body, strings.Repeat(" ", monthWidth))
			}
			body = append(body, b...)
		}
	}

	width := monthWidth
	if opts.Orientation == picker.Horizontal && len(opts.Months) > 0 {
		width = len(opts.Months)*monthWidth + (len(opts.Months)-1)*monthGap
	}

	lines := []string{renderNav(opts.IsRTL, width, &l)}
	lines = append(lines, body...)

	if opts.Hooks.RenderCalendarInfo != nil {
		if info := opts.Hooks.RenderCalendarInfo(); info != "" {
			for _, line := range strings.Split(theme.CalendarInfo.Width(width).Render(info), "\n") {
				lines = append(lines, fit(line, width))
			}
		}
	}

	l.View = strings.Join(lines, "\n")
	l.Size = picker.Size{Width: width, Height: len(lines)}
	return l
}

func renderNav(rtl bool, width int, l *Layout) string {
	prevX, nextX := 0, width-1
	if rtl {
		prevX, nextX = nextX, prevX
	}
	l.Prev = picker.Rect{Left: prevX, Top: 0, Right: prevX + 1, Bottom: 1}
	l.Next = picker.Rect{Left: nextX, Top: 0, Right: nextX + 1, Bottom: 1}

	if width < 2 {
		return strings.Repeat(" ", width)
	}
	left, right := navPrev, navNext
	if rtl {
		left, right = navNext, navPrev
	}
	return theme.NavArrow.Render(left) + strings.Repeat(" ", width-2) + theme.NavArrow.Render(right)
}

func renderTitle(opts Options, slot int, month date.CalendarDate, width int) string {
	title := opts.Locale.MonthTitle(month)
	if opts.Hooks.RenderMonthElement == nil {
		return theme.MonthTitle.Width(width).Align(lipgloss.Center).Render(title)
	}
	return opts.Hooks.RenderMonthElement(MonthElementProps{
		Month: month,
		Title: title,
		Width: width,
		SelectMonth: func(m time.Month) tea.Cmd {
			return messages.SetVisibleMonth(date.New(month.Year, m, 1).AddMonths(-slot))
		},
		SelectYear: func(y int) tea.Cmd {
			return messages.SetVisibleMonth(date.New(y, month.Month, 1).AddMonths(-slot))
		},
	})
}

func renderMonth(opts Options, month date.CalendarDate, title []string, titleHeight, width, ox, oy int, l *Layout) []string {
	lines := make([]string, 0, titleHeight+1+weeksPerMonth)
	for i := 0; i < titleHeight; i++ {
		var line string
		if i < len(title) {
			line = title[i]
		}
		lines = append(lines, fit(line, width))
	}

	var header strings.Builder
	for c := 0; c < 7; c++ {
		col := c
		if opts.IsRTL {
			col = 6 - c
		}
		wd := time.Weekday((int(opts.WeekStart) + col) % 7)
		label := ansi.Truncate(opts.Locale.WeekdayLabel(wd), opts.DaySize, "")
		header.WriteString(theme.Weekday.Width(opts.DaySize).Align(lipgloss.Center).Render(label))
	}
	lines = append(lines, fit(header.String(), width))

	start := month.StartOfWeek(opts.WeekStart)
	for week := 0; week < weeksPerMonth; week++ {
		cells := make([]string, 7)
		y := oy + titleHeight + 1 + week
		for c := 0; c < 7; c++ {
			d := start.AddDays(week*7 + c)
			col := c
			if opts.IsRTL {
				col = 6 - c
			}
			if !d.SameMonth(month) && !opts.EnableOutsideDays {
				cells[col] = strings.Repeat(" ", opts.DaySize)
				continue
			}
			cells[col] = renderDay(opts, d, month)
			x := ox + col*opts.DaySize
			l.Cells = append(l.Cells, Cell{
				Date:  d,
				Month: month,
				Rect:  picker.Rect{Left: x, Top: y, Right: x + opts.DaySize, Bottom: y + 1},
			})
		}
		lines = append(lines, fit(strings.Join(cells, ""), width))
	}
	return lines
}

func renderDay(opts Options, d, month date.CalendarDate) string {
	mods := opts.Modifiers(d, month)
	contents := fmt.Sprintf("%2d", d.Day)
	if opts.Hooks.RenderDayContents != nil {
		contents = opts.Hooks.RenderDayContents(d, mods)
	}
	if opts.Hooks.RenderCalendarDay != nil {
		return fit(opts.Hooks.RenderCalendarDay(DayProps{
			Date:      d,
			Month:     month,
			Modifiers: mods,
			Contents:  contents,
			Width:     opts.DaySize,
		}), opts.DaySize)
	}
	contents = ansi.Truncate(contents, opts.DaySize, "")
	return fit(theme.DayStyle(mods).Width(opts.DaySize).Align(lipgloss.Center).Render(contents), opts.DaySize)
}

// fit clips or pads a single line to exactly width cells.
func fit(s string, width int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
