package locale

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"datepick/internal/date"

	"github.com/sahilm/fuzzy"
)

// ErrInvalidDate is returned when text cannot be parsed as a date.
var ErrInvalidDate = errors.New("invalid date format")

// Formatter formats and parses dates and supplies localized strings.
type Formatter interface {
	FormatDate(d date.CalendarDate) string
	ParseDate(s string) (date.CalendarDate, error)
	MonthTitle(month date.CalendarDate) string
	WeekdayLabel(wd time.Weekday) string
	FirstDayOfWeek() time.Weekday
	Phrases() Phrases
}

// Phrases holds the user-visible strings of the pickers.
type Phrases struct {
	StartDatePlaceholder string
	EndDatePlaceholder   string
	DatePlaceholder      string
	ClearDate            string
	CloseDatePicker      string
	KeyboardShortcuts    string
	InputHint            string
}

var defaultPhrases = Phrases{
	StartDatePlaceholder: "Start Date",
	EndDatePlaceholder:   "End Date",
	DatePlaceholder:      "Date",
	ClearDate:            "Clear Date",
	CloseDatePicker:      "Close",
	KeyboardShortcuts:    "Keyboard Shortcuts",
	InputHint:            "2026-03-15, 03-15, +5, tomorrow, fri",
}

// English is the default Formatter. Relative keywords ("today", "tomorrow",
// weekday names) are matched fuzzily so "tmrw" or "fri" work.
type English struct {
	Clock         date.Clock
	DisplayFormat string
	MonthFormat   string
	FirstWeekday  time.Weekday
}

// NewEnglish returns an English formatter reading "now" from clock.
func NewEnglish(clock date.Clock) *English {
	return &English{
		Clock:         clock,
		DisplayFormat: date.Layout,
		MonthFormat:   "January 2006",
		FirstWeekday:  time.Sunday,
	}
}

func (e *English) FormatDate(d date.CalendarDate) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(e.DisplayFormat)
}

func (e *English) MonthTitle(month date.CalendarDate) string {
	return month.Time().Format(e.MonthFormat)
}

func (e *English) WeekdayLabel(wd time.Weekday) string {
	return wd.String()[:2]
}

func (e *English) FirstDayOfWeek() time.Weekday {
	return e.FirstWeekday
}

func (e *English) Phrases() Phrases {
	return defaultPhrases
}

// Index of "sunday" in keywords; weekday keywords follow in time.Weekday order.
const firstWeekdayKeyword = 3

var keywords = []string{
	"today", "tomorrow", "yesterday",
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// ParseDate accepts the display format, ISO dates, "MM-DD" in the current
// year, "+N"/"-N" day offsets, relative keywords and "next <weekday>".
func (e *English) ParseDate(input string) (date.CalendarDate, error) {
	input = strings.TrimSpace(input)
	today := date.Today(e.Clock)

	if input == "" {
		return date.CalendarDate{}, ErrInvalidDate
	}

	// Handle relative offsets
	if input[0] == '+' || input[0] == '-' {
		rest := input[1:]
		if rest == "" || rest[0] == '+' || rest[0] == '-' {
			return date.CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, input)
		}
		days, err := strconv.Atoi(rest)
		if err != nil {
			return date.CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, input)
		}
		if input[0] == '-' {
			days = -days
		}
		return today.AddDays(days), nil
	}

	if parsed, err := time.Parse(e.DisplayFormat, input); err == nil {
		return date.FromTime(parsed), nil
	}
	if parsed, err := time.Parse(date.Layout, input); err == nil {
		return date.FromTime(parsed), nil
	}

	// Short format: 03-15 (assumes current year)
	if parsed, err := time.Parse("01-02", input); err == nil {
		d := date.New(today.Year, parsed.Month(), parsed.Day())
		// Feb 29 outside a leap year rolls into March.
		if d.Month != parsed.Month() || d.Day != parsed.Day() {
			return date.CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, input)
		}
		return d, nil
	}

	// "next fri" is the matching weekday strictly after today.
	if rest, ok := strings.CutPrefix(strings.ToLower(input), "next "); ok {
		if kw, ok := matchKeyword(strings.TrimSpace(rest)); ok && kw >= firstWeekdayKeyword {
			return nextWeekday(today.AddDays(1), time.Weekday(kw-firstWeekdayKeyword)), nil
		}
		return date.CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, input)
	}

	if d, ok := parseKeyword(strings.ToLower(input), today); ok {
		return d, nil
	}

	return date.CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, input)
}

// matchKeyword returns the index in keywords that input abbreviates.
func matchKeyword(input string) (int, bool) {
	if len(input) < 2 {
		return 0, false
	}
	matches := fuzzy.Find(input, keywords)
	if len(matches) == 0 {
		return 0, false
	}
	// Require the first letter to agree so "mon" never resolves to "tomorrow".
	for _, m := range matches {
		if m.Str[0] == input[0] {
			return m.Index, true
		}
	}
	return 0, false
}

func parseKeyword(input string, today date.CalendarDate) (date.CalendarDate, bool) {
	kw, ok := matchKeyword(input)
	if !ok {
		return date.CalendarDate{}, false
	}
	switch keywords[kw] {
	case "today":
		return today, true
	case "tomorrow":
		return today.AddDays(1), true
	case "yesterday":
		return today.AddDays(-1), true
	}
	return nextWeekday(today, time.Weekday(kw-firstWeekdayKeyword)), true
}

// nextWeekday returns the first day on or after from that falls on wd.
func nextWeekday(from date.CalendarDate, wd time.Weekday) date.CalendarDate {
	diff := (int(wd) - int(from.Weekday()) + 7) % 7
	return from.AddDays(diff)
}
