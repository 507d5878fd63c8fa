package cli

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"datepick/internal/config"
	"datepick/internal/date"
	"datepick/internal/locale"
	"datepick/internal/picker"
	"datepick/internal/tui/calendar"
)

func runCheck(args []string, cfg *config.Config, clock date.Clock) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "Error: at least one date required")
		fmt.Fprintln(stderr, "Usage: datepick check <date> [date...]")
		return 1
	}

	loc := locale.NewEnglish(clock)
	v := picker.NewValidator(cfg.PickerRules(clock), clock)

	code := 0
	for _, arg := range args {
		d, err := loc.ParseDate(arg)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			code = 1
			continue
		}
		fmt.Fprintf(stdout, "%s  %s  %s\n", d, d.Weekday().String()[:3], describe(v, d))
		if v.IsBlocked(d) {
			code = 1
		}
	}
	return code
}

// describe summarises how the rules treat d.
func describe(v picker.Validator, d date.CalendarDate) string {
	var notes []string
	if v.IsOutsideAllowedRange(d) {
		notes = append(notes, "outside allowed range")
	}
	if v.IsDayBlocked(d) {
		notes = append(notes, "blocked")
	}
	if _, ok := v.HighlightKind(d); ok {
		notes = append(notes, "highlighted")
	}
	if len(notes) == 0 {
		return "available"
	}
	return strings.Join(notes, ", ")
}

func runParse(args []string, clock date.Clock) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "Error: text to parse required")
		fmt.Fprintln(stderr, "Usage: datepick parse <text>")
		return 1
	}

	d, err := locale.NewEnglish(clock).ParseDate(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, d)
	return 0
}

func runMonths(args []string, cfg *config.Config, clock date.Clock) int {
	fs := flag.NewFlagSet("months", flag.ContinueOnError)
	fs.SetOutput(stderr)
	from := fs.String("from", "", "First month to show (YYYY-MM)")
	count := fs.Int("n", cfg.Picker.NumberOfMonths, "Number of months")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *count < 1 {
		fmt.Fprintln(stderr, "Error: -n must be at least 1")
		return 1
	}

	today := date.Today(clock)
	first := today.StartOfMonth()
	if *from != "" {
		t, err := time.Parse("2006-01", *from)
		if err != nil {
			fmt.Fprintf(stderr, "Error: invalid month %q, want YYYY-MM\n", *from)
			return 1
		}
		first = date.New(t.Year(), t.Month(), 1)
	}

	months := make([]date.CalendarDate, *count)
	for i := range months {
		months[i] = first.AddMonths(i)
	}

	loc := locale.NewEnglish(clock)
	v := picker.NewValidator(cfg.PickerRules(clock), clock)
	orientation := cfg.Picker.Orientation
	if orientation == picker.VerticalScrollable {
		orientation = picker.Vertical
	}

	layout := calendar.Render(calendar.Options{
		Months:            months,
		WeekStart:         cfg.Picker.WeekStart(loc.FirstDayOfWeek()),
		Orientation:       orientation,
		DaySize:           cfg.Picker.DaySize,
		EnableOutsideDays: cfg.Picker.EnableOutsideDays,
		IsRTL:             cfg.Picker.IsRTL,
		Locale:            loc,
		Modifiers: func(d, month date.CalendarDate) picker.Modifiers {
			return v.DayModifiers(d, month, today)
		},
	})

	// The first line holds the paging arrows, which mean nothing here.
	_, body, _ := strings.Cut(layout.View, "\n")
	fmt.Fprintln(stdout, body)
	return 0
}
