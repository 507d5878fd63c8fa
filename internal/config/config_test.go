package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"datepick/internal/date"
	"datepick/internal/picker"
)

// isolate points the loader at a config file under a temp dir and clears
// the env vars the tests touch.
func isolate(t *testing.T, contents string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if contents != "" {
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	t.Setenv("DATEPICK_CONFIG", path)
	for _, k := range []string{"DATEPICK_MODE", "DATEPICK_MONTHS", "DATEPICK_ORIENTATION",
		"DATEPICK_FIRST_DAY", "DATEPICK_BLOCKED_WEEKDAYS", "DATEPICK_INFO_FILE", "DATEPICK_LOG_DIR"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Default(t *testing.T) {
	isolate(t, "")

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Mode != ModeSingle {
		t.Errorf("expected default mode %q, got %q", ModeSingle, cfg.Mode)
	}
	if cfg.Picker.NumberOfMonths != picker.DefaultNumberOfMonths {
		t.Errorf("expected %d months, got %d", picker.DefaultNumberOfMonths, cfg.Picker.NumberOfMonths)
	}
	if Get() != cfg {
		t.Error("Get should return the loaded config")
	}
}

func TestLoad_File(t *testing.T) {
	isolate(t, `
mode: range
picker:
  number_of_months: 1
  orientation: vertical
  anchor_direction: right
  open_direction: up
  full_screen_portal: true
  first_day_of_week: monday
  minimum_nights: 2
  resize_debounce: 250ms
rules:
  blocked_weekdays: [sat, sun]
  blocked_dates: ["2026-12-25"]
  min_date: "2026-10-01"
  max_date: "2027-03-31"
  allow_past: true
`)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := cfg.Picker
	if cfg.Mode != ModeRange {
		t.Errorf("expected mode range, got %q", cfg.Mode)
	}
	if p.NumberOfMonths != 1 || p.Orientation != picker.Vertical {
		t.Errorf("expected 1 vertical month, got %d %v", p.NumberOfMonths, p.Orientation)
	}
	if p.AnchorDirection != picker.AnchorRight || p.OpenDirection != picker.OpenUp {
		t.Errorf("expected right/up, got %v/%v", p.AnchorDirection, p.OpenDirection)
	}
	if !p.WithFullScreenPortal {
		t.Error("expected full screen portal")
	}
	if p.FirstDayOfWeek == nil || *p.FirstDayOfWeek != time.Monday {
		t.Errorf("expected first day Monday, got %v", p.FirstDayOfWeek)
	}
	if p.MinimumNights != 2 {
		t.Errorf("expected minimum nights 2, got %d", p.MinimumNights)
	}
	if p.ResizeDebounce != 250*time.Millisecond {
		t.Errorf("expected 250ms debounce, got %v", p.ResizeDebounce)
	}
	if len(cfg.Rules.BlockedWeekdays) != 2 {
		t.Errorf("expected 2 blocked weekdays, got %v", cfg.Rules.BlockedWeekdays)
	}
	if want := date.New(2026, 12, 25); len(cfg.Rules.BlockedDates) != 1 || cfg.Rules.BlockedDates[0] != want {
		t.Errorf("expected blocked %s, got %v", want, cfg.Rules.BlockedDates)
	}
	if !cfg.Rules.AllowPast {
		t.Error("expected allow_past")
	}
}

func TestLoad_EnvVar(t *testing.T) {
	isolate(t, "picker:\n  number_of_months: 1\n")
	t.Setenv("DATEPICK_MONTHS", "3")
	t.Setenv("DATEPICK_ORIENTATION", "verticalScrollable")
	t.Setenv("DATEPICK_BLOCKED_WEEKDAYS", "Saturday, Sunday")

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env vars should override the file
	if cfg.Picker.NumberOfMonths != 3 {
		t.Errorf("expected 3 months, got %d", cfg.Picker.NumberOfMonths)
	}
	if cfg.Picker.Orientation != picker.VerticalScrollable {
		t.Errorf("expected verticalScrollable, got %v", cfg.Picker.Orientation)
	}
	if len(cfg.Rules.BlockedWeekdays) != 2 || cfg.Rules.BlockedWeekdays[0] != time.Saturday {
		t.Errorf("unexpected blocked weekdays %v", cfg.Rules.BlockedWeekdays)
	}
}

func TestLoad_CLIFlags(t *testing.T) {
	isolate(t, "")
	t.Setenv("DATEPICK_MODE", "single")
	t.Setenv("DATEPICK_MONTHS", "3")

	cfg, err := Load(CLIFlags{Mode: "range", Months: 1, FirstDayOfWeek: "sun"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// CLI flags should override env vars
	if cfg.Mode != ModeRange {
		t.Errorf("expected range, got %q", cfg.Mode)
	}
	if cfg.Picker.NumberOfMonths != 1 {
		t.Errorf("expected 1 month, got %d", cfg.Picker.NumberOfMonths)
	}
	if cfg.Picker.FirstDayOfWeek == nil || *cfg.Picker.FirstDayOfWeek != time.Sunday {
		t.Errorf("expected Sunday, got %v", cfg.Picker.FirstDayOfWeek)
	}
}

func TestLoad_Errors(t *testing.T) {
	isolate(t, `
picker:
  orientation: diagonal
  day_size: 1
rules:
  min_date: "2027-01-01"
  max_date: "2026-01-01"
`)
	t.Setenv("DATEPICK_MONTHS", "many")

	_, err := Load(CLIFlags{Mode: "week"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, picker.ErrInvalidConfig) {
		t.Errorf("expected picker validation error among %v", err)
	}
	for _, want := range []string{"diagonal", "DATEPICK_MONTHS", "week", "max_date"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %q, got %v", want, err)
		}
	}
}

func TestLoad_BadYAML(t *testing.T) {
	isolate(t, "picker: [unclosed")

	if _, err := Load(CLIFlags{}); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoad_PathExpansion(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}
	isolate(t, "")

	cfg, err := Load(CLIFlags{InfoFile: "~/info.md"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := homeDir + "/info.md"
	if cfg.InfoFile != expected {
		t.Errorf("expected %q, got %q", expected, cfg.InfoFile)
	}
}

func TestPickerRules(t *testing.T) {
	today := date.New(2026, 10, 16)
	clock := date.FixedAt(today)

	cfg := &Config{Rules: RulesConfig{
		BlockedWeekdays:  []time.Weekday{time.Sunday},
		BlockedDates:     []date.CalendarDate{date.New(2026, 10, 20)},
		HighlightedDates: []date.CalendarDate{date.New(2026, 10, 31)},
		MaxDate:          date.New(2026, 12, 31),
	}}
	rules := cfg.PickerRules(clock)

	tests := []struct {
		name        string
		d           date.CalendarDate
		outside     bool
		blocked     bool
		highlighted bool
	}{
		{"today", today, false, false, false},
		{"yesterday", today.AddDays(-1), true, false, false},
		{"sunday", date.New(2026, 10, 18), false, true, false},
		{"blocked date", date.New(2026, 10, 20), false, true, false},
		{"highlighted", date.New(2026, 10, 31), false, false, true},
		{"after max", date.New(2027, 1, 1), true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.IsOutsideRange(tt.d); got != tt.outside {
				t.Errorf("IsOutsideRange = %v, want %v", got, tt.outside)
			}
			if got := rules.IsDayBlocked(tt.d); got != tt.blocked {
				t.Errorf("IsDayBlocked = %v, want %v", got, tt.blocked)
			}
			if got := rules.IsDayHighlighted(tt.d); got != tt.highlighted {
				t.Errorf("IsDayHighlighted = %v, want %v", got, tt.highlighted)
			}
		})
	}

	cfg.Rules.AllowPast = true
	cfg.Rules.MaxDate = date.CalendarDate{}
	rules = cfg.PickerRules(clock)
	if rules.IsOutsideRange(date.New(2000, 1, 1)) {
		t.Error("AllowPast without bounds should allow every day")
	}
}

func TestParseCommaSeparated(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"", 0},
		{"a", 1},
		{"a,b,c", 3},
		{" a , b , c ", 3},
		{"a,,b", 2},
	}

	for _, tt := range tests {
		result := ParseCommaSeparated(tt.input)
		if len(result) != tt.expected {
			t.Errorf("ParseCommaSeparated(%q): expected %d items, got %d", tt.input, tt.expected, len(result))
		}
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Weekday
		wantErr bool
	}{
		{"monday", time.Monday, false},
		{"Sat", time.Saturday, false},
		{" SUNDAY ", time.Sunday, false},
		{"mo", 0, true},
		{"funday", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseWeekday(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWeekday(%q): err = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseWeekday(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestEnsureConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("EnsureConfigFile: %v", err)
	}
	path := filepath.Join(home, ".config", "datepick", "config.yaml")
	settings, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if settings.Mode != ModeSingle {
		t.Errorf("expected mode single, got %q", settings.Mode)
	}
	if settings.Picker.NumberOfMonths == nil || *settings.Picker.NumberOfMonths != picker.DefaultNumberOfMonths {
		t.Errorf("expected default months in written config")
	}

	// An existing file is left alone.
	if err := os.WriteFile(path, []byte("mode: range\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("EnsureConfigFile: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "mode: range\n" {
		t.Errorf("existing config was overwritten: %q", data)
	}
}
