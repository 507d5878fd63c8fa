package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloudeng.io/errors"
	"gopkg.in/yaml.v3"

	"datepick/internal/date"
	"datepick/internal/picker"
)

const (
	ModeSingle = "single"
	ModeRange  = "range"
)

// Config holds the unified application configuration
type Config struct {
	Mode     string
	Picker   picker.Config
	Rules    RulesConfig
	InfoFile string
	LogDir   string
}

// RulesConfig describes which days can be picked.
type RulesConfig struct {
	BlockedWeekdays  []time.Weekday
	BlockedDates     []date.CalendarDate
	HighlightedDates []date.CalendarDate
	// MinDate and MaxDate bound the selectable window when set.
	MinDate date.CalendarDate
	MaxDate date.CalendarDate
	// AllowPast lifts the default rule that days before today are outside
	// the allowed range.
	AllowPast bool
}

// Settings represents the config file structure. Pointer fields are only
// applied when present in the file.
type Settings struct {
	Mode     string         `yaml:"mode,omitempty"`
	Picker   PickerSettings `yaml:"picker"`
	Rules    RuleSettings   `yaml:"rules"`
	InfoFile string         `yaml:"info_file,omitempty"`
	LogDir   string         `yaml:"log_dir,omitempty"`
}

type PickerSettings struct {
	NumberOfMonths   *int    `yaml:"number_of_months,omitempty"`
	Orientation      string  `yaml:"orientation,omitempty"`
	AnchorDirection  string  `yaml:"anchor_direction,omitempty"`
	OpenDirection    string  `yaml:"open_direction,omitempty"`
	HorizontalMargin *int    `yaml:"horizontal_margin,omitempty"`
	Portal           *bool   `yaml:"portal,omitempty"`
	FullScreenPortal *bool   `yaml:"full_screen_portal,omitempty"`
	AppendToRoot     *bool   `yaml:"append_to_root,omitempty"`
	KeepOpenOnSelect *bool   `yaml:"keep_open_on_select,omitempty"`
	ReopenOnClear    *bool   `yaml:"reopen_on_clear,omitempty"`
	DisableScroll    *bool   `yaml:"disable_scroll,omitempty"`
	KeepFocusOnInput *bool   `yaml:"keep_focus_on_input,omitempty"`
	ReadOnly         *bool   `yaml:"read_only,omitempty"`
	FirstDayOfWeek   string  `yaml:"first_day_of_week,omitempty"`
	RTL              *bool   `yaml:"rtl,omitempty"`
	VerticalSpacing  *int    `yaml:"vertical_spacing,omitempty"`
	DaySize          *int    `yaml:"day_size,omitempty"`
	OutsideDays      *bool   `yaml:"outside_days,omitempty"`
	HideShortcuts    *bool   `yaml:"hide_shortcuts,omitempty"`
	MinimumNights    *int    `yaml:"minimum_nights,omitempty"`
	ResizeDebounce   *string `yaml:"resize_debounce,omitempty"`
}

type RuleSettings struct {
	BlockedWeekdays  []string `yaml:"blocked_weekdays,omitempty"`
	BlockedDates     []string `yaml:"blocked_dates,omitempty"`
	HighlightedDates []string `yaml:"highlighted_dates,omitempty"`
	MinDate          string   `yaml:"min_date,omitempty"`
	MaxDate          string   `yaml:"max_date,omitempty"`
	AllowPast        *bool    `yaml:"allow_past,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	ConfigPath      string
	Mode            string
	Months          int
	Orientation     string
	FirstDayOfWeek  string
	BlockedWeekdays []string
	InfoFile        string
}

var globalConfig *Config

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		Mode:   ModeSingle,
		Picker: picker.DefaultConfig(),
	}
	if dir, err := GetDefaultDir(); err == nil {
		cfg.LogDir = dir
	}

	var errs errors.M

	// Priority 3: config file
	configPath := flags.ConfigPath
	if configPath == "" {
		configPath = os.Getenv("DATEPICK_CONFIG")
	}
	if configPath == "" {
		if p, err := getConfigPath(); err == nil {
			configPath = p
		}
	}
	if configPath != "" {
		settings, err := loadConfigFile(expandPath(configPath))
		switch {
		case err == nil:
			applySettings(cfg, settings, &errs)
		case !os.IsNotExist(err):
			errs.Append(fmt.Errorf("config file %s: %w", configPath, err))
		}
	}

	// Priority 2: Environment variables override config file
	if v := os.Getenv("DATEPICK_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("DATEPICK_MONTHS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs.Append(fmt.Errorf("DATEPICK_MONTHS: %w", err))
		} else {
			cfg.Picker.NumberOfMonths = n
		}
	}
	if v := os.Getenv("DATEPICK_ORIENTATION"); v != "" {
		setOrientation(cfg, v, &errs)
	}
	if v := os.Getenv("DATEPICK_FIRST_DAY"); v != "" {
		setFirstDay(cfg, v, &errs)
	}
	if v := os.Getenv("DATEPICK_BLOCKED_WEEKDAYS"); v != "" {
		cfg.Rules.BlockedWeekdays = parseWeekdays(ParseCommaSeparated(v), &errs)
	}
	if v := os.Getenv("DATEPICK_INFO_FILE"); v != "" {
		cfg.InfoFile = expandPath(v)
	}
	if v := os.Getenv("DATEPICK_LOG_DIR"); v != "" {
		cfg.LogDir = expandPath(v)
	}

	// Priority 1: CLI flags override everything
	if flags.Mode != "" {
		cfg.Mode = flags.Mode
	}
	if flags.Months > 0 {
		cfg.Picker.NumberOfMonths = flags.Months
	}
	if flags.Orientation != "" {
		setOrientation(cfg, flags.Orientation, &errs)
	}
	if flags.FirstDayOfWeek != "" {
		setFirstDay(cfg, flags.FirstDayOfWeek, &errs)
	}
	if len(flags.BlockedWeekdays) > 0 {
		cfg.Rules.BlockedWeekdays = parseWeekdays(flags.BlockedWeekdays, &errs)
	}
	if flags.InfoFile != "" {
		cfg.InfoFile = expandPath(flags.InfoFile)
	}

	if cfg.Mode != ModeSingle && cfg.Mode != ModeRange {
		errs.Append(fmt.Errorf("unknown mode %q (want %s or %s)", cfg.Mode, ModeSingle, ModeRange))
	}
	if !cfg.Rules.MinDate.IsZero() && !cfg.Rules.MaxDate.IsZero() && cfg.Rules.MaxDate.Before(cfg.Rules.MinDate) {
		errs.Append(fmt.Errorf("max_date %s is before min_date %s", cfg.Rules.MaxDate, cfg.Rules.MinDate))
	}
	if err := cfg.Picker.Validate(); err != nil {
		errs.Append(err)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the loaded config
func Get() *Config {
	return globalConfig
}

// GetDefaultDir returns the default configuration directory
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "datepick"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	dir, err := GetDefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

func applySettings(cfg *Config, s *Settings, errs *errors.M) {
	if s.Mode != "" {
		cfg.Mode = s.Mode
	}
	if s.InfoFile != "" {
		cfg.InfoFile = expandPath(s.InfoFile)
	}
	if s.LogDir != "" {
		cfg.LogDir = expandPath(s.LogDir)
	}

	p := s.Picker
	c := &cfg.Picker
	setInt(&c.NumberOfMonths, p.NumberOfMonths)
	setInt(&c.HorizontalMargin, p.HorizontalMargin)
	setInt(&c.VerticalSpacing, p.VerticalSpacing)
	setInt(&c.DaySize, p.DaySize)
	setInt(&c.MinimumNights, p.MinimumNights)
	setBool(&c.WithPortal, p.Portal)
	setBool(&c.WithFullScreenPortal, p.FullScreenPortal)
	setBool(&c.AppendToDocumentRoot, p.AppendToRoot)
	setBool(&c.KeepOpenOnSelect, p.KeepOpenOnSelect)
	setBool(&c.ReopenOnClear, p.ReopenOnClear)
	setBool(&c.DisableScroll, p.DisableScroll)
	setBool(&c.KeepFocusOnInput, p.KeepFocusOnInput)
	setBool(&c.ReadOnly, p.ReadOnly)
	setBool(&c.IsRTL, p.RTL)
	setBool(&c.EnableOutsideDays, p.OutsideDays)
	setBool(&c.HideKeyboardShortcutsPanel, p.HideShortcuts)

	if p.Orientation != "" {
		setOrientation(cfg, p.Orientation, errs)
	}
	switch strings.ToLower(p.AnchorDirection) {
	case "":
	case "left":
		c.AnchorDirection = picker.AnchorLeft
	case "right":
		c.AnchorDirection = picker.AnchorRight
	default:
		errs.Append(fmt.Errorf("unknown anchor_direction %q", p.AnchorDirection))
	}
	switch strings.ToLower(p.OpenDirection) {
	case "":
	case "down":
		c.OpenDirection = picker.OpenDown
	case "up":
		c.OpenDirection = picker.OpenUp
	default:
		errs.Append(fmt.Errorf("unknown open_direction %q", p.OpenDirection))
	}
	if p.FirstDayOfWeek != "" {
		setFirstDay(cfg, p.FirstDayOfWeek, errs)
	}
	if p.ResizeDebounce != nil {
		d, err := time.ParseDuration(*p.ResizeDebounce)
		if err != nil {
			errs.Append(fmt.Errorf("resize_debounce: %w", err))
		} else {
			c.ResizeDebounce = d
		}
	}

	r := s.Rules
	if len(r.BlockedWeekdays) > 0 {
		cfg.Rules.BlockedWeekdays = parseWeekdays(r.BlockedWeekdays, errs)
	}
	cfg.Rules.BlockedDates = parseDates("blocked_dates", r.BlockedDates, errs)
	cfg.Rules.HighlightedDates = parseDates("highlighted_dates", r.HighlightedDates, errs)
	cfg.Rules.MinDate = parseDate("min_date", r.MinDate, errs)
	cfg.Rules.MaxDate = parseDate("max_date", r.MaxDate, errs)
	if r.AllowPast != nil {
		cfg.Rules.AllowPast = *r.AllowPast
	}
}

// PickerRules turns the rule configuration into picker predicates.
func (c *Config) PickerRules(clock date.Clock) picker.Rules {
	blockedWeekdays := make(map[time.Weekday]bool, len(c.Rules.BlockedWeekdays))
	for _, wd := range c.Rules.BlockedWeekdays {
		blockedWeekdays[wd] = true
	}
	blocked := dateSet(c.Rules.BlockedDates)
	highlighted := dateSet(c.Rules.HighlightedDates)

	beforeToday := picker.BeforeToday(clock)
	allowPast := c.Rules.AllowPast
	lo, hi := c.Rules.MinDate, c.Rules.MaxDate

	return picker.Rules{
		IsOutsideRange: func(d date.CalendarDate) bool {
			switch {
			case !allowPast && beforeToday(d):
				return true
			case !lo.IsZero() && d.Before(lo):
				return true
			case !hi.IsZero() && d.After(hi):
				return true
			}
			return false
		},
		IsDayBlocked: func(d date.CalendarDate) bool {
			return blockedWeekdays[d.Weekday()] || blocked[d]
		},
		IsDayHighlighted: func(d date.CalendarDate) bool {
			return highlighted[d]
		},
	}
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(DefaultSettings())
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// DefaultSettings is the file written by EnsureConfigFile.
func DefaultSettings() Settings {
	d := picker.DefaultConfig()
	months := d.NumberOfMonths
	debounce := d.ResizeDebounce.String()
	return Settings{
		Mode: ModeSingle,
		Picker: PickerSettings{
			NumberOfMonths:  &months,
			Orientation:     d.Orientation.String(),
			AnchorDirection: d.AnchorDirection.String(),
			OpenDirection:   d.OpenDirection.String(),
			ResizeDebounce:  &debounce,
		},
	}
}

// ParseCommaSeparated splits a comma-separated string into a slice
func ParseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

func parseWeekdays(names []string, errs *errors.M) []time.Weekday {
	var out []time.Weekday
	for _, n := range names {
		wd, err := ParseWeekday(n)
		if err != nil {
			errs.Append(err)
			continue
		}
		out = append(out, wd)
	}
	return out
}

func parseDate(field, s string, errs *errors.M) date.CalendarDate {
	if s == "" {
		return date.CalendarDate{}
	}
	d, err := date.Parse(s)
	if err != nil {
		errs.Append(fmt.Errorf("%s: %w", field, err))
	}
	return d
}

func parseDates(field string, values []string, errs *errors.M) []date.CalendarDate {
	var out []date.CalendarDate
	for _, v := range values {
		if d := parseDate(field, v, errs); !d.IsZero() {
			out = append(out, d)
		}
	}
	return out
}

func dateSet(dates []date.CalendarDate) map[date.CalendarDate]bool {
	set := make(map[date.CalendarDate]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set
}

func setOrientation(cfg *Config, s string, errs *errors.M) {
	switch strings.ToLower(s) {
	case "horizontal":
		cfg.Picker.Orientation = picker.Horizontal
	case "vertical":
		cfg.Picker.Orientation = picker.Vertical
	case "verticalscrollable", "vertical_scrollable", "scrollable":
		cfg.Picker.Orientation = picker.VerticalScrollable
	default:
		errs.Append(fmt.Errorf("unknown orientation %q", s))
	}
}

func setFirstDay(cfg *Config, s string, errs *errors.M) {
	wd, err := ParseWeekday(s)
	if err != nil {
		errs.Append(err)
		return
	}
	cfg.Picker.FirstDayOfWeek = &wd
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
