package picker

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidConfig is wrapped by every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid picker config")
	// ErrMissingCallback is returned when a required host callback is nil.
	ErrMissingCallback = errors.New("missing required callback")
)

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
	VerticalScrollable
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case VerticalScrollable:
		return "verticalScrollable"
	}
	return "horizontal"
}

// AnchorDirection is the horizontal edge of the trigger the overlay aligns to.
type AnchorDirection int

const (
	AnchorLeft AnchorDirection = iota
	AnchorRight
)

func (a AnchorDirection) String() string {
	if a == AnchorRight {
		return OffsetRight
	}
	return OffsetLeft
}

// OpenDirection is whether the overlay renders below or above the trigger.
type OpenDirection int

const (
	OpenDown OpenDirection = iota
	OpenUp
)

func (o OpenDirection) String() string {
	if o == OpenUp {
		return "up"
	}
	return "down"
}

const (
	DefaultNumberOfMonths  = 2
	DefaultVerticalSpacing = 1
	DefaultDaySize         = 3
	DefaultResizeDebounce  = 100 * time.Millisecond
)

// Config is the per-instance configuration of a picker. It is fixed at
// construction.
type Config struct {
	NumberOfMonths   int
	Orientation      Orientation
	AnchorDirection  AnchorDirection
	OpenDirection    OpenDirection
	HorizontalMargin int

	WithPortal           bool
	WithFullScreenPortal bool
	AppendToDocumentRoot bool

	KeepOpenOnSelect bool
	ReopenOnClear    bool
	DisableScroll    bool
	KeepFocusOnInput bool
	ReadOnly         bool

	// FirstDayOfWeek overrides the locale's week start when set.
	FirstDayOfWeek *time.Weekday

	IsRTL                      bool
	VerticalSpacing            int
	DaySize                    int
	EnableOutsideDays          bool
	HideKeyboardShortcutsPanel bool

	// MinimumNights is the shortest span a range may cover. Single-date
	// pickers ignore it.
	MinimumNights int

	ResizeDebounce time.Duration
}

// DefaultConfig returns the configuration used when the host sets nothing.
func DefaultConfig() Config {
	return Config{
		NumberOfMonths:  DefaultNumberOfMonths,
		Orientation:     Horizontal,
		AnchorDirection: AnchorLeft,
		OpenDirection:   OpenDown,
		VerticalSpacing: DefaultVerticalSpacing,
		DaySize:         DefaultDaySize,
		ResizeDebounce:  DefaultResizeDebounce,
	}
}

// Validate reports programmer errors in c.
func (c Config) Validate() error {
	if c.NumberOfMonths < 1 {
		return fmt.Errorf("%w: numberOfMonths must be at least 1, got %d", ErrInvalidConfig, c.NumberOfMonths)
	}
	if c.Orientation < Horizontal || c.Orientation > VerticalScrollable {
		return fmt.Errorf("%w: unknown orientation %d", ErrInvalidConfig, c.Orientation)
	}
	if c.AnchorDirection != AnchorLeft && c.AnchorDirection != AnchorRight {
		return fmt.Errorf("%w: unknown anchor direction %d", ErrInvalidConfig, c.AnchorDirection)
	}
	if c.OpenDirection != OpenDown && c.OpenDirection != OpenUp {
		return fmt.Errorf("%w: unknown open direction %d", ErrInvalidConfig, c.OpenDirection)
	}
	if c.FirstDayOfWeek != nil && (*c.FirstDayOfWeek < time.Sunday || *c.FirstDayOfWeek > time.Saturday) {
		return fmt.Errorf("%w: firstDayOfWeek must be 0-6, got %d", ErrInvalidConfig, *c.FirstDayOfWeek)
	}
	if c.VerticalSpacing < 0 {
		return fmt.Errorf("%w: verticalSpacing must not be negative", ErrInvalidConfig)
	}
	if c.DaySize < 2 {
		return fmt.Errorf("%w: daySize must be at least 2, got %d", ErrInvalidConfig, c.DaySize)
	}
	if c.MinimumNights < 0 {
		return fmt.Errorf("%w: minimumNights must not be negative", ErrInvalidConfig)
	}
	if c.ResizeDebounce < 0 {
		return fmt.Errorf("%w: resizeDebounce must not be negative", ErrInvalidConfig)
	}
	return nil
}

// WithAnyPortal reports whether the overlay renders as a portal.
func (c Config) WithAnyPortal() bool {
	return c.WithPortal || c.WithFullScreenPortal
}

// Detached reports whether the overlay is rendered outside its logical
// container and needs page-relative geometry.
func (c Config) Detached() bool {
	return c.WithAnyPortal() || c.AppendToDocumentRoot
}

// OutsideClickEnabled reports whether clicks outside dismiss the picker.
// The full-screen portal can only be closed explicitly.
func (c Config) OutsideClickEnabled() bool {
	return !c.WithFullScreenPortal
}

// LocksScroll reports whether an open picker suspends ancestor scrolling.
func (c Config) LocksScroll() bool {
	return c.AppendToDocumentRoot || c.DisableScroll
}

// WeekStart resolves the first day of the week against the locale default.
func (c Config) WeekStart(localeDefault time.Weekday) time.Weekday {
	if c.FirstDayOfWeek != nil {
		return *c.FirstDayOfWeek
	}
	return localeDefault
}
