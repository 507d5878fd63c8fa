package picker

import (
	"errors"
	"maps"
)

// ErrNoContainer means the overlay or its trigger has no measurable layout
// yet. Controllers keep the previous geometry when they see it.
var ErrNoContainer = errors.New("overlay container unavailable")

// Offset keys of Geometry.Offsets. Values are terminal cells.
const (
	OffsetLeft       = "left"
	OffsetRight      = "right"
	OffsetTop        = "top"
	OffsetBottom     = "bottom"
	OffsetTranslateX = "translateX"
	OffsetTranslateY = "translateY"
)

// Rect is a box in terminal cells, Right and Bottom exclusive.
type Rect struct {
	Left, Top, Right, Bottom int
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

type Point struct {
	X, Y int
}

type Size struct {
	Width, Height int
}

// Viewport is the visible terminal area.
type Viewport struct {
	Width, Height int
}

// Geometry is the derived placement of the overlay. It is recomputed from
// the trigger box and config and never stored outside the controller.
type Geometry struct {
	Anchor  AnchorDirection
	Open    OpenDirection
	Portal  bool
	Offsets map[string]int
	// NoFlip marks offsets that RTL mirroring must leave alone.
	NoFlip map[string]bool
	// Fits reports whether the configured open direction fits the viewport.
	// The direction is never changed to make it fit.
	Fits bool
}

func (g Geometry) IsZero() bool {
	return g.Offsets == nil && !g.Portal
}

func (g Geometry) Offset(key string) int {
	return g.Offsets[key]
}

// Mirror swaps left and right offsets for right-to-left layouts, leaving
// no-flip offsets in place.
func (g Geometry) Mirror() Geometry {
	out := g
	out.Offsets = make(map[string]int, len(g.Offsets))
	for k, v := range g.Offsets {
		if g.NoFlip[k] {
			out.Offsets[k] = v
			continue
		}
		switch k {
		case OffsetLeft:
			out.Offsets[OffsetRight] = v
		case OffsetRight:
			out.Offsets[OffsetLeft] = v
		default:
			out.Offsets[k] = v
		}
	}
	out.NoFlip = maps.Clone(g.NoFlip)
	return out
}

// Origin resolves the top-left cell of the overlay for compositing.
func (g Geometry) Origin(trigger Rect, overlay Size, vp Viewport) Point {
	if g.Portal {
		return Point{
			X: max(0, (vp.Width-overlay.Width)/2),
			Y: max(0, (vp.Height-overlay.Height)/2),
		}
	}

	// A mirrored geometry carries the anchor offset under the opposite key.
	off, ok := g.Offsets[g.Anchor.String()]
	if !ok {
		off = g.Offsets[OffsetLeft] + g.Offsets[OffsetRight]
	}

	var p Point
	if g.Anchor == AnchorLeft {
		p.X = trigger.Left + off
	} else {
		p.X = trigger.Right - overlay.Width - off
	}

	if g.Open == OpenDown {
		p.Y = trigger.Top + g.Offsets[OffsetTop]
	} else {
		p.Y = trigger.Bottom - g.Offsets[OffsetBottom] - overlay.Height
	}
	return p
}

// Positioner computes overlay geometry for one picker configuration.
type Positioner struct {
	cfg Config
}

func NewPositioner(cfg Config) Positioner {
	return Positioner{cfg: cfg}
}

// Compute derives the overlay geometry for a trigger box and overlay size.
func (p Positioner) Compute(trigger Rect, overlay Size, vp Viewport) (Geometry, error) {
	if vp.Width <= 0 || vp.Height <= 0 || overlay.Width <= 0 || overlay.Height <= 0 {
		return Geometry{}, ErrNoContainer
	}

	g := Geometry{
		Anchor:  p.cfg.AnchorDirection,
		Open:    p.cfg.OpenDirection,
		Offsets: map[string]int{},
		NoFlip:  map[string]bool{},
	}

	if p.cfg.WithAnyPortal() {
		g.Portal = true
		g.Offsets[OffsetTop] = 0
		g.Offsets[OffsetLeft] = 0
		g.NoFlip[OffsetLeft] = true
		g.Fits = overlay.Width <= vp.Width && overlay.Height <= vp.Height
		return p.finish(g), nil
	}

	if trigger.Empty() {
		return Geometry{}, ErrNoContainer
	}

	// Vertical placement relative to the trigger.
	gap := trigger.Height() + p.cfg.VerticalSpacing
	if g.Open == OpenDown {
		g.Offsets[OffsetTop] = gap
		g.Fits = trigger.Bottom+p.cfg.VerticalSpacing+overlay.Height <= vp.Height
	} else {
		g.Offsets[OffsetBottom] = gap
		g.Fits = trigger.Top-p.cfg.VerticalSpacing-overlay.Height >= 0
	}

	// Responsive horizontal offset on the anchor side: pull the overlay back
	// when its far edge would leave the viewport.
	anchorKey := g.Anchor.String()
	var calculated int
	if g.Anchor == AnchorLeft {
		calculated = vp.Width - (trigger.Left + overlay.Width)
	} else {
		calculated = trigger.Right - overlay.Width
	}
	g.Offsets[anchorKey] = min(calculated-p.cfg.HorizontalMargin, 0)

	if p.cfg.AppendToDocumentRoot {
		tx, ty := trigger.Left, trigger.Top
		if g.Open == OpenUp {
			ty = -(vp.Height - trigger.Bottom)
		}
		if g.Anchor == AnchorRight {
			tx = -(vp.Width - trigger.Right)
		}
		g.Offsets[OffsetTranslateX] = tx
		g.Offsets[OffsetTranslateY] = ty
		g.NoFlip[OffsetTranslateX] = true
		g.NoFlip[OffsetTranslateY] = true
	}

	return p.finish(g), nil
}

func (p Positioner) finish(g Geometry) Geometry {
	if p.cfg.IsRTL {
		return g.Mirror()
	}
	return g
}
