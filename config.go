package fluidcard

import (
	"fmt"
	"math"
	"time"
)

// Edge selects the panel edge a hole is anchored to.
type Edge string

const (
	EdgeLeading  Edge = "leading"
	EdgeTrailing Edge = "trailing"
)

// Dimple holds the corner control-point offsets of a hole outline. Each
// offset is scaled by the hole channel, so holes start as flat notches and
// round out as they open.
type Dimple struct {
	TopLeft     Vec2 `mapstructure:"top_left" yaml:"top_left" json:"top_left"`
	TopRight    Vec2 `mapstructure:"top_right" yaml:"top_right" json:"top_right"`
	BottomRight Vec2 `mapstructure:"bottom_right" yaml:"bottom_right" json:"bottom_right"`
	BottomLeft  Vec2 `mapstructure:"bottom_left" yaml:"bottom_left" json:"bottom_left"`
}

// HoleSpec places one cut-out in the seam between the panels.
type HoleSpec struct {
	// Edge and Offset give the center x coordinate: Offset from the leading
	// edge, or Offset from the trailing edge.
	Edge   Edge    `mapstructure:"edge" yaml:"edge" json:"edge"`
	Offset float64 `mapstructure:"offset" yaml:"offset" json:"offset"`
	// The half-width is BaseHalfWidth + GrowHalfWidth·hole.
	BaseHalfWidth float64 `mapstructure:"base_half_width" yaml:"base_half_width" json:"base_half_width"`
	GrowHalfWidth float64 `mapstructure:"grow_half_width" yaml:"grow_half_width" json:"grow_half_width"`
	Dimple        Dimple  `mapstructure:"dimple" yaml:"dimple" json:"dimple"`
}

// CenterX returns the hole's center for a card of the given width.
func (h HoleSpec) CenterX(width float64) float64 {
	if h.Edge == EdgeTrailing {
		return width - h.Offset
	}
	return h.Offset
}

// ButtonSpec describes the toggle button that sits on the bottom edge of the
// top panel and its chevron.
type ButtonSpec struct {
	Size          float64 `mapstructure:"size" yaml:"size" json:"size"`
	CornerRadius  float64 `mapstructure:"corner_radius" yaml:"corner_radius" json:"corner_radius"`
	ChevronWidth  float64 `mapstructure:"chevron_width" yaml:"chevron_width" json:"chevron_width"`
	ChevronHeight float64 `mapstructure:"chevron_height" yaml:"chevron_height" json:"chevron_height"`
	// ExpandSweep is the fraction of the expand duration the chevron needs to
	// turn over. Collapsing turns it back over the full collapse duration.
	ExpandSweep float64 `mapstructure:"expand_sweep" yaml:"expand_sweep" json:"expand_sweep"`
}

// The holes, in the order used by [Config.Holes].
const (
	// HoleTrailing sits near the trailing edge.
	HoleTrailing = iota
	// HoleLeadingOuter sits closest to the leading edge.
	HoleLeadingOuter
	// HoleLeadingInner sits just inside HoleLeadingOuter.
	HoleLeadingInner
	numHoles
)

// Config describes the card's dimensions and timing.
type Config struct {
	ExpandDuration   time.Duration `mapstructure:"expand_duration" yaml:"expand_duration" json:"expand_duration"`
	CollapseDuration time.Duration `mapstructure:"collapse_duration" yaml:"collapse_duration" json:"collapse_duration"`
	ExpandEasing     Easing        `mapstructure:"expand_easing" yaml:"expand_easing" json:"expand_easing"`
	CollapseEasing   Easing        `mapstructure:"collapse_easing" yaml:"collapse_easing" json:"collapse_easing"`

	CornerRadius float64 `mapstructure:"corner_radius" yaml:"corner_radius" json:"corner_radius"`
	TopHeight    float64 `mapstructure:"top_height" yaml:"top_height" json:"top_height"`
	Gap          float64 `mapstructure:"gap" yaml:"gap" json:"gap"`
	BottomHeight float64 `mapstructure:"bottom_height" yaml:"bottom_height" json:"bottom_height"`
	// CollapsedBottomHeight is how much of the bottom panel peeks out below
	// the top panel while collapsed.
	CollapsedBottomHeight float64 `mapstructure:"collapsed_bottom_height" yaml:"collapsed_bottom_height" json:"collapsed_bottom_height"`
	ContentWidth          float64 `mapstructure:"content_width" yaml:"content_width" json:"content_width"`
	TopInset              float64 `mapstructure:"top_inset" yaml:"top_inset" json:"top_inset"`
	BottomInset           float64 `mapstructure:"bottom_inset" yaml:"bottom_inset" json:"bottom_inset"`

	Holes [numHoles]HoleSpec `mapstructure:"holes" yaml:"holes" json:"holes"`
	// MinHoleSeparation is the minimum distance kept between neighboring
	// holes.
	MinHoleSeparation float64 `mapstructure:"min_hole_separation" yaml:"min_hole_separation" json:"min_hole_separation"`
	// DimpleBase is added to every dimple offset so that control points never
	// coincide with their anchors.
	DimpleBase float64 `mapstructure:"dimple_base" yaml:"dimple_base" json:"dimple_base"`
	// HoleRecess is how far a closed hole sits inside the seam.
	HoleRecess float64 `mapstructure:"hole_recess" yaml:"hole_recess" json:"hole_recess"`
	// LiftDistance is how far the top panel dips while expanding.
	LiftDistance float64 `mapstructure:"lift_distance" yaml:"lift_distance" json:"lift_distance"`

	Button ButtonSpec `mapstructure:"button" yaml:"button" json:"button"`
}

// DefaultConfig returns the stock card.
func DefaultConfig() Config {
	return Config{
		ExpandDuration:   600 * time.Millisecond,
		CollapseDuration: 350 * time.Millisecond,
		ExpandEasing:     EaseInOut,
		CollapseEasing:   EaseInOut,

		CornerRadius:          20,
		TopHeight:             264,
		Gap:                   47,
		BottomHeight:          134,
		CollapsedBottomHeight: 51,
		ContentWidth:          295,
		TopInset:              32,
		BottomInset:           10,

		Holes: [numHoles]HoleSpec{
			HoleTrailing: {
				Edge:          EdgeTrailing,
				Offset:        38,
				BaseHalfWidth: 4,
				GrowHalfWidth: 10,
				Dimple: Dimple{
					TopLeft:     Vec(14, 11),
					TopRight:    Vec(10, 11),
					BottomRight: Vec(12, 11),
					BottomLeft:  Vec(15, 11),
				},
			},
			HoleLeadingOuter: {
				Edge:          EdgeLeading,
				Offset:        44,
				BaseHalfWidth: 0,
				GrowHalfWidth: 16,
				Dimple: Dimple{
					TopLeft:     Vec(10, 8),
					TopRight:    Vec(12, 8),
					BottomRight: Vec(14, 8),
					BottomLeft:  Vec(12, 8),
				},
			},
			HoleLeadingInner: {
				Edge:          EdgeLeading,
				Offset:        59,
				BaseHalfWidth: 4,
				GrowHalfWidth: 10,
				Dimple: Dimple{
					TopLeft:     Vec(8, 10),
					TopRight:    Vec(12, 10),
					BottomRight: Vec(9, 10),
					BottomLeft:  Vec(14, 10),
				},
			},
		},
		MinHoleSeparation: 4,
		DimpleBase:        1,
		HoleRecess:        8,
		LiftDistance:      10,

		Button: ButtonSpec{
			Size:          52,
			CornerRadius:  19,
			ChevronWidth:  12,
			ChevronHeight: 6,
			ExpandSweep:   0.7,
		},
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfiguration}, args...)...)
}

func checkEasing(name string, e Easing) error {
	for _, p := range [...]Point{e.P1, e.P2} {
		if p.IsNaN() || p.IsInf() {
			return invalid("%s control point %s is not finite", name, p)
		}
		if p.X < 0 || p.X > 1 {
			return invalid("%s control point %s has x outside [0, 1]", name, p)
		}
	}
	return nil
}

// Validate reports the first field that can't produce a valid animation. The
// returned error wraps [ErrInvalidConfiguration].
func (c Config) Validate() error {
	if c.ExpandDuration <= 0 {
		return invalid("expand_duration %s is not positive", c.ExpandDuration)
	}
	if c.CollapseDuration <= 0 {
		return invalid("collapse_duration %s is not positive", c.CollapseDuration)
	}
	if err := checkEasing("expand_easing", c.ExpandEasing); err != nil {
		return err
	}
	if err := checkEasing("collapse_easing", c.CollapseEasing); err != nil {
		return err
	}

	positive := []struct {
		name string
		v    float64
	}{
		{"top_height", c.TopHeight},
		{"bottom_height", c.BottomHeight},
		{"collapsed_bottom_height", c.CollapsedBottomHeight},
		{"content_width", c.ContentWidth},
	}
	for _, f := range positive {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return invalid("%s %g is not positive", f.name, f.v)
		}
	}
	if c.ContentWidth > MaxWidth {
		return invalid("content_width %g exceeds %d", c.ContentWidth, MaxWidth)
	}
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"corner_radius", c.CornerRadius},
		{"gap", c.Gap},
		{"top_inset", c.TopInset},
		{"bottom_inset", c.BottomInset},
		{"min_hole_separation", c.MinHoleSeparation},
		{"dimple_base", c.DimpleBase},
		{"hole_recess", c.HoleRecess},
		{"lift_distance", c.LiftDistance},
		{"button.size", c.Button.Size},
		{"button.corner_radius", c.Button.CornerRadius},
		{"button.chevron_width", c.Button.ChevronWidth},
		{"button.chevron_height", c.Button.ChevronHeight},
	}
	for _, f := range nonNegative {
		if !(f.v >= 0) || math.IsInf(f.v, 0) {
			return invalid("%s %g is negative", f.name, f.v)
		}
	}
	if c.Button.ExpandSweep <= 0 || c.Button.ExpandSweep > 1 {
		return invalid("button.expand_sweep %g outside (0, 1]", c.Button.ExpandSweep)
	}
	for i, h := range c.Holes {
		if h.Edge != EdgeLeading && h.Edge != EdgeTrailing {
			return invalid("holes[%d].edge %q is neither %q nor %q", i, h.Edge, EdgeLeading, EdgeTrailing)
		}
		if h.Offset < 0 || h.BaseHalfWidth < 0 || h.GrowHalfWidth < 0 {
			return invalid("holes[%d] has a negative offset or half-width", i)
		}
	}
	return nil
}

// ExpandedHeight is the card height at rest while expanded.
func (c Config) ExpandedHeight() float64 {
	return c.TopHeight + c.Gap + c.BottomHeight
}

// CollapsedHeight is the card height at rest while collapsed.
func (c Config) CollapsedHeight() float64 {
	return c.TopHeight + c.CollapsedBottomHeight
}
