package fluidcard

import (
	"math"
	"time"
)

// indicatorAngle returns the chevron's rotation during a transition. Expanding
// turns it over linearly in time within the first sweep fraction of the
// duration; collapsing turns it back over the whole duration.
func indicatorAngle(dir Direction, elapsed, duration time.Duration, timeProgress, sweep float64) float64 {
	if dir == Collapse {
		return -math.Pi * (1 - timeProgress)
	}
	return -math.Pi * clamp01(float64(elapsed)/(sweep*float64(duration)))
}

// Chevron returns the toggle button's chevron, centered on the button and
// rotated by angle. It is an open polyline meant to be stroked.
func Chevron(spec ButtonSpec, button Rect, angle float64) BezPath {
	c := button.Center()
	hw, hh := spec.ChevronWidth/2, spec.ChevronHeight/2

	var p BezPath
	p.MoveTo(Pt(c.X-hw, c.Y-hh))
	p.LineTo(Pt(c.X, c.Y+hh))
	p.LineTo(Pt(c.X+hw, c.Y-hh))
	if angle == 0 {
		return p
	}
	return p.Transform(RotateAbout(angle, c))
}

func buttonShape(spec ButtonSpec, button Rect) RoundedRect {
	return button.RoundedRect(UniformRadii(spec.CornerRadius).Clamp(button.Width() / 2))
}

// ButtonPath returns the outline of the toggle button.
func ButtonPath(spec ButtonSpec, button Rect) BezPath {
	return buttonShape(spec, button).Path()
}

// HitButton reports whether a tap at pt lands on the frame's toggle button.
func (f Frame) HitButton(spec ButtonSpec, pt Point) bool {
	if f.Layout.Button.IsEmpty() {
		return false
	}
	return buttonShape(spec, f.Layout.Button).Contains(pt)
}

// Indicator returns the frame's chevron for a button described by spec.
func (f Frame) Indicator(spec ButtonSpec) BezPath {
	return Chevron(spec, f.Layout.Button, f.IndicatorAngle)
}
