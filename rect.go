package fluidcard

import (
	"math"
)

// Rect is an axis-aligned rectangle spanning from (X0, Y0) to (X1, Y1).
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// NewRectFromPoints returns a rectangle with the extents of p0 and p1, ensuring that
// width and height are non-negative.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{p0.X, p0.Y, p1.X, p1.Y}.Abs()
}

// NewRectFromCenter returns a rectangle with the given size, centered around the center
// point.
func NewRectFromCenter(center Point, size Size) Rect {
	return Rect{
		X0: center.X - size.Width/2,
		Y0: center.Y - size.Height/2,
		X1: center.X + size.Width/2,
		Y1: center.Y + size.Height/2,
	}
}

// Abs returns a new rectangle with the same extents as r, but ensuring that width and
// height are non-negative.
func (r Rect) Abs() Rect {
	return Rect{
		X0: min(r.X0, r.X1),
		Y0: min(r.Y0, r.Y1),
		X1: max(r.X0, r.X1),
		Y1: max(r.Y0, r.Y1),
	}
}

// Width returns the width of the rectangle. It may be negative.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the height of the rectangle. It may be negative.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

func (r Rect) Size() Size {
	return Size{
		Width:  r.Width(),
		Height: r.Height(),
	}
}

func (r Rect) Center() Point {
	return Point{
		X: 0.5 * (r.X0 + r.X1),
		Y: 0.5 * (r.Y0 + r.Y1),
	}
}

// Union returns the smallest rectangle enclosing r and o.
//
// Results are valid only if width and height are non-negative.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// UnionPoint computes the union with one point.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{
		X0: min(r.X0, pt.X),
		Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X),
		Y1: max(r.Y1, pt.Y),
	}
}

// Inset shrinks the rectangle by dx on the left and right and by dy on the
// top and bottom. The result never has negative width or height; an inset
// larger than half a side collapses that side onto the center.
func (r Rect) Inset(dx, dy float64) Rect {
	r = r.Abs()
	c := r.Center()
	return Rect{
		X0: min(r.X0+dx, c.X),
		Y0: min(r.Y0+dy, c.Y),
		X1: max(r.X1-dx, c.X),
		Y1: max(r.Y1-dy, c.Y),
	}
}

func (r Rect) Translate(v Vec2) Rect {
	return Rect{
		X0: r.X0 + v.X,
		Y0: r.Y0 + v.Y,
		X1: r.X1 + v.X,
		Y1: r.Y1 + v.Y,
	}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Path returns the rectangle as a closed clockwise path.
func (r Rect) Path() BezPath {
	return BezPath{
		MoveTo(Pt(r.X0, r.Y0)),
		LineTo(Pt(r.X1, r.Y0)),
		LineTo(Pt(r.X1, r.Y1)),
		LineTo(Pt(r.X0, r.Y1)),
		ClosePath(),
	}
}

// RoundedRect creates a new [RoundedRect] from this rectangle and the provided
// corner radii.
func (r Rect) RoundedRect(radii RoundedRectRadii) RoundedRect {
	r = r.Abs()
	shortestSide := min(r.Width(), r.Height())
	radii = radii.Abs().Clamp(shortestSide / 2)
	return RoundedRect{
		Rect:  r,
		Radii: radii,
	}
}

// RoundedRect is a rectangle with rounded corners. The rest outline of each
// panel and the toggle button are rounded rectangles.
type RoundedRect struct {
	Rect
	Radii RoundedRectRadii
}

// Path returns the rounded rectangle as a closed clockwise path, starting at
// the end of the top-left corner.
func (r RoundedRect) Path() BezPath {
	var p BezPath
	r.appendTo(&p)
	return p
}

func (r RoundedRect) appendTo(p *BezPath) {
	x0, y0, x1, y1 := r.X0, r.Y0, r.X1, r.Y1
	rr := r.Radii
	p.MoveTo(Pt(x0+rr.TopLeft, y0))
	p.LineTo(Pt(x1-rr.TopRight, y0))
	quarterArc(p, Pt(x1-rr.TopRight, y0), Pt(x1, y0), Pt(x1, y0+rr.TopRight))
	p.LineTo(Pt(x1, y1-rr.BottomRight))
	quarterArc(p, Pt(x1, y1-rr.BottomRight), Pt(x1, y1), Pt(x1-rr.BottomRight, y1))
	p.LineTo(Pt(x0+rr.BottomLeft, y1))
	quarterArc(p, Pt(x0+rr.BottomLeft, y1), Pt(x0, y1), Pt(x0, y1-rr.BottomLeft))
	p.LineTo(Pt(x0, y0+rr.TopLeft))
	quarterArc(p, Pt(x0, y0+rr.TopLeft), Pt(x0, y0), Pt(x0+rr.TopLeft, y0))
	p.ClosePath()
}

// circleArm is the handle length, relative to the radius, of a cubic
// approximating a quarter circle.
const circleArm = 0.551915024494

// quarterArc appends a cubic approximating a circular arc from "from" to "to"
// around the corner point. Zero-radius corners produce no element.
func quarterArc(p *BezPath, from, corner, to Point) {
	if from == to {
		return
	}
	c1 := from.Lerp(corner, circleArm)
	c2 := to.Lerp(corner, circleArm)
	p.CubicTo(c1, c2, to)
}

// Contains reports whether pt lies inside the rounded rectangle or on its
// boundary.
func (r RoundedRect) Contains(pt Point) bool {
	if pt.X < r.X0 || pt.X > r.X1 || pt.Y < r.Y0 || pt.Y > r.Y1 {
		return false
	}
	corner := func(cx, cy, radius float64) bool {
		dx, dy := pt.X-cx, pt.Y-cy
		return dx*dx+dy*dy <= radius*radius
	}
	rr := r.Radii
	switch {
	case pt.X < r.X0+rr.TopLeft && pt.Y < r.Y0+rr.TopLeft:
		return corner(r.X0+rr.TopLeft, r.Y0+rr.TopLeft, rr.TopLeft)
	case pt.X > r.X1-rr.TopRight && pt.Y < r.Y0+rr.TopRight:
		return corner(r.X1-rr.TopRight, r.Y0+rr.TopRight, rr.TopRight)
	case pt.X > r.X1-rr.BottomRight && pt.Y > r.Y1-rr.BottomRight:
		return corner(r.X1-rr.BottomRight, r.Y1-rr.BottomRight, rr.BottomRight)
	case pt.X < r.X0+rr.BottomLeft && pt.Y > r.Y1-rr.BottomLeft:
		return corner(r.X0+rr.BottomLeft, r.Y1-rr.BottomLeft, rr.BottomLeft)
	}
	return true
}

type RoundedRectRadii struct {
	TopLeft     float64
	TopRight    float64
	BottomRight float64
	BottomLeft  float64
}

// UniformRadii returns radii with all four corners set to radius.
func UniformRadii(radius float64) RoundedRectRadii {
	return RoundedRectRadii{radius, radius, radius, radius}
}

func (r RoundedRectRadii) Abs() RoundedRectRadii {
	return RoundedRectRadii{
		TopLeft:     math.Abs(r.TopLeft),
		TopRight:    math.Abs(r.TopRight),
		BottomLeft:  math.Abs(r.BottomLeft),
		BottomRight: math.Abs(r.BottomRight),
	}
}

func (r RoundedRectRadii) Clamp(max float64) RoundedRectRadii {
	return RoundedRectRadii{
		TopLeft:     min(r.TopLeft, max),
		TopRight:    min(r.TopRight, max),
		BottomLeft:  min(r.BottomLeft, max),
		BottomRight: min(r.BottomRight, max),
	}
}
