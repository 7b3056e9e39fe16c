package fluidcard

import "math"

// shape is the geometry of one frame.
type shape struct {
	Layout  Layout
	Holes   []Hole
	Outline Outline
	Opacity float64
}

// morpher turns channel values into frame geometry.
type morpher struct {
	cfg  Config
	geom CardGeometry
}

// outerRadius is the corner radius used for every contour of a frame with
// the given panels.
func (m morpher) outerRadius(top, bottom Rect) float64 {
	return min(m.geom.radius(top.Height()), m.geom.radius(bottom.Height()))
}

// beginTop starts a contour at the rounded top-left corner of top and runs
// along the top edge and the top-right corner.
func beginTop(p *BezPath, top Rect, r float64) {
	p.MoveTo(Pt(top.X0+r, top.Y0))
	p.LineTo(Pt(top.X1-r, top.Y0))
	quarterArc(p, Pt(top.X1-r, top.Y0), Pt(top.X1, top.Y0), Pt(top.X1, top.Y0+r))
}

// endTop runs up the leading edge of top, rounds the top-left corner and
// closes the contour.
func endTop(p *BezPath, top Rect, r float64) {
	p.LineTo(Pt(top.X0, top.Y0+r))
	quarterArc(p, Pt(top.X0, top.Y0+r), Pt(top.X0, top.Y0), Pt(top.X0+r, top.Y0))
	p.ClosePath()
}

// bottomEdge runs down the trailing edge of bottom, along its bottom edge
// with both corners rounded, and stops at the bottom-left corner.
func bottomEdge(p *BezPath, bottom Rect, r float64) {
	p.LineTo(Pt(bottom.X1, bottom.Y1-r))
	quarterArc(p, Pt(bottom.X1, bottom.Y1-r), Pt(bottom.X1, bottom.Y1), Pt(bottom.X1-r, bottom.Y1))
	p.LineTo(Pt(bottom.X0+r, bottom.Y1))
	quarterArc(p, Pt(bottom.X0+r, bottom.Y1), Pt(bottom.X0, bottom.Y1), Pt(bottom.X0, bottom.Y1-r))
}

// roundedPanels returns two separate rounded panels.
func roundedPanels(top, bottom Rect, r float64) Outline {
	return Outline{Contours: []Contour{
		{Path: top.RoundedRect(UniformRadii(r)).Path()},
		{Path: bottom.RoundedRect(UniformRadii(r)).Path()},
	}}
}

// cornerHandle is the vertical handle length where the side pinch curves
// leave the straight panel edges.
func cornerHandle(r float64) float64 { return r/2 + 1 }

// dimpleHole returns the closed contour of a free-standing hole whose corner
// handles are scaled by k.
func dimpleHole(h Hole, d Dimple, base, k float64) BezPath {
	tl, tr, br, bl := h.TopLeft(), h.TopRight(), h.BottomRight(), h.BottomLeft()
	ax := func(v Vec2) float64 { return base + v.X*k }
	ay := func(v Vec2) float64 { return base + v.Y*k }

	var p BezPath
	p.MoveTo(tl)
	p.CubicTo(
		tl.Offset(ax(d.TopLeft), -ay(d.TopLeft)),
		tr.Offset(-ax(d.TopRight), -ay(d.TopRight)),
		tr)
	p.CubicTo(
		tr.Offset(ax(d.TopRight), ay(d.TopRight)),
		br.Offset(ax(d.BottomRight), -ay(d.BottomRight)),
		br)
	p.CubicTo(
		br.Offset(-ax(d.BottomRight), ay(d.BottomRight)),
		bl.Offset(ax(d.BottomLeft), ay(d.BottomLeft)),
		bl)
	p.CubicTo(
		bl.Offset(-ax(d.BottomLeft), -ay(d.BottomLeft)),
		tl.Offset(-ax(d.TopLeft), ay(d.TopLeft)),
		tl)
	p.ClosePath()
	return p
}

// twinHole returns the contour of the two leading holes joined into one
// cut-out. The handles where they meet are limited to minDist and flatten
// out as k approaches 1.
func twinHole(outer, inner Hole, od, id Dimple, base, minDist, k float64) BezPath {
	ax := func(v Vec2) float64 { return base + v.X*k }
	ay := func(v Vec2) float64 { return base + v.Y*k }
	mx := func(v Vec2) float64 { return min(minDist, ax(v)) }
	g := math.Cos(math.Pi / 2 * k)

	otl, otr, obr, obl := outer.TopLeft(), outer.TopRight(), outer.BottomRight(), outer.BottomLeft()
	itl, itr, ibr, ibl := inner.TopLeft(), inner.TopRight(), inner.BottomRight(), inner.BottomLeft()

	var p BezPath
	p.MoveTo(otl)
	p.CubicTo(
		otl.Offset(ax(od.TopLeft), -ay(od.TopLeft)),
		otr.Offset(-mx(od.TopRight), -ay(od.TopRight)*g),
		otr)
	p.CubicTo(
		otr.Offset(mx(od.TopRight), ay(od.TopRight)*g),
		itl.Offset(-mx(id.TopLeft), ay(id.TopLeft)*g),
		itl)
	p.CubicTo(
		itl.Offset(mx(id.TopLeft), -ay(id.TopLeft)*g),
		itr.Offset(-ax(id.TopRight), -ay(id.TopRight)),
		itr)
	p.CubicTo(
		itr.Offset(ax(id.TopRight), ay(id.TopRight)),
		ibr.Offset(ax(id.BottomRight), -ay(id.BottomRight)),
		ibr)
	p.CubicTo(
		ibr.Offset(-ax(id.BottomRight), ay(id.BottomRight)),
		ibl.Offset(mx(id.BottomLeft), ay(id.BottomLeft)*g),
		ibl)
	p.CubicTo(
		ibl.Offset(-mx(id.BottomLeft), -ay(id.BottomLeft)*g),
		obr.Offset(mx(od.BottomRight), -ay(od.BottomRight)*g),
		obr)
	p.CubicTo(
		obr.Offset(-mx(od.BottomRight), ay(od.BottomRight)*g),
		obl.Offset(ax(od.BottomLeft), ay(od.BottomLeft)),
		obl)
	p.CubicTo(
		obl.Offset(-ax(od.BottomLeft), -ay(od.BottomLeft)),
		otl.Offset(-ax(od.TopLeft), ay(od.TopLeft)),
		otl)
	p.ClosePath()
	return p
}
