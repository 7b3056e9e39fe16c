package fluidcard

import "math"

func (m morpher) collapse(v Values) shape {
	g := m.geom
	curve, shrink := v.Get(ChannelCurve), v.Get(ChannelShrink)

	gap := g.Gap * (1 - v.Get(ChannelGap))
	bh := g.BottomHeight - (g.BottomHeight-g.CollapsedBottomHeight)*shrink
	top := Rect{0, 0, g.Width, g.TopHeight}
	bottom := Rect{0, g.TopHeight + gap, g.Width, g.TopHeight + gap + bh}
	r := m.outerRadius(top, bottom)

	var out Outline
	if curve > 0 {
		out = Outline{Contours: []Contour{{Path: bridge(g.Width, top, bottom, r, gap, curve)}}}
	} else {
		out = roundedPanels(top, bottom, r)
	}
	return shape{
		Layout:  g.layout(top, bottom),
		Outline: out,
		Opacity: 1 - v.Get(ChannelOpacity),
	}
}

// bridge joins the two panels across the gap with a waist that straightens
// out as curve goes to 1.
func bridge(width float64, top, bottom Rect, r, gap, curve float64) BezPath {
	co := r / 4 * (1 - curve)
	mid := (top.Y1 + bottom.Y0) / 2
	sw := gap * 1.5 * math.Sin(math.Pi/2*curve)

	pt1 := Pt(width, top.Y1-r)
	pt2 := Pt(width-co, mid)
	pt3 := Pt(width, bottom.Y0+r)
	pt5 := Pt(0, bottom.Y0+r)
	pt6 := Pt(co, mid)
	pt7 := Pt(0, top.Y1-r)

	var p BezPath
	beginTop(&p, top, r)
	p.LineTo(pt1)
	p.CubicTo(pt1.Offset(0, cornerHandle(r)), pt2.Offset(0, -sw), pt2)
	p.CubicTo(pt2.Offset(0, sw), pt3.Offset(0, -cornerHandle(r)), pt3)
	bottomEdge(&p, bottom, r)
	p.LineTo(pt5)
	p.CubicTo(pt5.Offset(0, -cornerHandle(r)), pt6.Offset(0, sw), pt6)
	p.CubicTo(pt6.Offset(0, -sw), pt7.Offset(0, cornerHandle(r)), pt7)
	endTop(&p, top, r)
	return p
}
