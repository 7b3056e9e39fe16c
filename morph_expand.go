package fluidcard

import "math"

// pinch holds the eight anchor points where the panel sides curve in
// towards the seam, clockwise from the top-right.
type pinch struct {
	pt1, pt2, pt3, pt4 Point
	pt5, pt6, pt7, pt8 Point
	// co is how far pt2, pt3, pt6 and pt7 sit inside the card.
	co float64
}

func newPinch(width float64, top, bottom Rect, r, co float64) pinch {
	return pinch{
		pt1: Pt(width, top.Y1-r),
		pt2: Pt(width-co, top.Y1),
		pt3: Pt(width-co, bottom.Y0),
		pt4: Pt(width, bottom.Y0+r),
		pt5: Pt(0, bottom.Y0+r),
		pt6: Pt(co, bottom.Y0),
		pt7: Pt(co, top.Y1),
		pt8: Pt(0, top.Y1-r),
		co:  co,
	}
}

// expandCtx carries everything the expand outline builders share.
type expandCtx struct {
	top, bottom Rect
	r           float64
	pn          pinch
	holes       holeSet
	dimples     [numHoles]Dimple

	hole, merge float64
	base        float64
	minDist     float64

	// Angle terms of the merge channel.
	cA, sA float64 // cos and sin of π/4·(1+merge)
	c90    float64 // cos(π/2·merge)
	d90    float64 // cos(π/2·min(1, 2·merge))
}

func (m morpher) expand(p float64, v Values) shape {
	g := m.geom
	hole, border, merge := v.Get(ChannelHole), v.Get(ChannelBorder), v.Get(ChannelMerge)

	lift := m.cfg.LiftDistance * v.Get(ChannelLift)
	gap := g.Gap * v.Get(ChannelGap)
	bh := g.CollapsedBottomHeight + (g.BottomHeight-g.CollapsedBottomHeight)*p
	top := Rect{0, lift, g.Width, lift + g.TopHeight}
	bottom := Rect{0, g.TopHeight + gap, g.Width, g.TopHeight + gap + bh}

	r := m.outerRadius(top, bottom)
	aA := math.Pi/4 + math.Pi/4*merge
	ec := expandCtx{
		top:     top,
		bottom:  bottom,
		r:       r,
		pn:      newPinch(g.Width, top, bottom, r, r*p/1.2),
		holes:   layoutHoles(m.cfg, g.Width, top, bottom, hole, border, merge),
		hole:    hole,
		merge:   merge,
		base:    m.cfg.DimpleBase,
		minDist: m.cfg.MinHoleSeparation,
		cA:      math.Cos(aA),
		sA:      math.Sin(aA),
		c90:     math.Cos(math.Pi / 2 * merge),
		d90:     math.Cos(math.Pi / 2 * min(1, 2*merge)),
	}
	for i, h := range m.cfg.Holes {
		ec.dimples[i] = h.Dimple
	}

	var out Outline
	switch {
	case border >= 1:
		out = ec.split()
	case hole >= 1:
		out = ec.notched()
	default:
		out = ec.opening()
	}

	s := shape{
		Layout:  g.layout(top, bottom),
		Outline: out,
		Opacity: v.Get(ChannelOpacity),
	}
	if hole > 0 {
		s.Holes = ec.holes[:]
	}
	return s
}

// opening is the outline while the holes are still growing: one body contour
// with gently pinched sides and the holes as separate cut-outs.
func (ec *expandCtx) opening() Outline {
	pn, r, co := ec.pn, ec.r, ec.pn.co
	hA := math.Pi / 4 * ec.hole
	s, c := math.Sin(hA), math.Cos(hA)
	lo := 1.8 * co

	var p BezPath
	beginTop(&p, ec.top, r)
	p.LineTo(pn.pt1)
	p.CubicTo(pn.pt1.Offset(0, cornerHandle(r)), pn.pt2.Offset(co/2*s, -co/2*c), pn.pt2)
	p.CubicTo(pn.pt2.Offset(-co*s, co*c), pn.pt3.Offset(-co*s, -co*c), pn.pt3)
	p.CubicTo(pn.pt3.Offset(co/2*s, co/2*c), pn.pt4.Offset(0, -cornerHandle(r)), pn.pt4)
	bottomEdge(&p, ec.bottom, r)
	p.LineTo(pn.pt5)
	p.CubicTo(pn.pt5.Offset(0, -cornerHandle(r)), pn.pt6.Offset(-co/2*s, co/2*c), pn.pt6)
	p.CubicTo(pn.pt6.Offset(lo*s, -lo*c), pn.pt7.Offset(lo*s, lo*c), pn.pt7)
	p.CubicTo(pn.pt7.Offset(-co/2*s, -co/2*c), pn.pt8.Offset(0, cornerHandle(r)), pn.pt8)
	endTop(&p, ec.top, r)

	out := Outline{Contours: []Contour{{Path: p}}}
	k := ec.hole
	if k <= 0 {
		return out
	}
	outer, inner := ec.holes[HoleLeadingOuter], ec.holes[HoleLeadingInner]
	od, id := ec.dimples[HoleLeadingOuter], ec.dimples[HoleLeadingInner]
	if k < 0.3 {
		out.Contours = append(out.Contours,
			Contour{Path: dimpleHole(outer, od, ec.base, k), Hole: true},
			Contour{Path: dimpleHole(inner, id, ec.base, k), Hole: true})
	} else {
		out.Contours = append(out.Contours,
			Contour{Path: twinHole(outer, inner, od, id, ec.base, ec.minDist, k), Hole: true})
	}
	out.Contours = append(out.Contours, Contour{
		Path: dimpleHole(ec.holes[HoleTrailing], ec.dimples[HoleTrailing], ec.base, k),
		Hole: true,
	})
	return out
}

// trailingNotch runs from pt2 around the trailing hole, which has opened
// into the right side of the body, and on to pt3.
func (ec *expandCtx) trailingNotch(p *BezPath, pt2Handle float64) {
	pn, co, b := ec.pn, ec.pn.co, ec.base
	cA, sA := ec.cA, ec.sA
	h := ec.holes[HoleTrailing]
	d := ec.dimples[HoleTrailing]
	tl, tr, br, bl := h.TopLeft(), h.TopRight(), h.BottomRight(), h.BottomLeft()

	p.CubicTo(pn.pt1.Offset(0, cornerHandle(ec.r)), pn.pt2.Offset(pt2Handle*sA, -pt2Handle*cA), pn.pt2)
	trX, trY := (b+d.TopRight.X)*cA, (b+d.TopRight.Y)*cA
	p.CubicTo(pn.pt2.Offset(-co/2*sA, co/2*cA), tr.Offset(trX, trY), tr)
	p.CubicTo(tr.Offset(-trX, -trY), tl.Offset((b+d.TopLeft.X)*cA, -(b+d.TopLeft.Y)*cA), tl)
	p.CubicTo(
		tl.Offset(-(b+d.TopLeft.X)*sA, (b+d.TopLeft.Y)*cA),
		bl.Offset(-(b+d.BottomLeft.X)*sA, -(b+d.BottomLeft.Y)*cA),
		bl)
	brX, brY := (b+d.BottomRight.X)*cA, (b+d.BottomRight.Y)*cA
	p.CubicTo(bl.Offset((b+d.BottomLeft.X)*cA, (b+d.BottomLeft.Y)*cA), br.Offset(-brX, brY), br)
	p.CubicTo(br.Offset(brX, -brY), pn.pt3.Offset(-co/2*sA, -co/2*cA), pn.pt3)
	p.CubicTo(pn.pt3.Offset(co/2*sA, co/2*cA), pn.pt4.Offset(0, -cornerHandle(ec.r)), pn.pt4)
}

// notched is the outline once the holes are fully open but the panels are
// still joined. The holes have broken through the sides and become notches
// in a single contour.
func (ec *expandCtx) notched() Outline {
	pn, r, co, b := ec.pn, ec.r, ec.pn.co, ec.base
	cA, sA, c90, d90, md := ec.cA, ec.sA, ec.c90, ec.d90, ec.minDist
	outer, inner := ec.holes[HoleLeadingOuter], ec.holes[HoleLeadingInner]
	od, id := ec.dimples[HoleLeadingOuter], ec.dimples[HoleLeadingInner]
	otl, otr, obr, obl := outer.TopLeft(), outer.TopRight(), outer.BottomRight(), outer.BottomLeft()
	itl, itr, ibr, ibl := inner.TopLeft(), inner.TopRight(), inner.BottomRight(), inner.BottomLeft()

	var p BezPath
	beginTop(&p, ec.top, r)
	p.LineTo(pn.pt1)
	ec.trailingNotch(&p, co/2)
	bottomEdge(&p, ec.bottom, r)
	p.LineTo(pn.pt5)
	p.CubicTo(pn.pt5.Offset(0, -cornerHandle(r)), pn.pt6.Offset(-co/2*sA, co/2*cA), pn.pt6)
	blX, blY := (b+od.BottomLeft.X)*c90, (b+od.BottomLeft.Y)*cA
	p.CubicTo(pn.pt6.Offset(co/2*sA, -co/2*cA), obl.Offset(-blX, -blY), obl)
	p.CubicTo(obl.Offset(blX, blY), obr.Offset(-md*c90, 0), obr)
	p.CubicTo(obr.Offset(md*c90, 0), ibl.Offset(-md*d90, 0), ibl)
	brX, brY := b+id.BottomRight.X, b+id.BottomRight.Y
	p.CubicTo(ibl.Offset(md*d90, 0), ibr.Offset(-brX, brY), ibr)
	trX, trY := b+id.TopRight.X, b+id.TopRight.Y
	p.CubicTo(ibr.Offset(brX, -brY), itr.Offset(trX, trY), itr)
	p.CubicTo(itr.Offset(-trX, -trY), itl.Offset(md*d90, 0), itl)
	p.CubicTo(itl.Offset(-md*d90, 0), otr.Offset(md*d90, 0), otr)
	tlX, tlY := (b+od.TopLeft.X)*c90, (b+od.TopLeft.Y)*cA
	p.CubicTo(otr.Offset(-md*d90, 0), otl.Offset(tlX, -tlY), otl)
	p.CubicTo(otl.Offset(-tlX, tlY), pn.pt7.Offset(co/2*sA, co/2*cA), pn.pt7)
	p.CubicTo(pn.pt7.Offset(-co/2*sA, -co/2*cA), pn.pt8.Offset(0, cornerHandle(r)), pn.pt8)
	endTop(&p, ec.top, r)

	return Outline{Contours: []Contour{{Path: p}}}
}

// split is the outline once the border channel has finished: the seam has
// torn through and the panels are separate contours whose facing edges
// still carry the notches.
func (ec *expandCtx) split() Outline {
	pn, r, co, b := ec.pn, ec.r, ec.pn.co, ec.base
	cA, sA, c90, d90, md := ec.cA, ec.sA, ec.c90, ec.d90, ec.minDist
	trailing := ec.holes[HoleTrailing]
	outer, inner := ec.holes[HoleLeadingOuter], ec.holes[HoleLeadingInner]
	td := ec.dimples[HoleTrailing]
	od, id := ec.dimples[HoleLeadingOuter], ec.dimples[HoleLeadingInner]
	ttl, ttr, tbr, tbl := trailing.TopLeft(), trailing.TopRight(), trailing.BottomRight(), trailing.BottomLeft()
	otl, otr, obr, obl := outer.TopLeft(), outer.TopRight(), outer.BottomRight(), outer.BottomLeft()
	itl, itr, ibr, ibl := inner.TopLeft(), inner.TopRight(), inner.BottomRight(), inner.BottomLeft()

	var top BezPath
	beginTop(&top, ec.top, r)
	top.LineTo(pn.pt1)
	top.CubicTo(pn.pt1.Offset(0, cornerHandle(r)), pn.pt2.Offset(co/3*sA, -co/3*cA), pn.pt2)
	trX, trY := (b+td.TopRight.X)*cA, (b+td.TopRight.Y)*cA
	top.CubicTo(pn.pt2.Offset(-co/2*sA, co/2*cA), ttr.Offset(trX, trY), ttr)
	half := (ttl.X - itr.X) / 2
	top.CubicTo(ttr.Offset(-trX, -trY), ttl.Offset(half, -(b+td.TopLeft.Y)*cA), ttl)
	top.CubicTo(
		ttl.Offset(-half, (b+td.TopLeft.Y)*c90),
		itr.Offset(half, (b+id.TopRight.Y)*c90),
		itr)
	top.CubicTo(itr.Offset(-half, -(b+id.TopRight.Y)*c90), itl.Offset(md*d90, 0), itl)
	top.CubicTo(itl.Offset(-md*d90, 0), otr.Offset(md*d90, 0), otr)
	tlX, tlY := (b+od.TopLeft.X)*c90, (b+od.TopLeft.Y)*cA
	top.CubicTo(otr.Offset(-md*d90, 0), otl.Offset(tlX, -tlY), otl)
	top.CubicTo(otl.Offset(-tlX, tlY), pn.pt7.Offset(co/2*sA, co/2*cA), pn.pt7)
	top.CubicTo(pn.pt7.Offset(-co/2*sA, -co/2*cA), pn.pt8.Offset(0, cornerHandle(r)), pn.pt8)
	endTop(&top, ec.top, r)

	var bot BezPath
	bot.MoveTo(pn.pt4)
	bottomEdge(&bot, ec.bottom, r)
	bot.LineTo(pn.pt5)
	bot.CubicTo(pn.pt5.Offset(0, -cornerHandle(r)), pn.pt6.Offset(-co/2*sA, co/2*cA), pn.pt6)
	blX, blY := (b+od.BottomLeft.X)*c90, (b+od.BottomLeft.Y)*cA
	bot.CubicTo(pn.pt6.Offset(co/2*sA, -co/2*cA), obl.Offset(-blX, -blY), obl)
	bot.CubicTo(obl.Offset(blX, blY), obr.Offset(-md*d90, 0), obr)
	bot.CubicTo(obr.Offset(md*d90, 0), ibl.Offset(-md*d90, 0), ibl)
	half2 := (tbl.X - ibr.X) / 2
	bot.CubicTo(ibl.Offset(md*d90, 0), ibr.Offset(-half2, (b+id.BottomRight.Y)*c90), ibr)
	bot.CubicTo(
		ibr.Offset(half2, -(b+id.BottomRight.Y)*c90),
		tbl.Offset(-half2, -(b+td.BottomLeft.Y)*c90),
		tbl)
	brX, brY := (b+td.BottomRight.X)*cA, (b+td.BottomRight.Y)*cA
	bot.CubicTo(tbl.Offset(half2, (b+td.BottomLeft.Y)*c90), tbr.Offset(-brX, brY), tbr)
	bot.CubicTo(tbr.Offset(brX, -brY), pn.pt3.Offset(-co/2*sA, -co/2*cA), pn.pt3)
	bot.CubicTo(pn.pt3.Offset(co/2*sA, co/2*cA), pn.pt4.Offset(0, -cornerHandle(r)), pn.pt4)
	bot.ClosePath()

	return Outline{Contours: []Contour{{Path: top}, {Path: bot}}}
}
