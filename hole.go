package fluidcard

// Hole is one cut-out in the seam between the panels.
type Hole struct {
	Center    float64 `json:"center"`
	HalfWidth float64 `json:"half_width"`
	Rect      Rect    `json:"rect"`
}

func (h Hole) TopLeft() Point     { return Pt(h.Rect.X0, h.Rect.Y0) }
func (h Hole) TopRight() Point    { return Pt(h.Rect.X1, h.Rect.Y0) }
func (h Hole) BottomRight() Point { return Pt(h.Rect.X1, h.Rect.Y1) }
func (h Hole) BottomLeft() Point  { return Pt(h.Rect.X0, h.Rect.Y1) }

type holeSet [numHoles]Hole

// separate pushes the facing edges of two neighboring holes apart
// symmetrically about their midpoint until they are 2·minDist apart.
func separate(left, right *Rect, minDist float64) {
	if right.X0-left.X1 < 2*minDist {
		mid := (left.X1 + right.X0) / 2
		left.X1 = mid - minDist
		right.X0 = mid + minDist
	}
}

// layoutHoles places the holes in the seam between top and bottom for the
// given channel values.
func layoutHoles(cfg Config, width float64, top, bottom Rect, hole, border, merge float64) holeSet {
	seamTop := top.Y1
	seamBottom := max(bottom.Y0, seamTop)
	recess := min(cfg.HoleRecess*(1-hole), (seamBottom-seamTop)/2)

	var hs holeSet
	for i, spec := range cfg.Holes {
		c := spec.CenterX(width)
		hw := spec.BaseHalfWidth + spec.GrowHalfWidth*hole
		hs[i] = Hole{
			Center:    c,
			HalfWidth: hw,
			Rect:      Rect{c - hw, seamTop + recess, c + hw, seamBottom - recess},
		}
	}

	minDist := cfg.MinHoleSeparation
	trailing := &hs[HoleTrailing]
	inner := &hs[HoleLeadingInner]
	separate(&hs[HoleLeadingOuter].Rect, &inner.Rect, minDist)

	// The border channel drags the facing edges of the trailing and the
	// inner leading hole towards each other, stopping 6·minDist apart.
	off := ((trailing.Center-inner.Center)/2 - 3*minDist) * border
	trailing.Rect.X0 = min(trailing.Rect.X0, trailing.Center-off)
	inner.Rect.X1 = max(inner.Rect.X1, inner.Center+off)
	separate(&inner.Rect, &trailing.Rect, minDist)

	if merge > 0 {
		for i := range hs {
			r := &hs[i].Rect
			r.Y0 -= (r.Y0 - seamTop) * merge
			r.Y1 += (seamBottom - r.Y1) * merge
		}
	}
	return hs
}
