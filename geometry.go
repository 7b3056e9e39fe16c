package fluidcard

// Layout is where the host should place its views for one frame. All
// rectangles are in card coordinates: the origin is the top-left corner of
// the card at rest, y grows downwards.
type Layout struct {
	Top    Rect `json:"top"`
	Bottom Rect `json:"bottom"`
	// Overlay encloses both panels and is the area the outline clips.
	Overlay       Rect `json:"overlay"`
	TopContent    Rect `json:"top_content"`
	BottomContent Rect `json:"bottom_content"`
	Button        Rect `json:"button"`
}

// Size returns the size of the card's overlay.
func (l Layout) Size() Size {
	return Size{Width: l.Overlay.X1, Height: l.Overlay.Y1}
}

// CardGeometry is the static geometry of a card of a given width.
type CardGeometry struct {
	Width                 float64 `json:"width"`
	TopHeight             float64 `json:"top_height"`
	Gap                   float64 `json:"gap"`
	BottomHeight          float64 `json:"bottom_height"`
	CollapsedBottomHeight float64 `json:"collapsed_bottom_height"`
	CornerRadius          float64 `json:"corner_radius"`
	ContentWidth          float64 `json:"content_width"`
	TopInset              float64 `json:"top_inset"`
	BottomInset           float64 `json:"bottom_inset"`
	ButtonSize            float64 `json:"button_size"`
}

func newCardGeometry(cfg Config, width float64) CardGeometry {
	return CardGeometry{
		Width:                 width,
		TopHeight:             cfg.TopHeight,
		Gap:                   cfg.Gap,
		BottomHeight:          cfg.BottomHeight,
		CollapsedBottomHeight: cfg.CollapsedBottomHeight,
		CornerRadius:          cfg.CornerRadius,
		ContentWidth:          cfg.ContentWidth,
		TopInset:              cfg.TopInset,
		BottomInset:           cfg.BottomInset,
		ButtonSize:            cfg.Button.Size,
	}
}

// ExpandedHeight is the card height at rest while expanded.
func (g CardGeometry) ExpandedHeight() float64 {
	return g.TopHeight + g.Gap + g.BottomHeight
}

// CollapsedHeight is the card height at rest while collapsed.
func (g CardGeometry) CollapsedHeight() float64 {
	return g.TopHeight + g.CollapsedBottomHeight
}

// IntrinsicSize is the size the card asks its host for at rest.
func (g CardGeometry) IntrinsicSize(expanded bool) Size {
	if expanded {
		return Sz(g.ContentWidth, g.ExpandedHeight())
	}
	return Sz(g.ContentWidth, g.CollapsedHeight())
}

// radius returns the corner radius, limited so that it fits the panel of
// the given height.
func (g CardGeometry) radius(panelHeight float64) float64 {
	return max(0, min(g.CornerRadius, panelHeight/2, g.Width/2))
}

// layout derives the full layout from the two panel rectangles.
func (g CardGeometry) layout(top, bottom Rect) Layout {
	bi := g.BottomInset
	bottomContent := Rect{
		X0: bi,
		Y0: bottom.Y0 + bi,
		X1: g.Width - bi,
		Y1: bottom.Y0 + g.BottomHeight - bi,
	}
	if bottomContent.X1 < bottomContent.X0 {
		bottomContent.X0, bottomContent.X1 = g.Width/2, g.Width/2
	}
	if bottomContent.Y1 < bottomContent.Y0 {
		bottomContent.Y1 = bottomContent.Y0
	}
	return Layout{
		Top:           top,
		Bottom:        bottom,
		Overlay:       top.Union(bottom),
		TopContent:    top.Inset(g.TopInset, g.TopInset),
		BottomContent: bottomContent,
		Button:        NewRectFromCenter(Pt(g.Width/2, top.Y1), Sz(g.ButtonSize, g.ButtonSize)),
	}
}

// RestLayout returns the layout of the card at rest.
func (g CardGeometry) RestLayout(expanded bool) Layout {
	top := Rect{0, 0, g.Width, g.TopHeight}
	var bottom Rect
	if expanded {
		bottom = Rect{0, g.TopHeight + g.Gap, g.Width, g.TopHeight + g.Gap + g.BottomHeight}
	} else {
		bottom = Rect{0, g.TopHeight, g.Width, g.TopHeight + g.CollapsedBottomHeight}
	}
	return g.layout(top, bottom)
}

// RestOutline returns the outline of the card at rest: two rounded panels
// when expanded, one rounded rectangle when collapsed. Neither has holes.
func (g CardGeometry) RestOutline(expanded bool) Outline {
	if expanded {
		l := g.RestLayout(true)
		return Outline{Contours: []Contour{
			{Path: l.Top.RoundedRect(UniformRadii(g.radius(l.Top.Height()))).Path()},
			{Path: l.Bottom.RoundedRect(UniformRadii(g.radius(l.Bottom.Height()))).Path()},
		}}
	}
	card := Rect{0, 0, g.Width, g.CollapsedHeight()}
	return Outline{Contours: []Contour{
		{Path: card.RoundedRect(UniformRadii(g.radius(card.Height()))).Path()},
	}}
}
