package fluidcard

import (
	"math"
	"testing"
)

func TestChevron(t *testing.T) {
	spec := DefaultConfig().Button
	button := NewRectFromCenter(Pt(100, 100), Sz(spec.Size, spec.Size))

	want := BezPath{
		MoveTo(Pt(94, 97)),
		LineTo(Pt(100, 103)),
		LineTo(Pt(106, 97)),
	}
	diff(t, want, Chevron(spec, button, 0))

	// Turned over, the chevron points up.
	want = BezPath{
		MoveTo(Pt(106, 103)),
		LineTo(Pt(100, 97)),
		LineTo(Pt(94, 103)),
	}
	diff(t, want, Chevron(spec, button, -math.Pi), approx(1e-9))
}

func TestButtonPath(t *testing.T) {
	spec := DefaultConfig().Button
	button := NewRectFromCenter(Pt(50, 20), Sz(52, 52))
	p := ButtonPath(spec, button)
	bbox := p.BoundingBox()
	diff(t, button, bbox, approx(1e-9))
	if c, _ := p.Crossings(button.Center(), 0.1); c%2 != 1 {
		t.Error("button path doesn't contain its center")
	}
	if c, _ := p.Crossings(Pt(button.X0+1, button.Y0+1), 0.1); c%2 != 0 {
		t.Error("button corners aren't rounded")
	}
}

func TestFrameIndicator(t *testing.T) {
	cfg := DefaultConfig()
	g := newCardGeometry(cfg, cfg.ContentWidth)
	for _, expanded := range []bool{false, true} {
		f := restFrame(g, expanded)
		got := f.Indicator(cfg.Button)
		want := Chevron(cfg.Button, f.Layout.Button, f.IndicatorAngle)
		diff(t, want, got)
		// The button straddles the bottom edge of the top panel.
		diff(t, f.Layout.Top.Y1, f.Layout.Button.Center().Y)
	}
}

func TestHitButton(t *testing.T) {
	cfg := DefaultConfig()
	f := restFrame(newCardGeometry(cfg, cfg.ContentWidth), false)
	b := f.Layout.Button

	if !f.HitButton(cfg.Button, b.Center()) {
		t.Error("tap on the button center missed")
	}
	if !f.HitButton(cfg.Button, Pt(b.Center().X, b.Y1)) {
		t.Error("tap on the button's bottom edge missed")
	}
	// Radius 19 on a 52 point button leaves the extreme corner outside.
	if f.HitButton(cfg.Button, Pt(b.X0+1, b.Y0+1)) {
		t.Error("tap in the rounded-off corner hit the button")
	}
	if f.HitButton(cfg.Button, Pt(b.X1+1, b.Center().Y)) {
		t.Error("tap beside the button hit it")
	}
	if (Frame{}).HitButton(cfg.Button, Pt(0, 0)) {
		t.Error("frame without a button reported a hit")
	}
}
