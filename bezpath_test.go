package fluidcard

import (
	"iter"
	"slices"
	"strings"
	"testing"
)

func TestElementsToSegmentsClosePathReferstoLastMove(t *testing.T) {
	last := func(seq iter.Seq[PathSegment]) PathSegment {
		var el PathSegment
		for el = range seq {
		}
		return el
	}
	var p BezPath
	p.MoveTo(Pt(5.0, 5.0))
	p.LineTo(Pt(15.0, 15.0))
	p.MoveTo(Pt(10.0, 10.0))
	p.LineTo(Pt(15.0, 15.0))
	p.ClosePath()

	want := PathSegment{Kind: LineKind, P0: Pt(15, 15), P1: Pt(10, 10)}
	diff(t, want, last(p.Segments()))
}

func TestClosePathOnStartAddsNoSegment(t *testing.T) {
	var p BezPath
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(10, 0))
	p.LineTo(Pt(0, 0))
	p.ClosePath()
	if n := len(slices.Collect(p.Segments())); n != 2 {
		t.Errorf("got %d segments, want 2", n)
	}
}

func TestSubpaths(t *testing.T) {
	p := Rect{0, 0, 10, 10}.Path()
	p = append(p, Rect{2, 2, 4, 4}.Path()...)
	subs := slices.Collect(p.Subpaths())
	if len(subs) != 2 {
		t.Fatalf("got %d subpaths, want 2", len(subs))
	}
	diff(t, Rect{0, 0, 10, 10}.Path(), subs[0])
	diff(t, Rect{2, 2, 4, 4}.Path(), subs[1])
}

func TestContains(t *testing.T) {
	var path BezPath
	path.MoveTo(Pt(0.0, 0.0))
	path.LineTo(Pt(1.0, 1.0))
	path.LineTo(Pt(2.0, 0.0))
	path.ClosePath()
	crossings, winding := path.Crossings(Pt(1, 0.5), 0.1)
	if crossings != 1 {
		t.Errorf("got %d crossings, want 1", crossings)
	}
	if winding != -1 {
		t.Errorf("got winding %v, want -1", winding)
	}
}

func TestCrossingsNestedContours(t *testing.T) {
	p := Rect{0, 0, 10, 10}.Path()
	p = append(p, Rect{2, 2, 8, 8}.Path()...)
	tests := []struct {
		pt        Point
		crossings int
	}{
		{Pt(1, 5), 3},
		{Pt(5, 5), 2},
		{Pt(9, 5), 1},
		{Pt(11, 5), 0},
	}
	for _, tt := range tests {
		if got, _ := p.Crossings(tt.pt, 0.1); got != tt.crossings {
			t.Errorf("%s: got %d crossings, want %d", tt.pt, got, tt.crossings)
		}
	}
}

func TestBezPathBoundingBox(t *testing.T) {
	var p BezPath
	p.MoveTo(Pt(0, 0))
	p.CubicTo(Pt(0, 1), Pt(1, 1), Pt(1, 0))
	p.LineTo(Pt(2, -1))
	diff(t, Rect{0, -1, 2, 0.75}, p.BoundingBox(), approx(1e-12))
}

func TestBezPathTransform(t *testing.T) {
	p := Rect{0, 0, 1, 1}.Path().Transform(Translate(Vec(2, 3)))
	diff(t, Rect{2, 3, 3, 4}.Path(), p)
}

func TestSVG(t *testing.T) {
	var p BezPath
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(10.5, -0.0001))
	p.CubicTo(Pt(1.0/3, 2), Pt(3, 4), Pt(5, 6))
	p.ClosePath()

	diff(t, "M0,0 L10.5,0 C0.333,2 3,4 5,6 Z", p.SVG(SVGOptions{MaxPrecision: 3}))

	full := p.SVG(SVGOptions{})
	if !strings.Contains(full, "-0.0001") || !strings.Contains(full, "0.3333333333333333") {
		t.Errorf("full precision output lost digits: %s", full)
	}
}
