package fluidcard

import (
	"strings"
	"testing"
)

func testOutline() Outline {
	return Outline{Contours: []Contour{
		{Path: Rect{0, 0, 100, 50}.Path()},
		{Path: Rect{10, 10, 20, 20}.Path(), Hole: true},
	}}
}

func TestOutlineContains(t *testing.T) {
	o := testOutline()
	tests := []struct {
		pt   Point
		want bool
	}{
		{Pt(50, 25), true},
		{Pt(15, 15), false},
		{Pt(5, 5), true},
		{Pt(150, 25), false},
		{Pt(50, -1), false},
	}
	for _, tt := range tests {
		if got := o.Contains(tt.pt); got != tt.want {
			t.Errorf("Contains(%s) = %t, want %t", tt.pt, got, tt.want)
		}
	}
	diff(t, 1, o.HoleCount())
	diff(t, EvenOdd, o.FillRule())
	diff(t, Rect{0, 0, 100, 50}, o.BoundingBox())
}

func TestOutlineTransform(t *testing.T) {
	o := testOutline().Transform(Translate(Vec(5, 5)))
	diff(t, Rect{5, 5, 105, 55}, o.BoundingBox())
	if !o.Contours[1].Hole {
		t.Error("Transform dropped the hole flag")
	}
}

func TestWriteSVGDocument(t *testing.T) {
	var sb strings.Builder
	err := testOutline().WriteSVGDocument(&sb, SVGDocumentOptions{
		Overlays: []SVGOverlay{{Path: BezPath{MoveTo(Pt(1, 1)), LineTo(Pt(2, 2))}, Stroke: "white", Width: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	got := sb.String()
	for _, want := range []string{
		`viewBox="0 0 100 50"`,
		`fill="#5f04ff" fill-rule="evenodd"`,
		`d="M0,0 L100,0 L100,50 L0,50 Z M10,10 L20,10 L20,20 L10,20 Z"`,
		`fill="none" stroke="white" stroke-width="2"`,
		`d="M1,1 L2,2"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("document doesn't contain %q:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "</svg>\n") {
		t.Errorf("unterminated document:\n%s", got)
	}
}
