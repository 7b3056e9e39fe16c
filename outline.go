package fluidcard

import (
	"fmt"
	"io"
	"strings"
)

// FillRule decides which regions enclosed by an outline are filled.
type FillRule int

const (
	// NonZero fills regions with a non-zero winding number.
	NonZero FillRule = iota + 1
	// EvenOdd fills regions enclosed by an odd number of contours.
	EvenOdd
)

func (fr FillRule) String() string {
	switch fr {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return fmt.Sprintf("FillRule(%d)", int(fr))
	}
}

// Contour is one closed subpath of an outline.
type Contour struct {
	Path BezPath
	// Hole is set for contours that cut a hole into another contour.
	Hole bool
}

// Outline is the clip shape of the card for one frame. It is always filled
// with the even-odd rule.
type Outline struct {
	Contours []Contour
}

// FillRule returns the fill rule the outline must be rendered with.
func (o Outline) FillRule() FillRule { return EvenOdd }

// Path returns all contours as a single path.
func (o Outline) Path() BezPath {
	var n int
	for _, c := range o.Contours {
		n += len(c.Path)
	}
	p := make(BezPath, 0, n)
	for _, c := range o.Contours {
		p = append(p, c.Path...)
	}
	return p
}

// HoleCount returns the number of hole contours.
func (o Outline) HoleCount() int {
	var n int
	for _, c := range o.Contours {
		if c.Hole {
			n++
		}
	}
	return n
}

// Transform returns the outline with every contour transformed by aff.
func (o Outline) Transform(aff Affine) Outline {
	out := Outline{Contours: make([]Contour, len(o.Contours))}
	for i, c := range o.Contours {
		out.Contours[i] = Contour{Path: c.Path.Transform(aff), Hole: c.Hole}
	}
	return out
}

// BoundingBox returns the bounding box of all contours.
func (o Outline) BoundingBox() Rect {
	return o.Path().BoundingBox()
}

// containsTolerance is the flattening tolerance used for hit testing.
const containsTolerance = 0.05

// Contains reports whether pt is filled under the even-odd rule.
func (o Outline) Contains(pt Point) bool {
	crossings, _ := o.Path().Crossings(pt, containsTolerance)
	return crossings%2 == 1
}

func (o Outline) IsNaN() bool {
	for _, c := range o.Contours {
		if c.Path.IsNaN() {
			return true
		}
	}
	return false
}

// SVG returns the outline as SVG path data.
func (o Outline) SVG(opts SVGOptions) string {
	return o.Path().SVG(opts)
}

// SVGDocumentOptions configures [Outline.WriteSVGDocument].
type SVGDocumentOptions struct {
	SVGOptions
	// ViewBox is the visible area. The zero value uses the outline's bounding box.
	ViewBox Rect
	// Fill is the fill color. It defaults to the card's purple.
	Fill string
	// Overlays are extra paths drawn on top, such as the chevron.
	Overlays []SVGOverlay
}

// SVGOverlay is an extra stroked or filled path in an SVG document.
type SVGOverlay struct {
	Path   BezPath
	Fill   string
	Stroke string
	Width  float64
}

// DefaultFill is the card color.
const DefaultFill = "#5f04ff"

// WriteSVGDocument writes a standalone SVG document showing the outline.
func (o Outline) WriteSVGDocument(w io.Writer, opts SVGDocumentOptions) error {
	vb := opts.ViewBox
	if vb == (Rect{}) {
		vb = o.BoundingBox()
	}
	fill := opts.Fill
	if fill == "" {
		fill = DefaultFill
	}
	sb := &strings.Builder{}
	fmt.Fprintf(sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g" width="%g" height="%g">`,
		vb.X0, vb.Y0, vb.Width(), vb.Height(), vb.Width(), vb.Height())
	sb.WriteString("\n")
	fmt.Fprintf(sb, `<path fill="%s" fill-rule="%s" d="%s"/>`, fill, o.FillRule(), o.SVG(opts.SVGOptions))
	sb.WriteString("\n")
	for _, ov := range opts.Overlays {
		ovFill := ov.Fill
		if ovFill == "" {
			ovFill = "none"
		}
		stroke := ov.Stroke
		if stroke == "" {
			stroke = "none"
		}
		fmt.Fprintf(sb, `<path fill="%s" stroke="%s" stroke-width="%g" stroke-linecap="round" stroke-linejoin="round" d="%s"/>`,
			ovFill, stroke, ov.Width, ov.Path.SVG(opts.SVGOptions))
		sb.WriteString("\n")
	}
	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
