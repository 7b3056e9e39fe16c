package fluidcard

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strconv"
	"strings"
)

type PathElementKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// subpath.
	MoveToKind PathElementKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a cubic bezier using the current location and the three points.
	CubicToKind
	// Close off the subpath.
	ClosePathKind
)

func (k PathElementKind) String() string {
	switch k {
	case MoveToKind:
		return "MoveTo"
	case LineToKind:
		return "LineTo"
	case CubicToKind:
		return "CubicTo"
	case ClosePathKind:
		return "ClosePath"
	default:
		return "InvalidPathElement"
	}
}

// PathElement is one element of a Bézier path.
//
// A valid path has MoveTo at the beginning of each subpath. LineTo and MoveTo
// use P0, CubicTo uses P0 and P1 as control points and P2 as the end point.
type PathElement struct {
	Kind PathElementKind
	P0   Point
	P1   Point
	P2   Point
}

func (el PathElement) String() string {
	return fmt.Sprintf("%s(%s, %s, %s)", el.Kind, el.P0, el.P1, el.P2)
}

func (el PathElement) Transform(aff Affine) PathElement {
	switch el.Kind {
	case MoveToKind:
		return MoveTo(el.P0.Transform(aff))
	case LineToKind:
		return LineTo(el.P0.Transform(aff))
	case CubicToKind:
		return CubicTo(el.P0.Transform(aff), el.P1.Transform(aff), el.P2.Transform(aff))
	case ClosePathKind:
		return ClosePath()
	default:
		return PathElement{}
	}
}

func (el PathElement) IsNaN() bool {
	return el.P0.IsNaN() ||
		el.P1.IsNaN() ||
		el.P2.IsNaN()
}

// EndPoint returns the point the element ends at. ClosePath has no end point
// of its own.
func (el PathElement) EndPoint() (Point, bool) {
	switch el.Kind {
	case MoveToKind, LineToKind:
		return el.P0, true
	case CubicToKind:
		return el.P2, true
	default:
		return Point{}, false
	}
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func CubicTo(p0, p1, p2 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p0, P1: p1, P2: p2}
}

func ClosePath() PathElement {
	return PathElement{Kind: ClosePathKind}
}

type PathSegmentKind int

const (
	// A line segment.
	LineKind PathSegmentKind = iota + 1
	// A cubic Bézier segment.
	CubicKind
)

// PathSegment is a tagged union of the segments a [BezPath] is built from.
// Lines use P0 and P1; cubics use all four points.
type PathSegment struct {
	Kind PathSegmentKind
	P0   Point
	P1   Point
	P2   Point
	P3   Point
}

// Cubic returns the segment as a cubic. Lines are elevated to a cubic with
// control points on the line.
func (seg PathSegment) Cubic() CubicBez {
	switch seg.Kind {
	case LineKind:
		return CubicBez{
			seg.P0,
			seg.P0.Lerp(seg.P1, 1.0/3.0),
			seg.P0.Lerp(seg.P1, 2.0/3.0),
			seg.P1,
		}
	case CubicKind:
		return CubicBez{seg.P0, seg.P1, seg.P2, seg.P3}
	default:
		return CubicBez{}
	}
}

func (seg PathSegment) Start() Point {
	return seg.P0
}

func (seg PathSegment) End() Point {
	switch seg.Kind {
	case LineKind:
		return seg.P1
	case CubicKind:
		return seg.P3
	default:
		return Point{}
	}
}

func (seg PathSegment) BoundingBox() Rect {
	switch seg.Kind {
	case LineKind:
		return NewRectFromPoints(seg.P0, seg.P1)
	case CubicKind:
		return seg.Cubic().BoundingBox()
	default:
		return Rect{}
	}
}

// BezPath is a sequence of path elements describing zero or more subpaths.
type BezPath []PathElement

func (p *BezPath) Push(el PathElement) {
	*p = append(*p, el)
}

// MoveTo pushes a MoveTo element onto the path.
//
// If you're building a path using this method, you must call MoveTo before
// pushing any other elements.
func (p *BezPath) MoveTo(pt Point) { p.Push(MoveTo(pt)) }

// LineTo pushes a LineTo element onto the path.
func (p *BezPath) LineTo(pt Point) { p.Push(LineTo(pt)) }

// CubicTo pushes a CubicTo element onto the path.
func (p *BezPath) CubicTo(p1, p2, p3 Point) { p.Push(CubicTo(p1, p2, p3)) }

// ClosePath pushes a ClosePath element onto the path.
func (p *BezPath) ClosePath() { p.Push(ClosePath()) }

// Elements returns an iterator over the path's elements.
func (p BezPath) Elements() iter.Seq[PathElement] { return slices.Values(p) }

// Segments returns an iterator over the path's segments.
func (p BezPath) Segments() iter.Seq[PathSegment] { return Segments(slices.Values(p)) }

func (p BezPath) Transform(aff Affine) BezPath {
	out := make(BezPath, len(p))
	for i, el := range p {
		out[i] = el.Transform(aff)
	}
	return out
}

// Subpaths returns an iterator over the subpaths of p. Each subpath starts
// with its MoveTo element.
func (p BezPath) Subpaths() iter.Seq[BezPath] {
	return func(yield func(BezPath) bool) {
		start := -1
		for i, el := range p {
			if el.Kind == MoveToKind {
				if start >= 0 && !yield(p[start:i:i]) {
					return
				}
				start = i
			}
		}
		if start >= 0 {
			yield(p[start:len(p):len(p)])
		}
	}
}

// BoundingBox returns the smallest rectangle enclosing all segments of p.
func (p BezPath) BoundingBox() Rect {
	var bbox Rect
	first := true
	for seg := range p.Segments() {
		r := seg.BoundingBox()
		if first {
			bbox = r
			first = false
		} else {
			bbox = bbox.Union(r)
		}
	}
	return bbox
}

func (p BezPath) IsNaN() bool {
	for _, el := range p {
		if el.IsNaN() {
			return true
		}
	}
	return false
}

// Polygons flattens each subpath into a closed polygon whose edges stay
// within tolerance of the curves.
func (p BezPath) Polygons(tolerance float64) [][]Point {
	var out [][]Point
	for sub := range p.Subpaths() {
		var poly []Point
		for seg := range sub.Segments() {
			if len(poly) == 0 {
				poly = append(poly, seg.Start())
			}
			switch seg.Kind {
			case LineKind:
				poly = append(poly, seg.P1)
			case CubicKind:
				poly = seg.Cubic().Flatten(poly, tolerance)
			}
		}
		if len(poly) > 2 {
			out = append(out, poly)
		}
	}
	return out
}

// Crossings counts how often a ray cast from pt towards positive x crosses
// the boundary of p, and the signed winding number of p around pt.
func (p BezPath) Crossings(pt Point, tolerance float64) (crossings, winding int) {
	for _, poly := range p.Polygons(tolerance) {
		n := len(poly)
		for i := range n {
			a, b := poly[i], poly[(i+1)%n]
			if (a.Y > pt.Y) == (b.Y > pt.Y) {
				continue
			}
			x := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if pt.X < x {
				crossings++
				if b.Y > a.Y {
					winding++
				} else {
					winding--
				}
			}
		}
	}
	return crossings, winding
}

func (p BezPath) SVG(opts SVGOptions) string {
	return SVG(slices.Values(p), opts)
}

func (p BezPath) WriteSVG(w io.Writer, opts SVGOptions) error {
	return WriteSVG(w, slices.Values(p), opts)
}

// Segments converts a sequence of path elements to a sequence of path segments.
func Segments(seq iter.Seq[PathElement]) iter.Seq[PathSegment] {
	return func(yield func(PathSegment) bool) {
		var start, last Point
		for el := range seq {
			switch el.Kind {
			case MoveToKind:
				start = el.P0
				last = el.P0
			case LineToKind:
				p := last
				last = el.P0
				if !yield(PathSegment{Kind: LineKind, P0: p, P1: el.P0}) {
					return
				}
			case CubicToKind:
				p := last
				last = el.P2
				if !yield(PathSegment{Kind: CubicKind, P0: p, P1: el.P0, P2: el.P1, P3: el.P2}) {
					return
				}
			case ClosePathKind:
				if last != start {
					p := last
					last = start
					if !yield(PathSegment{Kind: LineKind, P0: p, P1: start}) {
						return
					}
				}
			default:
				panic(fmt.Sprintf("unhandled case %v", el.Kind))
			}
		}
	}
}

// SVGOptions specifies optional settings for [SVG] and [WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
}

// SVG converts a sequence of path elements to a string of SVG path commands.
//
// See [WriteSVG] for a version that writes to an [io.Writer] instead of
// returning a string.
func SVG(seq iter.Seq[PathElement], opts SVGOptions) string {
	sb := &strings.Builder{}
	WriteSVG(sb, seq, opts)
	return sb.String()
}

// WriteSVG converts a sequence of path elements to a string of SVG path
// commands and writes it to w.
func WriteSVG(w io.Writer, seq iter.Seq[PathElement], opts SVGOptions) error {
	space := []byte(" ")
	z := []byte("Z")
	var err error
	write := func(s []byte) {
		if err != nil {
			return
		}
		_, err = w.Write(s)
	}
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		maxPrec := opts.MaxPrecision
		if maxPrec <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		s := strconv.FormatFloat(n, 'f', maxPrec, 64)
		if strings.Contains(s, ".") {
			s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		}
		if s == "-0" {
			s = "0"
		}
		return s
	}
	first := true
	for el := range seq {
		if err != nil {
			return err
		}
		if !first {
			write(space)
		}
		first = false
		switch el.Kind {
		case MoveToKind:
			writef("M%s,%s", format(el.P0.X), format(el.P0.Y))
		case LineToKind:
			writef("L%s,%s", format(el.P0.X), format(el.P0.Y))
		case CubicToKind:
			writef("C%s,%s %s,%s %s,%s",
				format(el.P0.X), format(el.P0.Y),
				format(el.P1.X), format(el.P1.Y),
				format(el.P2.X), format(el.P2.Y))
		case ClosePathKind:
			write(z)
		default:
			panic("unreachable")
		}
	}
	return err
}
