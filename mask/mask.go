// Package mask rasterizes card outlines into alpha masks and images.
//
// Outlines are filled with the even-odd rule: every contour is rasterized on
// its own and the coverages are combined with a soft exclusive or, so a hole
// contour punches through the body it lies in.
package mask

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"honnef.co/go/fluidcard"
)

// Options control how card coordinates map to pixels.
type Options struct {
	// Viewport is the area of card coordinates to render. The zero value
	// selects the bounding box of whatever is rendered.
	Viewport fluidcard.Rect
	// Scale is the number of pixels per point. Values ≤ 0 mean 1.
	Scale float64
	// Supersample renders at this many times the resolution and scales the
	// result down. Values below 2 disable supersampling.
	Supersample int
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

func (o Options) supersample() int {
	return max(1, o.Supersample)
}

// MaxDimension bounds each side of a mask, in pixels.
const MaxDimension = 8192

// Size returns the size in pixels of a mask of the viewport vp. Each side is
// clamped to [1, MaxDimension]; content beyond the limit is cut off.
func (o Options) Size(vp fluidcard.Rect) image.Point {
	s := o.scale()
	return image.Pt(pixels(vp.Width()*s), pixels(vp.Height()*s))
}

func pixels(v float64) int {
	if !(v > 1) {
		return 1
	}
	if v >= MaxDimension {
		return MaxDimension
	}
	return int(math.Ceil(v))
}

// transform maps card coordinates to pixel coordinates at the given scale.
func transform(vp fluidcard.Rect, scale float64) fluidcard.Affine {
	return fluidcard.Translate(fluidcard.Vec(-vp.X0, -vp.Y0)).ThenScale(scale, scale)
}

// Alpha rasterizes an outline.
func Alpha(o fluidcard.Outline, opts Options) *image.Alpha {
	vp := opts.Viewport
	if vp == (fluidcard.Rect{}) {
		vp = o.BoundingBox()
	}
	paths := make([]fluidcard.BezPath, len(o.Contours))
	for i, c := range o.Contours {
		paths[i] = c.Path
	}
	return render(paths, vp, opts, true)
}

// PathAlpha rasterizes a single closed path with the non-zero rule.
func PathAlpha(p fluidcard.BezPath, opts Options) *image.Alpha {
	vp := opts.Viewport
	if vp == (fluidcard.Rect{}) {
		vp = p.BoundingBox()
	}
	return render([]fluidcard.BezPath{p}, vp, opts, false)
}

func render(paths []fluidcard.BezPath, vp fluidcard.Rect, opts Options, evenOdd bool) *image.Alpha {
	size := opts.Size(vp)
	// Supersampling backs off so the working raster stays within the limit.
	ss := min(opts.supersample(), max(1, MaxDimension/max(size.X, size.Y)))
	aff := transform(vp, opts.scale()*float64(ss))

	big := image.NewAlpha(image.Rect(0, 0, size.X*ss, size.Y*ss))
	z := vector.NewRasterizer(big.Rect.Dx(), big.Rect.Dy())
	if !evenOdd || len(paths) == 1 {
		for _, p := range paths {
			appendPath(z, p.Transform(aff))
		}
		z.Draw(big, big.Rect, image.Opaque, image.Point{})
	} else {
		tmp := image.NewAlpha(big.Rect)
		for _, p := range paths {
			clear(tmp.Pix)
			z.Reset(big.Rect.Dx(), big.Rect.Dy())
			appendPath(z, p.Transform(aff))
			z.Draw(tmp, tmp.Rect, image.Opaque, image.Point{})
			xor(big.Pix, tmp.Pix)
		}
	}
	if ss == 1 {
		return big
	}
	dst := image.NewAlpha(image.Rect(0, 0, size.X, size.Y))
	draw.BiLinear.Scale(dst, dst.Rect, big, big.Rect, draw.Src, nil)
	return dst
}

// xor combines coverage b into a. Full coverage in both cancels out.
func xor(a, b []uint8) {
	for i := range a {
		x, y := uint32(a[i]), uint32(b[i])
		a[i] = uint8(x + y - 2*x*y/255)
	}
}

func appendPath(z *vector.Rasterizer, p fluidcard.BezPath) {
	for el := range p.Elements() {
		switch el.Kind {
		case fluidcard.MoveToKind:
			z.MoveTo(float32(el.P0.X), float32(el.P0.Y))
		case fluidcard.LineToKind:
			z.LineTo(float32(el.P0.X), float32(el.P0.Y))
		case fluidcard.CubicToKind:
			z.CubeTo(
				float32(el.P0.X), float32(el.P0.Y),
				float32(el.P1.X), float32(el.P1.Y),
				float32(el.P2.X), float32(el.P2.Y),
			)
		case fluidcard.ClosePathKind:
			z.ClosePath()
		}
	}
}

// Stroke returns a closed path covering an open polyline stroked with the
// given width and square caps. Curves are not supported; every element is
// treated as a straight segment to its end point.
func Stroke(p fluidcard.BezPath, width float64) fluidcard.BezPath {
	hw := width / 2
	var out fluidcard.BezPath
	var last fluidcard.Point
	for el := range p.Elements() {
		end, ok := el.EndPoint()
		if !ok {
			continue
		}
		if el.Kind == fluidcard.MoveToKind {
			last = end
			continue
		}
		d := end.Sub(last)
		l := d.Hypot()
		if l == 0 {
			continue
		}
		u := d.Div(l).Mul(hw)
		n := u.Perp()
		p0, p1 := last.Translate(u.Negate()), end.Translate(u)
		out.MoveTo(p0.Translate(n))
		out.LineTo(p1.Translate(n))
		out.LineTo(p1.Translate(n.Negate()))
		out.LineTo(p0.Translate(n.Negate()))
		out.ClosePath()
		last = end
	}
	return out
}
