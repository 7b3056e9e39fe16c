package mask

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"honnef.co/go/fluidcard"
)

// Style decides the colors of [Image].
type Style struct {
	Fill       color.Color
	Background color.Color
	// Button fills the toggle button. Nil leaves it out.
	Button color.Color
	// Chevron strokes the indicator with ChevronWidth points. Nil leaves it
	// out.
	Chevron      color.Color
	ChevronWidth float64
	// Label is drawn in the top-left corner.
	Label      string
	LabelColor color.Color
}

// DefaultStyle draws the card in its purple on a transparent background with
// a white chevron.
func DefaultStyle() Style {
	return Style{
		Fill:         color.RGBA{0x5f, 0x04, 0xff, 0xff},
		Background:   color.Transparent,
		Button:       color.RGBA{0x4a, 0x00, 0xd0, 0xff},
		Chevron:      color.White,
		ChevronWidth: 2,
		LabelColor:   color.White,
	}
}

// Image renders a frame: the outline, then the button and its chevron, then
// the label. The zero viewport selects the frame's overlay.
func Image(f fluidcard.Frame, spec fluidcard.ButtonSpec, opts Options, st Style) *image.RGBA {
	if opts.Viewport == (fluidcard.Rect{}) {
		opts.Viewport = f.Layout.Overlay
	}
	size := opts.Size(opts.Viewport)
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	if st.Background != nil {
		draw.Draw(img, img.Rect, image.NewUniform(st.Background), image.Point{}, draw.Src)
	}
	if st.Fill != nil {
		paint(img, Alpha(f.Outline, opts), st.Fill)
	}
	if st.Button != nil && !f.Layout.Button.IsEmpty() {
		paint(img, PathAlpha(fluidcard.ButtonPath(spec, f.Layout.Button), opts), st.Button)
	}
	if st.Chevron != nil && st.ChevronWidth > 0 {
		paint(img, PathAlpha(Stroke(f.Indicator(spec), st.ChevronWidth), opts), st.Chevron)
	}
	if st.Label != "" {
		c := st.LabelColor
		if c == nil {
			c = color.White
		}
		if err := Label(img, st.Label, 12*opts.scale(), c); err != nil {
			// The embedded font always parses.
			panic(err)
		}
	}
	return img
}

func paint(dst draw.Image, a *image.Alpha, c color.Color) {
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, a, image.Point{}, draw.Over)
}

// Colorize paints a mask in fill on top of bg.
func Colorize(a *image.Alpha, fill, bg color.Color) *image.RGBA {
	img := image.NewRGBA(a.Rect)
	if bg != nil {
		draw.Draw(img, img.Rect, image.NewUniform(bg), image.Point{}, draw.Src)
	}
	paint(img, a, fill)
	return img
}

var loadFont = sync.OnceValues(func() (*opentype.Font, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return f, nil
})

// Label draws text of the given pixel size into the top-left corner of dst.
func Label(dst draw.Image, text string, size float64, c color.Color) error {
	fnt, err := loadFont()
	if err != nil {
		return err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("create face: %w", err)
	}
	defer face.Close()

	b := dst.Bounds()
	pad := int(size / 2)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(b.Min.X + pad),
			Y: fixed.I(b.Min.Y+pad) + face.Metrics().Ascent,
		},
	}
	d.DrawString(text)
	return nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
