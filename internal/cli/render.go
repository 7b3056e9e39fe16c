package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"honnef.co/go/fluidcard"
	"honnef.co/go/fluidcard/mask"
)

type renderFlags struct {
	direction   string
	fps         float64
	out         string
	format      string
	scale       float64
	supersample int
	label       string
	width       float64
	workers     int
}

func (a *app) newRenderCmd() *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render every frame of a transition to image files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.applyRenderDefaults(cmd, &f)
			return a.render(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.direction, "direction", "expand", "transition to render: expand or collapse")
	cmd.Flags().Float64Var(&f.fps, "fps", 0, "frames per second (default render.fps)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "frames", "output directory")
	cmd.Flags().StringVar(&f.format, "format", "png", "output format: png, svg or both")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "pixels per point (default render.scale)")
	cmd.Flags().IntVar(&f.supersample, "supersample", 0, "supersampling factor (default render.supersample)")
	cmd.Flags().StringVar(&f.label, "label", "", "text drawn in the top left corner of PNG frames")
	cmd.Flags().Float64Var(&f.width, "width", 0, "card width (default render.width or card.content_width)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "frames rasterized at once (default render.workers)")
	return cmd
}

// applyRenderDefaults fills unset flags from the configuration.
func (a *app) applyRenderDefaults(cmd *cobra.Command, f *renderFlags) {
	r := a.cfg.Render
	if !cmd.Flags().Changed("fps") {
		f.fps = r.FPS
	}
	if !cmd.Flags().Changed("scale") {
		f.scale = r.Scale
	}
	if !cmd.Flags().Changed("supersample") {
		f.supersample = r.Supersample
	}
	if !cmd.Flags().Changed("width") {
		f.width = r.Width
	}
	if !cmd.Flags().Changed("workers") {
		f.workers = r.Workers
	}
	if f.workers <= 0 {
		f.workers = runtime.GOMAXPROCS(0)
	}
}

func (a *app) render(cmd *cobra.Command, f renderFlags) error {
	var png, svg bool
	switch f.format {
	case "png":
		png = true
	case "svg":
		svg = true
	case "both":
		png, svg = true, true
	default:
		return userError("unknown format %q", f.format)
	}
	dir, err := parseDirection(f.direction)
	if err != nil {
		return err
	}
	frames, err := fluidcard.Sample(a.cfg.Card, f.width, dir, f.fps)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.out, 0o755); err != nil {
		return err
	}

	// All frames share one viewport so that they can be played back as a
	// sequence.
	var vp fluidcard.Rect
	for i, fr := range frames {
		if i == 0 {
			vp = fr.Layout.Overlay
		} else {
			vp = vp.Union(fr.Layout.Overlay)
		}
	}
	opts := mask.Options{Viewport: vp, Scale: f.scale, Supersample: f.supersample}
	style := mask.DefaultStyle()
	style.Label = f.label

	a.log.Info("rendering", "direction", dir, "frames", len(frames), "out", f.out, "workers", f.workers)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(f.workers)
	for i, fr := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			base := filepath.Join(f.out, fmt.Sprintf("frame-%04d", i))
			if png {
				img := mask.Image(fr, a.cfg.Card.Button, opts, style)
				if err := writeFile(ctx, base+".png", func(w *bufio.Writer) error { return mask.WritePNG(w, img) }); err != nil {
					return err
				}
			}
			if svg {
				doc := fluidcard.SVGDocumentOptions{
					ViewBox: vp,
					Overlays: []fluidcard.SVGOverlay{
						{Path: fluidcard.ButtonPath(a.cfg.Card.Button, fr.Layout.Button), Fill: "#4a00d0"},
						{Path: fr.Indicator(a.cfg.Card.Button), Stroke: "#ffffff", Width: style.ChevronWidth},
					},
				}
				if err := writeFile(ctx, base+".svg", func(w *bufio.Writer) error { return fr.Outline.WriteSVGDocument(w, doc) }); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "rendered %d frames to %s\n", len(frames), f.out)
	return nil
}

func writeFile(ctx context.Context, path string, fn func(*bufio.Writer) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fd.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(fd)
	if err := fn(w); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return w.Flush()
}
