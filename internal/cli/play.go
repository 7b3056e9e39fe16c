package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"honnef.co/go/fluidcard"
)

func (a *app) newPlayCmd() *cobra.Command {
	var (
		direction string
		width     float64
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run a transition in real time and print every frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := parseDirection(direction)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("width") {
				width = a.cfg.Render.Width
			}
			if width == 0 {
				width = a.cfg.Card.ContentWidth
			}
			return a.play(cmd, dir, width)
		},
	}
	cmd.Flags().StringVar(&direction, "direction", "expand", "transition to play: expand or collapse")
	cmd.Flags().Float64Var(&width, "width", 0, "card width (default render.width or card.content_width)")
	return cmd
}

func (a *app) play(cmd *cobra.Command, dir fluidcard.Direction, width float64) error {
	out := cmd.OutOrStdout()

	var werr error
	sink := fluidcard.FrameSinkFunc(func(f fluidcard.Frame) {
		if werr != nil {
			return
		}
		if a.flags.jsonMode {
			werr = writeJSON(out, f)
		} else {
			_, werr = fmt.Fprintln(out, frameLine(f))
		}
	})
	e, err := fluidcard.New(a.cfg.Card,
		fluidcard.WithSink(sink),
		fluidcard.WithWidth(width),
		fluidcard.WithExpanded(dir == fluidcard.Collapse),
		fluidcard.WithLogger(a.log),
		fluidcard.WithCompletion(func(f fluidcard.Frame) {
			a.log.Debug("transition finished", "session", f.Session, "elapsed", f.Elapsed)
		}))
	if err != nil {
		return err
	}
	if dir == fluidcard.Expand {
		e.BeginExpand()
	} else {
		e.BeginCollapse()
	}

	interval := time.Second / time.Duration(max(1, int(a.cfg.Render.FPS)))
	if err := e.Run(cmd.Context(), interval); err != nil {
		return err
	}
	return werr
}
