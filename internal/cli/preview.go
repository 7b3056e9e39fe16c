package cli

import (
	"github.com/spf13/cobra"

	"honnef.co/go/fluidcard/internal/preview"
)

func (a *app) newPreviewCmd() *cobra.Command {
	var width float64
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the card in the terminal and toggle it interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("width") {
				width = a.cfg.Render.Width
			}
			opts := []preview.Option{preview.WithLogger(a.log)}
			if width != 0 {
				opts = append(opts, preview.WithWidth(width))
			}
			return preview.Run(cmd.Context(), a.cfg.Card, opts...)
		},
	}
	cmd.Flags().Float64Var(&width, "width", 0, "card width (default render.width or card.content_width)")
	return cmd
}
