package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"honnef.co/go/fluidcard/internal/framestore"
)

func (a *app) openStore(path string) (*framestore.Store, error) {
	if path == "" {
		path = a.cfg.Store.Path
	}
	return framestore.Open(path)
}

func (a *app) newRecordCmd() *cobra.Command {
	var (
		name      string
		direction string
		fps       float64
		width     float64
		storePath string
		check     string
	)
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Sample a transition into the recording database",
		Long: "record samples a transition and stores every frame. With --check it\n" +
			"samples a stored recording again and reports frames whose outline changed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(storePath)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if check != "" {
				id, err := uuid.Parse(check)
				if err != nil {
					return userError("invalid recording ID %q: %v", check, err)
				}
				mismatches, err := store.Check(cmd.Context(), id)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					if mismatches == nil {
						mismatches = []framestore.Mismatch{}
					}
					if err := writeJSON(out, mismatches); err != nil {
						return err
					}
				}
				if len(mismatches) > 0 {
					return fmt.Errorf("%d frames of %s differ, first at %d", len(mismatches), id, mismatches[0].Seq)
				}
				if !a.flags.jsonMode {
					fmt.Fprintf(out, "%s: all frames match\n", id)
				}
				return nil
			}

			dir, err := parseDirection(direction)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("fps") {
				fps = a.cfg.Render.FPS
			}
			if !cmd.Flags().Changed("width") {
				width = a.cfg.Render.Width
			}
			if name == "" {
				name = dir.String()
			}
			rec, err := store.Record(cmd.Context(), name, a.cfg.Card, width, dir, fps)
			if err != nil {
				return err
			}
			a.log.Info("recorded", "id", rec.ID, "frames", rec.FrameCount)
			if a.flags.jsonMode {
				return writeJSON(out, rec)
			}
			fmt.Fprintf(out, "%s  %s  %d frames\n", rec.ID, rec.Name, rec.FrameCount)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "recording name (default is the direction)")
	cmd.Flags().StringVar(&direction, "direction", "expand", "transition to record: expand or collapse")
	cmd.Flags().Float64Var(&fps, "fps", 0, "frames per second (default render.fps)")
	cmd.Flags().Float64Var(&width, "width", 0, "card width (default render.width or card.content_width)")
	cmd.Flags().StringVar(&storePath, "store", "", "database path (default store.path)")
	cmd.Flags().StringVar(&check, "check", "", "verify the recording with this ID instead of recording")
	return cmd
}

func (a *app) newRecordingsCmd() *cobra.Command {
	var storePath string
	cmd := &cobra.Command{
		Use:   "recordings",
		Short: "List stored recordings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(storePath)
			if err != nil {
				return err
			}
			defer store.Close()

			recs, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				if recs == nil {
					recs = []framestore.Recording{}
				}
				return writeJSON(out, recs)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDIRECTION\tFPS\tWIDTH\tFRAMES\tCREATED")
			for _, r := range recs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\t%d\t%s\n",
					r.ID, r.Name, r.Direction, r.FPS, r.Width, r.FrameCount, r.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&storePath, "store", "", "database path (default store.path)")
	return cmd
}
