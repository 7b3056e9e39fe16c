package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"honnef.co/go/fluidcard"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// frameLine summarizes a frame on one line.
func frameLine(f fluidcard.Frame) string {
	s := fmt.Sprintf("%8s  %-10s  t=%.3f  p=%.3f  holes=%d  contours=%d  opacity=%.2f  angle=%4.0f°",
		f.Elapsed.Round(100_000), f.State, f.TimeProgress, f.Progress,
		len(f.Holes), len(f.Outline.Contours), f.ContentOpacity, f.IndicatorAngle*180/math.Pi)
	if f.Done {
		s += "  done"
	}
	return s
}
