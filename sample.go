package fluidcard

import "time"

// MaxSampleRate is the highest frame rate [Sample] accepts.
const MaxSampleRate = 1000

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

var sampleEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// sampler returns an engine with a transition in the given direction that
// started at sampleEpoch.
func sampler(cfg Config, width float64, dir Direction) (*Engine, *manualClock, error) {
	if dir != Expand && dir != Collapse {
		return nil, nil, invalid("unknown direction %s", dir)
	}
	if width == 0 {
		width = cfg.ContentWidth
	}
	clk := &manualClock{now: sampleEpoch}
	e, err := New(cfg, WithClock(clk), WithWidth(width), WithExpanded(dir == Collapse))
	if err != nil {
		return nil, nil, err
	}
	if dir == Expand {
		e.BeginExpand()
	} else {
		e.BeginCollapse()
	}
	return e, clk, nil
}

// Sample runs a whole transition at fps frames per second and returns every
// frame, starting at time zero and ending with the terminal frame. A width of
// 0 selects the configured content width.
func Sample(cfg Config, width float64, dir Direction, fps float64) ([]Frame, error) {
	if !(fps > 0) || fps > MaxSampleRate {
		return nil, invalid("frame rate %g outside (0, %d]", fps, MaxSampleRate)
	}
	e, clk, err := sampler(cfg, width, dir)
	if err != nil {
		return nil, err
	}
	step := time.Duration(float64(time.Second) / fps)
	var frames []Frame
	for i := 0; ; i++ {
		clk.now = sampleEpoch.Add(time.Duration(i) * step)
		f := e.Tick(clk.now)
		frames = append(frames, f)
		if f.Done {
			return frames, nil
		}
	}
}

// SampleAt returns the frame of a transition at normalized time t in [0, 1].
func SampleAt(cfg Config, width float64, dir Direction, t float64) (Frame, error) {
	if !(t >= 0 && t <= 1) {
		return Frame{}, invalid("sample time %g outside [0, 1]", t)
	}
	e, clk, err := sampler(cfg, width, dir)
	if err != nil {
		return Frame{}, err
	}
	d := e.direction(dir).duration
	clk.now = sampleEpoch.Add(time.Duration(t * float64(d)))
	return e.Tick(clk.now), nil
}
