package fluidcard

import (
	"fmt"
	"math"
	"time"
)

// ChannelName identifies a sub-progress channel.
type ChannelName string

const (
	// Expand channels.
	ChannelHole   ChannelName = "hole"
	ChannelBorder ChannelName = "border"
	ChannelMerge  ChannelName = "merge"
	ChannelLift   ChannelName = "lift"

	// Collapse channels.
	ChannelCurve  ChannelName = "curve"
	ChannelShrink ChannelName = "shrink"

	// Shared by both directions.
	ChannelGap     ChannelName = "gap"
	ChannelOpacity ChannelName = "opacity"
)

// A Remapper maps overall progress onto a channel's own scale.
type Remapper interface {
	Remap(p float64) float64
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return min(v, 1)
}

// Window maps [Start, End] affinely onto [0, 1] and clamps outside it.
type Window struct {
	Start, End float64
}

func (w Window) Remap(p float64) float64 {
	return clamp01((p - w.Start) / (w.End - w.Start))
}

func (w Window) String() string { return fmt.Sprintf("[%g, %g]", w.Start, w.End) }

// Peak rises linearly up to At and falls symmetrically after it, scaled by
// 1/Width and raised to Exponent. Values above 1 are kept so that the gap can
// overshoot before it settles.
type Peak struct {
	At, Width, Exponent float64
}

func (pk Peak) Remap(p float64) float64 {
	v := max(0, pk.At-math.Abs(p-pk.At)) / pk.Width
	return math.Pow(v, pk.Exponent)
}

func (pk Peak) String() string {
	return fmt.Sprintf("peak %g, width %g, exponent %g", pk.At, pk.Width, pk.Exponent)
}

// Tent rises from 0 to 1 over [0, Apex] and falls back to 0 over [Apex, 1].
type Tent struct {
	Apex float64
}

func (t Tent) Remap(p float64) float64 {
	p = clamp01(p)
	if p < t.Apex {
		return p / t.Apex
	}
	return (1 - p) / (1 - t.Apex)
}

func (t Tent) String() string { return fmt.Sprintf("tent %g", t.Apex) }

// Channel is one named, remapped and optionally eased view of progress.
type Channel struct {
	Name  ChannelName
	Remap Remapper
	// Ease, if set, is applied after remapping.
	Ease *Easing
}

// Choreography is the ordered set of channels of one transition direction.
type Choreography []Channel

var (
	// ExpandChoreography staggers the expand transition.
	ExpandChoreography = Choreography{
		{Name: ChannelHole, Remap: Window{0.15, 0.65}, Ease: &EaseIn},
		{Name: ChannelBorder, Remap: Window{0.30, 0.80}, Ease: &EaseOut},
		{Name: ChannelMerge, Remap: Window{0.65, 1.00}, Ease: &EaseOut},
		{Name: ChannelGap, Remap: Peak{At: 0.8, Width: 0.6, Exponent: 1.2}},
		{Name: ChannelLift, Remap: Tent{Apex: 0.7}},
		{Name: ChannelOpacity, Remap: Window{0.3, 0.9}},
	}

	// CollapseChoreography staggers the collapse transition.
	CollapseChoreography = Choreography{
		{Name: ChannelGap, Remap: Window{0, 0.7}},
		{Name: ChannelCurve, Remap: Window{0.4, 0.8}},
		{Name: ChannelShrink, Remap: Window{0.7, 1.0}},
		{Name: ChannelOpacity, Remap: Window{0, 0.4}},
	}
)

// Values holds the channel values of one tick.
type Values map[ChannelName]float64

// Get returns the value of the named channel, or 0 if it isn't present.
func (v Values) Get(name ChannelName) float64 { return v[name] }

// compiledChannel caches the timing curve of an eased channel.
type compiledChannel struct {
	name  ChannelName
	remap Remapper
	curve *TimingCurve
}

type compiledChoreography []compiledChannel

// compile prepares the channels for evaluation. Eased channels use the
// tolerance of an animation of the given duration.
func (ch Choreography) compile(duration time.Duration) (compiledChoreography, error) {
	out := make(compiledChoreography, len(ch))
	for i, c := range ch {
		if c.Remap == nil {
			return nil, invalid("channel %q has no remapper", c.Name)
		}
		out[i] = compiledChannel{name: c.Name, remap: c.Remap}
		if c.Ease != nil {
			tc, err := c.Ease.Curve(duration)
			if err != nil {
				return nil, fmt.Errorf("channel %q: %w", c.Name, err)
			}
			out[i].curve = &tc
		}
	}
	return out, nil
}

func (cc compiledChoreography) evaluate(p float64) Values {
	vals := make(Values, len(cc))
	for _, c := range cc {
		v := c.remap.Remap(p)
		if c.curve != nil {
			v = c.curve.Evaluate(v)
		}
		vals[c.name] = v
	}
	return vals
}

// Evaluate computes every channel for the overall progress p, easing with
// the tolerance of a one second animation.
func (ch Choreography) Evaluate(p float64) (Values, error) {
	cc, err := ch.compile(time.Second)
	if err != nil {
		return nil, err
	}
	return cc.evaluate(p), nil
}
