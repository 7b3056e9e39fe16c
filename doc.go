// Package fluidcard animates a two-panel card between its collapsed and
// expanded states. The panels separate and merge through an organic,
// liquid-looking outline whose holes open up and tear the seam apart.
//
// The package does no drawing. An [Engine] computes a [Frame] per display
// refresh and hands it to a [FrameSink]; the host places its views according
// to the frame's [Layout] and uses the frame's [Outline] as a clip or mask.
//
// # Engine
//
// An engine is either at rest, collapsed or expanded, or running exactly one
// transition. [Engine.BeginExpand] and [Engine.BeginCollapse] start a
// transition and are ignored while one is already running or when the card is
// already in the requested state. Transitions always run to completion;
// [Engine.Cancel] only makes the next tick jump to the terminal frame.
//
// Ticks come from a [DisplayLink], from [Engine.Run] or from the host calling
// [Engine.Tick] directly. Every tick turns elapsed time into time progress,
// eases it with the direction's [TimingCurve] and fans the eased progress out
// into the channels of the direction's [Choreography]. The outline builders
// only look at channel values.
//
// # Timing curves
//
// [TimingCurve] evaluates cubic Bézier easing curves anchored at (0, 0) and
// (1, 1), the way CSS transitions do. The solver precision depends on the
// duration of the animation. [Linear], [EaseIn], [EaseOut] and [EaseInOut] are
// the standard curves.
//
// # Outlines
//
// An [Outline] is made of closed contours of lines and cubic Béziers and is
// always filled with the even-odd rule, so hole contours cut out of the body
// regardless of their orientation. Frames at rest never have holes.
//
// # Geometry
//
// The geometry types ([Point], [Vec2], [Rect], [RoundedRect], [Affine],
// [CubicBez] and [BezPath]) use a y-down coordinate system with the origin in
// the top-left corner of the card at rest. [BezPath] can be written as SVG
// path data, flattened to polygons and queried for point containment.
package fluidcard
