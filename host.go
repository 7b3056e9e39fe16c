package fluidcard

import "time"

// A Clock tells the engine the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to a [Clock].
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// A DisplayLink calls its subscribers once per display refresh with the
// refresh's timestamp. The returned function stops the calls and may be
// invoked from within the callback.
type DisplayLink interface {
	Subscribe(fn func(time.Time)) (unsubscribe func())
}

// A FrameSink receives every frame the engine publishes.
type FrameSink interface {
	ApplyFrame(Frame)
}

// FrameSinkFunc adapts a function to a [FrameSink].
type FrameSinkFunc func(Frame)

func (f FrameSinkFunc) ApplyFrame(fr Frame) { f(fr) }
