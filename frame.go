package fluidcard

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Direction is the direction of a transition.
type Direction int

const (
	Expand Direction = iota + 1
	Collapse
)

func (d Direction) String() string {
	switch d {
	case Expand:
		return "expand"
	case Collapse:
		return "collapse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection is the inverse of [Direction.String].
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "expand":
		return Expand, nil
	case "collapse":
		return Collapse, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	if d != Expand && d != Collapse {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Phase is what the engine is currently doing.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseExpanding
	PhaseCollapsing
)

func (ph Phase) String() string {
	switch ph {
	case PhaseIdle:
		return "idle"
	case PhaseExpanding:
		return "expanding"
	case PhaseCollapsing:
		return "collapsing"
	default:
		return fmt.Sprintf("Phase(%d)", int(ph))
	}
}

// State is the engine's state. Expanded is the rest state; while a
// transition is running it is the state being left.
type State struct {
	Phase    Phase `json:"phase"`
	Expanded bool  `json:"expanded"`
}

func (s State) String() string {
	if s.Phase == PhaseIdle {
		if s.Expanded {
			return "idle(expanded)"
		}
		return "idle(collapsed)"
	}
	return s.Phase.String()
}

// Frame is everything a host needs to draw one refresh of the card.
type Frame struct {
	// Session is the transition that produced the frame, or the zero UUID
	// for frames published at rest.
	Session   uuid.UUID `json:"session"`
	Direction Direction `json:"direction,omitempty"`
	State     State     `json:"state"`

	Elapsed      time.Duration `json:"elapsed"`
	TimeProgress float64       `json:"time_progress"`
	// Progress is TimeProgress after easing.
	Progress float64 `json:"progress"`
	Channels Values  `json:"channels,omitempty"`

	Layout Layout `json:"layout"`
	// Holes is empty at rest and while the holes are fully closed.
	Holes   []Hole  `json:"holes,omitempty"`
	Outline Outline `json:"-"`

	ContentOpacity float64 `json:"content_opacity"`
	// IndicatorAngle is the chevron's rotation in radians. It is 0 when
	// collapsed and −π when expanded.
	IndicatorAngle float64 `json:"indicator_angle"`

	// Done is set on the last frame of a transition.
	Done bool `json:"done"`
}

// restFrame returns the frame of a card at rest.
func restFrame(g CardGeometry, expanded bool) Frame {
	f := Frame{
		State:          State{Phase: PhaseIdle, Expanded: expanded},
		Layout:         g.RestLayout(expanded),
		Outline:        g.RestOutline(expanded),
		ContentOpacity: 0,
		IndicatorAngle: 0,
	}
	if expanded {
		f.ContentOpacity = 1
		f.IndicatorAngle = -math.Pi
	}
	return f
}
