package fluidcard

import (
	"fmt"
	"math"
	"time"
)

// Easing names the two inner control points of a cubic timing curve running
// from (0, 0) to (1, 1).
type Easing struct {
	P1 Point `mapstructure:"p1" yaml:"p1" json:"p1"`
	P2 Point `mapstructure:"p2" yaml:"p2" json:"p2"`
}

var (
	// Linear maps time to progress unchanged.
	Linear = Easing{Pt(1.0/3.0, 1.0/3.0), Pt(2.0/3.0, 2.0/3.0)}
	// EaseIn starts slowly and ends at full speed.
	EaseIn = Easing{Pt(0.42, 0), Pt(1, 1)}
	// EaseOut starts at full speed and decelerates.
	EaseOut = Easing{Pt(0, 0), Pt(0.58, 1)}
	// EaseInOut accelerates and then decelerates.
	EaseInOut = Easing{Pt(0.42, 0), Pt(0.58, 1)}
)

// Curve returns the timing curve for e with a solver tolerance suited to an
// animation of the given duration.
func (e Easing) Curve(duration time.Duration) (TimingCurve, error) {
	return NewTimingCurve(e.P1, e.P2, duration)
}

func (e Easing) String() string {
	return fmt.Sprintf("cubic-bezier(%g, %g, %g, %g)", e.P1.X, e.P1.Y, e.P2.X, e.P2.Y)
}

const (
	newtonIterations = 8
	// Below this slope Newton's method no longer converges usefully.
	minSlope = 1e-6
	// Bisection halves the bracket each step; 64 steps exhaust float64.
	maxBisections = 64
	// Residual that polish settles for. Far below the spacing of any
	// sampled inputs, and above float64 rounding of x(s).
	polishTolerance = 1e-12
)

// TimingCurve evaluates a cubic Bézier timing function. The zero value is not
// usable; construct one with [NewTimingCurve].
//
// A TimingCurve is an immutable value and safe for concurrent use.
type TimingCurve struct {
	ax, bx, cx float64
	ay, by, cy float64
	epsilon    float64
}

// NewTimingCurve returns the timing curve with control points p1 and p2. The
// duration only determines the solver tolerance, 1/(200·seconds), at which an
// initial estimate is accepted. Estimates are then polished, so Evaluate is
// non-decreasing in t at any duration.
//
// The x coordinates of the control points must lie in [0, 1] so that x(s) is
// monotonic, and the duration must be positive.
func NewTimingCurve(p1, p2 Point, duration time.Duration) (TimingCurve, error) {
	if duration <= 0 {
		return TimingCurve{}, fmt.Errorf("%w: timing curve duration %s is not positive", ErrInvalidConfiguration, duration)
	}
	if p1.IsNaN() || p2.IsNaN() || p1.IsInf() || p2.IsInf() {
		return TimingCurve{}, fmt.Errorf("%w: timing curve control points %s, %s are not finite", ErrInvalidConfiguration, p1, p2)
	}
	if p1.X < 0 || p1.X > 1 || p2.X < 0 || p2.X > 1 {
		return TimingCurve{}, fmt.Errorf("%w: timing curve control point x values %g, %g outside [0, 1]", ErrInvalidConfiguration, p1.X, p2.X)
	}

	var tc TimingCurve
	tc.cx = 3.0 * p1.X
	tc.bx = 3.0*(p2.X-p1.X) - tc.cx
	tc.ax = 1.0 - tc.cx - tc.bx
	tc.cy = 3.0 * p1.Y
	tc.by = 3.0*(p2.Y-p1.Y) - tc.cy
	tc.ay = 1.0 - tc.cy - tc.by
	tc.epsilon = 1.0 / (200.0 * duration.Seconds())
	return tc, nil
}

// MustTimingCurve is like [NewTimingCurve] but panics on invalid input.
func MustTimingCurve(p1, p2 Point, duration time.Duration) TimingCurve {
	tc, err := NewTimingCurve(p1, p2, duration)
	if err != nil {
		panic(err)
	}
	return tc
}

// Epsilon returns the solver tolerance.
func (tc TimingCurve) Epsilon() float64 { return tc.epsilon }

func (tc TimingCurve) sampleX(s float64) float64 {
	return ((tc.ax*s+tc.bx)*s + tc.cx) * s
}

func (tc TimingCurve) sampleY(s float64) float64 {
	return ((tc.ay*s+tc.by)*s + tc.cy) * s
}

func (tc TimingCurve) sampleDerivativeX(s float64) float64 {
	return (3.0*tc.ax*s+2.0*tc.bx)*s + tc.cx
}

// solveX finds the curve parameter s with x(s) = x. Newton's method from
// s = x is accepted once x(s) is within the tolerance; if it stalls,
// bisection on [0, 1] takes over. Either estimate is then polished so that
// solutions for increasing x never move backwards.
func (tc TimingCurve) solveX(x float64) float64 {
	s, ok := tc.newton(x)
	if !ok {
		s = tc.bisect(x)
	}
	return tc.polish(x, s)
}

func (tc TimingCurve) newton(x float64) (float64, bool) {
	s := x
	for range newtonIterations {
		x2 := tc.sampleX(s) - x
		if math.Abs(x2) < tc.epsilon {
			return s, true
		}
		d := tc.sampleDerivativeX(s)
		if math.Abs(d) < minSlope {
			break
		}
		s -= x2 / d
	}
	return 0, false
}

func (tc TimingCurve) bisect(x float64) float64 {
	lo, hi := 0.0, 1.0
	s := min(max(x, lo), hi)
	for range maxBisections {
		x2 := tc.sampleX(s)
		if math.Abs(x2-x) < tc.epsilon {
			return s
		}
		if x > x2 {
			lo = s
		} else {
			hi = s
		}
		s = lo + (hi-lo)*0.5
	}
	return s
}

// polish narrows s to within polishTolerance of the root. x(s) is
// non-decreasing on [0, 1], so the sign of the residual brackets the root;
// Newton steps that leave the bracket are replaced by halving it.
func (tc TimingCurve) polish(x, s float64) float64 {
	lo, hi := 0.0, 1.0
	s = min(max(s, lo), hi)
	for range maxBisections {
		x2 := tc.sampleX(s) - x
		if math.Abs(x2) <= polishTolerance {
			return s
		}
		if x2 < 0 {
			lo = s
		} else {
			hi = s
		}
		next := s - x2/tc.sampleDerivativeX(s)
		if !(next > lo && next < hi) {
			next = lo + (hi-lo)*0.5
		}
		if next == s {
			return s
		}
		s = next
	}
	return s
}

// Evaluate returns the eased progress for the time fraction t. Inputs outside
// [0, 1] are clamped; Evaluate(0) is exactly 0 and Evaluate(1) exactly 1.
func (tc TimingCurve) Evaluate(t float64) float64 {
	if !(t > 0) {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return tc.sampleY(tc.solveX(t))
}
