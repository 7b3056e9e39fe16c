package fluidcard

import (
	"errors"
	"math"
	"testing"
	"time"
)

var standardEasings = []struct {
	name string
	e    Easing
}{
	{"linear", Linear},
	{"ease-in", EaseIn},
	{"ease-out", EaseOut},
	{"ease-in-out", EaseInOut},
}

func TestTimingCurveEndpoints(t *testing.T) {
	for _, tt := range standardEasings {
		t.Run(tt.name, func(t *testing.T) {
			tc, err := tt.e.Curve(600 * time.Millisecond)
			if err != nil {
				t.Fatal(err)
			}
			for _, in := range []float64{0, -1, math.Inf(-1), math.NaN()} {
				if got := tc.Evaluate(in); got != 0 {
					t.Errorf("Evaluate(%v) = %v, want 0", in, got)
				}
			}
			for _, in := range []float64{1, 1.5, math.Inf(1)} {
				if got := tc.Evaluate(in); got != 1 {
					t.Errorf("Evaluate(%v) = %v, want 1", in, got)
				}
			}
		})
	}
}

func TestTimingCurveReferenceValues(t *testing.T) {
	tests := []struct {
		name string
		e    Easing
		want [3]float64
	}{
		{"ease-in-out", EaseInOut, [3]float64{0.129162, 0.5, 0.870838}},
		{"ease-in", EaseIn, [3]float64{0.093465, 0.315357, 0.621862}},
		{"ease-out", EaseOut, [3]float64{0.378138, 0.684643, 0.906535}},
	}
	for _, tt := range tests {
		for _, d := range []time.Duration{350 * time.Millisecond, 600 * time.Millisecond, time.Minute} {
			t.Run(tt.name+"/"+d.String(), func(t *testing.T) {
				tc := MustTimingCurve(tt.e.P1, tt.e.P2, d)
				for i, in := range []float64{0.25, 0.5, 0.75} {
					if got := tc.Evaluate(in); !near(got, tt.want[i], 1e-5) {
						t.Errorf("Evaluate(%v) = %v, want %v", in, got, tt.want[i])
					}
				}
			})
		}
	}
}

func TestTimingCurveLinearIsIdentity(t *testing.T) {
	tc := MustTimingCurve(Linear.P1, Linear.P2, time.Second)
	for i := range 101 {
		in := float64(i) / 100
		if got := tc.Evaluate(in); !near(got, in, 1e-12) {
			t.Errorf("Evaluate(%v) = %v", in, got)
		}
	}
}

func TestTimingCurveMonotonic(t *testing.T) {
	for _, d := range []time.Duration{350 * time.Millisecond, 600 * time.Millisecond, 2 * time.Second, time.Minute} {
		for _, tt := range standardEasings {
			tc := MustTimingCurve(tt.e.P1, tt.e.P2, d)
			const n = 100
			prev := tc.Evaluate(0)
			for i := 1; i <= n; i++ {
				got := tc.Evaluate(float64(i) / n)
				if got < prev {
					t.Errorf("%s at %s: Evaluate(%v) = %v < %v", tt.name, d, float64(i)/n, got, prev)
				}
				prev = got
			}
		}
	}
}

func TestTimingCurveSolverConverges(t *testing.T) {
	curves := []Easing{
		EaseInOut,
		// Vertical tangent in the middle forces the bisection fallback.
		{Pt(1, 0), Pt(0, 1)},
		// Flat start.
		{Pt(0, 0.5), Pt(0, 1)},
	}
	for _, e := range curves {
		tc := MustTimingCurve(e.P1, e.P2, time.Second)
		for i := range 1001 {
			x := float64(i) / 1000
			s := tc.solveX(x)
			if math.Abs(tc.sampleX(s)-x) >= tc.Epsilon() {
				t.Errorf("%s: solveX(%v) = %v, x(s) = %v", e, x, s, tc.sampleX(s))
			}
			if y := tc.Evaluate(x); math.IsNaN(y) || y < -1e-9 || y > 1+1e-9 {
				t.Errorf("%s: Evaluate(%v) = %v", e, x, y)
			}
		}
	}
}

func TestTimingCurveDeterministic(t *testing.T) {
	a := MustTimingCurve(EaseInOut.P1, EaseInOut.P2, 600*time.Millisecond)
	b := MustTimingCurve(EaseInOut.P1, EaseInOut.P2, 600*time.Millisecond)
	for i := range 100 {
		in := float64(i) / 99
		if a.Evaluate(in) != b.Evaluate(in) || a.Evaluate(in) != a.Evaluate(in) {
			t.Fatalf("Evaluate(%v) isn't deterministic", in)
		}
	}
}

func TestTimingCurveEpsilon(t *testing.T) {
	tc := MustTimingCurve(EaseIn.P1, EaseIn.P2, 600*time.Millisecond)
	if got, want := tc.Epsilon(), 1.0/120; !near(got, want, 1e-15) {
		t.Errorf("got epsilon %v, want %v", got, want)
	}
}

func TestNewTimingCurveErrors(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
		d      time.Duration
	}{
		{"zero duration", EaseIn.P1, EaseIn.P2, 0},
		{"negative duration", EaseIn.P1, EaseIn.P2, -time.Second},
		{"x below 0", Pt(-0.1, 0), Pt(1, 1), time.Second},
		{"x above 1", Pt(0, 0), Pt(1.1, 1), time.Second},
		{"NaN", Pt(math.NaN(), 0), Pt(1, 1), time.Second},
		{"infinite y", Pt(0, math.Inf(1)), Pt(1, 1), time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimingCurve(tt.p1, tt.p2, tt.d)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("got error %v, want ErrInvalidConfiguration", err)
			}
		})
	}

	// y values outside [0, 1] are allowed and overshoot.
	if _, err := NewTimingCurve(Pt(0.3, -0.5), Pt(0.7, 1.5), time.Second); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
