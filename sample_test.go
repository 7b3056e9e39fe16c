package fluidcard

import (
	"errors"
	"math"
	"testing"
)

func TestSample(t *testing.T) {
	for _, dir := range []Direction{Expand, Collapse} {
		t.Run(dir.String(), func(t *testing.T) {
			frames, err := Sample(DefaultConfig(), 0, dir, 60)
			if err != nil {
				t.Fatal(err)
			}
			if len(frames) < 20 {
				t.Fatalf("got only %d frames", len(frames))
			}
			diff(t, 0.0, frames[0].TimeProgress)
			last := frames[len(frames)-1]
			if !last.Done {
				t.Error("last frame isn't terminal")
			}
			diff(t, State{Phase: PhaseIdle, Expanded: dir == Expand}, last.State)

			session := frames[0].Session
			for i, f := range frames {
				if f.Session != session {
					t.Errorf("frame %d belongs to session %s, want %s", i, f.Session, session)
				}
				if i < len(frames)-1 && f.Done {
					t.Errorf("frame %d is marked done", i)
				}
				if i > 0 && f.Elapsed <= frames[i-1].Elapsed {
					t.Errorf("frame %d doesn't advance time", i)
				}
				if f.Outline.IsNaN() {
					t.Errorf("frame %d has NaNs in its outline", i)
				}
			}
		})
	}
}

func TestSampleWidth(t *testing.T) {
	frames, err := Sample(DefaultConfig(), 400, Expand, 30)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range frames {
		diff(t, 400.0, f.Layout.Top.X1)
	}
}

func TestSampleErrors(t *testing.T) {
	for _, fps := range []float64{0, -1, MaxSampleRate + 1, math.NaN()} {
		if _, err := Sample(DefaultConfig(), 0, Expand, fps); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("got error %v for %v fps", err, fps)
		}
	}
	if _, err := Sample(DefaultConfig(), 0, Direction(0), 60); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("got error %v for an unknown direction", err)
	}
	for _, w := range []float64{-5, MaxWidth + 1} {
		if _, err := Sample(DefaultConfig(), w, Expand, 60); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("got error %v for width %v", err, w)
		}
		if _, err := SampleAt(DefaultConfig(), w, Expand, 0.5); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("got error %v for width %v", err, w)
		}
	}
	for _, ts := range []float64{-0.1, 1.5, math.NaN()} {
		if _, err := SampleAt(DefaultConfig(), 0, Expand, ts); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("got error %v for t=%v", err, ts)
		}
	}
}

func TestSampleAt(t *testing.T) {
	f, err := SampleAt(DefaultConfig(), 0, Expand, 0)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 0.0, f.Progress)
	if f.Done {
		t.Error("frame at t=0 is terminal")
	}

	f, err = SampleAt(DefaultConfig(), 0, Expand, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !f.Done {
		t.Error("frame at t=1 isn't terminal")
	}

	// The content has faded out by the middle of a collapse.
	f, err = SampleAt(DefaultConfig(), 0, Collapse, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 0.5, f.Progress, approx(1e-6))
	diff(t, 0.0, f.ContentOpacity)
	diff(t, -math.Pi/2, f.IndicatorAngle, approx(1e-9))
}
