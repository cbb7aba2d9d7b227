package easing

import (
	"math"
	"testing"
)

func TestEaseKnownValues(t *testing.T) {
	cases := []struct {
		kind Kind
		t    float64
		want float64
	}{
		{Linear, 0.25, 0.25},
		{EaseOutCubic, 0.5, 0.875},
		{EaseOutCubic, 1, 1},
		{EaseOutExpo, 0, 0},
		{EaseOutExpo, 0.5, 1 - math.Pow(2, -5)},
		{EaseOutExpo, 1, 1},
	}
	for _, c := range cases {
		if got := Ease(c.kind, c.t); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("Ease(%v, %v) = %v, want %v", c.kind, c.t, got, c.want)
		}
	}
}

func TestEaseClampsInput(t *testing.T) {
	for _, k := range []Kind{Linear, EaseOutCubic, EaseOutExpo, Kind(42)} {
		if got := Ease(k, -3); got != 0 {
			t.Fatalf("%v: expected 0 for negative t, got %v", k, got)
		}
		if got := Ease(k, 7); got != 1 {
			t.Fatalf("%v: expected 1 for t>1, got %v", k, got)
		}
		if got := Ease(k, math.NaN()); got != 0 {
			t.Fatalf("%v: expected 0 for NaN, got %v", k, got)
		}
	}
}

func TestEaseMonotonic(t *testing.T) {
	for _, k := range []Kind{Linear, EaseOutCubic, EaseOutExpo} {
		prev := 0.0
		for i := 0; i <= 100; i++ {
			v := Ease(k, float64(i)/100)
			if v < prev || v < 0 || v > 1 {
				t.Fatalf("%v not monotonic in [0,1] at step %d: %v after %v", k, i, v, prev)
			}
			prev = v
		}
	}
}

func TestParseFallsBackToLinear(t *testing.T) {
	if Parse("EaseOutCubic") != EaseOutCubic || Parse("easeoutexpo") != EaseOutExpo {
		t.Fatalf("known names did not parse")
	}
	if Parse("EaseInOutBounce") != Linear || Parse("") != Linear {
		t.Fatalf("unknown names must resolve to Linear")
	}
	if Ease(Kind(99), 0.3) != 0.3 {
		t.Fatalf("unknown kind must behave like Linear")
	}
}
