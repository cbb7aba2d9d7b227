package overlay

import (
	"math"
	"testing"
	"time"

	"github.com/ingyamilmolinar/keyoverlay/core/easing"
	"github.com/ingyamilmolinar/keyoverlay/core/model"
)

func trackerFor(skin *model.Skin) *Tracker {
	t := newTracker(model.KeySpec{Label: "D", Binding: model.Key("D")}, 25, 505, 70, skin)
	return &t
}

func TestPressScaleMidAnimation(t *testing.T) {
	skin := model.DefaultSkin()
	tr := trackerFor(&skin)

	if !tr.advance(true, frame, &skin) {
		t.Fatalf("expected just-pressed on first press frame")
	}
	if tr.Phase() != AnimatingToPressed || tr.Scale() != 1 {
		t.Fatalf("expected press phase from scale 1, got %v %v", tr.Phase(), tr.Scale())
	}
	if tr.Fill() != skin.KeyPressed {
		t.Fatalf("fill must switch to pressed colour immediately")
	}
	tr.advance(true, 75*time.Millisecond, &skin)
	if math.Abs(tr.Scale()-1.13125) > 1e-9 {
		t.Fatalf("expected scale 1.13125, got %v", tr.Scale())
	}
	tr.advance(true, 100*time.Millisecond, &skin)
	if tr.Phase() != Idle || tr.Scale() != 1.15 {
		t.Fatalf("expected to settle at 1.15, got %v %v", tr.Phase(), tr.Scale())
	}
	if tr.PressCount() != 1 {
		t.Fatalf("expected one press, got %d", tr.PressCount())
	}
}

func TestEarlyReleaseStartsFromPartialScale(t *testing.T) {
	skin := model.DefaultSkin()
	tr := trackerFor(&skin)
	tr.advance(true, frame, &skin)
	tr.advance(true, 50*time.Millisecond, &skin)
	partial := tr.Scale()
	want := 1 + (1-math.Pow(1-1.0/3, 3))*0.15
	if math.Abs(partial-want) > 1e-9 || math.Abs(partial-1.1056) > 1e-3 {
		t.Fatalf("expected partial scale ≈1.1056, got %v", partial)
	}

	tr.advance(false, frame, &skin)
	if tr.Phase() != AnimatingToReleased {
		t.Fatalf("expected release phase, got %v", tr.Phase())
	}
	if tr.startScale != partial || tr.Scale() != partial {
		t.Fatalf("release must start from %v, got start %v scale %v", partial, tr.startScale, tr.Scale())
	}
	if tr.Fill() != skin.KeyDefault {
		t.Fatalf("fill must switch back to default colour immediately")
	}
	tr.advance(false, 10*time.Millisecond, &skin)
	if tr.Scale() >= partial || tr.Scale() <= 1 {
		t.Fatalf("expected scale between 1 and %v, got %v", partial, tr.Scale())
	}
}

func TestScaleNeverOvershoots(t *testing.T) {
	for _, kind := range []easing.Kind{easing.Linear, easing.EaseOutCubic, easing.EaseOutExpo} {
		for _, target := range []float64{1.15, 0.8} {
			skin := model.DefaultSkin()
			skin.Animation.PressEasing = kind
			skin.Animation.ReleaseEasing = kind
			skin.Animation.TargetPressScale = target
			tr := trackerFor(&skin)
			lo, hi := math.Min(1, target), math.Max(1, target)
			pattern := []bool{true, true, true, false, false, true, false, true, true, true, true, true, false}
			for i := 0; i < 400; i++ {
				tr.advance(pattern[i%len(pattern)], 7*time.Millisecond, &skin)
				if s := tr.Scale(); s < lo-1e-12 || s > hi+1e-12 {
					t.Fatalf("%v target %v: scale %v outside [%v,%v] at frame %d", kind, target, s, lo, hi, i)
				}
			}
		}
	}
}

func TestZeroDeltaIsIdempotent(t *testing.T) {
	skin := model.DefaultSkin()
	tr := trackerFor(&skin)
	tr.advance(true, frame, &skin)
	tr.advance(true, 40*time.Millisecond, &skin)
	scale, phase := tr.Scale(), tr.Phase()
	for i := 0; i < 10; i++ {
		tr.advance(true, 0, &skin)
		if tr.Scale() != scale || tr.Phase() != phase {
			t.Fatalf("advance(0) changed state: %v/%v -> %v/%v", scale, phase, tr.Scale(), tr.Phase())
		}
	}
}

func TestDisabledAnimationSnapsToSameSteadyState(t *testing.T) {
	on := model.DefaultSkin()
	off := on
	off.Animation.Enabled = false

	a := trackerFor(&on)
	a.advance(true, frame, &on)
	for i := 0; i < 30; i++ {
		a.advance(true, frame, &on)
	}
	b := trackerFor(&off)
	b.advance(true, frame, &off)
	if b.Phase() != Idle {
		t.Fatalf("disabled animation must not enter a phase")
	}
	if a.Scale() != b.Scale() {
		t.Fatalf("pressed steady state differs: %v vs %v", a.Scale(), b.Scale())
	}

	for i := 0; i < 30; i++ {
		a.advance(false, frame, &on)
	}
	b.advance(false, frame, &off)
	if a.Scale() != 1 || b.Scale() != 1 {
		t.Fatalf("released steady state differs: %v vs %v", a.Scale(), b.Scale())
	}
}

func TestZeroDurationCompletesOnTransition(t *testing.T) {
	skin := model.DefaultSkin()
	skin.Animation.PressDuration = 0
	tr := trackerFor(&skin)
	tr.advance(true, frame, &skin)
	if tr.Phase() != Idle || tr.Scale() != skin.Animation.TargetPressScale {
		t.Fatalf("expected immediate settle, got %v %v", tr.Phase(), tr.Scale())
	}
}

func TestAnchorIsStable(t *testing.T) {
	skin := model.DefaultSkin()
	tr := trackerFor(&skin)
	cx, cy := tr.Center()
	tr.advance(true, frame, &skin)
	tr.advance(true, 75*time.Millisecond, &skin)
	if x, y := tr.Center(); x != cx || y != cy {
		t.Fatalf("centre moved from (%v,%v) to (%v,%v)", cx, cy, x, y)
	}
	x, _, w, _ := tr.Rect()
	if math.Abs((x+w/2)-cx) > 1e-9 || w <= 70 {
		t.Fatalf("scaled rect not centred on anchor: x=%v w=%v", x, w)
	}
}
