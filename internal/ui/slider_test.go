package ui

import (
	"image"
	"testing"
)

func TestSliderClamp(t *testing.T) {
	s := NewSlider(0, 1, 0, 0)
	s.SetRect(image.Rect(0, 0, 101, 10))
	// start drag inside
	if !s.Handle(1, 5, true) {
		t.Fatalf("expected handle to start drag")
	}
	// drag beyond max width
	s.Handle(150, 5, true)
	if s.Value != 1 {
		t.Fatalf("expected value clamped to 1 got %f", s.Value)
	}
	s.Handle(-20, 5, true)
	if s.Value != 0 {
		t.Fatalf("expected value clamped to 0 got %f", s.Value)
	}
	// release
	if !s.Handle(150, 5, false) || s.Dragging() {
		t.Fatalf("expected release to end the drag")
	}
	if s.Handle(150, 5, false) {
		t.Fatalf("idle release must not be consumed")
	}
}

func TestSliderRangeAndStep(t *testing.T) {
	s := NewSlider(30, 150, 5, 70)
	s.SetRect(image.Rect(10, 0, 131, 10)) // 120px of travel
	if s.Ratio() != (70.0-30)/120 {
		t.Fatalf("unexpected ratio %v", s.Ratio())
	}
	s.Handle(10+61, 5, true)
	if s.Value != 90 {
		t.Fatalf("expected snapped value 90, got %v", s.Value)
	}
	s.Handle(10+61, 5, false)
}

func TestSliderEmptyRangeRatioIsZero(t *testing.T) {
	s := NewSlider(5, 5, 0, 5)
	if s.Ratio() != 0 {
		t.Fatalf("expected zero ratio for an empty range, got %v", s.Ratio())
	}
	s.SetRect(image.Rect(0, 0, 1, 1))
	s.Handle(0, 0, true)
	if s.Value != 5 {
		t.Fatalf("expected value pinned to 5, got %v", s.Value)
	}
}
