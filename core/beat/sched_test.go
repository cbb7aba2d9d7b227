package beat

import (
	"testing"
	"time"
)

func TestSchedulerFiresEveryBeat(t *testing.T) {
	now := time.Now()
	s := NewScheduler(60)
	s.SetNowFunc(func() time.Time { return now })

	fired := 0
	for i := 0; i < 40; i++ { // 10 seconds in 250ms steps
		if s.OnBeat() {
			fired++
		}
		now = now.Add(250 * time.Millisecond)
	}
	if fired != 10 {
		t.Fatalf("expected 10 beats in 10s at 60 BPM, got %d", fired)
	}
}

func TestFirstPollFiresImmediately(t *testing.T) {
	now := time.Now()
	s := NewScheduler(120)
	s.SetNowFunc(func() time.Time { return now })
	if !s.OnBeat() {
		t.Fatalf("expected first poll to report a beat")
	}
	if s.OnBeat() {
		t.Fatalf("expected no second beat without time passing")
	}
	s.Reset()
	if !s.OnBeat() {
		t.Fatalf("expected beat after reset")
	}
}

func TestSchedulerSkipsWhenBPMZero(t *testing.T) {
	now := time.Now()
	s := NewScheduler(0)
	s.SetNowFunc(func() time.Time { now = now.Add(time.Second); return now })
	for i := 0; i < 5; i++ {
		if s.OnBeat() {
			t.Fatalf("expected no beats when BPM=0")
		}
	}
}

func TestAnalyzerIntervalsStayInRange(t *testing.T) {
	now := time.Now()
	a := NewAnalyzer(7)
	a.SetNowFunc(func() time.Time { return now })
	if a.OnBeat() {
		t.Fatalf("analyzer must not fire on its first poll")
	}
	last := now
	beats := 0
	for i := 0; i < 5000; i++ { // 5s at 1ms
		now = now.Add(time.Millisecond)
		if !a.OnBeat() {
			continue
		}
		gap := now.Sub(last)
		if gap < 400*time.Millisecond || gap > 601*time.Millisecond {
			t.Fatalf("beat gap %v outside 500±100ms", gap)
		}
		last = now
		beats++
	}
	if beats < 8 || beats > 12 {
		t.Fatalf("expected about 10 beats in 5s, got %d", beats)
	}
}
