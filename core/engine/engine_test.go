package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	game_log "github.com/ingyamilmolinar/keyoverlay/internal/log"
)

type countedSource struct {
	remaining atomic.Int32
}

func (c *countedSource) OnBeat() bool {
	return c.remaining.Add(-1) >= 0
}

func TestEngineDeliversEachBeatOnce(t *testing.T) {
	src := &countedSource{}
	src.remaining.Store(3)
	e := New(context.Background(), src, game_log.Discard())
	defer e.Close()

	got := 0
	deadline := time.Now().Add(2 * time.Second)
	for got < 3 && time.Now().Before(deadline) {
		if e.OnBeat() {
			got++
		}
		time.Sleep(time.Millisecond)
	}
	if got == 0 || got > 3 {
		t.Fatalf("expected 1..3 beats, got %d", got)
	}
	time.Sleep(20 * time.Millisecond)
	if e.OnBeat() {
		t.Fatalf("expected no further beats")
	}
}

func TestEngineStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	e := New(ctx, &countedSource{}, game_log.Discard())
	cancel()
	select {
	case <-e.done:
	case <-time.After(time.Second):
		t.Fatalf("engine goroutine did not exit after cancel")
	}
	e.Close()
}

func TestUnconsumedBeatsAreNotReplayed(t *testing.T) {
	src := &countedSource{}
	src.remaining.Store(20)
	e := New(context.Background(), src, game_log.Discard())
	defer e.Close()

	// nobody polls while the source fires and for a while after
	time.Sleep(2*maxBeatAge + 100*time.Millisecond)

	got := 0
	for i := 0; i < 16; i++ {
		if e.OnBeat() {
			got++
		}
	}
	if got > 1 {
		t.Fatalf("expected at most one beat after idling, got %d", got)
	}
}

func TestPendingBeatIsLatestWins(t *testing.T) {
	e := &Engine{Events: make(chan Event, 1), logger: game_log.Discard()}
	clock := time.Unix(100, 0)
	e.now = func() time.Time { return clock }

	e.post(Event{At: clock.Add(-time.Second)})
	e.post(Event{At: clock})
	if len(e.Events) != 1 {
		t.Fatalf("pending beats = %d, want 1", len(e.Events))
	}
	if !e.OnBeat() {
		t.Fatalf("fresh beat not reported")
	}
	if e.OnBeat() {
		t.Fatalf("beat reported twice")
	}

	e.post(Event{At: clock.Add(-maxBeatAge - time.Millisecond)})
	if e.OnBeat() {
		t.Fatalf("stale beat reported")
	}
}
