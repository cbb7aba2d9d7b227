package engine

import (
	"context"
	"time"

	"github.com/ingyamilmolinar/keyoverlay/core/beat"
	game_log "github.com/ingyamilmolinar/keyoverlay/internal/log"
)

// Event is one beat observed by the engine goroutine.
type Event struct {
	At time.Time
}

const (
	tickInterval = 4 * time.Millisecond
	// maxBeatAge is how long an unconsumed beat stays meaningful. Anything
	// older was missed by the frame loop and is dropped, not replayed.
	maxBeatAge = 250 * time.Millisecond
)

// Engine polls a beat source on its own goroutine so detection does not
// depend on the frame rate. The frame loop consumes beats through OnBeat.
// At most one beat is pending at a time; a newer beat replaces it.
type Engine struct {
	src    beat.Source
	logger *game_log.Logger
	Events chan Event
	now    func() time.Time
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// New starts an engine polling src until ctx is cancelled or Close is called.
func New(ctx context.Context, src beat.Source, logger *game_log.Logger) *Engine {
	ctx, cancel := context.WithCancel(ctx)
	e := &Engine{
		src:    src,
		logger: logger,
		Events: make(chan Event, 1),
		now:    time.Now,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go e.run()
	return e
}

func (e *Engine) run() {
	defer close(e.done)
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if !e.src.OnBeat() {
				continue
			}
			e.post(Event{At: e.now()})
		case <-e.ctx.Done():
			return
		}
	}
}

// post makes ev the pending beat, discarding an unconsumed older one.
func (e *Engine) post(ev Event) {
	for {
		select {
		case e.Events <- ev:
			return
		default:
		}
		select {
		case <-e.Events:
			e.logger.Debugf("[ENGINE] unconsumed beat replaced")
		default:
		}
	}
}

// OnBeat consumes the pending beat without blocking. A beat older than
// maxBeatAge reads as no beat.
func (e *Engine) OnBeat() bool {
	select {
	case ev := <-e.Events:
		return e.now().Sub(ev.At) <= maxBeatAge
	default:
		return false
	}
}

// Close terminates the engine goroutine and waits for it to exit.
func (e *Engine) Close() {
	e.cancel()
	<-e.done
}
