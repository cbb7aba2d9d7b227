package beat

import (
	"math/rand/v2"
	"time"
)

// Source is polled once per frame. OnBeat returns true at most once per
// detected beat and false otherwise.
type Source interface {
	OnBeat() bool
}

// Scheduler is a fixed-tempo metronome.
type Scheduler struct {
	BPM  float64
	now  func() time.Time
	last time.Time
}

func NewScheduler(bpm float64) *Scheduler {
	return &Scheduler{
		BPM: bpm,
		now: time.Now,
	}
}

// OnBeat fires on the first call and then once every 60/BPM seconds.
func (s *Scheduler) OnBeat() bool {
	if s.BPM <= 0 {
		return false
	}
	spb := time.Duration(float64(time.Minute) / s.BPM)
	now := s.now()
	if s.last.IsZero() {
		s.last = now
		return true
	}
	if now.Sub(s.last) < spb {
		return false
	}
	s.last = now
	return true
}

// Reset makes the next OnBeat fire immediately.
func (s *Scheduler) Reset() { s.last = time.Time{} }

const (
	analyzerPeriod = 500 * time.Millisecond
	analyzerJitter = 100 * time.Millisecond
)

// Analyzer stands in for audio beat detection: it reports a beat roughly
// every 500ms with up to 100ms of jitter either way.
type Analyzer struct {
	now  func() time.Time
	rng  *rand.Rand
	next time.Time
}

func NewAnalyzer(seed uint64) *Analyzer {
	return &Analyzer{
		now: time.Now,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (a *Analyzer) interval() time.Duration {
	return analyzerPeriod - analyzerJitter + time.Duration(a.rng.Int64N(int64(2*analyzerJitter)+1))
}

func (a *Analyzer) OnBeat() bool {
	now := a.now()
	if a.next.IsZero() {
		a.next = now.Add(a.interval())
		return false
	}
	if now.Before(a.next) {
		return false
	}
	a.next = now.Add(a.interval())
	return true
}
