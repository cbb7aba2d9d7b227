package beat

import "time"

// SetNowFunc replaces the clock of a Scheduler. Hosts use it to drive beats
// from a shared frame clock; tests use it to step time deterministically.
func (s *Scheduler) SetNowFunc(f func() time.Time) {
	s.now = f
}

// SetNowFunc replaces the clock of an Analyzer.
func (a *Analyzer) SetNowFunc(f func() time.Time) {
	a.now = f
}
