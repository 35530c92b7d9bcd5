package services

import "time"

// Latency is an artificial delay applied before some mutations so that the
// dashboard shows a "saving" state. Wait cannot be cancelled: the mutation
// that follows always runs, even if the caller has gone away.
type Latency struct {
	d     time.Duration
	sleep func(time.Duration)
}

func NewLatency(d time.Duration) Latency {
	return Latency{d: d, sleep: time.Sleep}
}

func (l Latency) Duration() time.Duration { return l.d }

func (l Latency) Wait() {
	if l.d <= 0 || l.sleep == nil {
		return
	}
	l.sleep(l.d)
}
