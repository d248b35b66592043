//go:build !tinygo

package hal

import "time"

// hostTime is stepped by the host runners, one tick per step.
type hostTime struct {
	ch     chan uint64
	seq    uint64
	period time.Duration
}

func newHostTime(period time.Duration) *hostTime {
	if period <= 0 {
		period = DefaultTickPeriod
	}
	return &hostTime{ch: make(chan uint64, 16), period: period}
}

func (t *hostTime) Ticks() <-chan uint64  { return t.ch }
func (t *hostTime) Period() time.Duration { return t.period }

func (t *hostTime) step() uint64 {
	t.seq++
	select {
	case t.ch <- t.seq:
	default:
	}
	return t.seq
}
