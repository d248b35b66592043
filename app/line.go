package app

import "beacon/hal"

// line is the keyed output: the pin plus an optional sidetone.
type line struct {
	out    hal.LED
	tone   hal.Tone
	toneHz uint32
}

func (l *line) High() {
	l.out.High()
	if l.tone != nil {
		_ = l.tone.Start(l.toneHz)
	}
}

func (l *line) Low() {
	l.out.Low()
	if l.tone != nil {
		_ = l.tone.Stop()
	}
}
