// Package keyer turns packed Morse codes into timed on/off levels.
//
// A Transmitter is driven by Tick, called once per fixed period by a timer
// callback, a headless ticker or a test loop.
package keyer

import (
	"fmt"

	"beacon/morse"
)

// Output is the line the transmitter keys.
type Output interface {
	High()
	Low()
}

// Phase is the transmitter state.
type Phase uint8

const (
	// Idle waits for a code in the slot.
	Idle Phase = iota
	// PulseOn holds the line high for a dot or dash.
	PulseOn
	// Pause holds the line low for a gap or a word silence.
	Pause
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case PulseOn:
		return "on"
	case Pause:
		return "pause"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Transmitter drains a Slot one unit at a time.
type Transmitter struct {
	slot      *Slot
	out       Output
	timing    morse.Timing
	phase     Phase
	remaining uint16
	high      bool
}

// New returns an idle transmitter. The output is driven low.
func New(slot *Slot, out Output, timing morse.Timing) (*Transmitter, error) {
	if slot == nil {
		return nil, fmt.Errorf("keyer: nil slot")
	}
	if out == nil {
		return nil, fmt.Errorf("keyer: nil output")
	}
	if err := timing.Validate(); err != nil {
		return nil, err
	}
	t := &Transmitter{slot: slot, out: out, timing: timing}
	t.setLevel(false)
	return t, nil
}

// Phase returns the current state.
func (t *Transmitter) Phase() Phase { return t.phase }

// Remaining returns the ticks left in the current unit or gap.
func (t *Transmitter) Remaining() uint16 { return t.remaining }

// High reports the level last written to the output.
func (t *Transmitter) High() bool { return t.high }

// Timing returns the durations in use.
func (t *Transmitter) Timing() morse.Timing { return t.timing }

// Reset drops any code in flight and returns to Idle with the line low.
func (t *Transmitter) Reset() {
	t.slot.clear()
	t.phase = Idle
	t.remaining = 0
	t.setLevel(false)
}

// Tick advances the state machine by one period.
func (t *Transmitter) Tick() {
	switch t.phase {
	case Idle:
		t.next()
	case PulseOn:
		if t.remaining == 0 {
			// The gap is chosen from the code this tick shifted. The producer
			// may refill the slot as soon as the shift empties it.
			rest := t.slot.shift()
			t.setLevel(false)
			if rest.Empty() {
				t.remaining = t.timing.LetterGap
			} else {
				t.remaining = t.timing.IntraGap
			}
			t.phase = Pause
		}
	case Pause:
		if t.remaining == 0 {
			t.phase = Idle
			t.next()
		}
	}
	if t.remaining > 0 {
		t.remaining--
	}
}

// next starts the head unit of the slot, if any. A pulse stays in the slot
// until it ends; a silence is consumed as soon as it starts.
func (t *Transmitter) next() {
	code := t.slot.Load()
	if code.Empty() {
		return
	}
	u := code.Head()
	t.remaining = t.timing.Duration(u)
	if u == morse.Silence {
		t.slot.shift()
		t.setLevel(false)
		t.phase = Pause
		return
	}
	t.setLevel(true)
	t.phase = PulseOn
}

func (t *Transmitter) setLevel(high bool) {
	t.high = high
	if high {
		t.out.High()
	} else {
		t.out.Low()
	}
}
