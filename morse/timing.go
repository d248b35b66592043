package morse

import (
	"errors"
	"fmt"
	"time"
)

// Timing holds unit durations in ticks.
type Timing struct {
	Dot       uint16
	Dash      uint16
	IntraGap  uint16
	LetterGap uint16
	// WordGap is the silence produced by a Silence unit. It follows the
	// letter gap of the previous symbol, so the full word gap is
	// LetterGap+WordGap.
	WordGap uint16
}

const (
	// DefaultTick is the period of the transmitter tick (10 Hz).
	DefaultTick = 100 * time.Millisecond
	// DefaultDot is the length of a dot.
	DefaultDot = 300 * time.Millisecond
)

// DefaultTiming is the timing for DefaultTick and DefaultDot.
var DefaultTiming = Timing{
	Dot:       3,
	Dash:      9,
	IntraGap:  3,
	LetterGap: 9,
	WordGap:   12,
}

// ErrTiming reports tick counts that cannot be keyed.
var ErrTiming = errors.New("morse: invalid timing")

// TimingFor derives tick counts for a dot of the given length. The dot is
// rounded to the nearest whole tick and must be at least one tick.
func TimingFor(tick, dot time.Duration) (Timing, error) {
	if tick <= 0 {
		return Timing{}, fmt.Errorf("%w: tick %v", ErrTiming, tick)
	}
	n := (dot + tick/2) / tick
	if n < 1 {
		return Timing{}, fmt.Errorf("%w: dot %v shorter than tick %v", ErrTiming, dot, tick)
	}
	if n*4 > 0xFFFF {
		return Timing{}, fmt.Errorf("%w: dot %v too long for tick %v", ErrTiming, dot, tick)
	}
	d := uint16(n)
	t := Timing{
		Dot:       d,
		Dash:      3 * d,
		IntraGap:  d,
		LetterGap: 3 * d,
		WordGap:   4 * d,
	}
	return t, nil
}

// Validate checks that every duration is at least one tick.
func (t Timing) Validate() error {
	switch {
	case t.Dot == 0:
		return fmt.Errorf("%w: zero dot", ErrTiming)
	case t.Dash == 0:
		return fmt.Errorf("%w: zero dash", ErrTiming)
	case t.IntraGap == 0:
		return fmt.Errorf("%w: zero intra gap", ErrTiming)
	case t.LetterGap == 0:
		return fmt.Errorf("%w: zero letter gap", ErrTiming)
	case t.WordGap == 0:
		return fmt.Errorf("%w: zero word gap", ErrTiming)
	}
	return nil
}

// Duration returns the ticks spent on u. Anything that is not a dot or a
// silence gets dash timing, including End.
func (t Timing) Duration(u Unit) uint16 {
	switch u {
	case Dot:
		return t.Dot
	case Silence:
		return t.WordGap
	default:
		return t.Dash
	}
}
