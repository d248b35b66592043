// Package trace records the level of an output line once per tick and turns
// the recording back into Morse symbols.
package trace

import (
	"errors"
	"fmt"
	"strings"

	"beacon/morse"
)

// Recorder is an output line that remembers its level at every Sample.
type Recorder struct {
	high   bool
	edges  int
	levels []bool
}

func (r *Recorder) High() {
	if !r.high {
		r.edges++
	}
	r.high = true
}

func (r *Recorder) Low() {
	if r.high {
		r.edges++
	}
	r.high = false
}

// Sample appends the current level. Call it once after each tick.
func (r *Recorder) Sample() { r.levels = append(r.levels, r.high) }

// Level returns the current level.
func (r *Recorder) Level() bool { return r.high }

// Edges returns the number of level changes seen.
func (r *Recorder) Edges() int { return r.edges }

// Levels returns the sampled levels.
func (r *Recorder) Levels() []bool { return r.levels }

// Reset forgets every sample and drives the line low.
func (r *Recorder) Reset() {
	r.high = false
	r.edges = 0
	r.levels = nil
}

// Segment is a run of ticks at one level.
type Segment struct {
	High  bool
	Start int
	Ticks int
}

// End returns the tick after the segment.
func (s Segment) End() int { return s.Start + s.Ticks }

// Segments run-length encodes levels.
func Segments(levels []bool) []Segment {
	var out []Segment
	for i, l := range levels {
		if n := len(out); n > 0 && out[n-1].High == l {
			out[n-1].Ticks++
			continue
		}
		out = append(out, Segment{High: l, Start: i, Ticks: 1})
	}
	return out
}

// String renders levels as '#' for high and '_' for low.
func String(levels []bool) string {
	var b strings.Builder
	b.Grow(len(levels))
	for _, l := range levels {
		if l {
			b.WriteByte('#')
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

var ErrDecode = errors.New("trace: cannot decode")

// Decode rebuilds the symbols keyed into levels. Word gaps decode as the
// silence code. Leading low time only contributes whole word gaps; trailing
// low time is idle.
func Decode(levels []bool, t morse.Timing) ([]morse.Code, error) {
	var (
		out   []morse.Code
		cur   morse.Code
		units int
	)
	flush := func() {
		if units > 0 {
			out = append(out, cur)
		}
		cur, units = 0, 0
	}
	segs := Segments(levels)
	for i, s := range segs {
		if s.High {
			var u morse.Unit
			switch uint16(s.Ticks) {
			case t.Dot:
				u = morse.Dot
			case t.Dash:
				u = morse.Dash
			default:
				return nil, fmt.Errorf("%w: %d high ticks at %d", ErrDecode, s.Ticks, s.Start)
			}
			if units == morse.MaxUnits {
				return nil, fmt.Errorf("%w: symbol too long at %d", ErrDecode, s.Start)
			}
			cur |= morse.Code(u) << (2 * units)
			units++
			continue
		}

		last := i == len(segs)-1
		if last {
			break
		}
		edge := i == 0
		gap := uint16(s.Ticks)
		if units > 0 && gap == t.IntraGap {
			continue
		}
		if units > 0 {
			if gap < t.LetterGap {
				return nil, fmt.Errorf("%w: %d low ticks at %d", ErrDecode, s.Ticks, s.Start)
			}
			gap -= t.LetterGap
			flush()
		}
		for gap >= t.WordGap {
			out = append(out, morse.Code(morse.Silence))
			gap -= t.WordGap
		}
		if gap != 0 && !edge {
			return nil, fmt.Errorf("%w: %d low ticks at %d", ErrDecode, s.Ticks, s.Start)
		}
	}
	flush()
	return out, nil
}

// Text decodes levels into characters.
func Text(levels []bool, t morse.Timing) (string, error) {
	codes, err := Decode(levels, t)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, c := range codes {
		ch, ok := morse.Decode(c)
		if !ok {
			return b.String(), fmt.Errorf("%w: unknown symbol %s", ErrDecode, c)
		}
		b.WriteByte(ch)
	}
	return b.String(), nil
}
