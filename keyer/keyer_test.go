package keyer_test

import (
	"strings"
	"testing"

	"beacon/keyer"
	"beacon/morse"
	"beacon/trace"
)

type rig struct {
	slot *keyer.Slot
	rec  *trace.Recorder
	tx   *keyer.Transmitter
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{slot: &keyer.Slot{}, rec: &trace.Recorder{}}
	tx, err := keyer.New(r.slot, r.rec, morse.DefaultTiming)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.tx = tx
	return r
}

func (r *rig) run(n int) {
	for i := 0; i < n; i++ {
		r.tx.Tick()
		r.rec.Sample()
	}
}

// send runs a whole message the way the producer does: each code is loaded
// as soon as the slot drains.
func (r *rig) send(t *testing.T, codes []morse.Code, idle int) []bool {
	t.Helper()
	for _, c := range codes {
		if !r.slot.Put(c) {
			t.Fatalf("Put(%s) on busy slot", c)
		}
		for guard := 0; !r.slot.Empty(); guard++ {
			if guard > 1000 {
				t.Fatalf("slot never drained for %s", c)
			}
			r.run(1)
		}
	}
	r.run(idle)
	return r.rec.Levels()
}

func encode(t *testing.T, s string) []morse.Code {
	t.Helper()
	var out []morse.Code
	for i := 0; i < len(s); i++ {
		c, err := morse.Encode(s[i])
		if err != nil {
			t.Fatalf("Encode(%q): %v", s[i], err)
		}
		out = append(out, c)
	}
	return out
}

func TestNewDrivesLineLow(t *testing.T) {
	r := newRig(t)
	if r.rec.Level() {
		t.Fatal("line high after New")
	}
	if r.tx.Phase() != keyer.Idle {
		t.Fatalf("Phase() = %v, want idle", r.tx.Phase())
	}
}

func TestNewRejectsBadArgs(t *testing.T) {
	if _, err := keyer.New(nil, &trace.Recorder{}, morse.DefaultTiming); err == nil {
		t.Fatal("New(nil slot) err = nil")
	}
	if _, err := keyer.New(&keyer.Slot{}, nil, morse.DefaultTiming); err == nil {
		t.Fatal("New(nil output) err = nil")
	}
	if _, err := keyer.New(&keyer.Slot{}, &trace.Recorder{}, morse.Timing{}); err == nil {
		t.Fatal("New(zero timing) err = nil")
	}
}

func TestZeroCodeStaysIdle(t *testing.T) {
	r := newRig(t)
	r.run(20)
	if r.rec.Edges() != 0 {
		t.Fatalf("Edges() = %d, want 0", r.rec.Edges())
	}
	if r.tx.Phase() != keyer.Idle {
		t.Fatalf("Phase() = %v, want idle", r.tx.Phase())
	}
	if !r.slot.Empty() {
		t.Fatal("slot not empty")
	}
}

func TestSingleDot(t *testing.T) {
	r := newRig(t)
	// The tick that ends the pulse drains the slot, then 11 idle ticks.
	got := trace.String(r.send(t, encode(t, "E"), 11))
	want := "###" + strings.Repeat("_", 12)
	if got != want {
		t.Fatalf("trace = %q, want %q", got, want)
	}
}

func TestSingleDash(t *testing.T) {
	r := newRig(t)
	got := trace.String(r.send(t, encode(t, "T"), 11))
	want := strings.Repeat("#", 9) + strings.Repeat("_", 12)
	if got != want {
		t.Fatalf("trace = %q, want %q", got, want)
	}
}

func TestDotDash(t *testing.T) {
	r := newRig(t)
	got := trace.String(r.send(t, encode(t, "A"), 11))
	want := "###___" + strings.Repeat("#", 9) + strings.Repeat("_", 12)
	if got != want {
		t.Fatalf("trace = %q, want %q", got, want)
	}
}

func TestPeriodSixDots(t *testing.T) {
	r := newRig(t)
	lv := r.send(t, encode(t, "."), 0)
	var high, intra int
	for _, s := range trace.Segments(lv) {
		if s.High {
			if s.Ticks != 3 {
				t.Fatalf("pulse of %d ticks, want 3", s.Ticks)
			}
			high += s.Ticks
		} else if s.Ticks == 3 {
			intra += s.Ticks
		}
	}
	if high != 18 {
		t.Fatalf("high ticks = %d, want 18", high)
	}
	if intra != 15 {
		t.Fatalf("intra-gap ticks = %d, want 15", intra)
	}
}

func TestSpaceIsSilence(t *testing.T) {
	r := newRig(t)
	r.send(t, encode(t, " "), 0)
	lv := r.rec.Levels()
	if r.rec.Edges() != 0 {
		t.Fatalf("Edges() = %d, want 0", r.rec.Edges())
	}
	// The slot drains on the first tick; the silence runs out the word gap.
	r.run(int(morse.DefaultTiming.WordGap))
	if r.tx.Phase() != keyer.Idle {
		t.Fatalf("Phase() = %v after word gap, want idle", r.tx.Phase())
	}
	if len(lv) != 1 {
		t.Fatalf("ticks to drain = %d, want 1", len(lv))
	}
}

func TestLetterGapBeforeNextSymbol(t *testing.T) {
	r := newRig(t)
	got := trace.String(r.send(t, encode(t, "EE"), 1))
	want := "###" + strings.Repeat("_", 9) + "###" + "__"
	if got != want {
		t.Fatalf("trace = %q, want %q", got, want)
	}
}

func TestWordGap(t *testing.T) {
	r := newRig(t)
	got := trace.String(r.send(t, encode(t, "E E"), 0))
	want := "###" + strings.Repeat("_", 9+12) + "###" + "_"
	if got != want {
		t.Fatalf("trace = %q, want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, msg := range []string{"E", "T", "A", "SOS", "HELLO ALL.", "QUICK BROWN FOX"} {
		r := newRig(t)
		lv := r.send(t, encode(t, msg), 20)
		got, err := trace.Text(lv, morse.DefaultTiming)
		if err != nil {
			t.Fatalf("Text(%q): %v", msg, err)
		}
		if got != msg {
			t.Fatalf("Text = %q, want %q", got, msg)
		}
	}
}

func TestResetIsDeterministic(t *testing.T) {
	r := newRig(t)
	code := encode(t, "K")
	first := trace.String(r.send(t, code, 15))

	r.tx.Reset()
	r.rec.Reset()
	second := trace.String(r.send(t, code, 15))
	if first != second {
		t.Fatalf("traces differ after Reset:\n%s\n%s", first, second)
	}
}

func TestResetMidSymbol(t *testing.T) {
	r := newRig(t)
	if !r.slot.Put(encode(t, "O")[0]) {
		t.Fatal("Put failed")
	}
	r.run(5)
	if !r.rec.Level() {
		t.Fatal("line low mid-dash")
	}
	r.tx.Reset()
	if r.rec.Level() || !r.slot.Empty() || r.tx.Phase() != keyer.Idle || r.tx.Remaining() != 0 {
		t.Fatalf("Reset left level=%v empty=%v phase=%v remaining=%d",
			r.rec.Level(), r.slot.Empty(), r.tx.Phase(), r.tx.Remaining())
	}
}

func TestDotTimingDiffersFromDash(t *testing.T) {
	// Every dot must get dot timing, never dash timing. The first board
	// firmware timed dots as dashes because of an operator precedence slip.
	for _, c := range []byte("EISH") {
		r := newRig(t)
		lv := r.send(t, encode(t, string(c)), 0)
		for _, s := range trace.Segments(lv) {
			if s.High && s.Ticks != int(morse.DefaultTiming.Dot) {
				t.Fatalf("%q: pulse of %d ticks, want %d", c, s.Ticks, morse.DefaultTiming.Dot)
			}
		}
	}
}

func TestMalformedZeroUnitIsTimedAsDash(t *testing.T) {
	r := newRig(t)
	// dot, zero unit, dot: the zero unit is keyed with dash timing.
	code := morse.Code(0b01_00_01)
	lv := r.send(t, []morse.Code{code}, 0)
	var pulses []int
	for _, s := range trace.Segments(lv) {
		if s.High {
			pulses = append(pulses, s.Ticks)
		}
	}
	want := []int{3, 9, 3}
	if len(pulses) != len(want) {
		t.Fatalf("pulses = %v, want %v", pulses, want)
	}
	for i := range want {
		if pulses[i] != want[i] {
			t.Fatalf("pulses = %v, want %v", pulses, want)
		}
	}
}

func TestPhaseSequence(t *testing.T) {
	r := newRig(t)
	r.slot.Put(encode(t, "E")[0])

	r.run(1)
	if r.tx.Phase() != keyer.PulseOn || r.tx.Remaining() != 2 {
		t.Fatalf("after 1 tick: phase=%v remaining=%d, want on/2", r.tx.Phase(), r.tx.Remaining())
	}
	r.run(3)
	if r.tx.Phase() != keyer.Pause || r.tx.Remaining() != 8 {
		t.Fatalf("after 4 ticks: phase=%v remaining=%d, want pause/8", r.tx.Phase(), r.tx.Remaining())
	}
	if !r.slot.Empty() {
		t.Fatal("slot not drained after the last pulse")
	}
	r.run(9)
	if r.tx.Phase() != keyer.Idle {
		t.Fatalf("after 13 ticks: phase=%v, want idle", r.tx.Phase())
	}
}
