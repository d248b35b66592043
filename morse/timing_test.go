package morse

import (
	"errors"
	"testing"
	"time"
)

func TestTimingForDefault(t *testing.T) {
	got, err := TimingFor(DefaultTick, DefaultDot)
	if err != nil {
		t.Fatalf("TimingFor: %v", err)
	}
	if got != DefaultTiming {
		t.Fatalf("TimingFor(default) = %+v, want %+v", got, DefaultTiming)
	}
}

func TestTimingForFasterTick(t *testing.T) {
	got, err := TimingFor(50*time.Millisecond, DefaultDot)
	if err != nil {
		t.Fatalf("TimingFor: %v", err)
	}
	want := Timing{Dot: 6, Dash: 18, IntraGap: 6, LetterGap: 18, WordGap: 24}
	if got != want {
		t.Fatalf("TimingFor(50ms) = %+v, want %+v", got, want)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestTimingForRejectsShortDot(t *testing.T) {
	if _, err := TimingFor(time.Second, 100*time.Millisecond); !errors.Is(err, ErrTiming) {
		t.Fatalf("err = %v, want ErrTiming", err)
	}
	if _, err := TimingFor(0, DefaultDot); !errors.Is(err, ErrTiming) {
		t.Fatalf("err = %v, want ErrTiming", err)
	}
}

func TestTimingValidate(t *testing.T) {
	bad := DefaultTiming
	bad.IntraGap = 0
	if err := bad.Validate(); !errors.Is(err, ErrTiming) {
		t.Fatalf("Validate() = %v, want ErrTiming", err)
	}
}

func TestTimingDuration(t *testing.T) {
	tm := DefaultTiming
	if got := tm.Duration(Dot); got != 3 {
		t.Fatalf("Duration(dot) = %d, want 3", got)
	}
	if got := tm.Duration(Dash); got != 9 {
		t.Fatalf("Duration(dash) = %d, want 9", got)
	}
	if got := tm.Duration(Silence); got != 12 {
		t.Fatalf("Duration(silence) = %d, want 12", got)
	}
	// A stray zero unit is timed like a dash.
	if got := tm.Duration(End); got != 9 {
		t.Fatalf("Duration(end) = %d, want 9", got)
	}
}
