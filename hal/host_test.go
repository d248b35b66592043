//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestHostLEDLogsChanges(t *testing.T) {
	var buf bytes.Buffer
	h := newHostHAL(&buf, DefaultTickPeriod)

	out, err := ConfigureOutput(h.GPIO(), "LED")
	if err != nil {
		t.Fatalf("ConfigureOutput: %v", err)
	}
	out.High()
	out.High()
	out.Low()

	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{"led: HIGH", "led: LOW"}
	if len(got) != len(want) {
		t.Fatalf("log = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("log[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if h.led.isOn() {
		t.Fatal("led on after Low")
	}
}

func TestHostTimeDropsWhenFull(t *testing.T) {
	ht := newHostTime(0)
	if ht.Period() != DefaultTickPeriod {
		t.Fatalf("Period() = %v, want %v", ht.Period(), DefaultTickPeriod)
	}
	for i := 0; i < 100; i++ {
		ht.step()
	}
	if got := <-ht.Ticks(); got != 1 {
		t.Fatalf("first tick = %d, want 1", got)
	}
	if ht.seq != 100 {
		t.Fatalf("seq = %d, want 100", ht.seq)
	}
}

func TestRunTicksStopsAfterLimit(t *testing.T) {
	h := newHostHAL(&bytes.Buffer{}, DefaultTickPeriod)
	c := make(chan time.Time, 10)
	for i := 0; i < 10; i++ {
		c <- time.Time{}
	}
	steps := 0
	err := runTicks(context.Background(), h, func() error { steps++; return nil }, c, 4)
	if err != nil {
		t.Fatalf("runTicks: %v", err)
	}
	if steps != 4 {
		t.Fatalf("steps = %d, want 4", steps)
	}
}

func TestRunTicksErrStop(t *testing.T) {
	h := newHostHAL(&bytes.Buffer{}, DefaultTickPeriod)
	c := make(chan time.Time, 10)
	for i := 0; i < 10; i++ {
		c <- time.Time{}
	}
	steps := 0
	step := func() error {
		steps++
		if steps == 3 {
			return ErrStop
		}
		return nil
	}
	if err := runTicks(context.Background(), h, step, c, 0); err != nil {
		t.Fatalf("runTicks: %v", err)
	}
	if steps != 3 {
		t.Fatalf("steps = %d, want 3", steps)
	}
}

func TestRunTicksPropagatesError(t *testing.T) {
	h := newHostHAL(&bytes.Buffer{}, DefaultTickPeriod)
	c := make(chan time.Time, 1)
	c <- time.Time{}
	boom := errors.New("boom")
	if err := runTicks(context.Background(), h, func() error { return boom }, c, 0); !errors.Is(err, boom) {
		t.Fatalf("runTicks err = %v, want boom", err)
	}
}

func TestRunTicksCancelled(t *testing.T) {
	h := newHostHAL(&bytes.Buffer{}, DefaultTickPeriod)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := runTicks(ctx, h, nil, make(chan time.Time), 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("runTicks err = %v, want Canceled", err)
	}
}

func TestRunHeadlessRejectsBadHz(t *testing.T) {
	err := RunHeadless(context.Background(), func(HAL) (func() error, error) { return nil, nil }, HeadlessConfig{Hz: 0})
	if err == nil {
		t.Fatal("RunHeadless with zero hz succeeded")
	}
}

func TestMemFramebufferClear(t *testing.T) {
	fb := newMemFramebuffer(4, 2)
	fb.ClearRGB(0xff, 0xff, 0xff)
	for i, b := range fb.Buffer() {
		if b != 0xff {
			t.Fatalf("buf[%d] = %#x, want 0xff", i, b)
		}
	}
	if fb.StrideBytes() != 8 {
		t.Fatalf("StrideBytes() = %d, want 8", fb.StrideBytes())
	}
}
