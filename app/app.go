// Package app runs the beacon: it brings up the output pin, feeds the
// message to the keyer one character at a time and renders status.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"beacon/hal"
	"beacon/keyer"
	"beacon/morse"
)

// DefaultMessage is transmitted when no message is configured.
const DefaultMessage = "Hello all."

// Config selects the message, the keyed pin and the timing.
type Config struct {
	Message string
	// Pin is the GPIO pin name keyed by the transmitter.
	Pin string
	// Dot is the length of a dot; tick counts are derived from it and the
	// tick period of the HAL.
	Dot time.Duration
	// StopAtPeriod ends the message after the first '.' is sent.
	StopAtPeriod bool
	// ExitWhenDone makes Step return hal.ErrStop once the message is sent
	// and the line is idle.
	ExitWhenDone bool
	Sidetone     bool
	ToneHz       uint32
}

// DefaultConfig keys "Hello all." on the LED pin and stops after the period.
func DefaultConfig() Config {
	return Config{
		Message:      DefaultMessage,
		Pin:          "LED",
		Dot:          morse.DefaultDot,
		StopAtPeriod: true,
		ToneHz:       700,
	}
}

// App is one beacon: a producer feeding the slot and a tick handler
// draining it.
type App struct {
	h   hal.HAL
	cfg Config
	log hal.Logger

	slot keyer.Slot
	tx   *keyer.Transmitter
	line *line
	scr  *screen

	ticks   uint64
	started atomic.Bool
	done    atomic.Bool

	mu      sync.Mutex
	current byte
	code    morse.Code
	sent    []byte
	err     error
}

// New performs bring-up: it configures the output pin, derives the timing
// from the HAL tick period and builds an idle transmitter.
func New(h hal.HAL, cfg Config) (*App, error) {
	if h == nil {
		return nil, errors.New("app: nil HAL")
	}
	t := h.Time()
	if t == nil {
		return nil, errors.New("app: no tick source")
	}
	timing, err := morse.TimingFor(t.Period(), cfg.Dot)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	led, err := hal.ConfigureOutput(h.GPIO(), cfg.Pin)
	if err != nil {
		return nil, fmt.Errorf("app: output pin: %w", err)
	}

	a := &App{h: h, cfg: cfg, log: h.Logger()}
	a.line = &line{out: led}
	if cfg.Sidetone {
		a.line.tone, a.line.toneHz = sidetone(h), cfg.ToneHz
		if a.line.tone == nil {
			a.logf("app: sidetone unavailable")
		}
	}
	a.tx, err = keyer.New(&a.slot, a.line, timing)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if d := h.Display(); d != nil {
		a.scr = newScreen(d.Framebuffer())
	}
	a.logf("app: %q on %s, dot=%d dash=%d ticks of %v", cfg.Message, cfg.Pin, timing.Dot, timing.Dash, t.Period())
	return a, nil
}

func sidetone(h hal.HAL) hal.Tone {
	a := h.Audio()
	if a == nil {
		return nil
	}
	return a.Tone()
}

func (a *App) logf(format string, args ...any) {
	if a.log == nil {
		return
	}
	a.log.WriteLineString(fmt.Sprintf(format, args...))
}

// Start runs the producer loop in its own goroutine. It may be called once.
func (a *App) Start(ctx context.Context) {
	if !a.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer a.recoverPanic()
		if err := a.Transmit(ctx); err != nil {
			a.logf("app: transmit: %v", err)
		}
	}()
}

// Transmit hands the message to the keyer one character at a time and waits
// for each to drain. It stops at the first character that cannot be encoded
// and, with StopAtPeriod, right after a '.'.
func (a *App) Transmit(ctx context.Context) (err error) {
	defer func() {
		a.mu.Lock()
		a.err = err
		a.current, a.code = 0, 0
		a.mu.Unlock()
		a.done.Store(true)
	}()

	err = Walk(a.cfg.Message, a.cfg.StopAtPeriod, func(c byte, code morse.Code) error {
		a.mu.Lock()
		a.current, a.code = c, code
		a.mu.Unlock()

		if err := a.slot.Send(ctx, code); err != nil {
			return err
		}
		if err := a.slot.Wait(ctx); err != nil {
			return err
		}

		a.mu.Lock()
		a.sent = append(a.sent, c)
		a.mu.Unlock()
		a.logf("app: sent %q %s", c, code)
		return nil
	})
	if errors.Is(err, ErrEndOfMessage) {
		a.logf("app: %v", err)
		err = nil
	}
	if err != nil {
		return err
	}
	a.logf("app: message done")
	return nil
}

// Step is the tick handler.
func (a *App) Step() error {
	a.tx.Tick()
	a.ticks++
	if a.scr != nil {
		a.scr.render(a.status())
	}
	if a.cfg.ExitWhenDone && a.Done() && a.tx.Phase() == keyer.Idle {
		if err := a.Err(); err != nil {
			return err
		}
		return hal.ErrStop
	}
	return nil
}

// Done reports whether the producer has finished.
func (a *App) Done() bool { return a.done.Load() }

// Err returns the error that ended the producer, if any.
func (a *App) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Sent returns the characters fully transmitted so far.
func (a *App) Sent() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return string(a.sent)
}

// Transmitter exposes the keyer for inspection.
func (a *App) Transmitter() *keyer.Transmitter { return a.tx }

type status struct {
	tick    uint64
	high    bool
	phase   keyer.Phase
	current byte
	code    morse.Code
	sent    string
	done    bool
}

func (a *App) status() status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return status{
		tick:    a.ticks,
		high:    a.tx.High(),
		phase:   a.tx.Phase(),
		current: a.current,
		code:    a.code,
		sent:    string(a.sent),
		done:    a.done.Load(),
	}
}

// Run starts the beacon and blocks forever, ticking on the HAL time source.
func Run(h hal.HAL, cfg Config) {
	a, err := New(h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString(err.Error())
		}
		select {}
	}
	a.Start(context.Background())
	a.run(h.Time().Ticks())
	select {}
}

// run calls Step for every tick until ticks is closed. Step errors are
// logged; the board has nowhere to return them.
func (a *App) run(ticks <-chan uint64) {
	for range ticks {
		if err := a.Step(); err != nil {
			a.logf("app: step %d: %v", a.ticks, err)
		}
	}
}
