package hal

import (
	"errors"
	"image"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// ErrStop is returned by a step function to end a host runner cleanly.
var ErrStop = errors.New("stop")

// DefaultTickPeriod is the period of the board tick source (10 Hz).
const DefaultTickPeriod = 100 * time.Millisecond

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// RegionPresenter is implemented by framebuffers that can push part of the
// buffer to the panel. r is clipped to the framebuffer bounds.
type RegionPresenter interface {
	PresentRegion(r image.Rectangle) error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Time provides the periodic tick that drives the transmitter.
//
// Sequence numbers start at 1. Ticks are dropped, not queued, when the
// consumer falls behind.
type Time interface {
	Ticks() <-chan uint64
	Period() time.Duration
}

// Tone is a sidetone generator. Start may be called while running to change
// the pitch.
type Tone interface {
	Start(freqHz uint32) error
	Stop() error
}

// Audio provides sound output (if available).
type Audio interface {
	Tone() Tone
}

// HAL provides the only contact point between the beacon and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	GPIO() GPIO
	Display() Display
	Time() Time
	Audio() Audio
}
