//go:build tinygo && baremetal && picocalc

package hal

import (
	"image"
	"machine"
)

// picoCalcHAL is the board HAL for a Pico on the PicoCalc carrier. It adds
// the 320x320 ILI9488 panel, so the status screen is shown next to the LED.
type picoCalcHAL struct {
	logger *uartLogger
	led    *pinLED
	gpio   GPIO
	fb     Framebuffer
	t      *tinyGoTime
	audio  Audio
}

// New returns the PicoCalc HAL.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Keyed pins: "LED" (machine.LED) and "GPIO3" (header pin GP3).
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	ledPin.Low()
	led := &pinLED{pin: ledPin}

	keyPin := machine.GP3
	keyPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	keyPin.Low()

	var fb Framebuffer
	if lcd, err := newPicoCalcDisplay(); err == nil {
		fb = lcd
	} else {
		logger.WriteLineString("hal: display: " + err.Error())
		fb = &stubFramebuffer{w: picoCalcSize, h: picoCalcSize, format: PixelFormatRGB565}
	}

	return &picoCalcHAL{
		logger: logger,
		led:    led,
		gpio: newVirtualGPIO([]GPIOPin{
			newLEDPin("LED", led),
			newLEDPin("GPIO3", &pinLED{pin: keyPin}),
		}),
		fb:    fb,
		t:     newTinyGoTime(DefaultTickPeriod),
		audio: newTinyGoAudio(),
	}
}

func (h *picoCalcHAL) Logger() Logger   { return h.logger }
func (h *picoCalcHAL) LED() LED         { return h.led }
func (h *picoCalcHAL) GPIO() GPIO       { return h.gpio }
func (h *picoCalcHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *picoCalcHAL) Time() Time       { return h.t }
func (h *picoCalcHAL) Audio() Audio     { return h.audio }

const picoCalcSize = 320

type picoCalcFramebuffer struct {
	buf []byte
	lcd *ili9488
}

func (f *picoCalcFramebuffer) Width() int          { return picoCalcSize }
func (f *picoCalcFramebuffer) Height() int         { return picoCalcSize }
func (f *picoCalcFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *picoCalcFramebuffer) StrideBytes() int    { return picoCalcSize * 2 }
func (f *picoCalcFramebuffer) Buffer() []byte      { return f.buf }

func (f *picoCalcFramebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.buf, RGB565(r, g, b))
}

func (f *picoCalcFramebuffer) bounds() image.Rectangle {
	return image.Rect(0, 0, picoCalcSize, picoCalcSize)
}

// Present pushes the whole frame. The status screen uses PresentRegion.
func (f *picoCalcFramebuffer) Present() error {
	return f.lcd.blit(f.buf, picoCalcSize*2, f.bounds())
}

func (f *picoCalcFramebuffer) PresentRegion(r image.Rectangle) error {
	return f.lcd.blit(f.buf, picoCalcSize*2, r.Intersect(f.bounds()))
}

func newPicoCalcDisplay() (*picoCalcFramebuffer, error) {
	lcd, err := initILI9488()
	if err != nil {
		return nil, err
	}
	return &picoCalcFramebuffer{
		buf: make([]byte, picoCalcSize*picoCalcSize*2),
		lcd: lcd,
	}, nil
}
