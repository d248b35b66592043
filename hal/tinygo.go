//go:build tinygo && baremetal && !picocalc

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	gpio   GPIO
	fb     Framebuffer
	t      *tinyGoTime
	audio  Audio
}

// New returns a board HAL implementation.
//
// UART: UART0 on the board's default TX/RX pins, 115200 8N1.
// LED: machine.LED, push-pull output.
// Tick: DefaultTickPeriod.
// Tone: PWM on GP2.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART_TX_PIN,
		RX:       machine.UART_RX_PIN,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	ledPin.Low()

	led := &pinLED{pin: ledPin}
	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		led:    led,
		gpio:   newVirtualGPIO([]GPIOPin{newLEDPin("LED", led)}),
		fb:     &stubFramebuffer{w: 320, h: 240, format: PixelFormatRGB565},
		t:      newTinyGoTime(DefaultTickPeriod),
		audio:  newTinyGoAudio(),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) GPIO() GPIO       { return h.gpio }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Time() Time       { return h.t }
func (h *tinyGoHAL) Audio() Audio     { return h.audio }
