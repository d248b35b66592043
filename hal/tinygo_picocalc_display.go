//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"image"
	"machine"
	"time"
)

// ili9488 drives the PicoCalc panel over SPI1 in 16-bit colour. Only the
// window being updated is streamed, so a status change costs a few
// kilobytes instead of the whole frame.
type ili9488 struct {
	spi *machine.SPI
	cs  machine.Pin
	dc  machine.Pin
	rst machine.Pin

	line []byte
}

var errPanelRegion = errors.New("ili9488: region outside framebuffer")

// ili9488Init is the power-up sequence: command byte, then its parameters.
var ili9488Init = [][]byte{
	{0xC0, 0x17, 0x15},             // power control 1
	{0xC1, 0x41},                   // power control 2
	{0xC5, 0x00, 0x12, 0x80, 0x40}, // VCOM
	{0x3A, 0x55},                   // 16 bits per pixel
	{0xB1, 0xA0, 0x11},             // frame rate
	{0xB6, 0x02, 0x22, 0x27},       // display function, 320 lines
	{0x21},                         // inversion on
	{0x36, 0x40 | 0x08 | 0x04},     // MX, BGR, MH for the PicoCalc wiring
}

func initILI9488() (*ili9488, error) {
	spi := machine.SPI1
	if spi == nil {
		return nil, errors.New("ili9488: SPI1 unavailable")
	}
	if err := spi.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 40_000_000,
	}); err != nil {
		return nil, err
	}

	d := &ili9488{
		spi:  spi,
		cs:   machine.GP13,
		dc:   machine.GP14,
		rst:  machine.GP15,
		line: make([]byte, picoCalcSize*2),
	}
	for _, p := range []machine.Pin{d.cs, d.dc, d.rst} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
	}

	d.rst.Low()
	time.Sleep(64 * time.Millisecond)
	d.rst.High()
	time.Sleep(140 * time.Millisecond)

	for _, c := range ili9488Init {
		d.command(c[0], c[1:]...)
	}
	d.command(0x11) // sleep out
	time.Sleep(120 * time.Millisecond)
	d.command(0x29) // display on
	return d, nil
}

func (d *ili9488) command(cmd byte, params ...byte) {
	d.cs.Low()
	d.dc.Low()
	d.spi.Tx([]byte{cmd}, nil)
	d.dc.High()
	if len(params) > 0 {
		d.spi.Tx(params, nil)
	}
	d.cs.High()
}

// window selects r (exclusive max) for the following memory write.
func (d *ili9488) window(r image.Rectangle) {
	x0, y0 := uint16(r.Min.X), uint16(r.Min.Y)
	x1, y1 := uint16(r.Max.X-1), uint16(r.Max.Y-1)
	d.command(0x2A, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1))
	d.command(0x2B, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1))
	d.command(0x2C)
}

// blit streams region r of a little-endian RGB565 buffer with the given
// stride. The panel takes big-endian pixels, so each row is byte-swapped
// into the line buffer on the way out.
func (d *ili9488) blit(buf []byte, stride int, r image.Rectangle) error {
	if r.Empty() {
		return nil
	}
	w := r.Dx() * 2
	if w > len(d.line) || (r.Max.Y-1)*stride+r.Max.X*2 > len(buf) {
		return errPanelRegion
	}
	d.window(r)
	d.cs.Low()
	d.dc.High()
	out := d.line[:w]
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := buf[y*stride+r.Min.X*2 : y*stride+r.Max.X*2]
		for i := 0; i < w; i += 2 {
			out[i], out[i+1] = row[i+1], row[i]
		}
		d.spi.Tx(out, nil)
	}
	d.cs.High()
	return nil
}
