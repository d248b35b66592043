package app

import (
	"fmt"
	"image"
	"image/color"

	"beacon/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

var (
	colorBG     = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	colorFG     = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	colorDim    = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	colorLEDOn  = color.RGBA{R: 0xff, G: 0xc8, B: 0x30, A: 0xff}
	colorLEDOff = color.RGBA{R: 0x30, G: 0x24, B: 0x10, A: 0xff}
)

const (
	fontHeight = 10
	fontOffset = 8
	ledSize    = 48
	headerRows = 5
)

var font = &proggy.TinySZ8pt7b

// screen draws the status view: the LED, the character in flight and a
// scrolling log of sent characters.
type screen struct {
	fb    hal.Framebuffer
	d     *fbDisplay
	log   *panel
	term  *tinyterm.Terminal
	sent  int
	last  status
	drawn bool
}

func newScreen(fb hal.Framebuffer) *screen {
	if fb == nil || fb.Buffer() == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	top := int16(ledSize + 16 + headerRows*fontHeight)
	w, h := int16(fb.Width()), int16(fb.Height())
	if h <= top+fontHeight {
		return nil
	}
	s := &screen{fb: fb, d: newFBDisplay(fb)}
	s.log = newPanel(s.d, top, w, h-top)
	s.term = tinyterm.NewTerminal(s.log)
	s.term.Configure(&tinyterm.Config{
		Font:       font,
		FontHeight: fontHeight,
		FontOffset: fontOffset,
	})
	return s
}

func (s *screen) render(st status) {
	first := !s.drawn
	if first {
		s.fb.ClearRGB(0, 0, 0)
		s.d.mark(0, 0, s.fb.Width(), s.fb.Height())
	}

	if first || st.high != s.last.high {
		ledColor := colorLEDOff
		if st.high {
			ledColor = colorLEDOn
		}
		_ = s.d.FillRectangle(8, 8, ledSize, ledSize, ledColor)
	}

	if first || st.phase != s.last.phase || st.current != s.last.current || st.done != s.last.done {
		x := int16(ledSize + 24)
		_ = s.d.FillRectangle(x, 8, int16(s.fb.Width())-x, ledSize, colorBG)
		if st.current != 0 {
			tinyfont.WriteLine(s.d, font, x, 8+fontOffset, fmt.Sprintf("sending %q", st.current), colorFG)
			tinyfont.WriteLine(s.d, font, x, 8+fontOffset+fontHeight, st.code.String(), colorFG)
		} else if st.done {
			tinyfont.WriteLine(s.d, font, x, 8+fontOffset, "done", colorDim)
		}
		tinyfont.WriteLine(s.d, font, x, 8+fontOffset+3*fontHeight, "phase "+st.phase.String(), colorDim)
	}

	if first || s.sent < len(st.sent) {
		for ; s.sent < len(st.sent); s.sent++ {
			_, _ = s.term.Write([]byte{st.sent[s.sent]})
		}
		s.log.blit()
	}

	s.last = st
	s.drawn = true
	_ = s.d.flush()
}

// fbDisplay adapts a framebuffer to the drivers.Displayer contract and
// remembers which part of it has been drawn since the last flush.
type fbDisplay struct {
	fb    hal.Framebuffer
	dirty image.Rectangle
}

var _ drivers.Displayer = (*fbDisplay)(nil)

func newFBDisplay(fb hal.Framebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	pixel := hal.RGB565(c.R, c.G, c.B)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
	d.mark(ix, iy, ix+1, iy+1)
}

func (d *fbDisplay) mark(x0, y0, x1, y1 int) {
	r := image.Rect(x0, y0, x1, y1).Intersect(image.Rect(0, 0, d.fb.Width(), d.fb.Height()))
	if r.Empty() {
		return
	}
	d.dirty = d.dirty.Union(r)
}

// flush presents the dirty region, or the whole frame when the
// framebuffer cannot present part of itself.
func (d *fbDisplay) flush() error {
	if d.dirty.Empty() {
		return nil
	}
	r := d.dirty
	d.dirty = image.Rectangle{}
	if rp, ok := d.fb.(hal.RegionPresenter); ok {
		return rp.PresentRegion(r)
	}
	return d.fb.Present()
}

func (d *fbDisplay) Display() error { return d.flush() }

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	buf := d.fb.Buffer()
	w, h := d.fb.Width(), d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	d.mark(x0, y0, x1, y1)
	pixel := hal.RGB565(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

// panel is an off-screen region with a hardware-style scroll register.
// Rows are stored in scroll order and rotated into place by blit.
type panel struct {
	dst    *fbDisplay
	top    int16
	w, h   int16
	scroll int16
	pix    []color.RGBA
}

func newPanel(dst *fbDisplay, top, w, h int16) *panel {
	return &panel{dst: dst, top: top, w: w, h: h, pix: make([]color.RGBA, int(w)*int(h))}
}

func (p *panel) Size() (x, y int16) { return p.w, p.h }

func (p *panel) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= p.w || y < 0 || y >= p.h {
		return
	}
	p.pix[int(y)*int(p.w)+int(x)] = c
}

func (p *panel) Display() error { return nil }

func (p *panel) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	for py := y; py < y+height; py++ {
		for px := x; px < x+width; px++ {
			p.SetPixel(px, py, c)
		}
	}
	return nil
}

func (p *panel) SetScroll(line int16) {
	if p.h > 0 {
		p.scroll = ((line % p.h) + p.h) % p.h
	}
}

func (p *panel) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// blit copies the panel to its place on the framebuffer, starting at the
// scroll row.
func (p *panel) blit() {
	for y := int16(0); y < p.h; y++ {
		src := (y + p.scroll) % p.h
		row := p.pix[int(src)*int(p.w) : int(src+1)*int(p.w)]
		for x, c := range row {
			if c.A == 0 {
				c = colorBG
			}
			p.dst.SetPixel(int16(x), p.top+y, c)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
