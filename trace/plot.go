package trace

import (
	"image/color"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"beacon/morse"
)

var (
	colorDot  = color.RGBA{R: 0x4a, G: 0xdf, B: 0x6a, A: 0xff}
	colorDash = color.RGBA{R: 0x40, G: 0x80, B: 0xff, A: 0xff}
	colorBad  = color.RGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff}
)

// Pulse is one high segment drawn on a Timeline.
type Pulse struct {
	Start float64
	End   float64
	Color color.Color
	Label string
}

// Timeline draws pulses as boxes on a single row.
type Timeline struct {
	Pulses    []Pulse
	Ticks     int
	Location  float64
	Height    vg.Length
	BoxStyle  draw.LineStyle
	TextStyle draw.TextStyle
}

var _ plot.Plotter = &Timeline{}

// NewTimeline classifies every high segment of levels as a dot or a dash.
func NewTimeline(levels []bool, t morse.Timing, height vg.Length) *Timeline {
	tl := &Timeline{
		Ticks:    len(levels),
		Location: 0,
		Height:   height,
		BoxStyle: plotter.DefaultLineStyle,
		TextStyle: text.Style{
			Font:    font.From(plotter.DefaultFont, plotter.DefaultFontSize),
			XAlign:  draw.XCenter,
			YAlign:  draw.YCenter,
			Handler: plot.DefaultTextHandler,
		},
	}
	for _, s := range Segments(levels) {
		if !s.High {
			continue
		}
		p := Pulse{Start: float64(s.Start), End: float64(s.End())}
		switch uint16(s.Ticks) {
		case t.Dot:
			p.Color, p.Label = colorDot, morse.Dot.String()
		case t.Dash:
			p.Color, p.Label = colorDash, morse.Dash.String()
		default:
			p.Color, p.Label = colorBad, "?"
		}
		tl.Pulses = append(tl.Pulses, p)
	}
	return tl
}

func (t *Timeline) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	y := trY(t.Location)
	if !c.ContainsY(y) {
		return
	}

	for _, p := range t.Pulses {
		xStart, xEnd := trX(p.Start), trX(p.End)
		pts := []vg.Point{
			{X: xStart, Y: y - t.Height/2},
			{X: xEnd, Y: y - t.Height/2},
			{X: xEnd, Y: y + t.Height/2},
			{X: xStart, Y: y + t.Height/2},
			{X: xStart, Y: y - t.Height/2},
		}
		c.FillPolygon(p.Color, c.ClipPolygonX(pts[0:4]))
		c.StrokeLines(t.BoxStyle, c.ClipLinesX(pts)...)
		if p.Label != "" {
			c.FillText(t.TextStyle, vg.Point{X: (xStart + xEnd) / 2, Y: y}, p.Label)
		}
	}
}

func (t *Timeline) DataRange() (xmin, xmax, ymin, ymax float64) {
	return 0, float64(t.Ticks), t.Location - 1, t.Location + 1
}

// Plot builds a plot of levels with ticks on the X axis.
func Plot(levels []bool, t morse.Timing, title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "tick"
	p.Y.Tick.Marker = plot.ConstantTicks(nil)
	p.Add(NewTimeline(levels, t, vg.Points(20)))
	return p
}

// WritePlot renders p in format ("png", "svg", "pdf", ...) to output.
func WritePlot(p *plot.Plot, width, height vg.Length, output io.Writer, format string) error {
	w, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = w.WriteTo(output)
	return err
}

func combineErrors(errs ...error) (err error) {
	for _, e := range errs {
		switch {
		case e == nil:
		case err == nil:
			err = e
		default:
			err = multierror.Append(err, e)
		}
	}
	return err
}

// WriteClosePlot renders p to output and closes it.
func WriteClosePlot(p *plot.Plot, width, height vg.Length, output io.WriteCloser, format string) (err error) {
	defer func() {
		err = combineErrors(err, output.Close())
	}()
	return WritePlot(p, width, height, output, format)
}

// SavePlot renders p to the file at path.
func SavePlot(p *plot.Plot, width, height vg.Length, path string, format string) error {
	output, err := os.Create(path)
	if err != nil {
		return err
	}
	return WriteClosePlot(p, width, height, output, format)
}
