// Command morsetrace runs a message through the keyer without hardware and
// shows the output line tick by tick.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"beacon/app"
	"beacon/keyer"
	"beacon/morse"
	"beacon/trace"

	"gonum.org/v1/plot/vg"
)

func main() {
	var (
		message = flag.String("message", "Hello all.", "Message to transmit.")
		hz      = flag.Int("hz", 10, "Tick rate.")
		dot     = flag.Duration("dot", morse.DefaultDot, "Dot length.")
		stop    = flag.Bool("stop-at-period", true, "End the message after the first '.'.")
		idle    = flag.Int("idle", 0, "Extra idle ticks recorded after the message.")
		outPath = flag.String("out", "", "Write a timeline plot to this file (.svg, .png, .pdf, .eps).")
		width   = flag.Float64("width", 10, "Plot width in inches.")
		quiet   = flag.Bool("q", false, "Do not print the ASCII trace.")
	)
	flag.Parse()

	if *hz <= 0 {
		fatalf("invalid hz: %d", *hz)
	}
	timing, err := morse.TimingFor(time.Second/time.Duration(*hz), *dot)
	if err != nil {
		fatalf("timing: %v", err)
	}

	rec := &trace.Recorder{}
	sent, err := simulate(*message, timing, rec, *stop)
	if err != nil {
		fatalf("simulate: %v", err)
	}
	for i := 0; i < *idle; i++ {
		rec.Sample()
	}
	levels := rec.Levels()

	if !*quiet {
		fmt.Println(trace.String(levels))
	}
	text, err := trace.Text(levels, timing)
	if err != nil {
		fatalf("decode: %v", err)
	}
	fmt.Printf("sent %q, decoded %q, %d ticks, %d edges\n", sent, text, len(levels), rec.Edges())

	if *outPath != "" {
		format := strings.TrimPrefix(filepath.Ext(*outPath), ".")
		if format == "" {
			format = "svg"
		}
		p := trace.Plot(levels, timing, fmt.Sprintf("%q at %d Hz", sent, *hz))
		if err := trace.SavePlot(p, vg.Length(*width)*vg.Inch, 2*vg.Inch, *outPath, format); err != nil {
			fatalf("plot: %v", err)
		}
	}
}

// simulate plays the producer and the tick source in lockstep: each
// character app.Walk yields is put in the slot and the transmitter is
// ticked until it drains, then until the line is idle. One level is
// recorded per tick.
func simulate(msg string, t morse.Timing, rec *trace.Recorder, stopAtPeriod bool) (string, error) {
	var slot keyer.Slot
	tx, err := keyer.New(&slot, rec, t)
	if err != nil {
		return "", err
	}
	tick := func() {
		tx.Tick()
		rec.Sample()
	}

	var sent []byte
	err = app.Walk(msg, stopAtPeriod, func(c byte, code morse.Code) error {
		if err := slot.Send(context.Background(), code); err != nil {
			return err
		}
		for !slot.Empty() {
			tick()
		}
		sent = append(sent, c)
		return nil
	})
	if err != nil && !errors.Is(err, app.ErrEndOfMessage) {
		return string(sent), err
	}
	for tx.Phase() != keyer.Idle {
		tick()
	}
	return string(sent), nil
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
