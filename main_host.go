//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"beacon/app"
	"beacon/hal"
	"beacon/internal/buildinfo"
)

func main() {
	var hcfg hal.HeadlessConfig
	cfg := app.DefaultConfig()
	var toneHz uint
	var version bool
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 10, "Tick rate.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&cfg.Message, "message", cfg.Message, "Message to transmit.")
	flag.StringVar(&cfg.Pin, "pin", cfg.Pin, "GPIO pin keyed by the transmitter.")
	flag.DurationVar(&cfg.Dot, "dot", cfg.Dot, "Dot length.")
	flag.BoolVar(&cfg.StopAtPeriod, "stop-at-period", cfg.StopAtPeriod, "End the message after the first '.'.")
	flag.BoolVar(&cfg.ExitWhenDone, "exit", false, "Exit once the message has been sent.")
	flag.BoolVar(&cfg.Sidetone, "sidetone", false, "Play a tone while the line is keyed.")
	flag.UintVar(&toneHz, "tone-hz", uint(cfg.ToneHz), "Sidetone pitch.")
	flag.BoolVar(&version, "version", false, "Print version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}
	cfg.ToneHz = uint32(toneHz)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	newApp := func(h hal.HAL) (func() error, error) {
		a, err := app.New(h, cfg)
		if err != nil {
			return nil, err
		}
		a.Start(ctx)
		return a.Step, nil
	}

	var err error
	if hcfg.Enabled {
		err = hal.RunHeadless(ctx, newApp, hcfg)
	} else {
		err = hal.RunWindow(newApp, hcfg.Hz)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
