//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
}

// NewApp builds the step function run once per tick.
type NewApp func(HAL) (func() error, error)

// RunHeadless runs the beacon without opening a window. A step returning
// ErrStop ends the run without error.
func RunHeadless(ctx context.Context, newApp NewApp, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHostHAL(os.Stdout, d)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	t := time.NewTicker(d)
	defer t.Stop()

	return runTicks(ctx, h, step, t.C, cfg.Ticks)
}

func runTicks(ctx context.Context, h *hostHAL, step func() error, c <-chan time.Time, limit uint64) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c:
			seq := h.t.step()
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrStop) {
						return nil
					}
					return err
				}
			}
			if limit > 0 && seq >= limit {
				return nil
			}
		}
	}
}
