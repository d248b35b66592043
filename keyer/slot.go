package keyer

import (
	"context"
	"runtime"
	"sync/atomic"

	"beacon/morse"
)

// Slot hands one code from the producer to the transmitter.
//
// The producer only writes an empty slot; the transmitter only shifts a
// non-empty one. At most one symbol is in flight.
type Slot struct {
	_    [0]func() // prevent accidental copying.
	code atomic.Uint32
}

// Put stores code if the slot is empty and reports whether it did.
func (s *Slot) Put(code morse.Code) bool {
	return s.code.CompareAndSwap(0, uint32(code))
}

// Load returns the code still waiting to be transmitted.
func (s *Slot) Load() morse.Code { return morse.Code(s.code.Load()) }

// Empty reports whether the transmitter has consumed every unit.
func (s *Slot) Empty() bool { return s.code.Load() == 0 }

// Wait spins until the slot is empty.
func (s *Slot) Wait(ctx context.Context) error {
	for !s.Empty() {
		if err := ctx.Err(); err != nil {
			return err
		}
		runtime.Gosched()
	}
	return nil
}

// Send waits for the slot to drain, then stores code.
func (s *Slot) Send(ctx context.Context, code morse.Code) error {
	for !s.Put(code) {
		if err := s.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// shift drops the head unit and returns what is left of the code it
// shifted. Only the transmitter calls it. A zero result means the symbol is
// complete, even if the producer has already refilled the slot.
func (s *Slot) shift() morse.Code {
	for {
		cur := s.code.Load()
		if cur == 0 {
			return 0
		}
		rest := morse.Code(cur).Shift()
		if s.code.CompareAndSwap(cur, uint32(rest)) {
			return rest
		}
	}
}

func (s *Slot) clear() { s.code.Store(0) }
