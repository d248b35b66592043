package app

import (
	"errors"
	"fmt"

	"beacon/morse"
)

// ErrEndOfMessage reports that a character with no code ended the message
// early. The characters before it were sent.
var ErrEndOfMessage = errors.New("end of message")

// Walk passes each character of msg that the beacon transmits to send, in
// order, with its code. It stops at the first character without a code,
// returning ErrEndOfMessage, after a '.' when stopAtPeriod is set, or at the
// first error from send.
func Walk(msg string, stopAtPeriod bool, send func(c byte, code morse.Code) error) error {
	for i := 0; i < len(msg); i++ {
		c := msg[i]
		code, err := morse.Encode(c)
		if err != nil {
			return fmt.Errorf("%w at %d: %w", ErrEndOfMessage, i, err)
		}
		if err := send(c, code); err != nil {
			return err
		}
		if stopAtPeriod && morse.IsPeriod(c) {
			return nil
		}
	}
	return nil
}
