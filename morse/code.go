package morse

import (
	"errors"
	"fmt"
	"strings"
)

// Unit is one 2-bit element of a Code.
type Unit uint8

const (
	// End marks the end of a code. It is never transmitted.
	End Unit = 0b00
	// Dot is a short pulse.
	Dot Unit = 0b01
	// Dash is a long pulse.
	Dash Unit = 0b10
	// Silence keeps the line low for a word gap. Only the space entry uses it.
	Silence Unit = 0b11

	unitBits = 2
	unitMask = 0b11
)

func (u Unit) String() string {
	switch u {
	case Dot:
		return "."
	case Dash:
		return "-"
	case Silence:
		return "/"
	default:
		return "?"
	}
}

// Code is a packed Morse symbol. Units are consumed from the
// least-significant pair upward; a zero code has no units left.
type Code uint16

// MaxUnits is the number of units a Code can hold.
const MaxUnits = 16 / unitBits

// Head returns the next unit to transmit.
func (c Code) Head() Unit { return Unit(c & unitMask) }

// Shift drops the head unit.
func (c Code) Shift() Code { return c >> unitBits }

// Empty reports whether no units are left.
func (c Code) Empty() bool { return c == 0 }

// Units unpacks the code in transmission order.
func (c Code) Units() []Unit {
	var out []Unit
	for ; c != 0; c = c.Shift() {
		out = append(out, c.Head())
	}
	return out
}

func (c Code) String() string {
	var b strings.Builder
	for _, u := range c.Units() {
		b.WriteString(u.String())
	}
	return b.String()
}

// ErrNotEncodable is returned by Encode for characters outside the table.
// Callers treat it as end of message.
var ErrNotEncodable = errors.New("morse: character not encodable")

// ErrPattern reports a malformed pattern string.
var ErrPattern = errors.New("morse: invalid pattern")

const (
	letters    = 26
	periodIdx  = 26
	spaceIdx   = 27
	tableSize  = 28
	periodChar = '.'
	spaceChar  = ' '
)

// table maps a character index to its code. Bits read right to left.
var table = [tableSize]Code{
	0x0009, // A .-
	0x0056, // B -...
	0x0066, // C -.-.
	0x0016, // D -..
	0x0001, // E .
	0x0065, // F ..-.
	0x001A, // G --.
	0x0055, // H ....
	0x0005, // I ..
	0x00A9, // J .---
	0x0026, // K -.-
	0x0059, // L .-..
	0x000A, // M --
	0x0006, // N -.
	0x002A, // O ---
	0x0069, // P .--.
	0x009A, // Q --.-
	0x0019, // R .-.
	0x0015, // S ...
	0x0002, // T -
	0x0025, // U ..-
	0x0095, // V ...-
	0x0029, // W .--
	0x0096, // X -..-
	0x00A6, // Y -.--
	0x005A, // Z --..
	0x0555, // . ......
	0x0003, // space, one word gap
}

// Index returns the table index of c.
func Index(c byte) (int, bool) {
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A'), true
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c == periodChar:
		return periodIdx, true
	case c == spaceChar:
		return spaceIdx, true
	default:
		return -1, false
	}
}

// Encode returns the packed code for c.
func Encode(c byte) (Code, error) {
	idx, ok := Index(c)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotEncodable, c)
	}
	return table[idx], nil
}

// IsPeriod reports whether c is the literal dot character.
func IsPeriod(c byte) bool { return c == periodChar }

// Pattern packs a string of '.', '-' and '/' into a Code.
func Pattern(s string) (Code, error) {
	if len(s) == 0 || len(s) > MaxUnits {
		return 0, fmt.Errorf("%w: length %d", ErrPattern, len(s))
	}
	var c Code
	for i := 0; i < len(s); i++ {
		var u Unit
		switch s[i] {
		case '.':
			u = Dot
		case '-':
			u = Dash
		case '/':
			u = Silence
		default:
			return 0, fmt.Errorf("%w: %q at %d", ErrPattern, s[i], i)
		}
		c |= Code(u) << (unitBits * i)
	}
	return c, nil
}

// Decode returns the character whose table entry is c. Letters decode to
// upper case.
func Decode(c Code) (byte, bool) {
	for i, code := range table {
		if code != c {
			continue
		}
		switch {
		case i < letters:
			return byte('A' + i), true
		case i == periodIdx:
			return periodChar, true
		default:
			return spaceChar, true
		}
	}
	return 0, false
}
