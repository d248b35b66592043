package morse

import (
	"errors"
	"testing"
)

func TestEncodeCaseInsensitive(t *testing.T) {
	for c := byte('A'); c <= 'Z'; c++ {
		upper, err := Encode(c)
		if err != nil {
			t.Fatalf("Encode(%q): %v", c, err)
		}
		lower, err := Encode(c + ('a' - 'A'))
		if err != nil {
			t.Fatalf("Encode(%q): %v", c+('a'-'A'), err)
		}
		if upper != lower {
			t.Fatalf("Encode(%q) = %#x, Encode(lower) = %#x", c, upper, lower)
		}
	}
}

func TestEncodeNotEncodable(t *testing.T) {
	for _, c := range []byte{0, '0', '9', ',', '?', '\n', '@', '[', '`', '{', 0x7f, 0xff} {
		code, err := Encode(c)
		if !errors.Is(err, ErrNotEncodable) {
			t.Fatalf("Encode(%q) err = %v, want ErrNotEncodable", c, err)
		}
		if code != 0 {
			t.Fatalf("Encode(%q) = %#x, want 0", c, code)
		}
	}
}

func TestTableMatchesPatterns(t *testing.T) {
	patterns := map[byte]string{
		'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
		'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
		'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
		'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
		'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
		'Z': "--..", '.': "......", ' ': "/",
	}
	for c, p := range patterns {
		want, err := Pattern(p)
		if err != nil {
			t.Fatalf("Pattern(%q): %v", p, err)
		}
		got, err := Encode(c)
		if err != nil {
			t.Fatalf("Encode(%q): %v", c, err)
		}
		if got != want {
			t.Fatalf("Encode(%q) = %#x (%s), want %#x (%s)", c, got, got, want, p)
		}
		if got.String() != p {
			t.Fatalf("Encode(%q).String() = %q, want %q", c, got.String(), p)
		}
	}
}

func TestCodeUnitsNeverEmitEnd(t *testing.T) {
	for i, code := range table {
		for j, u := range code.Units() {
			if u == End {
				t.Fatalf("table[%d] unit %d is End", i, j)
			}
			if u == Silence && i != spaceIdx {
				t.Fatalf("table[%d] unit %d is Silence", i, j)
			}
		}
	}
}

func TestCodeHeadShift(t *testing.T) {
	code, err := Encode('A')
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if code.Head() != Dot {
		t.Fatalf("Head() = %v, want dot", code.Head())
	}
	code = code.Shift()
	if code.Head() != Dash {
		t.Fatalf("Head() after Shift = %v, want dash", code.Head())
	}
	code = code.Shift()
	if !code.Empty() {
		t.Fatalf("code = %#x after two shifts, want empty", code)
	}
}

func TestPeriodIsSixDots(t *testing.T) {
	code, err := Encode('.')
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	units := code.Units()
	if len(units) != 6 {
		t.Fatalf("len(Units()) = %d, want 6", len(units))
	}
	for i, u := range units {
		if u != Dot {
			t.Fatalf("unit %d = %v, want dot", i, u)
		}
	}
}

func TestPatternErrors(t *testing.T) {
	for _, p := range []string{"", ".-x", "........."} {
		if _, err := Pattern(p); !errors.Is(err, ErrPattern) {
			t.Fatalf("Pattern(%q) err = %v, want ErrPattern", p, err)
		}
	}
}

func TestDecodeInvertsEncode(t *testing.T) {
	for _, c := range []byte("abcXYZ. ") {
		code, err := Encode(c)
		if err != nil {
			t.Fatalf("Encode(%q): %v", c, err)
		}
		got, ok := Decode(code)
		want := c
		if c >= 'a' && c <= 'z' {
			want = c - 'a' + 'A'
		}
		if !ok || got != want {
			t.Fatalf("Decode(%s) = %q, %v, want %q", code, got, ok, want)
		}
	}
	if _, ok := Decode(0x00FF); ok {
		t.Fatal("Decode(0x00FF) ok = true, want false")
	}
}
