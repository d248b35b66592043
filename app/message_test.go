package app

import (
	"errors"
	"testing"

	"beacon/morse"
)

func walk(t *testing.T, msg string, stopAtPeriod bool) (string, error) {
	t.Helper()
	var sent []byte
	err := Walk(msg, stopAtPeriod, func(c byte, code morse.Code) error {
		want, err := morse.Encode(c)
		if err != nil || code != want {
			t.Fatalf("send(%q, %s), want code %s", c, code, want)
		}
		sent = append(sent, c)
		return nil
	})
	return string(sent), err
}

func TestWalkStopsAtPeriod(t *testing.T) {
	got, err := walk(t, "Hi. there", true)
	if err != nil || got != "Hi." {
		t.Fatalf("Walk = %q, %v, want %q, nil", got, err, "Hi.")
	}
	got, err = walk(t, "Hi. there", false)
	if err != nil || got != "Hi. there" {
		t.Fatalf("Walk = %q, %v, want %q, nil", got, err, "Hi. there")
	}
}

func TestWalkEndsAtNotEncodable(t *testing.T) {
	got, err := walk(t, "SOS1X", true)
	if got != "SOS" {
		t.Fatalf("sent %q, want SOS", got)
	}
	if !errors.Is(err, ErrEndOfMessage) || !errors.Is(err, morse.ErrNotEncodable) {
		t.Fatalf("Walk err = %v, want ErrEndOfMessage wrapping ErrNotEncodable", err)
	}
}

func TestWalkStopsOnSendError(t *testing.T) {
	boom := errors.New("boom")
	n := 0
	err := Walk("ABC", true, func(byte, morse.Code) error {
		n++
		if n == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) || n != 2 {
		t.Fatalf("Walk err = %v after %d sends, want boom after 2", err, n)
	}
}
