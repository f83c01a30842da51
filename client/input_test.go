package main

import (
	"bytes"
	"testing"
)

func TestParseInput(t *testing.T) {
	cases := []struct {
		in   string
		want []byte
	}{
		{"YELLOW SUBMARINE", []byte("YELLOW SUBMARINE")},
		{"hex:49434500", []byte("ICE\x00")},
		{"b64:SUNF", []byte("ICE")},
		{"", []byte{}},
	}
	for _, c := range cases {
		got, err := parseInput(c.in)
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if !bytes.Equal(got, c.want) {
			t.Errorf("%q: got %q, want %q", c.in, got, c.want)
		}
	}

	for _, in := range []string{"hex:zz", "b64:***"} {
		if _, err := parseInput(in); err == nil {
			t.Errorf("%q: want error", in)
		}
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 40},
		{"29", 29},
	}
	for _, c := range cases {
		got, err := parseNumber(c.in, 40)
		if err != nil || got != c.want {
			t.Errorf("%q: got %d (%v), want %d", c.in, got, err, c.want)
		}
	}
	if _, err := parseNumber("many", 1); err == nil {
		t.Error("want error")
	}
}

func TestFormatOutput(t *testing.T) {
	cases := []struct {
		in   []byte
		want string
	}{
		{[]byte("Cooking MC's like a pound of bacon"), "Cooking MC's like a pound of bacon"},
		{[]byte("line\nnext"), "line\nnext"},
		{[]byte{0x04, 0x04}, "hex:0404"},
	}
	for _, c := range cases {
		if got := formatOutput(c.in); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}
