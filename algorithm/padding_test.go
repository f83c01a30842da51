package algorithm

import (
	"bytes"
	"errors"
	"testing"
)

func TestAddPKCS7Padding(t *testing.T) {
	cases := []struct {
		block     []byte
		targetLen int
		want      []byte
	}{
		{
			[]byte("YELLOW SUBMARINE"),
			20,
			[]byte("YELLOW SUBMARINE\x04\x04\x04\x04"),
		},
		{
			[]byte("YELLOW SUBMARINE"),
			16,
			[]byte("YELLOW SUBMARINE"),
		},
		{
			[]byte{0},
			3,
			[]byte{0, 2, 2},
		},
		{
			nil,
			2,
			[]byte{2, 2},
		},
	}
	for _, c := range cases {
		got, err := AddPKCS7Padding(c.block, c.targetLen)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, c.want) {
			t.Errorf("AddPKCS7Padding(%q, %v) == %q, want %q", c.block, c.targetLen, got, c.want)
		}
		if len(got) != c.targetLen {
			t.Errorf("got length %v, want %v", len(got), c.targetLen)
		}
	}
}

func TestAddPKCS7PaddingCopies(t *testing.T) {
	block := []byte("abcd")
	got, _ := AddPKCS7Padding(block, 4)
	got[0] = 'z'
	if block[0] != 'a' {
		t.Error("AddPKCS7Padding returned the input buffer")
	}
}

func TestAddPKCS7PaddingInvalidLength(t *testing.T) {
	cases := []struct {
		block     []byte
		targetLen int
	}{
		{[]byte("YELLOW SUBMARINE"), 15},
		{[]byte{1}, 0},
		{nil, 256},
	}
	for _, c := range cases {
		if _, err := AddPKCS7Padding(c.block, c.targetLen); !errors.Is(err, ErrInvalidLength) {
			t.Errorf("AddPKCS7Padding(%q, %v) error %v, want %v", c.block, c.targetLen, err, ErrInvalidLength)
		}
	}
}

func TestStripPKCS7Padding(t *testing.T) {
	cases := []struct {
		data      []byte
		blockSize int
		want      []byte
		err       error
	}{
		{[]byte("ICE ICE BABY\x04\x04\x04\x04"), 16, []byte("ICE ICE BABY"), nil},
		{[]byte("ICE ICE BABY\x05\x05\x05\x05"), 16, nil, ErrInvalidPadding},
		{[]byte("ICE ICE BABY\x01\x02\x03\x04"), 16, nil, ErrInvalidPadding},
		{[]byte("YELLOW SUBMARINE\x04\x04\x04\x04"), 20, []byte("YELLOW SUBMARINE"), nil},
		{[]byte{3, 3, 3}, 2, nil, ErrInvalidPadding},
		{[]byte{1, 2, 0}, 16, nil, ErrInvalidPadding},
		{nil, 16, nil, ErrInvalidPadding},
	}
	for _, c := range cases {
		got, err := StripPKCS7Padding(c.data, c.blockSize)
		if !errors.Is(err, c.err) {
			t.Errorf("StripPKCS7Padding(%q) error %v, want %v", c.data, err, c.err)
			continue
		}
		if c.err == nil && !bytes.Equal(got, c.want) {
			t.Errorf("StripPKCS7Padding(%q) == %q, want %q", c.data, got, c.want)
		}
	}
}

func TestPad(t *testing.T) {
	cases := []struct {
		mode      PaddingMode
		data      []byte
		blockSize int
		want      []byte
	}{
		{PKCS7, []byte{1, 2, 3}, 4, []byte{1, 2, 3, 1}},
		{PKCS7, []byte{1, 2, 3, 4}, 4, []byte{1, 2, 3, 4}},
		{Zeros, []byte{1}, 4, []byte{1, 0, 0, 0}},
		{ANSIX923, []byte{1}, 4, []byte{1, 0, 0, 3}},
		{PKCS7, nil, 4, []byte{}},
	}
	for _, c := range cases {
		got, err := Pad(c.mode, c.data, c.blockSize)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, c.want) {
			t.Errorf("Pad(%v, %v, %v) == %v, want %v", c.mode, c.data, c.blockSize, got, c.want)
		}
	}
}

func TestPadStrict(t *testing.T) {
	got, err := PadStrict(PKCS7, []byte{1, 2, 3, 4}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{1, 2, 3, 4, 4, 4, 4, 4}; !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPadUnpad(t *testing.T) {
	inputs := [][]byte{
		[]byte("a"),
		[]byte("fifteen bytes!!"),
		[]byte("exactly sixteen!"),
		[]byte("more than a single block of text"),
	}
	for _, mode := range []PaddingMode{ANSIX923, PKCS7, ISO10126} {
		for _, in := range inputs {
			padded, err := PadStrict(mode, in, 16)
			if err != nil {
				t.Fatal(err)
			}
			if len(padded)%16 != 0 {
				t.Errorf("%v: padded length %v not a multiple of 16", mode, len(padded))
			}
			got, err := Unpad(mode, padded, 16)
			if err != nil {
				t.Fatalf("%v: %v", mode, err)
			}
			if !bytes.Equal(got, in) {
				t.Errorf("%v: got %q, want %q", mode, got, in)
			}
		}
	}
}

func TestUnpadANSIX923Invalid(t *testing.T) {
	if _, err := Unpad(ANSIX923, []byte{1, 0, 7, 3}, 4); !errors.Is(err, ErrInvalidPadding) {
		t.Errorf("got %v, want %v", err, ErrInvalidPadding)
	}
}

func TestParsePaddingMode(t *testing.T) {
	for _, mode := range []PaddingMode{Zeros, ANSIX923, PKCS7, ISO10126} {
		got, err := ParsePaddingMode(mode.String())
		if err != nil || got != mode {
			t.Errorf("ParsePaddingMode(%q) == %v, %v", mode.String(), got, err)
		}
	}
	if _, err := ParsePaddingMode("PKCS5"); !errors.Is(err, ErrUnknownPadding) {
		t.Errorf("got %v, want %v", err, ErrUnknownPadding)
	}
}
