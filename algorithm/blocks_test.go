package algorithm

import (
	"bytes"
	"encoding/hex"
	"errors"
	"reflect"
	"testing"
)

func TestBlocks(t *testing.T) {
	cases := []struct {
		buf  []byte
		n    int
		want [][]byte
	}{
		{
			[]byte{1, 2},
			3,
			nil,
		},
		{
			[]byte{1, 2, 3, 4, 5, 6},
			3,
			[][]byte{
				{1, 2, 3},
				{4, 5, 6},
			},
		},
		{
			[]byte{1, 2, 3, 4, 5},
			2,
			[][]byte{
				{1, 2},
				{3, 4},
			},
		},
	}
	for _, c := range cases {
		got := Blocks(c.buf, c.n)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Blocks(%v, %v) == %v, want %v", c.buf, c.n, got, c.want)
		}
	}
}

func TestChunks(t *testing.T) {
	cases := []struct {
		buf  []byte
		n    int
		want [][]byte
	}{
		{
			nil,
			3,
			nil,
		},
		{
			[]byte{1, 2},
			3,
			[][]byte{{1, 2}},
		},
		{
			[]byte{1, 2, 3, 4, 5},
			2,
			[][]byte{
				{1, 2},
				{3, 4},
				{5},
			},
		},
	}
	for _, c := range cases {
		got := Chunks(c.buf, c.n)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Chunks(%v, %v) == %v, want %v", c.buf, c.n, got, c.want)
		}
	}
}

func TestXORBytes(t *testing.T) {
	a, _ := hex.DecodeString("1c0111001f010100061a024b53535009181c")
	b, _ := hex.DecodeString("686974207468652062756c6c277320657965")
	got, err := XORBytes(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if want := "746865206b696420646f6e277420706c6179"; hex.EncodeToString(got) != want {
		t.Errorf("got %x, want %v", got, want)
	}
	if _, err := XORBytes(a, b[1:]); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("got %v, want %v", err, ErrLengthMismatch)
	}
}

func TestXORSingleByte(t *testing.T) {
	cases := []struct {
		src  []byte
		b    byte
		want []byte
	}{
		{
			[]byte{0, 1, 2, 3, 4, 5},
			1,
			[]byte{1, 0, 3, 2, 5, 4},
		},
		{
			[]byte{0, 1, 2, 3, 4, 5},
			3,
			[]byte{3, 2, 1, 0, 7, 6},
		},
	}
	dst := make([]byte, 6)
	for _, c := range cases {
		XORSingleByte(dst, c.src, c.b)
		if !bytes.Equal(dst, c.want) {
			t.Errorf("got %v, want %v", dst, c.want)
		}
	}
}

func TestRepeatingKeyXOR(t *testing.T) {
	in := "Burning 'em, if you ain't quick and nimble\nI go crazy when I hear a cymbal"
	want := "0b3637272a2b2e63622c2e69692a23693a2a3c6324202d623d63343c2a26226324272765272a282b2f20430a652e2c652a3124333a653e2b2027630c692b20283165286326302e27282f"

	got := RepeatingKeyXOR([]byte(in), []byte("ICE"))
	if hex.EncodeToString(got) != want {
		t.Errorf("got %x, want %v", got, want)
	}
	if back := RepeatingKeyXOR(got, []byte("ICE")); string(back) != in {
		t.Errorf("got %q, want %q", back, in)
	}
}

func TestRepeatingXORStream(t *testing.T) {
	cases := []struct {
		key       []byte
		src, want []byte
	}{
		{
			[]byte{1, 2},
			[]byte{1, 2, 3, 4, 5, 6},
			[]byte{0, 0, 2, 6, 4, 4},
		},
		{
			[]byte{1, 2, 3},
			[]byte{1, 2, 3, 4, 5, 6},
			[]byte{0, 0, 0, 5, 7, 5},
		},
	}
	for _, c := range cases {
		// Поток должен продолжать ключ между вызовами.
		stream := NewRepeatingXOR(c.key)
		dst := make([]byte, len(c.src))
		stream.XORKeyStream(dst[:1], c.src[:1])
		stream.XORKeyStream(dst[1:], c.src[1:])
		if !bytes.Equal(dst, c.want) {
			t.Errorf("got %v, want %v", dst, c.want)
		}
	}
}
