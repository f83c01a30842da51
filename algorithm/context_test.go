package algorithm

import (
	"bytes"
	"errors"
	"testing"
)

func TestCryptoSymmetricContext(t *testing.T) {
	inputs := [][]byte{
		[]byte("short"),
		[]byte("exactly sixteen!"),
		[]byte("a message spanning three aes blocks, more or less."),
	}
	for _, mode := range []CipherMode{ECB, CBC} {
		for _, padding := range []PaddingMode{ANSIX923, PKCS7, ISO10126} {
			ctx, err := NewCryptoSymmetricContext(testKey, NewAES(), mode, padding, testIV, 16)
			if err != nil {
				t.Fatal(err)
			}
			ctx.SetStrictPadding(true)
			for _, in := range inputs {
				ct, err := ctx.Encrypt(in)
				if err != nil {
					t.Fatal(err)
				}
				got, err := ctx.DecryptAndUnpad(ct)
				if err != nil {
					t.Fatalf("%v/%v: %v", mode, padding, err)
				}
				if !bytes.Equal(got, in) {
					t.Errorf("%v/%v: got %q, want %q", mode, padding, got, in)
				}
			}
		}
	}
}

func TestCryptoSymmetricContextRawDecrypt(t *testing.T) {
	ctx, err := NewCryptoSymmetricContext(testKey, NewAES(), CBC, PKCS7, testIV, 16)
	if err != nil {
		t.Fatal(err)
	}
	ct, _ := ctx.Encrypt([]byte("YELLOW SUBMARINE"))
	if len(ct) != 16 {
		t.Errorf("aligned input got %v bytes of ciphertext, want 16", len(ct))
	}
	got, _ := ctx.Decrypt(ct)
	if string(got) != "YELLOW SUBMARINE" {
		t.Errorf("got %q", got)
	}
}

func TestCryptoSymmetricContextAsync(t *testing.T) {
	ctx, _ := NewCryptoSymmetricContext(testKey, NewAES(), CBC, PKCS7, testIV, 16)

	encrypted, errChan := ctx.EncryptAsync([]byte("async"))
	var ct []byte
	select {
	case ct = <-encrypted:
	case err := <-errChan:
		t.Fatal(err)
	}

	decrypted, errChan := ctx.DecryptAsync(ct[:15])
	select {
	case got := <-decrypted:
		t.Errorf("truncated ciphertext decrypted to %q", got)
	case err := <-errChan:
		if !errors.Is(err, ErrInvalidCiphertextLength) {
			t.Errorf("got %v, want %v", err, ErrInvalidCiphertextLength)
		}
	}
}

func TestNewCryptoSymmetricContextErrors(t *testing.T) {
	cases := []struct {
		key     []byte
		mode    CipherMode
		padding PaddingMode
		iv      []byte
		err     error
	}{
		{testKey[:10], ECB, PKCS7, nil, ErrInvalidKeyLength},
		{testKey, CBC, PKCS7, nil, ErrInvalidIVLength},
		{testKey, CipherMode(7), PKCS7, testIV, ErrUnknownMode},
		{testKey, ECB, PaddingMode(9), nil, ErrUnknownPadding},
	}
	for _, c := range cases {
		if _, err := NewCryptoSymmetricContext(c.key, NewAES(), c.mode, c.padding, c.iv, 16); !errors.Is(err, c.err) {
			t.Errorf("got %v, want %v", err, c.err)
		}
	}
}
