package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/lbgsct/cryptobreak/algorithm"
)

const iceVector = "0b3637272a2b2e63622c2e69692a23693a2a3c6324202d623d63343c2a26226324272765272a282b2f20430a652e2c652a3124333a653e2b2027630c692b20283165286326302e27282f"

func run(t *testing.T, cfg config, input string) string {
	t.Helper()
	if cfg.encoding == "" {
		cfg.encoding = "raw"
	}
	if cfg.padding == "" {
		cfg.padding = "PKCS7"
	}
	if cfg.blockSize == 0 {
		cfg.blockSize = 16
	}
	var out bytes.Buffer
	if err := runTask(cfg, strings.NewReader(input), &out); err != nil {
		t.Fatalf("%s: %v", cfg.task, err)
	}
	return out.String()
}

func TestValidate(t *testing.T) {
	cases := []struct {
		cfg config
		ok  bool
	}{
		{config{task: "pad", encoding: "raw"}, true},
		{config{task: "", encoding: "raw"}, false},
		{config{task: "rot13", encoding: "raw"}, false},
		{config{task: "pad", encoding: "ascii85"}, false},
		{config{task: "repeating-xor", encoding: "base64", minKey: 10, maxKey: 2}, false},
	}
	for _, c := range cases {
		if err := c.cfg.validate(); (err == nil) != c.ok {
			t.Errorf("%+v: got %v, want ok=%v", c.cfg, err, c.ok)
		}
	}
}

func TestPadTask(t *testing.T) {
	got := run(t, config{task: "pad", blockSize: 20}, "YELLOW SUBMARINE")
	if got != "YELLOW SUBMARINE\x04\x04\x04\x04" {
		t.Errorf("got %q", got)
	}
}

func TestCBCTasks(t *testing.T) {
	enc := run(t, config{task: "cbc-encrypt", encoding: "hex", key: "YELLOW SUBMARINE", iv: "hex:00000000000000000000000000000000", strict: true}, "attack at dawn, attack at dusk")
	ct, err := hex.DecodeString(strings.TrimSpace(enc))
	if err != nil {
		t.Fatal(err)
	}
	if len(ct) != 32 {
		t.Errorf("got %d bytes, want 32", len(ct))
	}

	dec := run(t, config{task: "cbc-decrypt", encoding: "hex", key: "YELLOW SUBMARINE", iv: "hex:00000000000000000000000000000000", unpad: true}, enc)
	if dec != "attack at dawn, attack at dusk" {
		t.Errorf("got %q", dec)
	}
}

func TestXorEncryptTask(t *testing.T) {
	got := run(t, config{task: "xor-encrypt", key: "ICE"}, "Burning 'em, if you ain't quick and nimble\nI go crazy when I hear a cymbal")
	if strings.TrimSpace(got) != iceVector {
		t.Errorf("got %s, want %s", got, iceVector)
	}
}

func TestSingleXorTask(t *testing.T) {
	got := run(t, config{task: "single-xor", encoding: "hex"}, "1b37373331363f78151b7f2b783431333d78397828372d363c78373e783a393b3736\n")
	if !strings.Contains(got, "key: 0x58 'X'") || !strings.Contains(got, "Cooking MC's like a pound of bacon") {
		t.Errorf("got %q", got)
	}
}

func TestRepeatingXorTask(t *testing.T) {
	plain := "The quick analyst reads the ciphertext twice before she guesses the key. " +
		"Each column of a repeating key behaves like a single byte cipher, and the letters of plain English " +
		"give the key away when there is enough text in every column to count them with some confidence."
	ct := hex.EncodeToString(algorithm.RepeatingKeyXOR([]byte(plain), []byte("ICE")))
	got := run(t, config{task: "repeating-xor", encoding: "hex", minKey: 2, maxKey: 40, keySize: 3}, ct)
	if !strings.Contains(got, `key: "ICE"`) {
		t.Errorf("got %q", got)
	}
}

func TestDetectECBTask(t *testing.T) {
	block := strings.Repeat("ab", 16)
	input := strings.Join([]string{
		strings.Repeat("01", 48),
		"",
		block + strings.Repeat("cd", 16) + block,
	}, "\n")
	got := run(t, config{task: "detect-ecb"}, input)
	want := "line 1: 2 repeated blocks\nline 3: 1 repeated blocks\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := run(t, config{task: "detect-ecb"}, strings.Repeat("0f", 16)); got != "no ECB ciphertexts found\n" {
		t.Errorf("got %q", got)
	}
}

func TestDetectSingleXorBadHex(t *testing.T) {
	var out bytes.Buffer
	err := runTask(config{task: "detect-single-xor"}, strings.NewReader("00ff\nnot hex\n"), &out)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("got %v, want error on line 2", err)
	}
}

func TestOracleTask(t *testing.T) {
	got := run(t, config{task: "oracle", runs: 10}, "")
	if !strings.Contains(got, "correct: 10\n") {
		t.Errorf("got %q", got)
	}
}
