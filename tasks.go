package main

import (
	"bufio"
	"bytes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lbgsct/cryptobreak/algorithm"
)

type config struct {
	task      string
	input     string
	output    string
	key       string
	iv        string
	encoding  string
	padding   string
	strict    bool
	unpad     bool
	blockSize int
	minKey    int
	maxKey    int
	keySize   int
	runs      int
}

func (c config) validate() error {
	switch c.task {
	case "pad", "cbc-encrypt", "cbc-decrypt", "single-xor", "detect-single-xor",
		"repeating-xor", "xor-encrypt", "detect-ecb", "oracle":
	case "":
		return errors.New("task is required")
	default:
		return fmt.Errorf("invalid task %q", c.task)
	}
	switch c.encoding {
	case "raw", "hex", "base64":
	default:
		return fmt.Errorf("invalid encoding %q, choose from: raw, hex, base64", c.encoding)
	}
	if c.minKey > c.maxKey {
		return fmt.Errorf("invalid key size range %d..%d", c.minKey, c.maxKey)
	}
	return nil
}

// Ключ и IV задаются текстом или с префиксом hex:
func parseSecret(s string) ([]byte, error) {
	if strings.HasPrefix(s, "hex:") {
		return hex.DecodeString(strings.TrimPrefix(s, "hex:"))
	}
	return []byte(s), nil
}

func decodeInput(encoding string, data []byte) ([]byte, error) {
	switch encoding {
	case "hex":
		return hex.DecodeString(string(bytes.Join(bytes.Fields(data), nil)))
	case "base64":
		return base64.StdEncoding.DecodeString(string(bytes.Join(bytes.Fields(data), nil)))
	default:
		return data, nil
	}
}

func encodeOutput(encoding string, data []byte) []byte {
	switch encoding {
	case "hex":
		return []byte(hex.EncodeToString(data) + "\n")
	case "base64":
		return []byte(base64.StdEncoding.EncodeToString(data) + "\n")
	default:
		return data
	}
}

// Построчный hex, как в наборах шифртекстов для поиска.
// Пустые строки пропускаются, numbers хранит исходные номера строк.
func readHexLines(in io.Reader) (res [][]byte, numbers []int, err error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			continue
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		res = append(res, b)
		numbers = append(numbers, line)
	}
	return res, numbers, scanner.Err()
}

func runTask(cfg config, in io.Reader, out io.Writer) error {
	switch cfg.task {
	case "detect-single-xor":
		return detectSingleXor(in, out)
	case "detect-ecb":
		return detectECB(in, out)
	case "xor-encrypt":
		return xorEncrypt(cfg, in, out)
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	data, err := decodeInput(cfg.encoding, raw)
	if err != nil {
		return fmt.Errorf("failed to decode input: %w", err)
	}

	switch cfg.task {
	case "pad":
		mode, err := algorithm.ParsePaddingMode(cfg.padding)
		if err != nil {
			return err
		}
		pad := algorithm.Pad
		if cfg.strict {
			pad = algorithm.PadStrict
		}
		res, err := pad(mode, data, cfg.blockSize)
		if err != nil {
			return err
		}
		_, err = out.Write(encodeOutput(cfg.encoding, res))
		return err
	case "cbc-encrypt", "cbc-decrypt":
		return cbc(cfg, data, out)
	case "single-xor":
		best, err := algorithm.BreakSingleByteXOR(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "key: %#02x %q\nscore: %.4f\n%s\n", best.Key, best.Key, best.Score, best.Plaintext)
		return nil
	case "repeating-xor":
		opts := []algorithm.BreakOption{algorithm.WithKeySizeRange(cfg.minKey, cfg.maxKey)}
		if cfg.keySize > 0 {
			opts = append(opts, algorithm.WithKeySize(cfg.keySize))
		}
		res, err := algorithm.BreakRepeatingKeyXOR(data, opts...)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "key size: %d (distance %.4f)\nkey: %q\n%s\n", res.KeySize, res.Distance, res.Key, res.Plaintext)
		return nil
	case "oracle":
		return oracle(cfg, data, out)
	}
	return fmt.Errorf("unknown task %q", cfg.task)
}

func cbc(cfg config, data []byte, out io.Writer) error {
	key, err := parseSecret(cfg.key)
	if err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}
	iv, err := parseSecret(cfg.iv)
	if err != nil {
		return fmt.Errorf("invalid IV: %w", err)
	}
	mode, err := algorithm.ParsePaddingMode(cfg.padding)
	if err != nil {
		return err
	}

	aes := algorithm.NewAES()
	ctx, err := algorithm.NewCryptoSymmetricContext(key, aes, algorithm.CBC, mode, iv, aes.BlockSize())
	if err != nil {
		return err
	}
	ctx.SetStrictPadding(cfg.strict)

	var res []byte
	switch {
	case cfg.task == "cbc-encrypt":
		res, err = ctx.Encrypt(data)
	case cfg.unpad:
		res, err = ctx.DecryptAndUnpad(data)
	default:
		res, err = ctx.Decrypt(data)
	}
	if err != nil {
		return err
	}

	if cfg.task == "cbc-encrypt" {
		_, err = out.Write(encodeOutput(cfg.encoding, res))
	} else {
		_, err = out.Write(res)
	}
	return err
}

// Потоковое шифрование повторяющимся XOR, вывод всегда в hex
func xorEncrypt(cfg config, in io.Reader, out io.Writer) error {
	key, err := parseSecret(cfg.key)
	if err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}
	if len(key) == 0 {
		return errors.New("key is required")
	}
	w := cipher.StreamWriter{S: algorithm.NewRepeatingXOR(key), W: hex.NewEncoder(out)}
	if _, err := io.Copy(w, in); err != nil {
		return err
	}
	_, err = io.WriteString(out, "\n")
	return err
}

func detectSingleXor(in io.Reader, out io.Writer) error {
	lines, numbers, err := readHexLines(in)
	if err != nil {
		return err
	}
	idx, best, err := algorithm.DetectSingleByteXOR(lines)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "line: %d\nkey: %#02x %q\nscore: %.4f\n%s\n", numbers[idx], best.Key, best.Key, best.Score, best.Plaintext)
	return nil
}

func detectECB(in io.Reader, out io.Writer) error {
	lines, numbers, err := readHexLines(in)
	if err != nil {
		return err
	}
	found := algorithm.FindECB(lines, 16)
	if len(found) == 0 {
		fmt.Fprintln(out, "no ECB ciphertexts found")
		return nil
	}
	for _, i := range found {
		fmt.Fprintf(out, "line %d: %d repeated blocks\n", numbers[i], algorithm.RepeatedBlocks(lines[i], 16))
	}
	return nil
}

func oracle(cfg config, data []byte, out io.Writer) error {
	if len(data) == 0 {
		data = make([]byte, 48)
	}
	report, err := algorithm.MeasureDetection(algorithm.NewModeOracle(algorithm.NewAES()), data, cfg.runs)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "runs: %d\ncorrect: %d\nfalse positives: %d\nfalse negatives: %d\naccuracy: %.2f%%\n",
		report.Runs, report.Correct, report.FalsePositives, report.FalseNegatives, 100*report.Accuracy())
	return nil
}
