package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lbgsct/cryptobreak/algorithm"
)

func main() {
	// Флаги для выбора задачи и настроек
	cfg := config{}
	flag.StringVar(&cfg.task, "task", "", "Task: pad, cbc-encrypt, cbc-decrypt, single-xor, detect-single-xor, repeating-xor, xor-encrypt, detect-ecb, oracle")
	flag.StringVar(&cfg.input, "input", "-", "Path to input file, - for stdin")
	flag.StringVar(&cfg.output, "output", "-", "Path to output file, - for stdout")
	flag.StringVar(&cfg.key, "key", "", "Key as text or hex:...")
	flag.StringVar(&cfg.iv, "iv", "", "Initialization vector as text or hex:... (CBC)")
	flag.StringVar(&cfg.encoding, "encoding", "raw", "Encoding of binary input and output: raw, hex, base64")
	flag.StringVar(&cfg.padding, "padding", "PKCS7", "Padding mode: Zeros, ANSIX923, PKCS7, ISO10126")
	flag.BoolVar(&cfg.strict, "strict", false, "Always add a padding block, even for aligned input")
	flag.BoolVar(&cfg.unpad, "unpad", true, "Strip padding after CBC decryption")
	flag.IntVar(&cfg.blockSize, "block", 16, "Block size for pad")
	flag.IntVar(&cfg.minKey, "min-key", algorithm.DefaultMinKeySize, "Smallest repeating-key size to try")
	flag.IntVar(&cfg.maxKey, "max-key", algorithm.DefaultMaxKeySize, "Largest repeating-key size to try")
	flag.IntVar(&cfg.keySize, "key-size", 0, "Fixed repeating-key size, skips estimation")
	flag.IntVar(&cfg.runs, "runs", 100, "Oracle rounds")
	flag.Parse()

	if err := cfg.validate(); err != nil {
		fmt.Println(err)
		flag.Usage()
		os.Exit(1)
	}

	// Читаем входные данные
	var in io.Reader = os.Stdin
	if cfg.input != "-" {
		f, err := os.Open(cfg.input)
		if err != nil {
			fmt.Printf("Failed to read input file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = os.Stdout
	if cfg.output != "-" {
		f, err := os.Create(cfg.output)
		if err != nil {
			fmt.Printf("Failed to create output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := runTask(cfg, in, out); err != nil {
		fmt.Printf("Task %s failed: %v\n", cfg.task, err)
		os.Exit(1)
	}
}
