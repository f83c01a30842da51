package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Разбор введённых данных: префикс hex: или b64:, иначе строка как есть
func parseInput(s string) ([]byte, error) {
	switch {
	case strings.HasPrefix(s, "hex:"):
		b, err := hex.DecodeString(strings.TrimPrefix(s, "hex:"))
		if err != nil {
			return nil, fmt.Errorf("некорректный hex: %w", err)
		}
		return b, nil
	case strings.HasPrefix(s, "b64:"):
		b, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s, "b64:"))
		if err != nil {
			return nil, fmt.Errorf("некорректный base64: %w", err)
		}
		return b, nil
	default:
		return []byte(s), nil
	}
}

// Пустая строка даёт значение по умолчанию
func parseNumber(s string, fallback int) (int, error) {
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("ожидалось число: %q", s)
	}
	return n, nil
}

// Печатаемый текст выводится как есть, остальное в hex
func formatOutput(b []byte) string {
	for _, c := range b {
		if (c < 0x20 || c > 0x7e) && c != '\n' && c != '\t' {
			return "hex:" + hex.EncodeToString(b)
		}
	}
	return string(b)
}
