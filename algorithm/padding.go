package algorithm

import (
	"bytes"
	"crypto/rand"
	"fmt"
)

type PaddingMode int

const (
	Zeros PaddingMode = iota
	ANSIX923
	PKCS7
	ISO10126
)

func (pm PaddingMode) String() string {
	switch pm {
	case Zeros:
		return "Zeros"
	case ANSIX923:
		return "ANSIX923"
	case PKCS7:
		return "PKCS7"
	case ISO10126:
		return "ISO10126"
	default:
		return "Unknown"
	}
}

// AddPKCS7Padding дополняет block до targetLen байт значением targetLen-len(block).
// Если длины совпадают, набивка не добавляется вовсе (в отличие от строгого PKCS#7).
func AddPKCS7Padding(block []byte, targetLen int) ([]byte, error) {
	return padTo(PKCS7, block, targetLen)
}

// StripPKCS7Padding проверяет и снимает набивку PKCS#7.
func StripPKCS7Padding(data []byte, blockSize int) ([]byte, error) {
	p, err := padLength(data, blockSize)
	if err != nil {
		return nil, err
	}
	for _, b := range data[len(data)-p:] {
		if int(b) != p {
			return nil, fmt.Errorf("%w: байт %#02x, ожидается %#02x", ErrInvalidPadding, b, p)
		}
	}
	return clone(data[:len(data)-p]), nil
}

// Pad дополняет данные до ближайшей кратной blockSize длины.
// Выровненные данные возвращаются без набивки.
func Pad(mode PaddingMode, data []byte, blockSize int) ([]byte, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: размер блока %d", ErrInvalidLength, blockSize)
	}
	target := blockSize * ((len(data) + blockSize - 1) / blockSize)
	return padTo(mode, data, target)
}

// PadStrict всегда добавляет от 1 до blockSize байт набивки.
func PadStrict(mode PaddingMode, data []byte, blockSize int) ([]byte, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: размер блока %d", ErrInvalidLength, blockSize)
	}
	return padTo(mode, data, len(data)+blockSize-len(data)%blockSize)
}

// Unpad снимает набивку. Для Zeros отбрасываются все хвостовые нули,
// поэтому нулевые байты на конце открытого текста теряются.
func Unpad(mode PaddingMode, data []byte, blockSize int) ([]byte, error) {
	switch mode {
	case Zeros:
		return clone(bytes.TrimRight(data, "\x00")), nil
	case ANSIX923:
		p, err := padLength(data, blockSize)
		if err != nil {
			return nil, err
		}
		for _, b := range data[len(data)-p : len(data)-1] {
			if b != 0 {
				return nil, fmt.Errorf("%w: ненулевой байт %#02x", ErrInvalidPadding, b)
			}
		}
		return clone(data[:len(data)-p]), nil
	case PKCS7:
		return StripPKCS7Padding(data, blockSize)
	case ISO10126:
		p, err := padLength(data, blockSize)
		if err != nil {
			return nil, err
		}
		return clone(data[:len(data)-p]), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownPadding, mode)
	}
}

func padTo(mode PaddingMode, block []byte, targetLen int) ([]byte, error) {
	n := targetLen - len(block)
	if n < 0 {
		return nil, fmt.Errorf("%w: %d < %d", ErrInvalidLength, targetLen, len(block))
	}
	if n > 0xff {
		return nil, fmt.Errorf("%w: набивка %d байт не помещается в байт", ErrInvalidLength, n)
	}

	res := make([]byte, len(block), targetLen)
	copy(res, block)
	if n == 0 {
		return res, nil
	}

	switch mode {
	case Zeros:
		res = append(res, make([]byte, n)...)
	case ANSIX923:
		res = append(res, make([]byte, n-1)...)
		res = append(res, byte(n))
	case PKCS7:
		res = append(res, bytes.Repeat([]byte{byte(n)}, n)...)
	case ISO10126:
		fill := make([]byte, n-1)
		if _, err := rand.Read(fill); err != nil {
			return nil, fmt.Errorf("не удалось сгенерировать набивку: %w", err)
		}
		res = append(res, fill...)
		res = append(res, byte(n))
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownPadding, mode)
	}
	return res, nil
}

// длина набивки по последнему байту
func padLength(data []byte, blockSize int) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: пустой буфер", ErrInvalidPadding)
	}
	p := int(data[len(data)-1])
	if p < 1 || p > blockSize || p > len(data) {
		return 0, fmt.Errorf("%w: длина набивки %d", ErrInvalidPadding, p)
	}
	return p, nil
}

func clone(b []byte) []byte {
	return append([]byte{}, b...)
}
