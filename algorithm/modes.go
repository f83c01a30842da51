package algorithm

import (
	"fmt"
)

type CipherMode int

const (
	ECB CipherMode = iota
	CBC
)

func (cm CipherMode) String() string {
	switch cm {
	case ECB:
		return "ECB"
	case CBC:
		return "CBC"
	default:
		return "Unknown"
	}
}

// EncryptECB шифрует каждый блок независимо. Последний неполный блок
// дополняется по правилу AddPKCS7Padding.
func EncryptECB(c BlockCipher, plaintext, key []byte) ([]byte, error) {
	n, err := blockSizeFor(c, key)
	if err != nil {
		return nil, err
	}
	res := make([]byte, 0, len(plaintext)+n)
	for _, block := range Chunks(plaintext, n) {
		padded, err := AddPKCS7Padding(block, n)
		if err != nil {
			return nil, err
		}
		enc, err := c.EncryptBlock(key, padded)
		if err != nil {
			return nil, fmt.Errorf("ошибка шифрования блока: %w", err)
		}
		res = append(res, enc...)
	}
	return res, nil
}

// DecryptECB расшифровывает блоки независимо, набивка остаётся в результате.
func DecryptECB(c BlockCipher, ciphertext, key []byte) ([]byte, error) {
	n, err := blockSizeFor(c, key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext)%n != 0 {
		return nil, fmt.Errorf("%w: %d байт, блок %d", ErrInvalidCiphertextLength, len(ciphertext), n)
	}
	res := make([]byte, 0, len(ciphertext))
	for _, block := range Blocks(ciphertext, n) {
		dec, err := c.DecryptBlock(key, block)
		if err != nil {
			return nil, fmt.Errorf("ошибка расшифрования блока: %w", err)
		}
		res = append(res, dec...)
	}
	return res, nil
}

// EncryptCBC шифрует открытый текст в режиме CBC. Размер блока равен длине ключа.
// Блок i складывается по XOR с шифртекстом блока i-1, первый блок с iv.
func EncryptCBC(c BlockCipher, plaintext, key, iv []byte) ([]byte, error) {
	n, err := blockSizeFor(c, key)
	if err != nil {
		return nil, err
	}
	if len(iv) != n {
		return nil, fmt.Errorf("%w: %d байт, блок %d", ErrInvalidIVLength, len(iv), n)
	}

	res := make([]byte, 0, len(plaintext)+n)
	prev := iv
	for _, block := range Chunks(plaintext, n) {
		padded, err := AddPKCS7Padding(block, n)
		if err != nil {
			return nil, err
		}
		x, err := XORBytes(padded, prev)
		if err != nil {
			return nil, err
		}
		enc, err := c.EncryptBlock(key, x)
		if err != nil {
			return nil, fmt.Errorf("ошибка шифрования блока: %w", err)
		}
		res = append(res, enc...)
		prev = enc
	}
	return res, nil
}

// DecryptCBC расшифровывает шифртекст в режиме CBC.
// Набивка не проверяется и не снимается: для исходного текста вызовите StripPKCS7Padding.
func DecryptCBC(c BlockCipher, ciphertext, key, iv []byte) ([]byte, error) {
	n, err := blockSizeFor(c, key)
	if err != nil {
		return nil, err
	}
	if len(iv) != n {
		return nil, fmt.Errorf("%w: %d байт, блок %d", ErrInvalidIVLength, len(iv), n)
	}
	if len(ciphertext)%n != 0 {
		return nil, fmt.Errorf("%w: %d байт, блок %d", ErrInvalidCiphertextLength, len(ciphertext), n)
	}

	res := make([]byte, 0, len(ciphertext))
	prev := iv
	for _, block := range Blocks(ciphertext, n) {
		dec, err := c.DecryptBlock(key, block)
		if err != nil {
			return nil, fmt.Errorf("ошибка расшифрования блока: %w", err)
		}
		plain, err := XORBytes(dec, prev)
		if err != nil {
			return nil, err
		}
		res = append(res, plain...)
		prev = block
	}
	return res, nil
}

func blockSizeFor(c BlockCipher, key []byte) (int, error) {
	if len(key) == 0 || len(key) != c.BlockSize() {
		return 0, fmt.Errorf("%w: ключ %d байт, блок %d", ErrInvalidKeyLength, len(key), c.BlockSize())
	}
	return len(key), nil
}
