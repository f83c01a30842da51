package algorithm

import (
	"crypto/aes"
	"fmt"
)

// BlockCipher шифрует и расшифровывает ровно один блок фиксированного размера.
// Реализация не хранит ключ: он передаётся в каждый вызов.
type BlockCipher interface {
	BlockSize() int
	EncryptBlock(key, block []byte) ([]byte, error)
	DecryptBlock(key, block []byte) ([]byte, error)
}

// AES-128 поверх crypto/aes
type AES struct{}

func NewAES() *AES {
	return &AES{}
}

func (a *AES) BlockSize() int {
	return aes.BlockSize
}

func (a *AES) EncryptBlock(key, block []byte) ([]byte, error) {
	if err := a.check(key, block); err != nil {
		return nil, err
	}
	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать AES: %w", err)
	}
	dst := make([]byte, aes.BlockSize)
	c.Encrypt(dst, block)
	return dst, nil
}

func (a *AES) DecryptBlock(key, block []byte) ([]byte, error) {
	if err := a.check(key, block); err != nil {
		return nil, err
	}
	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать AES: %w", err)
	}
	dst := make([]byte, aes.BlockSize)
	c.Decrypt(dst, block)
	return dst, nil
}

func (a *AES) check(key, block []byte) error {
	if len(key) != aes.BlockSize {
		return fmt.Errorf("%w: %d байт, ожидается %d", ErrInvalidKeyLength, len(key), aes.BlockSize)
	}
	if len(block) != aes.BlockSize {
		return fmt.Errorf("%w: блок %d байт", ErrInvalidCiphertextLength, len(block))
	}
	return nil
}
