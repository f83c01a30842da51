package algorithm

import (
	"errors"
	"fmt"
)

// CryptoSymmetricContext связывает блочный шифр, ключ, режим и набивку.
type CryptoSymmetricContext struct {
	key       []byte
	cipher    BlockCipher
	mode      CipherMode
	padding   PaddingMode
	iv        []byte
	blockSize int
	strict    bool
}

// Создание контекста. IV обязателен только для CBC.
func NewCryptoSymmetricContext(key []byte, cipher BlockCipher, mode CipherMode, padding PaddingMode, iv []byte, blockSize int) (*CryptoSymmetricContext, error) {
	if cipher == nil {
		return nil, errors.New("шифр не задан")
	}
	if blockSize != cipher.BlockSize() {
		return nil, fmt.Errorf("размер блока %d не совпадает с размером блока шифра %d", blockSize, cipher.BlockSize())
	}
	if len(key) != blockSize {
		return nil, fmt.Errorf("%w: ключ %d байт, блок %d", ErrInvalidKeyLength, len(key), blockSize)
	}
	if padding < Zeros || padding > ISO10126 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPadding, padding)
	}

	switch mode {
	case ECB:
		iv = nil
	case CBC:
		if len(iv) != blockSize {
			return nil, fmt.Errorf("%w: %d байт, блок %d", ErrInvalidIVLength, len(iv), blockSize)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}

	return &CryptoSymmetricContext{
		key:       clone(key),
		cipher:    cipher,
		mode:      mode,
		padding:   padding,
		iv:        clone(iv),
		blockSize: blockSize,
	}, nil
}

// SetStrictPadding включает строгую набивку: выровненный текст получает целый блок набивки,
// и DecryptAndUnpad всегда восстанавливает исходный текст.
func (c *CryptoSymmetricContext) SetStrictPadding(strict bool) {
	c.strict = strict
}

func (c *CryptoSymmetricContext) Mode() CipherMode {
	return c.mode
}

func (c *CryptoSymmetricContext) Encrypt(data []byte) ([]byte, error) {
	var (
		padded []byte
		err    error
	)
	if c.strict {
		padded, err = PadStrict(c.padding, data, c.blockSize)
	} else {
		padded, err = Pad(c.padding, data, c.blockSize)
	}
	if err != nil {
		return nil, err
	}

	switch c.mode {
	case ECB:
		return EncryptECB(c.cipher, padded, c.key)
	case CBC:
		return EncryptCBC(c.cipher, padded, c.key, c.iv)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, c.mode)
	}
}

// Decrypt возвращает расшифрованные данные вместе с набивкой.
func (c *CryptoSymmetricContext) Decrypt(data []byte) ([]byte, error) {
	switch c.mode {
	case ECB:
		return DecryptECB(c.cipher, data, c.key)
	case CBC:
		return DecryptCBC(c.cipher, data, c.key, c.iv)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, c.mode)
	}
}

// DecryptAndUnpad расшифровывает и снимает набивку выбранного режима.
func (c *CryptoSymmetricContext) DecryptAndUnpad(data []byte) ([]byte, error) {
	plain, err := c.Decrypt(data)
	if err != nil {
		return nil, err
	}
	return Unpad(c.padding, plain, c.blockSize)
}

// Асинхронное шифрование: результат или ошибка приходят в один из каналов.
func (c *CryptoSymmetricContext) EncryptAsync(data []byte) (<-chan []byte, <-chan error) {
	return c.async(c.Encrypt, data)
}

func (c *CryptoSymmetricContext) DecryptAsync(data []byte) (<-chan []byte, <-chan error) {
	return c.async(c.Decrypt, data)
}

func (c *CryptoSymmetricContext) async(fn func([]byte) ([]byte, error), data []byte) (<-chan []byte, <-chan error) {
	resultChan := make(chan []byte, 1)
	errChan := make(chan error, 1)
	go func() {
		res, err := fn(data)
		if err != nil {
			errChan <- err
			return
		}
		resultChan <- res
	}()
	return resultChan, errChan
}
