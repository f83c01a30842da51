package algorithm

import "errors"

var (
	ErrInvalidLength           = errors.New("целевая длина меньше длины блока")
	ErrInvalidPadding          = errors.New("некорректная набивка")
	ErrInvalidKeyLength        = errors.New("длина ключа не совпадает с размером блока")
	ErrInvalidIVLength         = errors.New("длина IV не совпадает с размером блока")
	ErrInvalidCiphertextLength = errors.New("длина шифртекста не кратна размеру блока")
	ErrEmptyInput              = errors.New("пустые входные данные")
	ErrLengthMismatch          = errors.New("буферы разной длины")
	ErrShortCiphertext         = errors.New("шифртекст короче одного блока")
	ErrUnknownMode             = errors.New("неизвестный режим шифрования")
	ErrUnknownPadding          = errors.New("неизвестный режим набивки")
)
