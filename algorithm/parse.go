package algorithm

import "fmt"

// Парсинг режима шифрования из строки (флаги CLI, поля запросов)
func ParseCipherMode(s string) (CipherMode, error) {
	switch s {
	case "ECB":
		return ECB, nil
	case "CBC":
		return CBC, nil
	default:
		return 0, fmt.Errorf("%w: %q, допустимо ECB или CBC", ErrUnknownMode, s)
	}
}

// Парсинг режима набивки
func ParsePaddingMode(s string) (PaddingMode, error) {
	switch s {
	case "Zeros":
		return Zeros, nil
	case "ANSIX923":
		return ANSIX923, nil
	case "PKCS7":
		return PKCS7, nil
	case "ISO10126":
		return ISO10126, nil
	default:
		return 0, fmt.Errorf("%w: %q, допустимо Zeros, ANSIX923, PKCS7, ISO10126", ErrUnknownPadding, s)
	}
}
