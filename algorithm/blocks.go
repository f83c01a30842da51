package algorithm

import (
	"crypto/cipher"
	"fmt"
)

// Blocks делит буфер на полные блоки размера n. Короткий хвост отбрасывается.
// Блоки ссылаются на исходный буфер, копии не создаются.
func Blocks(buf []byte, n int) [][]byte {
	if n <= 0 {
		return nil
	}
	var res [][]byte
	for len(buf) >= n {
		res = append(res, buf[:n:n])
		buf = buf[n:]
	}
	return res
}

// Chunks делит буфер на блоки размера n, последний блок может быть короче.
func Chunks(buf []byte, n int) [][]byte {
	if n <= 0 {
		return nil
	}
	var res [][]byte
	for len(buf) > 0 {
		m := min(n, len(buf))
		res = append(res, buf[:m:m])
		buf = buf[m:]
	}
	return res
}

// XORBytes возвращает побайтовый XOR двух буферов одинаковой длины.
func XORBytes(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d и %d", ErrLengthMismatch, len(a), len(b))
	}
	res := make([]byte, len(a))
	for i := range a {
		res[i] = a[i] ^ b[i]
	}
	return res, nil
}

// XORSingleByte записывает в dst XOR src с одним байтом. len(dst) >= len(src).
func XORSingleByte(dst, src []byte, b byte) {
	for i := range src {
		dst[i] = src[i] ^ b
	}
}

// RepeatingKeyXOR шифрует (и расшифровывает) данные повторяющимся ключом.
func RepeatingKeyXOR(data, key []byte) []byte {
	res := make([]byte, len(data))
	NewRepeatingXOR(key).XORKeyStream(res, data)
	return res
}

type repeatingXOR struct {
	key []byte
	pos int
}

// NewRepeatingXOR возвращает потоковый шифр с повторяющимся ключом.
// Позиция в ключе сохраняется между вызовами XORKeyStream.
func NewRepeatingXOR(key []byte) cipher.Stream {
	if len(key) == 0 {
		panic("NewRepeatingXOR: пустой ключ")
	}
	return &repeatingXOR{key: clone(key)}
}

func (x *repeatingXOR) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("XORKeyStream: dst короче src")
	}
	for i := range src {
		dst[i] = src[i] ^ x.key[x.pos]
		x.pos++
		if x.pos == len(x.key) {
			x.pos = 0
		}
	}
}
