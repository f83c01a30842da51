package algorithm

// RepeatedBlocks считает блоки, значение которых уже встречалось раньше.
func RepeatedBlocks(ciphertext []byte, blockSize int) int {
	seen := make(map[string]bool)
	var n int
	for _, block := range Blocks(ciphertext, blockSize) {
		s := string(block)
		if seen[s] {
			n++
			continue
		}
		seen[s] = true
	}
	return n
}

// IsECB сообщает, повторяется ли в шифртексте хотя бы один блок.
// ECB без повторов в открытом тексте не обнаруживается: это предел метода, а не ошибка.
func IsECB(ciphertext []byte, blockSize int) bool {
	return RepeatedBlocks(ciphertext, blockSize) > 0
}

// Classify всегда выбирает один из двух режимов.
func Classify(ciphertext []byte, blockSize int) CipherMode {
	if IsECB(ciphertext, blockSize) {
		return ECB
	}
	return CBC
}

// FindECB возвращает индексы шифртекстов с повторяющимися блоками.
func FindECB(ciphertexts [][]byte, blockSize int) []int {
	var res []int
	for i, ct := range ciphertexts {
		if IsECB(ct, blockSize) {
			res = append(res, i)
		}
	}
	return res
}
