package algorithm

import "fmt"

// CandidateKey: ключ-кандидат с оценкой полученного открытого текста.
type CandidateKey struct {
	Key       byte
	Score     float64
	Plaintext []byte
}

// Less задаёт полный порядок: по возрастанию оценки, при равенстве по ключу.
func (c CandidateKey) Less(other CandidateKey) bool {
	if c.Score != other.Score {
		return c.Score < other.Score
	}
	return c.Key < other.Key
}

// BreakSingleByteXOR перебирает все 256 однобайтовых ключей и возвращает лучший.
// Кандидаты оцениваются параллельно, выбор победителя не зависит от порядка завершения.
func BreakSingleByteXOR(ciphertext []byte) (CandidateKey, error) {
	if len(ciphertext) == 0 {
		return CandidateKey{}, ErrEmptyInput
	}

	var candidates [256]CandidateKey
	parallelFor(len(candidates), func(i int) {
		pt := make([]byte, len(ciphertext))
		XORSingleByte(pt, ciphertext, byte(i))
		candidates[i] = CandidateKey{Key: byte(i), Score: Score(pt), Plaintext: pt}
	})

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Less(best) {
			best = c
		}
	}
	return best, nil
}

// DetectSingleByteXOR находит среди шифртекстов тот, что вероятнее всего
// зашифрован однобайтовым XOR. Пустые шифртексты пропускаются.
func DetectSingleByteXOR(ciphertexts [][]byte) (int, CandidateKey, error) {
	idx := -1
	var best CandidateKey
	for i, ct := range ciphertexts {
		if len(ct) == 0 {
			continue
		}
		c, err := BreakSingleByteXOR(ct)
		if err != nil {
			return -1, CandidateKey{}, fmt.Errorf("шифртекст %d: %w", i, err)
		}
		if idx < 0 || c.Score < best.Score {
			idx, best = i, c
		}
	}
	if idx < 0 {
		return -1, CandidateKey{}, ErrEmptyInput
	}
	return idx, best, nil
}
