package algorithm

import (
	"fmt"
	"math"
	"math/bits"
	"sort"
)

// Диапазон длин ключа по умолчанию
const (
	DefaultMinKeySize = 2
	DefaultMaxKeySize = 40
)

// HammingDistance возвращает число различающихся битов двух буферов одинаковой длины.
func HammingDistance(a, b []byte) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d и %d", ErrLengthMismatch, len(a), len(b))
	}
	var n int
	for i := range a {
		n += bits.OnesCount8(a[i] ^ b[i])
	}
	return n, nil
}

// NormalizedDistance усредняет расстояние Хэмминга соседних полных блоков,
// делённое на size. Неполный хвост не учитывается. false, если полных блоков меньше двух.
func NormalizedDistance(ciphertext []byte, size int) (float64, bool) {
	blocks := Blocks(ciphertext, size)
	if len(blocks) < 2 {
		return math.Inf(1), false
	}
	var sum float64
	for i := 0; i+1 < len(blocks); i++ {
		d, _ := HammingDistance(blocks[i], blocks[i+1])
		sum += float64(d) / float64(size)
	}
	return sum / float64(len(blocks)-1), true
}

type KeySizeGuess struct {
	Size     int
	Distance float64
}

// RankKeySizes оценивает все длины ключа из [minSize, maxSize] и сортирует
// по возрастанию расстояния, при равенстве по длине. Длины больше половины
// шифртекста не дают двух полных блоков и отбрасываются.
func RankKeySizes(ciphertext []byte, minSize, maxSize int) []KeySizeGuess {
	minSize = max(minSize, 1)
	maxSize = max(min(maxSize, len(ciphertext)/2), minSize)

	guesses := make([]KeySizeGuess, maxSize-minSize+1)
	parallelFor(len(guesses), func(i int) {
		size := minSize + i
		d, _ := NormalizedDistance(ciphertext, size)
		guesses[i] = KeySizeGuess{Size: size, Distance: d}
	})

	sort.SliceStable(guesses, func(i, j int) bool {
		if guesses[i].Distance != guesses[j].Distance {
			return guesses[i].Distance < guesses[j].Distance
		}
		return guesses[i].Size < guesses[j].Size
	})
	return guesses
}

// EstimateKeySize выбирает длину ключа с минимальным нормированным расстоянием.
// Не завершается ошибкой: на слишком коротком шифртексте возвращает minSize с +Inf.
func EstimateKeySize(ciphertext []byte, minSize, maxSize int) KeySizeGuess {
	return RankKeySizes(ciphertext, minSize, maxSize)[0]
}

// Transpose меняет местами строки и столбцы блоков одинаковой длины.
func Transpose(blocks [][]byte) ([][]byte, error) {
	if len(blocks) == 0 {
		return nil, nil
	}
	for _, b := range blocks {
		if len(b) != len(blocks[0]) {
			return nil, fmt.Errorf("%w: блоки %d и %d байт", ErrLengthMismatch, len(blocks[0]), len(b))
		}
	}
	res := make([][]byte, len(blocks[0]))
	for i := range res {
		res[i] = make([]byte, len(blocks))
		for j, b := range blocks {
			res[i][j] = b[i]
		}
	}
	return res, nil
}

type RepeatingKeyResult struct {
	Key       []byte
	KeySize   int
	Distance  float64
	Plaintext []byte
	// лучший кандидат для каждой позиции ключа
	Columns []CandidateKey
}

type breakConfig struct {
	minSize, maxSize int
	fixedSize        int
}

type BreakOption func(*breakConfig)

// WithKeySizeRange задаёт диапазон перебора длины ключа.
func WithKeySizeRange(minSize, maxSize int) BreakOption {
	return func(c *breakConfig) {
		c.minSize, c.maxSize = minSize, maxSize
	}
}

// WithKeySize отключает оценку длины ключа.
func WithKeySize(size int) BreakOption {
	return func(c *breakConfig) {
		c.fixedSize = size
	}
}

// BreakRepeatingKeyXOR восстанавливает ключ повторяющегося XOR: оценивает длину ключа,
// разбивает полные блоки на столбцы и вскрывает каждый столбец как однобайтовый XOR.
func BreakRepeatingKeyXOR(ciphertext []byte, opts ...BreakOption) (RepeatingKeyResult, error) {
	cfg := breakConfig{minSize: DefaultMinKeySize, maxSize: DefaultMaxKeySize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(ciphertext) == 0 {
		return RepeatingKeyResult{}, ErrEmptyInput
	}

	var guess KeySizeGuess
	if cfg.fixedSize > 0 {
		d, _ := NormalizedDistance(ciphertext, cfg.fixedSize)
		guess = KeySizeGuess{Size: cfg.fixedSize, Distance: d}
	} else {
		guess = EstimateKeySize(ciphertext, cfg.minSize, cfg.maxSize)
	}

	blocks := Blocks(ciphertext, guess.Size)
	if len(blocks) == 0 {
		return RepeatingKeyResult{}, fmt.Errorf("%w: %d байт, длина ключа %d", ErrShortCiphertext, len(ciphertext), guess.Size)
	}
	columns, err := Transpose(blocks)
	if err != nil {
		return RepeatingKeyResult{}, err
	}

	winners := make([]CandidateKey, len(columns))
	errs := make([]error, len(columns))
	parallelFor(len(columns), func(i int) {
		winners[i], errs[i] = BreakSingleByteXOR(columns[i])
	})

	key := make([]byte, len(columns))
	for i, w := range winners {
		if errs[i] != nil {
			return RepeatingKeyResult{}, fmt.Errorf("столбец %d: %w", i, errs[i])
		}
		key[i] = w.Key
	}

	return RepeatingKeyResult{
		Key:       key,
		KeySize:   guess.Size,
		Distance:  guess.Distance,
		Plaintext: RepeatingKeyXOR(ciphertext, key),
		Columns:   winners,
	}, nil
}
