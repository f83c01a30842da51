package algorithm

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Границы длины случайных байтов до и после входных данных оракула
const (
	oracleMinExtra = 5
	oracleMaxExtra = 10
)

// ModeOracle шифрует данные атакующего на случайном ключе в случайном режиме.
// Используется только для проверки классификатора режимов.
type ModeOracle struct {
	cipher BlockCipher
	random io.Reader
}

type OracleOption func(*ModeOracle)

// WithRandom подменяет источник случайности (по умолчанию crypto/rand).
func WithRandom(r io.Reader) OracleOption {
	return func(o *ModeOracle) {
		o.random = r
	}
}

func NewModeOracle(c BlockCipher, opts ...OracleOption) *ModeOracle {
	o := &ModeOracle{cipher: c, random: rand.Reader}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *ModeOracle) BlockSize() int {
	return o.cipher.BlockSize()
}

// EncryptUnderRandomMode возвращает истинный режим и шифртекст
// prefix + input + suffix, дополненного до кратной размеру блока длины.
func (o *ModeOracle) EncryptUnderRandomMode(input []byte) (CipherMode, []byte, error) {
	n := o.cipher.BlockSize()
	key, err := o.randomBytes(n)
	if err != nil {
		return 0, nil, err
	}
	prefix, err := o.randomExtra()
	if err != nil {
		return 0, nil, err
	}
	suffix, err := o.randomExtra()
	if err != nil {
		return 0, nil, err
	}

	plaintext := make([]byte, 0, len(prefix)+len(input)+len(suffix))
	plaintext = append(plaintext, prefix...)
	plaintext = append(plaintext, input...)
	plaintext = append(plaintext, suffix...)
	padded, err := Pad(PKCS7, plaintext, n)
	if err != nil {
		return 0, nil, err
	}

	choice, err := o.randomInt(0, 1)
	if err != nil {
		return 0, nil, err
	}
	if choice == 0 {
		ct, err := EncryptECB(o.cipher, padded, key)
		return ECB, ct, err
	}
	iv, err := o.randomBytes(n)
	if err != nil {
		return 0, nil, err
	}
	ct, err := EncryptCBC(o.cipher, padded, key, iv)
	return CBC, ct, err
}

func (o *ModeOracle) randomExtra() ([]byte, error) {
	n, err := o.randomInt(oracleMinExtra, oracleMaxExtra)
	if err != nil {
		return nil, err
	}
	return o.randomBytes(n)
}

// равномерное целое из [lo, hi]
func (o *ModeOracle) randomInt(lo, hi int) (int, error) {
	v, err := rand.Int(o.random, big.NewInt(int64(hi-lo+1)))
	if err != nil {
		return 0, fmt.Errorf("не удалось получить случайное число: %w", err)
	}
	return lo + int(v.Int64()), nil
}

func (o *ModeOracle) randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(o.random, b); err != nil {
		return nil, fmt.Errorf("не удалось сгенерировать случайные байты: %w", err)
	}
	return b, nil
}

// DetectionReport: итог прогона классификатора против оракула.
type DetectionReport struct {
	Runs           int
	Correct        int
	FalsePositives int // CBC принят за ECB
	FalseNegatives int // ECB не обнаружен
}

func (r DetectionReport) Accuracy() float64 {
	if r.Runs == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Runs)
}

// MeasureDetection прогоняет оракул runs раз и сравнивает Classify с истинным режимом.
func MeasureDetection(o *ModeOracle, input []byte, runs int) (DetectionReport, error) {
	report := DetectionReport{Runs: runs}
	for i := 0; i < runs; i++ {
		truth, ct, err := o.EncryptUnderRandomMode(input)
		if err != nil {
			return report, fmt.Errorf("прогон %d: %w", i, err)
		}
		switch predicted := Classify(ct, o.BlockSize()); {
		case predicted == truth:
			report.Correct++
		case predicted == ECB:
			report.FalsePositives++
		default:
			report.FalseNegatives++
		}
	}
	return report, nil
}
