package algorithm

import (
	"math"
	"math/rand"
	"os"
	"testing"
)

func readSample(t *testing.T) []byte {
	t.Helper()
	buf, err := os.ReadFile("testdata/english.txt")
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestFrequencyTable(t *testing.T) {
	var sum float64
	for _, f := range englishFrequencies {
		sum += f
	}
	if math.Abs(sum-1) > 0.01 {
		t.Errorf("frequencies sum to %v", sum)
	}
	if f, ok := Frequency(' '); !ok || f != 0.1918182 {
		t.Errorf("Frequency(' ') == %v, %v", f, ok)
	}
	if _, ok := Frequency('E'); ok {
		t.Error("Frequency accepted an upper case letter")
	}
}

func TestScore(t *testing.T) {
	if got := Score(nil); !math.IsInf(got, 1) {
		t.Errorf("Score(nil) == %v, want +Inf", got)
	}
	if Score([]byte("Hello World")) != Score([]byte("hELLO wORLD")) {
		t.Error("Score depends on letter case")
	}

	sample := readSample(t)
	english := Score(sample)

	noise := make([]byte, len(sample))
	rand.New(rand.NewSource(1)).Read(noise)
	if got := Score(noise); got <= english {
		t.Errorf("random bytes scored %v, English %v", got, english)
	}

	xored := make([]byte, len(sample))
	XORSingleByte(xored, sample, 0x2a)
	if got := Score(xored); got <= english {
		t.Errorf("XORed text scored %v, English %v", got, english)
	}
}

func TestScoreIgnoresOrder(t *testing.T) {
	sample := readSample(t)
	shuffled := append([]byte{}, sample...)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if a, b := Score(sample), Score(shuffled); math.Abs(a-b) > 1e-9 {
		t.Errorf("got %v and %v", a, b)
	}
}
