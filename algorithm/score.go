package algorithm

import "math"

// https://web.archive.org/web/20170918020907/http://www.data-compression.com/english.html
var englishFrequencies = [27]float64{
	0.0651738, // a
	0.0124248, // b
	0.0217339, // c
	0.0349835, // d
	0.1041442, // e
	0.0197881, // f
	0.0158610, // g
	0.0492888, // h
	0.0558094, // i
	0.0009033, // j
	0.0050529, // k
	0.0331490, // l
	0.0202124, // m
	0.0564513, // n
	0.0596302, // o
	0.0137645, // p
	0.0008606, // q
	0.0497563, // r
	0.0515760, // s
	0.0729357, // t
	0.0225134, // u
	0.0082903, // v
	0.0171272, // w
	0.0013692, // x
	0.0145984, // y
	0.0007836, // z
	0.1918182, // пробел
}

// Frequency возвращает эталонную частоту строчной буквы или пробела.
func Frequency(symbol byte) (float64, bool) {
	i := symbolIndex(symbol)
	if i < 0 || symbol >= 'A' && symbol <= 'Z' {
		return 0, false
	}
	return englishFrequencies[i], true
}

// Score оценивает, насколько текст похож на английский: сумма модулей разностей
// наблюдаемых и эталонных частот 26 букв и пробела. Чем меньше, тем лучше.
// Регистр не учитывается, прочие байты входят только в знаменатель.
// Для пустого ввода возвращается +Inf.
func Score(text []byte) float64 {
	if len(text) == 0 {
		return math.Inf(1)
	}
	var counts [27]int
	for _, b := range text {
		if i := symbolIndex(b); i >= 0 {
			counts[i]++
		}
	}

	var score float64
	total := float64(len(text))
	for i, want := range englishFrequencies {
		score += math.Abs(float64(counts[i])/total - want)
	}
	return score
}

func symbolIndex(b byte) int {
	switch {
	case b >= 'a' && b <= 'z':
		return int(b - 'a')
	case b >= 'A' && b <= 'Z':
		return int(b - 'A')
	case b == ' ':
		return 26
	default:
		return -1
	}
}
