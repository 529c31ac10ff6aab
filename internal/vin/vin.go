// Package vin implements the ISO 3779 check-digit algorithm for 17-character
// vehicle identification numbers.
package vin

// The VIN alphabet excludes I, O and Q. Their table values stay zero and
// never match a real candidate because the extractor's character class
// already excludes them.
var translit = [36]int{
	// 0-9 map to themselves
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
	// A  B  C  D  E  F  G  H  I  J  K  L  M
	1, 2, 3, 4, 5, 6, 7, 8, 0, 1, 2, 3, 4,
	// N  O  P  Q  R  S  T  U  V  W  X  Y  Z
	5, 0, 7, 0, 9, 2, 3, 4, 5, 6, 7, 8, 9,
}

var weights = [17]int{8, 7, 6, 5, 4, 3, 2, 10, 0, 9, 8, 7, 6, 5, 4, 3, 2}

// CheckDigit computes the expected check character for positions 1..17 of
// vin: '0'-'9', or 'X' when the mod-11 remainder is 10. It returns 0 for
// input that is not 17 characters of the VIN alphabet.
func CheckDigit(vin string) byte {
	if len(vin) != 17 {
		return 0
	}
	total := 0
	for i := 0; i < 17; i++ {
		v, ok := value(vin[i])
		if !ok {
			return 0
		}
		total += v * weights[i]
	}
	if r := total % 11; r == 10 {
		return 'X'
	} else {
		return byte('0' + r)
	}
}

// Validate reports whether the character at position 9 (1-indexed) matches
// the computed check digit. The VIN must already be uppercase.
func Validate(vin string) bool {
	if len(vin) != 17 {
		return false
	}
	c := CheckDigit(vin)
	return c != 0 && vin[8] == c
}

func value(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return translit[c-'0'], true
	case c == 'I' || c == 'O' || c == 'Q':
		return 0, false
	case c >= 'A' && c <= 'Z':
		return translit[10+c-'A'], true
	}
	return 0, false
}
