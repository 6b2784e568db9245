package cnpj

import "strings"

// separators maps a digit count to the character written after it.
var separators = map[int]byte{2: '.', 5: '.', 8: '/', 12: '-'}

// Mask formats s as NN.NNN.NNN/NNNN-NN. Digits past the 14th are dropped and
// partial input gets the matching prefix of the pattern, so "11222" becomes "11.222".
func Mask(s string) string {
	digits := Normalize(s)
	if len(digits) > Length {
		digits = digits[:Length]
	}

	var b strings.Builder
	b.Grow(len(digits) + len(separators))
	for i := 0; i < len(digits); i++ {
		if sep, ok := separators[i]; ok {
			b.WriteByte(sep)
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}
