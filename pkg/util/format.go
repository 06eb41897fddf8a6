package util

import (
	"fmt"
	"strconv"
)

// FormatCurrency renders a cost with space thousands separators and the
// forint suffix, e.g. 1234567 -> "1 234 567 Ft".
func FormatCurrency(value float64) string {
	whole := strconv.FormatInt(int64(value+0.5), 10)
	neg := false
	if len(whole) > 0 && whole[0] == '-' {
		neg = true
		whole = whole[1:]
	}

	var out []byte
	for i, digit := range []byte(whole) {
		if i > 0 && (len(whole)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, digit)
	}
	if neg {
		out = append([]byte{'-'}, out...)
	}
	return string(out) + " Ft"
}

// FormatCount renders a count with the piece suffix, e.g. 12 -> "12 db".
func FormatCount(value float64) string {
	return fmt.Sprintf("%d db", int64(value+0.5))
}
