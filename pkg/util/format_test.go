package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0 Ft"},
		{999, "999 Ft"},
		{1000, "1 000 Ft"},
		{1234567, "1 234 567 Ft"},
		{1234567.4, "1 234 567 Ft"},
		{1234567.6, "1 234 568 Ft"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCurrency(tc.in))
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0 db", FormatCount(0))
	assert.Equal(t, "12 db", FormatCount(12))
	assert.Equal(t, "13 db", FormatCount(12.7))
}
