package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Sörgyár", "sorgyar"},
		{"sorgyar", "sorgyar"},
		{"  Minőségügy  ", "minosegugy"},
		{"Árvíztűrő tükörfúrógép", "arvizturotukorfurogep"},
		{"super_user", "superuser"},
		{"Vevő-123", "vevo123"},
		{"123", "123"},
		{"", ""},
		{"---", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Sörgyár", "Fröccsöntés", "Vevői Reklamáció 42"}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "slug of a slug must not change")
	}
}

func TestTitleCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"kovács jános", "Kovács János"},
		{"KOVÁCS", "Kovács"},
		{"  szabó   éva ", "Szabó Éva"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TitleCase(tc.in))
	}
}
