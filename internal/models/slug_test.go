package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name     string
		expected string
	}{
		{"Hollow Knight", "hollow-knight"},
		{"NieR:Automata", "nier-automata"},
		{"  Outer   Wilds  ", "outer-wilds"},
		{"Half-Life 2", "half-life-2"},
		{"DÉJÀ VU", "d-j-vu"},
		{"already-a-slug", "already-a-slug"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Slugify(tc.name), "input %q", tc.name)
	}
}
