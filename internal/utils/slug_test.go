package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Obľúbené recepty":      "oblubene-recepty",
		"  Bryndzové  halušky ": "bryndzove-halusky",
		"Crème brûlée!":         "creme-brulee",
		"---":                   "",
		"Week 42 / menu":        "week-42-menu",
	}
	for in, want := range cases {
		got := Slugify(in)
		assert.Equal(t, want, got, in)
		if got != "" {
			assert.True(t, IsSlug(got), got)
		}
	}
}
