package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Smoked eel":        "smoked-eel",
		"Cold-Smoked Salmon": "cold-smoked-salmon",
		"  Crab sticks  ":   "crab-sticks",
		"Fish & Chips":      "fish-chips",
		"Селёдка":           "",
	}

	for name, want := range cases {
		assert.Equal(t, want, slugify(name), "name %q", name)
	}
}
