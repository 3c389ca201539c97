package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Science Fiction":      "science-fiction",
		"  Rock & Roll!! ":     "rock-roll",
		"C++ / Go":             "c-go",
		"already-a-slug":       "already-a-slug",
		"Über Café":            "ber-caf",
		"---":                  "",
		"Movies: 2024 Edition": "movies-2024-edition",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestOid(t *testing.T) {
	_, err := Oid("not-hex")
	assert.Error(t, err)

	id, err := Oid("65a1b2c3d4e5f60718293a4b")
	assert.NoError(t, err)
	assert.Equal(t, "65a1b2c3d4e5f60718293a4b", id.Hex())
}
