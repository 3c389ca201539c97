package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMasker(t *testing.T) {
	m := NewMasker([]string{"darn", "heck", " Darn ", "ควย"})

	tests := []struct {
		in, want string
	}{
		{"well darn it", "well **** it"},
		{"DARN and Heck", "**** and ****"},
		{"darnation stays", "darnation stays"},
		{"ไอควยนี่", "ไอ***นี่"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Mask(tt.in), tt.in)
	}
}

func TestMaskerNilAndEmpty(t *testing.T) {
	var m *Masker
	assert.Equal(t, "darn", m.Mask("darn"))
	assert.Equal(t, "darn", NewMasker(nil).Mask("darn"))
}

func TestSplitWords(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, SplitWords(" a, ,b c,"))
	assert.Nil(t, SplitWords(""))
}
