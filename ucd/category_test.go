package ucd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		r    rune
		want string
	}{
		{'A', "Lu"},
		{'a', "Ll"},
		{'0', "Nd"},
		{' ', "Zs"},
		{'-', "Pd"},
		{'(', "Ps"},
		{'+', "Sm"},
		{'$', "Sc"},
		{'^', "Sk"},
		{0x00a9, "So"},
		{0x0301, "Mn"}, // combining acute accent
		{0x0903, "Mc"}, // devanagari sign visarga
		{0x20dd, "Me"}, // combining enclosing circle
		{0x200b, "Cf"},
		{'\n', "Cc"},
		{0xe000, "Co"},
		{0xd800, "Cs"},
		{0x0378, "Cn"},
		{-1, ""},
		{0x110000, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Category(tt.r), "category of %#U", tt.r)
	}
}

func TestIsMark(t *testing.T) {
	assert.True(t, IsMark(0x0301))
	assert.True(t, IsMark(0x0903))
	assert.True(t, IsMark(0x20dd))
	assert.False(t, IsMark('A'))
	assert.False(t, IsMark(-1))
}
