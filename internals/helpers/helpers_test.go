package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeSHA256(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		SerializeSHA256(""))
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		SerializeSHA256("abc"))
	assert.Len(t, SerializeSHA256("wchain"), 64)
}

func TestHasLeadingZeros(t *testing.T) {
	tests := []struct {
		name       string
		hash       string
		difficulty int
		want       bool
	}{
		{"zero difficulty", "ffff", 0, true},
		{"negative difficulty", "ffff", -3, true},
		{"exact prefix", "00ab", 2, true},
		{"longer prefix", "000b", 2, true},
		{"short prefix", "0abc", 2, false},
		{"non zero first", "a000", 1, false},
		{"hash shorter than difficulty", "00", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasLeadingZeros(tt.hash, tt.difficulty))
		})
	}
}

func TestFormatHashrate(t *testing.T) {
	assert.Equal(t, "500.00 h/s", FormatHashrate(500, 1))
	assert.Equal(t, "2.50 Kh/s", FormatHashrate(5000, 2))
	assert.Equal(t, "3.00 Mh/s", FormatHashrate(3_000_000, 1))
	assert.Equal(t, "42.00 h/s", FormatHashrate(42, 0), "zero elapsed time counts as one second")
}

func TestGenerateMerkleRoot(t *testing.T) {
	assert.Equal(t, "", GenerateMerkleRoot(nil))

	a := SerializeSHA256("a")
	b := SerializeSHA256("b")
	c := SerializeSHA256("c")

	assert.Equal(t, SerializeSHA256(a+a), GenerateMerkleRoot([]string{"a"}))
	assert.Equal(t, SerializeSHA256(a+b), GenerateMerkleRoot([]string{"a", "b"}))

	left := SerializeSHA256(a + b)
	right := SerializeSHA256(c + c)
	require.Equal(t, SerializeSHA256(left+right), GenerateMerkleRoot([]string{"a", "b", "c"}))

	assert.NotEqual(t, GenerateMerkleRoot([]string{"a", "b"}), GenerateMerkleRoot([]string{"b", "a"}))
}
