package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GriffinCanCode/cache/internal/keyspec"
)

// Vectors below were cross-checked against an independent MurmurHash64A
// implementation (seed 0) to pin bit-exact behavior.
func TestMurmurHash64AVectors(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"", 0x0},
		{"a", 0x71717d2d36b6b11},
		{"ab", 0x62be85b2fe53d1f8},
		{"abc", 0x9cc9c33498a95efb},
		{"foo", 0xcdde38358fd25b01},
		{"Hello, world!", 0xa0fe1b7e284d2b19},
		{"abcdefgh", 0xafdb0257ff41aa98},
		{"abcdefghi", 0xc9b9d84356146ac2},
		{"1234567890123456", 0x5030ee4b4f655966},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, murmurHash64A([]byte(tt.in), 0))
		})
	}
}

func TestComputeWholeLine(t *testing.T) {
	spec := keyspec.Default("\t")
	assert.Equal(t, murmurHash64A([]byte("foo\tbar"), 0), Compute([]byte("foo\tbar"), spec))
}

func TestComputeColumnSelection(t *testing.T) {
	spec, err := keyspec.Parse("1,3", "\t")
	assert.NoError(t, err)

	a := Compute([]byte("a\tx\tb"), spec)
	b := Compute([]byte("a\ty\tb"), spec)
	c := Compute([]byte("a\tx\tc"), spec)

	assert.Equal(t, a, b, "columns 1 and 3 match ('a'+'b'), column 2 is not part of the key")
	assert.NotEqual(t, a, c)
	assert.Equal(t, murmurHash64A([]byte("ab"), 0), a)
}

func TestComputeOutOfRangeFallsBackToWholeLine(t *testing.T) {
	spec, err := keyspec.Parse("5", "\t")
	assert.NoError(t, err)

	line1 := []byte("a\tb")
	line2 := []byte("a\tc")

	assert.Equal(t, Compute(line1, spec), Compute(line1, spec))
	assert.NotEqual(t, Compute(line1, spec), Compute(line2, spec))
	assert.Equal(t, murmurHash64A(line1, 0), Compute(line1, spec))
}

func TestComputeExactColumnCountIsSufficient(t *testing.T) {
	// A line with exactly 2 fields and max requested column 2 is sufficient
	// under the pinned "size < max" boundary (DESIGN.md): column 2 exists.
	spec, err := keyspec.Parse("2", "\t")
	assert.NoError(t, err)

	line := []byte("a\tb")
	assert.Equal(t, murmurHash64A([]byte("b"), 0), Compute(line, spec))
}
