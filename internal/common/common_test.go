package common

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign(t *testing.T) {
	cases := map[int]int{0: 0, 1: 8, 7: 8, 8: 8, 9: 16, 217: 224, 232: 232}
	for in, want := range cases {
		assert.Equal(t, want, Align(in), "Align(%d)", in)
	}
	assert.Equal(t, 4, AlignTo(3, 4))
}

func TestFixedSize(t *testing.T) {
	for _, w := range []int{1, 2, 4, 8} {
		assert.Equal(t, w, FixedSize(w))
	}
	for _, w := range []int{0, 3, 16} {
		assert.Equal(t, -1, FixedSize(w))
	}
}

func TestVarUintRoundTrip(t *testing.T) {
	f := func(x uint64) bool {
		b := WriteVarUint(nil, x)
		got, n := ReadVarUint(b)
		return got == x && n == len(b)
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestReadVarUintTruncated(t *testing.T) {
	b := WriteVarUint(nil, 1<<40)
	_, n := ReadVarUint(b[:len(b)-1])
	assert.Zero(t, n)

	_, n = ReadVarUint([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	assert.Zero(t, n, "more than ten bytes")

	// ten bytes, but the last one carries bits past 64
	_, n = ReadVarUint([]byte{0x88, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x02})
	assert.Zero(t, n)

	v, n := ReadVarUint(WriteVarUint(nil, ^uint64(0)))
	assert.Equal(t, ^uint64(0), v)
	assert.Equal(t, 10, n)
}
