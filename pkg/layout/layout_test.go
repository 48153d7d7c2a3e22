package layout

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tDaddr  = At(0, 16, nil)
	tSPI    = Next(tDaddr, 4, binary.BigEndian)
	tFamily = Next(tSPI, 2, Native)
	tProto  = Next(tFamily, 1, Native)

	tLayout = New("test_sa_id", tDaddr, tSPI, tFamily, tProto)
)

func TestFieldOffsets(t *testing.T) {
	assert.Equal(t, 16, tSPI.Offset)
	assert.Equal(t, 20, tFamily.Offset)
	assert.Equal(t, 22, tProto.Offset)
	assert.Equal(t, 23, tProto.End())
	assert.Equal(t, 23, tLayout.Unpadded())
	assert.Equal(t, 24, tLayout.Size())
	assert.Equal(t, "test_sa_id", tLayout.Name())
}

func TestPadAdvancesOffset(t *testing.T) {
	a := At(0, 1, Native)
	p := Pad(a, 3)
	b := Next(p, 4, Native)
	assert.Equal(t, 4, b.Offset)
	assert.Nil(t, p.Order)
	assert.Equal(t, 8, New("padded", a, p, b).Size())
}

func TestAlign(t *testing.T) {
	cases := map[int]int{0: 0, 1: 8, 7: 8, 8: 8, 9: 16, 23: 24, 217: 224, 232: 232}
	for in, want := range cases {
		assert.Equal(t, want, Align(in), "Align(%d)", in)
	}
}

func TestNewRejectsOddIntegerWidth(t *testing.T) {
	require.Panics(t, func() {
		New("bad", At(0, 3, Native))
	})
	require.NotPanics(t, func() {
		New("raw", At(0, 3, nil))
	})
}

func TestWrapShortBuffer(t *testing.T) {
	for _, n := range []int{0, 1, 23} {
		_, err := tLayout.Wrap(make([]byte, n))
		require.ErrorIs(t, err, ErrBufferTooShort)
		assert.Equal(t, fmt.Sprintf("buffer too short: have %d bytes, want 24", n), err.Error())
	}
	_, err := tLayout.Wrap(nil)
	require.ErrorIs(t, err, ErrBufferTooShort)
}

func TestWrapLimitsView(t *testing.T) {
	buf, err := tLayout.Wrap(make([]byte, 64))
	require.NoError(t, err)
	assert.Equal(t, 24, buf.Len())
}

func TestBufferEndianness(t *testing.T) {
	raw := make([]byte, 24)
	buf, err := tLayout.Wrap(raw)
	require.NoError(t, err)

	buf.PutUint32(tSPI, 1)
	assert.Equal(t, []byte{0, 0, 0, 1}, raw[16:20])
	assert.Equal(t, uint32(1), buf.Uint32(tSPI))

	buf.PutUint16(tFamily, 0x0102)
	want := make([]byte, 2)
	binary.NativeEndian.PutUint16(want, 0x0102)
	assert.Equal(t, want, raw[20:22])
	assert.Equal(t, uint16(0x0102), buf.Uint16(tFamily))

	buf.PutUint8(tProto, 50)
	assert.Equal(t, byte(50), raw[22])
	assert.Equal(t, uint8(50), buf.Uint8(tProto))
}

func TestBufferBytesAliases(t *testing.T) {
	raw := make([]byte, 24)
	buf, err := tLayout.Wrap(raw)
	require.NoError(t, err)

	buf.PutBytes(tDaddr, []byte{10, 0, 0, 1})
	assert.Equal(t, []byte{10, 0, 0, 1}, raw[:4])

	d := buf.Bytes(tDaddr)
	require.Len(t, d, 16)
	d[0] = 192
	assert.Equal(t, byte(192), raw[0])

	// capacity is clipped, so appends never spill into the SPI field
	_ = append(d, 0xff)
	assert.Equal(t, byte(0), raw[16])
}

func TestBufferWideIntegers(t *testing.T) {
	a := At(0, 8, Native)
	b := Next(a, 4, Native)
	l := New("wide", a, b)
	buf, err := l.Wrap(make([]byte, l.Size()))
	require.NoError(t, err)

	buf.PutUint64(a, 1<<63|5)
	buf.PutInt32(b, -7)
	assert.Equal(t, uint64(1<<63|5), buf.Uint64(a))
	assert.Equal(t, int32(-7), buf.Int32(b))
}
