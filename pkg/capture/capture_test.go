package capture

import (
	"bytes"
	"encoding/binary"
	"io"
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/xfrm"
)

func sampleRecords() []xfrm.Record {
	src := netip.MustParseAddr("192.0.2.1")
	dst := netip.MustParseAddr("192.0.2.2")
	info, err := xfrm.NewUserSaInfo(src, dst, 0x4242, xfrm.ProtoESP)
	if err != nil {
		panic(err)
	}
	info.Reqid = 7
	return []xfrm.Record{
		xfrm.AddressFromIP(netip.MustParseAddr("2001:db8::9")),
		xfrm.Selector{Family: xfrm.FamilyIPv4, Dport: 500, Proto: 17},
		xfrm.ID{SPI: 9, Proto: xfrm.ProtoAH},
		xfrm.InfiniteLifetime(),
		xfrm.LifetimeCurrent{Bytes: 1 << 20, Packets: 900},
		info,
		xfrm.NewUserSaID(dst, 0x4242, xfrm.ProtoESP),
		xfrm.NewUserSpiInfo(info),
	}
}

func writeAll(t *testing.T, opts Options, recs []xfrm.Record) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := NewWriter(&buf, opts)
	require.NoError(t, err)
	for _, r := range recs {
		require.NoError(t, w.Write(r))
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func readAll(t *testing.T, data []byte) []xfrm.Record {
	t.Helper()
	r, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer r.Close()
	var out []xfrm.Record
	for {
		f, err := r.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		rec, err := f.Decode()
		require.NoError(t, err)
		out = append(out, rec)
	}
}

func TestRoundTrip(t *testing.T) {
	recs := sampleRecords()
	opt := cmp.AllowUnexported(xfrm.UserSaInfo{}, xfrm.UserSaID{}, xfrm.UserSpiInfo{})
	for _, tc := range []struct {
		name string
		opts Options
	}{
		{"plain", Options{}},
		{"zstd", Options{Compress: true}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			data := writeAll(t, tc.opts, recs)
			got := readAll(t, data)
			if diff := cmp.Diff(recs, got, opt); diff != "" {
				t.Fatalf("records differ (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHeader(t *testing.T) {
	data := writeAll(t, Options{Compress: true}, nil)
	require.GreaterOrEqual(t, len(data), headerLen)
	assert.Equal(t, "XFRC", string(data[:4]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[4:6]))
	assert.Equal(t, flagZstd, binary.LittleEndian.Uint16(data[6:8]))

	r, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, r.Compressed())
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestFrameLayout(t *testing.T) {
	id := xfrm.NewUserSaID(netip.MustParseAddr("10.0.0.1"), 1, xfrm.ProtoESP)
	data := writeAll(t, Options{}, []xfrm.Record{id})

	frame := data[headerLen:]
	assert.Equal(t, byte(KindUserSaID), frame[0])
	assert.Equal(t, byte(xfrm.SizeofUserSaID), frame[1], "length fits one varint byte")
	want, err := xfrm.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, want, frame[2:2+xfrm.SizeofUserSaID])
	assert.Len(t, frame, 2+xfrm.SizeofUserSaID+4)
}

func TestChecksumMismatch(t *testing.T) {
	data := writeAll(t, Options{}, sampleRecords()[:1])
	data[headerLen+3] ^= 0x01

	r, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	_, err = r.Next()
	require.ErrorIs(t, err, ErrChecksum)
}

func TestBadHeader(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("XF")))
	require.ErrorIs(t, err, ErrBadMagic)

	_, err = NewReader(bytes.NewReader([]byte("NOPE\x01\x00\x00\x00")))
	require.ErrorIs(t, err, ErrBadMagic)

	_, err = NewReader(bytes.NewReader([]byte("XFRC\x09\x00\x00\x00")))
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestTruncatedFrame(t *testing.T) {
	data := writeAll(t, Options{}, sampleRecords()[:2])
	r, err := NewReader(bytes.NewReader(data[:len(data)-3]))
	require.NoError(t, err)
	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestFrameTooLarge(t *testing.T) {
	hdr := writeAll(t, Options{}, nil)
	data := append(hdr, byte(KindUserSaInfo), 0x81, 0x40) // 8193
	r, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	_, err = r.Next()
	require.ErrorIs(t, err, ErrFrameTooLarge)
}

func TestFrameLengthOverflow(t *testing.T) {
	hdr := writeAll(t, Options{}, nil)
	for _, length := range [][]byte{
		{0x88, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x02},
		{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01},
	} {
		data := append(append([]byte{}, hdr...), byte(KindUserSaID))
		data = append(data, length...)
		data = append(data, make([]byte, 64)...)
		r, err := NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		_, err = r.Next()
		require.ErrorIs(t, err, ErrLengthOverflow, "% x", length)
	}
}

func TestUnknownKind(t *testing.T) {
	_, err := Frame{Kind: 0xee, Payload: make([]byte, 8)}.Decode()
	require.ErrorIs(t, err, ErrUnknownKind)
	assert.Equal(t, "kind(238)", Kind(0xee).String())
	assert.Equal(t, "spi-info", KindUserSpiInfo.String())

	var w bytes.Buffer
	cw, err := NewWriter(&w, Options{})
	require.NoError(t, err)
	require.ErrorIs(t, cw.Write(fakeRecord{}), ErrUnknownKind)
}

func TestDecodeShortPayload(t *testing.T) {
	rec, err := Frame{Kind: KindUserSpiInfo, Payload: make([]byte, 100)}.Decode()
	require.ErrorIs(t, err, xfrm.ErrBufferTooShort)
	assert.Nil(t, rec)
}

type fakeRecord struct{}

func (fakeRecord) BufferLen() int      { return 8 }
func (fakeRecord) Emit(b []byte) error { return nil }
