package capture

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/rawbytedev/xfrm/internal/common"
)

// Reader walks the frames of a capture stream. It is not safe for concurrent
// use.
type Reader struct {
	r          *bufio.Reader
	dec        *zstd.Decoder
	compressed bool
}

// NewReader checks the stream header and prepares to read frames.
func NewReader(r io.Reader) (*Reader, error) {
	var hdr [headerLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrBadMagic
		}
		return nil, fmt.Errorf("capture: read header: %w", err)
	}
	if string(hdr[:len(magic)]) != magic {
		return nil, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint16(hdr[4:6]); v != version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	flags := binary.LittleEndian.Uint16(hdr[6:8])

	cr := &Reader{compressed: flags&flagZstd != 0}
	if cr.compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("capture: zstd: %w", err)
		}
		cr.dec = dec
		r = dec
	}
	cr.r = bufio.NewReader(r)
	return cr, nil
}

// Compressed reports whether the stream body is zstd-compressed.
func (cr *Reader) Compressed() bool { return cr.compressed }

// Next returns the next frame. It returns io.EOF once the stream ends on a
// frame boundary and io.ErrUnexpectedEOF if it ends inside one.
func (cr *Reader) Next() (Frame, error) {
	k, err := cr.r.ReadByte()
	if err != nil {
		return Frame{}, err
	}
	n, err := cr.readLen()
	if err != nil {
		return Frame{}, err
	}
	if n > MaxPayload {
		return Frame{}, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, n)
	}

	body := make([]byte, n+4)
	if _, err := io.ReadFull(cr.r, body); err != nil {
		return Frame{}, unexpected(err)
	}
	payload := body[:n]
	crc := crc32.NewIEEE()
	crc.Write([]byte{k})
	crc.Write(payload)
	if crc.Sum32() != binary.LittleEndian.Uint32(body[n:]) {
		return Frame{}, fmt.Errorf("%w: %v frame", ErrChecksum, Kind(k))
	}
	return Frame{Kind: Kind(k), Payload: payload[:n:n]}, nil
}

func (cr *Reader) readLen() (uint64, error) {
	var b []byte
	for {
		c, err := cr.r.ReadByte()
		if err != nil {
			return 0, unexpected(err)
		}
		b = append(b, c)
		if c&0x80 == 0 {
			break
		}
		if len(b) == binary.MaxVarintLen64 {
			return 0, ErrLengthOverflow
		}
	}
	v, n := common.ReadVarUint(b)
	if n == 0 {
		return 0, ErrLengthOverflow
	}
	return v, nil
}

// Close releases the decompressor, if any. The underlying reader stays open.
func (cr *Reader) Close() error {
	if cr.dec != nil {
		cr.dec.Close()
	}
	return nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
