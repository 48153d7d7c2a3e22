package capture

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/rawbytedev/xfrm"
	"github.com/rawbytedev/xfrm/internal/common"
)

const (
	magic   = "XFRC"
	version = 1

	flagZstd uint16 = 1 << 0

	headerLen = len(magic) + 2 + 2
)

// Options controls how a capture stream is written.
type Options struct {
	// Compress runs every frame after the header through zstd.
	Compress bool
}

// Writer appends records to a capture stream. It is not safe for concurrent
// use.
type Writer struct {
	w   io.Writer
	enc *zstd.Encoder
	buf []byte
}

// NewWriter writes the stream header to w and returns a Writer for the
// frames that follow. Close must be called to flush a compressed stream; it
// does not close w.
func NewWriter(w io.Writer, opts Options) (*Writer, error) {
	var flags uint16
	if opts.Compress {
		flags |= flagZstd
	}
	hdr := make([]byte, 0, headerLen)
	hdr = append(hdr, magic...)
	hdr = binary.LittleEndian.AppendUint16(hdr, version)
	hdr = binary.LittleEndian.AppendUint16(hdr, flags)
	if _, err := w.Write(hdr); err != nil {
		return nil, fmt.Errorf("capture: write header: %w", err)
	}

	cw := &Writer{w: w}
	if opts.Compress {
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return nil, fmt.Errorf("capture: zstd: %w", err)
		}
		cw.enc = enc
		cw.w = enc
	}
	return cw, nil
}

// Write emits r and appends it as one frame.
func (cw *Writer) Write(r xfrm.Record) error {
	kind, err := KindOf(r)
	if err != nil {
		return err
	}
	n := r.BufferLen()
	if n > MaxPayload {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, n)
	}

	// kind | uvarint len | payload | crc
	b := append(cw.buf[:0], byte(kind))
	b = common.WriteVarUint(b, uint64(n))
	start := len(b)
	b = append(b, make([]byte, n)...)
	if err := r.Emit(b[start:]); err != nil {
		return err
	}
	crc := crc32.NewIEEE()
	crc.Write(b[:1])
	crc.Write(b[start:])
	b = binary.LittleEndian.AppendUint32(b, crc.Sum32())
	cw.buf = b

	if _, err := cw.w.Write(b); err != nil {
		return fmt.Errorf("capture: write %v: %w", kind, err)
	}
	return nil
}

// Close flushes any compressed data. The underlying writer stays open.
func (cw *Writer) Close() error {
	if cw.enc == nil {
		return nil
	}
	return cw.enc.Close()
}
