package layout

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rawbytedev/xfrm/internal/common"
)

// ErrBufferTooShort is returned when a byte slice is shorter than the layout
// it is wrapped in.
var ErrBufferTooShort = errors.New("buffer too short")

// Native is the host byte order. Most kernel ABI fields use it.
var Native binary.ByteOrder = binary.NativeEndian

// Field is a fixed byte range of a record. Order is the byte order used when
// the range is read as an integer; raw byte ranges (addresses, padding) have a
// nil Order.
type Field struct {
	Offset int
	Width  int
	Order  binary.ByteOrder
}

// End returns the offset one past the last byte of f.
func (f Field) End() int { return f.Offset + f.Width }

// At places the first field of a record.
func At(offset, width int, order binary.ByteOrder) Field {
	return Field{Offset: offset, Width: width, Order: order}
}

// Next places a field immediately after prev.
func Next(prev Field, width int, order binary.ByteOrder) Field {
	return Field{Offset: prev.End(), Width: width, Order: order}
}

// Pad reserves n bytes of padding after prev. The range is never read or
// written.
func Pad(prev Field, n int) Field {
	return Field{Offset: prev.End(), Width: n}
}

// Align rounds n up to the netlink 8-byte boundary.
func Align(n int) int { return common.Align(n) }

// Layout is the static shape of one record type: its name and padded size.
type Layout struct {
	name string
	end  int
	size int
}

// New builds the layout of a record made of fields. The size is the largest
// field end rounded up to 8 bytes. New panics on fields that cannot be read
// with the declared order; layouts are package-level values, so this fires at
// init time.
func New(name string, fields ...Field) Layout {
	end := 0
	for _, f := range fields {
		if f.Offset < 0 || f.Width < 0 {
			panic(fmt.Sprintf("layout %s: negative field range %d+%d", name, f.Offset, f.Width))
		}
		if f.Order != nil && common.FixedSize(f.Width) < 0 {
			panic(fmt.Sprintf("layout %s: integer field at %d has width %d", name, f.Offset, f.Width))
		}
		if f.End() > end {
			end = f.End()
		}
	}
	return Layout{name: name, end: end, size: Align(end)}
}

// Name returns the kernel name of the record.
func (l Layout) Name() string { return l.name }

// Size returns the padded wire length of the record.
func (l Layout) Size() int { return l.size }

// Unpadded returns the offset one past the last declared field.
func (l Layout) Unpadded() int { return l.end }

// Wrap returns a Buffer over b after checking that b holds the whole record.
// Bytes past Size are ignored. The error leaves naming the record to the
// caller.
func (l Layout) Wrap(b []byte) (Buffer, error) {
	if len(b) < l.size {
		return Buffer{}, fmt.Errorf("%w: have %d bytes, want %d", ErrBufferTooShort, len(b), l.size)
	}
	return Buffer{b: b[:l.size:l.size]}, nil
}
