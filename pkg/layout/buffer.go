package layout

// Buffer is a bounds-checked view over a record's bytes. It is only
// obtainable through Layout.Wrap, which guarantees every field of that layout
// lies inside the view. The underlying slice stays owned by the caller.
type Buffer struct {
	b []byte
}

// Len returns the number of bytes in the view (the layout's padded size).
func (b Buffer) Len() int { return len(b.b) }

// Bytes returns the field's range. The returned slice aliases the buffer.
func (b Buffer) Bytes(f Field) []byte {
	return b.b[f.Offset:f.End():f.End()]
}

func (b Buffer) Uint8(f Field) uint8 {
	return b.b[f.Offset]
}

func (b Buffer) Uint16(f Field) uint16 {
	return f.Order.Uint16(b.b[f.Offset:f.End()])
}

func (b Buffer) Uint32(f Field) uint32 {
	return f.Order.Uint32(b.b[f.Offset:f.End()])
}

func (b Buffer) Uint64(f Field) uint64 {
	return f.Order.Uint64(b.b[f.Offset:f.End()])
}

func (b Buffer) Int32(f Field) int32 {
	return int32(b.Uint32(f))
}

// PutBytes copies src into the field's range. A short src leaves the
// remaining bytes untouched; a long one is truncated to the field width.
func (b Buffer) PutBytes(f Field, src []byte) {
	copy(b.b[f.Offset:f.End()], src)
}

func (b Buffer) PutUint8(f Field, v uint8) {
	b.b[f.Offset] = v
}

func (b Buffer) PutUint16(f Field, v uint16) {
	f.Order.PutUint16(b.b[f.Offset:f.End()], v)
}

func (b Buffer) PutUint32(f Field, v uint32) {
	f.Order.PutUint32(b.b[f.Offset:f.End()], v)
}

func (b Buffer) PutUint64(f Field, v uint64) {
	f.Order.PutUint64(b.b[f.Offset:f.End()], v)
}

func (b Buffer) PutInt32(f Field, v int32) {
	b.PutUint32(f, uint32(v))
}
