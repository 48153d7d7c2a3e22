// Package layout describes fixed binary record layouts and gives bounds-checked
// access to their fields.
//
// A layout is declared once per record type as a chain of fields whose offsets
// follow from the widths in declaration order:
//
//	var (
//		daddr  = layout.At(0, 16, nil)
//		spi    = layout.Next(daddr, 4, binary.BigEndian)
//		family = layout.Next(spi, 2, layout.Native)
//		proto  = layout.Next(family, 1, layout.Native)
//
//		saID = layout.New("xfrm_usersa_id", daddr, spi, family, proto) // Size() == 24
//	)
//
// The record size is padded to the netlink 8-byte alignment. Layout.Wrap is
// the only way to get a Buffer, and it rejects slices shorter than the padded
// size with ErrBufferTooShort, so field accessors never go out of range.
// Padding bytes are neither read nor written.
package layout
