package common

// NetlinkAlign is the alignment every netlink payload segment is padded to.
const NetlinkAlign = 8

// AlignTo rounds n up to the next multiple of a. a must be a power of two.
func AlignTo(n, a int) int {
	return (n + a - 1) &^ (a - 1)
}

// Align rounds n up to the netlink alignment.
func Align(n int) int {
	return AlignTo(n, NetlinkAlign)
}

// FixedSize returns the byte width of a fixed-size integer field, or -1 for
// widths the record views cannot read as integers.
func FixedSize(width int) int {
	switch width {
	case 1, 2, 4, 8:
		return width
	default:
		return -1
	}
}

// WriteVarUint appends a varint to buf (allocating if needed).
func WriteVarUint(buf []byte, x uint64) []byte {
	for x >= 0x80 {
		buf = append(buf, byte(x)|0x80)
		x >>= 7
	}
	return append(buf, byte(x))
}

// ReadVarUint decodes a varint from b returning value and bytes consumed.
// n == 0 means b ended before the varint did, or the value does not fit in
// 64 bits.
func ReadVarUint(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		if i == 10 || (i == 9 && c > 1) {
			return 0, 0
		}
		x |= uint64(c&0x7F) << s
		if c&0x80 == 0 {
			return x, i + 1
		}
		s += 7
	}
	return 0, 0
}
