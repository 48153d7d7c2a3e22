// Package capture stores xfrm records in a framed, checksummed stream so that
// requests built by tooling, or replies dumped off a netlink socket, can be
// kept on disk and replayed through the parsers later.
//
// A stream starts with an 8-byte header:
//
//	"XFRC" | version u16 LE | flags u16 LE
//
// Flag bit 0 marks a zstd-compressed body. Each frame in the body is
//
//	kind u8 | payload length uvarint | payload | crc32 u32 LE
//
// where the payload is exactly what the record's Emit wrote and the CRC-32
// (IEEE) covers the kind byte and the payload.
package capture
