// Package xfrm parses and emits the fixed-layout records the Linux XFRM
// (IPsec) subsystem exchanges over netlink.
//
// Each record type mirrors one kernel structure byte for byte:
//
//	Address         xfrm_address_t      16 bytes
//	Selector        xfrm_selector       56 bytes
//	ID              xfrm_id             24 bytes
//	LifetimeConfig  xfrm_lifetime_cfg   64 bytes
//	LifetimeCurrent xfrm_lifetime_cur   32 bytes
//	UserSaInfo      xfrm_usersa_info   224 bytes
//	UserSaID        xfrm_usersa_id      24 bytes
//	UserSpiInfo     xfrm_userspi_info  232 bytes
//
// Integers are in host byte order except the SPI and port fields, which the
// kernel keeps in network order; the Go values always hold host order.
// Every size is padded to 8 bytes and padding content is unspecified: it is
// never checked on parse and never cleared on emit.
//
// # Parsing and emitting
//
// ParseXxx reads a record from the start of a byte slice and fails with
// ErrBufferTooShort if the slice cannot hold it. Nested records are parsed
// from their own sub-slices; a failure there is reported as a *DecodeError
// naming the field. No semantic validation happens on parse.
//
//	id, err := xfrm.ParseUserSaID(reply)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(id.DestinationIP(), id.SPI())
//
// Emit writes a record into a caller-allocated slice of at least BufferLen()
// bytes; Marshal allocates one:
//
//	info, err := xfrm.NewUserSaInfo(src, dst, 0, xfrm.ProtoESP)
//	if err != nil {
//	    return err
//	}
//	b, err := xfrm.Marshal(xfrm.NewUserSpiInfo(info))
//
// # Consistency rules
//
// Fields that other fields depend on are unexported and change only through
// setters. The address family is derived from the addresses given to
// SetDestination, SetSource or SetAddresses, and a source and destination of
// different IP versions are refused with ErrFamilyMismatch. An SPI allocation
// for ProtoComp never asks for an SPI above 0xffff.
//
// # Concurrency
//
// Records are plain values and the codec keeps no state, so parsing and
// emitting independent buffers is safe from any number of goroutines. Parsed
// records copy every byte they keep, so a buffer can be reused as soon as the
// call returns.
package xfrm
