package xfrm

import (
	"net/netip"

	"github.com/rawbytedev/xfrm/pkg/layout"
)

var (
	addrBytes = layout.At(0, 16, nil)

	addressLayout = layout.New("xfrm_address_t", addrBytes)
)

// Address is xfrm_address_t: room for either an IPv4 or an IPv6 address.
// IPv4 addresses use the first four bytes. The bytes do not say which one
// they hold; the family field next to them does.
type Address [16]byte

// AddressFromIP stores ip in kernel form. The zero netip.Addr gives the zero
// Address.
func AddressFromIP(ip netip.Addr) Address {
	var a Address
	switch {
	case ip.Is4():
		v4 := ip.As4()
		copy(a[:], v4[:])
	case ip.Is6():
		a = ip.As16()
	}
	return a
}

// IP interprets the address according to family. Unknown families give the
// zero netip.Addr.
func (a Address) IP(family uint16) netip.Addr {
	switch family {
	case FamilyIPv4:
		return netip.AddrFrom4([4]byte(a[:4]))
	case FamilyIPv6:
		return netip.AddrFrom16(a)
	default:
		return netip.Addr{}
	}
}

// IsZero reports whether every byte is zero (the unset address).
func (a Address) IsZero() bool { return a == Address{} }

// familyOf returns the address family code of ip, false when ip is invalid.
func familyOf(ip netip.Addr) (uint16, bool) {
	switch {
	case ip.Is4():
		return FamilyIPv4, true
	case ip.Is6():
		return FamilyIPv6, true
	default:
		return 0, false
	}
}

// ParseAddress reads an xfrm_address_t from the start of b.
func ParseAddress(b []byte) (Address, error) {
	buf, err := parseView(addressLayout, b)
	if err != nil {
		return Address{}, err
	}
	var a Address
	copy(a[:], buf.Bytes(addrBytes))
	return a, nil
}

func (a Address) BufferLen() int { return addressLayout.Size() }

// Emit writes the 16 address bytes to the start of b.
func (a Address) Emit(b []byte) error {
	buf, err := emitView(addressLayout, b)
	if err != nil {
		return err
	}
	buf.PutBytes(addrBytes, a[:])
	return nil
}

func (a Address) MarshalBinary() ([]byte, error) { return Marshal(a) }

func (a *Address) UnmarshalBinary(b []byte) error {
	v, err := ParseAddress(b)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
