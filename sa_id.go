package xfrm

import (
	"encoding/binary"
	"net/netip"

	"github.com/rawbytedev/xfrm/pkg/layout"
)

var (
	saIDDaddr  = layout.At(0, addressLayout.Size(), nil)
	saIDSPI    = layout.Next(saIDDaddr, 4, binary.BigEndian)
	saIDFamily = layout.Next(saIDSPI, 2, layout.Native)
	saIDProto  = layout.Next(saIDFamily, 1, layout.Native)

	userSaIDLayout = layout.New("xfrm_usersa_id", saIDDaddr, saIDSPI, saIDFamily, saIDProto)
)

// UserSaID is xfrm_usersa_id, the key used to look up, update or delete a
// single security association. SPI is held in host order and written in
// network order. Family always matches the stored destination; the zero
// value has neither.
type UserSaID struct {
	daddr  Address
	spi    uint32
	family uint16
	proto  uint8
}

// NewUserSaID returns the ID of the state for (daddr, spi, proto).
func NewUserSaID(daddr netip.Addr, spi uint32, proto uint8) UserSaID {
	id := UserSaID{spi: spi, proto: proto}
	id.SetDestination(daddr)
	return id
}

func (id UserSaID) Destination() Address { return id.daddr }

// DestinationIP reads the destination according to Family.
func (id UserSaID) DestinationIP() netip.Addr { return id.daddr.IP(id.family) }

func (id UserSaID) SPI() uint32 { return id.spi }

func (id UserSaID) Family() uint16 { return id.family }

func (id UserSaID) Proto() uint8 { return id.proto }

// SetDestination stores addr and sets Family from its IP version. This is
// the only way to change either field. An invalid addr clears the address
// and keeps Family.
func (id *UserSaID) SetDestination(addr netip.Addr) {
	id.daddr = AddressFromIP(addr)
	if f, ok := familyOf(addr); ok {
		id.family = f
	}
}

// ParseUserSaID reads an xfrm_usersa_id from the start of b. The family is
// taken as sent; it is not checked against the address bytes.
func ParseUserSaID(b []byte) (UserSaID, error) {
	buf, err := parseView(userSaIDLayout, b)
	if err != nil {
		return UserSaID{}, err
	}
	daddr, err := ParseAddress(buf.Bytes(saIDDaddr))
	if err != nil {
		return UserSaID{}, nestedParseError(userSaIDLayout, "daddr", err)
	}
	return UserSaID{
		daddr:  daddr,
		spi:    buf.Uint32(saIDSPI),
		family: buf.Uint16(saIDFamily),
		proto:  buf.Uint8(saIDProto),
	}, nil
}

// BufferLen is the padded wire size, 24 bytes.
func (id UserSaID) BufferLen() int { return userSaIDLayout.Size() }

// Emit writes id to the start of b. It fails with ErrBufferTooShort when b
// is shorter than BufferLen and writes nothing in that case.
func (id UserSaID) Emit(b []byte) error {
	buf, err := emitView(userSaIDLayout, b)
	if err != nil {
		return err
	}
	if err := id.daddr.Emit(buf.Bytes(saIDDaddr)); err != nil {
		return nestedEmitError(userSaIDLayout, "daddr", err)
	}
	buf.PutUint32(saIDSPI, id.spi)
	buf.PutUint16(saIDFamily, id.family)
	buf.PutUint8(saIDProto, id.proto)
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (id UserSaID) MarshalBinary() ([]byte, error) { return Marshal(id) }

func (id *UserSaID) UnmarshalBinary(b []byte) error {
	v, err := ParseUserSaID(b)
	if err != nil {
		return err
	}
	*id = v
	return nil
}
