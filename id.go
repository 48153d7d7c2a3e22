package xfrm

import (
	"encoding/binary"

	"github.com/rawbytedev/xfrm/pkg/layout"
)

var (
	idDaddr = layout.At(0, addressLayout.Size(), nil)
	idSPI   = layout.Next(idDaddr, 4, binary.BigEndian)
	idProto = layout.Next(idSPI, 1, layout.Native)

	idLayout = layout.New("xfrm_id", idDaddr, idSPI, idProto)
)

// ID is xfrm_id, the (destination, SPI, protocol) triple naming a state
// inside UserSaInfo. SPI is held in host order.
type ID struct {
	Daddr Address
	SPI   uint32
	Proto uint8
}

// ParseID reads an xfrm_id from the start of b.
func ParseID(b []byte) (ID, error) {
	buf, err := parseView(idLayout, b)
	if err != nil {
		return ID{}, err
	}
	daddr, err := ParseAddress(buf.Bytes(idDaddr))
	if err != nil {
		return ID{}, nestedParseError(idLayout, "daddr", err)
	}
	return ID{
		Daddr: daddr,
		SPI:   buf.Uint32(idSPI),
		Proto: buf.Uint8(idProto),
	}, nil
}

func (id ID) BufferLen() int { return idLayout.Size() }

// Emit writes id to the start of b, the SPI in network order.
func (id ID) Emit(b []byte) error {
	buf, err := emitView(idLayout, b)
	if err != nil {
		return err
	}
	if err := id.Daddr.Emit(buf.Bytes(idDaddr)); err != nil {
		return nestedEmitError(idLayout, "daddr", err)
	}
	buf.PutUint32(idSPI, id.SPI)
	buf.PutUint8(idProto, id.Proto)
	return nil
}

func (id ID) MarshalBinary() ([]byte, error) { return Marshal(id) }

func (id *ID) UnmarshalBinary(b []byte) error {
	v, err := ParseID(b)
	if err != nil {
		return err
	}
	*id = v
	return nil
}
