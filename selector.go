package xfrm

import (
	"encoding/binary"

	"github.com/rawbytedev/xfrm/pkg/layout"
)

var (
	selDaddr      = layout.At(0, addressLayout.Size(), nil)
	selSaddr      = layout.Next(selDaddr, addressLayout.Size(), nil)
	selDport      = layout.Next(selSaddr, 2, binary.BigEndian)
	selDportMask  = layout.Next(selDport, 2, binary.BigEndian)
	selSport      = layout.Next(selDportMask, 2, binary.BigEndian)
	selSportMask  = layout.Next(selSport, 2, binary.BigEndian)
	selFamily     = layout.Next(selSportMask, 2, layout.Native)
	selPrefixlenD = layout.Next(selFamily, 1, layout.Native)
	selPrefixlenS = layout.Next(selPrefixlenD, 1, layout.Native)
	selProto      = layout.Next(selPrefixlenS, 1, layout.Native)
	selPad        = layout.Pad(selProto, 3)
	selIfindex    = layout.Next(selPad, 4, layout.Native)
	selUser       = layout.Next(selIfindex, 4, layout.Native)

	selectorLayout = layout.New("xfrm_selector",
		selDaddr, selSaddr, selDport, selDportMask, selSport, selSportMask,
		selFamily, selPrefixlenD, selPrefixlenS, selProto, selPad, selIfindex, selUser)
)

// Selector is xfrm_selector, the traffic a state or policy applies to.
// Ports are kept in host order here and written in network order.
type Selector struct {
	Daddr      Address
	Saddr      Address
	Dport      uint16
	DportMask  uint16
	Sport      uint16
	SportMask  uint16
	Family     uint16
	PrefixlenD uint8
	PrefixlenS uint8
	Proto      uint8
	Ifindex    int32
	User       uint32
}

// ParseSelector reads an xfrm_selector from the start of b. Ports are
// converted from network order.
func ParseSelector(b []byte) (Selector, error) {
	buf, err := parseView(selectorLayout, b)
	if err != nil {
		return Selector{}, err
	}
	daddr, err := ParseAddress(buf.Bytes(selDaddr))
	if err != nil {
		return Selector{}, nestedParseError(selectorLayout, "daddr", err)
	}
	saddr, err := ParseAddress(buf.Bytes(selSaddr))
	if err != nil {
		return Selector{}, nestedParseError(selectorLayout, "saddr", err)
	}
	return Selector{
		Daddr:      daddr,
		Saddr:      saddr,
		Dport:      buf.Uint16(selDport),
		DportMask:  buf.Uint16(selDportMask),
		Sport:      buf.Uint16(selSport),
		SportMask:  buf.Uint16(selSportMask),
		Family:     buf.Uint16(selFamily),
		PrefixlenD: buf.Uint8(selPrefixlenD),
		PrefixlenS: buf.Uint8(selPrefixlenS),
		Proto:      buf.Uint8(selProto),
		Ifindex:    buf.Int32(selIfindex),
		User:       buf.Uint32(selUser),
	}, nil
}

func (s Selector) BufferLen() int { return selectorLayout.Size() }

// Emit writes s to the start of b. Padding bytes are left as they are.
func (s Selector) Emit(b []byte) error {
	buf, err := emitView(selectorLayout, b)
	if err != nil {
		return err
	}
	if err := s.Daddr.Emit(buf.Bytes(selDaddr)); err != nil {
		return nestedEmitError(selectorLayout, "daddr", err)
	}
	if err := s.Saddr.Emit(buf.Bytes(selSaddr)); err != nil {
		return nestedEmitError(selectorLayout, "saddr", err)
	}
	buf.PutUint16(selDport, s.Dport)
	buf.PutUint16(selDportMask, s.DportMask)
	buf.PutUint16(selSport, s.Sport)
	buf.PutUint16(selSportMask, s.SportMask)
	buf.PutUint16(selFamily, s.Family)
	buf.PutUint8(selPrefixlenD, s.PrefixlenD)
	buf.PutUint8(selPrefixlenS, s.PrefixlenS)
	buf.PutUint8(selProto, s.Proto)
	buf.PutInt32(selIfindex, s.Ifindex)
	buf.PutUint32(selUser, s.User)
	return nil
}

func (s Selector) MarshalBinary() ([]byte, error) { return Marshal(s) }

func (s *Selector) UnmarshalBinary(b []byte) error {
	v, err := ParseSelector(b)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
