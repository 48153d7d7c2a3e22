package xfrm

import "github.com/rawbytedev/xfrm/pkg/layout"

var (
	spiInfo = layout.At(0, userSaInfoLayout.Size(), nil)
	spiMin  = layout.Next(spiInfo, 4, layout.Native)
	spiMax  = layout.Next(spiMin, 4, layout.Native)

	userSpiInfoLayout = layout.New("xfrm_userspi_info", spiInfo, spiMin, spiMax)
)

// UserSpiInfo is xfrm_userspi_info, the payload of an SPI allocation request:
// the state to create and the range the kernel may pick its SPI from.
//
// IPPROTO_COMP states only have 16 bits of SPI, so whenever the protocol is
// ProtoComp the upper bound is lowered to 0xffff. The constructors and both
// setters apply that rule; values above it are lowered, never rejected.
type UserSpiInfo struct {
	info UserSaInfo
	min  uint32
	max  uint32
}

// NewUserSpiInfo requests an SPI for info within DefaultSPIRange.
func NewUserSpiInfo(info UserSaInfo) UserSpiInfo {
	return NewUserSpiInfoWithRange(info, DefaultSPIRange)
}

// NewUserSpiInfoWithRange requests an SPI for info within r.
func NewUserSpiInfoWithRange(info UserSaInfo, r SPIRange) UserSpiInfo {
	s := UserSpiInfo{info: info}
	s.SetSPIRange(r.Min, r.Max)
	return s
}

// DefaultUserSpiInfo is an empty state with the default SPI range.
func DefaultUserSpiInfo() UserSpiInfo {
	return NewUserSpiInfo(UserSaInfo{})
}

// Info returns the state the SPI is requested for.
func (s UserSpiInfo) Info() UserSaInfo { return s.info }

func (s UserSpiInfo) Min() uint32 { return s.min }

func (s UserSpiInfo) Max() uint32 { return s.max }

func (s UserSpiInfo) Range() SPIRange { return SPIRange{Min: s.min, Max: s.max} }

// SetProtocol sets the protocol of the embedded state ID and clamps Max for
// ProtoComp.
func (s *UserSpiInfo) SetProtocol(proto uint8) {
	s.info.SetProtocol(proto)
	if proto == ProtoComp && s.max > compSPIMax {
		s.max = compSPIMax
	}
}

// SetSPIRange replaces the range, clamping max when the protocol is
// ProtoComp.
func (s *UserSpiInfo) SetSPIRange(lo, hi uint32) {
	s.min = lo
	if s.info.id.Proto == ProtoComp && hi > compSPIMax {
		s.max = compSPIMax
	} else {
		s.max = hi
	}
}

// ParseUserSpiInfo reads an xfrm_userspi_info from the start of b. The range
// is taken as sent; the ProtoComp clamp only applies to values set locally.
func ParseUserSpiInfo(b []byte) (UserSpiInfo, error) {
	buf, err := parseView(userSpiInfoLayout, b)
	if err != nil {
		return UserSpiInfo{}, err
	}
	info, err := ParseUserSaInfo(buf.Bytes(spiInfo))
	if err != nil {
		return UserSpiInfo{}, nestedParseError(userSpiInfoLayout, "info", err)
	}
	return UserSpiInfo{
		info: info,
		min:  buf.Uint32(spiMin),
		max:  buf.Uint32(spiMax),
	}, nil
}

// BufferLen is the padded wire size, 232 bytes.
func (s UserSpiInfo) BufferLen() int { return userSpiInfoLayout.Size() }

// Emit writes s to the start of b, the embedded state first.
func (s UserSpiInfo) Emit(b []byte) error {
	buf, err := emitView(userSpiInfoLayout, b)
	if err != nil {
		return err
	}
	if err := s.info.Emit(buf.Bytes(spiInfo)); err != nil {
		return nestedEmitError(userSpiInfoLayout, "info", err)
	}
	buf.PutUint32(spiMin, s.min)
	buf.PutUint32(spiMax, s.max)
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s UserSpiInfo) MarshalBinary() ([]byte, error) { return Marshal(s) }

func (s *UserSpiInfo) UnmarshalBinary(b []byte) error {
	v, err := ParseUserSpiInfo(b)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
