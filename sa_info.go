package xfrm

import (
	"fmt"
	"net/netip"

	"github.com/rawbytedev/xfrm/pkg/layout"
)

var (
	saiSel                  = layout.At(0, selectorLayout.Size(), nil)
	saiID                   = layout.Next(saiSel, idLayout.Size(), nil)
	saiSaddr                = layout.Next(saiID, addressLayout.Size(), nil)
	saiLft                  = layout.Next(saiSaddr, lifetimeConfigLayout.Size(), nil)
	saiCurlft               = layout.Next(saiLft, lifetimeCurrentLayout.Size(), nil)
	saiStatsReplayWindow    = layout.Next(saiCurlft, 4, layout.Native)
	saiStatsReplay          = layout.Next(saiStatsReplayWindow, 4, layout.Native)
	saiStatsIntegrityFailed = layout.Next(saiStatsReplay, 4, layout.Native)
	saiSeq                  = layout.Next(saiStatsIntegrityFailed, 4, layout.Native)
	saiReqid                = layout.Next(saiSeq, 4, layout.Native)
	saiFamily               = layout.Next(saiReqid, 2, layout.Native)
	saiMode                 = layout.Next(saiFamily, 1, layout.Native)
	saiReplayWindow         = layout.Next(saiMode, 1, layout.Native)
	saiFlags                = layout.Next(saiReplayWindow, 1, layout.Native)

	userSaInfoLayout = layout.New("xfrm_usersa_info",
		saiSel, saiID, saiSaddr, saiLft, saiCurlft,
		saiStatsReplayWindow, saiStatsReplay, saiStatsIntegrityFailed,
		saiSeq, saiReqid, saiFamily, saiMode, saiReplayWindow, saiFlags)
)

// UserSaInfo is xfrm_usersa_info, the full description of a security
// association. The state identity (ID), source address and family are only
// changed through the setters, which refuse a source and destination of
// different IP versions, so family always describes both addresses.
type UserSaInfo struct {
	Selector     Selector
	id           ID
	saddr        Address
	Lifetime     LifetimeConfig
	Current      LifetimeCurrent
	Stats        Stats
	Seq          uint32
	Reqid        uint32
	family       uint16
	Mode         uint8
	ReplayWindow uint8
	Flags        uint8
}

// NewUserSaInfo describes a state from src to dst with no lifetime limits.
// Either address may be the zero netip.Addr; two valid addresses of
// different IP versions fail with ErrFamilyMismatch.
func NewUserSaInfo(src, dst netip.Addr, spi uint32, proto uint8) (UserSaInfo, error) {
	s := UserSaInfo{Lifetime: InfiniteLifetime()}
	if err := s.SetAddresses(src, dst); err != nil {
		return UserSaInfo{}, err
	}
	s.SetSPI(spi)
	s.SetProtocol(proto)
	return s, nil
}

// ID returns the state identity: destination, SPI and protocol.
func (s UserSaInfo) ID() ID { return s.id }

func (s UserSaInfo) Source() Address { return s.saddr }

func (s UserSaInfo) Family() uint16 { return s.family }

// SourceIP and DestinationIP read the addresses according to Family.
func (s UserSaInfo) SourceIP() netip.Addr { return s.saddr.IP(s.family) }

func (s UserSaInfo) DestinationIP() netip.Addr { return s.id.Daddr.IP(s.family) }

// SetDestination stores addr in the state ID and sets Family from its
// version. It fails with ErrFamilyMismatch, leaving s unchanged, when the
// source address is set and addr is of the other version. An invalid addr
// clears the address and keeps Family.
func (s *UserSaInfo) SetDestination(addr netip.Addr) error {
	if err := s.checkFamily(addr, s.saddr); err != nil {
		return err
	}
	s.id.Daddr = AddressFromIP(addr)
	if f, ok := familyOf(addr); ok {
		s.family = f
	}
	return nil
}

// SetSource is SetDestination for the source address.
func (s *UserSaInfo) SetSource(addr netip.Addr) error {
	if err := s.checkFamily(addr, s.id.Daddr); err != nil {
		return err
	}
	s.saddr = AddressFromIP(addr)
	if f, ok := familyOf(addr); ok {
		s.family = f
	}
	return nil
}

// SetAddresses replaces both addresses at once, which is how a state moves
// between IPv4 and IPv6.
func (s *UserSaInfo) SetAddresses(src, dst netip.Addr) error {
	sf, sok := familyOf(src)
	df, dok := familyOf(dst)
	if sok && dok && sf != df {
		return fmt.Errorf("%w: src %v, dst %v", ErrFamilyMismatch, src, dst)
	}
	s.saddr = AddressFromIP(src)
	s.id.Daddr = AddressFromIP(dst)
	switch {
	case dok:
		s.family = df
	case sok:
		s.family = sf
	}
	return nil
}

// checkFamily rejects addr when the other address is set under a family
// addr does not belong to.
func (s *UserSaInfo) checkFamily(addr netip.Addr, other Address) error {
	f, ok := familyOf(addr)
	if !ok || other.IsZero() || f == s.family {
		return nil
	}
	return fmt.Errorf("%w: %v against family %d", ErrFamilyMismatch, addr, s.family)
}

// SetSPI sets the SPI of the state ID, in host order.
func (s *UserSaInfo) SetSPI(spi uint32) { s.id.SPI = spi }

// SetProtocol sets the IPsec protocol of the state ID.
func (s *UserSaInfo) SetProtocol(proto uint8) { s.id.Proto = proto }

// ParseUserSaInfo reads an xfrm_usersa_info from the start of b. The family
// is taken as sent, as are the lifetimes and statistics.
func ParseUserSaInfo(b []byte) (UserSaInfo, error) {
	buf, err := parseView(userSaInfoLayout, b)
	if err != nil {
		return UserSaInfo{}, err
	}
	sel, err := ParseSelector(buf.Bytes(saiSel))
	if err != nil {
		return UserSaInfo{}, nestedParseError(userSaInfoLayout, "sel", err)
	}
	id, err := ParseID(buf.Bytes(saiID))
	if err != nil {
		return UserSaInfo{}, nestedParseError(userSaInfoLayout, "id", err)
	}
	saddr, err := ParseAddress(buf.Bytes(saiSaddr))
	if err != nil {
		return UserSaInfo{}, nestedParseError(userSaInfoLayout, "saddr", err)
	}
	lft, err := ParseLifetimeConfig(buf.Bytes(saiLft))
	if err != nil {
		return UserSaInfo{}, nestedParseError(userSaInfoLayout, "lft", err)
	}
	curlft, err := ParseLifetimeCurrent(buf.Bytes(saiCurlft))
	if err != nil {
		return UserSaInfo{}, nestedParseError(userSaInfoLayout, "curlft", err)
	}
	return UserSaInfo{
		Selector: sel,
		id:       id,
		saddr:    saddr,
		Lifetime: lft,
		Current:  curlft,
		Stats: Stats{
			ReplayWindow:    buf.Uint32(saiStatsReplayWindow),
			Replay:          buf.Uint32(saiStatsReplay),
			IntegrityFailed: buf.Uint32(saiStatsIntegrityFailed),
		},
		Seq:          buf.Uint32(saiSeq),
		Reqid:        buf.Uint32(saiReqid),
		family:       buf.Uint16(saiFamily),
		Mode:         buf.Uint8(saiMode),
		ReplayWindow: buf.Uint8(saiReplayWindow),
		Flags:        buf.Uint8(saiFlags),
	}, nil
}

// BufferLen is the padded wire size, 224 bytes.
func (s UserSaInfo) BufferLen() int { return userSaInfoLayout.Size() }

// Emit writes s to the start of b, nested records included. A failure in a
// nested record is reported as an *EncodeError naming the field.
func (s UserSaInfo) Emit(b []byte) error {
	buf, err := emitView(userSaInfoLayout, b)
	if err != nil {
		return err
	}
	if err := s.Selector.Emit(buf.Bytes(saiSel)); err != nil {
		return nestedEmitError(userSaInfoLayout, "sel", err)
	}
	if err := s.id.Emit(buf.Bytes(saiID)); err != nil {
		return nestedEmitError(userSaInfoLayout, "id", err)
	}
	if err := s.saddr.Emit(buf.Bytes(saiSaddr)); err != nil {
		return nestedEmitError(userSaInfoLayout, "saddr", err)
	}
	if err := s.Lifetime.Emit(buf.Bytes(saiLft)); err != nil {
		return nestedEmitError(userSaInfoLayout, "lft", err)
	}
	if err := s.Current.Emit(buf.Bytes(saiCurlft)); err != nil {
		return nestedEmitError(userSaInfoLayout, "curlft", err)
	}
	buf.PutUint32(saiStatsReplayWindow, s.Stats.ReplayWindow)
	buf.PutUint32(saiStatsReplay, s.Stats.Replay)
	buf.PutUint32(saiStatsIntegrityFailed, s.Stats.IntegrityFailed)
	buf.PutUint32(saiSeq, s.Seq)
	buf.PutUint32(saiReqid, s.Reqid)
	buf.PutUint16(saiFamily, s.family)
	buf.PutUint8(saiMode, s.Mode)
	buf.PutUint8(saiReplayWindow, s.ReplayWindow)
	buf.PutUint8(saiFlags, s.Flags)
	return nil
}

func (s UserSaInfo) MarshalBinary() ([]byte, error) { return Marshal(s) }

func (s *UserSaInfo) UnmarshalBinary(b []byte) error {
	v, err := ParseUserSaInfo(b)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
