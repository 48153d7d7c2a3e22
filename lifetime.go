package xfrm

import "github.com/rawbytedev/xfrm/pkg/layout"

var (
	lftSoftByteLimit         = layout.At(0, 8, layout.Native)
	lftHardByteLimit         = layout.Next(lftSoftByteLimit, 8, layout.Native)
	lftSoftPacketLimit       = layout.Next(lftHardByteLimit, 8, layout.Native)
	lftHardPacketLimit       = layout.Next(lftSoftPacketLimit, 8, layout.Native)
	lftSoftAddExpiresSeconds = layout.Next(lftHardPacketLimit, 8, layout.Native)
	lftHardAddExpiresSeconds = layout.Next(lftSoftAddExpiresSeconds, 8, layout.Native)
	lftSoftUseExpiresSeconds = layout.Next(lftHardAddExpiresSeconds, 8, layout.Native)
	lftHardUseExpiresSeconds = layout.Next(lftSoftUseExpiresSeconds, 8, layout.Native)

	lifetimeConfigLayout = layout.New("xfrm_lifetime_cfg",
		lftSoftByteLimit, lftHardByteLimit, lftSoftPacketLimit, lftHardPacketLimit,
		lftSoftAddExpiresSeconds, lftHardAddExpiresSeconds,
		lftSoftUseExpiresSeconds, lftHardUseExpiresSeconds)

	curBytes   = layout.At(0, 8, layout.Native)
	curPackets = layout.Next(curBytes, 8, layout.Native)
	curAddTime = layout.Next(curPackets, 8, layout.Native)
	curUseTime = layout.Next(curAddTime, 8, layout.Native)

	lifetimeCurrentLayout = layout.New("xfrm_lifetime_cur", curBytes, curPackets, curAddTime, curUseTime)
)

// LifetimeConfig is xfrm_lifetime_cfg. The zero value expires immediately;
// use InfiniteLifetime for a state without limits.
type LifetimeConfig struct {
	SoftByteLimit         uint64
	HardByteLimit         uint64
	SoftPacketLimit       uint64
	HardPacketLimit       uint64
	SoftAddExpiresSeconds uint64
	HardAddExpiresSeconds uint64
	SoftUseExpiresSeconds uint64
	HardUseExpiresSeconds uint64
}

// InfiniteLifetime returns the limits iproute2 sends by default: no byte or
// packet limit and no expiry.
func InfiniteLifetime() LifetimeConfig {
	return LifetimeConfig{
		SoftByteLimit:   Infinite,
		HardByteLimit:   Infinite,
		SoftPacketLimit: Infinite,
		HardPacketLimit: Infinite,
	}
}

// ParseLifetimeConfig reads an xfrm_lifetime_cfg from the start of b.
func ParseLifetimeConfig(b []byte) (LifetimeConfig, error) {
	buf, err := parseView(lifetimeConfigLayout, b)
	if err != nil {
		return LifetimeConfig{}, err
	}
	return LifetimeConfig{
		SoftByteLimit:         buf.Uint64(lftSoftByteLimit),
		HardByteLimit:         buf.Uint64(lftHardByteLimit),
		SoftPacketLimit:       buf.Uint64(lftSoftPacketLimit),
		HardPacketLimit:       buf.Uint64(lftHardPacketLimit),
		SoftAddExpiresSeconds: buf.Uint64(lftSoftAddExpiresSeconds),
		HardAddExpiresSeconds: buf.Uint64(lftHardAddExpiresSeconds),
		SoftUseExpiresSeconds: buf.Uint64(lftSoftUseExpiresSeconds),
		HardUseExpiresSeconds: buf.Uint64(lftHardUseExpiresSeconds),
	}, nil
}

func (l LifetimeConfig) BufferLen() int { return lifetimeConfigLayout.Size() }

// Emit writes l to the start of b.
func (l LifetimeConfig) Emit(b []byte) error {
	buf, err := emitView(lifetimeConfigLayout, b)
	if err != nil {
		return err
	}
	buf.PutUint64(lftSoftByteLimit, l.SoftByteLimit)
	buf.PutUint64(lftHardByteLimit, l.HardByteLimit)
	buf.PutUint64(lftSoftPacketLimit, l.SoftPacketLimit)
	buf.PutUint64(lftHardPacketLimit, l.HardPacketLimit)
	buf.PutUint64(lftSoftAddExpiresSeconds, l.SoftAddExpiresSeconds)
	buf.PutUint64(lftHardAddExpiresSeconds, l.HardAddExpiresSeconds)
	buf.PutUint64(lftSoftUseExpiresSeconds, l.SoftUseExpiresSeconds)
	buf.PutUint64(lftHardUseExpiresSeconds, l.HardUseExpiresSeconds)
	return nil
}

func (l LifetimeConfig) MarshalBinary() ([]byte, error) { return Marshal(l) }

func (l *LifetimeConfig) UnmarshalBinary(b []byte) error {
	v, err := ParseLifetimeConfig(b)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// LifetimeCurrent is xfrm_lifetime_cur, the usage the kernel has accounted
// to a state. Times are unix seconds.
type LifetimeCurrent struct {
	Bytes   uint64
	Packets uint64
	AddTime uint64
	UseTime uint64
}

// ParseLifetimeCurrent reads an xfrm_lifetime_cur from the start of b.
func ParseLifetimeCurrent(b []byte) (LifetimeCurrent, error) {
	buf, err := parseView(lifetimeCurrentLayout, b)
	if err != nil {
		return LifetimeCurrent{}, err
	}
	return LifetimeCurrent{
		Bytes:   buf.Uint64(curBytes),
		Packets: buf.Uint64(curPackets),
		AddTime: buf.Uint64(curAddTime),
		UseTime: buf.Uint64(curUseTime),
	}, nil
}

func (c LifetimeCurrent) BufferLen() int { return lifetimeCurrentLayout.Size() }

// Emit writes c to the start of b.
func (c LifetimeCurrent) Emit(b []byte) error {
	buf, err := emitView(lifetimeCurrentLayout, b)
	if err != nil {
		return err
	}
	buf.PutUint64(curBytes, c.Bytes)
	buf.PutUint64(curPackets, c.Packets)
	buf.PutUint64(curAddTime, c.AddTime)
	buf.PutUint64(curUseTime, c.UseTime)
	return nil
}

func (c LifetimeCurrent) MarshalBinary() ([]byte, error) { return Marshal(c) }

func (c *LifetimeCurrent) UnmarshalBinary(b []byte) error {
	v, err := ParseLifetimeCurrent(b)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Stats is xfrm_stats. It is 12 bytes wide and only ever travels inline in
// UserSaInfo, so it has no standalone layout.
type Stats struct {
	ReplayWindow    uint32
	Replay          uint32
	IntegrityFailed uint32
}
