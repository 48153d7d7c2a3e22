package xfrm

// Wire sizes of the kernel structures, padded to 8 bytes.
const (
	SizeofAddress         = 0x10
	SizeofSelector        = 0x38
	SizeofID              = 0x18
	SizeofLifetimeConfig  = 0x40
	SizeofLifetimeCurrent = 0x20
	SizeofStats           = 0x0c
	SizeofUserSaInfo      = 0xe0
	SizeofUserSaID        = 0x18
	SizeofUserSpiInfo     = 0xe8
)

// XFRM_MODE_* values for UserSaInfo.Mode.
const (
	ModeTransport uint8 = iota
	ModeTunnel
	ModeRouteOptimization
	ModeInTrigger
	ModeBEET
)

// XFRM_STATE_* bits for UserSaInfo.Flags.
const (
	StateNoECN      uint8 = 1
	StateDecapDSCP  uint8 = 2
	StateNoPMTUDisc uint8 = 4
	StateWildRecv   uint8 = 8
	StateICMP       uint8 = 16
	StateAFUnspec   uint8 = 32
	StateAlign4     uint8 = 64
	StateESN        uint8 = 128
)

// Infinite is XFRM_INF, the "no limit" value of every lifetime field.
const Infinite = ^uint64(0)

// compSPIMax bounds the SPI of IPPROTO_COMP states. The CPI is 16 bits on the
// wire although the field is 32.
const compSPIMax = 0xffff

// SPIRange bounds the SPI the kernel may pick for an allocation request.
type SPIRange struct {
	Min uint32
	Max uint32
}

// DefaultSPIRange is the range iproute2 asks for when none is given. It is a
// tooling convention, the kernel accepts any range.
var DefaultSPIRange = SPIRange{Min: 0x100, Max: 0x0fffffff}
