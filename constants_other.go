//go:build !linux

package xfrm

// XFRM only exists on linux, but records can still be built and inspected on
// other hosts. The values are the linux ones; AF_INET6 in particular differs
// from most other kernels.
const (
	FamilyIPv4 uint16 = 2
	FamilyIPv6 uint16 = 10

	ProtoESP  uint8 = 50
	ProtoAH   uint8 = 51
	ProtoComp uint8 = 108
)
