//go:build linux

package xfrm

import "golang.org/x/sys/unix"

// Address families and IPsec transport protocols as the kernel encodes them.
const (
	FamilyIPv4 uint16 = unix.AF_INET
	FamilyIPv6 uint16 = unix.AF_INET6

	ProtoESP  uint8 = unix.IPPROTO_ESP
	ProtoAH   uint8 = unix.IPPROTO_AH
	ProtoComp uint8 = unix.IPPROTO_COMP
)
