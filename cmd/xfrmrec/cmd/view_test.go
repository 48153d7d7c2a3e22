package cmd

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rawbytedev/xfrm"
)

func mustIP(s string) netip.Addr { return netip.MustParseAddr(s) }

func TestParseProto(t *testing.T) {
	cases := map[string]uint8{
		"esp":  xfrm.ProtoESP,
		"AH":   xfrm.ProtoAH,
		"comp": xfrm.ProtoComp,
		"50":   50,
		"0x6c": 108,
	}
	for in, want := range cases {
		got, err := parseProto(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseProto("gre")
	assert.Error(t, err)
	_, err = parseProto("300")
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "inet", familyName(xfrm.FamilyIPv4))
	assert.Equal(t, "inet6", familyName(xfrm.FamilyIPv6))
	assert.Equal(t, "7", familyName(7))
	assert.Equal(t, "comp", protoName(xfrm.ProtoComp))
	assert.Equal(t, "17", protoName(17))
	assert.Equal(t, "beet", modeName(xfrm.ModeBEET))
	assert.Equal(t, "9", modeName(9))
	assert.Equal(t, "noecn,esn", flagNames(xfrm.StateNoECN|xfrm.StateESN))
	assert.Equal(t, "", flagNames(0))
	assert.Equal(t, "inf", limit(xfrm.Infinite))
	assert.Equal(t, "10", limit(10))

	m, err := parseMode("Tunnel")
	assert.NoError(t, err)
	assert.Equal(t, xfrm.ModeTunnel, m)
}

func TestViewSpiInfo(t *testing.T) {
	info, err := xfrm.NewUserSaInfo(mustIP("192.0.2.1"), mustIP("192.0.2.2"), 0, xfrm.ProtoComp)
	assert.NoError(t, err)
	v := viewSpiInfo(xfrm.NewUserSpiInfo(info))
	assert.Equal(t, "0x100", v.Min)
	assert.Equal(t, "0xffff", v.Max)
	assert.Equal(t, "192.0.2.1", v.Info.Saddr)
	assert.Equal(t, "192.0.2.2", v.Info.ID.Daddr)
	assert.Equal(t, "comp", v.Info.ID.Proto)
	assert.Equal(t, "inf", v.Info.Lifetime.HardByteLimit)
	assert.Equal(t, "inet", v.Info.Family)
}

func TestViewUnknownFamilyAddress(t *testing.T) {
	a := xfrm.AddressFromIP(mustIP("10.0.0.1"))
	assert.Equal(t, "0a000001000000000000000000000000", addrString(a, 0))
	assert.Equal(t, "0a000001000000000000000000000000", view(a))
}
