package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/xfrm"
)

// YAML shapes of the records. Addresses are rendered for the record's family
// and SPIs in hex, the way ip-xfrm prints them.

type selectorView struct {
	Daddr      string `yaml:"daddr"`
	Saddr      string `yaml:"saddr"`
	Dport      uint16 `yaml:"dport"`
	DportMask  string `yaml:"dport_mask"`
	Sport      uint16 `yaml:"sport"`
	SportMask  string `yaml:"sport_mask"`
	Family     string `yaml:"family"`
	PrefixlenD uint8  `yaml:"prefixlen_d"`
	PrefixlenS uint8  `yaml:"prefixlen_s"`
	Proto      uint8  `yaml:"proto"`
	Ifindex    int32  `yaml:"ifindex"`
	User       uint32 `yaml:"user"`
}

type idView struct {
	Daddr string `yaml:"daddr"`
	SPI   string `yaml:"spi"`
	Proto string `yaml:"proto"`
}

type lifetimeView struct {
	SoftByteLimit      string `yaml:"soft_byte_limit"`
	HardByteLimit      string `yaml:"hard_byte_limit"`
	SoftPacketLimit    string `yaml:"soft_packet_limit"`
	HardPacketLimit    string `yaml:"hard_packet_limit"`
	SoftAddExpiresSecs uint64 `yaml:"soft_add_expires_seconds"`
	HardAddExpiresSecs uint64 `yaml:"hard_add_expires_seconds"`
	SoftUseExpiresSecs uint64 `yaml:"soft_use_expires_seconds"`
	HardUseExpiresSecs uint64 `yaml:"hard_use_expires_seconds"`
}

type currentView struct {
	Bytes   uint64 `yaml:"bytes"`
	Packets uint64 `yaml:"packets"`
	AddTime uint64 `yaml:"add_time"`
	UseTime uint64 `yaml:"use_time"`
}

type statsView struct {
	ReplayWindow    uint32 `yaml:"replay_window"`
	Replay          uint32 `yaml:"replay"`
	IntegrityFailed uint32 `yaml:"integrity_failed"`
}

type saInfoView struct {
	Selector     selectorView `yaml:"sel"`
	ID           idView       `yaml:"id"`
	Saddr        string       `yaml:"saddr"`
	Lifetime     lifetimeView `yaml:"lft"`
	Current      currentView  `yaml:"curlft"`
	Stats        statsView    `yaml:"stats"`
	Seq          uint32       `yaml:"seq"`
	Reqid        uint32       `yaml:"reqid"`
	Family       string       `yaml:"family"`
	Mode         string       `yaml:"mode"`
	ReplayWindow uint8        `yaml:"replay_window"`
	Flags        string       `yaml:"flags"`
}

type saIDView struct {
	Daddr  string `yaml:"daddr"`
	SPI    string `yaml:"spi"`
	Family string `yaml:"family"`
	Proto  string `yaml:"proto"`
}

type spiInfoView struct {
	Info saInfoView `yaml:"info"`
	Min  string     `yaml:"min"`
	Max  string     `yaml:"max"`
}

func hex32(v uint32) string { return fmt.Sprintf("%#x", v) }

func limit(v uint64) string {
	if v == xfrm.Infinite {
		return "inf"
	}
	return strconv.FormatUint(v, 10)
}

func familyName(f uint16) string {
	switch f {
	case xfrm.FamilyIPv4:
		return "inet"
	case xfrm.FamilyIPv6:
		return "inet6"
	default:
		return strconv.Itoa(int(f))
	}
}

var protoNames = map[string]uint8{
	"esp":  xfrm.ProtoESP,
	"ah":   xfrm.ProtoAH,
	"comp": xfrm.ProtoComp,
}

func protoName(p uint8) string {
	for name, v := range protoNames {
		if v == p {
			return name
		}
	}
	return strconv.Itoa(int(p))
}

// parseProto accepts a protocol name or number.
func parseProto(s string) (uint8, error) {
	if p, ok := protoNames[strings.ToLower(s)]; ok {
		return p, nil
	}
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown protocol %q", s)
	}
	return uint8(n), nil
}

var modeNames = []string{
	xfrm.ModeTransport:         "transport",
	xfrm.ModeTunnel:            "tunnel",
	xfrm.ModeRouteOptimization: "ro",
	xfrm.ModeInTrigger:         "in_trigger",
	xfrm.ModeBEET:              "beet",
}

func modeName(m uint8) string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return strconv.Itoa(int(m))
}

func parseMode(s string) (uint8, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

var stateFlagNames = []struct {
	bit  uint8
	name string
}{
	{xfrm.StateNoECN, "noecn"},
	{xfrm.StateDecapDSCP, "decap-dscp"},
	{xfrm.StateNoPMTUDisc, "nopmtudisc"},
	{xfrm.StateWildRecv, "wildrecv"},
	{xfrm.StateICMP, "icmp"},
	{xfrm.StateAFUnspec, "af-unspec"},
	{xfrm.StateAlign4, "align4"},
	{xfrm.StateESN, "esn"},
}

func flagNames(f uint8) string {
	var out []string
	for _, sf := range stateFlagNames {
		if f&sf.bit != 0 {
			out = append(out, sf.name)
		}
	}
	return strings.Join(out, ",")
}

func addrString(a xfrm.Address, family uint16) string {
	if ip := a.IP(family); ip.IsValid() {
		return ip.String()
	}
	return fmt.Sprintf("%x", a[:])
}

func viewSelector(s xfrm.Selector) selectorView {
	return selectorView{
		Daddr:      addrString(s.Daddr, s.Family),
		Saddr:      addrString(s.Saddr, s.Family),
		Dport:      s.Dport,
		DportMask:  hex32(uint32(s.DportMask)),
		Sport:      s.Sport,
		SportMask:  hex32(uint32(s.SportMask)),
		Family:     familyName(s.Family),
		PrefixlenD: s.PrefixlenD,
		PrefixlenS: s.PrefixlenS,
		Proto:      s.Proto,
		Ifindex:    s.Ifindex,
		User:       s.User,
	}
}

func viewID(id xfrm.ID, family uint16) idView {
	return idView{
		Daddr: addrString(id.Daddr, family),
		SPI:   hex32(id.SPI),
		Proto: protoName(id.Proto),
	}
}

func viewLifetime(l xfrm.LifetimeConfig) lifetimeView {
	return lifetimeView{
		SoftByteLimit:      limit(l.SoftByteLimit),
		HardByteLimit:      limit(l.HardByteLimit),
		SoftPacketLimit:    limit(l.SoftPacketLimit),
		HardPacketLimit:    limit(l.HardPacketLimit),
		SoftAddExpiresSecs: l.SoftAddExpiresSeconds,
		HardAddExpiresSecs: l.HardAddExpiresSeconds,
		SoftUseExpiresSecs: l.SoftUseExpiresSeconds,
		HardUseExpiresSecs: l.HardUseExpiresSeconds,
	}
}

func viewCurrent(c xfrm.LifetimeCurrent) currentView {
	return currentView{Bytes: c.Bytes, Packets: c.Packets, AddTime: c.AddTime, UseTime: c.UseTime}
}

func viewSaInfo(s xfrm.UserSaInfo) saInfoView {
	return saInfoView{
		Selector: viewSelector(s.Selector),
		ID:       viewID(s.ID(), s.Family()),
		Saddr:    addrString(s.Source(), s.Family()),
		Lifetime: viewLifetime(s.Lifetime),
		Current:  viewCurrent(s.Current),
		Stats: statsView{
			ReplayWindow:    s.Stats.ReplayWindow,
			Replay:          s.Stats.Replay,
			IntegrityFailed: s.Stats.IntegrityFailed,
		},
		Seq:          s.Seq,
		Reqid:        s.Reqid,
		Family:       familyName(s.Family()),
		Mode:         modeName(s.Mode),
		ReplayWindow: s.ReplayWindow,
		Flags:        flagNames(s.Flags),
	}
}

func viewSaID(id xfrm.UserSaID) saIDView {
	return saIDView{
		Daddr:  addrString(id.Destination(), id.Family()),
		SPI:    hex32(id.SPI()),
		Family: familyName(id.Family()),
		Proto:  protoName(id.Proto()),
	}
}

func viewSpiInfo(s xfrm.UserSpiInfo) spiInfoView {
	return spiInfoView{
		Info: viewSaInfo(s.Info()),
		Min:  hex32(s.Min()),
		Max:  hex32(s.Max()),
	}
}

// view maps any record to its YAML shape. Records without family context
// print addresses as raw hex.
func view(r xfrm.Record) any {
	switch v := r.(type) {
	case xfrm.Address:
		return fmt.Sprintf("%x", v[:])
	case xfrm.Selector:
		return viewSelector(v)
	case xfrm.ID:
		return viewID(v, 0)
	case xfrm.LifetimeConfig:
		return viewLifetime(v)
	case xfrm.LifetimeCurrent:
		return viewCurrent(v)
	case xfrm.UserSaInfo:
		return viewSaInfo(v)
	case xfrm.UserSaID:
		return viewSaID(v)
	case xfrm.UserSpiInfo:
		return viewSpiInfo(v)
	default:
		return fmt.Sprintf("%T", r)
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
