package xfrm

import (
	"encoding/binary"
	"math/rand"
	"net/netip"
	"reflect"
	"testing/quick"
)

func mustAddr(s string) netip.Addr { return netip.MustParseAddr(s) }

func mustSaInfo(src, dst string, spi uint32, proto uint8) UserSaInfo {
	s, err := NewUserSaInfo(mustAddr(src), mustAddr(dst), spi, proto)
	if err != nil {
		panic(err)
	}
	return s
}

func nativeUint16(b []byte) uint16 { return binary.NativeEndian.Uint16(b) }

func nativeUint32(b []byte) uint32 { return binary.NativeEndian.Uint32(b) }

func nativeUint64(b []byte) uint64 { return binary.NativeEndian.Uint64(b) }

// Generators for records with unexported fields; testing/quick cannot set
// those through reflection on its own.

func quickValue[T any](r *rand.Rand) T {
	v, ok := quick.Value(reflect.TypeOf((*T)(nil)).Elem(), r)
	if !ok {
		panic("quick: cannot generate value")
	}
	return v.Interface().(T)
}

func randAddress(r *rand.Rand) Address {
	var a Address
	r.Read(a[:])
	return a
}

func (UserSaID) Generate(r *rand.Rand, _ int) reflect.Value {
	return reflect.ValueOf(UserSaID{
		daddr:  randAddress(r),
		spi:    r.Uint32(),
		family: uint16(r.Intn(1 << 16)),
		proto:  uint8(r.Intn(1 << 8)),
	})
}

func (UserSaInfo) Generate(r *rand.Rand, _ int) reflect.Value {
	return reflect.ValueOf(UserSaInfo{
		Selector:     quickValue[Selector](r),
		id:           ID{Daddr: randAddress(r), SPI: r.Uint32(), Proto: uint8(r.Intn(1 << 8))},
		saddr:        randAddress(r),
		Lifetime:     quickValue[LifetimeConfig](r),
		Current:      quickValue[LifetimeCurrent](r),
		Stats:        quickValue[Stats](r),
		Seq:          r.Uint32(),
		Reqid:        r.Uint32(),
		family:       uint16(r.Intn(1 << 16)),
		Mode:         uint8(r.Intn(1 << 8)),
		ReplayWindow: uint8(r.Intn(1 << 8)),
		Flags:        uint8(r.Intn(1 << 8)),
	})
}

func (UserSpiInfo) Generate(r *rand.Rand, _ int) reflect.Value {
	return reflect.ValueOf(UserSpiInfo{
		info: quickValue[UserSaInfo](r),
		min:  r.Uint32(),
		max:  r.Uint32(),
	})
}
