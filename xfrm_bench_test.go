package xfrm

import (
	"testing"
)

func BenchmarkEmitUserSpiInfo(b *testing.B) {
	s := NewUserSpiInfo(mustSaInfo("10.0.0.1", "10.0.0.2", 0, ProtoESP))
	buf := make([]byte, s.BufferLen())
	b.ReportAllocs()
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Emit(buf)
	}
}

func BenchmarkParseUserSpiInfo(b *testing.B) {
	s := NewUserSpiInfo(mustSaInfo("10.0.0.1", "10.0.0.2", 0, ProtoESP))
	buf, _ := Marshal(s)
	b.ReportAllocs()
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ParseUserSpiInfo(buf)
	}
}

func BenchmarkParseUserSaID(b *testing.B) {
	buf, _ := Marshal(NewUserSaID(mustAddr("2001:db8::1"), 0x1234, ProtoESP))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ParseUserSaID(buf)
	}
}
