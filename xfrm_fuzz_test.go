package xfrm

import (
	"testing"
)

func FuzzParseRecords(f *testing.F) {
	f.Add(make([]byte, SizeofUserSpiInfo))
	f.Add([]byte{10, 0, 0, 1})
	if b, err := Marshal(NewUserSpiInfo(mustSaInfo("10.0.0.1", "10.0.0.2", 1, ProtoComp))); err == nil {
		f.Add(b)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		// none of these may panic, whatever the input
		if id, err := ParseUserSaID(data); err == nil {
			out, err := Marshal(id)
			if err != nil {
				t.Fatalf("re-emit: %v", err)
			}
			again, err := ParseUserSaID(out)
			if err != nil || again != id {
				t.Fatalf("round trip: %v %+v != %+v", err, again, id)
			}
		}
		if s, err := ParseUserSpiInfo(data); err == nil {
			out, err := Marshal(s)
			if err != nil {
				t.Fatalf("re-emit: %v", err)
			}
			again, err := ParseUserSpiInfo(out)
			if err != nil || again != s {
				t.Fatalf("round trip: %v", err)
			}
		}
		_, _ = ParseUserSaInfo(data)
		_, _ = ParseSelector(data)
	})
}
