package xfrm

// Record is a fixed-layout kernel structure that can be written to a byte
// slice. BufferLen is constant per type and a multiple of 8.
type Record interface {
	BufferLen() int
	Emit(b []byte) error
}

var (
	_ Record = Address{}
	_ Record = Selector{}
	_ Record = ID{}
	_ Record = LifetimeConfig{}
	_ Record = LifetimeCurrent{}
	_ Record = UserSaInfo{}
	_ Record = UserSaID{}
	_ Record = UserSpiInfo{}
)

// Marshal allocates a buffer of r.BufferLen() bytes and emits r into it.
func Marshal(r Record) ([]byte, error) {
	b := make([]byte, r.BufferLen())
	if err := r.Emit(b); err != nil {
		return nil, err
	}
	return b, nil
}
