package capture

import (
	"errors"
	"fmt"

	"github.com/rawbytedev/xfrm"
)

var (
	ErrBadMagic           = errors.New("capture: bad magic")
	ErrUnsupportedVersion = errors.New("capture: unsupported version")
	ErrChecksum           = errors.New("capture: checksum mismatch")
	ErrUnknownKind        = errors.New("capture: unknown record kind")
	ErrFrameTooLarge      = errors.New("capture: frame too large")
	ErrLengthOverflow     = errors.New("capture: frame length overflows 64 bits")
)

// MaxPayload bounds a single frame. The largest record is well below it.
const MaxPayload = 4096

// Kind tags the record type carried by a frame.
type Kind uint8

const (
	KindAddress Kind = iota + 1
	KindSelector
	KindID
	KindLifetimeConfig
	KindLifetimeCurrent
	KindUserSaInfo
	KindUserSaID
	KindUserSpiInfo
)

var kindNames = map[Kind]string{
	KindAddress:         "address",
	KindSelector:        "selector",
	KindID:              "id",
	KindLifetimeConfig:  "lifetime-config",
	KindLifetimeCurrent: "lifetime-current",
	KindUserSaInfo:      "sa-info",
	KindUserSaID:        "sa-id",
	KindUserSpiInfo:     "spi-info",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// KindOf reports the frame kind for r.
func KindOf(r xfrm.Record) (Kind, error) {
	switch r.(type) {
	case xfrm.Address, *xfrm.Address:
		return KindAddress, nil
	case xfrm.Selector, *xfrm.Selector:
		return KindSelector, nil
	case xfrm.ID, *xfrm.ID:
		return KindID, nil
	case xfrm.LifetimeConfig, *xfrm.LifetimeConfig:
		return KindLifetimeConfig, nil
	case xfrm.LifetimeCurrent, *xfrm.LifetimeCurrent:
		return KindLifetimeCurrent, nil
	case xfrm.UserSaInfo, *xfrm.UserSaInfo:
		return KindUserSaInfo, nil
	case xfrm.UserSaID, *xfrm.UserSaID:
		return KindUserSaID, nil
	case xfrm.UserSpiInfo, *xfrm.UserSpiInfo:
		return KindUserSpiInfo, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnknownKind, r)
	}
}

// Frame is one captured record as it sits in the stream. Payload holds the
// emitted bytes, padding included.
type Frame struct {
	Kind    Kind
	Payload []byte
}

// Decode parses the payload with the parser matching the frame kind.
func (f Frame) Decode() (xfrm.Record, error) {
	switch f.Kind {
	case KindAddress:
		return decode(xfrm.ParseAddress, f.Payload)
	case KindSelector:
		return decode(xfrm.ParseSelector, f.Payload)
	case KindID:
		return decode(xfrm.ParseID, f.Payload)
	case KindLifetimeConfig:
		return decode(xfrm.ParseLifetimeConfig, f.Payload)
	case KindLifetimeCurrent:
		return decode(xfrm.ParseLifetimeCurrent, f.Payload)
	case KindUserSaInfo:
		return decode(xfrm.ParseUserSaInfo, f.Payload)
	case KindUserSaID:
		return decode(xfrm.ParseUserSaID, f.Payload)
	case KindUserSpiInfo:
		return decode(xfrm.ParseUserSpiInfo, f.Payload)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, f.Kind)
	}
}

func decode[T xfrm.Record](parse func([]byte) (T, error), b []byte) (xfrm.Record, error) {
	v, err := parse(b)
	if err != nil {
		return nil, err
	}
	return v, nil
}
