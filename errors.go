package xfrm

import (
	"errors"
	"fmt"

	"github.com/rawbytedev/xfrm/pkg/layout"
)

// ErrBufferTooShort reports a slice shorter than the record being parsed or
// emitted. Match it with errors.Is; it survives any level of nesting.
var ErrBufferTooShort = layout.ErrBufferTooShort

// ErrFamilyMismatch reports a source and destination of different IP
// versions in one state.
var ErrFamilyMismatch = errors.New("xfrm: src and dst have different family")

// DecodeError is returned by the Parse functions. Field names the nested
// field that failed, empty when the record itself could not be read.
type DecodeError struct {
	Record string
	Field  string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("xfrm: parse %s: %v", e.Record, e.Err)
	}
	return fmt.Sprintf("xfrm: parse %s.%s: %v", e.Record, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError is returned by Emit when the destination cannot hold the record.
type EncodeError struct {
	Record string
	Field  string
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("xfrm: emit %s: %v", e.Record, e.Err)
	}
	return fmt.Sprintf("xfrm: emit %s.%s: %v", e.Record, e.Field, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

func parseView(l layout.Layout, b []byte) (layout.Buffer, error) {
	buf, err := l.Wrap(b)
	if err != nil {
		return buf, &DecodeError{Record: l.Name(), Err: err}
	}
	return buf, nil
}

func emitView(l layout.Layout, b []byte) (layout.Buffer, error) {
	buf, err := l.Wrap(b)
	if err != nil {
		return buf, &EncodeError{Record: l.Name(), Err: err}
	}
	return buf, nil
}

func nestedParseError(l layout.Layout, field string, err error) error {
	return &DecodeError{Record: l.Name(), Field: field, Err: err}
}

func nestedEmitError(l layout.Layout, field string, err error) error {
	return &EncodeError{Record: l.Name(), Field: field, Err: err}
}
