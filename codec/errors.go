package codec

import (
	"fmt"
)

type UnsupportedTypeError struct {
	Tag string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type tag: %q", e.Tag)
}

type TypeMismatchError struct {
	Tag   string
	Value interface{}
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("value %v (%T) does not match type %s", e.Value, e.Value, e.Tag)
}

type TruncatedDataError struct {
	Want int
	Have int
}

func (e *TruncatedDataError) Error() string {
	return fmt.Sprintf("truncated data: need %d more bytes, have %d", e.Want, e.Have)
}

type InvalidAddressError struct {
	Input string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address %q: expected a base58 string or 0x-prefixed hex of 32 bytes", e.Input)
}
