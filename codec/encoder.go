package codec

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/0xVaibhav11/solana-unity/base58"
	"github.com/gagliardetto/solana-go"
)

// Encoder appends type-directed encodings to a growable buffer. All scalars
// are little-endian; strings and arrays carry a 4-byte little-endian count
// prefix; addresses are 32 raw bytes.
type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 64)}
}

func (e *Encoder) Bytes() []byte {
	return e.buf
}

func (e *Encoder) Len() int {
	return len(e.buf)
}

// WriteRaw appends bytes without any framing.
func (e *Encoder) WriteRaw(b []byte) {
	e.buf = append(e.buf, b...)
}

func (e *Encoder) Encode(tag *TypeTag, value interface{}) error {
	switch tag.Kind {
	case U8, U16, U32, U64:
		return e.encodeUint(tag, value)
	case I8, I16, I32, I64:
		return e.encodeInt(tag, value)
	case F32:
		f, ok := asFloat64(value)
		if !ok {
			return &TypeMismatchError{Tag: tag.String(), Value: value}
		}
		e.putUint(uint64(math.Float32bits(float32(f))), 4)
		return nil
	case F64:
		f, ok := asFloat64(value)
		if !ok {
			return &TypeMismatchError{Tag: tag.String(), Value: value}
		}
		e.putUint(math.Float64bits(f), 8)
		return nil
	case Bool:
		b, ok := value.(bool)
		if !ok {
			return &TypeMismatchError{Tag: tag.String(), Value: value}
		}
		if b {
			e.buf = append(e.buf, 1)
		} else {
			e.buf = append(e.buf, 0)
		}
		return nil
	case String:
		s, ok := value.(string)
		if !ok {
			return &TypeMismatchError{Tag: tag.String(), Value: value}
		}
		e.putUint(uint64(len(s)), 4)
		e.buf = append(e.buf, s...)
		return nil
	case PublicKey:
		key, err := AsPublicKey(value)
		if err != nil {
			return err
		}
		e.buf = append(e.buf, key.Bytes()...)
		return nil
	case Array:
		return e.encodeArray(tag, value)
	}
	return &UnsupportedTypeError{Tag: tag.String()}
}

func (e *Encoder) encodeArray(tag *TypeTag, value interface{}) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return &TypeMismatchError{Tag: tag.String(), Value: value}
	}
	e.putUint(uint64(rv.Len()), 4)
	for i := 0; i < rv.Len(); i++ {
		if err := e.Encode(tag.Elem, rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeUint(tag *TypeTag, value interface{}) error {
	u, ok := asUint64(value)
	if !ok {
		return &TypeMismatchError{Tag: tag.String(), Value: value}
	}
	width := scalarWidth(tag.Kind)
	if width < 8 && u >= uint64(1)<<(8*width) {
		return &TypeMismatchError{Tag: tag.String(), Value: value}
	}
	e.putUint(u, width)
	return nil
}

func (e *Encoder) encodeInt(tag *TypeTag, value interface{}) error {
	i, ok := asInt64(value)
	if !ok {
		return &TypeMismatchError{Tag: tag.String(), Value: value}
	}
	width := scalarWidth(tag.Kind)
	if width < 8 {
		limit := int64(1) << (8*width - 1)
		if i >= limit || i < -limit {
			return &TypeMismatchError{Tag: tag.String(), Value: value}
		}
	}
	e.putUint(uint64(i), width)
	return nil
}

func (e *Encoder) putUint(u uint64, width int) {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], u)
	e.buf = append(e.buf, scratch[:width]...)
}

func scalarWidth(k Kind) int {
	switch k {
	case U8, I8:
		return 1
	case U16, I16:
		return 2
	case U32, I32, F32:
		return 4
	default:
		return 8
	}
}

// AsPublicKey coerces the accepted address forms into a key: a
// solana.PublicKey, 32 raw bytes, a base58 string, or a 0x-prefixed hex
// string of 64 digits.
func AsPublicKey(value interface{}) (solana.PublicKey, error) {
	switch v := value.(type) {
	case solana.PublicKey:
		return v, nil
	case [32]byte:
		return solana.PublicKeyFromBytes(v[:]), nil
	case []byte:
		if len(v) != 32 {
			return solana.PublicKey{}, &InvalidAddressError{Input: hex.EncodeToString(v)}
		}
		return solana.PublicKeyFromBytes(v), nil
	case string:
		return publicKeyFromString(v)
	}
	return solana.PublicKey{}, &InvalidAddressError{Input: ""}
}

func publicKeyFromString(s string) (solana.PublicKey, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		raw, err := hex.DecodeString(s[2:])
		if err != nil || len(raw) != 32 {
			return solana.PublicKey{}, &InvalidAddressError{Input: s}
		}
		return solana.PublicKeyFromBytes(raw), nil
	}
	raw, err := base58.Decode(s)
	if err != nil || len(raw) != 32 {
		return solana.PublicKey{}, &InvalidAddressError{Input: s}
	}
	return solana.PublicKeyFromBytes(raw), nil
}

func asUint64(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int8:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int16:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int32:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case float64:
		if v < 0 || v != math.Trunc(v) || v > math.MaxUint64 {
			return 0, false
		}
		return uint64(v), true
	case json.Number:
		u, err := strconv.ParseUint(string(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return u, true
	}
	return 0, false
}

func asInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func asFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
