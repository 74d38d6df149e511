package codec

import (
	"encoding/binary"
	"math"

	"github.com/gagliardetto/solana-go"
)

// Decoder is a positioned cursor over a borrowed byte slice. Decode mirrors
// Encoder.Encode exactly; reading past the end fails with
// TruncatedDataError.
type Decoder struct {
	data []byte
	pos  int
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

func (d *Decoder) Pos() int {
	return d.pos
}

func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

func (d *Decoder) read(n int) ([]byte, error) {
	if d.Remaining() < n {
		return nil, &TruncatedDataError{Want: n, Have: d.Remaining()}
	}
	out := d.data[d.pos : d.pos+n]
	d.pos += n
	return out, nil
}

func (d *Decoder) Decode(tag *TypeTag) (interface{}, error) {
	switch tag.Kind {
	case U8:
		b, err := d.read(1)
		if err != nil {
			return nil, err
		}
		return b[0], nil
	case U16:
		b, err := d.read(2)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.Uint16(b), nil
	case U32:
		b, err := d.read(4)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.Uint32(b), nil
	case U64:
		b, err := d.read(8)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.Uint64(b), nil
	case I8:
		b, err := d.read(1)
		if err != nil {
			return nil, err
		}
		return int8(b[0]), nil
	case I16:
		b, err := d.read(2)
		if err != nil {
			return nil, err
		}
		return int16(binary.LittleEndian.Uint16(b)), nil
	case I32:
		b, err := d.read(4)
		if err != nil {
			return nil, err
		}
		return int32(binary.LittleEndian.Uint32(b)), nil
	case I64:
		b, err := d.read(8)
		if err != nil {
			return nil, err
		}
		return int64(binary.LittleEndian.Uint64(b)), nil
	case F32:
		b, err := d.read(4)
		if err != nil {
			return nil, err
		}
		return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
	case F64:
		b, err := d.read(8)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	case Bool:
		b, err := d.read(1)
		if err != nil {
			return nil, err
		}
		return b[0] != 0, nil
	case String:
		n, err := d.readCount()
		if err != nil {
			return nil, err
		}
		b, err := d.read(n)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case PublicKey:
		b, err := d.read(32)
		if err != nil {
			return nil, err
		}
		return solana.PublicKeyFromBytes(b), nil
	case Array:
		n, err := d.readCount()
		if err != nil {
			return nil, err
		}
		// every element takes at least one byte, so a count beyond the
		// remaining data can never decode; reject it before allocating
		if n > d.Remaining() {
			return nil, &TruncatedDataError{Want: n, Have: d.Remaining()}
		}
		out := make([]interface{}, 0, n)
		for i := 0; i < n; i++ {
			v, err := d.Decode(tag.Elem)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	return nil, &UnsupportedTypeError{Tag: tag.String()}
}

func (d *Decoder) readCount() (int, error) {
	b, err := d.read(4)
	if err != nil {
		return 0, err
	}
	return int(binary.LittleEndian.Uint32(b)), nil
}
