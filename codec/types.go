package codec

import (
	"strings"

	"github.com/badgerodon/collections/stack"
)

// Kind enumerates the closed set of wire types an interface document can
// declare for an instruction argument or an account field.
type Kind int

const (
	U8 Kind = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	Bool
	String
	PublicKey
	Array
)

var scalarKinds = map[string]Kind{
	"u8":        U8,
	"u16":       U16,
	"u32":       U32,
	"u64":       U64,
	"i8":        I8,
	"i16":       I16,
	"i32":       I32,
	"i64":       I64,
	"f32":       F32,
	"f64":       F64,
	"bool":      Bool,
	"string":    String,
	"publicKey": PublicKey,
	"pubkey":    PublicKey,
}

var kindNames = map[Kind]string{
	U8: "u8", U16: "u16", U32: "u32", U64: "u64",
	I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	F32: "f32", F64: "f64", Bool: "bool", String: "string",
	PublicKey: "publicKey",
}

// TypeTag is a parsed type descriptor. Elem is set only for Array.
type TypeTag struct {
	Kind Kind
	Elem *TypeTag
}

func (t *TypeTag) String() string {
	if t.Kind == Array {
		return t.Elem.String() + "[]"
	}
	return kindNames[t.Kind]
}

// ParseTypeTag parses a type string from the interface document into a
// TypeTag. Array suffixes stack from the inside out, so "u32[][]" is an
// array of arrays of u32. A bracketed length like "u8[32]" is accepted but
// the length is ignored metadata: the wire form always carries a 4-byte
// count prefix.
func ParseTypeTag(tag string) (*TypeTag, error) {
	suffixes := stack.New()
	base := tag
	for strings.HasSuffix(base, "]") {
		open := strings.LastIndex(base, "[")
		if open < 0 {
			return nil, &UnsupportedTypeError{Tag: tag}
		}
		suffixes.Push(base[open+1 : len(base)-1])
		base = base[:open]
	}
	kind, ok := scalarKinds[base]
	if !ok {
		return nil, &UnsupportedTypeError{Tag: tag}
	}
	t := &TypeTag{Kind: kind}
	for suffixes.Len() > 0 {
		suffixes.Pop()
		t = &TypeTag{Kind: Array, Elem: t}
	}
	return t, nil
}

// MustParseTypeTag is ParseTypeTag for statically known tags.
func MustParseTypeTag(tag string) *TypeTag {
	t, err := ParseTypeTag(tag)
	if err != nil {
		panic(err)
	}
	return t
}
