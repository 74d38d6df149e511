package base58

import (
	"fmt"
)

// Alphabet is the Bitcoin base58 alphabet. 0, O, I and l are excluded
// because they are easy to confuse.
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var decodeMap [256]int8

func init() {
	for i := range decodeMap {
		decodeMap[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		decodeMap[Alphabet[i]] = int8(i)
	}
}

type InvalidCharacterError struct {
	Char byte
	Pos  int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid base58 character %q at position %d", e.Char, e.Pos)
}

// Encode treats input as a big-endian unsigned integer and converts it to
// base58 by repeated long division. Every leading 0x00 byte maps to one
// leading '1' in the output.
func Encode(input []byte) string {
	if len(input) == 0 {
		return ""
	}
	zeros := 0
	for zeros < len(input) && input[zeros] == 0 {
		zeros++
	}
	src := make([]byte, len(input)-zeros)
	copy(src, input[zeros:])

	// digits come out least significant first
	digits := make([]byte, 0, len(src)*138/100+1)
	start := 0
	for start < len(src) {
		rem := 0
		for i := start; i < len(src); i++ {
			v := rem*256 + int(src[i])
			src[i] = byte(v / 58)
			rem = v % 58
		}
		digits = append(digits, Alphabet[rem])
		for start < len(src) && src[start] == 0 {
			start++
		}
	}

	out := make([]byte, 0, zeros+len(digits))
	for i := 0; i < zeros; i++ {
		out = append(out, '1')
	}
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, digits[i])
	}
	return string(out)
}

// Decode is the inverse of Encode. Leading '1' characters map to leading
// 0x00 bytes. A character outside the alphabet fails with
// InvalidCharacterError carrying the character and its position.
func Decode(input string) ([]byte, error) {
	if len(input) == 0 {
		return []byte{}, nil
	}
	zeros := 0
	for zeros < len(input) && input[zeros] == '1' {
		zeros++
	}

	num := make([]byte, 0, len(input)*733/1000+1)
	for i := zeros; i < len(input); i++ {
		c := input[i]
		v := decodeMap[c]
		if v < 0 {
			return nil, &InvalidCharacterError{Char: c, Pos: i}
		}
		carry := int(v)
		for j := len(num) - 1; j >= 0; j-- {
			carry += int(num[j]) * 58
			num[j] = byte(carry)
			carry >>= 8
		}
		for carry > 0 {
			num = append(num, 0)
			copy(num[1:], num)
			num[0] = byte(carry)
			carry >>= 8
		}
	}

	out := make([]byte, zeros+len(num))
	copy(out[zeros:], num)
	return out, nil
}
