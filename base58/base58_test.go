package base58

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	mrtron "github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
)

func TestEncodeVectors(t *testing.T) {
	vectors := []struct {
		in  []byte
		out string
	}{
		{[]byte{}, ""},
		{[]byte{0x00}, "1"},
		{[]byte{0x00, 0x00, 0x01}, "112"},
		{[]byte{0x00, 0x01, 0x02, 0x03}, "1Ldp"},
		{[]byte{0x01, 0x02, 0x03, 0x04, 0x05}, "7bWpTW"},
		{[]byte{0x00, 0x00, 0x28, 0x7f, 0xb4, 0xcd}, "11233QC4"},
		{[]byte("hello world"), "StV1DL6CwTryKyV"},
	}
	for _, v := range vectors {
		require.Equal(t, v.out, Encode(v.in), "encode %x", v.in)
		decoded, err := Decode(v.out)
		require.NoError(t, err)
		require.Equal(t, v.in, decoded, "decode %q", v.out)
	}
}

func TestRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		buf := make([]byte, rnd.Intn(64))
		rnd.Read(buf)
		// force leading zeros on a portion of the cases
		if i%5 == 0 && len(buf) > 2 {
			buf[0], buf[1] = 0, 0
		}
		decoded, err := Decode(Encode(buf))
		require.NoError(t, err)
		if !bytes.Equal(buf, decoded) {
			t.Fatalf("round trip mismatch for %x: got %x", buf, decoded)
		}
	}
}

func TestAgainstReference(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		buf := make([]byte, 1+rnd.Intn(48))
		rnd.Read(buf)
		require.Equal(t, mrtron.Encode(buf), Encode(buf))
	}
}

func TestDecodeInvalidCharacter(t *testing.T) {
	for _, in := range []string{"0", "11O", "abcl", "1I1"} {
		_, err := Decode(in)
		require.Error(t, err, "input %q", in)
		var invErr *InvalidCharacterError
		require.True(t, errors.As(err, &invErr))
	}

	_, err := Decode("1a0b")
	var invErr *InvalidCharacterError
	require.True(t, errors.As(err, &invErr))
	require.Equal(t, byte('0'), invErr.Char)
	require.Equal(t, 2, invErr.Pos)
}

func TestDecodeEmpty(t *testing.T) {
	out, err := Decode("")
	require.NoError(t, err)
	require.Equal(t, []byte{}, out)
}
