package idl

import (
	"crypto/sha256"
)

// SighashNamespace is the namespace prepended to an instruction name before
// hashing. Programs built with Anchor place all instructions under "global".
const SighashNamespace = "global"

// DiscriminatorSize is the length of the selector prefixing encoded call
// data.
const DiscriminatorSize = 8

// Discriminator derives the 8-byte selector for an instruction name:
// the first 8 bytes of sha256("global:<name>"). The on-chain program
// recomputes the same value, so no registry is needed.
func Discriminator(name string) [DiscriminatorSize]byte {
	digest := sha256.Sum256([]byte(SighashNamespace + ":" + name))
	var out [DiscriminatorSize]byte
	copy(out[:], digest[:DiscriminatorSize])
	return out
}
