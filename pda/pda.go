package pda

import (
	"fmt"

	"github.com/0xVaibhav11/solana-unity/program"
	"github.com/gagliardetto/solana-go"
)

// Find derives the canonical program address for the seeds: the highest
// bump whose derived key falls off the ed25519 curve.
func Find(programID solana.PublicKey, seeds [][]byte) (solana.PublicKey, uint8, error) {
	address, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("find program address: %w", err)
	}
	return address, bump, nil
}

// Create derives the address for the seeds with an explicit bump. It fails
// if the result lands on the curve.
func Create(programID solana.PublicKey, seeds [][]byte, bump uint8) (solana.PublicKey, error) {
	address, err := solana.CreateProgramAddress(append(seeds, []byte{bump}), programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("create program address: %w", err)
	}
	return address, nil
}

// FindAssociatedTokenAddress returns the wallet's associated token account
// for a mint.
func FindAssociatedTokenAddress(wallet solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Find(program.AssociatedToken, [][]byte{
		wallet.Bytes(),
		program.Token.Bytes(),
		mint.Bytes(),
	})
}

// StringSeeds converts text seeds into the byte form the derivation takes.
func StringSeeds(seeds ...string) [][]byte {
	out := make([][]byte, 0, len(seeds))
	for _, seed := range seeds {
		out = append(out, []byte(seed))
	}
	return out
}
