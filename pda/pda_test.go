package pda

import (
	"testing"

	"github.com/0xVaibhav11/solana-unity/program"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestFindMatchesCreate(t *testing.T) {
	programID := solana.MustPublicKeyFromBase58("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")
	seeds := StringSeeds("vault", "usdc")

	address, bump, err := Find(programID, seeds)
	require.NoError(t, err)
	require.False(t, address.IsZero())

	recreated, err := Create(programID, seeds, bump)
	require.NoError(t, err)
	require.Equal(t, address, recreated)
}

func TestFindDeterministic(t *testing.T) {
	programID := solana.MustPublicKeyFromBase58("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")

	first, bump1, err := Find(programID, StringSeeds("state"))
	require.NoError(t, err)
	second, bump2, err := Find(programID, StringSeeds("state"))
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, bump1, bump2)

	other, _, err := Find(programID, StringSeeds("config"))
	require.NoError(t, err)
	require.NotEqual(t, first, other)
}

func TestFindAssociatedTokenAddress(t *testing.T) {
	wallet := solana.MustPublicKeyFromBase58("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")

	address, _, err := FindAssociatedTokenAddress(wallet, program.USDC)
	require.NoError(t, err)
	require.False(t, address.IsZero())

	// same derivation through the raw seed form
	expected, _, err := Find(program.AssociatedToken, [][]byte{
		wallet.Bytes(),
		program.Token.Bytes(),
		program.USDC.Bytes(),
	})
	require.NoError(t, err)
	require.Equal(t, expected, address)

	library, _, err := solana.FindAssociatedTokenAddress(wallet, program.USDC)
	require.NoError(t, err)
	require.Equal(t, library, address)
}
