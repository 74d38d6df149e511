package program

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestWellKnownIds(t *testing.T) {
	require.Equal(t, solana.SystemProgramID, System)
	require.Equal(t, solana.TokenProgramID, Token)
	require.Equal(t, solana.SPLAssociatedTokenAccountProgramID, AssociatedToken)
	require.Equal(t, solana.SysVarRentPubkey, SysRent)
	require.Equal(t, solana.SysVarClockPubkey, SysClock)
}
