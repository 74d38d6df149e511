package system

import (
	"context"
	"testing"

	"github.com/0xVaibhav11/solana-unity/program"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestInstructionTransfer(t *testing.T) {
	p := NewProgram(context.Background(), nil)
	from := solana.MustPublicKeyFromBase58("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")
	to := solana.MustPublicKeyFromBase58("7ruSLu3QHNqviyN6tCPReCrDy6XTeZzR8chNRZShM7Zr")

	ins, err := p.InstructionTransfer(from, to, 100000)
	require.NoError(t, err)
	require.Equal(t, program.System, ins.ProgramID())

	metas := ins.Accounts()
	require.Len(t, metas, 2)
	require.True(t, metas[0].IsSigner)
	require.True(t, metas[0].IsWritable)
	require.False(t, metas[1].IsSigner)

	data, err := ins.Data()
	require.NoError(t, err)
	require.Equal(t, []byte{2, 0, 0, 0, 0xa0, 0x86, 0x01, 0, 0, 0, 0, 0}, data)
}
