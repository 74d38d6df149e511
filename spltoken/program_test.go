package spltoken

import (
	"bytes"
	"context"
	"encoding/binary"
	"sync"
	"testing"

	"github.com/0xVaibhav11/solana-unity/program"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestLayoutSizes(t *testing.T) {
	require.Equal(t, TokenAccountLayoutSize, binary.Size(TokenAccountLayout{}))
	require.Equal(t, MintLayoutSize, binary.Size(MintLayout{}))
}

func TestTokenAccountLayoutDecode(t *testing.T) {
	mint := program.USDC
	owner := solana.MustPublicKeyFromBase58("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")

	src := TokenAccountLayout{
		Mint:   mint,
		Owner:  owner,
		Amount: 123456789,
		State:  1,
	}
	buf := new(bytes.Buffer)
	require.NoError(t, binary.Write(buf, binary.LittleEndian, &src))
	require.Equal(t, TokenAccountLayoutSize, buf.Len())

	var got TokenAccountLayout
	require.NoError(t, binary.Read(bytes.NewReader(buf.Bytes()), binary.LittleEndian, &got))
	require.Equal(t, mint, got.Mint)
	require.Equal(t, owner, got.Owner)
	require.Equal(t, uint64(123456789), got.Amount)
	require.Equal(t, uint8(1), got.State)
}

func TestInstructionTransfer(t *testing.T) {
	p := NewProgram(context.Background(), nil)
	source := solana.MustPublicKeyFromBase58("Hnct2T3JmcNKNpBwRQcjBW298PqXFqhuBVbyey8fqy5m")
	destination := solana.MustPublicKeyFromBase58("7ruSLu3QHNqviyN6tCPReCrDy6XTeZzR8chNRZShM7Zr")
	owner := solana.MustPublicKeyFromBase58("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")

	ins, err := p.InstructionTransfer(source, destination, owner, 100000)
	require.NoError(t, err)
	require.Equal(t, program.Token, ins.ProgramID())

	metas := ins.Accounts()
	require.Len(t, metas, 3)
	require.Equal(t, source, metas[0].PublicKey)
	require.True(t, metas[0].IsWritable)
	require.Equal(t, owner, metas[2].PublicKey)
	require.True(t, metas[2].IsSigner)

	data, err := ins.Data()
	require.NoError(t, err)
	require.Equal(t, []byte{CommandTransfer, 0xa0, 0x86, 0x01, 0, 0, 0, 0, 0}, data)
}

func TestInstructionCommands(t *testing.T) {
	p := NewProgram(context.Background(), nil)
	a := solana.MustPublicKeyFromBase58("Hnct2T3JmcNKNpBwRQcjBW298PqXFqhuBVbyey8fqy5m")
	b := solana.MustPublicKeyFromBase58("7ruSLu3QHNqviyN6tCPReCrDy6XTeZzR8chNRZShM7Zr")
	c := solana.MustPublicKeyFromBase58("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")

	ins, err := p.InstructionInitAccount(a, b, c)
	require.NoError(t, err)
	data, _ := ins.Data()
	require.Equal(t, []byte{CommandInitAccount}, data)
	require.Len(t, ins.Accounts(), 4)
	require.Equal(t, program.SysRent, ins.Accounts()[3].PublicKey)

	ins, err = p.InstructionApprove(a, b, c, 7)
	require.NoError(t, err)
	data, _ = ins.Data()
	require.Equal(t, byte(CommandApprove), data[0])

	ins, err = p.InstructionRevoke(a, c)
	require.NoError(t, err)
	data, _ = ins.Data()
	require.Equal(t, []byte{CommandRevoke}, data)

	ins, err = p.InstructionMintTo(a, b, c, 9)
	require.NoError(t, err)
	data, _ = ins.Data()
	require.Equal(t, byte(CommandMintTo), data[0])

	ins, err = p.InstructionBurn(a, b, c, 9)
	require.NoError(t, err)
	data, _ = ins.Data()
	require.Equal(t, byte(CommandBurn), data[0])

	ins, err = p.InstructionCloseAccount(a, b, c)
	require.NoError(t, err)
	data, _ = ins.Data()
	require.Equal(t, []byte{CommandCloseAccount}, data)
}

func TestDecodeTransfer(t *testing.T) {
	p := NewProgram(context.Background(), nil)
	source := solana.MustPublicKeyFromBase58("Hnct2T3JmcNKNpBwRQcjBW298PqXFqhuBVbyey8fqy5m")
	destination := solana.MustPublicKeyFromBase58("7ruSLu3QHNqviyN6tCPReCrDy6XTeZzR8chNRZShM7Zr")
	owner := solana.MustPublicKeyFromBase58("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")

	ins, err := p.InstructionTransfer(source, destination, owner, 55)
	require.NoError(t, err)
	data, _ := ins.Data()

	gotSource, gotDestination, amount, err := p.DecodeTransfer([]solana.PublicKey{source, destination, owner}, data)
	require.NoError(t, err)
	require.Equal(t, source, gotSource)
	require.Equal(t, destination, gotDestination)
	require.Equal(t, uint64(55), amount)

	_, _, _, err = p.DecodeTransfer([]solana.PublicKey{source, destination}, []byte{CommandRevoke})
	require.Error(t, err)
}

func TestConcurrentCacheAccess(t *testing.T) {
	p := NewProgram(context.Background(), nil)
	key := solana.MustPublicKeyFromBase58("Hnct2T3JmcNKNpBwRQcjBW298PqXFqhuBVbyey8fqy5m")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(height uint64) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				p.upsertTokenAccount(key, height, TokenAccountLayout{Amount: height})
				p.GetTokenAccount(key)
				p.upsertMint(program.USDC, height, MintLayout{Decimals: 6})
				p.GetMint(program.USDC)
			}
		}(uint64(i))
	}
	wg.Wait()

	require.NotNil(t, p.GetTokenAccount(key))
	require.NotNil(t, p.GetMint(program.USDC))
}
