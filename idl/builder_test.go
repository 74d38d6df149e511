package idl

import (
	"errors"
	"testing"

	"github.com/0xVaibhav11/solana-unity/codec"
	"github.com/0xVaibhav11/solana-unity/program"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func transferAccounts() []*solana.AccountMeta {
	from := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	to := solana.MustPublicKeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB")
	return []*solana.AccountMeta{
		program.Meta(from, true, true),
		program.Meta(to, false, true),
	}
}

func TestBuildInstruction(t *testing.T) {
	doc, err := Parse([]byte(testDoc), testProgramID)
	require.NoError(t, err)

	accounts := transferAccounts()
	ins, err := doc.BuildInstruction("transfer", map[string]interface{}{"amount": uint64(100000)}, accounts)
	require.NoError(t, err)
	require.Equal(t, testProgramID, ins.ProgramID())
	require.Equal(t, accounts, ins.Accounts())

	data, err := ins.Data()
	require.NoError(t, err)
	require.Len(t, data, 16)
	require.Equal(t, []byte{163, 52, 200, 231, 140, 3, 69, 186}, data[:8])
	require.Equal(t, []byte{0xa0, 0x86, 0x01, 0, 0, 0, 0, 0}, data[8:])
}

func TestBuildInstructionJSONArgs(t *testing.T) {
	doc, err := Parse([]byte(testDoc), testProgramID)
	require.NoError(t, err)

	// values as they arrive from a decoded JSON request body
	ins, err := doc.BuildInstruction("transfer", map[string]interface{}{"amount": float64(42)}, transferAccounts())
	require.NoError(t, err)
	data, _ := ins.Data()
	require.Equal(t, []byte{42, 0, 0, 0, 0, 0, 0, 0}, data[8:])
}

func TestBuildInstructionRemainingAccounts(t *testing.T) {
	doc, err := Parse([]byte(testDoc), testProgramID)
	require.NoError(t, err)

	extra := append(transferAccounts(), program.Meta(program.SysRent, false, false))
	ins, err := doc.BuildInstruction("transfer", map[string]interface{}{"amount": uint64(1)}, extra)
	require.NoError(t, err)
	require.Len(t, ins.Accounts(), 3)
}

func TestBuildInstructionValidation(t *testing.T) {
	doc, err := Parse([]byte(testDoc), testProgramID)
	require.NoError(t, err)

	var notFound *NotFoundError
	_, err = doc.BuildInstruction("withdraw", nil, nil)
	require.True(t, errors.As(err, &notFound))

	var insufficient *InsufficientAccountsError
	_, err = doc.BuildInstruction("transfer", map[string]interface{}{"amount": uint64(1)}, transferAccounts()[:1])
	require.True(t, errors.As(err, &insufficient))
	require.Equal(t, 2, insufficient.Expected)
	require.Equal(t, 1, insufficient.Got)

	var missingArg *MissingArgumentError
	_, err = doc.BuildInstruction("transfer", map[string]interface{}{}, transferAccounts())
	require.True(t, errors.As(err, &missingArg))
	require.Equal(t, "amount", missingArg.Name)

	var mismatch *codec.TypeMismatchError
	_, err = doc.BuildInstruction("transfer", map[string]interface{}{"amount": "lots"}, transferAccounts())
	require.True(t, errors.As(err, &mismatch))
}

func TestDecodeAccount(t *testing.T) {
	doc, err := Parse([]byte(testDoc), testProgramID)
	require.NoError(t, err)

	owner := solana.MustPublicKeyFromBase58("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")
	enc := codec.NewEncoder()
	require.NoError(t, enc.Encode(codec.MustParseTypeTag("publicKey"), owner))
	require.NoError(t, enc.Encode(codec.MustParseTypeTag("u64"), uint64(500)))
	require.NoError(t, enc.Encode(codec.MustParseTypeTag("bool"), true))
	// allocation padding past the declared fields
	data := append(enc.Bytes(), 0, 0, 0, 0)

	fields, err := doc.DecodeAccount("Vault", data)
	require.NoError(t, err)
	require.Len(t, fields, 3)
	require.Equal(t, "owner", fields[0].Name)
	require.Equal(t, owner, fields[0].Value)
	require.Equal(t, "balance", fields[1].Name)
	require.Equal(t, uint64(500), fields[1].Value)
	require.Equal(t, true, fields[2].Value)
}

func TestDecodeAccountTruncated(t *testing.T) {
	doc, err := Parse([]byte(testDoc), testProgramID)
	require.NoError(t, err)

	var truncated *codec.TruncatedDataError
	_, err = doc.DecodeAccount("Vault", []byte{1, 2, 3})
	require.True(t, errors.As(err, &truncated))
}
